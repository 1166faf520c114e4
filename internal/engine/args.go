package engine

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/roach88/triviarpg/internal/game"
)

// Args are the named arguments of an invoked action. Values arrive either
// typed (from YAML or JSON) or as strings (from the command line); the
// accessors accept both.
type Args map[string]any

func argError(key, format string, args ...any) *game.Error {
	return game.NewError(game.CodeInvalidReference, "argument %q: "+format, append([]any{key}, args...)...).
		WithDetail("arg", key)
}

// String returns a required string argument.
func (a Args) String(key string) (string, error) {
	v, ok := a[key]
	if !ok {
		return "", argError(key, "missing")
	}
	switch val := v.(type) {
	case string:
		return val, nil
	case int, int64, float64, bool, json.Number:
		return strings.TrimSpace(jsonString(val)), nil
	}
	return "", argError(key, "want a string, got %T", v)
}

// Int returns a required integer argument.
func (a Args) Int(key string) (int, error) {
	v, ok := a[key]
	if !ok {
		return 0, argError(key, "missing")
	}
	return toInt(key, v)
}

// IntOr returns an integer argument, or def when it is absent.
func (a Args) IntOr(key string, def int) (int, error) {
	v, ok := a[key]
	if !ok {
		return def, nil
	}
	return toInt(key, v)
}

// BoolOr returns a boolean argument, or def when it is absent.
func (a Args) BoolOr(key string, def bool) (bool, error) {
	v, ok := a[key]
	if !ok {
		return def, nil
	}
	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err != nil {
			return false, argError(key, "want a boolean, got %q", val)
		}
		return b, nil
	}
	return false, argError(key, "want a boolean, got %T", v)
}

// OptionalBool returns a pointer to a boolean argument, or nil when absent.
func (a Args) OptionalBool(key string) (*bool, error) {
	if _, ok := a[key]; !ok {
		return nil, nil
	}
	b, err := a.BoolOr(key, false)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// OptionalString returns a pointer to a string argument, or nil when absent.
func (a Args) OptionalString(key string) (*string, error) {
	if _, ok := a[key]; !ok {
		return nil, nil
	}
	s, err := a.String(key)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Strings returns a list argument. A single string is split on commas.
func (a Args) Strings(key string) ([]string, error) {
	v, ok := a[key]
	if !ok {
		return nil, argError(key, "missing")
	}
	switch val := v.(type) {
	case []string:
		return val, nil
	case string:
		var out []string
		for _, part := range strings.Split(val, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	case []any:
		out := make([]string, 0, len(val))
		for _, elem := range val {
			s, ok := elem.(string)
			if !ok {
				return nil, argError(key, "want a list of strings, found %T", elem)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, argError(key, "want a list of strings, got %T", v)
}

// Kind returns the item kind argument (weapon or armor).
func (a Args) Kind(key string) (game.ItemKind, error) {
	s, err := a.String(key)
	if err != nil {
		return "", err
	}
	k, err := game.ParseItemKind(s)
	if err != nil {
		return "", argError(key, "%v", err)
	}
	return k, nil
}

// Rarity returns a rarity argument by name.
func (a Args) Rarity(key string) (game.Rarity, error) {
	s, err := a.String(key)
	if err != nil {
		return 0, err
	}
	r, err := game.ParseRarity(s)
	if err != nil {
		return 0, argError(key, "%v", err)
	}
	return r, nil
}

func toInt(key string, v any) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		if val != math.Trunc(val) {
			return 0, argError(key, "want an integer, got %v", val)
		}
		return int(val), nil
	case json.Number:
		n, err := val.Int64()
		if err != nil {
			return 0, argError(key, "want an integer, got %s", val)
		}
		return int(n), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, argError(key, "want an integer, got %q", val)
		}
		return n, nil
	}
	return 0, argError(key, "want an integer, got %T", v)
}

func jsonString(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}
