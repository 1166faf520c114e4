// Package snapshot persists GameState as a single JSON document.
//
// Timestamps are written as RFC 3339 strings in UTC with millisecond
// precision. When a document is read back generically, only the keys listed
// in DateFields are revived as times; every other string stays a string,
// even one that happens to look like a date.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/roach88/triviarpg/internal/game"
)

// DateFields are the JSON keys whose string values are timestamps.
var DateFields = []string{
	"lastSaveTime",
	"lastClaimDate",
	"sessionStartTime",
	"lastRefresh",
	"nextRefresh",
	"plantedAt",
	"lastWatered",
	"activatedAt",
	"expiresAt",
	"lastRollTime",
	"unlockedAt",
	"claimDate",
}

// IsDateField reports whether key holds a timestamp.
func IsDateField(key string) bool {
	return slices.Contains(DateFields, key)
}

// Encode serializes s. The input is not modified.
func Encode(s *game.GameState) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("encode snapshot: nil state")
	}
	c := s.Clone()
	walkTimes(reflect.ValueOf(c).Elem(), "", func(_ string, v reflect.Value) {
		t := v.Interface().(time.Time)
		v.Set(reflect.ValueOf(t.UTC().Truncate(time.Millisecond)))
	})

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Decode parses a snapshot over a fresh GameState, so subtrees missing from
// older saves keep their defaults, then normalizes it.
func Decode(data []byte) (*game.GameState, error) {
	s := game.NewState(time.Time{})
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	s.Normalize()
	return s, nil
}

// DecodeTree parses data into generic maps and slices. Numbers are kept as
// json.Number. String values under a DateFields key that parse as RFC 3339
// become time.Time; anything else is left as it was.
func DecodeTree(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode snapshot tree: %w", err)
	}
	return revive("", v), nil
}

func revive(key string, v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			val[k] = revive(k, child)
		}
		return val
	case []any:
		for i, child := range val {
			val[i] = revive(key, child)
		}
		return val
	case string:
		if !IsDateField(key) {
			return val
		}
		t, err := time.Parse(time.RFC3339Nano, val)
		if err != nil {
			return val
		}
		return t
	default:
		return val
	}
}

var timeType = reflect.TypeOf(time.Time{})

// walkTimes calls fn for every settable time.Time reachable from v, passing
// the JSON key it is stored under.
func walkTimes(v reflect.Value, key string, fn func(key string, v reflect.Value)) {
	switch v.Kind() {
	case reflect.Pointer:
		if !v.IsNil() {
			walkTimes(v.Elem(), key, fn)
		}
	case reflect.Struct:
		if v.Type() == timeType {
			if v.CanSet() {
				fn(key, v)
			}
			return
		}
		for i := range v.NumField() {
			f := v.Type().Field(i)
			if !f.IsExported() {
				continue
			}
			walkTimes(v.Field(i), jsonName(f), fn)
		}
	case reflect.Slice, reflect.Array:
		for i := range v.Len() {
			walkTimes(v.Index(i), key, fn)
		}
	}
}

func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" {
		return f.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return f.Name
	}
	return name
}
