package harness

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, event := range e.Trace {
			fmt.Fprintf(&buf, "  %s\n", traceLine(event))
		}
	}

	return buf.String()
}

// EvaluateAssertions checks every assertion and returns the failure
// messages. An empty slice means all assertions held.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var failures []string
	for i, a := range assertions {
		var err error
		switch a.Type {
		case AssertTraceContains:
			err = assertTraceContains(result.Trace, a)
		case AssertTraceOrder:
			err = assertTraceOrder(result.Trace, a)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, a)
		case AssertState:
			err = assertState(result.State, a)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			failures = append(failures, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return failures
}

// assertTraceContains checks if the trace contains a successful attempt of
// the action whose args match (subset match).
func assertTraceContains(trace []TraceEvent, assertion Assertion) error {
	for _, event := range trace {
		if event.OK && event.Action == assertion.Action && matchArgs(event.Args, assertion.Args) {
			return nil
		}
	}

	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: fmt.Sprintf("action %s with args %v", assertion.Action, assertion.Args),
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertTraceOrder checks that the first successful attempt of each action
// appears in the given order. Other actions may come in between.
func assertTraceOrder(trace []TraceEvent, assertion Assertion) error {
	positions := make(map[string]int)
	for i, event := range trace {
		if !event.OK {
			continue
		}
		if _, seen := positions[event.Action]; !seen {
			positions[event.Action] = i + 1 // 1-indexed for readability
		}
	}

	for _, action := range assertion.Actions {
		if positions[action] == 0 {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("all actions present: %v", assertion.Actions),
				Actual:   fmt.Sprintf("missing action: %s", action),
				Trace:    trace,
			}
		}
	}

	for i := 1; i < len(assertion.Actions); i++ {
		prev := assertion.Actions[i-1]
		curr := assertion.Actions[i]

		if positions[prev] >= positions[curr] {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("actions in order: %v", assertion.Actions),
				Actual: fmt.Sprintf("%s (pos %d) should be before %s (pos %d)",
					prev, positions[prev], curr, positions[curr]),
				Trace: trace,
			}
		}
	}

	return nil
}

// assertTraceCount checks that the action succeeded exactly Count times.
func assertTraceCount(trace []TraceEvent, assertion Assertion) error {
	count := 0
	for _, event := range trace {
		if event.OK && event.Action == assertion.Action {
			count++
		}
	}

	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d successful %s", assertion.Count, assertion.Action),
			Actual:   fmt.Sprintf("%d", count),
			Trace:    trace,
		}
	}

	return nil
}

// assertState checks one field of the final state.
func assertState(state map[string]any, assertion Assertion) error {
	actual, ok := lookup(state, assertion.Field)
	if !ok {
		return &AssertionError{
			Type:     AssertState,
			Expected: fmt.Sprintf("field %q to exist", assertion.Field),
			Actual:   "no such field",
		}
	}
	if !valuesEqual(assertion.Equals, actual) {
		return &AssertionError{
			Type:     AssertState,
			Expected: fmt.Sprintf("%s = %v", assertion.Field, assertion.Equals),
			Actual:   fmt.Sprintf("%s = %v", assertion.Field, describe(actual)),
		}
	}
	return nil
}

// lookup follows a dotted path through maps and slices. Slice elements
// are addressed by index.
func lookup(tree any, path string) (any, bool) {
	cur := tree
	for part := range strings.SplitSeq(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			next, ok := node[part]
			if !ok {
				return nil, false
			}
			cur = next
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

func lookupOrNil(tree any, path string) any {
	v, _ := lookup(tree, path)
	return describe(v)
}

// matchArgs checks if actual args contain all expected args (subset match).
// Extra keys in actual are ignored.
func matchArgs(actual, expected map[string]any) bool {
	if len(expected) == 0 {
		return true
	}
	for key, want := range expected {
		got, ok := actual[key]
		if !ok || !valuesEqual(want, got) {
			return false
		}
	}
	return true
}

// matchSubset reports whether actual holds every key of expected. On a
// mismatch it returns the dotted path of the first offending key.
func matchSubset(expected map[string]any, actual any) (string, bool) {
	obj, ok := actual.(map[string]any)
	if !ok {
		return "", false
	}
	for key, want := range expected {
		got, ok := obj[key]
		if !ok {
			return key, false
		}
		if sub, isMap := want.(map[string]any); isMap {
			if path, ok := matchSubset(sub, got); !ok {
				if path == "" {
					return key, false
				}
				return key + "." + path, false
			}
			continue
		}
		if !valuesEqual(want, got) {
			return key, false
		}
	}
	return "", true
}

// valuesEqual compares a value written in a scenario with one from the
// engine. Numbers compare by value whatever their Go type; timestamps
// compare against RFC 3339 strings; maps use subset semantics.
func valuesEqual(expected, actual any) bool {
	if expected == nil || actual == nil {
		return expected == nil && actual == nil
	}

	if en, ok := asNumber(expected); ok {
		an, ok := asNumber(actual)
		return ok && en == an
	}

	switch exp := expected.(type) {
	case string:
		switch act := actual.(type) {
		case string:
			return exp == act
		case time.Time:
			t, err := time.Parse(time.RFC3339Nano, exp)
			return err == nil && t.Equal(act)
		}
		return false
	case time.Time:
		act, ok := actual.(time.Time)
		return ok && exp.Equal(act)
	case bool:
		act, ok := actual.(bool)
		return ok && exp == act
	case map[string]any:
		_, ok := matchSubset(exp, actual)
		return ok
	case []any:
		act, ok := actual.([]any)
		if !ok || len(act) != len(exp) {
			return false
		}
		for i := range exp {
			if !valuesEqual(exp[i], act[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func describe(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case string:
		return strconv.Quote(val)
	}
	return fmt.Sprint(v)
}
