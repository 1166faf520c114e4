package harness

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrace() []TraceEvent {
	return []TraceEvent{
		{Seq: 1, Action: "add-coins", Args: map[string]any{"amount": -50}, OK: true},
		{Seq: 2, Action: "roll-skill", OK: false, Code: "INSUFFICIENT_FUNDS"},
		{Seq: 3, Action: "add-coins", Args: map[string]any{"amount": 50}, OK: true},
		{Seq: 4, Action: "roll-skill", OK: true},
		{Action: "attack", Args: map[string]any{"hit": "maybe"}, Code: "INVALID_REFERENCE"},
	}
}

func TestAssertTraceContains(t *testing.T) {
	trace := sampleTrace()

	assert.NoError(t, assertTraceContains(trace, Assertion{Action: "add-coins", Args: map[string]any{"amount": 50}}))
	assert.NoError(t, assertTraceContains(trace, Assertion{Action: "roll-skill"}))

	err := assertTraceContains(trace, Assertion{Action: "add-coins", Args: map[string]any{"amount": 7}})
	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, AssertTraceContains, ae.Type)
	assert.Equal(t, "not found in trace", ae.Actual)

	assert.Error(t, assertTraceContains(trace, Assertion{Action: "attack"}), "rejected attempts do not count")
}

func TestAssertTraceOrder(t *testing.T) {
	trace := sampleTrace()

	assert.NoError(t, assertTraceOrder(trace, Assertion{Actions: []string{"add-coins", "roll-skill"}}))

	err := assertTraceOrder(trace, Assertion{Actions: []string{"roll-skill", "add-coins"}})
	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Contains(t, ae.Actual, "roll-skill (pos 4) should be before add-coins (pos 1)")

	err = assertTraceOrder(trace, Assertion{Actions: []string{"add-coins", "attack"}})
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "missing action: attack", ae.Actual)
}

func TestAssertTraceCount(t *testing.T) {
	trace := sampleTrace()

	assert.NoError(t, assertTraceCount(trace, Assertion{Action: "add-coins", Count: 2}))
	assert.NoError(t, assertTraceCount(trace, Assertion{Action: "roll-skill", Count: 1}))
	assert.NoError(t, assertTraceCount(trace, Assertion{Action: "attack", Count: 0}))
	assert.Error(t, assertTraceCount(trace, Assertion{Action: "roll-skill", Count: 2}))
}

func TestAssertState(t *testing.T) {
	expires := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	state := map[string]any{
		"coins":        json.Number("120"),
		"inCombat":     false,
		"currentEnemy": nil,
		"skills": map[string]any{
			"activeMenuSkill": map[string]any{"expiresAt": expires, "name": "Luck Gem"},
		},
		"inventory": map[string]any{
			"weapons": []any{map[string]any{"level": json.Number("3")}},
		},
	}

	tests := []struct {
		name   string
		field  string
		equals any
		ok     bool
	}{
		{"int vs json.Number", "coins", 120, true},
		{"float vs json.Number", "coins", 120.0, true},
		{"wrong number", "coins", 121, false},
		{"bool", "inCombat", false, true},
		{"null", "currentEnemy", nil, true},
		{"timestamp as string", "skills.activeMenuSkill.expiresAt", "2026-05-01T10:00:00Z", true},
		{"timestamp with millis", "skills.activeMenuSkill.expiresAt", "2026-05-01T10:00:00.000Z", true},
		{"timestamp in another zone", "skills.activeMenuSkill.expiresAt", "2026-05-01T12:00:00+02:00", true},
		{"wrong timestamp", "skills.activeMenuSkill.expiresAt", "2026-05-01T10:00:01Z", false},
		{"string", "skills.activeMenuSkill.name", "Luck Gem", true},
		{"slice index", "inventory.weapons.0.level", 3, true},
		{"subset map", "skills.activeMenuSkill", map[string]any{"name": "Luck Gem"}, true},
		{"number is not a string", "coins", "120", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := assertState(state, Assertion{Field: tt.field, Equals: tt.equals})
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}

	t.Run("missing field", func(t *testing.T) {
		for _, field := range []string{"gems", "inventory.weapons.1", "inventory.weapons.x", "coins.amount"} {
			err := assertState(state, Assertion{Field: field, Equals: 0})
			var ae *AssertionError
			require.ErrorAs(t, err, &ae, field)
			assert.Equal(t, "no such field", ae.Actual)
		}
	})
}

func TestMatchSubset(t *testing.T) {
	actual := map[string]any{
		"damage":  json.Number("10"),
		"victory": true,
		"drop":    map[string]any{"rarity": "epic", "level": json.Number("1")},
	}

	path, ok := matchSubset(map[string]any{"damage": 10}, actual)
	assert.True(t, ok)
	assert.Empty(t, path)

	_, ok = matchSubset(map[string]any{"drop": map[string]any{"rarity": "epic"}}, actual)
	assert.True(t, ok)

	path, ok = matchSubset(map[string]any{"drop": map[string]any{"rarity": "rare"}}, actual)
	assert.False(t, ok)
	assert.Equal(t, "drop.rarity", path)

	path, ok = matchSubset(map[string]any{"coins": 20}, actual)
	assert.False(t, ok)
	assert.Equal(t, "coins", path)

	_, ok = matchSubset(map[string]any{"damage": 10}, nil)
	assert.False(t, ok)
}

func TestMatchArgs(t *testing.T) {
	args := map[string]any{"kind": "weapon", "ids": []any{"a", "b"}, "amount": 5}

	assert.True(t, matchArgs(args, nil))
	assert.True(t, matchArgs(args, map[string]any{"kind": "weapon"}))
	assert.True(t, matchArgs(args, map[string]any{"ids": []any{"a", "b"}, "amount": 5}))
	assert.False(t, matchArgs(args, map[string]any{"ids": []any{"a"}}))
	assert.False(t, matchArgs(args, map[string]any{"missing": 1}))
	assert.False(t, matchArgs(nil, map[string]any{"kind": "weapon"}))
}

func TestEvaluateAssertions(t *testing.T) {
	result := NewResult()
	result.Trace = sampleTrace()
	result.State = map[string]any{"coins": json.Number("0")}

	failures := EvaluateAssertions(result, []Assertion{
		{Type: AssertTraceCount, Action: "roll-skill", Count: 1},
		{Type: AssertState, Field: "coins", Equals: 0},
		{Type: AssertState, Field: "coins", Equals: 5},
		{Type: "bogus"},
	})
	require.Len(t, failures, 2)
	assert.Contains(t, failures[0], "assertions[2]")
	assert.Contains(t, failures[0], "coins = 5")
	assert.Contains(t, failures[1], `unknown assertion type "bogus"`)
}

func TestAssertionError_Message(t *testing.T) {
	err := &AssertionError{
		Type:     AssertTraceCount,
		Expected: "2 successful roll-skill",
		Actual:   "1",
		Trace:    sampleTrace()[:2],
	}
	msg := err.Error()
	assert.Contains(t, msg, "Assertion failed: trace_count")
	assert.Contains(t, msg, "Expected: 2 successful roll-skill")
	assert.Contains(t, msg, "1 add-coins {\"amount\":-50} ok")
	assert.Contains(t, msg, "2 roll-skill {} INSUFFICIENT_FUNDS")
}
