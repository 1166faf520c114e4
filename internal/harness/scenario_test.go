package harness

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/triviarpg/internal/config"
)

const minimalScenario = `
name: minimal
description: "one step"
steps:
  - action: mine
assertions:
  - type: trace_count
    action: mine
    count: 1
`

func TestParseScenario_Minimal(t *testing.T) {
	s, err := ParseScenario([]byte(minimalScenario))
	require.NoError(t, err)

	assert.Equal(t, "minimal", s.Name)
	require.Len(t, s.Steps, 1)
	assert.Equal(t, "mine", s.Steps[0].Action)
	assert.Empty(t, s.Steps[0].Expect)

	start, err := s.StartTime()
	require.NoError(t, err)
	assert.Equal(t, DefaultStart, start)

	b, err := s.BalanceConfig()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultBalance(), b)
}

func TestParseScenario_Full(t *testing.T) {
	s, err := ParseScenario([]byte(`
name: full
description: "every field"
seed: 42
start: 2026-01-02T03:04:05+02:00
draws: [0.1, 0.9]
balance:
  skill_roll_cost: 30
  revival: true
setup:
  - action: add-coins
    args: { amount: 5 }
steps:
  - action: roll-skill
    advance: 90m
    expect: ok
    result: { type: luck_gem }
assertions:
  - type: state
    field: coins
    equals: 75
`))
	require.NoError(t, err)

	assert.Equal(t, int64(42), s.Seed)
	assert.Equal(t, []float64{0.1, 0.9}, s.Draws)
	require.Len(t, s.Setup, 1)
	assert.Equal(t, map[string]any{"amount": 5}, s.Setup[0].Args)
	assert.Equal(t, "90m", s.Steps[0].Advance)
	assert.Equal(t, map[string]any{"type": "luck_gem"}, s.Steps[0].Result)
	assert.Equal(t, 75, s.Assertions[0].Equals)

	start, err := s.StartTime()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 2, 1, 4, 5, 0, time.UTC), start)

	b, err := s.BalanceConfig()
	require.NoError(t, err)
	assert.Equal(t, 30, b.SkillRollCost)
	assert.True(t, b.Revival)
	assert.Equal(t, config.DefaultBalance().StartingCoins, b.StartingCoins, "unset keys keep their defaults")
}

func TestParseScenario_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "unknown field",
			yaml: minimalScenario + "assertion: []\n",
			want: "failed to parse YAML",
		},
		{
			name: "missing name",
			yaml: "description: x\nsteps: [{action: mine}]\nassertions: [{type: trace_count, action: mine}]\n",
			want: "name is required",
		},
		{
			name: "missing description",
			yaml: "name: x\nsteps: [{action: mine}]\nassertions: [{type: trace_count, action: mine}]\n",
			want: "description is required",
		},
		{
			name: "no steps",
			yaml: "name: x\ndescription: x\nassertions: [{type: trace_count, action: mine}]\n",
			want: "steps list is required",
		},
		{
			name: "no assertions",
			yaml: "name: x\ndescription: x\nsteps: [{action: mine}]\n",
			want: "assertions list is required",
		},
		{
			name: "bad start",
			yaml: minimalScenario + "start: yesterday\n",
			want: "start:",
		},
		{
			name: "unknown balance key",
			yaml: minimalScenario + "balance:\n  startng_coins: 5\n",
			want: "balance:",
		},
		{
			name: "invalid balance value",
			yaml: minimalScenario + "balance:\n  enemy_scaling: exponential\n",
			want: "balance:",
		},
		{
			name: "step without action",
			yaml: "name: x\ndescription: x\nsteps: [{expect: ok}]\nassertions: [{type: trace_count, action: mine}]\n",
			want: "steps[0]: action is required",
		},
		{
			name: "bad advance",
			yaml: "name: x\ndescription: x\nsteps: [{action: mine, advance: soon}]\nassertions: [{type: trace_count, action: mine}]\n",
			want: "steps[0].advance",
		},
		{
			name: "negative advance",
			yaml: "name: x\ndescription: x\nsteps: [{action: mine, advance: -1h}]\nassertions: [{type: trace_count, action: mine}]\n",
			want: "backwards",
		},
		{
			name: "result without ok",
			yaml: "name: x\ndescription: x\nsteps: [{action: mine, result: {gems: 1}}]\nassertions: [{type: trace_count, action: mine}]\n",
			want: "result requires expect: ok",
		},
		{
			name: "setup without action",
			yaml: "name: x\ndescription: x\nsetup: [{args: {}}]\nsteps: [{action: mine}]\nassertions: [{type: trace_count, action: mine}]\n",
			want: "setup[0]: action is required",
		},
		{
			name: "unknown assertion",
			yaml: "name: x\ndescription: x\nsteps: [{action: mine}]\nassertions: [{type: final_state}]\n",
			want: `unknown type "final_state"`,
		},
		{
			name: "state without field",
			yaml: "name: x\ndescription: x\nsteps: [{action: mine}]\nassertions: [{type: state, equals: 1}]\n",
			want: "field is required",
		},
		{
			name: "short trace_order",
			yaml: "name: x\ndescription: x\nsteps: [{action: mine}]\nassertions: [{type: trace_order, actions: [mine]}]\n",
			want: "at least two actions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minimal.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalScenario), 0o644))

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "minimal", s.Name)

	_, err = LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
