package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, yaml string) *Scenario {
	t.Helper()
	s, err := ParseScenario([]byte(yaml))
	require.NoError(t, err)
	return s
}

func TestRun_Passing(t *testing.T) {
	s := mustParse(t, `
name: mine_twice
description: "mining pays one gem per swing"
draws: [0.5]
steps:
  - action: mine
    expect: ok
    result: { gems: 1 }
  - action: mine
    expect: ok
assertions:
  - type: trace_count
    action: mine
    count: 2
  - type: state
    field: gems
    equals: 2
`)
	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)

	require.Len(t, result.Trace, 2)
	assert.Equal(t, int64(1), result.Trace[0].Seq)
	assert.Equal(t, int64(2), result.Trace[1].Seq)
	assert.True(t, result.Trace[1].OK)
	assert.NotNil(t, result.State["gems"])
}

func TestRun_ExpectationMismatchesAreReported(t *testing.T) {
	s := mustParse(t, `
name: wrong_expectations
description: "every kind of mismatch"
draws: [0.5]
steps:
  - action: roll-skill
    expect: INSUFFICIENT_FUNDS
  - action: roll-skill
    expect: ok
  - action: claim-offline-rewards
    expect: INSUFFICIENT_FUNDS
  - action: mine
    expect: ok
    result: { gems: 3 }
assertions:
  - type: state
    field: coins
    equals: 100
`)
	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 5)
	assert.Contains(t, result.Errors[0], "step 0 (roll-skill): expected INSUFFICIENT_FUNDS, got ok")
	assert.Contains(t, result.Errors[1], "step 1 (roll-skill): expected ok, got PRECONDITION_NOT_MET")
	assert.Contains(t, result.Errors[2], "step 2 (claim-offline-rewards): expected INSUFFICIENT_FUNDS, got PRECONDITION_NOT_MET")
	assert.Contains(t, result.Errors[3], `step 3 (mine): result mismatch at "gems"`)
	assert.Contains(t, result.Errors[4], "coins = 100")

	assert.Len(t, result.Trace, 4, "steps keep running after a mismatch")
}

func TestRun_ArgumentErrorsConsumeNoSeq(t *testing.T) {
	s := mustParse(t, `
name: bad_args
description: "malformed arguments never reach the engine"
steps:
  - action: add-coins
    args: { amount: ten }
    expect: INVALID_REFERENCE
  - action: no-such-action
    expect: INVALID_REFERENCE
  - action: add-coins
    args: { amount: "10" }
    expect: ok
assertions:
  - type: state
    field: coins
    equals: 110
`)
	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)

	require.Len(t, result.Trace, 3)
	assert.Zero(t, result.Trace[0].Seq)
	assert.Zero(t, result.Trace[1].Seq)
	assert.Equal(t, int64(1), result.Trace[2].Seq)
}

func TestRun_SetupFailureAborts(t *testing.T) {
	s := mustParse(t, `
name: broken_setup
description: "setup must succeed"
setup:
  - action: roll-skill
  - action: roll-skill
steps:
  - action: mine
assertions:
  - type: trace_count
    action: mine
    count: 1
`)
	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "setup step 1 (roll-skill)")
}

func TestRun_AdvanceMovesTheClock(t *testing.T) {
	s := mustParse(t, `
name: garden
description: "the garden grows while the clock runs"
start: 2026-03-01T00:00:00Z
setup:
  - action: add-coins
    args: { amount: 1000 }
  - action: plant-seed
steps:
  - action: mine
    advance: 1h
    expect: ok
assertions:
  - type: state
    field: offlineProgress.lastSaveTime
    equals: "2026-03-01T01:00:00Z"
  - type: state
    field: gardenOfGrowth.plantedAt
    equals: "2026-03-01T00:00:00Z"
`)
	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_BalanceOverride(t *testing.T) {
	s := mustParse(t, `
name: cheap_rolls
description: "the balance section changes the engine's constants"
balance:
  starting_coins: 10
  skill_roll_cost: 10
steps:
  - action: roll-skill
    expect: ok
assertions:
  - type: state
    field: coins
    equals: 0
`)
	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_ScriptedDrawsAreReproducible(t *testing.T) {
	const yaml = `
name: scripted
description: "scripted draws replace the seeded source"
draws: [0.1, 0.2, 0.3, 0.4, 0.5, 0.6]
steps:
  - action: roll-skill
    expect: ok
assertions:
  - type: trace_count
    action: roll-skill
    count: 1
`
	first, err := Run(mustParse(t, yaml))
	require.NoError(t, err)
	second, err := Run(mustParse(t, yaml))
	require.NoError(t, err)

	assert.True(t, first.Pass, "errors: %v", first.Errors)
	assert.Equal(t, first.Trace, second.Trace)
	assert.Equal(t, first.State, second.State)
}
