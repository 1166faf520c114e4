// Package harness runs scripted game scenarios against a real engine.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: first_fight
//	description: "What this scenario validates"
//	seed: 7
//	start: 2026-05-01T09:00:00Z
//	draws: [0.1, 0.9]        # optional scripted random draws
//	balance:
//	  critical_chance: 0
//	setup:
//	  - action: add-coins
//	    args: { amount: 50 }
//	steps:
//	  - action: attack
//	    args: { hit: true }
//	    advance: 2h           # move the clock first
//	    expect: ok            # or an error code such as INSUFFICIENT_FUNDS
//	    result: { damage: 10 }
//	assertions:
//	  - type: trace_contains
//	    action: attack
//	    args: { hit: true }
//	  - type: state
//	    field: currentEnemy.hp
//	    equals: 40
//
// # Assertion Types
//
// The following assertion types are supported:
//
//   - trace_contains: a successful attempt of the action with matching args
//   - trace_order: the actions first succeed in the given order
//   - trace_count: the action succeeds exactly N times
//   - state: a dotted path into the saved state holds the given value
//
// # Deterministic Testing
//
// Every scenario runs on a fake clock, a seeded or scripted random source,
// fixed journal ids, and a fresh in-memory SQLite journal, so the same file
// always produces the same trace. Traces can be compared against golden
// files with RunWithGolden.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/first_fight.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, err := range result.Errors {
//	        log.Println(err)
//	    }
//	}
package harness
