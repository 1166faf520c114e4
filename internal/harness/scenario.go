package harness

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/triviarpg/internal/config"
)

// DefaultStart is the wall clock a scenario starts at when it names none.
var DefaultStart = time.Date(2026, time.May, 1, 9, 0, 0, 0, time.UTC)

// Scenario defines a game scenario: a starting point, a list of actions
// with their expected outcomes, and assertions on the trace and final state.
type Scenario struct {
	// Name uniquely identifies this scenario. It also prefixes the ids of
	// journal records and names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Seed drives the random source when Draws is empty.
	Seed int64 `yaml:"seed"`

	// Start is the RFC 3339 instant the fake clock starts at.
	Start string `yaml:"start,omitempty"`

	// Draws scripts the random source. Once they run out every draw is 0.5.
	Draws []float64 `yaml:"draws,omitempty"`

	// Balance overrides individual balance constants. Keys follow the
	// config file's balance section.
	Balance yaml.Node `yaml:"balance,omitempty"`

	// Setup runs before the steps. Every setup action must succeed.
	Setup []ActionStep `yaml:"setup,omitempty"`

	// Steps are the actions under test.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final trace and state.
	// Supported types: trace_contains, trace_order, trace_count, state
	Assertions []Assertion `yaml:"assertions"`
}

// ActionStep is a single action invocation.
type ActionStep struct {
	Action string         `yaml:"action"`
	Args   map[string]any `yaml:"args,omitempty"`
}

// Step is an action under test.
type Step struct {
	ActionStep `yaml:",inline"`

	// Advance moves the clock forward before the action runs
	// (a time.ParseDuration string such as "2h").
	Advance string `yaml:"advance,omitempty"`

	// Expect is "ok" or the error code the action must fail with.
	// Empty accepts either.
	Expect string `yaml:"expect,omitempty"`

	// Result is matched against the action's result with subset semantics.
	Result map[string]any `yaml:"result,omitempty"`
}

// ExpectOK marks a step that must succeed.
const ExpectOK = "ok"

// Assertion validates trace or final state.
type Assertion struct {
	// Type specifies the assertion type:
	// - "trace_contains": Check action appears in trace with args
	// - "trace_order": Check actions appear in order
	// - "trace_count": Check action appears exactly N times
	// - "state": Check a field of the final state
	Type string `yaml:"type"`

	// Action is the action name (used by trace_contains, trace_count).
	Action string `yaml:"action,omitempty"`

	// Args are the expected action arguments (used by trace_contains).
	// Subset match - only specified fields are validated.
	Args map[string]any `yaml:"args,omitempty"`

	// Count is the expected number of occurrences (used by trace_count).
	Count int `yaml:"count,omitempty"`

	// Actions is the expected action order (used by trace_order).
	Actions []string `yaml:"actions,omitempty"`

	// Field is a dotted path into the saved state, e.g.
	// "currentEnemy.hp" or "inventory.weapons.0.level" (used by state).
	Field string `yaml:"field,omitempty"`

	// Equals is the expected value at Field (used by state). Timestamps
	// compare against RFC 3339 strings.
	Equals any `yaml:"equals,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
	AssertState         = "state"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// StartTime returns the parsed Start, or DefaultStart when unset.
func (s *Scenario) StartTime() (time.Time, error) {
	if s.Start == "" {
		return DefaultStart, nil
	}
	t, err := time.Parse(time.RFC3339, s.Start)
	if err != nil {
		return time.Time{}, fmt.Errorf("start: %w", err)
	}
	return t.UTC(), nil
}

// BalanceConfig returns the default balance with the scenario's overrides
// applied.
func (s *Scenario) BalanceConfig() (config.Balance, error) {
	b := config.DefaultBalance()
	if s.Balance.Kind == 0 {
		return b, nil
	}
	raw, err := yaml.Marshal(&s.Balance)
	if err != nil {
		return b, fmt.Errorf("balance: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&b); err != nil {
		return b, fmt.Errorf("balance: %w", err)
	}
	if err := b.Validate(); err != nil {
		return b, fmt.Errorf("balance: %w", err)
	}
	return b, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	if _, err := s.StartTime(); err != nil {
		return err
	}

	if _, err := s.BalanceConfig(); err != nil {
		return err
	}

	for i, step := range s.Setup {
		if step.Action == "" {
			return fmt.Errorf("setup[%d]: action is required", i)
		}
	}

	for i, step := range s.Steps {
		if step.Action == "" {
			return fmt.Errorf("steps[%d]: action is required", i)
		}
		if step.Advance != "" {
			d, err := time.ParseDuration(step.Advance)
			if err != nil {
				return fmt.Errorf("steps[%d].advance: %w", i, err)
			}
			if d < 0 {
				return fmt.Errorf("steps[%d].advance: clock cannot move backwards", i)
			}
		}
		if step.Result != nil && step.Expect != ExpectOK {
			return fmt.Errorf("steps[%d]: result requires expect: ok", i)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTraceContains:
		if a.Action == "" {
			return fmt.Errorf("assertions[%d]: action is required for trace_contains", index)
		}
	case AssertTraceOrder:
		if len(a.Actions) < 2 {
			return fmt.Errorf("assertions[%d]: trace_order needs at least two actions", index)
		}
	case AssertTraceCount:
		if a.Action == "" {
			return fmt.Errorf("assertions[%d]: action is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative", index)
		}
	case AssertState:
		if a.Field == "" {
			return fmt.Errorf("assertions[%d]: field is required for state", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown type %q", index, a.Type)
	}

	return nil
}
