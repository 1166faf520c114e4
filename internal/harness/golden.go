package harness

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/triviarpg/internal/engine"
)

// TraceSnapshot renders a scenario trace one attempt per line:
//
//	<seq> <action> <canonical args> ok|<error code>
//
// Attempts rejected before they consumed a seq show "-" for the seq.
// Results are left out; they are checked by step expectations instead.
func TraceSnapshot(scenarioName string, trace []TraceEvent) []byte {
	var buf strings.Builder
	fmt.Fprintf(&buf, "# %s\n", scenarioName)
	for _, ev := range trace {
		buf.WriteString(traceLine(ev))
		buf.WriteByte('\n')
	}
	return []byte(buf.String())
}

func traceLine(ev TraceEvent) string {
	seq := "-"
	if ev.Seq > 0 {
		seq = fmt.Sprint(ev.Seq)
	}
	args := map[string]any(ev.Args)
	if args == nil {
		args = map[string]any{}
	}
	encoded, err := engine.MarshalCanonical(args)
	if err != nil {
		encoded = []byte(fmt.Sprintf("%v", ev.Args))
	}
	outcome := "ok"
	if !ev.OK {
		outcome = ev.Code
	}
	return fmt.Sprintf("%s %s %s %s", seq, ev.Action, encoded, outcome)
}

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns the result so callers can also inspect Pass and Errors.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares the given result's trace against a golden file
// without re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, TraceSnapshot(scenarioName, result.Trace))
}
