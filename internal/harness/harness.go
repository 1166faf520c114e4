package harness

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/triviarpg/internal/engine"
	"github.com/roach88/triviarpg/internal/game"
	"github.com/roach88/triviarpg/internal/random"
	"github.com/roach88/triviarpg/internal/snapshot"
	"github.com/roach88/triviarpg/internal/store"
	"github.com/roach88/triviarpg/internal/testutil"
	"github.com/roach88/triviarpg/internal/trivia"
)

// Harness is the test execution engine.
// It runs scenarios with a fake clock and a reproducible random source.
type Harness struct {
	store  *store.Store
	engine *engine.Engine
	clock  *testutil.FakeClock
	logger *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation; the
// database doubles as the engine's action journal.
//
// Execution flow:
// 1. Create fresh in-memory database
// 2. Build an engine on the scenario's clock, draws and balance
// 3. Execute setup steps (any failure aborts the run)
// 4. Execute steps, checking each expectation
// 5. Evaluate assertions against the trace and final state
func Run(scenario *Scenario) (*Result, error) {
	start, err := scenario.StartTime()
	if err != nil {
		return nil, err
	}
	balance, err := scenario.BalanceConfig()
	if err != nil {
		return nil, err
	}

	st, err := store.Open(store.MemoryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	var src random.Source = random.New(scenario.Seed)
	if len(scenario.Draws) > 0 {
		src = testutil.NewScriptedSource(scenario.Draws...)
	}
	// The question bank draws from its own stream so scripted draws only
	// feed the game rules.
	bank, err := trivia.DefaultBank(random.New(scenario.Seed))
	if err != nil {
		return nil, fmt.Errorf("failed to load question bank: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := testutil.NewFakeClock(start)
	eng := engine.New(
		engine.WithClock(clock),
		engine.WithSource(src),
		engine.WithBalance(balance),
		engine.WithQuestions(bank),
		engine.WithJournal(st),
		engine.WithIDGenerator(engine.NewFixedGenerator(scenario.Name)),
		engine.WithLogger(logger),
	)

	h := &Harness{
		store:  st,
		engine: eng,
		clock:  clock,
		logger: logger,
	}

	ctx := context.Background()
	result := NewResult()

	if err := h.executeSetup(ctx, scenario.Setup, result); err != nil {
		return nil, fmt.Errorf("failed to execute setup: %w", err)
	}

	if err := h.executeSteps(ctx, scenario.Steps, result); err != nil {
		return nil, fmt.Errorf("failed to execute steps: %w", err)
	}

	if err := h.checkJournal(ctx, result); err != nil {
		return nil, err
	}

	state, err := stateTree(eng.Snapshot())
	if err != nil {
		return nil, err
	}
	result.State = state

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}

	return result, nil
}

// executeSetup runs all setup steps. Setup establishes the starting point,
// so a rejected setup action is an error rather than a failed expectation.
func (h *Harness) executeSetup(ctx context.Context, setup []ActionStep, result *Result) error {
	for i, step := range setup {
		ev, err := h.invoke(ctx, step)
		result.AddTrace(ev)
		if err != nil {
			return fmt.Errorf("setup step %d (%s): %w", i, step.Action, err)
		}
	}
	return nil
}

// executeSteps runs every step and records expectation mismatches on the
// result. Later steps still run after a mismatch.
func (h *Harness) executeSteps(ctx context.Context, steps []Step, result *Result) error {
	for i, step := range steps {
		if step.Advance != "" {
			d, err := time.ParseDuration(step.Advance)
			if err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
			h.clock.Advance(d)
		}

		ev, err := h.invoke(ctx, step.ActionStep)
		result.AddTrace(ev)

		if err != nil && game.CodeOf(err) == "" {
			// Not a game rejection: the run itself is broken.
			return fmt.Errorf("step %d (%s): %w", i, step.Action, err)
		}

		switch {
		case step.Expect == "":
		case step.Expect == ExpectOK && !ev.OK:
			result.AddError(fmt.Sprintf("step %d (%s): expected ok, got %s", i, step.Action, ev.Code))
		case step.Expect != ExpectOK && ev.OK:
			result.AddError(fmt.Sprintf("step %d (%s): expected %s, got ok", i, step.Action, step.Expect))
		case step.Expect != ExpectOK && ev.Code != step.Expect:
			result.AddError(fmt.Sprintf("step %d (%s): expected %s, got %s", i, step.Action, step.Expect, ev.Code))
		}

		if ev.OK && step.Result != nil {
			if path, ok := matchSubset(step.Result, ev.Result); !ok {
				result.AddError(fmt.Sprintf("step %d (%s): result mismatch at %q: got %v",
					i, step.Action, path, lookupOrNil(ev.Result, path)))
			}
		}

		h.logger.Debug("step completed", "step", i, "action", step.Action, "seq", ev.Seq, "ok", ev.OK)
	}
	return nil
}

// invoke runs one action and describes it as a trace event.
func (h *Harness) invoke(ctx context.Context, step ActionStep) (TraceEvent, error) {
	before := h.engine.Seq()
	out, err := h.engine.Invoke(ctx, step.Action, engine.Args(step.Args))

	ev := TraceEvent{
		Action: step.Action,
		Args:   step.Args,
		OK:     err == nil,
	}
	if seq := h.engine.Seq(); seq != before {
		ev.Seq = seq
	}
	if err != nil {
		ev.Code = string(game.CodeOf(err))
		return ev, err
	}
	if out != nil {
		tree, terr := toTree(out)
		if terr != nil {
			return ev, fmt.Errorf("encode %s result: %w", step.Action, terr)
		}
		ev.Result = tree
	}
	return ev, nil
}

// checkJournal verifies that the store journaled exactly the attempts that
// consumed a seq, with matching outcomes.
func (h *Harness) checkJournal(ctx context.Context, result *Result) error {
	records, err := h.store.ReadActions(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}

	var sequenced []TraceEvent
	for _, ev := range result.Trace {
		if ev.Seq > 0 {
			sequenced = append(sequenced, ev)
		}
	}
	if len(records) != len(sequenced) {
		result.AddError(fmt.Sprintf("journal holds %d records, trace has %d sequenced attempts",
			len(records), len(sequenced)))
		return nil
	}
	for i, rec := range records {
		ev := sequenced[i]
		if rec.Seq != ev.Seq || rec.Action != ev.Action || rec.OK != ev.OK {
			result.AddError(fmt.Sprintf("journal record %d is seq %d %s ok=%t, trace has seq %d %s ok=%t",
				i, rec.Seq, rec.Action, rec.OK, ev.Seq, ev.Action, ev.OK))
		}
	}
	return nil
}

// stateTree renders s the way it is saved, as a generic tree.
func stateTree(s *game.GameState) (map[string]any, error) {
	data, err := snapshot.Encode(s)
	if err != nil {
		return nil, err
	}
	tree, err := snapshot.DecodeTree(data)
	if err != nil {
		return nil, err
	}
	m, ok := tree.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("state encodes as %T, want an object", tree)
	}
	return m, nil
}

// toTree converts an action result to the same generic form as the state.
func toTree(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return snapshot.DecodeTree(data)
}
