package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/roach88/triviarpg/internal/combat"
	"github.com/roach88/triviarpg/internal/config"
	"github.com/roach88/triviarpg/internal/game"
	"github.com/roach88/triviarpg/internal/generator"
	"github.com/roach88/triviarpg/internal/random"
	"github.com/roach88/triviarpg/internal/temporal"
	"github.com/roach88/triviarpg/internal/trivia"
)

// Persister stores the engine's state between runs.
// Implemented by snapshot.Adapter.
type Persister interface {
	Save(ctx context.Context, s *game.GameState) error
	Load(ctx context.Context) (*game.GameState, error)
	Clear(ctx context.Context) error
}

// Engine owns the game state and is the only thing that changes it.
//
// Thread-safety: every method is safe for concurrent use. Actions are
// serialized by a mutex and each runs to completion before the next starts.
//
// INVARIANTS:
//   - The live state is never handed out; Snapshot returns a deep copy.
//   - A rejected action leaves the live state untouched.
//   - Every attempt, accepted or not, consumes one seq.
type Engine struct {
	mu       sync.Mutex
	state    *game.GameState
	question *trivia.Question

	clock     temporal.Clock
	seq       *Clock
	src       random.Source
	gen       *generator.Generator
	combat    *combat.Resolver
	balance   config.Balance
	questions trivia.Provider
	journal   Journal
	ids       IDGenerator
	persister Persister
	initial   *game.GameState
	onCommit  func(*game.GameState)
	logger    *slog.Logger
}

// stateFn mutates a private copy of the state. A non-nil error discards the copy.
type stateFn func(s *game.GameState, now time.Time) error

// EngineOption allows configuration of engine collaborators.
type EngineOption func(*Engine)

// WithClock sets the wall clock. Default: temporal.SystemClock.
func WithClock(c temporal.Clock) EngineOption {
	return func(e *Engine) { e.clock = c }
}

// WithSource sets the random source for generation and combat rolls.
// Default: a ChaCha8 source with a fresh crypto seed.
func WithSource(src random.Source) EngineOption {
	return func(e *Engine) { e.src = src }
}

// WithBalance sets gameplay tuning. Default: config.DefaultBalance().
func WithBalance(b config.Balance) EngineOption {
	return func(e *Engine) { e.balance = b }
}

// WithQuestions sets the question provider used by StartCombat and Answer.
// Without one, only Attack is available for combat.
func WithQuestions(p trivia.Provider) EngineOption {
	return func(e *Engine) { e.questions = p }
}

// WithJournal records every action attempt to j.
func WithJournal(j Journal) EngineOption {
	return func(e *Engine) { e.journal = j }
}

// WithSeq resumes the logical clock, e.g. after the last journaled seq.
func WithSeq(c *Clock) EngineOption {
	return func(e *Engine) { e.seq = c }
}

// WithOnCommit registers fn to receive a private copy of every committed
// state. fn runs while the engine lock is held and must not call back into
// the engine. Typically snapshot.Autosaver.Notify.
func WithOnCommit(fn func(*game.GameState)) EngineOption {
	return func(e *Engine) { e.onCommit = fn }
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) { e.logger = l }
}

// WithIDGenerator sets the journal id source. Default: UUIDv7Generator.
func WithIDGenerator(g IDGenerator) EngineOption {
	return func(e *Engine) { e.ids = g }
}

// WithPersister sets where Reset clears saved data. Load sets it too.
func WithPersister(p Persister) EngineOption {
	return func(e *Engine) { e.persister = p }
}

// WithState starts New from a copy of s instead of a fresh state.
// Derived stats are recomputed.
func WithState(s *game.GameState) EngineOption {
	return func(e *Engine) { e.initial = s }
}

// New creates an engine holding a fresh default state, or the WithState one.
func New(opts ...EngineOption) *Engine {
	e := newEngine(opts)
	if e.initial != nil {
		e.state = e.initial.Clone()
		e.state.Normalize()
		game.RecomputeStats(e.state)
		e.initial = nil
		return e
	}
	e.state = e.freshState(e.now())
	return e
}

// Load creates an engine from the state p holds. A missing or unreadable
// save falls back to a fresh state; the failure is logged, not returned.
// Offline rewards for the time away are staged and an overdue market is
// restocked.
func Load(ctx context.Context, p Persister, opts ...EngineOption) *Engine {
	e := newEngine(opts)
	e.persister = p
	now := e.now()

	loaded, err := p.Load(ctx)
	switch {
	case err != nil:
		e.logger.Warn("load failed, starting fresh", "error", err)
		loaded = e.freshState(now)
	case loaded == nil:
		e.logger.Info("no saved game, starting fresh")
		loaded = e.freshState(now)
	default:
		game.RecomputeStats(loaded)
		reward := temporal.StageOfflineRewards(loaded, now)
		e.logger.Info("saved game loaded",
			"zone", loaded.Zone,
			"level", loaded.Progression.Level,
			"offline_minutes", reward.Minutes,
		)
	}
	temporal.GrowGarden(loaded, now)
	e.refreshMarket(loaded, now, false)
	e.state = loaded
	return e
}

func newEngine(opts []EngineOption) *Engine {
	e := &Engine{
		clock:   temporal.SystemClock{},
		seq:     NewClock(),
		balance: config.DefaultBalance(),
		ids:     UUIDv7Generator{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.src == nil {
		e.src = random.New(mustSeed(e.logger))
	}
	e.gen = generator.New(e.src, generator.WithWeights(e.balance.Weights()))
	e.combat = combat.New(e.gen, combat.Options{
		CriticalChance: e.balance.CriticalChance,
		Scaling:        generator.Scaling(e.balance.EnemyScaling),
		Revival:        e.balance.Revival,
	})
	return e
}

func mustSeed(logger *slog.Logger) int64 {
	seed, err := random.NewSeed()
	if err != nil {
		logger.Warn("crypto seed unavailable, using wall clock", "error", err)
		return time.Now().UnixNano()
	}
	return seed
}

func (e *Engine) now() time.Time {
	return temporal.Stamp(e.clock.Now())
}

func (e *Engine) freshState(now time.Time) *game.GameState {
	s := game.NewState(now)
	s.Coins = e.balance.StartingCoins
	s.OfflineProgress.MaxOfflineHours = e.balance.MaxOfflineHours
	return s
}

func (e *Engine) refreshMarket(s *game.GameState, now time.Time, force bool) bool {
	return temporal.RefreshMarket(s, e.gen, now, e.balance.MarketSize, e.balance.MarketInterval(), force)
}

// Snapshot returns a deep copy of the current state. Later actions never
// change a snapshot already returned.
func (e *Engine) Snapshot() *game.GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// Seq returns the seq of the most recent action attempt.
func (e *Engine) Seq() int64 {
	return e.seq.Current()
}

// Balance returns the tuning the engine runs with.
func (e *Engine) Balance() config.Balance {
	return e.balance
}

// apply runs fn against a copy of the state and commits the copy only when
// fn succeeds. The garden is settled up to now before fn runs.
func (e *Engine) apply(ctx context.Context, action string, args Args, fn stateFn) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.applyLocked(ctx, action, args, fn)
}

func (e *Engine) applyLocked(ctx context.Context, action string, args Args, fn stateFn) error {
	now := e.now()
	seq := e.seq.Next()

	next := e.state.Clone()
	temporal.GrowGarden(next, now)
	err := fn(next, now)
	if err == nil {
		temporal.Touch(next, now)
		e.state = next
		if e.onCommit != nil {
			e.onCommit(next.Clone())
		}
		e.logger.Debug("action applied", "seq", seq, "action", action)
	} else {
		e.logger.Debug("action rejected", "seq", seq, "action", action, "code", game.CodeOf(err), "error", err)
	}

	e.record(ctx, seq, action, args, now, err)
	return err
}

func (e *Engine) record(ctx context.Context, seq int64, action string, args Args, now time.Time, actionErr error) {
	if e.journal == nil {
		return
	}
	if args == nil {
		args = Args{}
	}
	encoded, err := MarshalCanonical(args)
	if err != nil {
		e.logger.Warn("journal args not encodable", "seq", seq, "action", action, "error", err)
		encoded = []byte(`{}`)
	}
	rec := ActionRecord{
		ID:     e.ids.Generate(),
		Seq:    seq,
		Action: action,
		Args:   encoded,
		OK:     actionErr == nil,
		At:     now,
	}
	if actionErr != nil {
		rec.Error = actionErr.Error()
	}
	if err := e.journal.RecordAction(ctx, rec); err != nil {
		e.logger.Error("journal write failed", "seq", seq, "action", action, "error", err)
	}
}
