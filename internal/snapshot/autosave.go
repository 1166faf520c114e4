package snapshot

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/roach88/triviarpg/internal/game"
)

// DefaultAutosaveDelay is the quiet period before a pending state is saved.
const DefaultAutosaveDelay = time.Second

// Saver persists a state.
type Saver interface {
	Save(ctx context.Context, s *game.GameState) error
}

// Autosaver debounces saves. Notify records the latest state; Run writes it
// once delay has passed without another Notify. Bursts of changes collapse
// into a single write of the newest state.
//
// The signal channel has a buffer of one, so any number of notifications
// between two loop iterations wake the loop once.
type Autosaver struct {
	saver  Saver
	delay  time.Duration
	logger *slog.Logger

	mu      sync.Mutex
	pending *game.GameState
	signal  chan struct{}
}

// NewAutosaver creates an autosaver. A non-positive delay uses
// DefaultAutosaveDelay and a nil logger uses slog.Default().
func NewAutosaver(saver Saver, delay time.Duration, logger *slog.Logger) *Autosaver {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Autosaver{
		saver:  saver,
		delay:  delay,
		logger: logger,
		signal: make(chan struct{}, 1),
	}
}

// Notify schedules s to be saved. The caller must not mutate s afterwards.
// Safe to call from any goroutine.
func (a *Autosaver) Notify(s *game.GameState) {
	a.mu.Lock()
	a.pending = s
	a.mu.Unlock()

	select {
	case a.signal <- struct{}{}:
	default:
	}
}

// Pending reports whether a notified state has not been saved yet.
func (a *Autosaver) Pending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending != nil
}

func (a *Autosaver) take() *game.GameState {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := a.pending
	a.pending = nil
	return s
}

// Flush saves the pending state now, if there is one. The error is logged
// and also returned for callers that want to report it.
func (a *Autosaver) Flush(ctx context.Context) error {
	s := a.take()
	if s == nil {
		return nil
	}
	if err := a.saver.Save(ctx, s); err != nil {
		a.logger.Error("autosave failed", "error", err)
		return err
	}
	a.logger.Debug("autosaved", "zone", s.Zone, "coins", s.Coins)
	return nil
}

// Run drives the debounce loop until ctx is cancelled, then flushes whatever
// is still pending. Save failures never stop the loop.
func (a *Autosaver) Run(ctx context.Context) error {
	a.logger.Info("autosaver started", "delay", a.delay)
	defer a.logger.Info("autosaver stopped")

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			_ = a.Flush(context.WithoutCancel(ctx))
			return nil
		case <-a.signal:
			if timer == nil {
				timer = time.NewTimer(a.delay)
			} else {
				timer.Reset(a.delay)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			_ = a.Flush(ctx)
		}
	}
}
