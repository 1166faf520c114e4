package snapshot

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/triviarpg/internal/game"
)

type recordingSaver struct {
	mu    sync.Mutex
	saves []*game.GameState
	fail  bool
}

func (r *recordingSaver) Save(_ context.Context, s *game.GameState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("write failed")
	}
	r.saves = append(r.saves, s)
	return nil
}

func (r *recordingSaver) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.saves)
}

func (r *recordingSaver) last() *game.GameState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves[len(r.saves)-1]
}

func (r *recordingSaver) setFail(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail = v
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func stateAtZone(z int) *game.GameState {
	s := game.NewState(now)
	s.Zone = z
	return s
}

func TestAutosaver_CoalescesBursts(t *testing.T) {
	saver := &recordingSaver{}
	a := NewAutosaver(saver, 20*time.Millisecond, discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = a.Run(ctx)
	}()

	for z := 1; z <= 3; z++ {
		a.Notify(stateAtZone(z))
	}

	require.Eventually(t, func() bool { return saver.count() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 3, saver.last().Zone)
	assert.False(t, a.Pending())

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 1, saver.count(), "no extra writes without new notifications")

	cancel()
	<-done
}

func TestAutosaver_FlushOnCancel(t *testing.T) {
	saver := &recordingSaver{}
	a := NewAutosaver(saver, time.Hour, discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = a.Run(ctx)
	}()

	a.Notify(stateAtZone(9))
	cancel()
	<-done

	require.Equal(t, 1, saver.count())
	assert.Equal(t, 9, saver.last().Zone)
}

func TestAutosaver_Flush(t *testing.T) {
	saver := &recordingSaver{}
	a := NewAutosaver(saver, time.Hour, discardLogger())
	ctx := context.Background()

	require.NoError(t, a.Flush(ctx), "nothing pending")
	assert.Equal(t, 0, saver.count())

	a.Notify(stateAtZone(4))
	require.True(t, a.Pending())
	require.NoError(t, a.Flush(ctx))
	assert.Equal(t, 1, saver.count())
	assert.False(t, a.Pending())
}

func TestAutosaver_SurvivesSaveFailures(t *testing.T) {
	saver := &recordingSaver{fail: true}
	a := NewAutosaver(saver, 10*time.Millisecond, discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = a.Run(ctx)
	}()

	a.Notify(stateAtZone(2))
	require.Eventually(t, func() bool { return !a.Pending() }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, saver.count())

	saver.setFail(false)
	a.Notify(stateAtZone(5))
	require.Eventually(t, func() bool { return saver.count() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 5, saver.last().Zone)

	cancel()
	<-done
}
