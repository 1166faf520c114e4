package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var start = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeClock_StartsAtStart(t *testing.T) {
	clock := NewFakeClock(start)
	assert.Equal(t, start, clock.Now())
}

func TestFakeClock_AdvanceAndSet(t *testing.T) {
	clock := NewFakeClock(start)

	clock.Advance(90 * time.Minute)
	assert.Equal(t, start.Add(90*time.Minute), clock.Now())

	clock.Set(start.Add(-time.Hour))
	assert.Equal(t, start.Add(-time.Hour), clock.Now())
}

func TestFakeClock_ThreadSafe(t *testing.T) {
	clock := NewFakeClock(start)
	const goroutines = 50

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			clock.Advance(time.Second)
			_ = clock.Now()
		}()
	}
	wg.Wait()

	assert.Equal(t, start.Add(goroutines*time.Second), clock.Now())
}
