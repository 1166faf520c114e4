package engine

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator issues journal entry ids.
// Implemented by UUIDv7Generator (production) and FixedGenerator (tests).
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 ids, so journal ids sort
// roughly by creation time even across engine restarts.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate panics if the system entropy source fails.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined ids, then numbered fallbacks, so
// golden traces stay stable.
//
// Thread-safety: FixedGenerator is safe for concurrent use via internal mutex.
type FixedGenerator struct {
	mu     sync.Mutex
	prefix string
	ids    []string
	n      int
}

// NewFixedGenerator creates a generator that returns ids in order and
// afterwards prefix-1, prefix-2 and so on.
func NewFixedGenerator(prefix string, ids ...string) *FixedGenerator {
	return &FixedGenerator{prefix: prefix, ids: ids}
}

func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.n++
	if len(g.ids) > 0 {
		id := g.ids[0]
		g.ids = g.ids[1:]
		return id
	}
	return g.prefix + "-" + strconv.Itoa(g.n)
}
