package engine

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// ActionRecord is one journal entry: an attempted action and its result.
type ActionRecord struct {
	ID     string          `json:"id"`
	Seq    int64           `json:"seq"`
	Action string          `json:"action"`
	Args   json.RawMessage `json:"args"`
	OK     bool            `json:"ok"`
	Error  string          `json:"error,omitempty"`
	At     time.Time       `json:"at"`
}

// Journal receives a record of every action the engine attempts.
type Journal interface {
	RecordAction(ctx context.Context, rec ActionRecord) error
}

// MemoryJournal keeps records in memory.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type MemoryJournal struct {
	mu      sync.Mutex
	records []ActionRecord
}

func (j *MemoryJournal) RecordAction(_ context.Context, rec ActionRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.records = append(j.records, rec)
	return nil
}

// Records returns a copy of everything recorded so far.
func (j *MemoryJournal) Records() []ActionRecord {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]ActionRecord, len(j.records))
	copy(out, j.records)
	return out
}
