package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/roach88/triviarpg/internal/engine"
)

// RecordAction appends one journal entry.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - re-recording an entry
// with the same id is silently ignored.
func (s *Store) RecordAction(ctx context.Context, rec engine.ActionRecord) error {
	args := string(rec.Args)
	if args == "" {
		args = "{}"
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO actions (seq, id, action, args, ok, error, at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		rec.Seq,
		rec.ID,
		rec.Action,
		args,
		rec.OK,
		rec.Error,
		rec.At.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record action: %w", err)
	}
	return nil
}

// LastSeq returns the highest journaled seq, or 0 for an empty journal.
// An engine resumes its logical clock from here.
func (s *Store) LastSeq(ctx context.Context) (int64, error) {
	var seq int64
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM actions`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("last seq: %w", err)
	}
	return seq, nil
}

// ReadActions returns the newest limit entries in seq order. A non-positive
// limit returns the whole journal.
//
// Returns an empty slice (not nil) when the journal is empty.
func (s *Store) ReadActions(ctx context.Context, limit int) ([]engine.ActionRecord, error) {
	return s.readActions(ctx, "", limit)
}

// ReadActionsNamed is ReadActions restricted to one action name.
func (s *Store) ReadActionsNamed(ctx context.Context, action string, limit int) ([]engine.ActionRecord, error) {
	return s.readActions(ctx, action, limit)
}

func (s *Store) readActions(ctx context.Context, action string, limit int) ([]engine.ActionRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	// The inner query picks the newest rows, the outer one restores
	// ORDER BY seq ASC, id ASC COLLATE BINARY.
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, id, action, args, ok, error, at FROM (
			SELECT seq, id, action, args, ok, error, at
			FROM actions
			WHERE ? = '' OR action = ?
			ORDER BY seq DESC, id COLLATE BINARY DESC
			LIMIT ?
		)
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, action, action, limit)
	if err != nil {
		return nil, fmt.Errorf("query actions: %w", err)
	}
	defer rows.Close()

	records := []engine.ActionRecord{}
	for rows.Next() {
		rec, err := scanAction(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate actions: %w", err)
	}
	return records, nil
}

func scanAction(rows *sql.Rows) (engine.ActionRecord, error) {
	var (
		rec  engine.ActionRecord
		args string
		at   string
	)
	if err := rows.Scan(&rec.Seq, &rec.ID, &rec.Action, &args, &rec.OK, &rec.Error, &at); err != nil {
		return engine.ActionRecord{}, fmt.Errorf("scan action: %w", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, at)
	if err != nil {
		return engine.ActionRecord{}, fmt.Errorf("parse action %s time: %w", rec.ID, err)
	}
	rec.At = ts
	rec.Args = []byte(args)
	return rec, nil
}

var _ engine.Journal = (*Store)(nil)
