package store

import (
	"context"
	"fmt"
)

// Record is one invoked operation.
// Exactly one of Result and ErrorCode is set for a completed call.
type Record struct {
	ID           string         `json:"id"`
	Seq          int64          `json:"seq"`
	Operation    string         `json:"operation"`
	Args         map[string]any `json:"args"`
	Result       any            `json:"result,omitempty"`
	ErrorCode    string         `json:"error_code,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
}

// Failed reports whether the recorded call returned an error.
func (r Record) Failed() bool {
	return r.ErrorCode != ""
}

// Append inserts rec and returns it with ID and Seq filled in.
//
// An empty ID is replaced with one from the store's IDGenerator. Seq is
// always assigned by the store as one past the current maximum, inside the
// same transaction as the insert.
//
// Appending an ID that already exists is a no-op; the stored record is
// returned unchanged.
func (s *Store) Append(ctx context.Context, rec Record) (Record, error) {
	if rec.Operation == "" {
		return Record{}, fmt.Errorf("append: operation is required")
	}
	if rec.ID == "" {
		rec.ID = s.ids.Generate()
	}

	argsJSON, err := marshalArgs(rec.Args)
	if err != nil {
		return Record{}, fmt.Errorf("append: %w", err)
	}
	resultJSON, err := marshalResult(rec.Result)
	if err != nil {
		return Record{}, fmt.Errorf("append: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Record{}, fmt.Errorf("append: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM history`).Scan(&seq); err != nil {
		return Record{}, fmt.Errorf("append: next seq: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO history
		(id, seq, operation, args, result, error_code, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		rec.ID,
		seq,
		rec.Operation,
		argsJSON,
		resultJSON,
		rec.ErrorCode,
		rec.ErrorMessage,
	)
	if err != nil {
		return Record{}, fmt.Errorf("append: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Record{}, fmt.Errorf("append: commit: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return Record{}, fmt.Errorf("append: rows affected: %w", err)
	}
	if rows == 0 {
		s.logger.Debug("record already exists, skipping", "id", rec.ID)
		return s.Get(ctx, rec.ID)
	}

	s.logger.Debug("record appended", "id", rec.ID, "seq", seq, "operation", rec.Operation)
	return s.Get(ctx, rec.ID)
}

// Clear deletes every record and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM history`)
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	s.logger.Info("history cleared", "records", n)
	return n, nil
}
