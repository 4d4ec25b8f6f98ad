package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when no record has the requested ID.
var ErrNotFound = errors.New("record not found")

// ListOptions filters List.
type ListOptions struct {
	// Operation restricts results to one operation name. Empty means all.
	Operation string

	// Limit keeps only the most recent N records. Zero or negative means all.
	Limit int
}

// Get returns the record with the given ID.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, operation, args, result, error_code, error_message
		FROM history
		WHERE id = ?
	`, id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("get %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Record{}, fmt.Errorf("get %s: %w", id, err)
	}
	return rec, nil
}

// List returns records ordered by seq ASC, id ASC COLLATE BINARY.
// Returns an empty slice (not nil) when nothing matches.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]Record, error) {
	query := `
		SELECT id, seq, operation, args, result, error_code, error_message
		FROM history
		WHERE (? = '' OR operation = ?)`
	args := []any{opts.Operation, opts.Operation}

	if opts.Limit > 0 {
		// Take the newest N, then restore ascending order
		query = `
		SELECT * FROM (` + query + `
			ORDER BY seq DESC
			LIMIT ?
		)`
		args = append(args, opts.Limit)
	}
	query += `
		ORDER BY seq ASC, id COLLATE BINARY ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}

	return records, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM history`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var (
		rec      Record
		argsJSON string
		result   sql.NullString
	)
	if err := sc.Scan(&rec.ID, &rec.Seq, &rec.Operation, &argsJSON, &result, &rec.ErrorCode, &rec.ErrorMessage); err != nil {
		return Record{}, err
	}

	args, err := unmarshalArgs(argsJSON)
	if err != nil {
		return Record{}, fmt.Errorf("record %s: %w", rec.ID, err)
	}
	rec.Args = args

	rec.Result, err = unmarshalResult(result)
	if err != nil {
		return Record{}, fmt.Errorf("record %s: %w", rec.ID, err)
	}
	return rec, nil
}
