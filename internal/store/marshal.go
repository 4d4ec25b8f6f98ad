package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/roach88/cidemo/internal/canonical"
)

// marshalArgs converts args to canonical JSON TEXT. nil becomes "{}".
func marshalArgs(args map[string]any) (string, error) {
	if args == nil {
		return "{}", nil
	}
	data, err := canonical.Marshal(args)
	if err != nil {
		return "", fmt.Errorf("marshal args: %w", err)
	}
	return string(data), nil
}

// marshalResult converts a result to canonical JSON TEXT, or NULL for nil.
func marshalResult(result any) (sql.NullString, error) {
	if result == nil {
		return sql.NullString{}, nil
	}
	data, err := canonical.Marshal(result)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshal result: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func unmarshalArgs(data string) (map[string]any, error) {
	args := map[string]any{}
	if err := json.Unmarshal([]byte(data), &args); err != nil {
		return nil, fmt.Errorf("unmarshal args: %w", err)
	}
	return args, nil
}

func unmarshalResult(data sql.NullString) (any, error) {
	if !data.Valid {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal([]byte(data.String), &v); err != nil {
		return nil, fmt.Errorf("unmarshal result: %w", err)
	}
	return v, nil
}
