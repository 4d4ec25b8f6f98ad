package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/cidemo/internal/testutil"
)

// createTestStore creates a new file-backed store with IDs rec-001, rec-002, ...
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithIDGenerator(testutil.NewSequenceIDGenerator("rec")))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRecord creates a successful record with minimal fields.
func createTestRecord(operation string, args map[string]any, result any) Record {
	return Record{
		Operation: operation,
		Args:      args,
		Result:    result,
	}
}
