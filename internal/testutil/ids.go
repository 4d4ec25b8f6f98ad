// Package testutil provides deterministic helpers for tests and scenario runs.
package testutil

import (
	"fmt"
	"sync"
)

// SequenceIDGenerator yields "<prefix>-001", "<prefix>-002", ... so that
// repeated runs of the same scenario produce byte-identical traces.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type SequenceIDGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequenceIDGenerator creates a generator. An empty prefix defaults to "id".
func NewSequenceIDGenerator(prefix string) *SequenceIDGenerator {
	if prefix == "" {
		prefix = "id"
	}
	return &SequenceIDGenerator{prefix: prefix}
}

// Generate returns the next ID.
func (g *SequenceIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%03d", g.prefix, g.n)
}

// Reset restarts the sequence so the next ID ends in 001.
func (g *SequenceIDGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n = 0
}
