package graph

import (
	"sync"
	"sync/atomic"
)

// Store owns a Graph and serializes access to it with a single
// readers-writer lock. Writers run inside Update, readers inside View.
type Store struct {
	mu      sync.RWMutex
	g       *Graph
	version atomic.Uint64
}

// NewStore returns a store wrapping an empty graph.
func NewStore() *Store {
	return &Store{g: New()}
}

// Update runs fn with exclusive access to the graph. Everything fn does is
// visible to readers as one unit.
func (s *Store) Update(fn func(g *Graph)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.g)
	s.version.Add(1)
}

// View runs fn with shared read access to the graph. fn must not retain
// the Reader after it returns.
func (s *Store) View(fn func(r Reader)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.g)
}

// Version counts completed Update calls. It changes whenever the graph may
// have changed.
func (s *Store) Version() uint64 {
	return s.version.Load()
}
