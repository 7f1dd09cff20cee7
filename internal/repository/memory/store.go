// Package memory provides in-memory implementations of the repository
// interfaces. It backs the "memory" storage driver for local development and
// doubles as the repository implementation in service tests.
package memory

import (
	"sync"

	"eventmanagement/internal/domain"
)

// Store holds all in-memory state, keyed by id. The repository types in this
// package share one Store so cross-entity reads see a consistent view.
type Store struct {
	mu            sync.RWMutex
	events        map[string]*domain.Event
	sessions      map[string]*domain.Session
	speakers      map[string]*domain.Speaker
	registrations map[string]*domain.Registration
	users         map[string]*domain.User
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		events:        make(map[string]*domain.Event),
		sessions:      make(map[string]*domain.Session),
		speakers:      make(map[string]*domain.Speaker),
		registrations: make(map[string]*domain.Registration),
		users:         make(map[string]*domain.User),
	}
}

// paginate slices rows according to p. Callers pass pre-sorted rows.
func paginate[T any](rows []T, p domain.PaginationParams) []T {
	offset := p.Offset()
	if offset >= len(rows) {
		return nil
	}
	end := offset + p.PageSize
	if p.PageSize <= 0 || end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}
