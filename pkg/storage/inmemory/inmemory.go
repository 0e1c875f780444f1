// Package inmemory provides a map-backed context store driver.
package inmemory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/courtsideco/courtside/pkg/a2a"
	"github.com/courtsideco/courtside/pkg/storage"
)

// Driver implements storage.Driver using an in-memory map.
type Driver struct {
	// mu is a read write sync mutex for locking the mapping of contexts
	mu sync.RWMutex

	// contexts is the in memory map of conversation contexts keyed by id
	contexts map[string]*storage.Context

	// now is swappable for tests
	now func() time.Time
}

// NewDriver creates a new in-memory context store.
func NewDriver() *Driver {
	return &Driver{
		contexts: make(map[string]*storage.Context),
		now:      time.Now,
	}
}

// Put stores a context, replacing any existing context with the same id.
func (s *Driver) Put(_ context.Context, c *storage.Context) error {
	if c == nil {
		return errors.New("cannot store nil context")
	}
	if c.ID == "" {
		return errors.New("context id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *c
	stored.LastUpdated = s.now()
	s.contexts[c.ID] = &stored
	return nil
}

// Get retrieves a context by id.
func (s *Driver) Get(_ context.Context, id string) (*storage.Context, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.contexts[id]
	if !ok {
		return nil, storage.ErrNotFound{ID: id}
	}

	// Copy so callers can't mutate stored state without going through Put.
	out := *c
	out.History = append([]a2a.Message(nil), c.History...)
	return &out, nil
}

// Has checks if a context exists by id.
func (s *Driver) Has(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.contexts[id]
	return ok, nil
}

// List returns the ids of all stored contexts.
func (s *Driver) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.contexts))
	for id := range s.contexts {
		ids = append(ids, id)
	}

	return ids, nil
}

// AppendMessage appends a message to the context's history, creating the
// context on first use.
func (s *Driver) AppendMessage(_ context.Context, id string, msg a2a.Message) error {
	if id == "" {
		return errors.New("context id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.contexts[id]
	if !ok {
		c = &storage.Context{
			ID:       id,
			Metadata: make(map[string]string),
		}
		s.contexts[id] = c
	}

	c.History = append(c.History, msg)
	c.LastUpdated = s.now()
	return nil
}

// Clear empties a context's history without deleting the key.
func (s *Driver) Clear(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.contexts[id]
	if !ok {
		return storage.ErrNotFound{ID: id}
	}

	c.History = nil
	c.LastUpdated = s.now()
	return nil
}

// Delete removes a context completely.
func (s *Driver) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.contexts[id]; !ok {
		return storage.ErrNotFound{ID: id}
	}

	delete(s.contexts, id)
	return nil
}

// DeleteExpired removes contexts idle since before cutoff.
func (s *Driver) DeleteExpired(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, c := range s.contexts {
		if c.LastUpdated.Before(cutoff) {
			delete(s.contexts, id)
			removed++
		}
	}

	return removed, nil
}

// Count returns the number of contexts in the in-memory store.
func (s *Driver) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contexts)
}

// Close is a no-op for the in-memory store.
func (s *Driver) Close() error {
	return nil
}
