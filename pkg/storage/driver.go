// Package storage
package storage

import (
	"context"
	"time"

	"github.com/courtsideco/courtside/pkg/a2a"
)

// Context is one conversation context: a keyed, ordered message history.
type Context struct {
	// ID uniquely identifies the context within the store.
	ID string `json:"context_id"`

	// History holds the prior query/response turns, oldest first.
	History []a2a.Message `json:"history"`

	// Metadata carries caller-supplied key/value pairs (channel ids etc.).
	Metadata map[string]string `json:"metadata,omitempty"`

	// LastUpdated is bumped on every read-for-write and append.
	LastUpdated time.Time `json:"last_updated"`
}

// Driver defines the interface for persisting and retrieving conversation
// contexts in a storage backend. Implementations must be safe for concurrent
// use; HTTP handlers call them from many goroutines.
type Driver interface {
	// Put stores a context, replacing any existing context with the same id.
	Put(ctx context.Context, c *Context) error

	// Get retrieves a context by id. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (*Context, error)

	// Has checks if a context exists by id.
	Has(ctx context.Context, id string) (bool, error)

	// List returns the ids of all stored contexts.
	List(ctx context.Context) ([]string, error)

	// AppendMessage appends a message to the context's history, creating the
	// context if the id has not been seen before.
	AppendMessage(ctx context.Context, id string, msg a2a.Message) error

	// Clear empties a context's history without deleting the key.
	// Returns ErrNotFound if the context doesn't exist.
	Clear(ctx context.Context, id string) error

	// Delete removes a context completely.
	// Returns ErrNotFound if the context doesn't exist.
	Delete(ctx context.Context, id string) error

	// DeleteExpired removes contexts whose LastUpdated is before cutoff.
	// Returns the number of contexts removed.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int, error)

	// Close closes the store and releases any resources.
	Close() error
}
