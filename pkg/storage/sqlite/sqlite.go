// Package sqlite provides a SQLite-backed context store driver.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers the "sqlite3" driver

	"github.com/courtsideco/courtside/pkg/a2a"
	"github.com/courtsideco/courtside/pkg/storage"
)

// Driver implements storage.Driver using SQLite.
type Driver struct {
	db *sql.DB
}

// NewDriver creates a new SQLite-backed context store.
// The dbPath can be a file path or ":memory:" for an in-memory database.
func NewDriver(dbPath string) (*Driver, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// database/sql pools connections; a second connection to a ":memory:"
	// DSN would see an empty database, and file DBs avoid SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)

	s := &Driver{db: db}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

// migrate creates the necessary tables if they don't exist.
func (s *Driver) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS contexts (
		id TEXT PRIMARY KEY,
		history TEXT NOT NULL,
		metadata TEXT,
		last_updated DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_contexts_last_updated ON contexts(last_updated);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Put stores a context, replacing any existing row with the same id.
func (s *Driver) Put(ctx context.Context, c *storage.Context) error {
	if c == nil {
		return errors.New("cannot store nil context")
	}
	if c.ID == "" {
		return errors.New("context id is required")
	}

	historyJSON, metadataJSON, err := marshalContext(c)
	if err != nil {
		return err
	}

	query := `INSERT INTO contexts (id, history, metadata, last_updated) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET history = excluded.history,
			metadata = excluded.metadata, last_updated = excluded.last_updated`

	_, err = s.db.ExecContext(ctx, query, c.ID, historyJSON, metadataJSON, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to upsert context: %w", err)
	}

	return nil
}

// Get retrieves a context by id.
func (s *Driver) Get(ctx context.Context, id string) (*storage.Context, error) {
	query := `SELECT id, history, metadata, last_updated FROM contexts WHERE id = ?`

	return scanContext(s.db.QueryRowContext(ctx, query, id), id)
}

// Has checks if a context exists by id.
func (s *Driver) Has(ctx context.Context, id string) (bool, error) {
	query := `SELECT 1 FROM contexts WHERE id = ? LIMIT 1`

	var exists int
	err := s.db.QueryRowContext(ctx, query, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}

	return true, nil
}

// List returns the ids of all stored contexts, oldest update first.
func (s *Driver) List(ctx context.Context) ([]string, error) {
	query := `SELECT id FROM contexts ORDER BY last_updated`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query contexts: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// AppendMessage appends a message to the context's history inside a
// transaction, creating the context on first use.
func (s *Driver) AppendMessage(ctx context.Context, id string, msg a2a.Message) error {
	if id == "" {
		return errors.New("context id is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	c, err := scanContext(tx.QueryRowContext(ctx,
		`SELECT id, history, metadata, last_updated FROM contexts WHERE id = ?`, id), id)
	if err != nil {
		var notFound storage.ErrNotFound
		if !errors.As(err, &notFound) {
			return err
		}
		c = &storage.Context{ID: id}
	}

	c.History = append(c.History, msg)

	historyJSON, metadataJSON, err := marshalContext(c)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO contexts (id, history, metadata, last_updated) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET history = excluded.history,
			metadata = excluded.metadata, last_updated = excluded.last_updated`,
		id, historyJSON, metadataJSON, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}

	return tx.Commit()
}

// Clear empties a context's history without deleting the row.
func (s *Driver) Clear(ctx context.Context, id string) error {
	query := `UPDATE contexts SET history = '[]', last_updated = ? WHERE id = ?`

	res, err := s.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to clear context: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound{ID: id}
	}

	return nil
}

// Delete removes a context completely.
func (s *Driver) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM contexts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete context: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound{ID: id}
	}

	return nil
}

// DeleteExpired removes contexts idle since before cutoff.
func (s *Driver) DeleteExpired(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM contexts WHERE last_updated < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired contexts: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return int(n), nil
}

// Close closes the underlying database.
func (s *Driver) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanContext decodes one contexts row.
func scanContext(row rowScanner, id string) (*storage.Context, error) {
	var c storage.Context
	var historyJSON string
	var metadataJSON sql.NullString

	err := row.Scan(&c.ID, &historyJSON, &metadataJSON, &c.LastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan context: %w", err)
	}

	if err := json.Unmarshal([]byte(historyJSON), &c.History); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history: %w", err)
	}

	if metadataJSON.Valid && metadataJSON.String != "" {
		if err := json.Unmarshal([]byte(metadataJSON.String), &c.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	return &c, nil
}

// marshalContext encodes history and metadata columns.
func marshalContext(c *storage.Context) (string, string, error) {
	history := c.History
	if history == nil {
		history = []a2a.Message{}
	}

	historyJSON, err := json.Marshal(history)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal history: %w", err)
	}

	metadataJSON := ""
	if len(c.Metadata) > 0 {
		b, err := json.Marshal(c.Metadata)
		if err != nil {
			return "", "", fmt.Errorf("failed to marshal metadata: %w", err)
		}
		metadataJSON = string(b)
	}

	return string(historyJSON), metadataJSON, nil
}
