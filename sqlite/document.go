package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/ministry"
)

// Compile-time interface verification.
var (
	_ ministry.DocumentStore   = (*DocumentStore)(nil)
	_ ministry.DocumentHistory = (*DocumentStore)(nil)
)

// DocumentStore implements ministry.DocumentStore using SQLite. Each document
// is one row keyed by name.
type DocumentStore struct {
	db *DB
}

// NewDocumentStore creates a new DocumentStore.
func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// hashContent returns the xxHash of body as fixed-width hex.
func hashContent(body []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(body))
}

func (s *DocumentStore) ReadDocument(ctx context.Context, name string, v any) error {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE name = ?`, name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return ministry.Errorf(ministry.ENOTFOUND, "document %q not found", name)
	}
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(body), v); err != nil {
		return ministry.Errorf(ministry.EINVALID, "document %q is corrupt: %v", name, err)
	}
	return nil
}

// WriteDocument upserts the document. A body identical to the stored one
// leaves the row, including updated_at, untouched.
func (s *DocumentStore) WriteDocument(ctx context.Context, name string, v any) error {
	if name == "" {
		return ministry.Errorf(ministry.EINVALID, "document name required")
	}

	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (name, body, content_hash, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			body = excluded.body,
			content_hash = excluded.content_hash,
			updated_at = excluded.updated_at
		WHERE documents.content_hash <> excluded.content_hash
	`, name, string(body), hashContent(body), time.Now().UTC().Format(time.RFC3339Nano))

	return err
}

// FindUpdatedAt returns when the named document last changed.
func (s *DocumentStore) FindUpdatedAt(ctx context.Context, name string) (time.Time, error) {
	var updatedAt string
	err := s.db.QueryRowContext(ctx, `SELECT updated_at FROM documents WHERE name = ?`, name).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ministry.Errorf(ministry.ENOTFOUND, "document %q not found", name)
	}
	if err != nil {
		return time.Time{}, err
	}

	t, err := time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return t, nil
}
