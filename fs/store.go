// Package fs provides file-based storage for site content.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/ministry"
	"github.com/gofrs/flock"
)

// Ensure Store implements the document interfaces at compile time.
var (
	_ ministry.DocumentStore   = (*Store)(nil)
	_ ministry.DocumentHistory = (*Store)(nil)
)

const lockRetryDelay = 10 * time.Millisecond

// Store implements ministry.DocumentStore with one indented JSON file per
// document. Writes go to a temporary file that is renamed over the target,
// so readers never see a partial document. A sibling .lock file serialises
// writers against readers, across processes too.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Open creates the data directory if needed.
func (s *Store) Open() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// Path returns the file holding the named document.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *Store) ReadDocument(ctx context.Context, name string, v any) error {
	if err := validateName(name); err != nil {
		return err
	}

	unlock, err := s.lock(ctx, name, false)
	if err != nil {
		return err
	}
	defer unlock()

	data, err := os.ReadFile(s.Path(name))
	if errors.Is(err, os.ErrNotExist) {
		return ministry.Errorf(ministry.ENOTFOUND, "document %q not found", name)
	} else if err != nil {
		return err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return ministry.Errorf(ministry.EINVALID, "document %q is corrupt: %v", name, err)
	}
	return nil
}

func (s *Store) WriteDocument(ctx context.Context, name string, v any) error {
	if err := validateName(name); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	unlock, err := s.lock(ctx, name, true)
	if err != nil {
		return err
	}
	defer unlock()

	// Unchanged content keeps the file and its modification time.
	if existing, err := os.ReadFile(s.Path(name)); err == nil && bytes.Equal(existing, data) {
		return nil
	}
	return writeFileAtomic(s.Path(name), data)
}

// FindUpdatedAt returns the modification time of the document's file.
func (s *Store) FindUpdatedAt(ctx context.Context, name string) (time.Time, error) {
	if err := validateName(name); err != nil {
		return time.Time{}, err
	}

	info, err := os.Stat(s.Path(name))
	if errors.Is(err, os.ErrNotExist) {
		return time.Time{}, ministry.Errorf(ministry.ENOTFOUND, "document %q not found", name)
	} else if err != nil {
		return time.Time{}, err
	}
	return info.ModTime().UTC(), nil
}

// lock takes a shared or exclusive lock on the document, waiting until ctx
// is done.
func (s *Store) lock(ctx context.Context, name string, exclusive bool) (func(), error) {
	fl := flock.New(s.Path(name) + ".lock")

	var locked bool
	var err error
	if exclusive {
		locked, err = fl.TryLockContext(ctx, lockRetryDelay)
	} else {
		locked, err = fl.TryRLockContext(ctx, lockRetryDelay)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", name, err)
	}
	if !locked {
		return nil, fmt.Errorf("failed to lock %s", name)
	}
	return func() { _ = fl.Unlock() }, nil
}

func writeFileAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return ministry.Errorf(ministry.EINVALID, "invalid document name %q", name)
	}
	return nil
}
