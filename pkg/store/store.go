// Package store persists the learned model. The text backend writes the
// user dictionary format, which keeps only frequency and status; the SQLite
// backend keeps the whole model including recency and followers.
package store

import (
	"context"
	"fmt"

	"github.com/bastiangx/strokeserve/pkg/learn"
)

// Store loads and saves a learned model.
type Store interface {
	// Load replaces the model state with the stored one and returns the
	// number of words read. A store that does not exist yet loads nothing.
	Load(ctx context.Context, m *learn.Model) (int, error)
	// Save writes the model and returns the number of words written.
	Save(ctx context.Context, m *learn.Model) (int, error)
	// Close releases the backend.
	Close() error
	// Path returns the backing file.
	Path() string
}

// Backend names accepted by Open.
const (
	KindText   = "text"
	KindSQLite = "sqlite"
)

// Open returns the store of the given kind at path. maxEntries caps the
// text backend.
func Open(kind, path string, maxEntries int) (Store, error) {
	switch kind {
	case KindText, "":
		return NewTextStore(path, maxEntries), nil
	case KindSQLite:
		return OpenSQLite(path)
	}
	return nil, fmt.Errorf("unknown store kind %q", kind)
}
