package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/bastiangx/strokeserve/internal/utils"
	"github.com/bastiangx/strokeserve/pkg/learn"
	"github.com/charmbracelet/log"
)

// TextStore keeps the model in a user dictionary text file.
type TextStore struct {
	path       string
	maxEntries int
}

// NewTextStore returns a text store at path.
func NewTextStore(path string, maxEntries int) *TextStore {
	return &TextStore{path: path, maxEntries: maxEntries}
}

// Load reads the user dictionary. A missing file is a first run.
func (s *TextStore) Load(_ context.Context, m *learn.Model) (int, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Infof("No user dictionary at %s yet, starting empty", s.path)
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to open user dictionary: %w", err)
	}
	defer f.Close()

	n, err := learn.ReadUserDict(f, m)
	if err != nil {
		return 0, err
	}
	log.Debugf("Loaded %d learned words from %s", n, s.path)
	return n, nil
}

// Save rewrites the user dictionary atomically.
func (s *TextStore) Save(_ context.Context, m *learn.Model) (int, error) {
	var n int
	err := utils.WriteFileAtomic(s.path, func(f *os.File) error {
		var werr error
		n, werr = learn.WriteUserDict(f, m, s.maxEntries)
		return werr
	})
	if err != nil {
		return 0, fmt.Errorf("failed to save user dictionary: %w", err)
	}
	log.Debugf("Saved %d learned words to %s", n, s.path)
	return n, nil
}

// Close is a no-op.
func (s *TextStore) Close() error {
	return nil
}

// Path returns the user dictionary file.
func (s *TextStore) Path() string {
	return s.path
}
