package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bastiangx/strokeserve/pkg/learn"
	"github.com/charmbracelet/log"

	_ "modernc.org/sqlite" // SQLite driver.
)

// SQLiteStore keeps the full model in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens or creates the database at path and applies migrations.
func OpenSQLite(path string) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	s := &SQLiteStore{db: db, path: path}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate %s: %w", path, err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS words (
			word TEXT PRIMARY KEY,
			frequency INTEGER NOT NULL,
			last_used TEXT NOT NULL,
			temp_count INTEGER NOT NULL,
			permanent INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS context (
			word TEXT NOT NULL,
			position INTEGER NOT NULL,
			follower TEXT NOT NULL,
			PRIMARY KEY (word, position)
		);`,
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Save replaces the stored model in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, m *learn.Model) (n int, err error) {
	snap := m.Snapshot()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range []string{`DELETE FROM words`, `DELETE FROM context`, `DELETE FROM meta`} {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return 0, err
		}
	}

	wordStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO words (word, frequency, last_used, temp_count, permanent) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer wordStmt.Close()
	for _, e := range snap.Words {
		permanent := 0
		if e.Permanent {
			permanent = 1
		}
		if _, err = wordStmt.ExecContext(ctx, e.Word, e.Frequency, e.LastUsed.UTC().Format(time.RFC3339Nano), e.TempCount, permanent); err != nil {
			return 0, err
		}
	}

	ctxStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO context (word, position, follower) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer ctxStmt.Close()
	for word, followers := range snap.Followers {
		for pos, f := range followers {
			if _, err = ctxStmt.ExecContext(ctx, word, pos, f); err != nil {
				return 0, err
			}
		}
	}

	if _, err = tx.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES ('last_selected', ?)`, snap.LastSelected); err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	log.Debugf("Saved %d learned words to %s", len(snap.Words), s.path)
	return len(snap.Words), nil
}

// Load restores the stored model, recency included.
func (s *SQLiteStore) Load(ctx context.Context, m *learn.Model) (int, error) {
	snap := learn.Snapshot{Followers: make(map[string][]string)}

	rows, err := s.db.QueryContext(ctx,
		`SELECT word, frequency, last_used, temp_count, permanent FROM words ORDER BY word`)
	if err != nil {
		return 0, err
	}
	for rows.Next() {
		var (
			e         learn.Entry
			lastUsed  string
			permanent int
		)
		if err := rows.Scan(&e.Word, &e.Frequency, &lastUsed, &e.TempCount, &permanent); err != nil {
			rows.Close()
			return 0, err
		}
		e.LastUsed, err = time.Parse(time.RFC3339Nano, lastUsed)
		if err != nil {
			e.LastUsed = m.Now()
		}
		e.Permanent = permanent != 0
		snap.Words = append(snap.Words, e)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, err
	}
	rows.Close()

	rows, err = s.db.QueryContext(ctx,
		`SELECT word, follower FROM context ORDER BY word, position`)
	if err != nil {
		return 0, err
	}
	for rows.Next() {
		var word, follower string
		if err := rows.Scan(&word, &follower); err != nil {
			rows.Close()
			return 0, err
		}
		snap.Followers[word] = append(snap.Followers[word], follower)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, err
	}
	rows.Close()

	err = s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'last_selected'`).Scan(&snap.LastSelected)
	if err != nil && err != sql.ErrNoRows {
		return 0, err
	}

	m.Restore(snap)
	log.Debugf("Loaded %d learned words from %s", len(snap.Words), s.path)
	return len(snap.Words), nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Path returns the database file.
func (s *SQLiteStore) Path() string {
	return s.path
}
