// internal/store/sqlite.go
//
// SQLite implementation of Store.
//
// Characteristics:
//   - Poems and scores live in the tables created by assets/migrations.
//   - Insertion order is rowid order; created_at is informational.
//   - Score appends are single INSERTs ordered by an autoincrement seq, so
//     concurrent completions never lose an entry.
//   - Deleting a poem cascades to its scores.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/robalobadob/byrote/internal/poem"
	"github.com/robalobadob/byrote/internal/score"
)

// SQLite is a Store backed by a migrated SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite wraps an open, migrated database.
func NewSQLite(db *sql.DB) *SQLite { return &SQLite{db: db} }

// OpenSQLite opens the database at path, migrates it and returns the store.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := OpenDB(path)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewSQLite(db), nil
}

// Close releases the database handle.
func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) AddPoem(ctx context.Context, p poem.Poem) (string, error) {
	p = p.Clean()
	if !p.HasWords() {
		return "", ErrEmptyPoem
	}
	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO poems (id, title, author, body, created_at) VALUES (?,?,?,?,?)`,
		id, p.Title, p.Author, p.Text, now,
	); err != nil {
		return "", fmt.Errorf("insert poem: %w", err)
	}
	return id, nil
}

func (s *SQLite) GetPoem(ctx context.Context, id string) (poem.Poem, error) {
	var p poem.Poem
	err := s.db.QueryRowContext(ctx,
		`SELECT title, author, body FROM poems WHERE id=?`, id,
	).Scan(&p.Title, &p.Author, &p.Text)
	if errors.Is(err, sql.ErrNoRows) {
		return poem.Poem{}, ErrNotFound
	}
	if err != nil {
		return poem.Poem{}, fmt.Errorf("get poem %s: %w", id, err)
	}
	return p, nil
}

func (s *SQLite) ListPoems(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, author, body, created_at FROM poems ORDER BY rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("list poems: %w", err)
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &e.Title, &e.Author, &e.Text, &created); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("poem %s created_at %q: %w", e.ID, created, err)
		}
		e.CreatedAt = t
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLite) DeletePoem(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM poems WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete poem %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite) ScoreHistory(ctx context.Context, poemID string, mode score.Mode) ([]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT score FROM scores WHERE poem_id=? AND mode=? ORDER BY seq ASC`, poemID, string(mode))
	if err != nil {
		return nil, fmt.Errorf("score history: %w", err)
	}
	defer rows.Close()

	out := []int{}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// AppendScore inserts one row; the autoincrement seq keeps appends ordered
// without a read-modify-write.
func (s *SQLite) AppendScore(ctx context.Context, poemID string, mode score.Mode, v int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scores (poem_id, mode, score, created_at) VALUES (?,?,?,?)`,
		poemID, string(mode), v, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		if isForeignKeyErr(err) {
			return ErrNotFound
		}
		return fmt.Errorf("append score: %w", err)
	}
	return nil
}

func isForeignKeyErr(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintForeignKey
}
