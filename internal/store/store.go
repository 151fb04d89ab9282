// internal/store/store.go
//
// Persistence interface for poems and score histories.
// Implementations:
//   - memory.go: map-backed, lost on restart (tests, `--db :memory:`).
//   - sqlite.go: SQLite file via mattn/go-sqlite3.
//
// Both serialize score appends so concurrent completions never lose an
// entry.

package store

import (
	"context"
	"errors"
	"time"

	"github.com/robalobadob/byrote/internal/poem"
	"github.com/robalobadob/byrote/internal/score"
)

var (
	// ErrNotFound is returned for unknown poem IDs.
	ErrNotFound = errors.New("not found")
	// ErrEmptyPoem is returned when adding a poem without a single word to
	// guess (blank, digits or punctuation only).
	ErrEmptyPoem = errors.New("poem text is empty")
)

// Entry is a stored poem with its identifier.
type Entry struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	poem.Poem
}

// Store defines what the engine needs from persistence.
type Store interface {
	// AddPoem stores a cleaned copy of p and returns its new ID.
	AddPoem(ctx context.Context, p poem.Poem) (string, error)

	// GetPoem returns the poem with id, or ErrNotFound.
	GetPoem(ctx context.Context, id string) (poem.Poem, error)

	// ListPoems returns all poems in insertion order.
	ListPoems(ctx context.Context) ([]Entry, error)

	// DeletePoem removes a poem and its score histories.
	DeletePoem(ctx context.Context, id string) error

	// ScoreHistory returns the scores recorded for a poem in mode, oldest first.
	ScoreHistory(ctx context.Context, poemID string, mode score.Mode) ([]int, error)

	// AppendScore appends s to the history of poemID in mode.
	AppendScore(ctx context.Context, poemID string, mode score.Mode, s int) error
}
