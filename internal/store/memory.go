// internal/store/memory.go
//
// In-memory implementation of Store.
//
// Characteristics:
//   - Poems keyed by ID, with a slice preserving insertion order.
//   - Concurrency-safe via RWMutex; appends hold the write lock for the
//     whole read-modify-write of a history.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/byrote/internal/poem"
	"github.com/robalobadob/byrote/internal/score"
)

type historyKey struct {
	poemID string
	mode   score.Mode
}

// memory is a map-based Store.
type memory struct {
	mu     sync.RWMutex
	order  []string
	poems  map[string]Entry
	scores map[historyKey][]int
}

// NewMemoryStore constructs an empty in-memory Store.
func NewMemoryStore() Store {
	return &memory{
		poems:  make(map[string]Entry),
		scores: make(map[historyKey][]int),
	}
}

func (m *memory) AddPoem(ctx context.Context, p poem.Poem) (string, error) {
	p = p.Clean()
	if !p.HasWords() {
		return "", ErrEmptyPoem
	}
	id := uuid.NewString()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.poems[id] = Entry{ID: id, CreatedAt: time.Now().UTC(), Poem: p}
	m.order = append(m.order, id)
	return id, nil
}

func (m *memory) GetPoem(ctx context.Context, id string) (poem.Poem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.poems[id]; ok {
		return e.Poem, nil
	}
	return poem.Poem{}, ErrNotFound
}

func (m *memory) ListPoems(ctx context.Context) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Entry, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.poems[id])
	}
	return out, nil
}

func (m *memory) DeletePoem(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.poems[id]; !ok {
		return ErrNotFound
	}
	delete(m.poems, id)
	m.order = slices.DeleteFunc(m.order, func(s string) bool { return s == id })
	delete(m.scores, historyKey{id, score.Easy})
	delete(m.scores, historyKey{id, score.Hard})
	return nil
}

func (m *memory) ScoreHistory(ctx context.Context, poemID string, mode score.Mode) ([]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]int{}, m.scores[historyKey{poemID, mode}]...), nil
}

func (m *memory) AppendScore(ctx context.Context, poemID string, mode score.Mode, s int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.poems[poemID]; !ok {
		return ErrNotFound
	}
	k := historyKey{poemID, mode}
	m.scores[k] = append(m.scores[k], s)
	return nil
}
