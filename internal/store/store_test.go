package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/byrote/internal/poem"
	"github.com/robalobadob/byrote/internal/score"
)

// implementations runs fn against every Store implementation.
func implementations(t *testing.T, fn func(t *testing.T, st Store)) {
	t.Run("memory", func(t *testing.T) { fn(t, NewMemoryStore()) })
	t.Run("sqlite", func(t *testing.T) {
		s, err := OpenSQLite(filepath.Join(t.TempDir(), "data", "byrote.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		fn(t, s)
	})
}

func TestPoemLifecycle(t *testing.T) {
	implementations(t, func(t *testing.T, st Store) {
		ctx := context.Background()

		id, err := st.AddPoem(ctx, poem.Poem{Title: " Roses ", Author: "Anon", Text: "Roses are red\n"})
		require.NoError(t, err)
		require.NotEmpty(t, id)

		p, err := st.GetPoem(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, poem.Poem{Title: "Roses", Author: "Anon", Text: "Roses are red"}, p)

		id2, err := st.AddPoem(ctx, poem.Poem{Title: "Second", Text: "two"})
		require.NoError(t, err)

		list, err := st.ListPoems(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, id, list[0].ID)
		assert.Equal(t, id2, list[1].ID)
		assert.Equal(t, "Second", list[1].Title)

		require.NoError(t, st.DeletePoem(ctx, id))
		_, err = st.GetPoem(ctx, id)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, st.DeletePoem(ctx, id), ErrNotFound)
	})
}

func TestAddPoemRejectsEmptyText(t *testing.T) {
	implementations(t, func(t *testing.T, st Store) {
		for _, text := range []string{" \n ", "1 2 3", "…", "& — ..."} {
			_, err := st.AddPoem(context.Background(), poem.Poem{Title: "Blank", Text: text})
			assert.ErrorIs(t, err, ErrEmptyPoem, "%q", text)
		}
	})
}

func TestScoreHistory(t *testing.T) {
	implementations(t, func(t *testing.T, st Store) {
		ctx := context.Background()
		id, err := st.AddPoem(ctx, poem.Poem{Text: "a b c"})
		require.NoError(t, err)

		h, err := st.ScoreHistory(ctx, id, score.Easy)
		require.NoError(t, err)
		assert.Empty(t, h)
		assert.NotNil(t, h)

		for _, v := range []int{3, 0, 3} {
			require.NoError(t, st.AppendScore(ctx, id, score.Easy, v))
		}
		require.NoError(t, st.AppendScore(ctx, id, score.Hard, 1))

		h, err = st.ScoreHistory(ctx, id, score.Easy)
		require.NoError(t, err)
		assert.Equal(t, []int{3, 0, 3}, h)

		h, err = st.ScoreHistory(ctx, id, score.Hard)
		require.NoError(t, err)
		assert.Equal(t, []int{1}, h)

		assert.ErrorIs(t, st.AppendScore(ctx, "missing", score.Easy, 0), ErrNotFound)

		require.NoError(t, st.DeletePoem(ctx, id))
		h, err = st.ScoreHistory(ctx, id, score.Easy)
		require.NoError(t, err)
		assert.Empty(t, h)
	})
}

func TestConcurrentAppendsAreNotLost(t *testing.T) {
	implementations(t, func(t *testing.T, st Store) {
		ctx := context.Background()
		id, err := st.AddPoem(ctx, poem.Poem{Text: "a"})
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(v int) {
				defer wg.Done()
				assert.NoError(t, st.AppendScore(ctx, id, score.Hard, v))
			}(i)
		}
		wg.Wait()

		h, err := st.ScoreHistory(ctx, id, score.Hard)
		require.NoError(t, err)
		assert.Len(t, h, 20)
	})
}

func TestMigrateIsIdempotent(t *testing.T) {
	db, err := OpenDB(filepath.Join(t.TempDir(), "byrote.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestSQLiteListKeepsInsertionOrder(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "byrote.db"))
	require.NoError(t, err)
	defer s.Close()

	// RFC3339Nano drops trailing zeros, so these sort the wrong way as text.
	stamps := []string{"2024-05-01T10:00:00.1Z", "2024-05-01T10:00:00Z", "2024-05-01T10:00:00.05Z"}
	for i, ts := range stamps {
		_, err := s.db.Exec(`INSERT INTO poems (id, title, author, body, created_at) VALUES (?,?,?,?,?)`,
			fmt.Sprintf("p%d", i), "t", "a", "words here", ts)
		require.NoError(t, err)
	}

	list, err := s.ListPoems(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, e := range list {
		assert.Equal(t, fmt.Sprintf("p%d", i), e.ID)
		assert.False(t, e.CreatedAt.IsZero())
	}
}

func TestSQLiteListRejectsBadTimestamp(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "byrote.db"))
	require.NoError(t, err)
	defer s.Close()

	_, err = s.db.Exec(`INSERT INTO poems (id, title, author, body, created_at) VALUES ('x','t','a','b','yesterday')`)
	require.NoError(t, err)
	_, err = s.ListPoems(context.Background())
	assert.ErrorContains(t, err, "yesterday")
}
