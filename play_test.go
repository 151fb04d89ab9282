package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/byrote/internal/poem"
	"github.com/robalobadob/byrote/internal/score"
	"github.com/robalobadob/byrote/internal/session"
	"github.com/robalobadob/byrote/internal/store"
)

func newDrill(t *testing.T, mode score.Mode) (*session.Session, store.Store) {
	t.Helper()
	st := store.NewMemoryStore()
	p := poem.Poem{Title: "Roses", Text: "Roses are red\nViolets are blue"}
	id, err := st.AddPoem(context.Background(), p)
	require.NoError(t, err)
	s := session.New("t", id, p, mode, st, session.Options{})
	t.Cleanup(s.Close)
	return s, st
}

func TestDrillEasy(t *testing.T) {
	s, st := newDrill(t, score.Easy)
	var out bytes.Buffer

	in := strings.NewReader("blue violets\n:r red\nroses are\n")
	require.NoError(t, drill(context.Background(), s, in, &out))

	assert.Contains(t, out.String(), "*red*")
	assert.Contains(t, out.String(), "done with 1 cheats. Best score: 1")
	h, err := st.ScoreHistory(context.Background(), s.PoemID, score.Easy)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, h)
}

func TestDrillHard(t *testing.T) {
	s, st := newDrill(t, score.Hard)
	var out bytes.Buffer

	in := strings.NewReader("roses\n:n\nred violets are blue\n")
	require.NoError(t, drill(context.Background(), s, in, &out))

	assert.Contains(t, out.String(), "Roses *are* red")
	h, err := st.ScoreHistory(context.Background(), s.PoemID, score.Hard)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, h)
}

func TestDrillQuit(t *testing.T) {
	s, _ := newDrill(t, score.Easy)
	var out bytes.Buffer

	require.NoError(t, drill(context.Background(), s, strings.NewReader("roses\n:q\nare\n"), &out))
	assert.NotContains(t, out.String(), "done with")
	assert.Equal(t, 1, s.View(context.Background()).Progress)
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, validatePassword("short"))
	assert.NoError(t, validatePassword("long enough"))
}
