package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const roses = "Roses are red\nViolets are blue"

func TestEasyCompletesWithoutCheats(t *testing.T) {
	g := NewEasy(roses)
	require.Equal(t, 5, g.Words())

	var completions []Result
	for _, w := range []string{"blue", "roses", "ARE", "red", "violets"} {
		res := g.Guess(w)
		assert.True(t, res.Accepted, w)
		if res.Completed {
			completions = append(completions, res)
		}
	}
	require.True(t, g.Completed())
	require.Len(t, completions, 1)
	assert.Equal(t, 0, completions[0].Score)
	assert.Equal(t, 0, g.Cheats())
}

func TestEasyRejectsUnknownAndRepeatedGuesses(t *testing.T) {
	g := NewEasy(roses)
	assert.False(t, g.Guess("tulips").Accepted)
	assert.False(t, g.Guess("").Accepted)
	assert.False(t, g.Guess("   ").Accepted)
	assert.True(t, g.Guess("Red!").Accepted)
	assert.False(t, g.Guess("red").Accepted, "already known")

	g.Reveal("blue")
	assert.False(t, g.Guess("blue").Accepted, "already revealed")
	assert.Equal(t, 1, g.Correct())
}

func TestEasyRevealIsIdempotent(t *testing.T) {
	g := NewEasy(roses)
	first := g.Reveal("roses")
	second := g.Reveal("ROSES,")
	assert.True(t, first.Accepted)
	assert.False(t, second.Accepted)
	assert.Equal(t, 1, g.Cheats())

	g.Reveal("tulips")
	assert.Equal(t, 1, g.Cheats(), "words outside the poem are ignored")
}

func TestEasyRevealAllCompletes(t *testing.T) {
	texts := []string{roses, "One\n\ntwo — three, three!", "don't stop—well-known words", "ÿes, Ÿarn and rÿe"}
	for _, text := range texts {
		g := NewEasy(text)
		var score = -1
		for w := range g.vocab {
			if res := g.Reveal(w); res.Completed {
				score = res.Score
			}
		}
		assert.True(t, g.Completed(), text)
		assert.Equal(t, g.Words(), score, text)
	}
}

func TestEasyRevealMaskedWordWithDiaeresis(t *testing.T) {
	g := NewEasy("ÿes no")
	cell := g.Render()[0][0]
	require.Equal(t, CellMasked, cell.Kind)

	assert.True(t, g.Reveal(cell.Word).Accepted)
	assert.Equal(t, 1, g.Cheats())
	assert.True(t, g.Guess("NO").Accepted)
	assert.True(t, g.Completed())

	h := NewHard("ÿes")
	assert.True(t, h.Guess("ŸES").Accepted)
}

func TestEasyCompletionReportedOnce(t *testing.T) {
	g := NewEasy("one two")
	g.Guess("one")
	res := g.Reveal("two")
	require.True(t, res.Completed)
	assert.Equal(t, 1, res.Score)

	// Revealing an already guessed word still counts, but does not complete again.
	res = g.Reveal("one")
	assert.True(t, res.Accepted)
	assert.False(t, res.Completed)
}

func TestEasyReset(t *testing.T) {
	g := NewEasy(roses)
	for _, w := range []string{"roses", "are", "red", "violets", "blue"} {
		g.Guess(w)
	}
	require.True(t, g.Completed())

	g.Reset()
	assert.False(t, g.Completed())
	assert.Equal(t, 0, g.Cheats())
	assert.Equal(t, 0, g.Correct())
	assert.Equal(t, 5, g.Words())

	for _, w := range []string{"roses", "are", "red", "violets"} {
		g.Guess(w)
	}
	res := g.Reveal("blue")
	assert.True(t, res.Completed, "completion is reported again after a reset")
	assert.Equal(t, 1, res.Score)
}

func TestEasyMonotonic(t *testing.T) {
	g := NewEasy(roses)
	events := []func(){
		func() { g.Guess("roses") },
		func() { g.Guess("nope") },
		func() { g.Reveal("are") },
		func() { g.Guess("roses") },
		func() { g.Reveal("are") },
		func() { g.Guess("blue") },
	}
	prevCorrect, prevCheats := 0, 0
	for _, ev := range events {
		ev()
		assert.GreaterOrEqual(t, g.Correct(), prevCorrect)
		assert.GreaterOrEqual(t, g.Cheats(), prevCheats)
		prevCorrect, prevCheats = g.Correct(), g.Cheats()
	}
}

func TestEasyRender(t *testing.T) {
	g := NewEasy("Roses are red,\n\nare they?")
	g.Guess("are")
	g.Reveal("red")

	rows := g.Render()
	require.Len(t, rows, 3)

	assert.Equal(t, Row{
		{Kind: CellMasked, Text: Placeholder, Word: "ROSES", Index: 0},
		{Kind: CellText, Text: " ", Index: -1},
		{Kind: CellShown, Text: "are", Index: 1},
		{Kind: CellText, Text: " ", Index: -1},
		{Kind: CellShown, Text: "red,", Revealed: true, Index: 2},
	}, rows[0])
	assert.Equal(t, Row{{Kind: CellText, Text: "", Index: -1}}, rows[1])
	assert.Equal(t, CellShown, rows[2][0].Kind)
	assert.Equal(t, CellMasked, rows[2][2].Kind)
	assert.Equal(t, "THEY", rows[2][2].Word)
}
