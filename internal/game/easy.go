// internal/game/easy.go
//
// Easy mode: any word of the poem may be guessed at any time.
// Responsibilities:
//   - Track correctly guessed and cheat-revealed words (normalized).
//   - Detect completion once every vocabulary word is known.
//   - Report the completing event exactly once, with the cheat count.
//
// Debouncing raw keystrokes is the caller's job (see internal/session);
// Guess evaluates a settled value.
package game

import (
	"strings"

	"github.com/robalobadob/byrote/internal/poem"
)

// Easy holds the state of one easy-mode run over a poem.
type Easy struct {
	sp       poem.Structured
	vocab    poem.Vocabulary
	correct  map[string]struct{}
	revealed map[string]struct{}
	done     bool // completion already reported
}

// NewEasy builds an easy-mode engine for text. The structure and
// vocabulary are computed once here.
func NewEasy(text string) *Easy {
	sp := poem.Structure(text)
	return &Easy{
		sp:       sp,
		vocab:    poem.VocabularyOf(sp),
		correct:  make(map[string]struct{}),
		revealed: make(map[string]struct{}),
	}
}

// Guess evaluates a settled guess. The guess is accepted when its
// normalized form is a vocabulary word not yet known.
func (g *Easy) Guess(raw string) Result {
	w := poem.Normalize(strings.TrimSpace(raw))
	if w == "" || !g.vocab.Has(w) || g.known(w) {
		return Result{}
	}
	g.correct[w] = struct{}{}
	return g.settle()
}

// Reveal marks word as cheated. Revealing twice is the same as once; words
// outside the vocabulary are ignored.
func (g *Easy) Reveal(word string) Result {
	w := poem.Normalize(word)
	if !g.vocab.Has(w) {
		return Result{}
	}
	if _, ok := g.revealed[w]; ok {
		return Result{}
	}
	g.revealed[w] = struct{}{}
	return g.settle()
}

// Completed reports whether every vocabulary word is known.
func (g *Easy) Completed() bool {
	for w := range g.vocab {
		if !g.known(w) {
			return false
		}
	}
	return true
}

// Cheats returns the number of revealed words.
func (g *Easy) Cheats() int { return len(g.revealed) }

// Correct returns the number of correctly guessed words.
func (g *Easy) Correct() int { return len(g.correct) }

// Known returns how many vocabulary words are guessed or revealed.
func (g *Easy) Known() int {
	n := 0
	for w := range g.vocab {
		if g.known(w) {
			n++
		}
	}
	return n
}

// Words returns the vocabulary size.
func (g *Easy) Words() int { return len(g.vocab) }

// Reset forgets all guesses and reveals. The vocabulary is kept.
func (g *Easy) Reset() {
	clear(g.correct)
	clear(g.revealed)
	g.done = false
}

// Render returns the per-token render decisions.
func (g *Easy) Render() []Row {
	rows := make([]Row, len(g.sp))
	g.sp.Walk(func(line, _ int, tok string, ordinal int) {
		var c Cell
		switch {
		case ordinal < 0:
			c = textCell(tok)
		default:
			w := poem.Normalize(tok)
			_, rev := g.revealed[w]
			if _, ok := g.correct[w]; ok || rev {
				c = shownCell(tok, ordinal, rev)
			} else {
				c = maskedCell(tok, ordinal)
			}
		}
		rows[line] = append(rows[line], c)
	})
	return rows
}

func (g *Easy) known(w string) bool {
	if _, ok := g.correct[w]; ok {
		return true
	}
	_, ok := g.revealed[w]
	return ok
}

// settle builds the result of an accepted event, latching completion so it
// is reported only once.
func (g *Easy) settle() Result {
	res := Result{Accepted: true}
	if !g.done && g.Completed() {
		g.done = true
		res.Completed, res.Score = true, g.Cheats()
	}
	return res
}
