// internal/game/hard.go
//
// Hard mode: words must be produced in reading order.
// Responsibilities:
//   - Keep a cursor over the addressable words of the poem.
//   - Accept only the word under the cursor; cheats reveal it instead.
//   - Truncate the poem at the cursor for display.
//
// Invariants:
//   - 0 <= cursor <= WordCount; cursor moves by exactly one per accepted
//     guess or reveal.
//   - cheats is strictly increasing and every entry is < cursor.
package game

import (
	"github.com/robalobadob/byrote/internal/poem"
)

// SplitAt truncates sp at the word with ordinal cursor. The prefix holds
// every line before it plus the partial line up to (not including) that
// word; expected is the word's normalized form. When cursor is past the
// last word the whole poem is returned with ok == false.
func SplitAt(sp poem.Structured, cursor int) (prefix poem.Structured, expected string, ok bool) {
	n := 0
	for _, line := range sp {
		part := make(poem.Line, 0, len(line))
		for _, tok := range line {
			if poem.IsWord(tok) {
				if n == cursor {
					return append(prefix, part), poem.Normalize(tok), true
				}
				n++
			}
			part = append(part, tok)
		}
		prefix = append(prefix, part)
	}
	return prefix, "", false
}

// Hard holds the state of one hard-mode run over a poem.
type Hard struct {
	sp     poem.Structured
	total  int
	cursor int
	cheats []int
	done   bool
}

// NewHard builds a hard-mode engine for text.
func NewHard(text string) *Hard {
	sp := poem.Structure(text)
	return &Hard{sp: sp, total: sp.WordCount(), cheats: []int{}}
}

// Expected returns the normalized word under the cursor, or ok == false
// once the poem is complete.
func (g *Hard) Expected() (string, bool) {
	_, w, ok := SplitAt(g.sp, g.cursor)
	return w, ok
}

// Guess compares raw with the expected word. Anything else leaves the
// cursor where it is.
func (g *Hard) Guess(raw string) Result {
	want, ok := g.Expected()
	if !ok || poem.Normalize(raw) != want {
		return Result{}
	}
	g.cursor++
	return g.settle()
}

// RevealNext reveals the word under the cursor as a cheat.
func (g *Hard) RevealNext() Result { return g.Reveal(g.cursor) }

// Reveal reveals the word at index, which must be the one under the
// cursor. Activating the same placeholder twice therefore reveals once.
func (g *Hard) Reveal(index int) Result {
	if index != g.cursor || g.cursor >= g.total {
		return Result{}
	}
	g.cheats = append(g.cheats, g.cursor)
	g.cursor++
	return g.settle()
}

// Completed reports whether the cursor has passed the last word.
func (g *Hard) Completed() bool { return g.cursor >= g.total }

// Cursor returns the ordinal of the next word to produce.
func (g *Hard) Cursor() int { return g.cursor }

// Words returns the number of addressable words.
func (g *Hard) Words() int { return g.total }

// Cheats returns a copy of the cheated word indexes.
func (g *Hard) Cheats() []int { return append([]int(nil), g.cheats...) }

// Reset moves the cursor back to the first word.
func (g *Hard) Reset() {
	g.cursor = 0
	g.cheats = []int{}
	g.done = false
}

// Render returns the words before the cursor, followed (unless complete)
// by one masked placeholder for the next word.
func (g *Hard) Render() []Row {
	prefix, _, more := SplitAt(g.sp, g.cursor)
	rows := make([]Row, len(prefix))
	cheated := make(map[int]struct{}, len(g.cheats))
	for _, i := range g.cheats {
		cheated[i] = struct{}{}
	}
	prefix.Walk(func(line, _ int, tok string, ordinal int) {
		if ordinal < 0 {
			rows[line] = append(rows[line], textCell(tok))
			return
		}
		_, rev := cheated[ordinal]
		rows[line] = append(rows[line], shownCell(tok, ordinal, rev))
	})
	if more && len(rows) > 0 {
		last := len(rows) - 1
		c := maskedCell("", g.cursor)
		rows[last] = append(rows[last], c)
	}
	return rows
}

func (g *Hard) settle() Result {
	res := Result{Accepted: true}
	if !g.done && g.Completed() {
		g.done = true
		res.Completed, res.Score = true, len(g.cheats)
	}
	return res
}
