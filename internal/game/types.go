// internal/game/types.go
//
// Core type definitions shared by the easy and hard engines.
// Defines:
//   - CellKind / Cell: per-token render decision for the presentation layer.
//   - Row: one rendered line.
//   - Result: outcome of a single input event.

package game

import "github.com/robalobadob/byrote/internal/poem"

// Placeholder is the fixed-width text shown in place of a masked word.
const Placeholder = "-----"

// CellKind says how a token is presented.
// Possible values:
//   - "text":   separator, blank or punctuation, shown verbatim.
//   - "shown":  a word the user has guessed or revealed.
//   - "masked": a hidden word; activating it is a cheat.
type CellKind string

const (
	CellText   CellKind = "text"
	CellShown  CellKind = "shown"
	CellMasked CellKind = "masked"
)

// Cell is the render decision for one token.
type Cell struct {
	Kind     CellKind `json:"kind"`
	Text     string   `json:"text"`               // original token, or Placeholder when masked
	Revealed bool     `json:"revealed,omitempty"` // shown because of a cheat
	Word     string   `json:"word,omitempty"`     // easy mode: normalized word a masked cell reveals
	Index    int      `json:"index"`              // ordinal among words, -1 for text cells
}

// Row is a rendered line.
type Row []Cell

// Result reports what an input event did.
type Result struct {
	Accepted  bool // state changed
	Completed bool // this event completed the poem
	Score     int  // cheat count, set when Completed
}

func textCell(tok string) Cell { return Cell{Kind: CellText, Text: tok, Index: -1} }

func shownCell(tok string, ordinal int, revealed bool) Cell {
	return Cell{Kind: CellShown, Text: tok, Revealed: revealed, Index: ordinal}
}

func maskedCell(tok string, ordinal int) Cell {
	w := ""
	if tok != "" {
		w = poem.Normalize(tok)
	}
	return Cell{Kind: CellMasked, Text: Placeholder, Word: w, Index: ordinal}
}
