// internal/poem/poem.go
//
// Poem text handling for the memorization engine.
// Responsibilities:
//   - Split raw text into lines and tokens without losing formatting.
//   - Walk tokens in reading order, numbering the addressable words.
//   - Derive the vocabulary (distinct normalized words) of a poem.
//
// Token layout:
//   - Each line alternates word, separator, word, ... where separators are
//     the single characters ' ' and '—'. Word tokens may be empty.
//   - An empty line is a single empty-string token.
//   - Joining tokens (and lines with "\n") gives back the original text.

package poem

import (
	"strings"
	"unicode/utf8"
)

// Poem is the unit of text a user learns.
type Poem struct {
	Title  string `json:"title" yaml:"title"`
	Author string `json:"author" yaml:"author"`
	Text   string `json:"text" yaml:"text"`
}

// HasWords reports whether the poem has at least one word that can be
// masked and guessed.
func (p Poem) HasWords() bool {
	return Structure(p.Text).WordCount() > 0
}

// Line is one line of a structured poem.
type Line []string

// Structured is a poem decomposed into lines of tokens.
type Structured []Line

// SplitLines splits text on newlines. Lines are not trimmed.
func SplitLines(text string) []string {
	return strings.Split(text, "\n")
}

// SplitWords splits a line on spaces and em-dashes, keeping each separator
// as its own token between the words it separates.
func SplitWords(line string) []string {
	out := make([]string, 0, 8)
	start := 0
	for i, r := range line {
		if !isSeparatorRune(r) {
			continue
		}
		out = append(out, line[start:i], string(r))
		start = i + utf8.RuneLen(r)
	}
	return append(out, line[start:])
}

// Structure builds the structured form of text. It is a pure function of
// its input.
func Structure(text string) Structured {
	lines := SplitLines(text)
	sp := make(Structured, len(lines))
	for i, l := range lines {
		sp[i] = SplitWords(l)
	}
	return sp
}

// Text reassembles the original text.
func (sp Structured) Text() string {
	var b strings.Builder
	for i, line := range sp {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, tok := range line {
			b.WriteString(tok)
		}
	}
	return b.String()
}

// Walk calls fn for every token in reading order. ordinal is the index of
// the token among addressable words, or -1 for separators, blanks and
// punctuation-only tokens.
func (sp Structured) Walk(fn func(line, col int, tok string, ordinal int)) {
	n := 0
	for i, line := range sp {
		for j, tok := range line {
			if IsWord(tok) {
				fn(i, j, tok, n)
				n++
				continue
			}
			fn(i, j, tok, -1)
		}
	}
}

// WordCount returns the number of addressable words.
func (sp Structured) WordCount() int {
	n := 0
	for _, line := range sp {
		for _, tok := range line {
			if IsWord(tok) {
				n++
			}
		}
	}
	return n
}

// Vocabulary is the set of distinct normalized words of a poem.
type Vocabulary map[string]struct{}

// VocabularyOf collects the normalized addressable words of sp.
func VocabularyOf(sp Structured) Vocabulary {
	v := make(Vocabulary)
	for _, line := range sp {
		for _, tok := range line {
			if IsWord(tok) {
				v[Normalize(tok)] = struct{}{}
			}
		}
	}
	return v
}

// Has reports whether the normalized word w belongs to the vocabulary.
func (v Vocabulary) Has(w string) bool {
	_, ok := v[w]
	return ok
}
