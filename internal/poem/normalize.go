// internal/poem/normalize.go
//
// Word normalization for comparisons.
// Responsibilities:
//   - Reduce a raw token to letters, apostrophes and inner hyphens.
//   - Upper-case the result; this is the only form compared for equality.
//   - Classify tokens as whitespace, separators or addressable words.
//
// Normalize is idempotent: the alphabet includes the upper-case forms of
// every accepted letter.

package poem

import (
	"strings"
	"unicode"
)

const emDash = '—'

// yDiaeresis is the upper case of ÿ (U+00FF), the one Latin-1 letter whose
// upper case lies outside Latin-1.
const yDiaeresis = 'Ÿ'

// isLetter reports whether r belongs to the accepted alphabet:
// ASCII letters plus the Latin-1 range U+00C0..U+00FF, and Ÿ.
func isLetter(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= 0xC0 && r <= 0xFF || r == yDiaeresis
}

func isSeparatorRune(r rune) bool { return r == ' ' || r == emDash }

// ExtractActualWord drops everything but letters, apostrophes and hyphens,
// then trims trailing hyphens so a word broken across lines ("snow-")
// matches its stem.
func ExtractActualWord(tok string) string {
	var b strings.Builder
	b.Grow(len(tok))
	for _, r := range tok {
		if isLetter(r) || r == '\'' || r == '-' {
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// Normalize is the comparison form of a token: ExtractActualWord,
// upper-cased.
func Normalize(tok string) string {
	return strings.ToUpper(ExtractActualWord(tok))
}

// IsWhitespace reports whether tok is empty or all whitespace.
func IsWhitespace(tok string) bool {
	for _, r := range tok {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// IsSeparator reports whether tok is a single separator character.
func IsSeparator(tok string) bool {
	return tok == " " || tok == string(emDash)
}

// IsWord reports whether tok is addressable: a real word that can be
// masked, guessed and counted.
func IsWord(tok string) bool {
	if IsWhitespace(tok) || IsSeparator(tok) {
		return false
	}
	return Normalize(tok) != ""
}
