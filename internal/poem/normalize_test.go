package poem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractActualWord(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Love,", "Love"},
		{"don't", "don't"},
		{"well-known", "well-known"},
		{"snow-", "snow"},
		{"(café)", "café"},
		{"Öl!", "Öl"},
		{"“quoted”", "quoted"},
		{"1984", ""},
		{"...", ""},
		{"", ""},
		{"end--", "end"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractActualWord(tt.in), "ExtractActualWord(%q)", tt.in)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "LOVE", Normalize("Love,"))
	assert.Equal(t, Normalize("love"), Normalize("LOVE!"))
	assert.Equal(t, "DON'T", Normalize("don't"))
	assert.Equal(t, "CAFÉ", Normalize("café"))
	assert.Equal(t, "", Normalize("   "))
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, in := range []string{"ÿes", "ŸES", "Love,", "café", "Öl!", "don't", "snow-", "æther", "1984"} {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "Normalize(Normalize(%q))", in)
	}
	assert.Equal(t, "ŸES", Normalize("ÿes"))
	assert.Equal(t, Normalize("ÿes"), Normalize("ŸES"))
}

func TestIsWhitespace(t *testing.T) {
	assert.True(t, IsWhitespace(""))
	assert.True(t, IsWhitespace(" "))
	assert.True(t, IsWhitespace("\t\r"))
	assert.False(t, IsWhitespace("a"))
	assert.False(t, IsWhitespace(" a "))
}

func TestIsWord(t *testing.T) {
	assert.True(t, IsWord("Roses"))
	assert.True(t, IsWord("red,"))
	assert.False(t, IsWord(" "))
	assert.False(t, IsWord("—"))
	assert.False(t, IsWord(""))
	assert.False(t, IsWord("&"))
}
