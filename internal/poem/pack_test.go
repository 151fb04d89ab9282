package poem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePack(t *testing.T) {
	data := []byte(`
poems:
  - title: "  Roses  "
    author: Anon
    text: |
      Roses are red
      Violets are blue
`)
	poems, err := ParsePack(data)
	require.NoError(t, err)
	require.Len(t, poems, 1)
	assert.Equal(t, Poem{Title: "Roses", Author: "Anon", Text: "Roses are red\nViolets are blue"}, poems[0])
}

func TestParsePackRejectsEmptyText(t *testing.T) {
	_, err := ParsePack([]byte("poems:\n  - title: Blank\n    text: '   '\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Blank")
}

func TestParsePackRejectsPoemWithoutWords(t *testing.T) {
	_, err := ParsePack([]byte("poems:\n  - title: Digits\n    text: '1 2 3'\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Digits")
}

func TestParsePackInvalidYAML(t *testing.T) {
	_, err := ParsePack([]byte("poems: [unterminated"))
	assert.Error(t, err)
}
