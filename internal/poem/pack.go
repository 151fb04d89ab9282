// internal/poem/pack.go
//
// Poem packs: YAML files holding several poems, used by the import
// command, POST /poems/import and the bundled sample poems.

package poem

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// PackFile is the YAML layout of a poem pack.
type PackFile struct {
	Poems []Poem `yaml:"poems"`
}

// ParsePack decodes a poem pack. Fields are trimmed; entries without a
// single word are rejected with their position.
func ParsePack(data []byte) ([]Poem, error) {
	var pf PackFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse poem pack: %w", err)
	}
	out := make([]Poem, 0, len(pf.Poems))
	for i, p := range pf.Poems {
		p = p.Clean()
		if !p.HasWords() {
			return nil, fmt.Errorf("poem %d (%q) has no words", i+1, p.Title)
		}
		out = append(out, p)
	}
	return out, nil
}

// Clean trims title, author and text the way the add form does.
func (p Poem) Clean() Poem {
	return Poem{
		Title:  strings.TrimSpace(p.Title),
		Author: strings.TrimSpace(p.Author),
		Text:   strings.TrimSpace(p.Text),
	}
}
