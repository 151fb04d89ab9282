// assets/embed.go
//
// Embedded files shipped inside the binary:
//   - migrations/*.sql: SQLite schema, applied by store.Migrate.
//   - poems.yaml: sample poem pack for `byrote import`.

package assets

import (
	"embed"
	"io/fs"
	"sort"
)

//go:embed migrations/*.sql poems.yaml
var FS embed.FS

// Migration is one embedded SQL script.
type Migration struct {
	Name string
	SQL  string
}

// Migrations returns the embedded SQL scripts in lexical order.
func Migrations() ([]Migration, error) {
	names, err := fs.Glob(FS, "migrations/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	out := make([]Migration, 0, len(names))
	for _, name := range names {
		b, err := FS.ReadFile(name)
		if err != nil {
			return nil, err
		}
		out = append(out, Migration{Name: name, SQL: string(b)})
	}
	return out, nil
}

// SamplePoems returns the bundled poem pack (YAML).
func SamplePoems() ([]byte, error) {
	return FS.ReadFile("poems.yaml")
}
