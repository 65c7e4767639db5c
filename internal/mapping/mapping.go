// Package mapping parses the optional per-kit mapping.toml document and
// supplies the built-in General MIDI and vendor default tables used when a
// kit ships none.
package mapping

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// Mapping is a kit's display-name override, note-label table, and choke
// table, merged over whichever default applies.
type Mapping struct {
	Name   string
	Notes  map[int]string
	Chokes map[int][]int
}

// rawMapping is the TOML-level shape of mapping.toml; unknown keys are
// ignored by go-toml/v2 decoding into a named struct.
type rawMapping struct {
	Name   string         `toml:"name"`
	Notes  map[string]string `toml:"notes"`
	Chokes map[string][]int  `toml:"chokes"`
}

// Parse reads and decodes a mapping.toml file. Parse failures are reported
// to the caller, which per the non-fatal mapping policy should fall back to
// Default() rather than abort the kit load.
func Parse(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var raw rawMapping
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	m := &Mapping{
		Name:   raw.Name,
		Notes:  make(map[int]string, len(raw.Notes)),
		Chokes: make(map[int][]int, len(raw.Chokes)),
	}
	for k, v := range raw.Notes {
		n, convErr := atoiNote(k)
		if convErr != nil {
			continue
		}
		m.Notes[n] = v
	}
	for k, v := range raw.Chokes {
		n, convErr := atoiNote(k)
		if convErr != nil {
			continue
		}
		m.Chokes[n] = v
	}
	return m, nil
}

func atoiNote(s string) (int, error) {
	var n int
	_, err := fmt.Sscanf(s, "%d", &n)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > 127 {
		return 0, fmt.Errorf("note %d out of range", n)
	}
	return n, nil
}
