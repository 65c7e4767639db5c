package kit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/schollz/drumcore/internal/decode"
	"github.com/schollz/drumcore/internal/mapping"
	"github.com/schollz/drumcore/internal/sample"
)

// LoadWarning records a non-fatal problem encountered while loading a kit.
// The kit still loads with whatever survived.
type LoadWarning struct {
	Path string
	Err  error
}

func (w LoadWarning) String() string { return fmt.Sprintf("%s: %v", w.Path, w.Err) }

type fileEntry struct {
	path    string
	name    string // base filename, for the lexicographic tie-break
	hasTier bool
	tier    int
	hasRR   bool
	rr      int
}

// Load scans dir (one level, non-recursive) for files matching the naming
// grammar, groups them into notes and velocity layers, decodes each sample
// at targetRate, and merges an optional mapping.toml (or a built-in
// default) over the result.
func Load(dir string, targetRate int) (*Kit, []LoadWarning, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("read kit dir %s: %w", dir, err)
	}

	byNote := map[int][]fileEntry{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		pn, ok := parseFilename(stem)
		if !ok {
			continue
		}
		byNote[pn.Note] = append(byNote[pn.Note], fileEntry{
			path: filepath.Join(dir, name), name: name,
			hasTier: pn.HasTier, tier: pn.Tier,
			hasRR: pn.HasRR, rr: pn.RR,
		})
	}

	var warnings []LoadWarning

	mapPath := filepath.Join(dir, "mapping.toml")
	m, perr := mapping.Parse(mapPath)
	name := filepath.Base(dir)
	if perr != nil {
		if !errors.Is(perr, os.ErrNotExist) {
			warnings = append(warnings, LoadWarning{Path: mapPath, Err: perr})
		}
		m = mapping.Default()
	} else if m.Name != "" {
		name = m.Name
	}

	notes := map[int]*Note{}
	for noteNum, files := range byNote {
		n, fileWarnings := buildNote(files, targetRate)
		warnings = append(warnings, fileWarnings...)
		if n == nil {
			continue
		}
		n.ChokeTargets = m.Chokes[noteNum]
		notes[noteNum] = n
	}

	labels := map[int]string{}
	for noteNum := range notes {
		labels[noteNum] = mapping.LabelFor(m, noteNum)
	}

	return &Kit{Name: name, Dir: dir, Notes: notes, Labels: labels}, warnings, nil
}

// buildNote groups one note's files into velocity tiers, decodes every
// sample, and assembles the resulting VelocityLayers. Files that fail to
// decode are dropped (not the whole layer) unless the layer ends up empty,
// in which case the layer itself is dropped; a note with no surviving
// layers returns nil.
func buildNote(files []fileEntry, targetRate int) (*Note, []LoadWarning) {
	tierGroups := map[int][]fileEntry{}
	for _, f := range files {
		tier := 1
		if f.hasTier {
			tier = f.tier
		}
		tierGroups[tier] = append(tierGroups[tier], f)
	}

	tierKeys := make([]int, 0, len(tierGroups))
	for t := range tierGroups {
		tierKeys = append(tierKeys, t)
	}
	sort.Ints(tierKeys)
	K := len(tierKeys)

	var warnings []LoadWarning
	var layers []*VelocityLayer
	for i, t := range tierKeys {
		lo, hi := tierRange(i+1, K)

		group := tierGroups[t]
		sort.Slice(group, func(a, b int) bool {
			ra, rb := rrKey(group[a]), rrKey(group[b])
			if ra != rb {
				return ra < rb
			}
			return group[a].name < group[b].name
		})

		var layerSamples []sample.Sample
		for _, f := range group {
			s, err := decode.Decode(f.path, targetRate)
			if err != nil {
				warnings = append(warnings, LoadWarning{Path: f.path, Err: err})
				continue
			}
			layerSamples = append(layerSamples, s)
		}
		if len(layerSamples) == 0 {
			continue
		}

		layers = append(layers, &VelocityLayer{Lo: lo, Hi: hi, Samples: layerSamples})
	}

	if len(layers) == 0 {
		return nil, warnings
	}
	return &Note{Layers: layers}, warnings
}

func rrKey(f fileEntry) int {
	if f.hasRR {
		return f.rr
	}
	return 1
}

// tierRange computes the i-th (1-indexed) of K contiguous equal-width
// velocity ranges partitioning [1..127], the last tier extending to 127 to
// absorb the remainder.
func tierRange(i, K int) (lo, hi int) {
	if K <= 1 {
		return 1, 127
	}
	lo = (i-1)*127/K + 1
	if i == K {
		hi = 127
	} else {
		hi = i * 127 / K
	}
	return lo, hi
}
