// Package kit scans a directory of sample files, groups them into velocity
// and round-robin layers per the filename grammar, and assembles an
// immutable Kit snapshot ready to be published through a kitcell.Cell.
package kit

import (
	"sync/atomic"

	"github.com/schollz/drumcore/internal/sample"
)

// VelocityLayer is an ordered set of round-robin sample variants covering a
// contiguous velocity range. Cursor is mutated only by the audio thread
// once the Kit is live; it is embedded directly in the layer rather than a
// side table, per the relaxed-atomics design note.
type VelocityLayer struct {
	Lo, Hi  int // inclusive MIDI velocity bounds, 1..127
	Samples []sample.Sample
	cursor  atomic.Uint32
}

// Contains reports whether velocity v falls within the layer's range.
func (l *VelocityLayer) Contains(v int) bool { return v >= l.Lo && v <= l.Hi }

// Next returns the next round-robin sample, advancing the cursor. Only
// called from the audio thread, never concurrently with itself.
func (l *VelocityLayer) Next() sample.Sample {
	idx := l.cursor.Add(1) - 1
	return l.Samples[int(idx)%len(l.Samples)]
}

// Note is the set of velocity layers triggered by one MIDI note number,
// plus the note numbers it chokes when played.
type Note struct {
	Layers       []*VelocityLayer
	ChokeTargets []int
}

// LayerFor returns the layer whose range contains velocity, or nil.
func (n *Note) LayerFor(velocity int) *VelocityLayer {
	for _, l := range n.Layers {
		if l.Contains(velocity) {
			return l
		}
	}
	return nil
}

// Kit is an immutable mapping from MIDI note number to Note, published as a
// whole through a kitcell.Cell. Once constructed it is never mutated except
// for the relaxed round-robin cursors embedded in its layers.
type Kit struct {
	Name   string
	Dir    string
	Notes  map[int]*Note
	Labels map[int]string
}

// Note looks up a note by MIDI number, returning nil if the kit has none.
func (k *Kit) Note(n int) *Note {
	if k == nil {
		return nil
	}
	return k.Notes[n]
}
