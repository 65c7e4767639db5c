// Package kitcell holds the single atomically swappable slot for the
// currently active kit.Kit, read by the audio thread and replaced by the
// reload coordinator.
package kitcell

import (
	"sync/atomic"

	"github.com/schollz/drumcore/internal/kit"
)

// Cell is a wait-free single-slot holder for the live kit.Kit. Load never
// contends a concurrent Store; Store returns the previous pointer so the
// caller (never the audio thread) can decide when it's safe to let it go.
type Cell struct {
	ptr atomic.Pointer[kit.Kit]
}

// New creates a Cell, optionally pre-populated.
func New(initial *kit.Kit) *Cell {
	c := &Cell{}
	if initial != nil {
		c.ptr.Store(initial)
	}
	return c
}

// Load returns the current kit snapshot, or nil if none has been published
// yet. Safe to call from the audio thread.
func (c *Cell) Load() *kit.Kit { return c.ptr.Load() }

// Store atomically replaces the current kit and returns the one it
// replaced (nil on first publish). The audio thread never calls Store and
// must not be the one to drop the returned pointer's last reference;
// deferred reclamation here is trivial because Go's garbage collector frees
// the old Kit once every reader — including any in-flight audio callback
// still holding its own copy of the pointer from an earlier Load — has
// moved on, with no explicit free step required.
func (c *Cell) Store(newKit *kit.Kit) *kit.Kit {
	return c.ptr.Swap(newKit)
}
