// Package reload coordinates hot-swapping the active Kit: filesystem
// change notifications are debounced and folded into a single load, whose
// result is published to a kitcell.Cell read by the audio thread.
package reload

import (
	"log"
	"sync"
	"time"

	"github.com/schollz/drumcore/internal/kit"
	"github.com/schollz/drumcore/internal/kitcell"
	"github.com/schollz/drumcore/internal/metrics"
)

// DefaultDebounce matches the quiet period used before reloading, long
// enough to absorb a burst of individual file writes from a sample editor.
const DefaultDebounce = 250 * time.Millisecond

// Coordinator debounces NotifyChange calls and loads the kit at most once
// per quiet period, publishing the result through a kitcell.Cell.
type Coordinator struct {
	mu         sync.Mutex
	timer      *time.Timer
	debounce   time.Duration
	sampleRate int
	cell       *kitcell.Cell
	metrics    *metrics.Counters
}

// New builds a Coordinator that publishes reloaded kits into cell.
func New(cell *kitcell.Cell, m *metrics.Counters, sampleRate int, debounce time.Duration) *Coordinator {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Coordinator{debounce: debounce, sampleRate: sampleRate, cell: cell, metrics: m}
}

// NotifyChange schedules a reload of dir after the debounce window, resetting
// the timer if a change was already pending.
func (c *Coordinator) NotifyChange(dir string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, func() {
		c.ReloadNow(dir)
	})
}

// ReloadNow loads dir immediately, bypassing the debounce window, and
// publishes the result if it succeeds. A failed load leaves the previously
// published kit in place.
func (c *Coordinator) ReloadNow(dir string) {
	start := time.Now()
	newKit, warnings, err := kit.Load(dir, c.sampleRate)
	for _, w := range warnings {
		log.Printf("reload: %s", w.String())
	}
	if err != nil {
		if c.metrics != nil {
			c.metrics.ReloadsFailed.Add(1)
		}
		log.Printf("reload: failed to load %s: %v", dir, err)
		return
	}

	c.cell.Store(newKit)
	if c.metrics != nil {
		c.metrics.ReloadsSucceeded.Add(1)
	}
	log.Printf("reload: loaded %s in %s", dir, time.Since(start))
}
