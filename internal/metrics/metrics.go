// Package metrics holds the process-wide observability counters named in
// the external interfaces: events dropped, MIDI parse failures, voices
// stolen, and reload outcomes. Every field is a lock-free atomic counter so
// any thread, including the audio thread, can increment one without
// contention.
package metrics

import "sync/atomic"

// Counters is shared by reference across the components that produce
// observability data.
type Counters struct {
	EventsDropped     atomic.Uint64
	MidiParseFailures atomic.Uint64
	VoicesStolen      atomic.Uint64
	ReloadsSucceeded  atomic.Uint64
	ReloadsFailed     atomic.Uint64
}

// New returns a zeroed counter set.
func New() *Counters { return &Counters{} }

// Snapshot is a read-only point-in-time copy, safe to hand to the status
// UI or a log line without exposing the live atomics.
type Snapshot struct {
	EventsDropped     uint64
	MidiParseFailures uint64
	VoicesStolen      uint64
	ReloadsSucceeded  uint64
	ReloadsFailed     uint64
}

// Snapshot reads every counter once. Individual fields may be slightly
// inconsistent with each other under concurrent updates; that's acceptable
// for a display snapshot.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		EventsDropped:     c.EventsDropped.Load(),
		MidiParseFailures: c.MidiParseFailures.Load(),
		VoicesStolen:      c.VoicesStolen.Load(),
		ReloadsSucceeded:  c.ReloadsSucceeded.Load(),
		ReloadsFailed:     c.ReloadsFailed.Load(),
	}
}
