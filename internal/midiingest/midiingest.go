// Package midiingest turns raw MIDI bytes into eventqueue entries. Parse is
// a pure function with no device dependency so the status-byte decoding can
// be unit tested without opening a port.
package midiingest

import "github.com/schollz/drumcore/internal/eventqueue"

// DefaultPedalCC is the controller number watched for hi-hat pedal state
// (CC 4, the General MIDI foot-controller convention most drum controllers
// reuse for hi-hat pedal position).
const DefaultPedalCC = 4

// DefaultPedalThreshold is the CC value at or above which the pedal is
// considered closed.
const DefaultPedalThreshold = 64

// VirtualPedalNote is the synthetic note number PedalClose entries carry,
// used to look up the pedal's own choke-target list in the active Kit.
const VirtualPedalNote = 42

// Options configures device-specific ingest rules.
type Options struct {
	PedalCC        uint8
	PedalThreshold uint8
	VirtualNote    int
}

// DefaultOptions returns the conventional hi-hat pedal mapping.
func DefaultOptions() Options {
	return Options{
		PedalCC:        DefaultPedalCC,
		PedalThreshold: DefaultPedalThreshold,
		VirtualNote:    VirtualPedalNote,
	}
}

// Parse decodes one raw MIDI message into an eventqueue.Entry. The second
// return value is false for messages that are not relevant (clock, active
// sensing, system exclusive, pedal CC below the closed threshold) — those
// are not failures. Parse keeps no state between calls: every pedal CC at
// or above the threshold yields a PedalClose, not only the first one after
// the pedal was open. failed reports whether the message looked
// like a recognized status byte but was truncated or otherwise malformed,
// so the caller can count it against the unparsed-message metric without
// double-counting irrelevant traffic.
func Parse(raw []byte, ts int64, opt Options) (entry eventqueue.Entry, ok bool, failed bool) {
	if len(raw) == 0 {
		return eventqueue.Entry{}, false, false
	}
	status := raw[0]
	if status < 0x80 {
		// running-status continuation bytes arriving without a leading
		// status byte are not reconstructed here; treat as irrelevant.
		return eventqueue.Entry{}, false, false
	}
	kind := status & 0xF0

	switch kind {
	case 0x90, 0x80:
		if len(raw) < 3 {
			return eventqueue.Entry{}, false, true
		}
		note := int(raw[1])
		velocity := int(raw[2])
		if kind == 0x90 && velocity > 0 {
			return eventqueue.Entry{Kind: eventqueue.NoteOn, Note: note, Velocity: velocity, Timestamp: ts}, true, false
		}
		return eventqueue.Entry{Kind: eventqueue.NoteOff, Note: note, Timestamp: ts}, true, false

	case 0xA0:
		if len(raw) < 3 {
			return eventqueue.Entry{}, false, true
		}
		pressure := int(raw[2])
		if pressure == 0 {
			return eventqueue.Entry{}, false, false
		}
		return eventqueue.Entry{Kind: eventqueue.ChokeAll, Note: int(raw[1]), Timestamp: ts}, true, false

	case 0xB0:
		if len(raw) < 3 {
			return eventqueue.Entry{}, false, true
		}
		controller := raw[1]
		value := raw[2]
		if controller != opt.PedalCC {
			return eventqueue.Entry{}, false, false
		}
		if value < opt.PedalThreshold {
			return eventqueue.Entry{}, false, false
		}
		return eventqueue.Entry{Kind: eventqueue.PedalClose, Note: opt.VirtualNote, Timestamp: ts}, true, false

	case 0xC0, 0xD0:
		return eventqueue.Entry{}, false, false // program change / channel pressure: irrelevant

	case 0xE0:
		return eventqueue.Entry{}, false, false // pitch bend: irrelevant

	case 0xF0:
		return eventqueue.Entry{}, false, false // system messages (clock, active sensing, sysex): irrelevant

	default:
		return eventqueue.Entry{}, false, false
	}
}
