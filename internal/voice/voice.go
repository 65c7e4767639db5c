// Package voice implements the fixed-capacity polyphonic mixer that runs
// inside the real-time audio callback: voice allocation and stealing,
// choke-group muting, envelope shaping, and buffer mixing, with no
// allocation, locking, or syscalls on the hot path.
package voice

import "github.com/schollz/drumcore/internal/sample"

// State is a voice pool slot's lifecycle stage.
type State int

const (
	Free State = iota
	Active
	Releasing
)

// DefaultPoolSize is the suggested fixed voice pool capacity.
const DefaultPoolSize = 64

// Voice is one mixer slot: a sample reference, a playback cursor, a gain
// envelope, and the source note used to match choke-group targets. Voices
// are allocated once at startup and recycled in place; none are ever
// allocated after the audio stream starts.
type Voice struct {
	state  State
	samp   sample.Sample
	cursor int
	gain   float32 // target (post-attack, pre-release) gain for this voice

	attackRemaining int
	attackTotal     int

	releaseRemaining int
	releaseTotal     int

	sourceNote int
}

// progress returns how far into its sample this voice has played, in
// [0,1], used as the voice-stealing tie-break.
func (v *Voice) progress() float32 {
	if v.samp.NumFrames == 0 {
		return 1
	}
	return float32(v.cursor) / float32(v.samp.NumFrames)
}

// currentGain returns this instant's effective envelope multiplier,
// combining any in-progress attack ramp with any in-progress release ramp.
func (v *Voice) currentGain() float32 {
	g := v.gain
	if v.attackRemaining > 0 && v.attackTotal > 0 {
		g *= 1 - float32(v.attackRemaining)/float32(v.attackTotal)
	}
	if v.state == Releasing && v.releaseTotal > 0 {
		g *= float32(v.releaseRemaining) / float32(v.releaseTotal)
	}
	return g
}

// trigger (re)starts this voice playing samp at the given target gain,
// sourced from sourceNote, with a short linear attack to mask cursor
// discontinuities whether this is a freshly freed slot or a stolen one.
func (v *Voice) trigger(samp sample.Sample, gain float32, sourceNote, attackFrames int) {
	v.state = Active
	v.samp = samp
	v.cursor = 0
	v.gain = gain
	v.sourceNote = sourceNote
	v.attackTotal = attackFrames
	v.attackRemaining = attackFrames
	v.releaseTotal = 0
	v.releaseRemaining = 0
}

// release transitions the voice into its fade-out phase over fadeFrames.
func (v *Voice) release(fadeFrames int) {
	if v.state == Free {
		return
	}
	v.state = Releasing
	v.releaseTotal = fadeFrames
	v.releaseRemaining = fadeFrames
}
