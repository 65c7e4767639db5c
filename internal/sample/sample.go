// Package sample holds the PCM container shared by the decoder, kit loader
// and voice mixer.
package sample

import "math"

// Sample is an immutable buffer of single-precision PCM frames at a fixed
// sample rate. Mono samples store one float per frame; stereo samples store
// an interleaved L/R pair per frame. Outside tests, only internal/decode
// constructs one.
type Sample struct {
	Frames   []float32 // mono: len == NumFrames; stereo: len == NumFrames*2, interleaved
	Rate     int
	Stereo   bool
	NumFrames int
}

// New wraps frames already at rate, inferring NumFrames from len(frames) and
// the channel count.
func New(frames []float32, rate int, stereo bool) Sample {
	n := len(frames)
	if stereo {
		n /= 2
	}
	return Sample{Frames: frames, Rate: rate, Stereo: stereo, NumFrames: n}
}

// At returns the L/R pair for frame f, duplicating the mono value into both
// channels when the sample is mono. f must be in [0, NumFrames).
func (s Sample) At(f int) (l, r float32) {
	if s.Stereo {
		v := s.Frames[f*2:]
		return v[0], v[1]
	}
	v := s.Frames[f]
	return v, v
}

// RMS returns the root-mean-square level of the sample, treated as mono by
// averaging channels when stereo. Used by decode round-trip tests.
func (s Sample) RMS() float64 {
	if s.NumFrames == 0 {
		return 0
	}
	var sum float64
	for f := 0; f < s.NumFrames; f++ {
		l, r := s.At(f)
		v := float64(l+r) / 2
		sum += v * v
	}
	return math.Sqrt(sum / float64(s.NumFrames))
}
