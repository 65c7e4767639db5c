package decode

// resampleLinear resamples mono-interleaved frames (channels values per
// frame) from srcRate to dstRate using linear interpolation. Correctness
// over quality is fine here: drum samples are short, one-shot, and never
// pitch-shifted in playback.
func resampleLinear(frames []float32, channels, srcRate, dstRate int) []float32 {
	if srcRate == dstRate || srcRate <= 0 || len(frames) == 0 {
		return frames
	}
	srcFrames := len(frames) / channels
	dstFrames := int(float64(srcFrames) * float64(dstRate) / float64(srcRate))
	if dstFrames < 1 {
		dstFrames = 1
	}
	out := make([]float32, dstFrames*channels)
	ratio := float64(srcFrames-1) / float64(maxInt(dstFrames-1, 1))
	for i := 0; i < dstFrames; i++ {
		pos := float64(i) * ratio
		i0 := int(pos)
		i1 := i0 + 1
		if i1 >= srcFrames {
			i1 = srcFrames - 1
		}
		frac := float32(pos - float64(i0))
		for c := 0; c < channels; c++ {
			a := frames[i0*channels+c]
			b := frames[i1*channels+c]
			out[i*channels+c] = a + (b-a)*frac
		}
	}
	return out
}

// downmixToStereo averages the source's channel pairs down to a single
// stereo pair per frame: even-indexed channels into left, odd-indexed into
// right, and an unpaired last channel into both. Input is interleaved with
// the given channel count; output is interleaved stereo.
func downmixToStereo(frames []float32, channels int) []float32 {
	if channels <= 2 {
		return frames
	}
	n := len(frames) / channels
	out := make([]float32, n*2)
	for f := 0; f < n; f++ {
		frame := frames[f*channels : f*channels+channels]
		var l, r float32
		half := channels / 2
		for c := 0; c < channels; c++ {
			if c%2 == 0 {
				l += frame[c]
			}
			if c%2 == 1 || (channels%2 == 1 && c == channels-1) {
				r += frame[c]
			}
		}
		lCount := float32(half)
		if channels%2 == 1 {
			lCount++
		}
		rCount := float32(channels) - float32(half)
		if lCount > 0 {
			l /= lCount
		}
		if rCount > 0 {
			r /= rCount
		}
		out[f*2] = l
		out[f*2+1] = r
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
