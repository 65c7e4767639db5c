package decode

import (
	"fmt"
	"io"

	"github.com/mewkiz/flac"
)

// decodeFlac reads an entire FLAC stream into interleaved float32 frames,
// one ParseNext() call per frame the way mewkiz/flac expects to be driven.
func decodeFlac(r io.Reader) (frames []float32, channels, rate int, err error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("open flac stream: %w", err)
	}
	defer stream.Close()

	channels = int(stream.Info.NChannels)
	rate = int(stream.Info.SampleRate)
	maxVal := float32(int64(1) << uint(stream.Info.BitsPerSample-1))
	if maxVal == 0 {
		maxVal = 32768
	}

	for {
		f, ferr := stream.ParseNext()
		if ferr == io.EOF {
			break
		}
		if ferr != nil {
			return nil, 0, 0, fmt.Errorf("parse flac frame: %w", ferr)
		}
		n := len(f.Subframes[0].Samples)
		start := len(frames)
		frames = append(frames, make([]float32, n*channels)...)
		for c, sub := range f.Subframes {
			for i, s := range sub.Samples {
				frames[start+i*channels+c] = float32(s) / maxVal
			}
		}
	}
	return frames, channels, rate, nil
}
