package decode

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"
)

// decodeWav mirrors the header-parsing care of internal/getbpm.Length, but
// reads the full PCM body into normalized float32 frames instead of just
// measuring duration.
func decodeWav(r io.Reader) (frames []float32, channels, rate int, err error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		return nil, 0, 0, fmt.Errorf("wav decode requires a seekable reader")
	}

	d := wav.NewDecoder(rs)
	if !d.IsValidFile() {
		return nil, 0, 0, fmt.Errorf("invalid WAV file")
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, 0, 0, fmt.Errorf("read PCM: %w", err)
	}
	if buf.Format == nil || buf.Format.SampleRate == 0 {
		return nil, 0, 0, fmt.Errorf("missing format chunk")
	}

	channels = buf.Format.NumChannels
	rate = buf.Format.SampleRate
	maxVal := float32(int64(1) << uint(buf.SourceBitDepth-1))
	if maxVal == 0 {
		maxVal = 32768
	}

	frames = make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		frames[i] = float32(v) / maxVal
	}
	return frames, channels, rate, nil
}
