package decode

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"
)

// decodeMP3 drains a go-mp3 decoder, which always produces 16-bit
// little-endian stereo PCM regardless of the source channel count.
func decodeMP3(r io.Reader) (frames []float32, channels, rate int, err error) {
	d, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("open mp3 stream: %w", err)
	}

	raw, err := io.ReadAll(d)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("read mp3 pcm: %w", err)
	}
	if len(raw)%4 != 0 {
		raw = raw[:len(raw)-len(raw)%4]
	}

	n := len(raw) / 2
	frames = make([]float32, n)
	for i := 0; i < n; i++ {
		v := int16(binary.LittleEndian.Uint16(raw[i*2:]))
		frames[i] = float32(v) / 32768
	}
	return frames, 2, d.SampleRate(), nil
}
