package decode

import (
	"fmt"
	"io"

	vorbisdec "github.com/xlab/vorbis-go/decoder"
)

const vorbisSamplesPerChannel = 4096

// decodeVorbis drains an xlab/vorbis-go decoder's SamplesOut channel while
// Decode runs on its own goroutine, the same producer/consumer shape the
// library's own example driver uses.
func decodeVorbis(r io.Reader) (frames []float32, channels, rate int, err error) {
	d, err := vorbisdec.New(r, vorbisSamplesPerChannel)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("open vorbis stream: %w", err)
	}
	defer d.Close()

	info := d.Info()
	channels = int(info.Channels)
	rate = int(info.SampleRate)

	decodeErr := make(chan error, 1)
	go func() { decodeErr <- d.Decode() }()

	for chunk := range d.SamplesOut() {
		for _, s := range chunk {
			frames = append(frames, s...)
		}
	}
	if derr := <-decodeErr; derr != nil {
		return nil, 0, 0, fmt.Errorf("decode vorbis stream: %w", derr)
	}
	return frames, channels, rate, nil
}
