// Package decode turns an audio file on disk into a sample.Sample at a
// caller-chosen target sample rate, sniffing its container from content
// rather than trusting the file extension.
package decode

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/schollz/drumcore/internal/sample"
)

const sniffLen = 12

// Decode reads path, identifies its container, decodes to native-rate PCM,
// downmixes beyond-stereo sources, and linearly resamples to targetRate.
func Decode(path string, targetRate int) (sample.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return sample.Sample{}, newErr(Io, path, err)
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return sample.Sample{}, newErr(Io, path, err)
	}
	head = head[:n]
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return sample.Sample{}, newErr(Io, path, err)
	}

	var (
		frames   []float32
		channels int
		rate     int
		decErr   error
	)

	switch sniff(head) {
	case formatWav:
		frames, channels, rate, decErr = decodeWav(f)
	case formatFlac:
		frames, channels, rate, decErr = decodeFlac(f)
	case formatMP3:
		frames, channels, rate, decErr = decodeMP3(f)
	case formatVorbis:
		frames, channels, rate, decErr = decodeVorbis(f)
	default:
		return sample.Sample{}, newErr(Unsupported, path, fmt.Errorf("unrecognized container"))
	}
	if decErr != nil {
		return sample.Sample{}, newErr(Malformed, path, decErr)
	}
	if channels <= 0 || rate <= 0 || len(frames) == 0 {
		return sample.Sample{}, newErr(Malformed, path, fmt.Errorf("empty or invalid decode result"))
	}

	if channels > 2 {
		frames = downmixToStereo(frames, channels)
		channels = 2
	}
	if targetRate > 0 && rate != targetRate {
		frames = resampleLinear(frames, channels, rate, targetRate)
		rate = targetRate
	}

	return sample.New(frames, rate, channels == 2), nil
}

// DecodeBytes behaves like Decode but reads from an in-memory buffer, for
// callers that already hold a container's bytes and need no disk access.
func DecodeBytes(label string, data []byte, targetRate int) (sample.Sample, error) {
	r := bytes.NewReader(data)
	head := make([]byte, sniffLen)
	n, _ := io.ReadFull(r, head)
	head = head[:n]
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return sample.Sample{}, newErr(Io, label, err)
	}

	var (
		frames   []float32
		channels int
		rate     int
		decErr   error
	)
	switch sniff(head) {
	case formatWav:
		frames, channels, rate, decErr = decodeWav(r)
	case formatFlac:
		frames, channels, rate, decErr = decodeFlac(r)
	case formatMP3:
		frames, channels, rate, decErr = decodeMP3(r)
	case formatVorbis:
		frames, channels, rate, decErr = decodeVorbis(r)
	default:
		return sample.Sample{}, newErr(Unsupported, label, fmt.Errorf("unrecognized container"))
	}
	if decErr != nil {
		return sample.Sample{}, newErr(Malformed, label, decErr)
	}
	if channels <= 0 || rate <= 0 || len(frames) == 0 {
		return sample.Sample{}, newErr(Malformed, label, fmt.Errorf("empty or invalid decode result"))
	}
	if channels > 2 {
		frames = downmixToStereo(frames, channels)
		channels = 2
	}
	if targetRate > 0 && rate != targetRate {
		frames = resampleLinear(frames, channels, rate, targetRate)
		rate = targetRate
	}
	return sample.New(frames, rate, channels == 2), nil
}
