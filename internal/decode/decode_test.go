package decode

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

func writeSineWav(t *testing.T, path string, rate, freq, numFrames int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, rate, 16, 1, 1)
	data := make([]int, numFrames)
	for i := range data {
		v := math.Sin(2 * math.Pi * float64(freq) * float64(i) / float64(rate))
		data[i] = int(v * 32767)
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestDecodeRoundTripWav(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tone.wav")
	const rate = 44100
	const freq = 1000
	const numFrames = rate // 1 second

	writeSineWav(t, path, rate, freq, numFrames)

	s, err := Decode(path, rate)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if s.Rate != rate {
		t.Errorf("Rate = %d, want %d", s.Rate, rate)
	}

	got := s.RMS()
	want := 1 / math.Sqrt2
	if math.Abs(got-want) > 1e-3 {
		t.Errorf("RMS = %v, want within 1e-3 of %v", got, want)
	}
}

func TestDecodeUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "not-audio.bin")
	if err := os.WriteFile(path, []byte("not an audio file at all"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := Decode(path, 44100)
	if err == nil {
		t.Fatal("expected error for unsupported content")
	}
	var derr *Error
	if !asError(err, &derr) {
		t.Fatalf("error is not *decode.Error: %v", err)
	}
	if derr.Kind != Unsupported {
		t.Errorf("Kind = %v, want Unsupported", derr.Kind)
	}
}

func asError(err error, target **Error) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	*target = e
	return true
}
