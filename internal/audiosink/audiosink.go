// Package audiosink drives the voice mixer from a real output device. It
// wraps voice.Mixer.Render behind an io.Reader, the pull model an
// ebitengine/oto/v3 player expects: oto calls Read whenever its internal
// buffer needs more frames, so the real-time deadline is oto's callback,
// not anything this package schedules itself.
package audiosink

import (
	"fmt"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/schollz/drumcore/internal/voice"
)

const (
	channelCount = 2 // the mixer always renders interleaved stereo
	bytesPerSample = 2 // 16-bit signed little-endian, oto's native format
)

// Sink owns an oto context/player pair and pulls frames from a Mixer.
type Sink struct {
	ctx    *oto.Context
	player *oto.Player
	reader *mixerReader
}

// Open creates an oto context at sampleRate with a device buffer of
// bufferFrames frames and starts a player pulling from mx. Each Read
// renders as many frames as oto asks for.
func Open(mx *voice.Mixer, sampleRate, bufferFrames int) (*Sink, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channelCount,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   time.Duration(bufferFrames) * time.Second / time.Duration(sampleRate),
	}
	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("open audio output: %w", err)
	}
	<-readyChan

	r := &mixerReader{
		mixer:    mx,
		rate:     sampleRate,
		frames:   make([]float32, bufferFrames*channelCount),
	}
	player := ctx.NewPlayer(r)
	player.Play()

	return &Sink{ctx: ctx, player: player, reader: r}, nil
}

// Close stops playback. Per oto v3.4, the underlying player requires no
// explicit Close beyond letting it stop pulling from Read.
func (s *Sink) Close() {
	s.player.Pause()
}

// mixerReader adapts Mixer.Render (float32, stereo-interleaved) to the
// int16 little-endian byte stream oto's player reads.
type mixerReader struct {
	mixer  *voice.Mixer
	rate   int
	frames []float32
}

func (r *mixerReader) Read(buf []byte) (int, error) {
	wantFrames := len(buf) / (channelCount * bytesPerSample)
	if wantFrames*channelCount > len(r.frames) {
		r.frames = make([]float32, wantFrames*channelCount)
	}
	out := r.frames[:wantFrames*channelCount]

	r.mixer.Render(out, r.rate)

	n := 0
	for _, f := range out {
		v := int16(clip16(f) * 32767)
		buf[n] = byte(v)
		buf[n+1] = byte(v >> 8)
		n += 2
	}
	return n, nil
}

func clip16(x float32) float32 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}
