package voice

import (
	"math"

	"github.com/schollz/drumcore/internal/eventqueue"
	"github.com/schollz/drumcore/internal/kit"
	"github.com/schollz/drumcore/internal/kitcell"
	"github.com/schollz/drumcore/internal/metrics"
)

const (
	// DefaultChokeFadeSeconds and DefaultChokeAllFadeSeconds are used
	// whenever NewMixer is given a non-positive fade setting.
	DefaultChokeFadeSeconds    = 0.005 // hi-hat pedal / mapped choke
	DefaultChokeAllFadeSeconds = 0.05  // cymbal grab (polyphonic aftertouch)
	attackSeconds              = 0.002
)

// Mixer is the real-time audio callback's entry point: a fixed voice pool,
// the kit snapshot it reads through, and the queue it drains. Render is the
// only method ever called from the audio thread; ActiveVoiceCount is read
// by the status view, and every other method here is a helper Render calls
// internally.
type Mixer struct {
	cell                *kitcell.Cell
	queue               *eventqueue.Queue
	metrics             *metrics.Counters
	voices              []Voice
	chokeFadeSeconds    float64
	chokeAllFadeSeconds float64
}

// NewMixer builds a Mixer with poolSize voices, all initially Free.
// chokeFadeMs and chokeAllFadeMs set the mapped-choke and ChokeAll fade
// windows in milliseconds; a non-positive value falls back to the package
// default.
func NewMixer(cell *kitcell.Cell, queue *eventqueue.Queue, m *metrics.Counters, poolSize, chokeFadeMs, chokeAllFadeMs int) *Mixer {
	if poolSize < 1 {
		poolSize = DefaultPoolSize
	}
	chokeFadeSeconds := DefaultChokeFadeSeconds
	if chokeFadeMs > 0 {
		chokeFadeSeconds = float64(chokeFadeMs) / 1000
	}
	chokeAllFadeSeconds := DefaultChokeAllFadeSeconds
	if chokeAllFadeMs > 0 {
		chokeAllFadeSeconds = float64(chokeAllFadeMs) / 1000
	}
	return &Mixer{
		cell: cell, queue: queue, metrics: m, voices: make([]Voice, poolSize),
		chokeFadeSeconds: chokeFadeSeconds, chokeAllFadeSeconds: chokeAllFadeSeconds,
	}
}

// ActiveVoiceCount reports the number of non-Free voices, for the
// read-only status snapshot. Safe to call from a non-RT thread; the result
// is a point-in-time approximation since the audio thread may be mutating
// voice state concurrently.
func (m *Mixer) ActiveVoiceCount() int {
	n := 0
	for i := range m.voices {
		if m.voices[i].state != Free {
			n++
		}
	}
	return n
}

// Render fills out (stereo-interleaved f32, len(out) == bufferFrames*2)
// for one audio callback at the given sample rate. It never allocates,
// locks, or performs I/O.
func (m *Mixer) Render(out []float32, rate int) {
	k := m.cell.Load()

	for i := 0; i < m.queue.Capacity(); i++ {
		e, ok := m.queue.Pop()
		if !ok {
			break
		}
		m.handleEvent(k, e, rate)
	}

	for i := range out {
		out[i] = 0
	}

	bufferFrames := len(out) / 2
	for vi := range m.voices {
		v := &m.voices[vi]
		if v.state == Free {
			continue
		}
		m.mixVoice(v, out, bufferFrames)
	}
}

func (m *Mixer) mixVoice(v *Voice, out []float32, bufferFrames int) {
	for f := 0; f < bufferFrames; f++ {
		if v.state == Free {
			return
		}
		sampleIdx := v.cursor + f
		if sampleIdx >= v.samp.NumFrames {
			v.state = Free
			return
		}

		g := v.currentGain()
		l, r := v.samp.At(sampleIdx)
		out[f*2] = clip(out[f*2] + l*g)
		out[f*2+1] = clip(out[f*2+1] + r*g)

		if v.attackRemaining > 0 {
			v.attackRemaining--
		}
		if v.state == Releasing {
			v.releaseRemaining--
			if v.releaseRemaining <= 0 {
				v.state = Free
				return
			}
		}
	}
	v.cursor += bufferFrames
	if v.state != Free && v.cursor >= v.samp.NumFrames {
		v.state = Free
	}
}

func clip(x float32) float32 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

func (m *Mixer) handleEvent(k *kit.Kit, e eventqueue.Entry, rate int) {
	switch e.Kind {
	case eventqueue.NoteOn:
		m.handleNoteOn(k, e.Note, e.Velocity, rate)
	case eventqueue.NoteOff:
		// one-shot drum samples: no action, reserved for future gating.
	case eventqueue.ChokeAll:
		m.chokeNote(e.Note, fadeFrames(rate, m.chokeAllFadeSeconds))
	case eventqueue.PedalClose:
		m.chokeTargetsOf(k, e.Note, fadeFrames(rate, m.chokeFadeSeconds))
	}
}

func (m *Mixer) handleNoteOn(k *kit.Kit, note, velocity, rate int) {
	n := k.Note(note)
	if n == nil {
		return
	}
	layer := n.LayerFor(velocity)
	if layer == nil {
		return
	}
	samp := layer.Next()
	gain := velocityGain(velocity)

	v := m.allocate()
	v.trigger(samp, gain, note, fadeFrames(rate, attackSeconds))

	for _, target := range n.ChokeTargets {
		m.chokeNote(target, fadeFrames(rate, m.chokeFadeSeconds))
	}
}

// chokeTargetsOf releases the choke targets declared by note, without
// starting a new voice; used for PedalClose where note is the virtual
// pedal-close note number itself.
func (m *Mixer) chokeTargetsOf(k *kit.Kit, note, fade int) {
	n := k.Note(note)
	if n == nil {
		return
	}
	for _, target := range n.ChokeTargets {
		m.chokeNote(target, fade)
	}
}

func (m *Mixer) chokeNote(note, fade int) {
	for i := range m.voices {
		v := &m.voices[i]
		if v.state == Active && v.sourceNote == note {
			v.release(fade)
		}
	}
}

// allocate returns a Free voice if one exists, otherwise steals the voice
// with the lowest current gain (ties broken by greatest cursor progress)
// and counts the steal.
func (m *Mixer) allocate() *Voice {
	for i := range m.voices {
		if m.voices[i].state == Free {
			return &m.voices[i]
		}
	}

	worst := &m.voices[0]
	worstGain := worst.currentGain()
	worstProgress := worst.progress()
	for i := 1; i < len(m.voices); i++ {
		v := &m.voices[i]
		g := v.currentGain()
		p := v.progress()
		if g < worstGain || (g == worstGain && p > worstProgress) {
			worst, worstGain, worstProgress = v, g, p
		}
	}
	if m.metrics != nil {
		m.metrics.VoicesStolen.Add(1)
	}
	return worst
}

func velocityGain(velocity int) float32 {
	if velocity < 1 {
		velocity = 1
	}
	if velocity > 127 {
		velocity = 127
	}
	return float32(math.Pow(float64(velocity)/127, 1.5))
}

func fadeFrames(rate int, seconds float64) int {
	n := int(math.Ceil(float64(rate) * seconds))
	if n < 1 {
		n = 1
	}
	return n
}
