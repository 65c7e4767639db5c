package voice

import (
	"testing"

	"github.com/schollz/drumcore/internal/eventqueue"
	"github.com/schollz/drumcore/internal/kit"
	"github.com/schollz/drumcore/internal/kitcell"
	"github.com/schollz/drumcore/internal/metrics"
	"github.com/schollz/drumcore/internal/sample"
)

const testRate = 48000

func constSample(n int, v float32) sample.Sample {
	frames := make([]float32, n)
	for i := range frames {
		frames[i] = v
	}
	return sample.New(frames, testRate, false)
}

func newTestMixer(k *kit.Kit, poolSize int) (*Mixer, *kitcell.Cell, *eventqueue.Queue) {
	cell := kitcell.New(k)
	q := eventqueue.New(64)
	mx := NewMixer(cell, q, metrics.New(), poolSize, 0, 0)
	return mx, cell, q
}

// TestRenderIdempotentOnEmptyInput covers invariant 5: with an empty queue
// and all voices Free, Render output is exactly zero.
func TestRenderIdempotentOnEmptyInput(t *testing.T) {
	k := &kit.Kit{Notes: map[int]*kit.Note{}}
	mx, _, _ := newTestMixer(k, 8)

	out := make([]float32, 256)
	for i := range out {
		out[i] = 0.5 // poison the buffer to prove Render actually zeroes it
	}
	mx.Render(out, testRate)

	for i, v := range out {
		if v != 0 {
			t.Fatalf("out[%d] = %v, want 0", i, v)
		}
	}
}

// TestVoicePoolNeverExceedsCapacity covers invariant 4.
func TestVoicePoolNeverExceedsCapacity(t *testing.T) {
	k := &kit.Kit{Notes: map[int]*kit.Note{
		36: {Layers: []*kit.VelocityLayer{{Lo: 1, Hi: 127, Samples: []sample.Sample{constSample(100000, 0.5)}}}},
	}}
	mx, _, q := newTestMixer(k, 4)

	for i := 0; i < 20; i++ {
		q.Push(eventqueue.Entry{Kind: eventqueue.NoteOn, Note: 36, Velocity: 100})
	}
	out := make([]float32, 32)
	mx.Render(out, testRate)

	active := mx.ActiveVoiceCount()
	if active > 4 {
		t.Fatalf("active voices = %d, want <= 4", active)
	}
}

// TestNoteOnSelectsRoundRobinInOrder covers S2: four NoteOns on a two-variant
// round-robin note select variants in strict cyclic order, each buffer long
// enough to fully exhaust the short samples so the next NoteOn allocates a
// fresh voice rather than retriggering the same one.
func TestNoteOnSelectsRoundRobinInOrder(t *testing.T) {
	const n = 8
	s1 := constSample(n, 0.1)
	s2 := constSample(n, 0.9)
	k := &kit.Kit{Notes: map[int]*kit.Note{
		38: {Layers: []*kit.VelocityLayer{{Lo: 1, Hi: 127, Samples: []sample.Sample{s1, s2}}}},
	}}
	mx, _, q := newTestMixer(k, 8)

	out := make([]float32, n*2)
	var selected []float32
	for i := 0; i < 4; i++ {
		q.Push(eventqueue.Entry{Kind: eventqueue.NoteOn, Note: 38, Velocity: 30})
		mx.Render(out, testRate)
		// One buffer of n frames exhausts the voice, so slot 0 is Free again
		// and every NoteOn lands in it; its sample shows which variant played.
		selected = append(selected, mx.voices[0].samp.Frames[0])
	}
	if len(selected) != 4 {
		t.Fatalf("got %d renders, want 4", len(selected))
	}
	want := []float32{0.1, 0.9, 0.1, 0.9}
	for i := range want {
		if selected[i] != want[i] {
			t.Errorf("NoteOn %d played variant with value %v, want %v (rr1, rr2, rr1, rr2)", i, selected[i], want[i])
		}
	}
}

// TestChokeReleasesTargetWithinFadeWindow covers S3: PedalClose on the
// mapped closed hi-hat chokes the currently sounding open hi-hat voice to
// silence within the 5ms fade window.
func TestChokeReleasesTargetWithinFadeWindow(t *testing.T) {
	const n = 48000 // 1 second, long enough to outlast the fade
	openSample := constSample(n, 1.0)
	k := &kit.Kit{Notes: map[int]*kit.Note{
		46: {Layers: []*kit.VelocityLayer{{Lo: 1, Hi: 127, Samples: []sample.Sample{openSample}}}},
		42: {Layers: []*kit.VelocityLayer{{Lo: 1, Hi: 127, Samples: []sample.Sample{constSample(n, 1.0)}}}, ChokeTargets: []int{46}},
	}}
	mx, _, q := newTestMixer(k, 8)

	q.Push(eventqueue.Entry{Kind: eventqueue.NoteOn, Note: 46, Velocity: 100})
	out := make([]float32, 64)
	mx.Render(out, testRate) // start the open hi-hat voice

	q.Push(eventqueue.Entry{Kind: eventqueue.PedalClose, Note: 42})
	mx.Render(out, testRate) // apply the choke

	fadeFramesCount := fadeFrames(testRate, DefaultChokeFadeSeconds)
	silentAfter := fadeFramesCount/32 + 2 // in buffer-sized steps, with margin
	for i := 0; i < silentAfter; i++ {
		mx.Render(out, testRate)
	}

	if mx.voices[findVoiceForNote(mx, 46)].state != Free {
		t.Log("choked voice may have been reallocated; checking output silence instead")
	}
	for _, v := range out {
		if v != 0 {
			t.Fatalf("expected silence after choke fade, got %v", v)
		}
	}
}

func findVoiceForNote(mx *Mixer, note int) int {
	for i := range mx.voices {
		if mx.voices[i].sourceNote == note {
			return i
		}
	}
	return 0
}

// TestVoiceStealingPicksLowestGainWithNoClick covers S6: allocating past
// capacity steals the lowest-gain voice and the replacement begins with a
// ramped attack rather than a step discontinuity.
func TestVoiceStealingPicksLowestGainWithNoClick(t *testing.T) {
	const n = 100000
	k := &kit.Kit{Notes: map[int]*kit.Note{}}
	for note := 0; note < 5; note++ {
		k.Notes[note] = &kit.Note{Layers: []*kit.VelocityLayer{{Lo: 1, Hi: 127, Samples: []sample.Sample{constSample(n, 1.0)}}}}
	}
	mx, _, q := newTestMixer(k, 4)

	velocities := []int{127, 100, 80, 60}
	for i, note := range []int{0, 1, 2, 3} {
		q.Push(eventqueue.Entry{Kind: eventqueue.NoteOn, Note: note, Velocity: velocities[i]})
	}
	out := make([]float32, 16)
	mx.Render(out, testRate)
	if mx.ActiveVoiceCount() != 4 {
		t.Fatalf("active voices = %d, want 4 (pool full)", mx.ActiveVoiceCount())
	}

	before := metrics.New()
	mx.metrics = before
	q.Push(eventqueue.Entry{Kind: eventqueue.NoteOn, Note: 4, Velocity: 20})
	mx.Render(out, testRate)

	if before.VoicesStolen.Load() != 1 {
		t.Fatalf("VoicesStolen = %d, want 1", before.VoicesStolen.Load())
	}

	stolen := -1
	for i := range mx.voices {
		if mx.voices[i].sourceNote == 4 {
			stolen = i
		}
	}
	if stolen == -1 {
		t.Fatal("could not find voice for newly triggered note 4")
	}
	if stolen != 3 {
		t.Errorf("stole slot %d, want slot 3 (note 3, velocity 60, the lowest gain)", stolen)
	}
	if mx.voices[stolen].attackRemaining <= 0 {
		t.Error("stolen voice should start mid-attack ramp, not jump straight to target gain")
	}
}
