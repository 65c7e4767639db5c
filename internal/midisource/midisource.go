// Package midisource opens a real MIDI input port and feeds every message
// it receives through midiingest into an eventqueue.Queue. It is the only
// non-real-time collaborator that touches the operating system's MIDI
// facilities; the audio thread never calls into this package directly.
package midisource

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/schollz/drumcore/internal/eventqueue"
	"github.com/schollz/drumcore/internal/metrics"
	"github.com/schollz/drumcore/internal/midiingest"
)

// Devices lists the names of available MIDI input ports.
func Devices() []string {
	var names []string
	for _, in := range midi.GetInPorts() {
		names = append(names, in.String())
	}
	return names
}

// Source listens on one MIDI input port and pushes decoded events into a
// queue. Open is called once from the main goroutine at startup; Close
// stops listening and releases the port.
type Source struct {
	mu      sync.Mutex
	in      drivers.In
	stop    func()
	queue   *eventqueue.Queue
	opt     midiingest.Options
	metrics *metrics.Counters
}

// New builds a Source that will push parsed events into queue using opt's
// device-specific ingest rules.
func New(queue *eventqueue.Queue, m *metrics.Counters, opt midiingest.Options) *Source {
	return &Source{queue: queue, metrics: m, opt: opt}
}

// Open finds the named input port (matched the same tolerant way the
// teacher's output connector matches device names: exact, then prefix, then
// substring) and starts listening. clockFn supplies a monotonic timestamp
// for each received message; pass time.Now().UnixNano in production.
func (s *Source) Open(name string, clockFn func() int64) error {
	in, err := findInPort(name)
	if err != nil {
		return err
	}
	if err := in.Open(); err != nil {
		return fmt.Errorf("open midi in port %s: %w", name, err)
	}

	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		ts := resolveTimestamp(clockFn, timestampms)
		entry, ok, failed := midiingest.Parse(msg.Bytes(), ts, s.opt)
		if failed {
			if s.metrics != nil {
				s.metrics.MidiParseFailures.Add(1)
			}
			return
		}
		if !ok {
			return
		}
		s.queue.Push(entry)
	}, midi.UseSysEx())
	if err != nil {
		in.Close()
		return fmt.Errorf("listen on %s: %w", name, err)
	}

	s.mu.Lock()
	s.in = in
	s.stop = stop
	s.mu.Unlock()
	return nil
}

func resolveTimestamp(clockFn func() int64, timestampms int32) int64 {
	if clockFn != nil {
		return clockFn()
	}
	return int64(timestampms)
}

// Close stops listening and closes the underlying port, if open.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
	if s.in != nil {
		err := s.in.Close()
		s.in = nil
		return err
	}
	return nil
}

// findInPort matches name against available ports: exact (case-insensitive),
// then prefix, then substring, mirroring the output-side lookup so both
// directions tolerate a truncated or partial device name from config.
func findInPort(name string) (drivers.In, error) {
	ports := midi.GetInPorts()

	for _, p := range ports {
		if strings.EqualFold(p.String(), name) {
			return p, nil
		}
	}
	for _, p := range ports {
		if strings.HasPrefix(strings.ToLower(p.String()), strings.ToLower(name)) {
			return p, nil
		}
	}
	for _, p := range ports {
		if strings.Contains(strings.ToLower(p.String()), strings.ToLower(name)) {
			return p, nil
		}
	}
	log.Printf("midisource: no input port matching %q", name)
	return nil, fmt.Errorf("no midi input port matching %q", name)
}
