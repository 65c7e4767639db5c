// Package statusui is a minimal read-only terminal view over the running
// daemon's observability snapshot: current kit name, active voice count,
// and the counters from internal/metrics, plus a bar-meter reusing the
// teacher's block-character level-meter technique. It never accepts
// sequencer input.
package statusui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"github.com/schollz/drumcore/internal/metrics"
	"github.com/schollz/drumcore/internal/voice"
)

// Snapshot is the read-only state the view renders each tick.
type Snapshot struct {
	KitName     string
	ActiveVoices int
	Counters    metrics.Snapshot
}

// Source supplies the latest Snapshot; cmd/drumcored implements it by
// reading the live kitcell/mixer/metrics.
type Source interface {
	Snapshot() Snapshot
}

type tickMsg time.Time

// Model is the bubbletea program model for the status view.
type Model struct {
	source Source
	latest Snapshot
}

// New builds a Model reading from source.
func New(source Source) Model {
	return Model{source: source}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tickMsg:
		m.latest = m.source.Snapshot()
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "drumcore — kit: %s\n", m.latest.KitName)
	fmt.Fprintf(&b, "voices: %s\n\n", levelBar(m.latest.ActiveVoices, voice.DefaultPoolSize, 24))
	fmt.Fprintf(&b, "events dropped:   %d\n", m.latest.Counters.EventsDropped)
	fmt.Fprintf(&b, "midi parse fails: %d\n", m.latest.Counters.MidiParseFailures)
	fmt.Fprintf(&b, "voices stolen:    %d\n", m.latest.Counters.VoicesStolen)
	fmt.Fprintf(&b, "reloads ok/fail:  %d/%d\n", m.latest.Counters.ReloadsSucceeded, m.latest.Counters.ReloadsFailed)
	fmt.Fprintf(&b, "\n(q to quit)\n")
	return b.String()
}

// levelBar renders a horizontal block-character meter for current out of
// max, the single-row analogue of the teacher's vertical mixer bar.
func levelBar(current, max, width int) string {
	if max <= 0 {
		max = 1
	}
	filled := current * width / max
	if filled > width {
		filled = width
	}

	profile := termenv.ColorProfile()
	fillColor, _ := colorful.Hex("#C0C0C0")
	emptyColor, _ := colorful.Hex("#404040")

	var b strings.Builder
	for i := 0; i < width; i++ {
		if i < filled {
			b.WriteString(termenv.String("█").Foreground(profile.Color(fillColor.Hex())).String())
		} else {
			b.WriteString(termenv.String("▒").Foreground(profile.Color(emptyColor.Hex())).String())
		}
	}
	fmt.Fprintf(&b, " %d/%d", current, max)
	return b.String()
}
