package statusui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/schollz/drumcore/internal/metrics"
)

type fakeSource struct{ snap Snapshot }

func (f fakeSource) Snapshot() Snapshot { return f.snap }

func TestLevelBarClampsToWidth(t *testing.T) {
	bar := levelBar(100, 64, 24)
	if !strings.Contains(bar, "100/64") {
		t.Errorf("levelBar output missing count suffix: %q", bar)
	}
	if got := strings.Count(bar, "█"); got != 24 {
		t.Errorf("levelBar filled cells = %d, want 24 (clamped to width)", got)
	}
}

func TestViewRendersCounters(t *testing.T) {
	m := New(fakeSource{snap: Snapshot{
		KitName:      "vendor",
		ActiveVoices: 3,
		Counters:     metrics.Snapshot{EventsDropped: 1, VoicesStolen: 2},
	}})
	m.latest = m.source.Snapshot()

	out := m.View()
	if !strings.Contains(out, "vendor") {
		t.Errorf("View() missing kit name: %q", out)
	}
	if !strings.Contains(out, "voices stolen:    2") {
		t.Errorf("View() missing voices-stolen counter: %q", out)
	}
}

func TestUpdateQuitsOnQ(t *testing.T) {
	m := New(fakeSource{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
}
