package reload

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/schollz/drumcore/internal/kitcell"
	"github.com/schollz/drumcore/internal/metrics"
)

func writeTestSample(t *testing.T, path string) {
	t.Helper()
	// Smallest possible valid PCM WAV header isn't needed here since
	// ReloadNow tolerates a kit with zero usable notes; we only assert on
	// the publish/failure path, not decode correctness (covered in
	// internal/decode and internal/kit).
	if err := os.WriteFile(path, []byte("not actually audio"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestReloadNowPublishesOnSuccessAndLeavesKitOnFailure(t *testing.T) {
	dir := t.TempDir()
	writeTestSample(t, filepath.Join(dir, "36.wav"))

	cell := kitcell.New(nil)
	m := metrics.New()
	c := New(cell, m, 48000, 0)

	c.ReloadNow(dir)
	// The placeholder file isn't valid audio, so 36 fails to decode and the
	// note is dropped; Load still succeeds with an empty kit, so it publishes.
	if m.ReloadsSucceeded.Load() != 1 {
		t.Fatalf("ReloadsSucceeded = %d, want 1", m.ReloadsSucceeded.Load())
	}

	c.ReloadNow(filepath.Join(dir, "does-not-exist"))
	if m.ReloadsFailed.Load() != 1 {
		t.Fatalf("ReloadsFailed = %d, want 1", m.ReloadsFailed.Load())
	}
	if got := cell.Load(); got == nil {
		t.Fatal("failed reload must not clear the previously published kit")
	}
}

func TestNotifyChangeDebouncesBurstsIntoOneReload(t *testing.T) {
	dir := t.TempDir()
	writeTestSample(t, filepath.Join(dir, "36.wav"))

	cell := kitcell.New(nil)
	m := metrics.New()
	c := New(cell, m, 48000, 20*time.Millisecond)

	for i := 0; i < 5; i++ {
		c.NotifyChange(dir)
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(60 * time.Millisecond)

	if m.ReloadsSucceeded.Load() != 1 {
		t.Fatalf("ReloadsSucceeded = %d, want exactly 1 after a debounced burst", m.ReloadsSucceeded.Load())
	}
}
