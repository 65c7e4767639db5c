package watch

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type fakeCoordinator struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeCoordinator) NotifyChange(dir string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, dir)
}

func (f *fakeCoordinator) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestWatcherNotifiesOnFileWrite(t *testing.T) {
	dir := t.TempDir()
	c := &fakeCoordinator{}

	w, err := New(dir, c)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "36.wav"), []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for c.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if c.count() == 0 {
		t.Fatal("expected NotifyChange to be called after a file write")
	}
}

func TestCloseStopsTheWatchLoop(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, &fakeCoordinator{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
