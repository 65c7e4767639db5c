package session

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsZeroValue(t *testing.T) {
	st, err := Load(filepath.Join(t.TempDir(), "missing.json.gz"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if st != (State{}) {
		t.Errorf("Load() = %+v, want zero value", st)
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json.gz")
	s := NewStore(path, 10*time.Millisecond)

	want := State{LastKitDir: "/kits/vendor", LastDevice: "Launchpad"}
	s.Save(want)
	time.Sleep(50 * time.Millisecond)

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestFlushBypassesDebounce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json.gz")
	s := NewStore(path, time.Hour)

	want := State{LastKitDir: "/kits/compact"}
	s.Save(want)
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestSaveDebouncesRepeatedCallsToLastValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json.gz")
	s := NewStore(path, 30*time.Millisecond)

	s.Save(State{LastKitDir: "/kits/a"})
	s.Save(State{LastKitDir: "/kits/b"})
	s.Save(State{LastKitDir: "/kits/final"})
	time.Sleep(80 * time.Millisecond)

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.LastKitDir != "/kits/final" {
		t.Errorf("LastKitDir = %q, want /kits/final", got.LastKitDir)
	}
}
