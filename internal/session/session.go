// Package session persists the last-used kit directory and MIDI device so a
// restart reopens where the previous run left off, without a fresh scan of
// the whole kit library root. Writes are debounced the same way reload
// coordinates kit swaps.
package session

import (
	"compress/gzip"
	"io"
	"log"
	"os"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultDebounce matches the quiet period before a session file is
// rewritten after a change.
const DefaultDebounce = 1 * time.Second

// State is the persisted session payload.
type State struct {
	LastKitDir string `json:"last_kit_dir"`
	LastDevice string `json:"last_device"`
}

// Store debounces writes of a State to a gzip+JSON file on disk.
type Store struct {
	mu       sync.Mutex
	path     string
	debounce time.Duration
	timer    *time.Timer
	pending  State
}

// NewStore builds a Store writing to path.
func NewStore(path string, debounce time.Duration) *Store {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Store{path: path, debounce: debounce}
}

// Save schedules state to be written after the debounce window, replacing
// any not-yet-flushed pending write.
func (s *Store) Save(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = state
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		if err := s.flush(); err != nil {
			log.Printf("session: save failed: %v", err)
		}
	})
}

// Flush writes the most recently scheduled state immediately, bypassing the
// debounce window.
func (s *Store) Flush() error { return s.flush() }

func (s *Store) flush() error {
	s.mu.Lock()
	state := s.pending
	s.mu.Unlock()

	data, err := json.Marshal(state)
	if err != nil {
		return err
	}

	file, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer file.Close()

	gz := gzip.NewWriter(file)
	if _, err := gz.Write(data); err != nil {
		gz.Close()
		return err
	}
	return gz.Close()
}

// Load reads a previously saved State, returning the zero value if path
// does not exist yet.
func Load(path string) (State, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, nil
		}
		return State{}, err
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return State{}, err
	}
	defer gz.Close()

	data, err := io.ReadAll(gz)
	if err != nil {
		return State{}, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, err
	}
	return state, nil
}
