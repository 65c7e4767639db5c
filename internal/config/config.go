// Package config loads drumcore.toml: the daemon's kit library location,
// audio engine parameters, and tunable fade/debounce constants.
package config

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the validated settings for one daemon run.
type Config struct {
	KitLibraryRoot   string `toml:"kit_library_root"`
	SampleRate       int    `toml:"sample_rate"`
	BufferFrames     int    `toml:"buffer_frames"`
	VoicePoolSize    int    `toml:"voice_pool_size"`
	ChokeFadeMs      int    `toml:"choke_fade_ms"`
	ChokeAllFadeMs   int    `toml:"choke_all_fade_ms"`
	ReloadDebounceMs int    `toml:"reload_debounce_ms"`
}

// Default returns the settings used when no drumcore.toml is present.
func Default() Config {
	return Config{
		KitLibraryRoot:   "kits",
		SampleRate:       48000,
		BufferFrames:     64,
		VoicePoolSize:    64,
		ChokeFadeMs:      5,
		ChokeAllFadeMs:   50,
		ReloadDebounceMs: 250,
	}
}

// Load reads and validates a drumcore.toml file, filling any zero field
// left unset in the file with the matching Default() value.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	var raw Config
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}

	if raw.KitLibraryRoot != "" {
		cfg.KitLibraryRoot = raw.KitLibraryRoot
	}
	if raw.SampleRate != 0 {
		cfg.SampleRate = raw.SampleRate
	}
	if raw.BufferFrames != 0 {
		cfg.BufferFrames = raw.BufferFrames
	}
	if raw.VoicePoolSize != 0 {
		cfg.VoicePoolSize = raw.VoicePoolSize
	}
	if raw.ChokeFadeMs != 0 {
		cfg.ChokeFadeMs = raw.ChokeFadeMs
	}
	if raw.ChokeAllFadeMs != 0 {
		cfg.ChokeAllFadeMs = raw.ChokeAllFadeMs
	}
	if raw.ReloadDebounceMs != 0 {
		cfg.ReloadDebounceMs = raw.ReloadDebounceMs
	}

	return cfg, cfg.Validate()
}

// Validate rejects settings that would violate the real-time constraints
// (a zero or negative voice pool, buffer, or sample rate is nonsensical).
func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample_rate must be positive, got %d", c.SampleRate)
	}
	if c.BufferFrames <= 0 {
		return fmt.Errorf("buffer_frames must be positive, got %d", c.BufferFrames)
	}
	if c.VoicePoolSize <= 0 {
		return fmt.Errorf("voice_pool_size must be positive, got %d", c.VoicePoolSize)
	}
	if c.KitLibraryRoot == "" {
		return fmt.Errorf("kit_library_root must not be empty")
	}
	return nil
}
