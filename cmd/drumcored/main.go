// Command drumcored runs the MIDI-triggered drum sampler daemon: it loads a
// kit, opens a MIDI input and an audio output, watches the kit directory
// for changes, and prints a read-only status view.
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/schollz/drumcore/internal/audiosink"
	"github.com/schollz/drumcore/internal/config"
	"github.com/schollz/drumcore/internal/eventqueue"
	"github.com/schollz/drumcore/internal/kit"
	"github.com/schollz/drumcore/internal/kitcell"
	"github.com/schollz/drumcore/internal/metrics"
	"github.com/schollz/drumcore/internal/midiingest"
	"github.com/schollz/drumcore/internal/midisource"
	"github.com/schollz/drumcore/internal/reload"
	"github.com/schollz/drumcore/internal/session"
	"github.com/schollz/drumcore/internal/statusui"
	"github.com/schollz/drumcore/internal/voice"
	"github.com/schollz/drumcore/internal/watch"
)

var (
	flagKitRoot      string
	flagDevice       string
	flagSampleRate   int
	flagBufferFrames int
	flagConfigPath   string
)

func main() {
	root := &cobra.Command{
		Use:   "drumcored",
		Short: "Low-latency MIDI-triggered drum sampler daemon",
		RunE:  run,
	}
	root.Flags().StringVar(&flagKitRoot, "kit-root", "", "directory containing the kit's sample files (overrides config)")
	root.Flags().StringVar(&flagDevice, "device", "", "MIDI input device name (overrides session)")
	root.Flags().IntVar(&flagSampleRate, "sample-rate", 0, "output sample rate (overrides config)")
	root.Flags().IntVar(&flagBufferFrames, "buffer-frames", 0, "audio callback buffer size in frames (overrides config)")
	root.Flags().StringVar(&flagConfigPath, "config", "drumcore.toml", "path to drumcore.toml")

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if loaded, err := config.Load(flagConfigPath); err == nil {
		cfg = loaded
	} else {
		log.Printf("drumcored: no usable config at %s (%v), using defaults", flagConfigPath, err)
	}
	if flagKitRoot != "" {
		cfg.KitLibraryRoot = flagKitRoot
	}
	if flagSampleRate != 0 {
		cfg.SampleRate = flagSampleRate
	}
	if flagBufferFrames != 0 {
		cfg.BufferFrames = flagBufferFrames
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	sessionPath := filepath.Join(os.TempDir(), "drumcore-session.json.gz")
	prevSession, _ := session.Load(sessionPath)
	sessionStore := session.NewStore(sessionPath, session.DefaultDebounce)

	kitDir := cfg.KitLibraryRoot
	if prevSession.LastKitDir != "" && flagKitRoot == "" {
		kitDir = prevSession.LastKitDir
	}

	m := metrics.New()
	initialKit, warnings, err := kit.Load(kitDir, cfg.SampleRate)
	for _, w := range warnings {
		log.Printf("drumcored: %s", w.String())
	}
	if err != nil {
		return fmt.Errorf("load initial kit from %s: %w", kitDir, err)
	}
	cell := kitcell.New(initialKit)

	queue := eventqueue.New(eventqueue.DefaultCapacity)
	mixer := voice.NewMixer(cell, queue, m, cfg.VoicePoolSize, cfg.ChokeFadeMs, cfg.ChokeAllFadeMs)

	deviceName := flagDevice
	if deviceName == "" {
		deviceName = prevSession.LastDevice
	}
	src := midisource.New(queue, m, midiingest.DefaultOptions())
	if deviceName != "" {
		if err := src.Open(deviceName, func() int64 { return time.Now().UnixNano() }); err != nil {
			log.Printf("drumcored: midi input unavailable: %v", err)
		}
	}
	defer src.Close()

	sink, err := audiosink.Open(mixer, cfg.SampleRate, cfg.BufferFrames)
	if err != nil {
		return fmt.Errorf("open audio output: %w", err)
	}
	defer sink.Close()

	coordinator := reload.New(cell, m, cfg.SampleRate, time.Duration(cfg.ReloadDebounceMs)*time.Millisecond)
	fsWatcher, err := watch.New(kitDir, coordinator)
	if err != nil {
		log.Printf("drumcored: filesystem watch unavailable: %v", err)
	} else {
		defer fsWatcher.Close()
	}

	sessionStore.Save(session.State{LastKitDir: kitDir, LastDevice: deviceName})
	defer sessionStore.Flush()

	setupCleanupOnExit(func() {
		sessionStore.Flush()
		src.Close()
		sink.Close()
	})

	status := statusSource{cell: cell, mixer: mixer, metrics: m}
	program := tea.NewProgram(statusui.New(status))
	_, err = program.Run()
	return err
}

type statusSource struct {
	cell    *kitcell.Cell
	mixer   *voice.Mixer
	metrics *metrics.Counters
}

func (s statusSource) Snapshot() statusui.Snapshot {
	k := s.cell.Load()
	name := ""
	if k != nil {
		name = k.Name
	}
	return statusui.Snapshot{
		KitName:      name,
		ActiveVoices: s.mixer.ActiveVoiceCount(),
		Counters:     s.metrics.Snapshot(),
	}
}

func setupCleanupOnExit(cleanup func()) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-c
		cleanup()
		os.Exit(0)
	}()
}
