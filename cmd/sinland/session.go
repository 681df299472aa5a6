package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/sinland/internal/audio"
	"github.com/vovakirdan/sinland/internal/config"
	"github.com/vovakirdan/sinland/internal/core"
	"github.com/vovakirdan/sinland/internal/physics"
	"github.com/vovakirdan/sinland/internal/progress"
	"github.com/vovakirdan/sinland/internal/scene"
	"github.com/vovakirdan/sinland/internal/stage"
	"github.com/vovakirdan/sinland/internal/stages"
	"github.com/vovakirdan/sinland/internal/storage"
)

var (
	flagStage string
	flagWatch bool
	flagMute  bool
)

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagStage, "stage", "", "Start directly in an unlocked stage")
	cmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload physics when the config file changes")
	cmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
}

// session is everything a local game needs, opened once per run.
type session struct {
	cfg      config.Config
	preset   config.Preset
	counter  *progress.Counter
	store    *storage.Store
	logger   *log.Logger
	audio    core.AudioSink
	stopSnd  func()
	watcher  *config.Watcher
	reload   chan physics.Params
	runtime  core.RuntimeConfig
	registry *stage.Registry
}

// newLogger writes charm logs to out, with debug output behind --debug.
func newLogger(out io.Writer) *log.Logger {
	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "sinland",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// logFile opens ~/.sinland/sinland.log for hosts that own the terminal.
func logFile() (io.WriteCloser, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".sinland")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create %s: %w", dir, err)
	}
	return os.OpenFile(filepath.Join(dir, "sinland.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// loadGameConfig reads --config and applies --preset.
func loadGameConfig() (config.Config, config.Preset, error) {
	preset, err := config.ParsePreset(flagPreset)
	if err != nil {
		return config.Config{}, "", err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, "", err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, preset, nil
}

func savePath() string {
	if flagSave != "" {
		return flagSave
	}
	return progress.DefaultPath()
}

// openSession loads config, progress and records, and starts audio.
// Nothing here is fatal except a bad config or preset.
func openSession(logger *log.Logger) (*session, error) {
	cfg, preset, err := loadGameConfig()
	if err != nil {
		return nil, err
	}
	if flagMute {
		cfg.Audio.Enabled = false
	}

	s := &session{
		cfg:      cfg,
		preset:   preset,
		logger:   logger,
		registry: stages.Default(),
		runtime: core.RuntimeConfig{
			ScreenW:  80,
			ScreenH:  24,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
	}
	if s.runtime.Seed == 0 {
		s.runtime.Seed = time.Now().UnixNano()
	}

	s.counter, err = progress.Load(savePath())
	if err != nil {
		logger.Warn("could not read save file, starting from stage 1", "error", err)
	}

	s.store, err = storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open records database", "error", err)
		s.store = nil
	}

	s.audio, s.stopSnd = audio.NewSink(cfg.Audio, core.DefaultAssets(), logger)

	if flagWatch {
		s.watch()
	}
	return s, nil
}

// watch forwards reloaded physics to the host. The host applies them on
// its own goroutine.
func (s *session) watch() {
	path := config.ResolvePath(flagConfig)
	if path == "" {
		s.logger.Warn("no config file to watch; pass --config or create ~/.sinland/configs/sinland.yaml")
		return
	}
	w, err := config.NewWatcher(path)
	if err != nil {
		s.logger.Warn("cannot watch config", "path", path, "error", err)
		return
	}
	s.watcher = w
	s.reload = make(chan physics.Params, 1)
	s.logger.Info("watching config", "path", w.Path())

	go func() {
		defer close(s.reload)
		for {
			select {
			case cfg, ok := <-w.Configs:
				if !ok {
					return
				}
				config.ApplyPreset(&cfg, s.preset)
				s.logger.Info("config reloaded", "path", w.Path())
				s.push(cfg.Physics.Params())
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				s.logger.Warn("config reload failed", "error", err)
			}
		}
	}()
}

// push hands p to the host, replacing a reload it has not picked up yet.
func (s *session) push(p physics.Params) {
	select {
	case s.reload <- p:
	default:
		select {
		case <-s.reload:
		default:
		}
		s.reload <- p
	}
}

// controller builds the scene controller, optionally starting in a stage.
func (s *session) controller() (*scene.Controller, error) {
	env := stage.DefaultEnv(s.runtime.Seed)
	env.Physics = s.cfg.Physics.Params()
	env.Tuning = s.cfg.Stages
	env.Audio = s.audio
	env.Rand = rand.New(rand.NewSource(s.runtime.Seed))

	opts := scene.Options{
		Registry: s.registry,
		Counter:  s.counter,
		Logger:   s.logger,
		Env:      env,
	}
	if s.store != nil {
		opts.Recorder = s.store
	}
	ctrl := scene.NewController(opts)

	if flagStage != "" {
		if !s.registry.Exists(flagStage) {
			return nil, fmt.Errorf("unknown stage %q (run 'sinland stages')", flagStage)
		}
		if err := ctrl.Jump(flagStage); err != nil {
			return nil, err
		}
	}
	return ctrl, nil
}

// reloads returns the physics channel, or nil without --watch.
func (s *session) reloads() <-chan physics.Params {
	if s.reload == nil {
		return nil
	}
	return s.reload
}

func (s *session) close() {
	if s.watcher != nil {
		s.watcher.Close()
	}
	if s.stopSnd != nil {
		s.stopSnd()
	}
	if s.store != nil {
		s.store.Close()
	}
}
