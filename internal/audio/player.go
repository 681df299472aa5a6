package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/sinland/internal/config"
	"github.com/vovakirdan/sinland/internal/core"
)

// Player implements core.AudioSink on a beep mixer. Every cue runs inside
// a beep.Ctrl so it can be silenced; looping cues play once at a time.
type Player struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	rate    beep.SampleRate
	volume  float64
	assets  core.Assets
	active  map[core.Sound][]*beep.Ctrl
	speaker bool
}

// New creates a player that mixes into memory. Call Start to hear it.
func New(cfg config.AudioConfig, assets core.Assets) *Player {
	rate := cfg.SampleRate
	if rate <= 0 {
		rate = 44100
	}
	if assets.Sounds == nil {
		assets = core.DefaultAssets()
	}
	return &Player{
		mixer:  &beep.Mixer{},
		rate:   beep.SampleRate(rate),
		volume: cfg.Volume,
		assets: assets,
		active: make(map[core.Sound][]*beep.Ctrl),
	}
}

// Start initializes the speaker and begins playback of the mixer.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.speaker {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.speaker = true
	return nil
}

// lock guards mixer changes against the speaker goroutine.
func (p *Player) lock() func() {
	p.mu.Lock()
	if p.speaker {
		speaker.Lock()
		return func() {
			speaker.Unlock()
			p.mu.Unlock()
		}
	}
	return p.mu.Unlock
}

// Play starts a cue. A looping cue that is already playing is left alone.
func (p *Player) Play(s core.Sound) {
	asset := p.assets.Asset(s)
	src := Synthesize(s, p.rate, asset.Volume*p.volume)
	if src == nil {
		return
	}

	unlock := p.lock()
	defer unlock()

	p.prune(s)
	if asset.Loop {
		for _, c := range p.active[s] {
			if !c.Paused {
				return
			}
		}
		src = beep.Loop(-1, &rewinder{s: s, rate: p.rate, vol: asset.Volume * p.volume, cur: src})
	} else {
		src = &finite{Streamer: src}
	}
	ctrl := &beep.Ctrl{Streamer: src}
	p.active[s] = append(p.active[s], ctrl)
	p.mixer.Add(ctrl)
}

// Stop silences every running instance of a cue.
func (p *Player) Stop(s core.Sound) {
	unlock := p.lock()
	defer unlock()

	for _, c := range p.active[s] {
		c.Paused = true
		c.Streamer = nil
	}
	delete(p.active, s)
}

// StopAll silences everything.
func (p *Player) StopAll() {
	unlock := p.lock()
	defer unlock()

	for _, ctrls := range p.active {
		for _, c := range ctrls {
			c.Paused = true
			c.Streamer = nil
		}
	}
	clear(p.active)
	p.mixer.Clear()
}

// Playing returns how many instances of a cue are still queued.
func (p *Player) Playing(s core.Sound) int {
	unlock := p.lock()
	defer unlock()
	p.prune(s)
	return len(p.active[s])
}

// prune drops finished or stopped controls. Callers hold the lock.
func (p *Player) prune(s core.Sound) {
	live := p.active[s][:0]
	for _, c := range p.active[s] {
		if c.Streamer != nil && !c.Paused && !drained(c) {
			live = append(live, c)
		}
	}
	p.active[s] = live
}

// drained reports whether a finite cue has nothing left to play.
func drained(c *beep.Ctrl) bool {
	f, ok := c.Streamer.(*finite)
	return ok && f.done
}

// Mixer exposes the output stream for hosts that drive playback themselves.
func (p *Player) Mixer() beep.Streamer {
	return p.mixer
}

// Close stops every cue.
func (p *Player) Close() {
	p.StopAll()
}

// rewinder re-synthesizes a cue each time beep.Loop asks for a restart.
type rewinder struct {
	s    core.Sound
	rate beep.SampleRate
	vol  float64
	cur  beep.Streamer
	pos  int
}

func (r *rewinder) Stream(samples [][2]float64) (int, bool) {
	n, ok := r.cur.Stream(samples)
	r.pos += n
	return n, ok
}

func (r *rewinder) Err() error { return r.cur.Err() }

func (r *rewinder) Len() int {
	return r.rate.N(Duration(r.s))
}

func (r *rewinder) Position() int {
	return r.pos
}

func (r *rewinder) Seek(p int) error {
	r.cur = Synthesize(r.s, r.rate, r.vol)
	r.pos = 0
	return nil
}

// finite marks when a one-shot cue has ended.
type finite struct {
	beep.Streamer
	done bool
}

func (f *finite) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.Streamer.Stream(samples)
	if !ok {
		f.done = true
	}
	return n, ok
}

// NewSink returns a speaker-backed player, or core.NopAudio when audio is
// disabled or the speaker cannot be opened. The returned func releases it.
func NewSink(cfg config.AudioConfig, assets core.Assets, logger *log.Logger) (core.AudioSink, func()) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if !cfg.Enabled {
		return core.NopAudio{}, func() {}
	}
	p := New(cfg, assets)
	if err := p.Start(); err != nil {
		logger.Warn("audio disabled", "error", err)
		return core.NopAudio{}, func() {}
	}
	return p, p.Close
}
