// Package audio synthesizes the game's cues with beep and plays them on the
// system speaker.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/sinland/internal/core"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a finite oscillator.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(freq*1000) + 1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer     beep.Streamer
	position     int
	attack       int
	release      int
	releaseStart int
	total        int
}

// NewEnvelope shapes s over duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	return &envelope{
		streamer:     s,
		attack:       att,
		release:      rel,
		releaseStart: max(att, total-rel),
		total:        total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := range n {
		if e.position >= e.total {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attack && e.attack > 0 {
			vol = float64(e.position) / float64(e.attack)
		}
		if e.position >= e.releaseStart && e.release > 0 {
			vol = max(0, float64(e.total-e.position)/float64(e.release))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// note is one step of a cue. Freq zero is a rest.
type note struct {
	freq float64
	dur  time.Duration
	wave WaveType
}

// recipes lists the notes of every cue.
var recipes = map[core.Sound][]note{
	core.SoundUISelect: {{880, 60 * time.Millisecond, WaveSine}},
	core.SoundUIEnter: {
		{660, 70 * time.Millisecond, WaveSquare},
		{990, 70 * time.Millisecond, WaveSquare},
	},
	core.SoundButton: {{440, 90 * time.Millisecond, WaveSquare}},
	core.SoundDoor: {
		{523.25, 90 * time.Millisecond, WaveSine},
		{659.25, 90 * time.Millisecond, WaveSine},
		{783.99, 120 * time.Millisecond, WaveSine},
	},
	core.SoundClear: {
		{523.25, 120 * time.Millisecond, WaveSine},
		{659.25, 120 * time.Millisecond, WaveSine},
		{783.99, 120 * time.Millisecond, WaveSine},
		{1046.5, 240 * time.Millisecond, WaveSine},
	},
	core.SoundMonkey: {
		{300, 80 * time.Millisecond, WaveSquare},
		{420, 80 * time.Millisecond, WaveSquare},
		{300, 80 * time.Millisecond, WaveSquare},
		{420, 80 * time.Millisecond, WaveSquare},
	},
	core.SoundStageBGM: {
		{261.63, 300 * time.Millisecond, WaveSine},
		{329.63, 300 * time.Millisecond, WaveSine},
		{392.00, 300 * time.Millisecond, WaveSine},
		{329.63, 300 * time.Millisecond, WaveSine},
	},
	core.SoundHeartbeat: {
		{60, 120 * time.Millisecond, WaveSine},
		{0, 80 * time.Millisecond, WaveSine},
		{55, 140 * time.Millisecond, WaveSine},
	},
	core.SoundBreak: {{0, 250 * time.Millisecond, WaveNoise}},
	core.SoundPush:  {{180, 100 * time.Millisecond, WaveSaw}},
	core.SoundClick: {{0, 30 * time.Millisecond, WaveNoise}},
}

// Duration returns the length of one pass of a cue.
func Duration(s core.Sound) time.Duration {
	var d time.Duration
	for _, n := range recipes[s] {
		d += n.dur
	}
	return d
}

// Synthesize builds one pass of a cue at vol. Unknown cues return nil.
func Synthesize(s core.Sound, rate beep.SampleRate, vol float64) beep.Streamer {
	notes, ok := recipes[s]
	if !ok {
		return nil
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		if n.freq == 0 && n.wave != WaveNoise {
			parts = append(parts, beep.Silence(rate.N(n.dur)))
			continue
		}
		edge := min(n.dur/8, 10*time.Millisecond)
		osc := NewOscillator(n.freq, n.dur, n.wave, rate)
		parts = append(parts, NewEnvelope(osc, n.dur, edge, edge, rate))
	}
	return newVolume(beep.Seq(parts...), vol)
}
