package core

// Sound identifies an audio cue emitted by the simulation.
type Sound int

const (
	SoundUISelect Sound = iota
	SoundUIEnter
	SoundButton
	SoundDoor
	SoundClear
	SoundMonkey
	SoundStageBGM
	SoundHeartbeat
	SoundBreak
	SoundPush
	SoundClick
)

// AudioSink plays cues. Implementations must be safe to call every frame.
type AudioSink interface {
	Play(s Sound)
	Stop(s Sound)
	StopAll()
}

// NopAudio discards every cue.
type NopAudio struct{}

func (NopAudio) Play(Sound) {}
func (NopAudio) Stop(Sound) {}
func (NopAudio) StopAll()   {}

// SoundAsset describes how a cue is rendered.
type SoundAsset struct {
	Name   string
	Volume float64
	Loop   bool
}

// Assets is the asset table handed to every scene and stage constructor.
type Assets struct {
	Sounds map[Sound]SoundAsset
}

// DefaultAssets returns the built-in cue table.
func DefaultAssets() Assets {
	return Assets{Sounds: map[Sound]SoundAsset{
		SoundUISelect:  {Name: "ui-select", Volume: 0.5},
		SoundUIEnter:   {Name: "ui-enter", Volume: 0.6},
		SoundButton:    {Name: "button", Volume: 0.7},
		SoundDoor:      {Name: "door", Volume: 0.8},
		SoundClear:     {Name: "clear", Volume: 0.8},
		SoundMonkey:    {Name: "monkey", Volume: 0.7},
		SoundStageBGM:  {Name: "stage-bgm", Volume: 0.3, Loop: true},
		SoundHeartbeat: {Name: "heartbeat", Volume: 0.9},
		SoundBreak:     {Name: "break", Volume: 0.8},
		SoundPush:      {Name: "push", Volume: 0.6},
		SoundClick:     {Name: "click", Volume: 0.7},
	}}
}

// Asset returns the entry for s, or a silent placeholder.
func (a Assets) Asset(s Sound) SoundAsset {
	if e, ok := a.Sounds[s]; ok {
		return e
	}
	return SoundAsset{Name: "unknown"}
}
