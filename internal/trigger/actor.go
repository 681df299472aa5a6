package trigger

// ActorPhase is the phase of a timed actor.
type ActorPhase int

const (
	ActorWaiting ActorPhase = iota
	ActorEntering
	ActorActing
	ActorLeaving
)

func (p ActorPhase) String() string {
	switch p {
	case ActorWaiting:
		return "waiting"
	case ActorEntering:
		return "entering"
	case ActorActing:
		return "acting"
	case ActorLeaving:
		return "leaving"
	default:
		return "unknown"
	}
}

// ActorEvent is a cue emitted by an actor update.
type ActorEvent int

const (
	ActorNoEvent ActorEvent = iota
	ActorStarted            // began entering
	ActorLeft               // finished its actions and turned to leave
)

// ActorSpec lays out an actor that walks in from the right, performs a
// fixed number of timed actions, and walks back out.
type ActorSpec struct {
	TriggerX       float64 // player X that starts the first cycle
	StartX, Y      float64 // off-screen spawn
	StopX          float64 // where entering stops
	ExitX          float64 // leaving ends past this X
	EnterSpeed     float64
	LeaveSpeed     float64
	Actions        int
	ActionDuration float64
	RepeatDelay    float64
}

// ActorCycle runs Waiting -> Entering -> Acting(step) -> Leaving -> Waiting.
// Once triggered it repeats forever.
type ActorCycle struct {
	Spec ActorSpec

	phase     ActorPhase
	t         float64
	x         float64
	step      int
	triggered bool
}

// NewActorCycle creates an idle, untriggered actor.
func NewActorCycle(spec ActorSpec) *ActorCycle {
	return &ActorCycle{Spec: spec, x: spec.StartX}
}

// Trigger starts the first cycle when playerX passes TriggerX.
func (a *ActorCycle) Trigger(playerX float64) ActorEvent {
	if a.triggered || playerX <= a.Spec.TriggerX {
		return ActorNoEvent
	}
	a.triggered = true
	a.enter()
	return ActorStarted
}

func (a *ActorCycle) enter() {
	a.phase = ActorEntering
	a.t = 0
	a.x = a.Spec.StartX
	a.step = 0
}

// Update advances the actor by dt.
func (a *ActorCycle) Update(dt float64) ActorEvent {
	ev := ActorNoEvent

	switch a.phase {
	case ActorEntering:
		a.x -= a.Spec.EnterSpeed * dt
		a.t += dt
		if a.x <= a.Spec.StopX {
			a.x = a.Spec.StopX
			a.phase = ActorActing
			a.t = 0
			a.step = 0
		}
	case ActorActing:
		a.t += dt
		if a.Spec.ActionDuration > 0 {
			a.step = int(a.t / a.Spec.ActionDuration)
		}
		if a.step > a.Spec.Actions-1 {
			a.phase = ActorLeaving
			a.t = 0
			ev = ActorLeft
		}
	case ActorLeaving:
		a.x += a.Spec.LeaveSpeed * dt
		a.t += dt
		if a.x > a.Spec.ExitX {
			a.phase = ActorWaiting
			a.t = 0
		}
	}

	// Waiting also runs on the frame leaving finished.
	if a.phase == ActorWaiting && a.triggered {
		a.t += dt
		if a.t > a.Spec.RepeatDelay {
			a.enter()
			ev = ActorStarted
		}
	}
	return ev
}

// Phase returns the current phase.
func (a *ActorCycle) Phase() ActorPhase {
	return a.phase
}

// X returns the actor's horizontal position.
func (a *ActorCycle) X() float64 {
	return a.x
}

// Step returns the current action index while acting.
func (a *ActorCycle) Step() int {
	return a.step
}

// Triggered reports whether the cycle was ever started.
func (a *ActorCycle) Triggered() bool {
	return a.triggered
}

// Visible reports whether the actor should be drawn.
func (a *ActorCycle) Visible() bool {
	return a.triggered && a.phase != ActorWaiting
}
