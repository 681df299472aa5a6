package scene

import "time"

// transition fades the screen out for half the crossfade, swaps the scene,
// and fades back in for the other half.
type transition struct {
	next    string
	half    float64
	t       float64
	swapped bool
	active  bool
}

func newTransition(next string, d time.Duration) transition {
	return transition{next: next, half: d.Seconds() / 2, active: true}
}

// step advances the fade and reports whether the swap point was crossed.
func (tr *transition) step(dt float64) (swap bool) {
	if !tr.active {
		return false
	}
	tr.t += dt
	if !tr.swapped {
		if tr.t >= tr.half {
			tr.swapped = true
			tr.t = 0
			return true
		}
		return false
	}
	if tr.t >= tr.half {
		tr.active = false
	}
	return false
}

// alpha is the black overlay strength.
func (tr *transition) alpha() float64 {
	if !tr.active || tr.half <= 0 {
		return 0
	}
	a := tr.t / tr.half
	if tr.swapped {
		a = 1 - a
	}
	return min(max(a, 0), 1)
}
