package carousel

// SwipeThreshold is the horizontal distance in pixels a touch has to travel
// before it counts as a swipe. Shorter moves are taps or jitter.
const SwipeThreshold = 50

// Swipe is the navigation decided at the end of a touch
type Swipe int

const (
	SwipeNone Swipe = iota
	SwipeNext
	SwipePrev
)

func (s Swipe) String() string {
	switch s {
	case SwipeNext:
		return "next"
	case SwipePrev:
		return "prev"
	default:
		return "none"
	}
}

// ClassifySwipe maps a touch from startX to endX onto a navigation.
// Moving left by more than the threshold advances, moving right retreats.
func ClassifySwipe(startX, endX float64) Swipe {
	switch {
	case startX-endX > SwipeThreshold:
		return SwipeNext
	case endX-startX > SwipeThreshold:
		return SwipePrev
	default:
		return SwipeNone
	}
}

// touchTracker follows a single touch sequence
type touchTracker struct {
	active bool
	startX float64
	lastX  float64
}

func (t *touchTracker) start(x float64) {
	t.active = true
	t.startX = x
	t.lastX = x
}

func (t *touchTracker) move(x float64) {
	if t.active {
		t.lastX = x
	}
}

// end finishes the sequence. A touch that never started yields SwipeNone.
func (t *touchTracker) end() Swipe {
	if !t.active {
		return SwipeNone
	}
	t.active = false
	return ClassifySwipe(t.startX, t.lastX)
}
