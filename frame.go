package rack

import "time"

// ButtonInput is one raw mouse-button transition as reported by the OS.
type ButtonInput struct {
	Button MouseButton
	Action Action
	Mods   Mods
}

// ButtonQueue defers mouse-button transitions so that a burst of clicks
// arriving within one frame is replayed one per frame, in arrival order.
type ButtonQueue struct {
	pending []ButtonInput
}

// Push appends a transition.
func (q *ButtonQueue) Push(in ButtonInput) {
	q.pending = append(q.pending, in)
}

// Pop removes and returns the oldest transition.
func (q *ButtonQueue) Pop() (ButtonInput, bool) {
	if len(q.pending) == 0 {
		return ButtonInput{}, false
	}
	in := q.pending[0]
	q.pending[0] = ButtonInput{}
	q.pending = q.pending[1:]
	return in, true
}

// Len returns the number of pending transitions.
func (q *ButtonQueue) Len() int {
	return len(q.pending)
}

// FramePacer computes how long the frame loop should wait for events so
// that frames start at most once per Interval.
type FramePacer struct {
	Interval time.Duration
}

// NewFramePacer returns a pacer targeting fps frames per second.
func NewFramePacer(fps float64) FramePacer {
	if fps <= 0 {
		fps = 60
	}
	return FramePacer{Interval: time.Duration(float64(time.Second) / fps)}
}

// Next returns the wait before the next frame given the time spent on this one.
func (p FramePacer) Next(elapsed time.Duration) time.Duration {
	return max(0, p.Interval-elapsed)
}
