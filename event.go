package rack

// Event holds the fields shared by every event.
// Target is set by the widget that consumes the event; the deepest consumer wins.
type Event struct {
	Consumed bool
	Target   Widget

	// UI is the interaction context that emitted the event.
	UI *Interaction
}

// Consume marks the event consumed with w as its target.
func (e *Event) Consume(w Widget) {
	e.Consumed = true
	e.Target = w
}

// Positional events carry a position in the receiving widget's coordinates.

type MouseDownEvent struct {
	Event
	Pos    Vec
	Button MouseButton
}

type MouseUpEvent struct {
	Event
	Pos    Vec
	Button MouseButton
}

type MouseMoveEvent struct {
	Event
	Pos      Vec
	MouseRel Vec
}

type HoverKeyEvent struct {
	Event
	Pos Vec
	Key Key
}

type ScrollEvent struct {
	Event
	Pos       Vec
	ScrollRel Vec
}

type PathDropEvent struct {
	Event
	Pos   Vec
	Paths []string
}

// Transition and focused events are delivered to a single widget.

type MouseEnterEvent struct{ Event }

type MouseLeaveEvent struct{ Event }

type FocusEvent struct{ Event }

type DefocusEvent struct{ Event }

type TextEvent struct {
	Event
	Codepoint rune
}

type KeyEvent struct {
	Event
	Key Key
}

type ZoomEvent struct{ Event }

type DragStartEvent struct{ Event }

type DragMoveEvent struct {
	Event
	MouseRel Vec
}

type DragEndEvent struct{ Event }

// DragDropEvent is sent to the widget under the cursor when a drag ends.
// Origin is the dragged widget, or nil.
type DragDropEvent struct {
	Event
	Origin Widget
}

// DragEnterEvent is used for both drag-enter and drag-leave.
type DragEnterEvent struct {
	Event
	Origin Widget
}
