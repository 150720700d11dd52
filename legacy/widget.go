// Package legacy is the older plugin widget API. Plugin module widgets are
// written against it and draw straight into the vector context; package
// compat hosts them inside the rack scene.
package legacy

import "github.com/gogpu/gg"

type Vec struct {
	X, Y float32
}

func (v Vec) Add(o Vec) Vec { return Vec{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec { return Vec{X: v.X - o.X, Y: v.Y - o.Y} }

type Rect struct {
	Pos, Size Vec
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Vec) bool {
	return p.X >= r.Pos.X && p.X < r.Pos.X+r.Size.X &&
		p.Y >= r.Pos.Y && p.Y < r.Pos.Y+r.Size.Y
}

// Kind tags the widgets the host treats specially.
type Kind int

const (
	KindWidget Kind = iota
	KindPort
)

// Event carries the consumption result back to the caller.
type Event struct {
	Consumed bool
	Target   Widget
}

type MouseDownEvent struct {
	Event
	Pos    Vec
	Button int
}

type MouseMoveEvent struct {
	Event
	Pos      Vec
	MouseRel Vec
}

type DragStartEvent struct{ Event }

type DragMoveEvent struct {
	Event
	MouseRel Vec
}

type DragEndEvent struct{ Event }

// Widget is a legacy scene node.
type Widget interface {
	Box() Rect
	SetBox(Rect)
	Children() []Widget
	Kind() Kind

	Step()
	Draw(dc *gg.Context)

	OnMouseDown(e *MouseDownEvent)
	OnMouseMove(e *MouseMoveEvent)
	OnDragStart(e *DragStartEvent)
	OnDragMove(e *DragMoveEvent)
	OnDragEnd(e *DragEndEvent)
}

// Base is the default legacy widget: it forwards mouse events to the topmost
// child under the cursor and draws children in order.
type Base struct {
	box      Rect
	children []Widget
}

func (b *Base) Box() Rect          { return b.box }
func (b *Base) SetBox(r Rect)      { b.box = r }
func (b *Base) Children() []Widget { return b.children }
func (b *Base) Kind() Kind         { return KindWidget }

// AddChild appends a child on top.
func (b *Base) AddChild(w Widget) {
	b.children = append(b.children, w)
}

func (b *Base) Step() {
	for _, c := range b.children {
		c.Step()
	}
}

func (b *Base) Draw(dc *gg.Context) {
	for _, c := range b.children {
		pos := c.Box().Pos
		dc.Push()
		dc.Translate(float64(pos.X), float64(pos.Y))
		c.Draw(dc)
		dc.Pop()
	}
}

func (b *Base) OnMouseDown(e *MouseDownEvent) {
	for i := len(b.children) - 1; i >= 0; i-- {
		c := b.children[i]
		if !c.Box().Contains(e.Pos) {
			continue
		}
		local := *e
		local.Pos = e.Pos.Sub(c.Box().Pos)
		c.OnMouseDown(&local)
		if local.Consumed {
			e.Event = local.Event
			return
		}
	}
}

func (b *Base) OnMouseMove(e *MouseMoveEvent) {
	for i := len(b.children) - 1; i >= 0; i-- {
		c := b.children[i]
		if !c.Box().Contains(e.Pos) {
			continue
		}
		local := *e
		local.Pos = e.Pos.Sub(c.Box().Pos)
		c.OnMouseMove(&local)
		if local.Consumed {
			e.Event = local.Event
			return
		}
	}
}

func (b *Base) OnDragStart(*DragStartEvent) {}
func (b *Base) OnDragMove(*DragMoveEvent)   {}
func (b *Base) OnDragEnd(*DragEndEvent)     {}
