package rack

// Kind is a capability tag a widget reports about itself.
// Dispatch policy queries it instead of inspecting concrete types.
type Kind int

const (
	KindGeneric Kind = iota
	KindMenuItem
	KindPort
	KindModule
	KindScene
)

// Widget is a node of the retained scene tree.
//
// Widgets are implemented by embedding Base (or Opaque) and overriding the
// handlers they care about. The parent exclusively owns its children;
// insertion order is z-order for both hit testing and drawing.
type Widget interface {
	Box() Rect
	SetBox(box Rect)
	Visible() bool
	SetVisible(visible bool)

	Parent() Widget
	Children() []Widget
	AddChild(child Widget)
	RemoveChild(child Widget)
	ClearChildren()

	Kind() Kind

	// Step advances per-frame state. Draw renders in local coordinates.
	Step()
	Draw(c *Canvas)

	OnMouseDown(e *MouseDownEvent)
	OnMouseUp(e *MouseUpEvent)
	OnMouseMove(e *MouseMoveEvent)
	OnHoverKey(e *HoverKeyEvent)
	OnScroll(e *ScrollEvent)
	OnPathDrop(e *PathDropEvent)
	OnZoom(e *ZoomEvent)

	OnMouseEnter(e *MouseEnterEvent)
	OnMouseLeave(e *MouseLeaveEvent)
	OnFocus(e *FocusEvent)
	OnDefocus(e *DefocusEvent)
	OnText(e *TextEvent)
	OnKey(e *KeyEvent)

	OnDragStart(e *DragStartEvent)
	OnDragMove(e *DragMoveEvent)
	OnDragEnd(e *DragEndEvent)
	OnDragDrop(e *DragDropEvent)
	OnDragEnter(e *DragEnterEvent)
	OnDragLeave(e *DragEnterEvent)

	base() *Base
}

// Base implements Widget with default behavior: positional events are
// forwarded to the topmost child under the cursor, everything else is ignored.
type Base struct {
	box      Rect
	hidden   bool
	parent   Widget
	children []Widget
	self     Widget
}

// Init records the widget that embeds b, so events name the outer widget as
// their target. AddChild calls it automatically; roots and detached widgets
// must call it themselves.
func (b *Base) Init(self Widget) {
	b.self = self
}

// Self returns the outer widget embedding b.
func (b *Base) Self() Widget {
	if b.self != nil {
		return b.self
	}
	return b
}

func (b *Base) base() *Base { return b }

func (b *Base) Box() Rect          { return b.box }
func (b *Base) SetBox(box Rect)    { b.box = box }
func (b *Base) Visible() bool      { return !b.hidden }
func (b *Base) SetVisible(v bool)  { b.hidden = !v }
func (b *Base) Parent() Widget     { return b.parent }
func (b *Base) Children() []Widget { return b.children }
func (b *Base) Kind() Kind         { return KindGeneric }

// AddChild appends child on top of the existing children.
// A child that already has a parent is moved.
func (b *Base) AddChild(child Widget) {
	cb := child.base()
	if cb.parent != nil {
		cb.parent.RemoveChild(child)
	}
	cb.self = child
	cb.parent = b.Self()
	b.children = append(b.children, child)
}

// RemoveChild detaches child and its subtree. Unknown children are ignored.
func (b *Base) RemoveChild(child Widget) {
	for i, c := range b.children {
		if c == child {
			b.children = append(b.children[:i], b.children[i+1:]...)
			child.base().parent = nil
			return
		}
	}
}

// ClearChildren detaches every child.
func (b *Base) ClearChildren() {
	for _, c := range b.children {
		c.base().parent = nil
	}
	b.children = nil
}

func (b *Base) Step() {
	// Children may remove siblings while stepping.
	for _, child := range append([]Widget(nil), b.children...) {
		child.Step()
	}
}

func (b *Base) Draw(c *Canvas) {
	for _, child := range append([]Widget(nil), b.children...) {
		if !child.Visible() {
			continue
		}
		c.Save()
		c.Translate(child.Box().Pos)
		child.Draw(c)
		c.Restore()
	}
}

// propagate offers a positional event to the children under pos, topmost
// first, with pos translated into each child's coordinates.
func (b *Base) propagate(pos *Vec, e *Event, fn func(child Widget)) {
	// Handlers may add or remove children.
	children := append([]Widget(nil), b.children...)
	for i := len(children) - 1; i >= 0; i-- {
		child := children[i]
		if !child.Visible() {
			continue
		}
		box := child.Box()
		if !box.Contains(*pos) {
			continue
		}
		saved := *pos
		*pos = pos.Sub(box.Pos)
		fn(child)
		*pos = saved
		if e.Consumed {
			return
		}
	}
}

func (b *Base) OnMouseDown(e *MouseDownEvent) {
	b.propagate(&e.Pos, &e.Event, func(c Widget) { c.OnMouseDown(e) })
}

func (b *Base) OnMouseUp(e *MouseUpEvent) {
	b.propagate(&e.Pos, &e.Event, func(c Widget) { c.OnMouseUp(e) })
}

func (b *Base) OnMouseMove(e *MouseMoveEvent) {
	b.propagate(&e.Pos, &e.Event, func(c Widget) { c.OnMouseMove(e) })
}

func (b *Base) OnHoverKey(e *HoverKeyEvent) {
	b.propagate(&e.Pos, &e.Event, func(c Widget) { c.OnHoverKey(e) })
}

func (b *Base) OnScroll(e *ScrollEvent) {
	b.propagate(&e.Pos, &e.Event, func(c Widget) { c.OnScroll(e) })
}

func (b *Base) OnPathDrop(e *PathDropEvent) {
	b.propagate(&e.Pos, &e.Event, func(c Widget) { c.OnPathDrop(e) })
}

// OnZoom is broadcast to the whole subtree.
func (b *Base) OnZoom(e *ZoomEvent) {
	for _, child := range b.children {
		child.OnZoom(e)
	}
}

func (b *Base) OnMouseEnter(*MouseEnterEvent) {}
func (b *Base) OnMouseLeave(*MouseLeaveEvent) {}
func (b *Base) OnFocus(*FocusEvent)           {}
func (b *Base) OnDefocus(*DefocusEvent)       {}
func (b *Base) OnText(*TextEvent)             {}
func (b *Base) OnKey(*KeyEvent)               {}
func (b *Base) OnDragStart(*DragStartEvent)   {}
func (b *Base) OnDragMove(*DragMoveEvent)     {}
func (b *Base) OnDragEnd(*DragEndEvent)       {}
func (b *Base) OnDragDrop(*DragDropEvent)     {}
func (b *Base) OnDragEnter(*DragEnterEvent)   {}
func (b *Base) OnDragLeave(*DragEnterEvent)   {}

// Opaque is a Base that claims every mouse event its children leave
// unconsumed, so clicks never fall through to widgets underneath.
type Opaque struct {
	Base
}

func (o *Opaque) OnMouseDown(e *MouseDownEvent) {
	o.Base.OnMouseDown(e)
	if !e.Consumed {
		e.Consume(o.Self())
	}
}

func (o *Opaque) OnMouseUp(e *MouseUpEvent) {
	o.Base.OnMouseUp(e)
	if !e.Consumed {
		e.Consume(o.Self())
	}
}

func (o *Opaque) OnMouseMove(e *MouseMoveEvent) {
	o.Base.OnMouseMove(e)
	if !e.Consumed {
		e.Consume(o.Self())
	}
}

func (o *Opaque) OnScroll(e *ScrollEvent) {
	o.Base.OnScroll(e)
	if !e.Consumed {
		e.Consume(o.Self())
	}
}

// IsAncestor reports whether ancestor is w or one of w's parents.
func IsAncestor(ancestor, w Widget) bool {
	for ; w != nil; w = w.Parent() {
		if w == ancestor {
			return true
		}
	}
	return false
}

// FindAncestor returns the nearest widget, starting at w, that reports kind.
func FindAncestor(w Widget, kind Kind) Widget {
	for ; w != nil; w = w.Parent() {
		if w.Kind() == kind {
			return w
		}
	}
	return nil
}
