package compat

import (
	"github.com/go-theft-auto/rack"
	"github.com/go-theft-auto/rack/legacy"
)

// WidgetProxy exposes a legacy widget that claimed an event, so the
// interaction state can hold it as hovered or dragged.
type WidgetProxy struct {
	rack.Base
	legacy legacy.Widget
}

// NewWidgetProxy wraps w.
func NewWidgetProxy(w legacy.Widget) *WidgetProxy {
	p := &WidgetProxy{legacy: w}
	p.Init(p)
	p.SetBox(fromLegacyRect(w.Box()))
	return p
}

// Legacy returns the wrapped widget.
func (p *WidgetProxy) Legacy() legacy.Widget { return p.legacy }

func (p *WidgetProxy) Step() { p.legacy.Step() }

func (p *WidgetProxy) Draw(c *rack.Canvas) {
	c.Save()
	p.legacy.Draw(c.DC())
	c.Restore()
}

func (p *WidgetProxy) OnMouseDown(e *rack.MouseDownEvent) {
	le := legacy.MouseDownEvent{Pos: toLegacyVec(e.Pos), Button: int(e.Button)}
	p.legacy.OnMouseDown(&le)
	if le.Consumed {
		e.Consume(p)
	}
}

func (p *WidgetProxy) OnMouseMove(e *rack.MouseMoveEvent) {
	le := legacy.MouseMoveEvent{Pos: toLegacyVec(e.Pos), MouseRel: toLegacyVec(e.MouseRel)}
	p.legacy.OnMouseMove(&le)
	if le.Consumed {
		e.Consume(p)
	}
}

// OnDragStart locks the cursor for the duration of a legacy control drag.
func (p *WidgetProxy) OnDragStart(e *rack.DragStartEvent) {
	e.UI.LockCursor()
	p.legacy.OnDragStart(&legacy.DragStartEvent{})
}

func (p *WidgetProxy) OnDragMove(e *rack.DragMoveEvent) {
	p.legacy.OnDragMove(&legacy.DragMoveEvent{MouseRel: toLegacyVec(e.MouseRel)})
}

func (p *WidgetProxy) OnDragEnd(e *rack.DragEndEvent) {
	p.legacy.OnDragEnd(&legacy.DragEndEvent{})
	e.UI.UnlockCursor()
}
