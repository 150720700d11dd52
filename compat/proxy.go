// Package compat hosts legacy module widgets inside the rack scene.
//
// A ModuleWidgetProxy wraps one legacy panel it does not own. It mirrors the
// panel's box, exposes each legacy port as a PortProxy child, registers a
// ModuleProxy with the engine and translates events between the two widget
// APIs.
package compat

import (
	"encoding/json"
	"fmt"

	"github.com/go-theft-auto/rack"
	"github.com/go-theft-auto/rack/legacy"
)

// Engine runs module DSP.
type Engine interface {
	AddModule(m *ModuleProxy)
	RemoveModule(m *ModuleProxy)
}

// WireRemover owns the cables between ports.
type WireRemover interface {
	RemoveAllWires(p *PortProxy)
}

// ModuleProxy is the engine-side handle of a legacy module.
type ModuleProxy struct {
	module legacy.Module
	model  *legacy.Model
}

// Legacy returns the wrapped module, nil once freed.
func (m *ModuleProxy) Legacy() legacy.Module { return m.module }

func (m *ModuleProxy) Model() *legacy.Model { return m.model }

// Step runs one engine step of the legacy module.
func (m *ModuleProxy) Step() {
	if m.module != nil {
		m.module.Step()
	}
}

// PortProxy stands in for one legacy connector.
type PortProxy struct {
	rack.Opaque
	Type   legacy.PortType
	ID     int
	Module *ModuleProxy
}

func (p *PortProxy) Kind() rack.Kind { return rack.KindPort }

// ModuleWidget returns the module widget proxy the port belongs to.
func (p *PortProxy) ModuleWidget() *ModuleWidgetProxy {
	mw, _ := rack.FindAncestor(p, rack.KindModule).(*ModuleWidgetProxy)
	return mw
}

// ModuleWidgetProxy adapts a legacy module widget to rack.Widget. The panel
// is opaque: moves, scrolls and presses over it never reach the rack below.
type ModuleWidgetProxy struct {
	rack.Opaque

	legacy legacy.ModuleWidget
	module *ModuleProxy
	engine Engine
	wires  WireRemover

	inputs  []*PortProxy
	outputs []*PortProxy
	proxies map[legacy.Widget]*WidgetProxy
	removed bool
}

// NewModuleWidgetProxy wraps mw and registers its module with engine.
func NewModuleWidgetProxy(mw legacy.ModuleWidget, engine Engine, wires WireRemover) *ModuleWidgetProxy {
	m := &ModuleWidgetProxy{
		legacy:  mw,
		module:  &ModuleProxy{module: mw.Module(), model: mw.Model()},
		engine:  engine,
		wires:   wires,
		proxies: make(map[legacy.Widget]*WidgetProxy),
	}
	m.Init(m)
	m.SetBox(fromLegacyRect(mw.Box()))

	for _, child := range mw.Children() {
		if child.Kind() != legacy.KindPort {
			continue
		}
		lp, ok := child.(legacy.Port)
		if !ok {
			continue
		}
		p := &PortProxy{Type: lp.PortType(), ID: lp.PortID(), Module: m.module}
		p.SetBox(fromLegacyRect(lp.Box()))
		m.AddChild(p)
		if p.Type == legacy.PortOutput {
			m.outputs = append(m.outputs, p)
		} else {
			m.inputs = append(m.inputs, p)
		}
	}

	if engine != nil {
		engine.AddModule(m.module)
	}
	rack.Logger().Debug("wrapped legacy module", "model", m.slug(),
		"inputs", len(m.inputs), "outputs", len(m.outputs))
	return m
}

func (m *ModuleWidgetProxy) Kind() rack.Kind { return rack.KindModule }

// Legacy returns the wrapped panel.
func (m *ModuleWidgetProxy) Legacy() legacy.ModuleWidget { return m.legacy }

// Module returns the engine handle, nil after RemoveModule.
func (m *ModuleWidgetProxy) Module() *ModuleProxy { return m.module }

func (m *ModuleWidgetProxy) Inputs() []*PortProxy  { return m.inputs }
func (m *ModuleWidgetProxy) Outputs() []*PortProxy { return m.outputs }

func (m *ModuleWidgetProxy) slug() string {
	if model := m.legacy.Model(); model != nil {
		return model.Slug
	}
	return ""
}

// SetBox moves the proxy and mirrors the position into the legacy panel.
func (m *ModuleWidgetProxy) SetBox(box rack.Rect) {
	m.Base.SetBox(box)
	m.syncPos()
}

func (m *ModuleWidgetProxy) syncPos() {
	lb := m.legacy.Box()
	lb.Pos = toLegacyVec(m.Box().Pos)
	m.legacy.SetBox(lb)
}

// Step steps the legacy panel. Port proxies have no per-frame state.
func (m *ModuleWidgetProxy) Step() {
	m.legacy.Step()
}

func (m *ModuleWidgetProxy) Draw(c *rack.Canvas) {
	c.Save()
	m.legacy.Draw(c.DC())
	c.Restore()
}

func (m *ModuleWidgetProxy) Reset()     { m.legacy.Reset() }
func (m *ModuleWidgetProxy) Randomize() { m.legacy.Randomize() }

// OnMouseDown gives ports the first chance, then the legacy panel. The
// module claims any press left over; a right press also opens the module
// context menu.
func (m *ModuleWidgetProxy) OnMouseDown(e *rack.MouseDownEvent) {
	m.Base.OnMouseDown(e)
	if e.Consumed && e.Target != m.Self() {
		return
	}

	le := legacy.MouseDownEvent{Pos: toLegacyVec(e.Pos), Button: int(e.Button)}
	m.legacy.OnMouseDown(&le)
	if le.Consumed {
		e.Consume(m.translate(le.Target))
	}

	if e.Consumed {
		return
	}
	if e.Button == rack.MouseButtonRight {
		m.openContextMenu(e.UI)
	}
	e.Consume(m)
}

func (m *ModuleWidgetProxy) OnMouseMove(e *rack.MouseMoveEvent) {
	m.Base.OnMouseMove(e)
	if e.Consumed {
		return
	}
	le := legacy.MouseMoveEvent{Pos: toLegacyVec(e.Pos), MouseRel: toLegacyVec(e.MouseRel)}
	m.legacy.OnMouseMove(&le)
	if le.Consumed {
		e.Consume(m.translate(le.Target))
		return
	}
	e.Consume(m)
}

// OnDragMove drags the whole panel.
func (m *ModuleWidgetProxy) OnDragMove(e *rack.DragMoveEvent) {
	box := m.Box()
	box.Pos = box.Pos.Add(e.MouseRel)
	m.SetBox(box)
}

// translate maps a legacy consumer to the widget reported to the scene.
func (m *ModuleWidgetProxy) translate(target legacy.Widget) rack.Widget {
	if target == nil || target == legacy.Widget(m.legacy) {
		return m
	}
	if p, ok := m.proxies[target]; ok {
		return p
	}
	p := NewWidgetProxy(target)
	// Hidden children keep the proxy inside this subtree without taking part
	// in hit testing or drawing.
	p.SetVisible(false)
	m.AddChild(p)
	m.proxies[target] = p
	return p
}

// ToJSON serializes the legacy panel at the proxy's position.
func (m *ModuleWidgetProxy) ToJSON() (json.RawMessage, error) {
	m.syncPos()
	data, err := m.legacy.ToJSON()
	if err != nil {
		return nil, fmt.Errorf("module %q: %w", m.slug(), err)
	}
	return data, nil
}

// FromJSON restores the legacy panel and adopts its position.
func (m *ModuleWidgetProxy) FromJSON(data json.RawMessage) error {
	if err := m.legacy.FromJSON(data); err != nil {
		return fmt.Errorf("module %q: %w", m.slug(), err)
	}
	box := m.Box()
	box.Pos = fromLegacyVec(m.legacy.Box().Pos)
	m.Base.SetBox(box)
	return nil
}

// Disconnect removes every cable attached to the module, inputs first.
func (m *ModuleWidgetProxy) Disconnect() {
	if m.wires == nil {
		return
	}
	for _, p := range m.inputs {
		m.wires.RemoveAllWires(p)
	}
	for _, p := range m.outputs {
		m.wires.RemoveAllWires(p)
	}
}

// RemoveModule disconnects the module, removes it from the engine and drops
// the module handle. Only the first call has any effect.
func (m *ModuleWidgetProxy) RemoveModule() {
	if m.removed {
		return
	}
	m.removed = true
	m.Disconnect()
	if m.engine != nil {
		m.engine.RemoveModule(m.module)
	}
	m.module.module = nil
	m.module = nil
	rack.Logger().Debug("removed module", "model", m.slug())
}

// Removed reports whether RemoveModule has run.
func (m *ModuleWidgetProxy) Removed() bool { return m.removed }

func fromLegacyVec(v legacy.Vec) rack.Vec { return rack.Vec{X: v.X, Y: v.Y} }
func toLegacyVec(v rack.Vec) legacy.Vec   { return legacy.Vec{X: v.X, Y: v.Y} }

func fromLegacyRect(r legacy.Rect) rack.Rect {
	return rack.Rect{Pos: fromLegacyVec(r.Pos), Size: fromLegacyVec(r.Size)}
}
