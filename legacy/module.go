package legacy

import (
	"encoding/json"
	"fmt"
)

// PortType distinguishes input from output connectors.
type PortType int

const (
	PortInput PortType = iota
	PortOutput
)

func (t PortType) String() string {
	if t == PortOutput {
		return "output"
	}
	return "input"
}

// Port is a connector widget on a module panel.
type Port interface {
	Widget
	PortType() PortType
	PortID() int
}

// PortWidget is the stock Port implementation.
type PortWidget struct {
	Base
	Type PortType
	ID   int
}

func (p *PortWidget) Kind() Kind         { return KindPort }
func (p *PortWidget) PortType() PortType { return p.Type }
func (p *PortWidget) PortID() int        { return p.ID }

// Module is the DSP side of a plugin module, owned by the engine.
type Module interface {
	Step()
	Reset()
	Randomize()
}

// Model identifies the plugin model a module widget was created from.
type Model struct {
	Plugin string
	Slug   string
	Name   string
}

// Menu collects the extra context-menu entries a module contributes.
type Menu struct {
	Items []MenuItem
}

// Add appends an entry.
func (m *Menu) Add(item MenuItem) { m.Items = append(m.Items, item) }

type MenuItem struct {
	Text      string
	RightText string
	Action    func()
}

// ModuleWidget is the panel of one module instance.
type ModuleWidget interface {
	Widget
	Module() Module
	Model() *Model

	Reset()
	Randomize()

	ToJSON() (json.RawMessage, error)
	FromJSON(data json.RawMessage) error

	AppendContextMenu(m *Menu)
}

// ModuleWidgetBase implements the stock module panel behavior. Plugins embed
// it and add their ports and controls as children.
type ModuleWidgetBase struct {
	Base
	Self ModuleWidget

	module Module
	model  *Model
}

// NewModuleWidgetBase binds a panel to its module and model.
func NewModuleWidgetBase(module Module, model *Model) ModuleWidgetBase {
	return ModuleWidgetBase{module: module, model: model}
}

func (w *ModuleWidgetBase) Module() Module { return w.module }
func (w *ModuleWidgetBase) Model() *Model  { return w.model }

func (w *ModuleWidgetBase) Reset() {
	if w.module != nil {
		w.module.Reset()
	}
}

func (w *ModuleWidgetBase) Randomize() {
	if w.module != nil {
		w.module.Randomize()
	}
}

func (w *ModuleWidgetBase) AppendContextMenu(*Menu) {}

// OnMouseDown claims primary presses on the panel background so the panel
// can be dragged.
func (w *ModuleWidgetBase) OnMouseDown(e *MouseDownEvent) {
	w.Base.OnMouseDown(e)
	if e.Consumed || e.Button != 0 {
		return
	}
	e.Consumed = true
	e.Target = w.Self
}

type moduleJSON struct {
	Plugin string     `json:"plugin,omitempty"`
	Model  string     `json:"model,omitempty"`
	Pos    [2]float32 `json:"pos"`
}

// ToJSON writes the model identity and panel position.
func (w *ModuleWidgetBase) ToJSON() (json.RawMessage, error) {
	j := moduleJSON{Pos: [2]float32{w.box.Pos.X, w.box.Pos.Y}}
	if w.model != nil {
		j.Plugin, j.Model = w.model.Plugin, w.model.Slug
	}
	data, err := json.Marshal(j)
	if err != nil {
		return nil, fmt.Errorf("encode module: %w", err)
	}
	return data, nil
}

// FromJSON restores the panel position.
func (w *ModuleWidgetBase) FromJSON(data json.RawMessage) error {
	var j moduleJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return fmt.Errorf("decode module: %w", err)
	}
	w.box.Pos = Vec{X: j.Pos[0], Y: j.Pos[1]}
	return nil
}
