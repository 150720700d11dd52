package compat

import (
	"github.com/go-theft-auto/rack"
	"github.com/go-theft-auto/rack/legacy"
)

// ContextMenu builds the module menu: the model name, the stock actions, then
// whatever the legacy panel appends.
func (m *ModuleWidgetProxy) ContextMenu(ui *rack.Interaction) *rack.Menu {
	menu := rack.NewMenu()
	if model := m.legacy.Model(); model != nil {
		menu.AddEntry(&rack.MenuLabel{Text: model.Name})
	}
	menu.AddEntry(&rack.MenuItem{Text: "Reset", Action: m.Reset})
	menu.AddEntry(&rack.MenuItem{Text: "Randomize", Action: m.Randomize})
	menu.AddEntry(&rack.MenuItem{Text: "Disconnect cables", Action: m.Disconnect})
	menu.AddEntry(&rack.MenuItem{Text: "Delete", RightText: "Del", Action: func() {
		if ui != nil {
			ui.Delete(m)
			return
		}
		m.RemoveModule()
		if p := m.Parent(); p != nil {
			p.RemoveChild(m)
		}
	}})

	var extra legacy.Menu
	m.legacy.AppendContextMenu(&extra)
	for _, item := range extra.Items {
		menu.AddEntry(&rack.MenuItem{Text: item.Text, RightText: item.RightText, Action: item.Action})
	}
	return menu
}

func (m *ModuleWidgetProxy) openContextMenu(ui *rack.Interaction) {
	scene := rack.SceneOf(m)
	if ui != nil {
		scene = ui.Scene()
	}
	if scene == nil {
		return
	}
	scene.OpenMenu(m.ContextMenu(ui))
}
