package rack

// Scene is the root widget. It receives every dispatched top-level event and
// owns the per-frame step and draw cycle.
type Scene struct {
	Base

	// Font is the canvas handle of the UI font, 0 if none is loaded.
	Font int

	mousePos Vec
	overlay  *MenuOverlay
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	s := &Scene{}
	s.Init(s)
	return s
}

func (s *Scene) Kind() Kind { return KindScene }

// MousePos returns the last cursor position in scene coordinates.
func (s *Scene) MousePos() Vec { return s.mousePos }

// Step advances every widget and keeps the menu overlay covering the scene.
func (s *Scene) Step() {
	if s.overlay != nil {
		s.overlay.SetBox(Rect{Size: s.box.Size})
	}
	s.Base.Step()
}

// OpenMenu shows m at the cursor, replacing any open menu.
func (s *Scene) OpenMenu(m *Menu) {
	s.CloseMenu()
	s.overlay = &MenuOverlay{}
	s.overlay.Init(s.overlay)
	s.overlay.SetBox(Rect{Size: s.box.Size})
	box := m.Box()
	box.Pos = s.mousePos
	m.SetBox(box)
	s.overlay.AddChild(m)
	s.AddChild(s.overlay)
}

// CloseMenu removes the open menu, if any.
func (s *Scene) CloseMenu() {
	if s.overlay == nil {
		return
	}
	s.RemoveChild(s.overlay)
	s.overlay = nil
}

// MenuOpen reports whether a menu is currently shown.
func (s *Scene) MenuOpen() bool {
	return s.overlay != nil
}

// SceneOf returns the scene w is attached to, or nil.
func SceneOf(w Widget) *Scene {
	root, _ := FindAncestor(w, KindScene).(*Scene)
	return root
}
