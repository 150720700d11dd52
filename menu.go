package rack

import "github.com/gogpu/gg"

const (
	menuItemHeight = 20
	menuMinWidth   = 120
	menuFontSize   = 13
	menuTextInset  = 10
)

// MenuOverlay covers the scene while a menu is open. A press outside the menu
// closes it.
type MenuOverlay struct {
	Opaque

	// pressed is set once a press lands while the menu is open. The release
	// of the press that opened the menu must not activate an item.
	pressed bool
}

func (o *MenuOverlay) OnMouseDown(e *MouseDownEvent) {
	o.pressed = true
	o.Base.OnMouseDown(e)
	if e.Consumed {
		return
	}
	if s := SceneOf(o.Self()); s != nil {
		s.CloseMenu()
	}
	// The overlay is gone, so nothing may become the drag target.
	e.Consumed = true
	e.Target = nil
}

// Menu is a vertical list of entries.
type Menu struct {
	Opaque
}

// NewMenu creates an empty menu.
func NewMenu() *Menu {
	m := &Menu{}
	m.Init(m)
	return m
}

// AddEntry appends an entry below the existing ones.
func (m *Menu) AddEntry(entry Widget) {
	m.AddChild(entry)
	m.layout()
}

func (m *Menu) layout() {
	var y, width float32 = 0, menuMinWidth
	for _, child := range m.children {
		width = max(width, child.Box().Size.X)
	}
	for _, child := range m.children {
		box := child.Box()
		box.Pos = Vec{X: 0, Y: y}
		box.Size = Vec{X: width, Y: max(box.Size.Y, menuItemHeight)}
		child.SetBox(box)
		y += box.Size.Y
	}
	m.box.Size = Vec{X: width, Y: y}
}

func (m *Menu) Draw(c *Canvas) {
	t := CurrentTheme()
	c.FillRect(Rect{Size: m.box.Size}, t.Menu.Inner)
	m.Base.Draw(c)
	c.StrokeRect(Rect{Size: m.box.Size}, t.Menu.Outline, 1)
}

// MenuLabel is a non-interactive menu heading.
type MenuLabel struct {
	Opaque
	Text string
}

func (l *MenuLabel) Draw(c *Canvas) {
	drawMenuText(c, l.Self(), l.Text, CurrentTheme().Menu.Text)
}

// MenuItem is a clickable menu entry. Action runs when the item is released
// on, then the menu closes.
type MenuItem struct {
	Opaque
	Text      string
	RightText string
	Action    func()
	Disabled  bool

	hovered bool
}

func (mi *MenuItem) Kind() Kind { return KindMenuItem }

func (mi *MenuItem) OnMouseEnter(*MouseEnterEvent) { mi.hovered = true }
func (mi *MenuItem) OnMouseLeave(*MouseLeaveEvent) { mi.hovered = false }

// OnDragDrop activates the item when the press started on it, or when no
// drag was in progress (a secondary-button release).
func (mi *MenuItem) OnDragDrop(e *DragDropEvent) {
	if e.Origin != nil && e.Origin != mi.Self() {
		return
	}
	if e.Origin == nil && !overlayPressed(mi.Self()) {
		return
	}
	if mi.Disabled {
		return
	}
	if mi.Action != nil {
		mi.Action()
	}
	if e.UI != nil {
		e.UI.Scene().CloseMenu()
	} else if s := SceneOf(mi.Self()); s != nil {
		s.CloseMenu()
	}
}

func (mi *MenuItem) Draw(c *Canvas) {
	t := CurrentTheme()
	col := t.MenuItem.Text
	if mi.hovered && !mi.Disabled {
		c.FillRect(Rect{Size: mi.box.Size}, t.MenuItem.InnerSelected)
		col = t.MenuItem.TextSelected
	}
	if mi.Disabled {
		col = t.Menu.Text
	}
	drawMenuText(c, mi.Self(), mi.Text, col)
	if mi.RightText != "" {
		if s := SceneOf(mi.Self()); s != nil {
			x := mi.box.Size.X - menuTextInset - float32(len(mi.RightText))*menuFontSize*0.6
			c.Text(s.Font, menuFontSize, Vec{X: x, Y: menuItemHeight - 6}, col, mi.RightText)
		}
	}
}

func overlayPressed(w Widget) bool {
	for ; w != nil; w = w.Parent() {
		if o, ok := w.(*MenuOverlay); ok {
			return o.pressed
		}
	}
	return false
}

func drawMenuText(c *Canvas, w Widget, s string, col gg.RGBA) {
	scene := SceneOf(w)
	if scene == nil || s == "" {
		return
	}
	c.Text(scene.Font, menuFontSize, Vec{X: menuTextInset, Y: w.Box().Size.Y - 6}, col, s)
}
