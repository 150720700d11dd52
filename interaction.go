package rack

import (
	"image"
	"math"
)

// ModuleRemover is implemented by widgets that hold engine-side state which
// must be torn down before the widget leaves the tree.
type ModuleRemover interface {
	RemoveModule()
}

// Interaction routes input into a scene and tracks which widgets are hovered,
// focused, dragged and drag-hovered. One Interaction exists per window; the
// bridge creates it at window init and closes it at teardown.
//
// The four state slots are independent. Each transition notifies the previous
// holder (leave, defocus, drag-end) before the slot is reassigned.
type Interaction struct {
	scene *Scene

	hovered     Widget
	focused     Widget
	dragged     Widget
	dragHovered Widget

	mousePos    Vec
	pixelRatio  float32
	windowRatio float32
	frame       uint64
	pinned      bool

	buttons  ButtonQueue
	keyboard KeyboardDriver
	locker   CursorLocker

	swapScrollOnShift     bool
	ctrlClickIsRightClick bool
	scrollMultiplier      float32
}

// NewInteraction binds an interaction context to scene.
func NewInteraction(scene *Scene, opts ...Option) *Interaction {
	o := applyOptions(opts)
	return &Interaction{
		scene:                 scene,
		pixelRatio:            1,
		windowRatio:           1,
		keyboard:              GetOpt(o, OptKeyboardDriver),
		locker:                GetOpt(o, OptCursorLocker),
		swapScrollOnShift:     GetOpt(o, OptSwapScrollOnShift),
		ctrlClickIsRightClick: GetOpt(o, OptCtrlClickIsRightClick),
		scrollMultiplier:      GetOpt(o, OptScrollMultiplier),
	}
}

func (i *Interaction) Scene() *Scene        { return i.scene }
func (i *Interaction) Hovered() Widget      { return i.hovered }
func (i *Interaction) Focused() Widget      { return i.focused }
func (i *Interaction) Dragged() Widget      { return i.dragged }
func (i *Interaction) DragHovered() Widget  { return i.dragHovered }
func (i *Interaction) MousePos() Vec        { return i.mousePos }
func (i *Interaction) PixelRatio() float32  { return i.pixelRatio }
func (i *Interaction) WindowRatio() float32 { return i.windowRatio }
func (i *Interaction) Frame() uint64        { return i.frame }
func (i *Interaction) PendingButtons() int  { return i.buttons.Len() }

func (i *Interaction) event() Event { return Event{UI: i} }

// SubmitButton queues a raw button transition for a later frame.
func (i *Interaction) SubmitButton(button MouseButton, action Action, mods Mods) {
	i.buttons.Push(ButtonInput{Button: button, Action: action, Mods: mods})
}

// ReplayButton dispatches the oldest queued transition, if any.
// The frame loop calls it once per tick.
func (i *Interaction) ReplayButton() bool {
	in, ok := i.buttons.Pop()
	if !ok {
		return false
	}
	i.HandleButton(in)
	return true
}

// HandleButton dispatches one button transition immediately.
func (i *Interaction) HandleButton(in ButtonInput) {
	button := in.Button
	if i.ctrlClickIsRightClick && button == MouseButtonLeft && in.Mods.Has(ModControl) {
		button = MouseButtonRight
	}
	switch in.Action {
	case Press:
		i.press(button)
	case Release:
		i.release(button)
	}
}

func (i *Interaction) press(button MouseButton) {
	e := MouseDownEvent{Event: i.event(), Pos: i.mousePos, Button: button}
	i.scene.OnMouseDown(&e)
	target := e.Target
	Logger().Debug("mouse down", "button", button, "pos", i.mousePos, "consumed", e.Consumed)

	if button != MouseButtonLeft {
		return
	}
	if target != nil {
		target.OnDragStart(&DragStartEvent{Event: i.event()})
	}
	i.dragged = target

	if target == i.focused {
		return
	}
	if i.focused != nil {
		i.focused.OnDefocus(&DefocusEvent{Event: i.event()})
	}
	i.focused = nil
	if target != nil {
		fe := FocusEvent{Event: i.event()}
		target.OnFocus(&fe)
		if fe.Consumed {
			i.focused = target
		}
	}
}

func (i *Interaction) release(button MouseButton) {
	e := MouseUpEvent{Event: i.event(), Pos: i.mousePos, Button: button}
	i.scene.OnMouseUp(&e)
	target := e.Target

	isMenuItem := target != nil && target.Kind() == KindMenuItem
	if button != MouseButtonLeft && !isMenuItem {
		return
	}
	if target != nil && (i.dragged != nil || isMenuItem) {
		target.OnDragDrop(&DragDropEvent{Event: i.event(), Origin: i.dragged})
	}
	// The drop handler may have cleared the drag.
	if i.dragged != nil {
		i.dragged.OnDragEnd(&DragEndEvent{Event: i.event()})
	}
	i.dragged = nil
	i.dragHovered = nil
}

// ClearDragged cancels the current drag without a drag-end event.
func (i *Interaction) ClearDragged() {
	i.dragged = nil
}

// SetCursorPinned freezes the stored cursor position so that moves report a
// delta without the position advancing. The bridge uses it to emulate cursor
// lock and warps the OS cursor back to MousePos after each move.
func (i *Interaction) SetCursorPinned(pinned bool) {
	i.pinned = pinned
}

func (i *Interaction) CursorPinned() bool { return i.pinned }

// LockCursor asks the window to hide and capture the cursor. Without a
// locker it does nothing.
func (i *Interaction) LockCursor() {
	if i.locker != nil {
		i.locker.LockCursor()
	}
}

func (i *Interaction) UnlockCursor() {
	if i.locker != nil {
		i.locker.UnlockCursor()
	}
}

// IsModPressed reports whether the primary modifier is held.
func (i *Interaction) IsModPressed() bool {
	return i.locker != nil && i.locker.IsModPressed()
}

// ToScene converts window coordinates to scene coordinates.
func (i *Interaction) ToScene(windowPos Vec) Vec {
	return windowPos.Mul(i.windowRatio / i.pixelRatio).Round()
}

// ToWindow converts scene coordinates to window coordinates.
func (i *Interaction) ToWindow(scenePos Vec) Vec {
	return scenePos.Mul(i.pixelRatio / i.windowRatio)
}

// MoveCursor handles the cursor position polled for this frame, in window
// coordinates. It reports whether anything was dispatched.
func (i *Interaction) MoveCursor(windowPos Vec, middleHeld bool) bool {
	pos := i.ToScene(windowPos)
	rel := pos.Sub(i.mousePos)
	if rel.IsZero() {
		return false
	}
	if !i.pinned {
		i.setMousePos(pos)
	}

	e := MouseMoveEvent{Event: i.event(), Pos: i.mousePos, MouseRel: rel}
	i.scene.OnMouseMove(&e)
	target := e.Target

	if i.dragged != nil {
		i.dragged.OnDragMove(&DragMoveEvent{Event: i.event(), MouseRel: rel})
		if target != i.dragHovered {
			if i.dragHovered != nil {
				i.dragHovered.OnDragLeave(&DragEnterEvent{Event: i.event(), Origin: i.dragged})
			}
			if target != nil {
				target.OnDragEnter(&DragEnterEvent{Event: i.event(), Origin: i.dragged})
			}
			i.dragHovered = target
		}
	} else if target != i.hovered {
		if i.hovered != nil {
			i.hovered.OnMouseLeave(&MouseLeaveEvent{Event: i.event()})
		}
		if target != nil {
			target.OnMouseEnter(&MouseEnterEvent{Event: i.event()})
		}
		i.hovered = target
	}

	if middleHeld {
		se := ScrollEvent{Event: i.event(), Pos: i.mousePos, ScrollRel: rel}
		i.scene.OnScroll(&se)
	}
	return true
}

func (i *Interaction) setMousePos(pos Vec) {
	i.mousePos = pos
	i.scene.mousePos = pos
}

// CursorEnter handles the cursor entering or leaving the window.
func (i *Interaction) CursorEnter(entered bool) {
	if entered {
		return
	}
	if i.hovered != nil {
		i.hovered.OnMouseLeave(&MouseLeaveEvent{Event: i.event()})
	}
	i.hovered = nil
}

// Scroll dispatches a wheel delta at the cursor.
func (i *Interaction) Scroll(delta Vec, shift bool) {
	if i.swapScrollOnShift && shift {
		delta = Vec{X: delta.Y, Y: delta.X}
	}
	e := ScrollEvent{Event: i.event(), Pos: i.mousePos, ScrollRel: delta.Mul(i.scrollMultiplier)}
	i.scene.OnScroll(&e)
}

// Char delivers a typed codepoint to the focused widget.
func (i *Interaction) Char(r rune) {
	if i.focused == nil {
		return
	}
	i.focused.OnText(&TextEvent{Event: i.event(), Codepoint: r})
}

// Key routes a key transition. Presses and repeats go to the focused widget
// and fall back to a hover-key dispatch at the cursor. With Caps Lock on,
// presses and releases are also fed to the keyboard driver.
func (i *Interaction) Key(key Key, scancode int, action Action, mods Mods) {
	if action == Press || action == Repeat {
		i.routeKey(key)
	}
	if i.keyboard != nil && mods.Has(ModCapsLock) {
		switch action {
		case Press:
			i.keyboard.Press(key)
		case Release:
			i.keyboard.Release(key)
		}
	}
	Logger().Debug("key", "key", KeyName(key), "scancode", scancode, "action", action)
}

func (i *Interaction) routeKey(key Key) {
	if i.focused != nil {
		e := KeyEvent{Event: i.event(), Key: key}
		i.focused.OnKey(&e)
		if e.Consumed {
			return
		}
	}
	e := HoverKeyEvent{Event: i.event(), Pos: i.mousePos, Key: key}
	i.scene.OnHoverKey(&e)
}

// DropPaths dispatches dropped file paths, in order, at the cursor.
func (i *Interaction) DropPaths(paths []string) {
	e := PathDropEvent{Event: i.event(), Pos: i.mousePos, Paths: append([]string(nil), paths...)}
	i.scene.OnPathDrop(&e)
}

// Resize updates the ratios and scene size from the window size, the
// framebuffer size and the monitor content scale. A change of pixel ratio is
// broadcast as a zoom event.
func (i *Interaction) Resize(winW, winH, fbW, fbH int, contentScale float32) {
	ratio := float32(math.Round(float64(contentScale)))
	if ratio < 1 {
		ratio = 1
	}
	if ratio != i.pixelRatio {
		// Zoom handlers still see the previous ratio through PixelRatio.
		i.scene.OnZoom(&ZoomEvent{Event: i.event()})
		i.pixelRatio = ratio
		Logger().Info("pixel ratio changed", "ratio", ratio)
	}
	if winW > 0 {
		i.windowRatio = float32(fbW) / float32(winW)
	}
	box := i.scene.Box()
	box.Size = Vec{X: float32(fbW), Y: float32(fbH)}.Div(i.pixelRatio)
	i.scene.SetBox(box)
}

// Step advances the scene by one frame.
func (i *Interaction) Step() {
	i.scene.Step()
	i.frame++
}

// Render draws the scene into c and returns the finished frame.
func (i *Interaction) Render(c *Canvas, fbW, fbH int) *image.RGBA {
	c.BeginFrame(fbW, fbH, i.pixelRatio)
	i.scene.Draw(c)
	return c.EndFrame()
}

// Forget clears every state slot held by w or one of its descendants.
func (i *Interaction) Forget(w Widget) {
	if w == nil {
		return
	}
	if i.hovered != nil && IsAncestor(w, i.hovered) {
		i.hovered = nil
	}
	if i.focused != nil && IsAncestor(w, i.focused) {
		i.focused = nil
	}
	if i.dragged != nil && IsAncestor(w, i.dragged) {
		// No DragEnd reaches a removed widget, so release any lock it took.
		i.dragged = nil
		i.UnlockCursor()
	}
	if i.dragHovered != nil && IsAncestor(w, i.dragHovered) {
		i.dragHovered = nil
	}
}

// Delete removes w from the tree. Module widgets release their engine-side
// state first.
func (i *Interaction) Delete(w Widget) {
	if r, ok := w.(ModuleRemover); ok {
		r.RemoveModule()
	}
	if p := w.Parent(); p != nil {
		p.RemoveChild(w)
	}
	i.Forget(w)
}

// Close tears the scene down, deleting every widget in it.
func (i *Interaction) Close() {
	i.scene.CloseMenu()
	for _, child := range append([]Widget(nil), i.scene.Children()...) {
		i.Delete(child)
	}
	i.hovered, i.focused, i.dragged, i.dragHovered = nil, nil, nil, nil
	i.buttons = ButtonQueue{}
}
