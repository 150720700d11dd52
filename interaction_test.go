package rack

import (
	"fmt"
	"slices"
	"testing"
)

// mockWidget records every event it receives as "name:event".
type mockWidget struct {
	Opaque
	name         string
	log          *[]string
	acceptFocus  bool
	consumeKeys  bool
	onDrop       func(e *DragDropEvent)
	onMouseDown  func(e *MouseDownEvent)
	lastScroll   Vec
	droppedPaths []string
}

func newMockWidget(name string, box Rect, log *[]string) *mockWidget {
	w := &mockWidget{name: name, log: log}
	w.Init(w)
	w.SetBox(box)
	return w
}

func (w *mockWidget) record(ev string) { *w.log = append(*w.log, w.name+":"+ev) }

func (w *mockWidget) OnMouseDown(e *MouseDownEvent) {
	w.record(fmt.Sprintf("down%d", e.Button))
	if w.onMouseDown != nil {
		w.onMouseDown(e)
	}
	w.Opaque.OnMouseDown(e)
}

func (w *mockWidget) OnMouseEnter(*MouseEnterEvent) { w.record("enter") }
func (w *mockWidget) OnMouseLeave(*MouseLeaveEvent) { w.record("leave") }
func (w *mockWidget) OnDefocus(*DefocusEvent)       { w.record("defocus") }
func (w *mockWidget) OnDragStart(*DragStartEvent)   { w.record("dragstart") }
func (w *mockWidget) OnDragMove(*DragMoveEvent)     { w.record("dragmove") }
func (w *mockWidget) OnDragEnd(*DragEndEvent)       { w.record("dragend") }
func (w *mockWidget) OnZoom(*ZoomEvent)             { w.record("zoom") }
func (w *mockWidget) OnText(e *TextEvent)           { w.record("text" + string(e.Codepoint)) }

func (w *mockWidget) OnFocus(e *FocusEvent) {
	w.record("focus")
	if w.acceptFocus {
		e.Consume(w)
	}
}

func (w *mockWidget) OnDragDrop(e *DragDropEvent) {
	origin := "nil"
	if m, ok := e.Origin.(*mockWidget); ok {
		origin = m.name
	}
	w.record("drop<" + origin)
	if w.onDrop != nil {
		w.onDrop(e)
	}
}

func (w *mockWidget) OnDragEnter(e *DragEnterEvent) { w.record("dragenter") }
func (w *mockWidget) OnDragLeave(e *DragEnterEvent) { w.record("dragleave") }

func (w *mockWidget) OnKey(e *KeyEvent) {
	w.record("key" + KeyName(e.Key))
	if w.consumeKeys {
		e.Consume(w)
	}
}

func (w *mockWidget) OnHoverKey(e *HoverKeyEvent) {
	w.record("hoverkey" + KeyName(e.Key))
	e.Consume(w)
}

func (w *mockWidget) OnScroll(e *ScrollEvent) {
	w.record("scroll")
	w.lastScroll = e.ScrollRel
	e.Consume(w)
}

func (w *mockWidget) OnPathDrop(e *PathDropEvent) {
	w.record("pathdrop")
	w.droppedPaths = e.Paths
	e.Consume(w)
}

type fixture struct {
	scene *Scene
	ui    *Interaction
	a, b  *mockWidget
	log   []string
}

// newFixture builds a scene with A at (0,0) and B at (200,0), both 100x100.
func newFixture(opts ...Option) *fixture {
	f := &fixture{scene: NewScene()}
	f.scene.SetBox(NewRect(0, 0, 800, 600))
	f.a = newMockWidget("A", NewRect(0, 0, 100, 100), &f.log)
	f.b = newMockWidget("B", NewRect(200, 0, 100, 100), &f.log)
	f.scene.AddChild(f.a)
	f.scene.AddChild(f.b)
	f.ui = NewInteraction(f.scene, opts...)
	return f
}

func (f *fixture) move(x, y float32) { f.ui.MoveCursor(Vec{X: x, Y: y}, false) }

func (f *fixture) press(b MouseButton) {
	f.ui.HandleButton(ButtonInput{Button: b, Action: Press})
}

func (f *fixture) release(b MouseButton) {
	f.ui.HandleButton(ButtonInput{Button: b, Action: Release})
}

func (f *fixture) takeLog() []string {
	l := f.log
	f.log = nil
	return l
}

func count(log []string, entry string) int {
	n := 0
	for _, e := range log {
		if e == entry {
			n++
		}
	}
	return n
}

func TestInteraction_FocusTransitionOnPress(t *testing.T) {
	f := newFixture()
	f.a.acceptFocus = true
	f.b.acceptFocus = true

	f.move(50, 50)
	f.press(MouseButtonLeft)
	f.release(MouseButtonLeft)
	if f.ui.Focused() != f.a {
		t.Fatalf("Expected A focused, got %v", f.ui.Focused())
	}
	f.takeLog()

	// Same target again: no focus transition.
	for range 3 {
		f.press(MouseButtonLeft)
		f.release(MouseButtonLeft)
	}
	log := f.takeLog()
	if count(log, "A:focus") != 0 || count(log, "A:defocus") != 0 {
		t.Errorf("Expected no focus transitions on repeated press, got %v", log)
	}

	f.move(250, 50)
	f.takeLog()
	f.press(MouseButtonLeft)
	log = f.takeLog()
	want := []string{"B:down0", "B:dragstart", "A:defocus", "B:focus"}
	if !slices.Equal(log, want) {
		t.Errorf("Expected %v, got %v", want, log)
	}
	if f.ui.Focused() != f.b {
		t.Errorf("Expected B focused")
	}
}

func TestInteraction_FocusClearedWhenTargetRefuses(t *testing.T) {
	f := newFixture()
	f.a.acceptFocus = true
	f.b.acceptFocus = false

	f.move(50, 50)
	f.press(MouseButtonLeft)
	f.release(MouseButtonLeft)
	f.move(250, 50)
	f.press(MouseButtonLeft)

	if f.ui.Focused() != nil {
		t.Errorf("Expected focus cleared, got %v", f.ui.Focused())
	}
	log := f.takeLog()
	if count(log, "A:defocus") != 1 || count(log, "B:focus") != 1 {
		t.Errorf("Expected one defocus/focus pair, got %v", log)
	}
}

func TestInteraction_PressOnEmptySpaceDefocuses(t *testing.T) {
	f := newFixture()
	f.a.acceptFocus = true
	f.move(50, 50)
	f.press(MouseButtonLeft)
	f.release(MouseButtonLeft)

	f.move(500, 500)
	f.press(MouseButtonLeft)
	if f.ui.Focused() != nil || f.ui.Dragged() != nil {
		t.Errorf("Expected no focus and no drag over empty space")
	}
	if count(f.takeLog(), "A:defocus") != 1 {
		t.Errorf("Expected A to be defocused")
	}
}

func TestInteraction_ZeroDeltaMoveIsNoop(t *testing.T) {
	f := newFixture()
	f.move(50, 50)
	f.press(MouseButtonLeft)
	f.takeLog()

	if f.ui.MoveCursor(Vec{X: 50, Y: 50}, true) {
		t.Error("Expected zero-delta move to report no dispatch")
	}
	if log := f.takeLog(); len(log) != 0 {
		t.Errorf("Expected no events, got %v", log)
	}
}

func TestInteraction_HoverEnterLeave(t *testing.T) {
	f := newFixture()

	f.move(50, 50)
	f.move(60, 50)
	f.move(250, 50)
	f.ui.CursorEnter(false)

	want := []string{"A:enter", "A:leave", "B:enter", "B:leave"}
	if log := f.takeLog(); !slices.Equal(log, want) {
		t.Errorf("Expected %v, got %v", want, log)
	}
	if f.ui.Hovered() != nil {
		t.Error("Expected hovered cleared after cursor left window")
	}
}

func TestInteraction_DragLifecycle(t *testing.T) {
	f := newFixture()
	f.move(50, 50)
	f.takeLog()

	f.press(MouseButtonLeft)
	f.move(60, 50)
	f.move(250, 50)
	f.release(MouseButtonLeft)

	want := []string{
		"A:down0", "A:dragstart", "A:focus",
		"A:dragmove", "A:dragenter",
		"A:dragmove", "A:dragleave", "B:dragenter",
		"B:drop<A", "A:dragend",
	}
	if log := f.takeLog(); !slices.Equal(log, want) {
		t.Errorf("Expected %v, got %v", want, log)
	}
	if f.ui.Dragged() != nil || f.ui.DragHovered() != nil {
		t.Error("Expected drag state cleared after release")
	}
}

func TestInteraction_DropHandlerCancelsDrag(t *testing.T) {
	f := newFixture()
	f.b.onDrop = func(e *DragDropEvent) { e.UI.ClearDragged() }

	f.move(50, 50)
	f.press(MouseButtonLeft)
	f.move(250, 50)
	f.release(MouseButtonLeft)

	log := f.takeLog()
	if n := count(log, "A:dragstart"); n != 1 {
		t.Errorf("Expected one drag start, got %d", n)
	}
	if n := count(log, "A:dragend"); n != 0 {
		t.Errorf("Expected no drag end after drop cleared the drag, got %d", n)
	}
}

func TestInteraction_ReleaseWithoutDrag(t *testing.T) {
	f := newFixture()
	f.move(500, 500)
	f.press(MouseButtonLeft)
	f.move(50, 50)
	f.release(MouseButtonLeft)

	for _, e := range f.takeLog() {
		if e == "A:drop<nil" || e == "A:dragend" {
			t.Errorf("Unexpected %s", e)
		}
	}
}

func TestInteraction_SecondaryButtonSkipsDragAndFocus(t *testing.T) {
	f := newFixture()
	f.a.acceptFocus = true
	f.move(50, 50)
	f.takeLog()

	f.press(MouseButtonRight)
	f.release(MouseButtonRight)

	if log := f.takeLog(); !slices.Equal(log, []string{"A:down1"}) {
		t.Errorf("Expected only the press dispatch, got %v", log)
	}
}

func TestInteraction_ButtonQueueOnePerTick(t *testing.T) {
	f := newFixture()
	f.move(50, 50)
	f.takeLog()

	f.ui.SubmitButton(MouseButtonRight, Press, 0)
	f.ui.SubmitButton(MouseButtonMiddle, Press, 0)
	f.ui.SubmitButton(MouseButtonLeft, Press, 0)
	if len(f.log) != 0 {
		t.Fatalf("Expected no dispatch on submit, got %v", f.log)
	}

	want := []string{"A:down1", "A:down2", "A:down0"}
	for tick, entry := range want {
		if !f.ui.ReplayButton() {
			t.Fatalf("tick %d: expected a replay", tick)
		}
		if got := f.takeLog(); len(got) == 0 || got[0] != entry {
			t.Errorf("tick %d: expected %s first, got %v", tick, entry, got)
		}
		if f.ui.PendingButtons() != len(want)-tick-1 {
			t.Errorf("tick %d: expected %d pending, got %d", tick, len(want)-tick-1, f.ui.PendingButtons())
		}
	}
	if f.ui.ReplayButton() {
		t.Error("Expected empty queue")
	}
}

func TestInteraction_CtrlClickBecomesRightClick(t *testing.T) {
	f := newFixture(CtrlClickIsRightClick(true))
	f.move(50, 50)
	f.takeLog()

	f.ui.HandleButton(ButtonInput{Button: MouseButtonLeft, Action: Press, Mods: ModControl})
	if log := f.takeLog(); !slices.Equal(log, []string{"A:down1"}) {
		t.Errorf("Expected a right press, got %v", log)
	}
}

func TestInteraction_MiddleDragScrolls(t *testing.T) {
	f := newFixture()
	f.move(50, 50)
	f.ui.MoveCursor(Vec{X: 55, Y: 47}, true)

	if f.a.lastScroll != (Vec{X: 5, Y: -3}) {
		t.Errorf("Expected scroll by the move delta, got %v", f.a.lastScroll)
	}
}

func TestInteraction_Scroll(t *testing.T) {
	tests := []struct {
		name  string
		swap  bool
		shift bool
		want  Vec
	}{
		{"plain", false, false, Vec{X: 0, Y: 50}},
		{"shift without swap", false, true, Vec{X: 0, Y: 50}},
		{"shift with swap", true, true, Vec{X: 50, Y: 0}},
		{"swap without shift", true, false, Vec{X: 0, Y: 50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(SwapScrollOnShift(tt.swap))
			f.move(50, 50)
			f.ui.Scroll(Vec{X: 0, Y: 1}, tt.shift)
			if f.a.lastScroll != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, f.a.lastScroll)
			}
		})
	}
}

type recordingKeyboard struct {
	pressed, released []Key
}

func (k *recordingKeyboard) Press(key Key)   { k.pressed = append(k.pressed, key) }
func (k *recordingKeyboard) Release(key Key) { k.released = append(k.released, key) }

func TestInteraction_KeyRouting(t *testing.T) {
	kb := &recordingKeyboard{}
	f := newFixture(WithKeyboard(kb))
	f.a.acceptFocus = true
	f.move(50, 50)
	f.press(MouseButtonLeft)
	f.release(MouseButtonLeft)
	f.move(250, 50)
	f.takeLog()

	// Focused widget ignores the key: hover-key fallback at the cursor.
	f.ui.Key(KeyA, 0, Press, 0)
	if log := f.takeLog(); !slices.Equal(log, []string{"A:keyA", "B:hoverkeyA"}) {
		t.Errorf("Expected focus then hover routing, got %v", log)
	}

	f.a.consumeKeys = true
	f.ui.Key(KeyA, 0, Repeat, ModCapsLock)
	if log := f.takeLog(); !slices.Equal(log, []string{"A:keyA"}) {
		t.Errorf("Expected routing to stop at the focused widget, got %v", log)
	}

	f.ui.Key(KeyZ, 0, Press, ModCapsLock)
	f.ui.Key(KeyZ, 0, Release, ModCapsLock)
	f.ui.Key(KeyC, 0, Press, 0)
	if !slices.Equal(kb.pressed, []Key{KeyZ}) || !slices.Equal(kb.released, []Key{KeyZ}) {
		t.Errorf("Expected only caps-lock keys at the driver, got pressed=%v released=%v", kb.pressed, kb.released)
	}
	if count(f.takeLog(), "A:keyZ") != 1 {
		t.Error("Expected the caps-lock press to reach the focused widget too")
	}
}

func TestInteraction_CharOnlyToFocused(t *testing.T) {
	f := newFixture()
	f.ui.Char('x')
	if len(f.takeLog()) != 0 {
		t.Error("Expected no dispatch without focus")
	}

	f.a.acceptFocus = true
	f.move(50, 50)
	f.press(MouseButtonLeft)
	f.takeLog()
	f.ui.Char('x')
	if log := f.takeLog(); !slices.Equal(log, []string{"A:textx"}) {
		t.Errorf("Expected text at focused widget, got %v", log)
	}
}

func TestInteraction_DropPaths(t *testing.T) {
	f := newFixture()
	f.move(250, 50)
	paths := []string{"/tmp/a.vcv", "/tmp/b.wav", "/tmp/c.vcv"}
	f.ui.DropPaths(paths)
	paths[0] = "mutated"

	want := []string{"/tmp/a.vcv", "/tmp/b.wav", "/tmp/c.vcv"}
	if !slices.Equal(f.b.droppedPaths, want) {
		t.Errorf("Expected %v, got %v", want, f.b.droppedPaths)
	}
}

func TestInteraction_Resize(t *testing.T) {
	f := newFixture()

	f.ui.Resize(1000, 500, 2000, 1000, 2.2)
	if f.ui.PixelRatio() != 2 {
		t.Errorf("Expected pixel ratio 2, got %v", f.ui.PixelRatio())
	}
	if f.ui.WindowRatio() != 2 {
		t.Errorf("Expected window ratio 2, got %v", f.ui.WindowRatio())
	}
	if got := f.scene.Box().Size; got != (Vec{X: 1000, Y: 500}) {
		t.Errorf("Expected scene size 1000x500, got %v", got)
	}
	if count(f.takeLog(), "A:zoom") != 1 {
		t.Error("Expected one zoom broadcast")
	}

	f.ui.Resize(800, 400, 1600, 800, 1.8)
	if count(f.takeLog(), "A:zoom") != 0 {
		t.Error("Expected no zoom when the rounded ratio is unchanged")
	}

	// Window pixels map to logical units through both ratios.
	if got := f.ui.ToScene(Vec{X: 101, Y: 51}); got != (Vec{X: 101, Y: 51}) {
		t.Errorf("Expected identity mapping at ratio 2/2, got %v", got)
	}
}

func TestInteraction_PinnedCursor(t *testing.T) {
	f := newFixture()
	f.move(50, 50)
	f.press(MouseButtonLeft)
	f.ui.SetCursorPinned(true)
	f.takeLog()

	f.move(60, 50)
	f.move(70, 50)
	if f.ui.MousePos() != (Vec{X: 50, Y: 50}) {
		t.Errorf("Expected pinned position, got %v", f.ui.MousePos())
	}
	if n := count(f.takeLog(), "A:dragmove"); n != 2 {
		t.Errorf("Expected 2 drag moves, got %d", n)
	}
}

type removableWidget struct {
	mockWidget
	removed int
}

func (w *removableWidget) RemoveModule() { w.removed++ }

func TestInteraction_DeleteForgetsState(t *testing.T) {
	f := newFixture()
	rw := &removableWidget{}
	rw.name, rw.log, rw.acceptFocus = "R", &f.log, true
	rw.SetBox(NewRect(400, 0, 100, 100))
	f.scene.AddChild(rw)
	child := newMockWidget("C", NewRect(10, 10, 20, 20), &f.log)
	rw.AddChild(child)

	f.move(415, 15)
	f.press(MouseButtonLeft)
	if f.ui.Dragged() != child || f.ui.Hovered() != child {
		t.Fatalf("Expected child hovered and dragged")
	}

	f.ui.Delete(rw)
	if rw.removed != 1 {
		t.Errorf("Expected RemoveModule once, got %d", rw.removed)
	}
	if rw.Parent() != nil || slices.Contains(f.scene.Children(), Widget(rw)) {
		t.Error("Expected widget detached from scene")
	}
	if f.ui.Dragged() != nil || f.ui.Hovered() != nil {
		t.Error("Expected state slots of the deleted subtree cleared")
	}

	f.ui.Close()
	if len(f.scene.Children()) != 0 {
		t.Errorf("Expected empty scene after Close, got %d children", len(f.scene.Children()))
	}
}

func TestInteraction_StepAdvancesFrame(t *testing.T) {
	f := newFixture()
	f.ui.Step()
	f.ui.Step()
	if f.ui.Frame() != 2 {
		t.Errorf("Expected frame 2, got %d", f.ui.Frame())
	}
}

type zoomWidget struct {
	Base
	seen []float32
}

func (w *zoomWidget) OnZoom(e *ZoomEvent) { w.seen = append(w.seen, e.UI.PixelRatio()) }

func TestInteraction_ZoomSeesPreviousRatio(t *testing.T) {
	scene := NewScene()
	w := &zoomWidget{}
	w.Init(w)
	scene.AddChild(w)
	ui := NewInteraction(scene)

	ui.Resize(100, 100, 200, 200, 2)
	ui.Resize(100, 100, 300, 300, 3)
	if want := []float32{1, 2}; !slices.Equal(w.seen, want) {
		t.Errorf("Expected ratios %v during zoom, got %v", want, w.seen)
	}
	if ui.PixelRatio() != 3 {
		t.Errorf("Expected pixel ratio 3 after resize, got %v", ui.PixelRatio())
	}
}

type fakeLocker struct {
	locks, unlocks int
	mod            bool
}

func (l *fakeLocker) LockCursor()        { l.locks++ }
func (l *fakeLocker) UnlockCursor()      { l.unlocks++ }
func (l *fakeLocker) IsModPressed() bool { return l.mod }

func TestInteraction_CursorLocker(t *testing.T) {
	l := &fakeLocker{mod: true}
	f := newFixture(WithCursorLocker(l))

	f.ui.LockCursor()
	f.ui.UnlockCursor()
	if l.locks != 1 || l.unlocks != 1 {
		t.Errorf("Expected one lock and one unlock, got %+v", l)
	}
	if !f.ui.IsModPressed() {
		t.Error("Expected modifier state from the locker")
	}

	// A widget removed mid-drag never sees DragEnd; the lock is released.
	f.move(50, 50)
	f.press(MouseButtonLeft)
	f.ui.Delete(f.a)
	if l.unlocks != 2 {
		t.Errorf("Expected unlock when the dragged widget is deleted, got %d", l.unlocks)
	}
}

func TestInteraction_CursorLockerUnset(t *testing.T) {
	f := newFixture()
	f.ui.LockCursor()
	f.ui.UnlockCursor()
	if f.ui.IsModPressed() {
		t.Error("Expected no modifier without a locker")
	}
}
