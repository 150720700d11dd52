package opengl

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/gg"

	"github.com/go-theft-auto/rack"
	"github.com/go-theft-auto/rack/config"
	"github.com/go-theft-auto/rack/resource"
)

var (
	// ErrWindowCreate is returned when GLFW cannot be initialized or the
	// window cannot be opened.
	ErrWindowCreate = errors.New("cannot open window")
	// ErrGLInit is returned when the OpenGL function pointers or the frame
	// presenter cannot be set up.
	ErrGLInit = errors.New("cannot initialize OpenGL")
)

// Options configures a Window.
type Options struct {
	Title    string
	Scene    *rack.Scene
	Profile  config.DisplayProfile
	Platform config.Platform
	// Font is the path of the UI font. Empty leaves text undrawn.
	Font string
	// Background and Foreground seed the theme.
	Background, Foreground string
	Keyboard               rack.KeyboardDriver
}

// Window is the native window and input bridge. It owns the GLFW window,
// the rendering canvas and the Interaction that receives translated input.
// All methods must be called on the main OS thread.
type Window struct {
	opts Options

	win       *glfw.Window
	ui        *rack.Interaction
	canvas    *rack.Canvas
	presenter *Presenter
	loader    *resource.Loader
	font      *resource.Handle[resource.Font]
	pacer     rack.FramePacer

	allowCursorLock bool
}

// NewWindow returns an uninitialized window. Call Init before use.
func NewWindow(opts Options) *Window {
	if opts.Scene == nil {
		opts.Scene = rack.NewScene()
	}
	return &Window{
		opts:            opts,
		pacer:           rack.NewFramePacer(opts.Profile.FPS),
		allowCursorLock: true,
	}
}

// Init initializes GLFW, opens the window, sets up OpenGL and registers
// the input callbacks.
func (w *Window) Init() error {
	if err := glfw.Init(); err != nil {
		rack.Logger().Warn("glfw init failed", "error", err)
		return fmt.Errorf("%w: glfw: %v", ErrWindowCreate, err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 0)
	glfw.WindowHint(glfw.AlphaBits, 0)

	p := w.opts.Profile
	width, height := p.Width, p.Height
	var monitor *glfw.Monitor
	if !p.AutoIconify {
		glfw.WindowHint(glfw.AutoIconify, glfw.False)
	}
	switch p.Mode {
	case config.ModeFullscreen:
		monitor = glfw.GetPrimaryMonitor()
		if monitor != nil {
			if mode := monitor.GetVideoMode(); mode != nil {
				width, height = mode.Width, mode.Height
			}
		}
	default:
		glfw.WindowHint(glfw.Maximized, glfw.True)
	}

	win, err := glfw.CreateWindow(width, height, w.opts.Title, monitor, nil)
	if err != nil {
		rack.Logger().Warn("glfw create window failed", "error", err)
		glfw.Terminate()
		return fmt.Errorf("%w: %v", ErrWindowCreate, err)
	}
	w.win = win
	win.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		w.destroyWindow()
		return fmt.Errorf("%w: %v", ErrGLInit, err)
	}
	rack.Logger().Info("opengl context",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	glfw.SwapInterval(p.SwapInterval)
	win.SetInputMode(glfw.LockKeyMods, glfw.True)

	win.SetSizeCallback(w.sizeCallback)
	win.SetMouseButtonCallback(w.mouseButtonCallback)
	win.SetCursorEnterCallback(w.cursorEnterCallback)
	win.SetScrollCallback(w.scrollCallback)
	win.SetCharCallback(w.charCallback)
	win.SetKeyCallback(w.keyCallback)
	win.SetDropCallback(w.dropCallback)
	win.SetSizeLimits(p.MinWidth, p.MinHeight, glfw.DontCare, glfw.DontCare)

	presenter, err := NewPresenter()
	if err != nil {
		w.destroyWindow()
		return fmt.Errorf("%w: %v", ErrGLInit, err)
	}
	w.presenter = presenter

	fbW, fbH := win.GetFramebufferSize()
	w.canvas = rack.NewCanvas(fbW, fbH)
	w.loader = resource.NewLoader(w.canvas)
	if w.opts.Font != "" {
		w.font = w.loader.LoadFont(w.opts.Font)
		w.opts.Scene.Font = w.font.Value().Handle
	}

	rack.SetTheme(themeColor(w.opts.Background, rack.DefaultBackground), themeColor(w.opts.Foreground, rack.DefaultForeground))

	opts := append(w.opts.Platform.InteractionOptions(), rack.WithCursorLocker(w))
	if w.opts.Keyboard != nil {
		opts = append(opts, rack.WithKeyboard(w.opts.Keyboard))
	}
	w.ui = rack.NewInteraction(w.opts.Scene, opts...)
	xs, _ := win.GetContentScale()
	winW, winH := win.GetSize()
	w.ui.Resize(winW, winH, fbW, fbH, xs)

	rack.Logger().Info("window initialized",
		"mode", p.Mode, "fps", p.FPS, "width", width, "height", height)
	return nil
}

// UI returns the interaction state machine fed by this window.
func (w *Window) UI() *rack.Interaction { return w.ui }

// Loader returns the resource loader bound to this window's canvas.
func (w *Window) Loader() *resource.Loader { return w.loader }

// Run drives the frame loop until the window is asked to close. Each frame
// waits for events, polls the cursor once, replays at most one queued button
// transition, steps the scene and renders unless the window is hidden or
// iconified.
func (w *Window) Run() {
	w.resize()
	wait := w.pacer.Interval
	for !w.win.ShouldClose() {
		glfw.WaitEventsTimeout(wait.Seconds())
		start := time.Now()

		w.pollCursor()
		w.ui.ReplayButton()
		w.ui.Step()

		if w.visible() {
			w.render()
		}
		wait = w.pacer.Next(time.Since(start))
	}
}

// Close asks the frame loop to stop after the current frame.
func (w *Window) Close() {
	w.win.SetShouldClose(true)
}

// Destroy releases the UI, the GPU resources and the window.
func (w *Window) Destroy() {
	if w.ui != nil {
		w.ui.Close()
	}
	if w.font != nil {
		w.font.Release()
	}
	if w.presenter != nil {
		w.presenter.Delete()
	}
	w.destroyWindow()
}

func (w *Window) destroyWindow() {
	if w.win != nil {
		w.win.Destroy()
		w.win = nil
	}
	glfw.Terminate()
}

func (w *Window) visible() bool {
	return w.win.GetAttrib(glfw.Visible) == glfw.True && w.win.GetAttrib(glfw.Iconified) == glfw.False
}

func (w *Window) render() {
	fbW, fbH := w.win.GetFramebufferSize()
	frame := w.ui.Render(w.canvas, fbW, fbH)
	w.presenter.Present(frame, fbW, fbH)
	w.win.SwapBuffers()
}

func (w *Window) resize() {
	winW, winH := w.win.GetSize()
	fbW, fbH := w.win.GetFramebufferSize()
	xs, _ := w.win.GetContentScale()
	w.ui.Resize(winW, winH, fbW, fbH, xs)
}

// pollCursor reads the cursor once per frame so at most one move is
// dispatched regardless of how many OS events arrived.
func (w *Window) pollCursor() {
	x, y := w.win.GetCursorPos()
	middle := w.win.GetMouseButton(glfw.MouseButtonMiddle) == glfw.Press
	if !w.ui.MoveCursor(rack.Vec{X: float32(x), Y: float32(y)}, middle) {
		return
	}
	if w.ui.CursorPinned() {
		// Emulated lock: put the cursor back where the scene thinks it is.
		p := w.ui.ToWindow(w.ui.MousePos())
		w.win.SetCursorPos(float64(p.X), float64(p.Y))
	}
}

func (w *Window) sizeCallback(_ *glfw.Window, _, _ int) {
	w.resize()
}

func (w *Window) mouseButtonCallback(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	w.ui.SubmitButton(rack.MouseButton(button), rack.Action(action), rack.Mods(mods))
}

func (w *Window) cursorEnterCallback(_ *glfw.Window, entered bool) {
	w.ui.CursorEnter(entered)
}

func (w *Window) scrollCallback(_ *glfw.Window, xoff, yoff float64) {
	w.ui.Scroll(rack.Vec{X: float32(xoff), Y: float32(yoff)}, w.IsShiftPressed())
}

func (w *Window) charCallback(_ *glfw.Window, char rune) {
	w.ui.Char(char)
}

func (w *Window) keyCallback(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	w.ui.Key(rack.Key(key), scancode, rack.Action(action), rack.Mods(mods))
}

func (w *Window) dropCallback(_ *glfw.Window, names []string) {
	w.ui.DropPaths(names)
}

// IsModPressed reports whether the platform's primary shortcut modifier is
// held.
func (w *Window) IsModPressed() bool {
	if w.opts.Platform.PrimaryMod == rack.ModSuper {
		return w.keyDown(glfw.KeyLeftSuper, glfw.KeyRightSuper)
	}
	return w.keyDown(glfw.KeyLeftControl, glfw.KeyRightControl)
}

// IsShiftPressed reports whether either shift key is held.
func (w *Window) IsShiftPressed() bool {
	return w.keyDown(glfw.KeyLeftShift, glfw.KeyRightShift)
}

func (w *Window) keyDown(keys ...glfw.Key) bool {
	for _, k := range keys {
		if w.win.GetKey(k) == glfw.Press {
			return true
		}
	}
	return false
}

// LockCursor hides the cursor and captures relative motion, used while
// dragging knobs. It does nothing when cursor lock is disallowed.
func (w *Window) LockCursor() {
	if !w.allowCursorLock {
		return
	}
	if w.opts.Platform.EmulateCursorLock {
		w.win.SetInputMode(glfw.CursorMode, glfw.CursorHidden)
		w.ui.SetCursorPinned(true)
		return
	}
	w.win.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
}

// UnlockCursor restores the normal cursor.
func (w *Window) UnlockCursor() {
	if !w.allowCursorLock {
		return
	}
	w.ui.SetCursorPinned(false)
	w.win.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
}

// AllowCursorLock reports whether LockCursor has any effect.
func (w *Window) AllowCursorLock() bool { return w.allowCursorLock }

// SetAllowCursorLock toggles the cursor lock switch.
func (w *Window) SetAllowCursorLock(allow bool) { w.allowCursorLock = allow }

// Size returns the window size in screen coordinates.
func (w *Window) Size() (width, height int) { return w.win.GetSize() }

// SetSize resizes the window.
func (w *Window) SetSize(width, height int) { w.win.SetSize(width, height) }

// Pos returns the window position.
func (w *Window) Pos() (x, y int) { return w.win.GetPos() }

// SetPos moves the window.
func (w *Window) SetPos(x, y int) { w.win.SetPos(x, y) }

// IsMaximized reports whether the window is maximized.
func (w *Window) IsMaximized() bool {
	return w.win.GetAttrib(glfw.Maximized) == glfw.True
}

func themeColor(hex string, fallback gg.RGBA) gg.RGBA {
	if hex == "" {
		return fallback
	}
	return gg.Hex(hex)
}
