// Package app sequences process startup and shutdown around the window and
// its collaborators.
package app

import (
	"github.com/go-theft-auto/rack"
)

// crashMessage is asked when the previous run did not reach a clean start.
const crashMessage = "Rack has recovered from a crash, possibly caused by a faulty module in your patch. " +
	"Would you like to clear your patch and start over?"

// Plugins loads and unloads plugin code.
type Plugins interface {
	Init() error
	Destroy()
}

// Engine is the audio engine.
type Engine interface {
	Init()
	Start()
	Stop()
	Destroy()
}

// Keyboard is the computer-keyboard note driver.
type Keyboard interface {
	Init()
}

// Window is the native window.
type Window interface {
	Init() error
	Run()
	Destroy()

	Size() (width, height int)
	SetSize(width, height int)
	Pos() (x, y int)
	SetPos(x, y int)
	IsMaximized() bool
	AllowCursorLock() bool
	SetAllowCursorLock(allow bool)
}

// UI is the application widget tree built on top of the window.
type UI interface {
	Init()
	Destroy()
}

// Patch loads and saves the rack contents.
type Patch interface {
	// Load reports whether the patch at path was loaded.
	Load(path string) bool
	Save(path string) error
	// ClearPath forgets the current patch file so the next save asks for one.
	ClearPath()
}

// Paths locates the files touched during startup and shutdown.
type Paths struct {
	Settings string
	Autosave string
	Template string
}

// Lifecycle runs the process from plugin init to plugin destroy. Only
// Window is required; nil collaborators are skipped.
type Lifecycle struct {
	Plugins  Plugins
	Engine   Engine
	Keyboard Keyboard
	Window   Window
	UI       UI
	Patch    Patch
	Dialog   Dialog
	Paths    Paths

	settings Settings
}

// Settings returns the settings loaded during Run.
func (l *Lifecycle) Settings() Settings { return l.settings }

// Run executes startup, the frame loop and shutdown, and returns the
// process exit code.
func (l *Lifecycle) Run() int {
	log := rack.Logger()
	dialog := l.Dialog
	if dialog == nil {
		dialog = LogDialog{}
	}

	if l.Plugins != nil {
		if err := l.Plugins.Init(); err != nil {
			log.Warn("plugin init failed", "error", err)
		}
	}
	if l.Engine != nil {
		l.Engine.Init()
	}
	if l.Keyboard != nil {
		l.Keyboard.Init()
	}
	if err := l.Window.Init(); err != nil {
		log.Error("window init failed", "error", err)
		dialog.Message(Error, "Cannot open window with OpenGL 4.1 renderer. "+
			"Does your graphics card support OpenGL 4.1 or greater? "+
			"If so, make sure you have the latest graphics drivers installed.\n\n"+err.Error())
		return 1
	}
	if l.UI != nil {
		l.UI.Init()
	}

	l.loadSettings()
	l.loadPatch(dialog)

	if l.Engine != nil {
		l.Engine.Start()
	}
	l.Window.Run()
	if l.Engine != nil {
		l.Engine.Stop()
	}

	if l.Patch != nil && l.Paths.Autosave != "" {
		if err := l.Patch.Save(l.Paths.Autosave); err != nil {
			log.Warn("autosave failed", "path", l.Paths.Autosave, "error", err)
		}
	}
	l.saveSettings()

	if l.UI != nil {
		l.UI.Destroy()
	}
	l.Window.Destroy()
	if l.Engine != nil {
		l.Engine.Destroy()
	}
	if l.Plugins != nil {
		l.Plugins.Destroy()
	}
	return 0
}

func (l *Lifecycle) loadSettings() {
	s, err := LoadSettings(l.Paths.Settings)
	if err != nil {
		rack.Logger().Warn("settings load failed", "path", l.Paths.Settings, "error", err)
		s = DefaultSettings()
	}
	l.settings = s
	s.Apply(l.Window)
}

func (l *Lifecycle) saveSettings() {
	if l.Paths.Settings == "" {
		return
	}
	l.settings.Capture(l.Window)
	if err := l.settings.Save(l.Paths.Settings); err != nil {
		rack.Logger().Warn("settings save failed", "path", l.Paths.Settings, "error", err)
	}
}

// loadPatch restores the last session. The crash flag is persisted as set
// before anything risky runs and cleared in memory, so it survives on disk
// only if the process dies before shutdown saves settings again.
func (l *Lifecycle) loadPatch(dialog Dialog) {
	crashed := l.settings.SkipAutosaveOnLaunch
	l.settings.SkipAutosaveOnLaunch = true
	if l.Paths.Settings != "" {
		if err := l.settings.Save(l.Paths.Settings); err != nil {
			rack.Logger().Warn("settings save failed", "path", l.Paths.Settings, "error", err)
		}
	}
	l.settings.SkipAutosaveOnLaunch = false

	if l.Patch == nil {
		return
	}
	if crashed && dialog.Confirm(crashMessage) {
		l.Patch.Load(l.Paths.Template)
		l.Patch.ClearPath()
		return
	}
	if !l.Patch.Load(l.Paths.Autosave) {
		l.Patch.Load(l.Paths.Template)
		l.Patch.ClearPath()
	}
}
