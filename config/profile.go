package config

import (
	"time"

	"github.com/go-theft-auto/rack"
)

// DisplayMode selects how the window occupies the screen.
type DisplayMode int

const (
	ModeMaximized DisplayMode = iota
	ModeFullscreen
)

func (m DisplayMode) String() string {
	if m == ModeFullscreen {
		return "fullscreen"
	}
	return "maximized"
}

// DisplayProfile is resolved once at startup and drives window creation and
// frame pacing.
type DisplayProfile struct {
	Mode         DisplayMode
	FPS          float64
	SwapInterval int
	AutoIconify  bool

	// Width and Height are the un-maximized window size.
	Width, Height int
	// MinWidth and MinHeight floor the window size.
	MinWidth, MinHeight int
}

// FrameInterval returns the target frame period.
func (p DisplayProfile) FrameInterval() time.Duration {
	return rack.NewFramePacer(p.FPS).Interval
}

const (
	minWidth  = 800
	minHeight = 480
)

// ResolveDisplayProfile derives the profile for a platform and applies the
// overrides in d. Embedded ARM boards run fullscreen at 30 fps without vsync;
// everything else runs maximized at 60 fps.
func ResolveDisplayProfile(goos, goarch string, d DisplayConfig) DisplayProfile {
	p := DisplayProfile{
		Mode:         ModeMaximized,
		FPS:          60,
		SwapInterval: 1,
		AutoIconify:  true,
		Width:        800,
		Height:       600,
		MinWidth:     minWidth,
		MinHeight:    minHeight,
	}
	if isEmbedded(goos, goarch) {
		p.Mode = ModeFullscreen
		p.FPS = 30
		p.SwapInterval = 0
		p.AutoIconify = false
	}

	switch d.Profile {
	case "fullscreen":
		p.Mode = ModeFullscreen
		p.AutoIconify = false
	case "maximized":
		p.Mode = ModeMaximized
	}
	if d.FPS > 0 {
		p.FPS = d.FPS
	}
	if d.Width > 0 {
		p.Width = max(d.Width, p.MinWidth)
	}
	if d.Height > 0 {
		p.Height = max(d.Height, p.MinHeight)
	}
	return p
}

func isEmbedded(goos, goarch string) bool {
	return goarch == "arm" || (goarch == "arm64" && goos == "linux")
}

// Platform collects the input conventions of the host OS.
type Platform struct {
	// PrimaryMod is the modifier used for shortcuts.
	PrimaryMod rack.Mods
	// SwapScrollOnShift turns Shift+wheel into horizontal scrolling.
	SwapScrollOnShift bool
	// EmulateCursorLock hides and re-centers the cursor instead of using the
	// native captured mode.
	EmulateCursorLock bool
	// CtrlClickIsRightClick maps Control+left click to a right click.
	CtrlClickIsRightClick bool
}

// ResolvePlatform returns the conventions for goos.
func ResolvePlatform(goos string) Platform {
	switch goos {
	case "darwin":
		return Platform{
			PrimaryMod:            rack.ModSuper,
			EmulateCursorLock:     true,
			CtrlClickIsRightClick: true,
		}
	case "linux", "windows":
		return Platform{PrimaryMod: rack.ModControl, SwapScrollOnShift: true}
	default:
		return Platform{PrimaryMod: rack.ModControl}
	}
}

// InteractionOptions converts the platform conventions into options for
// rack.NewInteraction.
func (p Platform) InteractionOptions() []rack.Option {
	return []rack.Option{
		rack.SwapScrollOnShift(p.SwapScrollOnShift),
		rack.CtrlClickIsRightClick(p.CtrlClickIsRightClick),
	}
}
