package rack

import (
	"sync/atomic"

	"github.com/gogpu/gg"
)

// WidgetTheme holds the colors for one role of themed widget.
type WidgetTheme struct {
	Outline       gg.RGBA
	Item          gg.RGBA
	Inner         gg.RGBA
	InnerSelected gg.RGBA
	Text          gg.RGBA
	TextSelected  gg.RGBA
	ShadeTop      int
	ShadeDown     int
}

// Theme is the palette every themed widget reads on each draw.
type Theme struct {
	Background gg.RGBA

	Regular     WidgetTheme
	Tool        WidgetTheme
	Radio       WidgetTheme
	TextField   WidgetTheme
	Option      WidgetTheme
	Choice      WidgetTheme
	NumberField WidgetTheme
	Slider      WidgetTheme
	ScrollBar   WidgetTheme
	Tooltip     WidgetTheme
	Menu        WidgetTheme
	MenuItem    WidgetTheme
}

// DefaultBackground and DefaultForeground are the startup theme colors.
var (
	DefaultBackground = rgb8(0x33, 0x33, 0x33)
	DefaultForeground = rgb8(0xf0, 0xf0, 0xf0)
)

var currentTheme atomic.Pointer[Theme]

func init() {
	SetTheme(DefaultBackground, DefaultForeground)
}

// CurrentTheme returns the active palette. Widgets must not keep the result
// across frames.
func CurrentTheme() *Theme {
	return currentTheme.Load()
}

// SetTheme derives the full palette from a dark background and a light
// foreground and publishes it in one step.
func SetTheme(bg, fg gg.RGBA) {
	currentTheme.Store(NewTheme(bg, fg))
}

// NewTheme derives a palette from two base colors using fixed offsets.
func NewTheme(bg, fg gg.RGBA) *Theme {
	w := WidgetTheme{
		Outline:       bg,
		Item:          fg,
		Inner:         bg,
		InnerSelected: colorPlus(bg, rgb8(0x30, 0x30, 0x30)),
		Text:          fg,
		TextSelected:  fg,
	}

	t := &Theme{
		Background:  colorPlus(bg, rgb8(0x30, 0x30, 0x30)),
		Regular:     w,
		Tool:        w,
		Radio:       w,
		TextField:   w,
		Option:      w,
		Choice:      w,
		NumberField: w,
		Slider:      w,
		ScrollBar:   w,
		Tooltip:     w,
		Menu:        w,
		MenuItem:    w,
	}

	t.Slider.Item = bg
	t.Slider.Inner = colorPlus(bg, rgb8(0x50, 0x50, 0x50))
	t.Slider.InnerSelected = colorPlus(bg, rgb8(0x60, 0x60, 0x60))

	t.TextField = t.Slider
	t.TextField.Text = colorMinus(bg, rgb8(0x20, 0x20, 0x20))
	t.TextField.TextSelected = t.TextField.Text

	t.ScrollBar.Item = colorPlus(bg, rgb8(0x50, 0x50, 0x50))
	t.ScrollBar.Inner = bg

	t.Menu.Inner = colorMinus(bg, rgb8(0x10, 0x10, 0x10))
	t.Menu.Text = colorMinus(fg, rgb8(0x50, 0x50, 0x50))
	t.Menu.TextSelected = t.Menu.Text

	return t
}

func rgb8(r, g, b uint8) gg.RGBA {
	return gg.RGB(float64(r)/255, float64(g)/255, float64(b)/255)
}

// colorPlus adds the RGB channels of b to a, saturating at 1. Alpha is kept from a.
func colorPlus(a, b gg.RGBA) gg.RGBA {
	return gg.RGBA{R: clamp01(a.R + b.R), G: clamp01(a.G + b.G), B: clamp01(a.B + b.B), A: a.A}
}

// colorMinus subtracts the RGB channels of b from a, saturating at 0.
func colorMinus(a, b gg.RGBA) gg.RGBA {
	return gg.RGBA{R: clamp01(a.R - b.R), G: clamp01(a.G - b.G), B: clamp01(a.B - b.B), A: a.A}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
