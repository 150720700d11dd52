package resource

import (
	"bytes"
	"encoding/xml"
	"image"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/go-theft-auto/rack"
)

const (
	// svgSupersample is the raster scale applied to vector images.
	svgSupersample = 2
	// svgDPI converts absolute SVG units to pixels.
	svgDPI = 75
)

// Context is the rendering context resources are uploaded into.
// Handles are positive; 0 marks an invalid resource.
type Context interface {
	CreateImage(img *gg.ImageBuf) int
	DeleteImage(handle int)
	CreateFont(src *text.FontSource) int
	DeleteFont(handle int)
}

// Font is a loaded font face source.
type Font struct {
	Handle int
}

// Valid reports whether the font loaded.
func (f Font) Valid() bool { return f.Handle != 0 }

// Image is an uploaded raster image.
type Image struct {
	Handle int
	Width  int
	Height int
}

func (i Image) Valid() bool { return i.Handle != 0 }

// SVG is a rasterized vector image. Size is its logical size; the uploaded
// raster is larger by the supersampling factor.
type SVG struct {
	Image
	Size rack.Vec
}

// Loader owns the font, image and SVG caches bound to one rendering context.
type Loader struct {
	ctx Context

	Fonts  *Cache[Font]
	Images *Cache[Image]
	SVGs   *Cache[SVG]
}

// NewLoader creates the caches for ctx.
func NewLoader(ctx Context) *Loader {
	l := &Loader{ctx: ctx}
	l.Fonts = NewCache(l.loadFont, func(f Font) {
		if f.Valid() {
			ctx.DeleteFont(f.Handle)
		}
	})
	l.Images = NewCache(l.loadImage, func(i Image) {
		if i.Valid() {
			ctx.DeleteImage(i.Handle)
		}
	})
	l.SVGs = NewCache(l.loadSVG, func(s SVG) {
		if s.Valid() {
			ctx.DeleteImage(s.Handle)
		}
	})
	return l
}

// LoadFont returns a shared font. A font that fails to load is cached as
// invalid; drawing with it renders nothing.
func (l *Loader) LoadFont(path string) *Handle[Font] { return l.Fonts.Load(path) }

// LoadImage returns a shared raster image.
func (l *Loader) LoadImage(path string) *Handle[Image] { return l.Images.Load(path) }

// LoadSVG returns a shared rasterized vector image.
func (l *Loader) LoadSVG(path string) *Handle[SVG] { return l.SVGs.Load(path) }

func (l *Loader) loadFont(path string) Font {
	src, err := text.NewFontSourceFromFile(path)
	if err != nil {
		rack.Logger().Warn("failed to load font", "path", path, "error", err)
		return Font{}
	}
	f := Font{Handle: l.ctx.CreateFont(src)}
	rack.Logger().Info("loaded font", "path", path, "name", src.Name())
	return f
}

func (l *Loader) loadImage(path string) Image {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		rack.Logger().Warn("failed to load image", "path", path, "error", err)
		return Image{}
	}
	b := img.Bounds()
	i := Image{
		Handle: l.ctx.CreateImage(gg.ImageBufFromImage(img)),
		Width:  b.Dx(),
		Height: b.Dy(),
	}
	rack.Logger().Info("loaded image", "path", path, "width", i.Width, "height", i.Height)
	return i
}

func (l *Loader) loadSVG(path string) SVG {
	data, err := os.ReadFile(path)
	if err != nil {
		rack.Logger().Warn("failed to load SVG", "path", path, "error", err)
		return SVG{}
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.WarnErrorMode)
	if err != nil {
		rack.Logger().Warn("failed to load SVG", "path", path, "error", err)
		return SVG{}
	}
	w, h := svgSize(data, icon)
	raster := Rasterize(icon, w, h)
	s := SVG{
		Image: Image{
			Handle: l.ctx.CreateImage(gg.ImageBufFromImage(raster)),
			Width:  raster.Bounds().Dx(),
			Height: raster.Bounds().Dy(),
		},
		Size: rack.Vec{X: float32(w), Y: float32(h)},
	}
	rack.Logger().Info("loaded SVG", "path", path, "width", s.Size.X, "height", s.Size.Y)
	return s
}

// svgSize returns the document size in pixels. The root width and height
// attributes win; an axis without a usable one takes the viewBox extent.
func svgSize(data []byte, icon *oksvg.SvgIcon) (w, h float64) {
	w, h = icon.ViewBox.W, icon.ViewBox.H
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false
	for {
		tok, err := dec.Token()
		if err != nil {
			return w, h
		}
		root, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		for _, attr := range root.Attr {
			switch attr.Name.Local {
			case "width":
				if v, ok := parseLength(attr.Value); ok {
					w = v
				}
			case "height":
				if v, ok := parseLength(attr.Value); ok {
					h = v
				}
			}
		}
		return w, h
	}
}

// svgUnits maps absolute length units to pixels at svgDPI.
var svgUnits = []struct {
	suffix string
	scale  float64
}{
	{"px", 1},
	{"pt", svgDPI / 72.0},
	{"pc", svgDPI / 6.0},
	{"mm", svgDPI / 25.4},
	{"cm", svgDPI / 2.54},
	{"in", svgDPI},
}

// parseLength converts an absolute SVG length to pixels. Relative units
// such as % and em are rejected.
func parseLength(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	scale := 1.0
	for _, u := range svgUnits {
		if strings.HasSuffix(s, u.suffix) {
			s, scale = strings.TrimSpace(strings.TrimSuffix(s, u.suffix)), u.scale
			break
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v * scale, true
}

// Rasterize renders icon scaled to w by h into a buffer of ceil(w)*2 by
// ceil(h)*2 pixels.
func Rasterize(icon *oksvg.SvgIcon, w, h float64) *image.RGBA {
	rw := int(math.Ceil(w)) * svgSupersample
	rh := int(math.Ceil(h)) * svgSupersample
	img := image.NewRGBA(image.Rect(0, 0, rw, rh))
	if rw <= 0 || rh <= 0 {
		return img
	}
	scanner := rasterx.NewScannerGV(rw, rh, img, img.Bounds())
	dasher := rasterx.NewDasher(rw, rh, scanner)
	icon.SetTarget(0, 0, w*svgSupersample, h*svgSupersample)
	icon.Draw(dasher, 1)
	return img
}
