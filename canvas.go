package rack

import (
	"image"
	"image/draw"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/cache"
	"github.com/gogpu/gg/text"
)

// faceCacheSize bounds the number of sized faces kept per shard.
const faceCacheSize = 64

type faceKey struct {
	handle int
	size   float64
}

func hashFaceKey(k faceKey) uint64 {
	return uint64(k.handle)*0x9e3779b97f4a7c15 ^ math.Float64bits(k.size)
}

// clearColor is the window background behind the scene.
var clearColor = gg.RGB(0.2, 0.2, 0.2)

// Canvas is the drawing context bound to the window for one frame at a time.
// Widget coordinates are logical units; BeginFrame scales them by the pixel
// ratio so they land on physical pixels.
//
// Canvas also owns the registries of uploaded images and fonts. Handles are
// positive integers; 0 is the invalid handle, and drawing with an invalid
// handle does nothing.
type Canvas struct {
	dc         *gg.Context
	pixelRatio float32

	images     map[int]*gg.ImageBuf
	fonts      map[int]*text.FontSource
	faces      *cache.ShardedCache[faceKey, text.Face]
	nextHandle int
}

// NewCanvas creates a canvas with an initial framebuffer size.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		dc:         gg.NewContext(max(width, 1), max(height, 1)),
		pixelRatio: 1,
		images:     make(map[int]*gg.ImageBuf),
		fonts:      make(map[int]*text.FontSource),
		faces:      cache.NewSharded[faceKey, text.Face](faceCacheSize, hashFaceKey),
	}
}

// BeginFrame prepares the canvas for drawing a frame of the given
// framebuffer size: resizes if needed, clears, and applies the pixel ratio.
func (c *Canvas) BeginFrame(width, height int, pixelRatio float32) {
	if width > 0 && height > 0 {
		if err := c.dc.Resize(width, height); err != nil {
			Logger().Warn("canvas resize failed", "width", width, "height", height, "error", err)
		}
	}
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	c.pixelRatio = pixelRatio
	c.dc.Identity()
	c.dc.ClearPath()
	c.dc.ClearWithColor(clearColor)
	c.dc.Scale(float64(pixelRatio), float64(pixelRatio))
}

// EndFrame finishes the frame and returns its pixels.
func (c *Canvas) EndFrame() *image.RGBA {
	if err := c.dc.FlushGPU(); err != nil {
		Logger().Warn("canvas flush failed", "error", err)
	}
	img := c.dc.Image()
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba
}

// DC exposes the underlying vector context for widgets that draw paths directly.
func (c *Canvas) DC() *gg.Context { return c.dc }

// PixelRatio returns the ratio applied by the last BeginFrame.
func (c *Canvas) PixelRatio() float32 { return c.pixelRatio }

// Save pushes the current transform.
func (c *Canvas) Save() { c.dc.Push() }

// Restore pops the transform pushed by Save.
func (c *Canvas) Restore() { c.dc.Pop() }

// Translate moves the origin by v logical units.
func (c *Canvas) Translate(v Vec) {
	c.dc.Translate(float64(v.X), float64(v.Y))
}

// FillRect fills a rectangle with a solid color.
func (c *Canvas) FillRect(r Rect, col gg.RGBA) {
	c.dc.DrawRectangle(float64(r.Pos.X), float64(r.Pos.Y), float64(r.Size.X), float64(r.Size.Y))
	c.dc.SetColor(col.Color())
	if err := c.dc.Fill(); err != nil {
		Logger().Debug("fill failed", "error", err)
	}
}

// StrokeRect outlines a rectangle.
func (c *Canvas) StrokeRect(r Rect, col gg.RGBA, width float32) {
	c.dc.DrawRectangle(float64(r.Pos.X), float64(r.Pos.Y), float64(r.Size.X), float64(r.Size.Y))
	c.dc.SetColor(col.Color())
	c.dc.SetLineWidth(float64(width))
	if err := c.dc.Stroke(); err != nil {
		Logger().Debug("stroke failed", "error", err)
	}
}

// CreateImage registers an image and returns its handle.
func (c *Canvas) CreateImage(img *gg.ImageBuf) int {
	if img == nil {
		return 0
	}
	c.nextHandle++
	c.images[c.nextHandle] = img
	return c.nextHandle
}

// DeleteImage releases an image handle. Invalid handles are ignored.
func (c *Canvas) DeleteImage(handle int) {
	delete(c.images, handle)
}

// ImageSize returns the pixel size of a registered image.
func (c *Canvas) ImageSize(handle int) (w, h int, ok bool) {
	img, ok := c.images[handle]
	if !ok {
		return 0, 0, false
	}
	return img.Width(), img.Height(), true
}

// DrawImage draws a registered image scaled into dst.
func (c *Canvas) DrawImage(handle int, dst Rect) {
	img, ok := c.images[handle]
	if !ok {
		return
	}
	c.dc.DrawImageEx(img, gg.DrawImageOptions{
		X:             float64(dst.Pos.X),
		Y:             float64(dst.Pos.Y),
		DstWidth:      float64(dst.Size.X),
		DstHeight:     float64(dst.Size.Y),
		Interpolation: gg.InterpBilinear,
		Opacity:       1,
	})
}

// CreateFont registers a parsed font and returns its handle.
func (c *Canvas) CreateFont(src *text.FontSource) int {
	if src == nil {
		return 0
	}
	c.nextHandle++
	c.fonts[c.nextHandle] = src
	return c.nextHandle
}

// DeleteFont releases a font handle and closes its source.
func (c *Canvas) DeleteFont(handle int) {
	src, ok := c.fonts[handle]
	if !ok {
		return
	}
	delete(c.fonts, handle)
	// Faces do not outlive their source.
	c.faces.Clear()
	if err := src.Close(); err != nil {
		Logger().Debug("font close failed", "handle", handle, "error", err)
	}
}

// Text draws s with its baseline at pos using a registered font.
func (c *Canvas) Text(handle int, size float32, pos Vec, col gg.RGBA, s string) {
	src, ok := c.fonts[handle]
	if !ok {
		return
	}
	// Text is rasterized in device space, so the face carries the pixel ratio.
	px := float64(size * c.pixelRatio)
	face := c.faces.GetOrCreate(faceKey{handle: handle, size: px}, func() text.Face {
		return src.Face(px)
	})
	c.dc.SetFont(face)
	c.dc.SetColor(col.Color())
	x, y := c.dc.TransformPoint(float64(pos.X), float64(pos.Y))
	c.dc.Push()
	c.dc.Identity()
	c.dc.DrawString(s, x, y)
	c.dc.Pop()
}
