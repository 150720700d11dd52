// Command gen renders sample scenes through the software canvas, replays a
// short input script against each, and saves PNG screenshots to doc/imgs/.
// No window or GPU is needed.
//
// Usage:
//
//	go run ./doc/gen/ [-font res/fonts/DejaVuSans.ttf] [-out doc/imgs]
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/gogpu/gg"

	"github.com/go-theft-auto/rack"
	"github.com/go-theft-auto/rack/compat"
	"github.com/go-theft-auto/rack/legacy"
	"github.com/go-theft-auto/rack/resource"
)

func main() {
	var (
		fontPath = flag.String("font", "res/fonts/DejaVuSans.ttf", "UI font")
		outDir   = flag.String("out", "doc/imgs", "Output directory")
	)
	flag.Parse()

	if err := run(*fontPath, *outDir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot defines a single scene capture.
type screenshot struct {
	name   string                                   // filename without extension
	width  int                                      // framebuffer width
	height int                                      // framebuffer height
	build  func(s *rack.Scene)                      // populates the scene
	script func(ui *rack.Interaction, s *rack.Scene) // input replayed before capture
}

func run(fontPath, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	shots := []screenshot{
		{name: "empty", width: 400, height: 300},
		{
			name: "menu", width: 400, height: 300,
			script: func(ui *rack.Interaction, s *rack.Scene) {
				menu := rack.NewMenu()
				menu.AddEntry(&rack.MenuLabel{Text: "Module"})
				menu.AddEntry(&rack.MenuItem{Text: "Initialize", RightText: "Ctrl+I"})
				menu.AddEntry(&rack.MenuItem{Text: "Randomize", RightText: "Ctrl+R"})
				menu.AddEntry(&rack.MenuItem{Text: "Delete", Disabled: true})
				ui.MoveCursor(rack.Vec{X: 40, Y: 30}, false)
				s.OpenMenu(menu)
				ui.MoveCursor(rack.Vec{X: 60, Y: 55}, false)
			},
		},
		{
			name: "legacy_module", width: 400, height: 420,
			build: func(s *rack.Scene) {
				s.AddChild(compat.NewModuleWidgetProxy(newSamplePanel(), nopEngine{}, nopWires{}))
			},
		},
		{
			name: "legacy_context_menu", width: 400, height: 420,
			build: func(s *rack.Scene) {
				s.AddChild(compat.NewModuleWidgetProxy(newSamplePanel(), nopEngine{}, nopWires{}))
			},
			script: func(ui *rack.Interaction, s *rack.Scene) {
				ui.MoveCursor(rack.Vec{X: 80, Y: 120}, false)
				click(ui, rack.MouseButtonRight)
				ui.MoveCursor(rack.Vec{X: 100, Y: 150}, false)
			},
		},
	}

	for _, shot := range shots {
		if err := capture(shot, fontPath, outDir); err != nil {
			return fmt.Errorf("%s: %w", shot.name, err)
		}
	}
	return nil
}

func capture(shot screenshot, fontPath, outDir string) error {
	canvas := rack.NewCanvas(shot.width, shot.height)
	loader := resource.NewLoader(canvas)
	scene := rack.NewScene()

	font := loader.LoadFont(fontPath)
	defer font.Release()
	scene.Font = font.Value().Handle

	ui := rack.NewInteraction(scene)
	defer ui.Close()
	ui.Resize(shot.width, shot.height, shot.width, shot.height, 1)

	if shot.build != nil {
		shot.build(scene)
	}
	if shot.script != nil {
		shot.script(ui, scene)
	}
	ui.Step()

	frame := ui.Render(canvas, shot.width, shot.height)
	path := filepath.Join(outDir, shot.name+".png")
	if err := imaging.Save(frame, path); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	rack.Logger().Info("saved screenshot", "path", path)
	return nil
}

// click presses and releases a button, one transition per frame.
func click(ui *rack.Interaction, button rack.MouseButton) {
	ui.SubmitButton(button, rack.Press, 0)
	ui.SubmitButton(button, rack.Release, 0)
	for ui.ReplayButton() {
		ui.Step()
	}
}

type nopEngine struct{}

func (nopEngine) AddModule(*compat.ModuleProxy)    {}
func (nopEngine) RemoveModule(*compat.ModuleProxy) {}

type nopWires struct{}

func (nopWires) RemoveAllWires(*compat.PortProxy) {}

// samplePanel is a three-jack legacy module drawn with plain shapes.
type samplePanel struct {
	legacy.ModuleWidgetBase
}

func newSamplePanel() *samplePanel {
	p := &samplePanel{ModuleWidgetBase: legacy.NewModuleWidgetBase(nil, &legacy.Model{
		Plugin: "Fundamental",
		Slug:   "VCO",
		Name:   "VCO-1",
	})}
	p.Self = p
	p.SetBox(legacy.Rect{Pos: legacy.Vec{X: 30, Y: 20}, Size: legacy.Vec{X: 150, Y: 380}})
	for i, t := range []legacy.PortType{legacy.PortInput, legacy.PortInput, legacy.PortOutput} {
		j := &jack{}
		j.Type = t
		j.ID = i
		j.SetBox(legacy.Rect{Pos: legacy.Vec{X: 20 + float32(i)*40, Y: 320}, Size: legacy.Vec{X: 24, Y: 24}})
		p.AddChild(j)
	}
	return p
}

func (p *samplePanel) Draw(dc *gg.Context) {
	b := p.Box()
	dc.SetRGB(0.85, 0.85, 0.82)
	dc.DrawRectangle(0, 0, float64(b.Size.X), float64(b.Size.Y))
	dc.Fill()
	dc.SetRGB(0.2, 0.2, 0.2)
	dc.SetLineWidth(1)
	dc.DrawRectangle(0.5, 0.5, float64(b.Size.X)-1, float64(b.Size.Y)-1)
	dc.Stroke()
	p.ModuleWidgetBase.Draw(dc)
}

type jack struct {
	legacy.PortWidget
}

func (j *jack) Draw(dc *gg.Context) {
	r := float64(j.Box().Size.X) / 2
	if j.Type == legacy.PortOutput {
		dc.SetRGB(0.8, 0.3, 0.2)
	} else {
		dc.SetRGB(0.3, 0.3, 0.3)
	}
	dc.DrawCircle(r, r, r)
	dc.Fill()
}
