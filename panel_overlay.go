package lightlab

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	overlayLineHeight = 16
	overlayPadding    = 6
	overlayWidth      = 300
)

var (
	overlayBackground = color.RGBA{R: 24, G: 24, B: 28, A: 220}
	overlayText       = color.RGBA{R: 235, G: 235, B: 235, A: 255}
	overlayFocus      = color.RGBA{R: 255, G: 200, B: 40, A: 255}
)

// Lines renders each control as "label: value", marking the focused one.
func (p *DebugPanel) Lines() []string {
	lines := make([]string, 0, len(p.bindings))
	for i, b := range p.bindings {
		mark := "  "
		if i == p.selected {
			mark = "> "
		}
		lines = append(lines, fmt.Sprintf("%s%s: %.*f", mark, b.Label, max(b.decimals, 2), b.Value()))
	}
	return lines
}

// OverlaySize is the pixel size of the panel image.
func (p *DebugPanel) OverlaySize() image.Point {
	return image.Pt(overlayWidth, 2*overlayPadding+len(p.bindings)*overlayLineHeight)
}

// DrawOverlay paints the panel onto dst with its top-left corner at at.
func (p *DebugPanel) DrawOverlay(dst draw.Image, at image.Point) {
	bounds := image.Rectangle{Min: at, Max: at.Add(p.OverlaySize())}
	draw.Draw(dst, bounds, image.NewUniform(overlayBackground), image.Point{}, draw.Over)

	face := basicfont.Face7x13
	ascent := face.Metrics().Ascent.Ceil()
	d := &font.Drawer{Dst: dst, Face: face}

	for i, line := range p.Lines() {
		src := overlayText
		if i == p.selected {
			src = overlayFocus
		}
		d.Src = image.NewUniform(src)
		d.Dot = fixed.P(at.X+overlayPadding, at.Y+overlayPadding+i*overlayLineHeight+ascent)
		d.DrawString(line)
	}
}

// Snapshot renders the panel into a new image.
func (p *DebugPanel) Snapshot() *image.RGBA {
	img := image.NewRGBA(image.Rectangle{Max: p.OverlaySize()})
	p.DrawOverlay(img, image.Point{})
	return img
}
