package lightlab

import (
	"image"
)

// Key is a host-independent key code. Hosts translate their own codes.
type Key int

const (
	KeyUnknown Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
	KeyF2
	KeyEscape
)

// Input routes host events to the debug panel and the orbit controls.
type Input struct {
	ctx *SceneContext

	dragging     bool
	lastX, lastY float64

	// OnFocus is called when the focused control or its value changes.
	OnFocus    func(b *DebugBinding)
	OnSnapshot func(img *image.RGBA)
	OnQuit     func()
}

func NewInput(ctx *SceneContext) *Input {
	return &Input{ctx: ctx}
}

func (in *Input) orbit() *OrbitControls {
	oc, _ := in.ctx.Controls.(*OrbitControls)
	return oc
}

// KeyPressed handles a press or repeat. coarse multiplies nudges by ten.
func (in *Input) KeyPressed(k Key, coarse bool) {
	panel := in.ctx.Panel
	steps := 1
	if coarse {
		steps = 10
	}

	switch k {
	case KeyUp, KeyDown:
		if panel == nil {
			return
		}
		delta := 1
		if k == KeyUp {
			delta = -1
		}
		in.focus(panel.Select(delta))
	case KeyLeft, KeyRight, KeyPageUp, KeyPageDown:
		if panel == nil {
			return
		}
		if k == KeyPageUp || k == KeyPageDown {
			steps *= 10
		}
		if k == KeyLeft || k == KeyPageDown {
			steps = -steps
		}
		if _, ok := panel.Nudge(steps); ok {
			in.focus(panel.Selected())
		}
	case KeyF2:
		if panel != nil && in.OnSnapshot != nil {
			in.OnSnapshot(panel.Snapshot())
		}
	case KeyEscape:
		if in.OnQuit != nil {
			in.OnQuit()
		}
	}
}

func (in *Input) focus(b *DebugBinding) {
	if b != nil && in.OnFocus != nil {
		in.OnFocus(b)
	}
}

// MouseButton tracks the rotate drag of the primary button.
func (in *Input) MouseButton(pressed bool, x, y float64) {
	in.dragging = pressed
	in.lastX, in.lastY = x, y
}

func (in *Input) CursorMoved(x, y float64) {
	dx, dy := x-in.lastX, y-in.lastY
	in.lastX, in.lastY = x, y
	if !in.dragging {
		return
	}
	if oc := in.orbit(); oc != nil {
		oc.Rotate(dx, dy)
	}
}

// Scrolled feeds wheel input; positive is away from the user (zoom in).
func (in *Input) Scrolled(dy float64) {
	if oc := in.orbit(); oc != nil {
		oc.Dolly(dy)
	}
}

// InputModule provides the Input resource. Install it after the panel and
// the controls.
type InputModule struct{}

func (InputModule) Install(app *App, cmd *Commands) error {
	cmd.AddResources(NewInput(app.ctx))
	return nil
}
