package lightlab

import (
	"fmt"
)

// DefaultMaxPixelRatio bounds render cost on dense displays.
const DefaultMaxPixelRatio = 2.0

type Viewport struct {
	Width      int
	Height     int
	PixelRatio float64
}

func (v Viewport) Aspect() float64 {
	return float64(v.Width) / float64(v.Height)
}

// Display is the host window as seen by the viewport manager.
type Display interface {
	Size() (width, height int)
	PixelRatio() float64
}

// ViewportManager keeps camera aspect and output surface size in step with
// the host window.
type ViewportManager struct {
	ctx           *SceneContext
	display       Display
	surface       Surface
	maxPixelRatio float64
	viewport      Viewport
}

func NewViewportManager(ctx *SceneContext, display Display, surface Surface, maxPixelRatio float64) (*ViewportManager, error) {
	if ctx.Camera == nil {
		return nil, fmt.Errorf("viewport needs a camera: %w", ErrMissingResource)
	}
	if display == nil || surface == nil {
		return nil, fmt.Errorf("viewport needs a display and a surface: %w", ErrMissingResource)
	}
	if maxPixelRatio <= 0 {
		maxPixelRatio = DefaultMaxPixelRatio
	}
	vm := &ViewportManager{
		ctx:           ctx,
		display:       display,
		surface:       surface,
		maxPixelRatio: maxPixelRatio,
	}
	w, h := display.Size()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("initial window size %dx%d: %w", w, h, ErrInvalidConfig)
	}
	vm.Resize(w, h)
	ctx.Viewport = &vm.viewport
	return vm, nil
}

func (vm *ViewportManager) Viewport() Viewport { return vm.viewport }

// Resize handles a host resize notification. Sizes that would give a
// degenerate aspect (a minimized window) are ignored.
func (vm *ViewportManager) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		vm.ctx.Logger.Debugf("viewport: ignoring resize to %dx%d", width, height)
		return
	}
	vm.viewport.Width = width
	vm.viewport.Height = height
	ratio := vm.display.PixelRatio()
	if ratio <= 0 {
		ratio = 1
	}
	vm.viewport.PixelRatio = min(ratio, vm.maxPixelRatio)

	cam := vm.ctx.Camera
	cam.Aspect = vm.viewport.Aspect()
	cam.UpdateProjectionMatrix()

	vm.surface.SetSize(width, height)
	vm.surface.SetPixelRatio(vm.viewport.PixelRatio)
	vm.ctx.Logger.Debugf("viewport: %dx%d @%.2f aspect %.4f", width, height, vm.viewport.PixelRatio, cam.Aspect)
}

type ViewportModule struct {
	Display       Display
	Surface       Surface
	MaxPixelRatio float64
}

func (m ViewportModule) Install(app *App, cmd *Commands) error {
	vm, err := NewViewportManager(app.ctx, m.Display, m.Surface, m.MaxPixelRatio)
	if err != nil {
		return err
	}
	cmd.AddResources(vm)
	return nil
}
