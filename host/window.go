// Package host runs a lightlab scene in a desktop window.
package host

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/gekko3d/lightlab"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var keyFromGlfw = map[glfw.Key]lightlab.Key{
	glfw.KeyUp:       lightlab.KeyUp,
	glfw.KeyDown:     lightlab.KeyDown,
	glfw.KeyLeft:     lightlab.KeyLeft,
	glfw.KeyRight:    lightlab.KeyRight,
	glfw.KeyPageUp:   lightlab.KeyPageUp,
	glfw.KeyPageDown: lightlab.KeyPageDown,
	glfw.KeyF2:       lightlab.KeyF2,
	glfw.KeyEscape:   lightlab.KeyEscape,
}

// Window is a GLFW window without a client API; wgpu draws into it.
// It must be created and driven from the main OS thread.
type Window struct {
	win    *glfw.Window
	title  string
	logger lightlab.Logger

	// SnapshotDir receives panel PNGs on F2. Empty means the working directory.
	SnapshotDir string
}

func OpenWindow(cfg lightlab.WindowConfig, logger lightlab.Logger) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	if logger == nil {
		logger = lightlab.NewNopLogger()
	}
	return &Window{win: win, title: cfg.Title, logger: logger}, nil
}

// Size is the content area in screen coordinates.
func (w *Window) Size() (int, int) {
	return w.win.GetSize()
}

func (w *Window) PixelRatio() float64 {
	sx, _ := w.win.GetContentScale()
	return float64(sx)
}

// Attach routes window events into app. The app must have the viewport
// and input modules installed.
func (w *Window) Attach(app *lightlab.App) error {
	vm, ok := lightlab.Resource[lightlab.ViewportManager](app)
	if !ok {
		return fmt.Errorf("attach window: viewport manager: %w", lightlab.ErrMissingResource)
	}
	input, ok := lightlab.Resource[lightlab.Input](app)
	if !ok {
		return fmt.Errorf("attach window: input: %w", lightlab.ErrMissingResource)
	}

	input.OnFocus = w.showBinding
	input.OnQuit = func() { w.win.SetShouldClose(true) }
	input.OnSnapshot = func(img *image.RGBA) {
		path, err := w.writeSnapshot(img)
		if err != nil {
			w.logger.Errorf("panel snapshot: %v", err)
			return
		}
		w.logger.Infof("panel snapshot written to %s", path)
	}
	if panel := app.Context().Panel; panel != nil {
		w.showBinding(panel.Selected())
	}

	// Fires for window resizes and for content scale changes, so Resize runs
	// once per change and re-reads the pixel ratio.
	w.win.SetFramebufferSizeCallback(func(win *glfw.Window, _, _ int) {
		vm.Resize(win.GetSize())
	})
	w.win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press && action != glfw.Repeat {
			return
		}
		if k, ok := keyFromGlfw[key]; ok {
			input.KeyPressed(k, mods&glfw.ModShift != 0)
		}
	})
	w.win.SetMouseButtonCallback(func(win *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		x, y := win.GetCursorPos()
		input.MouseButton(action == glfw.Press, x, y)
	})
	w.win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		input.CursorMoved(x, y)
	})
	w.win.SetScrollCallback(func(_ *glfw.Window, _, dy float64) {
		input.Scrolled(dy)
	})
	return nil
}

func (w *Window) showBinding(b *lightlab.DebugBinding) {
	if b == nil {
		return
	}
	w.win.SetTitle(fmt.Sprintf("%s | %s: %.2f", w.title, b.Label, b.Value()))
}

func (w *Window) writeSnapshot(img *image.RGBA) (string, error) {
	name := fmt.Sprintf("panel-%s.png", time.Now().Format("20060102-150405"))
	path := filepath.Join(w.SnapshotDir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

// Run pumps window events and fires one frame per iteration until the
// window closes or the loop ends. A failed tick is returned.
func (w *Window) Run(queue *lightlab.FrameQueue, loop *lightlab.AnimationLoop) error {
	for !w.win.ShouldClose() {
		glfw.PollEvents()
		if err := queue.Fire(); err != nil {
			return err
		}
		switch loop.State() {
		case lightlab.LoopStopped:
			return nil
		case lightlab.LoopFailed:
			return loop.Err()
		}
	}
	loop.Stop()
	return nil
}

func (w *Window) Close() {
	w.win.Destroy()
	glfw.Terminate()
}
