package lightlab

import (
	"fmt"
)

// Renderer draws one frame of graph as seen by cam.
type Renderer interface {
	Render(graph *SceneGraph, cam *PerspectiveCamera) error
}

// Surface is the output surface the renderer draws into.
type Surface interface {
	SetSize(width, height int)
	SetPixelRatio(ratio float64)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(graph *SceneGraph, cam *PerspectiveCamera) error

func (f RendererFunc) Render(graph *SceneGraph, cam *PerspectiveCamera) error {
	return f(graph, cam)
}

// RenderModule installs the scene's only renderer and the render system.
type RenderModule struct {
	Renderer Renderer
}

func (m RenderModule) Install(app *App, cmd *Commands) error {
	if m.Renderer == nil {
		return fmt.Errorf("render module: no renderer: %w", ErrMissingResource)
	}
	if app.ctx.Renderer != nil {
		app.Logger().Errorf("Multiple renderers installed: %T and %T", app.ctx.Renderer, m.Renderer)
		return fmt.Errorf("%T over %T: %w", m.Renderer, app.ctx.Renderer, ErrRendererInstalled)
	}
	if app.ctx.Camera == nil {
		return fmt.Errorf("render module needs a camera: %w", ErrMissingResource)
	}
	app.ctx.Renderer = m.Renderer
	app.UseSystem(
		System(renderSystem).
			InStage(Render),
	)
	return nil
}

// renderSystem failures are fatal to the loop; there is no retry.
func renderSystem(ctx *SceneContext, ft *FrameTime) error {
	if err := ctx.Renderer.Render(ctx.Graph, ctx.Camera); err != nil {
		return fmt.Errorf("render frame %d: %w", ft.Frame, err)
	}
	return nil
}

// LightingSummary is the flattened lighting set a renderer consumes.
// Helpers never contribute.
type LightingSummary struct {
	Ambient Color
	Lights  int
}

// SummarizeLighting folds uniform contributions (ambient and the hemisphere
// average) and counts every light of graph.
func SummarizeLighting(graph *SceneGraph) LightingSummary {
	var s LightingSummary
	for l := range graph.Lights() {
		s.Lights++
		b := l.Base()
		switch l := l.(type) {
		case *AmbientLight:
			s.Ambient = s.Ambient.Add(b.Color.Scale(b.Intensity))
		case *HemisphereLight:
			mix := b.Color.Add(l.GroundColor).Scale(0.5)
			s.Ambient = s.Ambient.Add(mix.Scale(b.Intensity))
		}
	}
	return s
}
