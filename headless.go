package lightlab

// HeadlessDisplay is a fixed-size Display for running without a window.
type HeadlessDisplay struct {
	Width, Height int
	Ratio         float64
}

func (d *HeadlessDisplay) Size() (int, int) { return d.Width, d.Height }

func (d *HeadlessDisplay) PixelRatio() float64 { return d.Ratio }

// HeadlessSurface records what the viewport manager asks of it.
type HeadlessSurface struct {
	Width, Height int
	PixelRatio    float64
	Resizes       int
}

func (s *HeadlessSurface) SetSize(width, height int) {
	s.Width, s.Height = width, height
	s.Resizes++
}

func (s *HeadlessSurface) SetPixelRatio(ratio float64) { s.PixelRatio = ratio }

// LogRenderer draws nothing. Every Every frames it logs what a real
// renderer would have been handed.
type LogRenderer struct {
	Logger Logger
	Every  uint64

	frames uint64
}

func (r *LogRenderer) Render(graph *SceneGraph, cam *PerspectiveCamera) error {
	r.frames++
	if r.Logger == nil || r.Every == 0 || r.frames%r.Every != 0 {
		return nil
	}
	s := SummarizeLighting(graph)
	r.Logger.Infof("frame %d: %d entities, %d lights, ambient (%.3f %.3f %.3f), camera at %.2v aspect %.3f",
		r.frames, graph.Len(), s.Lights, s.Ambient.R, s.Ambient.G, s.Ambient.B, cam.Position, cam.Aspect)
	return nil
}

func (r *LogRenderer) Frames() uint64 { return r.frames }
