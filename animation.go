package lightlab

// AnimationModule drives every spinning body from elapsed time.
type AnimationModule struct{}

func (AnimationModule) Install(app *App, cmd *Commands) error {
	app.UseSystem(
		System(spinSystem).
			InStage(Update),
	)
	return nil
}

// ApplySpin sets the body's rotation as a pure function of t, independent
// of how many frames have run.
func ApplySpin(b *Body, t float64) {
	if b.Spin == nil {
		return
	}
	b.Rotation.X = b.Spin.X * t
	b.Rotation.Y = b.Spin.Y * t
}

func spinSystem(graph *SceneGraph, ft *FrameTime) {
	MakeQuery[*Body](graph).Map(func(_ EntityId, b *Body) bool {
		ApplySpin(b, ft.Elapsed)
		return true
	})
}
