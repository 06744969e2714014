package lightlab

// Commands is the handle modules and systems use to change the app.
type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

// AddEntity inserts entities into the scene graph immediately.
func (cmd *Commands) AddEntity(entities ...Entity) error {
	return cmd.app.ctx.Graph.InsertAll(entities...)
}

func (cmd *Commands) Graph() *SceneGraph { return cmd.app.ctx.Graph }

func (cmd *Commands) Context() *SceneContext { return cmd.app.ctx }
