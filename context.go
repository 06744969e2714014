package lightlab

// SceneContext bundles the state one scene's components share. Each scene
// has its own; nothing here is global.
type SceneContext struct {
	Graph    *SceneGraph
	Camera   *PerspectiveCamera
	Viewport *Viewport
	Clock    Clock
	Controls Controls
	Renderer Renderer
	Panel    *DebugPanel
	Logger   Logger
}

func NewSceneContext() *SceneContext {
	return &SceneContext{
		Graph:  NewSceneGraph(),
		Logger: NewNopLogger(),
	}
}
