package lightlab

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Host is what a platform provides to run the demo scene.
type Host struct {
	Display  Display
	Surface  Surface
	Renderer Renderer
	Clock    Clock
	Logger   Logger
}

// DemoModules lists the modules of the lights demo in installation order.
// Order matters: the panel binds to the rig, controls and the viewport
// need the camera, the renderer comes last.
func DemoModules(cfg Config, host Host) []Module {
	modules := []Module{}
	if host.Logger == nil {
		modules = append(modules, LoggingModule{Prefix: "lightlab", Debug: cfg.Debug})
	} else {
		modules = append(modules, loggerModule{host.Logger})
	}
	modules = append(modules,
		TimeModule{Clock: host.Clock},
		LightRigModule{Specs: DefaultLightSpecs()},
		DebugPanelModule{Specs: DefaultBindingSpecs()},
		ObjectSetModule{Roughness: cfg.Roughness},
		AxesModule{Size: cfg.AxesSize},
		CameraModule{
			FOV:      cfg.Camera.FOV,
			Near:     cfg.Camera.Near,
			Far:      cfg.Camera.Far,
			Position: cfg.Camera.position(),
			LookAt:   mgl64.Vec3{},
		},
		OrbitControlsModule{
			Damping:       cfg.Controls.Damping,
			DampingFactor: cfg.Controls.DampingFactor,
		},
		ViewportModule{
			Display:       host.Display,
			Surface:       host.Surface,
			MaxPixelRatio: cfg.MaxPixelRatio,
		},
		InputModule{},
		AnimationModule{},
		HelperSyncModule{},
		RenderModule{Renderer: host.Renderer},
	)
	return modules
}

// NewDemoApp builds the complete lights scene.
func NewDemoApp(cfg Config, host Host) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	app, err := NewAppBuilder().UseModule(DemoModules(cfg, host)...).Build()
	if err != nil {
		return nil, err
	}
	ctx := app.Context()
	ctx.Logger.Infof("scene ready: %d entities", ctx.Graph.Len())
	return app, nil
}

type loggerModule struct {
	logger Logger
}

func (m loggerModule) Install(app *App, cmd *Commands) error {
	app.ctx.Logger = m.logger
	return nil
}
