package lightlab

import (
	"fmt"
	"reflect"
	"runtime"
)

type systemFn any

// Module contributes entities, resources and systems to an App.
type Module interface {
	Install(app *App, cmd *Commands) error
}

type App struct {
	stages    []Stage
	systems   map[string][]systemFn
	resources map[reflect.Type]any
	ctx       *SceneContext
	loop      *AnimationLoop
}

func NewApp() *App {
	app := &App{
		stages:    defaultStages(),
		systems:   make(map[string][]systemFn),
		resources: make(map[reflect.Type]any),
		ctx:       NewSceneContext(),
	}
	for _, s := range app.stages {
		app.systems[s.Name] = make([]systemFn, 0)
	}
	app.addResources(app.ctx, app.ctx.Graph)
	return app
}

func (app *App) Context() *SceneContext { return app.ctx }

// Commands returns a command handle bound to this app.
func (app *App) Commands() *Commands {
	return &Commands{app: app}
}

// UseModules installs modules in order and stops at the first error.
func (app *App) UseModules(modules ...Module) error {
	cmd := app.Commands()
	for _, m := range modules {
		if err := m.Install(app, cmd); err != nil {
			return fmt.Errorf("install %T: %w", m, err)
		}
	}
	return nil
}

// RunFrame runs every stage once. It is the body of one animation tick.
func (app *App) RunFrame() error {
	for _, stage := range app.stages {
		for _, system := range app.systems[stage.Name] {
			if err := app.callSystem(system); err != nil {
				return fmt.Errorf("%s: %w", stage.Name, err)
			}
		}
	}
	return nil
}

// Start hands the frame loop to scheduler and requests the first frame.
func (app *App) Start(scheduler FrameScheduler) *AnimationLoop {
	app.loop = NewAnimationLoop(app.ctx, scheduler, app.RunFrame)
	app.loop.Start()
	return app.loop
}

func (app *App) Loop() *AnimationLoop { return app.loop }

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if resourceType.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("%s is not a pointer resource", resourceType))
		}
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// Resource fetches a resource by type.
func Resource[T any](app *App) (*T, bool) {
	r, ok := app.resources[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	return r.(*T), true
}

var (
	typeOfCommands = reflect.TypeOf(Commands{})
	typeOfError    = reflect.TypeOf((*error)(nil)).Elem()
)

// validateSystems checks that every system parameter can be resolved.
func (app *App) validateSystems() error {
	for _, stage := range app.stages {
		for _, system := range app.systems[stage.Name] {
			if err := app.checkSystem(system); err != nil {
				return err
			}
		}
	}
	return nil
}

func (app *App) checkSystem(system systemFn) error {
	systemType := reflect.TypeOf(system)
	if systemType == nil || systemType.Kind() != reflect.Func {
		return fmt.Errorf("system %v is not a function", system)
	}
	name := runtime.FuncForPC(reflect.ValueOf(system).Pointer()).Name()
	switch systemType.NumOut() {
	case 0:
	case 1:
		if systemType.Out(0) != typeOfError {
			return fmt.Errorf("system %s returns %s, want error", name, systemType.Out(0))
		}
	default:
		return fmt.Errorf("system %s returns %d values", name, systemType.NumOut())
	}
	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		if argType.Kind() != reflect.Pointer {
			return fmt.Errorf("system %s: argument %s is not a pointer", name, argType)
		}
		if argType.Elem() == typeOfCommands {
			continue
		}
		if _, ok := app.resources[argType.Elem()]; !ok {
			return fmt.Errorf("unable to resolve system dependency %s of %s: %w", argType, name, ErrMissingResource)
		}
	}
	return nil
}

func (app *App) callSystem(system systemFn) error {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())
	for i := 0; i < systemType.NumIn(); i++ {
		underlyingType := systemType.In(i).Elem()

		if underlyingType == typeOfCommands {
			args[i] = reflect.ValueOf(&Commands{app: app})
		} else if resource, ok := app.resources[underlyingType]; ok {
			args[i] = reflect.ValueOf(resource)
		} else {
			panic(fmt.Sprintf("Unable to resolve System dependency %s of %s",
				systemType.In(i),
				runtime.FuncForPC(systemValue.Pointer()).Name(),
			))
		}
	}

	out := systemValue.Call(args)
	if len(out) == 1 && !out[0].IsNil() {
		return out[0].Interface().(error)
	}
	return nil
}
