package lightlab

type AppBuilder struct {
	app     *App
	modules []Module
}

func NewAppBuilder() *AppBuilder {
	return &AppBuilder{app: NewApp()}
}

func (b *AppBuilder) UseModule(modules ...Module) *AppBuilder {
	b.modules = append(b.modules, modules...)
	return b
}

// Build installs the modules in order and checks that every scheduled
// system can be wired. Any failure aborts scene construction.
func (b *AppBuilder) Build() (*App, error) {
	app := b.app
	if err := app.UseModules(b.modules...); err != nil {
		return nil, err
	}
	if err := app.validateSystems(); err != nil {
		return nil, err
	}
	return app, nil
}
