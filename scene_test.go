package lightlab

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type demoFixture struct {
	app      *App
	clock    *ManualClock
	display  *HeadlessDisplay
	surface  *HeadlessSurface
	renderer *LogRenderer
}

func newDemoFixture(t *testing.T) *demoFixture {
	t.Helper()
	f := &demoFixture{
		clock:    &ManualClock{},
		display:  &HeadlessDisplay{Width: 800, Height: 600, Ratio: 1},
		surface:  &HeadlessSurface{},
		renderer: &LogRenderer{},
	}
	app, err := NewDemoApp(DefaultConfig(), Host{
		Display:  f.display,
		Surface:  f.surface,
		Renderer: f.renderer,
		Clock:    f.clock,
		Logger:   NewNopLogger(),
	})
	require.NoError(t, err)
	f.app = app
	return f
}

func TestNewDemoApp_Scene(t *testing.T) {
	f := newDemoFixture(t)
	ctx := f.app.Context()

	// Six lights, the spot target, five helpers, four bodies, axes and camera.
	assert.Equal(t, 18, ctx.Graph.Len())
	assert.Equal(t, 6, MakeQuery[Light](ctx.Graph).Count())
	assert.Equal(t, 5, MakeQuery[*LightHelper](ctx.Graph).Count())
	assert.Equal(t, 4, MakeQuery[*Body](ctx.Graph).Count())
	assert.Equal(t, 1, MakeQuery[*AxesHelper](ctx.Graph).Count())
	assert.Equal(t, 1, MakeQuery[*PerspectiveCamera](ctx.Graph).Count())

	require.NotNil(t, ctx.Camera)
	require.NotNil(t, ctx.Viewport)
	require.NotNil(t, ctx.Panel)
	assert.Len(t, ctx.Panel.Bindings(), 11)
	assert.Same(t, f.renderer, ctx.Renderer)
	assert.InDelta(t, 800.0/600.0, ctx.Camera.Aspect, 1e-12)

	for e := range ctx.Graph.Traverse() {
		assert.Equal(t, ctx.Graph.ID(), e.Object().Graph(), e.Object().Name)
	}
}

func TestNewDemoApp_SeparateScenes(t *testing.T) {
	a := newDemoFixture(t)
	b := newDemoFixture(t)
	assert.NotEqual(t, a.app.Context().Graph.ID(), b.app.Context().Graph.ID())

	_, err := a.app.Context().Panel.Set("Point Light Intensity", 3)
	require.NoError(t, err)
	pa, _ := MakeQuery[*PointLight](a.app.Context().Graph).First()
	pb, _ := MakeQuery[*PointLight](b.app.Context().Graph).First()
	assert.Equal(t, 3.0, pa.Intensity)
	assert.Equal(t, 1.5, pb.Intensity, "scenes share no state")
}

func TestNewDemoApp_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Roughness = 2
	_, err := NewDemoApp(cfg, Host{
		Display:  &HeadlessDisplay{Width: 800, Height: 600, Ratio: 1},
		Surface:  &HeadlessSurface{},
		Renderer: &LogRenderer{},
	})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewDemoApp(DefaultConfig(), Host{
		Display: &HeadlessDisplay{Width: 800, Height: 600, Ratio: 1},
		Surface: &HeadlessSurface{},
		Logger:  NewNopLogger(),
	})
	assert.ErrorIs(t, err, ErrMissingResource, "no renderer")
}

func TestDemoApp_Frames(t *testing.T) {
	f := newDemoFixture(t)
	queue := NewFrameQueue()
	loop := f.app.Start(queue)
	require.Same(t, loop, f.app.Loop())

	f.clock.Set(10)
	for i := 0; i < 3; i++ {
		require.NoError(t, queue.Fire())
	}
	assert.Equal(t, uint64(3), loop.Ticks())
	assert.Equal(t, uint64(3), f.renderer.Frames())
	assert.Equal(t, LoopScheduled, loop.State())

	set, ok := Resource[ObjectSet](f.app)
	require.True(t, ok)
	assert.InDelta(t, 1.0, set.Cube.Rotation.Y, 1e-9)
	assert.InDelta(t, 1.5, set.Cube.Rotation.X, 1e-9)

	// Resizes between frames reach the camera.
	vm, ok := Resource[ViewportManager](f.app)
	require.True(t, ok)
	vm.Resize(1024, 768)
	require.NoError(t, queue.Fire())
	assert.InDelta(t, 1024.0/768.0, f.app.Context().Camera.Aspect, 1e-12)

	loop.Stop()
	require.NoError(t, queue.Fire())
	assert.Equal(t, LoopStopped, loop.State())
	assert.Equal(t, uint64(4), loop.Ticks())
}

func TestDemoApp_RenderFailureStopsLoop(t *testing.T) {
	lost := errors.New("surface lost")
	calls := 0
	renderer := RendererFunc(func(graph *SceneGraph, cam *PerspectiveCamera) error {
		calls++
		if calls == 3 {
			return lost
		}
		return nil
	})
	app, err := NewDemoApp(DefaultConfig(), Host{
		Display:  &HeadlessDisplay{Width: 800, Height: 600, Ratio: 1},
		Surface:  &HeadlessSurface{},
		Renderer: renderer,
		Clock:    &ManualClock{},
		Logger:   NewNopLogger(),
	})
	require.NoError(t, err)

	queue := NewFrameQueue()
	loop := app.Start(queue)
	require.NoError(t, queue.Fire())
	require.NoError(t, queue.Fire())

	err = queue.Fire()
	require.ErrorIs(t, err, lost)
	assert.Contains(t, err.Error(), "render frame 3")
	assert.Equal(t, LoopFailed, loop.State())
	assert.False(t, queue.Pending())
}
