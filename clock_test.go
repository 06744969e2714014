package lightlab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualClock(t *testing.T) {
	c := &ManualClock{}
	assert.Equal(t, 0.0, c.Elapsed())

	c.Advance(0.5)
	c.Advance(-1)
	assert.Equal(t, 0.5, c.Elapsed())

	c.Set(2)
	c.Set(1)
	assert.Equal(t, 2.0, c.Elapsed(), "never goes backwards")
}

func TestSystemClock(t *testing.T) {
	c := NewSystemClock()
	a := c.Elapsed()
	b := c.Elapsed()
	assert.GreaterOrEqual(t, a, 0.0)
	assert.GreaterOrEqual(t, b, a)
}

func TestTimeModule(t *testing.T) {
	clock := &ManualClock{}
	app, err := NewAppBuilder().UseModule(TimeModule{Clock: clock}).Build()
	require.NoError(t, err)
	ft, ok := Resource[FrameTime](app)
	require.True(t, ok)

	clock.Set(0.25)
	require.NoError(t, app.RunFrame())
	assert.Equal(t, FrameTime{Elapsed: 0.25, Delta: 0.25, Frame: 1}, *ft)

	clock.Advance(0.5)
	require.NoError(t, app.RunFrame())
	assert.Equal(t, FrameTime{Elapsed: 0.75, Delta: 0.5, Frame: 2}, *ft)

	require.NoError(t, app.RunFrame())
	assert.Equal(t, 0.0, ft.Delta)
	assert.Equal(t, uint64(3), ft.Frame)
}

func TestTimeModule_DefaultsToSystemClock(t *testing.T) {
	app, err := NewAppBuilder().UseModule(TimeModule{}).Build()
	require.NoError(t, err)
	_, ok := app.Context().Clock.(*SystemClock)
	assert.True(t, ok)
}
