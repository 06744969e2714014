package lightlab

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplySpin(t *testing.T) {
	set, err := NewObjectSet(0.4)
	require.NoError(t, err)

	for _, b := range set.Bodies() {
		ApplySpin(b, 10)
	}
	for _, b := range set.Animated() {
		assert.InDelta(t, 1.0, b.Rotation.Y, 1e-9, b.Name)
		assert.InDelta(t, 1.5, b.Rotation.X, 1e-9, b.Name)
	}
	assert.Equal(t, -math.Pi/2, set.Plane.Rotation.X, "plane keeps its fixed tilt")
	assert.Equal(t, 0.0, set.Plane.Rotation.Y)

	ApplySpin(set.Cube, 0)
	assert.Equal(t, Euler{}, set.Cube.Rotation)
}

func TestAnimation_DependsOnTimeNotFrames(t *testing.T) {
	clock := &ManualClock{}
	app, err := NewAppBuilder().UseModule(
		TimeModule{Clock: clock},
		ObjectSetModule{Roughness: 0.4},
		AnimationModule{},
	).Build()
	require.NoError(t, err)
	set, _ := Resource[ObjectSet](app)

	clock.Set(10)
	require.NoError(t, app.RunFrame())
	once := set.Cube.Rotation

	for i := 0; i < 5; i++ {
		require.NoError(t, app.RunFrame())
	}
	assert.Equal(t, once, set.Cube.Rotation)
	assert.InDelta(t, 1.0, set.Cube.Rotation.Y, 1e-9)
	assert.InDelta(t, 1.5, set.Cube.Rotation.X, 1e-9)
	assert.InDelta(t, 1.0, set.Torus.Rotation.Y, 1e-9)
	assert.InDelta(t, 1.5, set.Sphere.Rotation.X, 1e-9)
}

func TestObjectSet(t *testing.T) {
	set, err := NewObjectSet(0.4)
	require.NoError(t, err)

	for _, b := range set.Bodies() {
		assert.Same(t, set.Material, b.Material, "%s shares the material", b.Name)
	}
	set.Material.Roughness = 0.9
	assert.Equal(t, 0.9, set.Torus.Material.Roughness)

	assert.Equal(t, ShapeSphere, set.Sphere.Geometry.Kind)
	assert.Equal(t, [2]int{32, 64}, set.Torus.Geometry.Segments)
	assert.Equal(t, -1.5, set.Sphere.Position.X())
	assert.Equal(t, 1.5, set.Torus.Position.X())
	assert.Equal(t, -0.65, set.Plane.Position.Y())
	assert.Nil(t, set.Plane.Spin)
	assert.NotSame(t, set.Cube.Spin, set.Torus.Spin)

	_, err = NewObjectSet(1.5)
	assert.ErrorIs(t, err, ErrInvalidBody)
}

func TestGeometry_Validate(t *testing.T) {
	assert.NoError(t, BoxGeometry(1, 1, 1).Validate())
	assert.NoError(t, PlaneGeometry(5, 5).Validate())
	assert.ErrorIs(t, SphereGeometry(0.5, 0, 32).Validate(), ErrInvalidBody)
	assert.ErrorIs(t, BoxGeometry(-1, 1, 1).Validate(), ErrInvalidBody)
	assert.ErrorIs(t, TorusGeometry(math.NaN(), 0.2, 8, 8).Validate(), ErrInvalidBody)
	assert.ErrorIs(t, Geometry{Kind: ShapeKind(9)}.Validate(), ErrInvalidBody)

	_, err := NewBody("b", BoxGeometry(1, 1, 1), nil)
	assert.ErrorIs(t, err, ErrInvalidBody)
}
