package lightlab

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultRig(t *testing.T) *LightRig {
	t.Helper()
	rig, err := BuildLightRig(DefaultLightSpecs())
	require.NoError(t, err)
	return rig
}

func helperOf(t *testing.T, rig *LightRig, name string) *LightHelper {
	t.Helper()
	l, ok := rig.Light(name)
	require.True(t, ok, name)
	h, ok := rig.HelperFor(l)
	require.True(t, ok, name)
	return h
}

func TestNewLightHelper(t *testing.T) {
	_, err := NewLightHelper(nil, 1)
	assert.ErrorIs(t, err, ErrNilEntity)

	ambient, err := NewLight(LightSpec{Name: "a", Kind: LightAmbient, Intensity: 1})
	require.NoError(t, err)
	_, err = NewLightHelper(ambient, 1)
	assert.ErrorIs(t, err, ErrInvalidLightSpec)

	rig := defaultRig(t)
	assert.Equal(t, 1.0, helperOf(t, rig, "rectArea").Size, "missing size falls back to 1")
	assert.Equal(t, 0.2, helperOf(t, rig, "point").Size)
	assert.Equal(t, "point.helper", helperOf(t, rig, "point").Name)
}

func TestLightHelper_Geometry(t *testing.T) {
	rig := defaultRig(t)

	point := helperOf(t, rig, "point")
	require.Len(t, point.Gizmos, 1)
	assert.Equal(t, GizmoSphere, point.Gizmos[0].Type)
	assert.Equal(t, 0.2, point.Gizmos[0].Radius)
	assert.Equal(t, mgl64.Vec3{1, -0.5, 1}, point.Gizmos[0].Position)

	dir := helperOf(t, rig, "directional")
	require.Len(t, dir.Gizmos, 2)
	assert.Equal(t, GizmoRect, dir.Gizmos[0].Type)
	assert.Equal(t, GizmoLine, dir.Gizmos[1].Type)
	assert.Equal(t, mgl64.Vec3{}, dir.Gizmos[1].LineEnd)

	hemi := helperOf(t, rig, "hemisphere")
	require.Len(t, hemi.Gizmos, 2)
	assert.Equal(t, Color{1, 0, 0}, hemi.Gizmos[0].Color)
	assert.Equal(t, Color{0, 0, 1}, hemi.Gizmos[1].Color)
	assert.Greater(t, hemi.Gizmos[0].Position.Y(), hemi.Gizmos[1].Position.Y())

	rect := helperOf(t, rig, "rectArea")
	require.Len(t, rect.Gizmos, 1)
	l, _ := rig.Light("rectArea")
	assert.Equal(t, l.(*RectAreaLight).Orientation, rect.Gizmos[0].Rotation)
	assert.Equal(t, mgl64.Vec3{1, 1, 1}, rect.Gizmos[0].Scale)

	spot := helperOf(t, rig, "spot")
	require.Len(t, spot.Gizmos, 1)
	cone := spot.Gizmos[0]
	assert.Equal(t, GizmoCone, cone.Type)
	assert.InDelta(t, 19*math.Tan(0.1*math.Pi), cone.Radius, 1e-9)
	assertVecNear(t, mgl64.Vec3{0, 2, 3}, cone.Position)
	assert.InDelta(t, 19, cone.LineEnd.Sub(cone.Position).Len(), 1e-9)
}

func TestLightHelper_SpotConeStaysFinite(t *testing.T) {
	l, err := NewLight(LightSpec{Name: "wide", Kind: LightSpot, Intensity: 1, Angle: math.Pi, Position: mgl64.Vec3{0, 1, 0}})
	require.NoError(t, err)
	h, err := NewLightHelper(l, 1)
	require.NoError(t, err)

	cone := h.Gizmos[0]
	assert.False(t, math.IsInf(cone.Radius, 0) || math.IsNaN(cone.Radius))
	assert.InDelta(t, 1, cone.LineEnd.Sub(cone.Position).Len(), 1e-9, "zero distance draws a unit cone")
}

func TestLightHelper_Sync(t *testing.T) {
	rig := defaultRig(t)
	h := helperOf(t, rig, "spot")
	assert.Equal(t, 1, h.Revision)

	assert.False(t, h.Sync(), "nothing changed")
	assert.Equal(t, 1, h.Revision)

	l, _ := rig.Light("spot")
	spot := l.(*SpotLight)
	spot.Angle = 0.2
	assert.True(t, h.Sync())
	assert.Equal(t, 2, h.Revision)
	assert.InDelta(t, 19*math.Tan(0.2), h.Gizmos[0].Radius, 1e-9)

	spot.Position = mgl64.Vec3{1, 2, 3}
	assert.True(t, h.Sync())
	assert.Equal(t, spot.Position, h.Position)
}

func TestHelperSyncSystem(t *testing.T) {
	app, err := NewAppBuilder().UseModule(LightRigModule{}, HelperSyncModule{}).Build()
	require.NoError(t, err)
	rig, _ := Resource[LightRig](app)

	l, _ := rig.Light("point")
	l.Base().Position = mgl64.Vec3{0, 3, 0}
	require.NoError(t, app.RunFrame())

	h := helperOf(t, rig, "point")
	assert.Equal(t, 2, h.Revision)
	assert.Equal(t, mgl64.Vec3{0, 3, 0}, h.Gizmos[0].Position)
	assert.Equal(t, 1, helperOf(t, rig, "spot").Revision)
}

func TestHelperSyncModule_RunsAfterPostUpdate(t *testing.T) {
	app, err := NewAppBuilder().UseModule(LightRigModule{}, HelperSyncModule{}).Build()
	require.NoError(t, err)
	rig, _ := Resource[LightRig](app)
	l, _ := rig.Light("spot")

	// Registered after the helper module, still seen in the same tick.
	app.UseSystem(System(func() {
		l.Base().Position = mgl64.Vec3{2, 2, 2}
	}).InStage(PostUpdate))
	require.NoError(t, app.RunFrame())

	assert.Equal(t, mgl64.Vec3{2, 2, 2}, helperOf(t, rig, "spot").Position)

	stageNames := make([]string, 0, len(app.stages))
	for _, s := range app.stages {
		stageNames = append(stageNames, s.Name)
	}
	assert.Equal(t, []string{"Prelude", "PreUpdate", "Update", "PostUpdate", "SyncHelpers", "PreRender", "Render", "PostRender", "Finale"}, stageNames)
}

func TestAxesHelper(t *testing.T) {
	a := NewAxesHelper(2)
	require.Len(t, a.Gizmos, 3)
	assert.Equal(t, mgl64.Vec3{2, 0, 0}, a.Gizmos[0].LineEnd)
	assert.Equal(t, Color{0, 1, 0}, a.Gizmos[1].Color)
	assert.Equal(t, mgl64.Vec3{0, 0, 2}, a.Gizmos[2].LineEnd)
}
