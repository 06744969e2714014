package lightlab

import (
	"fmt"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

type GizmoType int

const (
	GizmoLine GizmoType = iota
	GizmoSphere
	GizmoRect   // Wireframe rectangle
	GizmoCircle // Wireframe circle
	GizmoCone   // Wireframe cone, apex at Position, base centered on LineEnd
)

// Gizmo is one wireframe primitive of a helper. Helpers are purely visual.
type Gizmo struct {
	Type  GizmoType
	Color Color

	// For Sphere, Rect, Circle: Position is the center. Scale sizes Rect.
	// For Line and Cone: Position is the start/apex.
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3

	LineEnd mgl64.Vec3
	Radius  float64
}

func NewGizmoLine(start, end mgl64.Vec3, color Color) Gizmo {
	return Gizmo{
		Type:     GizmoLine,
		Position: start,
		LineEnd:  end,
		Color:    color,
		Scale:    mgl64.Vec3{1, 1, 1},
		Rotation: mgl64.QuatIdent(),
	}
}

func NewGizmoSphere(center mgl64.Vec3, radius float64, color Color) Gizmo {
	return Gizmo{
		Type:     GizmoSphere,
		Position: center,
		Radius:   radius,
		Scale:    mgl64.Vec3{1, 1, 1},
		Color:    color,
		Rotation: mgl64.QuatIdent(),
	}
}

func NewGizmoRect(center mgl64.Vec3, rot mgl64.Quat, w, h float64, color Color) Gizmo {
	return Gizmo{
		Type:     GizmoRect,
		Position: center,
		Rotation: rot,
		Scale:    mgl64.Vec3{w, h, 1},
		Color:    color,
	}
}

func NewGizmoCircle(center mgl64.Vec3, radius float64, color Color) Gizmo {
	return Gizmo{
		Type:     GizmoCircle,
		Position: center,
		Radius:   radius,
		Scale:    mgl64.Vec3{1, 1, 1},
		Color:    color,
		Rotation: mgl64.QuatIdent(),
	}
}

func NewGizmoCone(apex, base mgl64.Vec3, radius float64, color Color) Gizmo {
	return Gizmo{
		Type:     GizmoCone,
		Position: apex,
		LineEnd:  base,
		Radius:   radius,
		Scale:    mgl64.Vec3{1, 1, 1},
		Color:    color,
		Rotation: mgl64.QuatIdent(),
	}
}

// LightHelper depicts the geometry of exactly one light. Its gizmos are
// derived state; Sync rebuilds them from the light.
type LightHelper struct {
	Object3D
	Light Light
	Size  float64

	Gizmos   []Gizmo
	Revision int
}

// maxConeAngle keeps the drawn cone finite for angles at or past 90 degrees.
const maxConeAngle = 89.5 * math.Pi / 180

func NewLightHelper(l Light, size float64) (*LightHelper, error) {
	if l == nil {
		return nil, fmt.Errorf("helper: %w", ErrNilEntity)
	}
	if l.Kind() == LightAmbient {
		return nil, fmt.Errorf("%q: ambient light has no helper geometry: %w", l.Object().Name, ErrInvalidLightSpec)
	}
	if size <= 0 {
		size = 1
	}
	h := &LightHelper{
		Object3D: newObject3D(l.Object().Name + ".helper"),
		Light:    l,
		Size:     size,
	}
	h.Sync()
	return h, nil
}

// Sync re-derives the gizmos and reports whether they changed.
func (h *LightHelper) Sync() bool {
	next := h.derive()
	if h.Revision > 0 && slices.Equal(next, h.Gizmos) {
		return false
	}
	h.Gizmos = next
	h.Position = h.Light.Object().Position
	h.Revision++
	return true
}

func (h *LightHelper) derive() []Gizmo {
	base := h.Light.Base()
	pos := base.Position
	color := base.Color

	switch l := h.Light.(type) {
	case *DirectionalLight:
		return []Gizmo{
			NewGizmoRect(pos, lookAtQuat(pos, l.Target.Position), h.Size, h.Size, color),
			NewGizmoLine(pos, l.Target.Position, color),
		}
	case *HemisphereLight:
		up := safeNormalize(pos).Mul(h.Size / 2)
		return []Gizmo{
			NewGizmoCircle(pos.Add(up), h.Size, l.Color),
			NewGizmoCircle(pos.Sub(up), h.Size, l.GroundColor),
		}
	case *PointLight:
		return []Gizmo{NewGizmoSphere(pos, h.Size, color)}
	case *RectAreaLight:
		return []Gizmo{NewGizmoRect(pos, l.Orientation, l.Width, l.Height, color)}
	case *SpotLight:
		length := l.Distance
		if length == 0 {
			length = 1
		}
		angle := min(l.Angle, maxConeAngle)
		end := pos.Add(l.Direction().Mul(length))
		return []Gizmo{NewGizmoCone(pos, end, length*math.Tan(angle), color)}
	}
	return nil
}

// AxesHelper draws the world X (red), Y (green) and Z (blue) axes.
type AxesHelper struct {
	Object3D
	Size   float64
	Gizmos []Gizmo
}

func NewAxesHelper(size float64) *AxesHelper {
	a := &AxesHelper{Object3D: newObject3D("axes"), Size: size}
	origin := mgl64.Vec3{}
	a.Gizmos = []Gizmo{
		NewGizmoLine(origin, mgl64.Vec3{size, 0, 0}, Color{1, 0, 0}),
		NewGizmoLine(origin, mgl64.Vec3{0, size, 0}, Color{0, 1, 0}),
		NewGizmoLine(origin, mgl64.Vec3{0, 0, size}, Color{0, 0, 1}),
	}
	return a
}

// SyncHelpers runs after PostUpdate, once every system that moves lights or
// the camera has run for the tick.
var SyncHelpers = Stage{Name: "SyncHelpers"}

// HelperSyncModule keeps helper gizmos in step with their lights.
type HelperSyncModule struct{}

func (HelperSyncModule) Install(app *App, cmd *Commands) error {
	if !app.hasStage(SyncHelpers.Name) {
		app.UseStage(SyncHelpers, AfterStage(PostUpdate))
	}
	app.UseSystem(
		System(helperSyncSystem).
			InStage(SyncHelpers),
	)
	return nil
}

func helperSyncSystem(graph *SceneGraph, ctx *SceneContext) {
	for h := range graph.Helpers() {
		if h.Sync() {
			ctx.Logger.Debugf("helper %s regenerated (rev %d)", h.Name, h.Revision)
		}
	}
}
