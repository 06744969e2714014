package lightlab

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

type EntityId uint64

// Euler holds rotation angles in radians, applied in X, Y, Z order.
type Euler struct {
	X, Y, Z float64
}

func (e Euler) Quat() mgl64.Quat {
	return mgl64.AnglesToQuat(e.X, e.Y, e.Z, mgl64.XYZ)
}

// Object3D is the transform and identity shared by every scene entity.
type Object3D struct {
	ID       EntityId
	Name     string
	Position mgl64.Vec3
	Rotation Euler
	Visible  bool

	owner uuid.UUID
}

func newObject3D(name string) Object3D {
	return Object3D{Name: name, Visible: true}
}

func (o *Object3D) Object() *Object3D { return o }

// Graph returns the id of the owning scene graph, or uuid.Nil.
func (o *Object3D) Graph() uuid.UUID { return o.owner }

// Entity is anything that can live in a SceneGraph.
type Entity interface {
	Object() *Object3D
}

// Target is a bare positioned entity used as an aim point.
type Target struct {
	Object3D
}

func NewTarget(name string, pos mgl64.Vec3) *Target {
	t := &Target{Object3D: newObject3D(name)}
	t.Position = pos
	return t
}

// Color is linear RGB in [0,1].
type Color struct {
	R, G, B float64
}

// Hex converts a 0xRRGGBB value.
func Hex(v uint32) Color {
	return Color{
		R: float64((v>>16)&0xff) / 255,
		G: float64((v>>8)&0xff) / 255,
		B: float64(v&0xff) / 255,
	}
}

func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B}
}

func (c Color) RGBA() [4]float64 {
	return [4]float64{c.R, c.G, c.B, 1}
}
