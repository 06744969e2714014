package lightlab

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type ShapeKind int

const (
	ShapeSphere ShapeKind = iota
	ShapeBox
	ShapeTorus
	ShapePlane
)

// Geometry describes a shape; tessellation is left to the renderer.
type Geometry struct {
	Kind ShapeKind

	// Sphere radius, torus ring radius.
	Radius float64
	// Torus tube radius.
	Tube float64
	// Box and plane extents (plane ignores Depth).
	Width, Height, Depth float64
	// Sphere: width/height segments. Torus: radial/tubular segments.
	Segments [2]int
}

func SphereGeometry(radius float64, widthSegments, heightSegments int) Geometry {
	return Geometry{Kind: ShapeSphere, Radius: radius, Segments: [2]int{widthSegments, heightSegments}}
}

func BoxGeometry(w, h, d float64) Geometry {
	return Geometry{Kind: ShapeBox, Width: w, Height: h, Depth: d}
}

func TorusGeometry(radius, tube float64, radialSegments, tubularSegments int) Geometry {
	return Geometry{Kind: ShapeTorus, Radius: radius, Tube: tube, Segments: [2]int{radialSegments, tubularSegments}}
}

func PlaneGeometry(w, h float64) Geometry {
	return Geometry{Kind: ShapePlane, Width: w, Height: h}
}

func (g Geometry) Validate() error {
	for _, v := range [...]float64{g.Radius, g.Tube, g.Width, g.Height, g.Depth} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("negative or non-finite dimension %g: %w", v, ErrInvalidBody)
		}
	}
	switch g.Kind {
	case ShapeSphere, ShapeTorus:
		if g.Segments[0] <= 0 || g.Segments[1] <= 0 {
			return fmt.Errorf("segment counts %v must be positive: %w", g.Segments, ErrInvalidBody)
		}
	case ShapeBox, ShapePlane:
	default:
		return fmt.Errorf("unknown shape %d: %w", g.Kind, ErrInvalidBody)
	}
	return nil
}

// Material is shared by every body of a scene; changing it changes them all.
type Material struct {
	Color     Color
	Roughness float64
	Metalness float64
}

func NewStandardMaterial(roughness float64) (*Material, error) {
	if roughness < 0 || roughness > 1 || math.IsNaN(roughness) {
		return nil, fmt.Errorf("roughness %g outside [0, 1]: %w", roughness, ErrInvalidBody)
	}
	return &Material{Color: Hex(0xffffff), Roughness: roughness}, nil
}

// Spin animates a body: rotation.x = X·t and rotation.y = Y·t, t in seconds.
type Spin struct {
	X, Y float64
}

type Body struct {
	Object3D
	Geometry Geometry
	Material *Material
	Spin     *Spin
}

func NewBody(name string, geo Geometry, mat *Material) (*Body, error) {
	if err := geo.Validate(); err != nil {
		return nil, fmt.Errorf("body %q: %w", name, err)
	}
	if mat == nil {
		return nil, fmt.Errorf("body %q: no material: %w", name, ErrInvalidBody)
	}
	return &Body{Object3D: newObject3D(name), Geometry: geo, Material: mat}, nil
}

// ObjectSet is the demo's four bodies over one material.
type ObjectSet struct {
	Material *Material
	Sphere   *Body
	Cube     *Body
	Torus    *Body
	Plane    *Body
}

var demoSpin = Spin{X: 0.15, Y: 0.1}

func NewObjectSet(roughness float64) (*ObjectSet, error) {
	mat, err := NewStandardMaterial(roughness)
	if err != nil {
		return nil, err
	}

	set := &ObjectSet{Material: mat}
	for _, b := range []struct {
		dst  **Body
		name string
		geo  Geometry
	}{
		{&set.Sphere, "sphere", SphereGeometry(0.5, 32, 32)},
		{&set.Cube, "cube", BoxGeometry(0.75, 0.75, 0.75)},
		{&set.Torus, "torus", TorusGeometry(0.3, 0.2, 32, 64)},
		{&set.Plane, "plane", PlaneGeometry(5, 5)},
	} {
		body, err := NewBody(b.name, b.geo, mat)
		if err != nil {
			return nil, err
		}
		*b.dst = body
	}

	set.Sphere.Position = mgl64.Vec3{-1.5, 0, 0}
	set.Torus.Position = mgl64.Vec3{1.5, 0, 0}
	set.Plane.Rotation.X = -math.Pi * 0.5
	set.Plane.Position = mgl64.Vec3{0, -0.65, 0}

	for _, b := range set.Animated() {
		spin := demoSpin
		b.Spin = &spin
	}
	return set, nil
}

func (s *ObjectSet) Bodies() []*Body {
	return []*Body{s.Sphere, s.Cube, s.Torus, s.Plane}
}

// Animated are the bodies the spin rule applies to.
func (s *ObjectSet) Animated() []*Body {
	return []*Body{s.Sphere, s.Cube, s.Torus}
}

type ObjectSetModule struct {
	Roughness float64
}

func (m ObjectSetModule) Install(app *App, cmd *Commands) error {
	set, err := NewObjectSet(m.Roughness)
	if err != nil {
		return fmt.Errorf("object set: %w", err)
	}
	for _, b := range set.Bodies() {
		if err := cmd.AddEntity(b); err != nil {
			return fmt.Errorf("object set: %w", err)
		}
	}
	cmd.AddResources(set)
	return nil
}
