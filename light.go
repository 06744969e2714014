package lightlab

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type LightKind uint32

const (
	LightAmbient LightKind = iota
	LightDirectional
	LightHemisphere
	LightPoint
	LightRectArea
	LightSpot
)

func (k LightKind) String() string {
	switch k {
	case LightAmbient:
		return "ambient"
	case LightDirectional:
		return "directional"
	case LightHemisphere:
		return "hemisphere"
	case LightPoint:
		return "point"
	case LightRectArea:
		return "rectArea"
	case LightSpot:
		return "spot"
	}
	return fmt.Sprintf("LightKind(%d)", uint32(k))
}

// Light is any light variant. Helpers do not implement it.
type Light interface {
	Entity
	Base() *LightBase
	Kind() LightKind
}

// LightBase carries what every variant has. Fields tagged `lightlab` can be
// targeted by debug bindings.
type LightBase struct {
	Object3D
	Color     Color
	Intensity float64 `lightlab:"intensity"`
}

func (b *LightBase) Base() *LightBase { return b }

// AmbientLight lights everything uniformly. Position is ignored.
type AmbientLight struct {
	LightBase
}

func (*AmbientLight) Kind() LightKind { return LightAmbient }

// DirectionalLight shines from Position toward Target with no attenuation.
// Target is not part of the scene graph.
type DirectionalLight struct {
	LightBase
	Target *Target
}

func (*DirectionalLight) Kind() LightKind { return LightDirectional }

func (l *DirectionalLight) Direction() mgl64.Vec3 {
	return safeNormalize(l.Target.Position.Sub(l.Position))
}

// HemisphereLight blends Color (sky) and GroundColor. Position only encodes
// the sky direction.
type HemisphereLight struct {
	LightBase
	GroundColor Color
}

func (*HemisphereLight) Kind() LightKind { return LightHemisphere }

// PointLight emits in all directions. Distance 0 means unlimited range.
type PointLight struct {
	LightBase
	Distance float64 `lightlab:"distance"`
	Decay    float64 `lightlab:"decay"`
}

func (*PointLight) Kind() LightKind { return LightPoint }

// RectAreaLight emits from a Width x Height rectangle. Orientation is stored:
// moving the light does not re-aim it, only LookAt does.
type RectAreaLight struct {
	LightBase
	Width       float64 `lightlab:"width"`
	Height      float64 `lightlab:"height"`
	Orientation mgl64.Quat
}

func (*RectAreaLight) Kind() LightKind { return LightRectArea }

// LookAt re-derives Orientation so the light's -Z axis faces target.
func (l *RectAreaLight) LookAt(target mgl64.Vec3) {
	l.Orientation = lookAtQuat(l.Position, target)
}

// Normal is the emitting direction.
func (l *RectAreaLight) Normal() mgl64.Vec3 {
	return l.Orientation.Rotate(mgl64.Vec3{0, 0, -1})
}

// SpotLight emits a cone from Position toward Target. Target is a graph entity.
type SpotLight struct {
	LightBase
	Distance float64 `lightlab:"distance"`
	Angle    float64 `lightlab:"angle"`
	Penumbra float64 `lightlab:"penumbra"`
	Decay    float64 `lightlab:"decay"`
	Target   *Target
}

func (*SpotLight) Kind() LightKind { return LightSpot }

func (l *SpotLight) Direction() mgl64.Vec3 {
	return safeNormalize(l.Target.Position.Sub(l.Position))
}

// LightSpec is the declarative description consumed by the light rig.
type LightSpec struct {
	Name        string
	Kind        LightKind
	Color       Color
	GroundColor Color
	Intensity   float64
	Position    mgl64.Vec3
	Target      mgl64.Vec3
	Distance    float64
	Decay       float64
	Angle       float64
	Penumbra    float64
	Width       float64
	Height      float64

	Helper     bool
	HelperSize float64
}

// NewLight validates spec and builds the matching variant.
func NewLight(spec LightSpec) (Light, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}

	base := LightBase{
		Object3D:  newObject3D(spec.Name),
		Color:     spec.Color,
		Intensity: spec.Intensity,
	}

	switch spec.Kind {
	case LightAmbient:
		return &AmbientLight{LightBase: base}, nil
	case LightDirectional:
		base.Position = spec.Position
		return &DirectionalLight{
			LightBase: base,
			Target:    NewTarget(spec.Name+".target", spec.Target),
		}, nil
	case LightHemisphere:
		base.Position = mgl64.Vec3{0, 1, 0}
		return &HemisphereLight{LightBase: base, GroundColor: spec.GroundColor}, nil
	case LightPoint:
		base.Position = spec.Position
		return &PointLight{LightBase: base, Distance: spec.Distance, Decay: spec.Decay}, nil
	case LightRectArea:
		base.Position = spec.Position
		l := &RectAreaLight{LightBase: base, Width: spec.Width, Height: spec.Height}
		l.LookAt(spec.Target)
		return l, nil
	case LightSpot:
		base.Position = spec.Position
		return &SpotLight{
			LightBase: base,
			Distance:  spec.Distance,
			Angle:     spec.Angle,
			Penumbra:  spec.Penumbra,
			Decay:     spec.Decay,
			Target:    NewTarget(spec.Name+".target", spec.Target),
		}, nil
	}
	return nil, fmt.Errorf("%q: unknown kind %v: %w", spec.Name, spec.Kind, ErrInvalidLightSpec)
}

func (spec LightSpec) validate() error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%q: %s: %w", spec.Name, fmt.Sprintf(format, args...), ErrInvalidLightSpec)
	}

	if spec.Name == "" {
		return fmt.Errorf("light without name: %w", ErrInvalidLightSpec)
	}
	if spec.Kind > LightSpot {
		return fail("unknown kind %v", spec.Kind)
	}
	for name, v := range map[string]float64{
		"intensity": spec.Intensity, "distance": spec.Distance, "decay": spec.Decay,
		"angle": spec.Angle, "penumbra": spec.Penumbra, "width": spec.Width,
		"height": spec.Height, "helper size": spec.HelperSize,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fail("%s is not finite", name)
		}
		if v < 0 {
			return fail("%s is negative (%g)", name, v)
		}
	}
	for _, v := range [...]mgl64.Vec3{spec.Position, spec.Target} {
		if !finiteVec(v) {
			return fail("position or target is not finite")
		}
	}

	switch spec.Kind {
	case LightAmbient:
		if spec.Helper {
			return fail("ambient light has no helper geometry")
		}
	case LightSpot:
		if spec.Angle > math.Pi {
			return fail("angle %g outside [0, pi]", spec.Angle)
		}
		if spec.Penumbra > 1 {
			return fail("penumbra %g outside [0, 1]", spec.Penumbra)
		}
	}
	return nil
}

func finiteVec(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func safeNormalize(v mgl64.Vec3) mgl64.Vec3 {
	if v.Len() == 0 {
		return mgl64.Vec3{0, 0, -1}
	}
	return v.Normalize()
}

// lookAtQuat orients -Z from eye toward target, keeping +Y up where possible.
func lookAtQuat(eye, target mgl64.Vec3) mgl64.Quat {
	back := eye.Sub(target)
	if back.Len() == 0 {
		return mgl64.QuatIdent()
	}
	z := back.Normalize()
	up := mgl64.Vec3{0, 1, 0}
	if math.Abs(z.Dot(up)) > 0.9999 {
		up = mgl64.Vec3{0, 0, 1}
	}
	x := up.Cross(z).Normalize()
	y := z.Cross(x)
	basis := mgl64.Mat4FromCols(x.Vec4(0), y.Vec4(0), z.Vec4(0), mgl64.Vec4{0, 0, 0, 1})
	return mgl64.Mat4ToQuat(basis).Normalize()
}
