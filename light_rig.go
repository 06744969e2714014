package lightlab

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// LightRig is the constructed set of lights, their targets and helpers.
type LightRig struct {
	Lights  []Light
	Targets []*Target
	Helpers []*LightHelper

	entities []Entity
	byName   map[string]Light
}

// BuildLightRig constructs every spec in order. Any invalid spec aborts the build.
func BuildLightRig(specs []LightSpec) (*LightRig, error) {
	rig := &LightRig{byName: make(map[string]Light, len(specs))}

	for _, spec := range specs {
		if _, dup := rig.byName[spec.Name]; dup {
			return nil, fmt.Errorf("%q: duplicate light name: %w", spec.Name, ErrInvalidLightSpec)
		}
		l, err := NewLight(spec)
		if err != nil {
			return nil, err
		}
		rig.byName[spec.Name] = l
		rig.Lights = append(rig.Lights, l)
		rig.entities = append(rig.entities, l)

		if spot, ok := l.(*SpotLight); ok {
			rig.Targets = append(rig.Targets, spot.Target)
			rig.entities = append(rig.entities, spot.Target)
		}

		if spec.Helper {
			h, err := NewLightHelper(l, spec.HelperSize)
			if err != nil {
				return nil, err
			}
			rig.Helpers = append(rig.Helpers, h)
		}
	}

	// Helpers go in after every light, mirroring how the demo adds them.
	for _, h := range rig.Helpers {
		rig.entities = append(rig.entities, h)
	}
	return rig, nil
}

// Entities returns everything the rig contributes to a scene, in insertion order.
func (r *LightRig) Entities() []Entity { return r.entities }

func (r *LightRig) Light(name string) (Light, bool) {
	l, ok := r.byName[name]
	return l, ok
}

// HelperFor returns the helper bound to l, if one was requested.
func (r *LightRig) HelperFor(l Light) (*LightHelper, bool) {
	for _, h := range r.Helpers {
		if h.Light == l {
			return h, true
		}
	}
	return nil, false
}

// DefaultLightSpecs is the six-light demo rig.
func DefaultLightSpecs() []LightSpec {
	return []LightSpec{
		{
			Name:      "ambient",
			Kind:      LightAmbient,
			Color:     Hex(0xffffff),
			Intensity: 0.2,
		},
		{
			Name:       "directional",
			Kind:       LightDirectional,
			Color:      Hex(0xffffff),
			Intensity:  0.5,
			Position:   mgl64.Vec3{1, 0.25, 0},
			Helper:     true,
			HelperSize: 0.2,
		},
		{
			Name:        "hemisphere",
			Kind:        LightHemisphere,
			Color:       Hex(0xff0000),
			GroundColor: Hex(0x0000ff),
			Intensity:   0.1,
			Helper:      true,
			HelperSize:  0.2,
		},
		{
			Name:       "point",
			Kind:       LightPoint,
			Color:      Hex(0xff9000),
			Intensity:  1.5,
			Distance:   3.12,
			Decay:      0.41,
			Position:   mgl64.Vec3{1, -0.5, 1},
			Helper:     true,
			HelperSize: 0.2,
		},
		{
			Name:      "rectArea",
			Kind:      LightRectArea,
			Color:     Hex(0x4e00ff),
			Intensity: 6,
			Width:     1,
			Height:    1,
			Position:  mgl64.Vec3{-1.5, 0, 1.5},
			Helper:    true,
		},
		{
			Name:      "spot",
			Kind:      LightSpot,
			Color:     Hex(0xffdd00),
			Intensity: 4.5,
			Distance:  19,
			Angle:     math.Pi * 0.1,
			Penumbra:  0.25,
			Decay:     1,
			Position:  mgl64.Vec3{0, 2, 3},
			Target:    mgl64.Vec3{-1.5, 0, 0},
			Helper:    true,
		},
	}
}

// LightRigModule builds the rig and inserts it into the scene graph.
type LightRigModule struct {
	Specs []LightSpec
}

func (m LightRigModule) Install(app *App, cmd *Commands) error {
	specs := m.Specs
	if specs == nil {
		specs = DefaultLightSpecs()
	}
	rig, err := BuildLightRig(specs)
	if err != nil {
		return fmt.Errorf("light rig: %w", err)
	}
	for _, e := range rig.Entities() {
		if err := cmd.AddEntity(e); err != nil {
			return fmt.Errorf("light rig: %w", err)
		}
	}
	cmd.AddResources(rig)
	app.Logger().Infof("light rig: %d lights, %d helpers", len(rig.Lights), len(rig.Helpers))
	return nil
}
