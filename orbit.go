package lightlab

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Controls advances camera control state once per tick.
type Controls interface {
	Update() bool
}

const orbitEps = 1e-6

// OrbitControls orbits Camera around Target. With damping on, input deltas
// are consumed over several updates instead of at once.
type OrbitControls struct {
	Camera *PerspectiveCamera
	Target mgl64.Vec3

	Enabled       bool
	EnableDamping bool
	DampingFactor float64
	RotateSpeed   float64
	ZoomSpeed     float64
	MinDistance   float64
	MaxDistance   float64

	// ViewportHeight scales pointer deltas to angles.
	ViewportHeight func() int

	thetaDelta float64
	phiDelta   float64
	scale      float64
}

func NewOrbitControls(cam *PerspectiveCamera) *OrbitControls {
	return &OrbitControls{
		Camera:        cam,
		Enabled:       true,
		DampingFactor: 0.05,
		RotateSpeed:   1,
		ZoomSpeed:     1,
		MinDistance:   0,
		MaxDistance:   math.Inf(1),
		scale:         1,
	}
}

// Rotate feeds a pointer drag of dx, dy pixels.
func (c *OrbitControls) Rotate(dx, dy float64) {
	if !c.Enabled {
		return
	}
	h := 1.0
	if c.ViewportHeight != nil {
		if v := c.ViewportHeight(); v > 0 {
			h = float64(v)
		}
	}
	c.thetaDelta -= 2 * math.Pi * dx / h * c.RotateSpeed
	c.phiDelta -= 2 * math.Pi * dy / h * c.RotateSpeed
}

// Dolly feeds a wheel step; positive steps move closer.
func (c *OrbitControls) Dolly(steps float64) {
	if !c.Enabled || steps == 0 {
		return
	}
	factor := math.Pow(0.95, c.ZoomSpeed*math.Abs(steps))
	if steps > 0 {
		c.scale *= factor
	} else {
		c.scale /= factor
	}
}

// Update applies pending input and reports whether the camera moved.
func (c *OrbitControls) Update() bool {
	cam := c.Camera
	offset := cam.Position.Sub(c.Target)

	radius := offset.Len()
	theta := math.Atan2(offset.X(), offset.Z())
	phi := 0.0
	if radius > 0 {
		phi = math.Acos(mgl64.Clamp(offset.Y()/radius, -1, 1))
	}

	if c.EnableDamping {
		theta += c.thetaDelta * c.DampingFactor
		phi += c.phiDelta * c.DampingFactor
	} else {
		theta += c.thetaDelta
		phi += c.phiDelta
	}
	phi = mgl64.Clamp(phi, orbitEps, math.Pi-orbitEps)
	radius = mgl64.Clamp(radius*c.scale, c.MinDistance, c.MaxDistance)

	sinPhi := math.Sin(phi)
	next := c.Target.Add(mgl64.Vec3{
		radius * sinPhi * math.Sin(theta),
		radius * math.Cos(phi),
		radius * sinPhi * math.Cos(theta),
	})

	moved := next.Sub(cam.Position).Len() > orbitEps
	cam.Position = next
	cam.LookAt(c.Target)

	if c.EnableDamping {
		c.thetaDelta *= 1 - c.DampingFactor
		c.phiDelta *= 1 - c.DampingFactor
	} else {
		c.thetaDelta = 0
		c.phiDelta = 0
	}
	c.scale = 1
	return moved
}

// OrbitControlsModule attaches orbit controls to the scene camera.
type OrbitControlsModule struct {
	Damping       bool
	DampingFactor float64
}

func (m OrbitControlsModule) Install(app *App, cmd *Commands) error {
	if app.ctx.Camera == nil {
		return fmt.Errorf("orbit controls need a camera: %w", ErrMissingResource)
	}
	oc := NewOrbitControls(app.ctx.Camera)
	oc.EnableDamping = m.Damping
	if m.DampingFactor > 0 {
		oc.DampingFactor = m.DampingFactor
	}
	oc.ViewportHeight = func() int {
		if vp := app.ctx.Viewport; vp != nil {
			return vp.Height
		}
		return 0
	}
	app.ctx.Controls = oc
	cmd.AddResources(oc)
	app.UseSystem(
		System(controlsSystem).
			InStage(PostUpdate),
	)
	return nil
}

func controlsSystem(ctx *SceneContext) {
	if ctx.Controls != nil {
		ctx.Controls.Update()
	}
}
