package lightlab

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// PerspectiveCamera. Aspect is owned by the ViewportManager; after changing
// FOV, Aspect, Near or Far call UpdateProjectionMatrix.
type PerspectiveCamera struct {
	Object3D
	FOV    float64 // vertical, degrees
	Aspect float64
	Near   float64
	Far    float64

	Orientation mgl64.Quat
	Up          mgl64.Vec3
	Projection  mgl64.Mat4

	revision uint64
}

func NewPerspectiveCamera(fov, aspect, near, far float64) *PerspectiveCamera {
	c := &PerspectiveCamera{
		Object3D:    newObject3D("camera"),
		FOV:         fov,
		Aspect:      aspect,
		Near:        near,
		Far:         far,
		Orientation: mgl64.QuatIdent(),
		Up:          mgl64.Vec3{0, 1, 0},
	}
	c.UpdateProjectionMatrix()
	return c
}

func (c *PerspectiveCamera) UpdateProjectionMatrix() {
	c.Projection = mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
	c.revision++
}

// ProjectionRevision counts UpdateProjectionMatrix calls.
func (c *PerspectiveCamera) ProjectionRevision() uint64 { return c.revision }

func (c *PerspectiveCamera) LookAt(target mgl64.Vec3) {
	c.Orientation = lookAtQuat(c.Position, target)
}

func (c *PerspectiveCamera) Forward() mgl64.Vec3 {
	return c.Orientation.Rotate(mgl64.Vec3{0, 0, -1})
}

func (c *PerspectiveCamera) ViewMatrix() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Position.Add(c.Forward()), c.Up)
}

func (c *PerspectiveCamera) ViewProjection() mgl64.Mat4 {
	return c.Projection.Mul4(c.ViewMatrix())
}

// CameraModule adds the observing camera to the graph and the context.
type CameraModule struct {
	FOV, Near, Far float64
	Position       mgl64.Vec3
	LookAt         mgl64.Vec3
}

func (m CameraModule) Install(app *App, cmd *Commands) error {
	if m.FOV <= 0 || m.FOV >= 180 || m.Near <= 0 || m.Far <= m.Near {
		return fmt.Errorf("camera fov=%g near=%g far=%g: %w", m.FOV, m.Near, m.Far, ErrInvalidConfig)
	}
	cam := NewPerspectiveCamera(m.FOV, 1, m.Near, m.Far)
	cam.Position = m.Position
	cam.LookAt(m.LookAt)
	if err := cmd.AddEntity(cam); err != nil {
		return fmt.Errorf("camera: %w", err)
	}
	app.ctx.Camera = cam
	cmd.AddResources(cam)
	return nil
}

// AxesModule adds an axes marker of the given size.
type AxesModule struct {
	Size float64
}

func (m AxesModule) Install(app *App, cmd *Commands) error {
	return cmd.AddEntity(NewAxesHelper(m.Size))
}
