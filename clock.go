package lightlab

import (
	"time"
)

// Clock reports seconds since scene start. It never goes backwards.
type Clock interface {
	Elapsed() float64
}

type SystemClock struct {
	start time.Time
}

func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Elapsed uses the monotonic reading carried by time.Now.
func (c *SystemClock) Elapsed() float64 {
	return time.Since(c.start).Seconds()
}

// ManualClock is advanced explicitly. Used by tests and the headless host.
type ManualClock struct {
	t float64
}

func (c *ManualClock) Elapsed() float64 { return c.t }

// Advance moves the clock forward; negative steps are ignored.
func (c *ManualClock) Advance(seconds float64) {
	if seconds > 0 {
		c.t += seconds
	}
}

func (c *ManualClock) Set(seconds float64) {
	if seconds > c.t {
		c.t = seconds
	}
}

// FrameTime is the per-tick clock reading shared with systems.
type FrameTime struct {
	Elapsed float64
	Delta   float64
	Frame   uint64
}

type TimeModule struct {
	Clock Clock
}

func (mod TimeModule) Install(app *App, cmd *Commands) error {
	if mod.Clock != nil {
		app.ctx.Clock = mod.Clock
	}
	if app.ctx.Clock == nil {
		app.ctx.Clock = NewSystemClock()
	}
	cmd.AddResources(&FrameTime{})
	app.UseSystem(
		System(timeSystem).
			InStage(Prelude),
	)
	return nil
}

func timeSystem(ctx *SceneContext, ft *FrameTime) {
	now := ctx.Clock.Elapsed()
	if now < ft.Elapsed {
		now = ft.Elapsed
	}
	ft.Delta = now - ft.Elapsed
	ft.Elapsed = now
	ft.Frame++
}
