package lightlab

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoInput(t *testing.T) (*Input, *demoFixture) {
	t.Helper()
	f := newDemoFixture(t)
	in, ok := Resource[Input](f.app)
	require.True(t, ok)
	return in, f
}

func TestInput_PanelKeys(t *testing.T) {
	in, f := demoInput(t)
	panel := f.app.Context().Panel

	var focused []string
	in.OnFocus = func(b *DebugBinding) { focused = append(focused, b.Label) }

	in.KeyPressed(KeyDown, false)
	assert.Equal(t, "Directional Light Intensity", panel.Selected().Label)

	in.KeyPressed(KeyRight, false)
	assert.Equal(t, 0.51, panel.Selected().Value())
	in.KeyPressed(KeyRight, true)
	assert.Equal(t, 0.61, panel.Selected().Value())
	in.KeyPressed(KeyPageDown, false)
	assert.Equal(t, 0.51, panel.Selected().Value())
	in.KeyPressed(KeyLeft, false)
	assert.Equal(t, 0.5, panel.Selected().Value())

	in.KeyPressed(KeyUp, false)
	in.KeyPressed(KeyUp, false)
	assert.Equal(t, "Spot Light Angle", panel.Selected().Label, "focus wraps")

	assert.Equal(t, []string{
		"Directional Light Intensity",
		"Directional Light Intensity",
		"Directional Light Intensity",
		"Directional Light Intensity",
		"Directional Light Intensity",
		"Ambient Light Intensity",
		"Spot Light Angle",
	}, focused)

	in.KeyPressed(KeyUnknown, false)
	assert.Len(t, focused, 7)
}

func TestInput_SnapshotAndQuit(t *testing.T) {
	in, _ := demoInput(t)

	// Without hooks these are no-ops.
	in.KeyPressed(KeyF2, false)
	in.KeyPressed(KeyEscape, false)

	var snap *image.RGBA
	quit := false
	in.OnSnapshot = func(img *image.RGBA) { snap = img }
	in.OnQuit = func() { quit = true }

	in.KeyPressed(KeyF2, false)
	require.NotNil(t, snap)
	assert.Equal(t, 300, snap.Bounds().Dx())

	in.KeyPressed(KeyEscape, false)
	assert.True(t, quit)
}

func TestInput_PointerDrivesOrbit(t *testing.T) {
	in, f := demoInput(t)
	oc := f.app.Context().Controls.(*OrbitControls)

	in.CursorMoved(10, 10)
	assert.Zero(t, oc.thetaDelta, "moving without a drag does nothing")

	in.MouseButton(true, 10, 10)
	in.CursorMoved(70, 10)
	assert.Negative(t, oc.thetaDelta)
	assert.Zero(t, oc.phiDelta)

	in.MouseButton(false, 70, 10)
	before := oc.thetaDelta
	in.CursorMoved(200, 200)
	assert.Equal(t, before, oc.thetaDelta)

	in.Scrolled(1)
	assert.InDelta(t, 0.95, oc.scale, 1e-12)
}

func TestInput_WithoutPanel(t *testing.T) {
	in := NewInput(NewSceneContext())
	in.KeyPressed(KeyDown, false)
	in.KeyPressed(KeyRight, false)
	in.KeyPressed(KeyF2, false)
	in.Scrolled(1)
	in.MouseButton(true, 0, 0)
	in.CursorMoved(5, 5)
}
