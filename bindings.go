package lightlab

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Range struct {
	Min, Max float64
}

func (r Range) Clamp(v float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, v))
}

// DebugBinding links one control to one float64 field of a live object.
// Writes through Set are clamped to Range and snapped to Step.
type DebugBinding struct {
	Target any
	Field  string
	Label  string
	Range  Range
	Step   float64

	get      func() float64
	set      func(float64)
	decimals int
	onChange []func(float64)
}

func (b *DebugBinding) Value() float64 { return b.get() }

// Set applies a control change event and returns the value written.
func (b *DebugBinding) Set(v float64) float64 {
	if math.IsNaN(v) {
		return b.get()
	}
	v = b.Range.Clamp(v)
	if b.Step > 0 {
		// Half-way values round away from zero.
		n := math.Round((v - b.Range.Min) / b.Step)
		v = b.Range.Clamp(b.Range.Min + n*b.Step)
		p := math.Pow(10, float64(b.decimals))
		if snapped := math.Round(v*p) / p; snapped >= b.Range.Min && snapped <= b.Range.Max {
			v = snapped
		}
	}
	b.set(v)
	for _, fn := range b.onChange {
		fn(v)
	}
	return v
}

// Nudge moves the value by steps increments (1% of the range without a step).
func (b *DebugBinding) Nudge(steps int) float64 {
	inc := b.Step
	if inc <= 0 {
		inc = (b.Range.Max - b.Range.Min) / 100
	}
	return b.Set(b.get() + float64(steps)*inc)
}

func (b *DebugBinding) OnChange(fn func(float64)) *DebugBinding {
	b.onChange = append(b.onChange, fn)
	return b
}

// DebugPanel owns the bindings of one scene.
type DebugPanel struct {
	bindings []*DebugBinding
	byLabel  map[string]*DebugBinding
	selected int
}

func NewDebugPanel() *DebugPanel {
	return &DebugPanel{byLabel: make(map[string]*DebugBinding)}
}

// Bind resolves field on target once. A missing or non-float64 field is an
// error here, never later.
func (p *DebugPanel) Bind(target any, field string, r Range, step float64, label string) (*DebugBinding, error) {
	fv, err := floatField(target, field)
	if err != nil {
		return nil, fmt.Errorf("bind %q: %w", label, err)
	}
	b, err := p.BindFunc(label, fv.Float, fv.SetFloat, r, step)
	if err != nil {
		return nil, err
	}
	b.Target = target
	b.Field = field
	return b, nil
}

// BindFunc registers a binding over an explicit getter/setter pair.
func (p *DebugPanel) BindFunc(label string, get func() float64, set func(float64), r Range, step float64) (*DebugBinding, error) {
	switch {
	case label == "":
		return nil, fmt.Errorf("binding without label: %w", ErrInvalidBinding)
	case get == nil || set == nil:
		return nil, fmt.Errorf("bind %q: nil accessor: %w", label, ErrInvalidBinding)
	case !isFinite(r.Min) || !isFinite(r.Max) || r.Min > r.Max:
		return nil, fmt.Errorf("bind %q: bad range [%g, %g]: %w", label, r.Min, r.Max, ErrInvalidBinding)
	case !isFinite(step) || step < 0:
		return nil, fmt.Errorf("bind %q: bad step %g: %w", label, step, ErrInvalidBinding)
	}
	if _, dup := p.byLabel[label]; dup {
		return nil, fmt.Errorf("bind %q: duplicate label: %w", label, ErrInvalidBinding)
	}

	b := &DebugBinding{
		Label:    label,
		Range:    r,
		Step:     step,
		get:      get,
		set:      set,
		decimals: gridDecimals(r, step),
	}
	p.bindings = append(p.bindings, b)
	p.byLabel[label] = b
	return b, nil
}

func (p *DebugPanel) Bindings() []*DebugBinding { return p.bindings }

func (p *DebugPanel) Lookup(label string) (*DebugBinding, bool) {
	b, ok := p.byLabel[label]
	return b, ok
}

// Set delivers a change event to the control labelled label.
func (p *DebugPanel) Set(label string, v float64) (float64, error) {
	b, ok := p.byLabel[label]
	if !ok {
		return 0, fmt.Errorf("no control %q: %w", label, ErrUnknownField)
	}
	return b.Set(v), nil
}

// Select moves the keyboard focus by delta controls, wrapping around.
func (p *DebugPanel) Select(delta int) *DebugBinding {
	n := len(p.bindings)
	if n == 0 {
		return nil
	}
	p.selected = ((p.selected+delta)%n + n) % n
	return p.bindings[p.selected]
}

func (p *DebugPanel) Selected() *DebugBinding {
	if len(p.bindings) == 0 {
		return nil
	}
	return p.bindings[p.selected]
}

// Nudge steps the focused control.
func (p *DebugPanel) Nudge(steps int) (float64, bool) {
	b := p.Selected()
	if b == nil {
		return 0, false
	}
	return b.Nudge(steps), true
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// gridDecimals is the precision of the min + n*step grid.
func gridDecimals(r Range, step float64) int {
	if step <= 0 {
		return 0
	}
	return max(decimalPlaces(step), decimalPlaces(r.Min))
}

func decimalPlaces(v float64) int {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

// BindingSpec names a light field to expose on the panel.
type BindingSpec struct {
	Light string
	Field string
	Range Range
	Step  float64
	Label string
}

func DefaultBindingSpecs() []BindingSpec {
	intensity := Range{0, 3}
	length := Range{0, 10}
	return []BindingSpec{
		{"ambient", "intensity", intensity, 0.01, "Ambient Light Intensity"},
		{"directional", "intensity", intensity, 0.01, "Directional Light Intensity"},
		{"hemisphere", "intensity", intensity, 0.01, "Hemisphere Light Intensity"},
		{"point", "intensity", intensity, 0.01, "Point Light Intensity"},
		{"point", "distance", length, 0.01, "Point Light Distance"},
		{"point", "decay", length, 0.01, "Point Light Decay"},
		{"spot", "intensity", intensity, 0.01, "Spot Light Intensity"},
		{"spot", "distance", length, 0.01, "Spot Light Distance"},
		{"spot", "penumbra", Range{0, 1}, 0.01, "Spot Light Penumbra"},
		{"spot", "decay", length, 0.01, "Spot Light Decay"},
		{"spot", "angle", Range{0, math.Pi}, 0.01, "Spot Light Angle"},
	}
}

// DebugPanelModule binds controls to the lights built by LightRigModule,
// which must be installed first.
type DebugPanelModule struct {
	Specs []BindingSpec
}

func (m DebugPanelModule) Install(app *App, cmd *Commands) error {
	rig, ok := Resource[LightRig](app)
	if !ok {
		return fmt.Errorf("debug panel needs the light rig: %w", ErrMissingResource)
	}
	specs := m.Specs
	if specs == nil {
		specs = DefaultBindingSpecs()
	}

	panel := NewDebugPanel()
	for _, s := range specs {
		l, ok := rig.Light(s.Light)
		if !ok {
			return fmt.Errorf("bind %q: no light %q: %w", s.Label, s.Light, ErrUnknownField)
		}
		if _, err := panel.Bind(l, s.Field, s.Range, s.Step, s.Label); err != nil {
			return err
		}
	}
	app.ctx.Panel = panel
	cmd.AddResources(panel)
	app.Logger().Debugf("debug panel: %d controls", len(panel.Bindings()))
	return nil
}
