package host

import (
	"fmt"
	"math"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/gekko3d/lightlab"
)

// GPU owns the wgpu device and swapchain of one window. It is both the
// scene's Surface and its Renderer.
type GPU struct {
	surface *wgpu.Surface
	adapter *wgpu.Adapter
	device  *wgpu.Device
	queue   *wgpu.Queue
	config  *wgpu.SurfaceConfiguration

	width, height int
	ratio         float64
	dirty         bool
}

func NewGPU(w *Window) (*GPU, error) {
	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	surface := instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(w.win))
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		surface.Release()
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "lightlab device",
	})
	if err != nil {
		adapter.Release()
		surface.Release()
		return nil, fmt.Errorf("request device: %w", err)
	}

	caps := surface.GetCapabilities(adapter)
	if len(caps.Formats) == 0 || len(caps.AlphaModes) == 0 {
		device.Release()
		adapter.Release()
		surface.Release()
		return nil, fmt.Errorf("surface reports no formats")
	}
	width, height := w.Size()
	g := &GPU{
		surface: surface,
		adapter: adapter,
		device:  device,
		queue:   device.GetQueue(),
		config: &wgpu.SurfaceConfiguration{
			Usage:       wgpu.TextureUsageRenderAttachment,
			Format:      caps.Formats[0],
			PresentMode: wgpu.PresentModeFifo,
			AlphaMode:   caps.AlphaModes[0],
		},
		width:  width,
		height: height,
		ratio:  1,
		dirty:  true,
	}
	g.configure()
	return g, nil
}

func (g *GPU) SetSize(width, height int) {
	g.width, g.height = width, height
	g.dirty = true
}

func (g *GPU) SetPixelRatio(ratio float64) {
	g.ratio = ratio
	g.dirty = true
}

func (g *GPU) configure() {
	w := uint32(math.Round(float64(g.width) * g.ratio))
	h := uint32(math.Round(float64(g.height) * g.ratio))
	if w == 0 || h == 0 {
		return
	}
	g.config.Width, g.config.Height = w, h
	g.surface.Configure(g.adapter, g.device, g.config)
	g.dirty = false
}

// Render presents one frame cleared to the scene's uniform lighting.
func (g *GPU) Render(graph *lightlab.SceneGraph, cam *lightlab.PerspectiveCamera) error {
	if g.dirty {
		g.configure()
	}

	next, err := g.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("acquire surface texture: %w", err)
	}
	defer next.Release()
	view, err := next.CreateView(nil)
	if err != nil {
		return fmt.Errorf("surface view: %w", err)
	}
	defer view.Release()

	encoder, err := g.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("command encoder: %w", err)
	}
	defer encoder.Release()

	ambient := lightlab.SummarizeLighting(graph).Ambient
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    view,
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: wgpu.StoreOpStore,
				ClearValue: wgpu.Color{
					R: clamp01(ambient.R),
					G: clamp01(ambient.G),
					B: clamp01(ambient.B),
					A: 1,
				},
			},
		},
	})
	defer pass.Release()
	if err := pass.End(); err != nil {
		return fmt.Errorf("render pass: %w", err)
	}

	cmdBuf, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish frame: %w", err)
	}
	defer cmdBuf.Release()

	g.queue.Submit(cmdBuf)
	g.surface.Present()
	return nil
}

func (g *GPU) Release() {
	g.queue.Release()
	g.device.Release()
	g.adapter.Release()
	g.surface.Release()
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
