package app

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/gekko3d/pathrt"
	"github.com/gekko3d/pathrt/rt/core"
	"github.com/gekko3d/pathrt/rt/gpu"
	"github.com/gekko3d/pathrt/rt/input"
	"github.com/gekko3d/pathrt/rt/scenes"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var ErrNoAdapter = errors.New("no compatible GPU adapter")

const hudFontSize = 20

type App struct {
	Window   *glfw.Window
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
	Surface  *wgpu.Surface
	Config   *wgpu.SurfaceConfiguration

	Manager *gpu.Manager
	Text    *core.TextRenderer
	HUD     *gpu.HUDPass

	State      *RenderState
	Controller *input.Controller
	Resizer    *Resizer
	Loop       *Loop
	Profiler   *Profiler

	cfg       pathrt.Config
	log       pathrt.Logger
	lastTitle time.Time
}

func NewApp(window *glfw.Window, scene *scenes.Scene, cfg pathrt.Config, logger pathrt.Logger) *App {
	cfg.Normalize()
	a := &App{
		Window:     window,
		Controller: input.NewController(cfg),
		cfg:        cfg,
		log:        pathrt.OrNop(logger),
	}
	a.Loop = NewLoop(a.log)
	a.Profiler = NewProfiler()
	a.State = NewRenderState(scene, cfg.Width, cfg.Height, cfg.HUD)
	a.State.Input.OnGrab = a.setCursorGrab
	return a
}

// Init brings up the device, the surface and every GPU resource. Any error
// is a setup failure.
func (a *App) Init() error {
	a.Instance = wgpu.CreateInstance(nil)
	a.Surface = a.Instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(a.Window))

	adapter, err := a.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: a.Surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoAdapter, err)
	}
	if adapter == nil {
		return ErrNoAdapter
	}
	a.Adapter = adapter

	a.Device, err = adapter.RequestDevice(nil)
	if err != nil {
		return fmt.Errorf("request device: %w", err)
	}
	a.Queue = a.Device.GetQueue()

	width, height := a.Window.GetFramebufferSize()
	caps := a.Surface.GetCapabilities(adapter)
	if len(caps.Formats) == 0 {
		return fmt.Errorf("surface reports no formats: %w", ErrNoAdapter)
	}
	a.Config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(max(width, 1)),
		Height:      uint32(max(height, 1)),
		PresentMode: choosePresentMode(caps.PresentModes, a.cfg.VSync),
		AlphaMode:   caps.AlphaModes[0],
	}
	a.Surface.Configure(a.Adapter, a.Device, a.Config)

	a.Manager = gpu.NewManager(a.Device, a.log)
	if err := a.Manager.Init(a.Config.Format); err != nil {
		return err
	}
	scene := a.State.Scene
	if _, err := a.Manager.BuildSceneBuffers(scene.Spheres, scene.Meshes); err != nil {
		return fmt.Errorf("scene %q: %w", scene.Name, err)
	}
	if err := a.Manager.RebuildForSize(a.Config.Width, a.Config.Height); err != nil {
		return err
	}
	a.Profiler.SetCount("spheres", int(a.Manager.Scene.SphereCount))
	a.Profiler.SetCount("meshes", int(a.Manager.Scene.MeshCount))
	a.Profiler.SetCount("vertices", int(a.Manager.Scene.VertexCount))
	a.Resizer = NewResizer(a, a.State.Input, &a.State.Accum, a.Config.Width, a.Config.Height, a.log)
	a.State.Input.OnResize(int(a.Config.Width), int(a.Config.Height))

	// the HUD is optional; a failure here only costs the overlay
	a.Text, err = core.NewDefaultTextRenderer(hudFontSize)
	if err == nil {
		a.HUD, err = gpu.NewHUDPass(a.Device, a.Text, a.Config.Format)
	}
	if err != nil {
		a.log.Warnf("HUD disabled: %v", err)
		a.Text, a.HUD = nil, nil
	}
	return nil
}

func choosePresentMode(modes []wgpu.PresentMode, vsync bool) wgpu.PresentMode {
	if vsync {
		return wgpu.PresentModeFifo
	}
	for _, want := range []wgpu.PresentMode{wgpu.PresentModeMailbox, wgpu.PresentModeImmediate} {
		for _, m := range modes {
			if m == want {
				return m
			}
		}
	}
	return wgpu.PresentModeFifo
}

// ConfigureSurface resizes the swap chain.
func (a *App) ConfigureSurface(w, h uint32) {
	a.Config.Width = w
	a.Config.Height = h
	a.Surface.Configure(a.Adapter, a.Device, a.Config)
}

func (a *App) RebuildForSize(w, h uint32) error {
	return a.Manager.RebuildForSize(w, h)
}

// Resize is the framebuffer size callback body.
func (a *App) Resize(w, h int) {
	if err := a.Loop.Transition(Resizing); err != nil {
		a.log.Debugf("resize %dx%d skipped: %v", w, h, err)
		return
	}
	if _, err := a.Resizer.Handle(w, h); err != nil {
		a.log.Errorf("%v", err)
	}
	_ = a.Loop.Transition(Idle)
}

// Close moves the loop to its terminal state and asks the window to close.
func (a *App) Close() {
	if a.Loop.Closing() {
		return
	}
	_ = a.Loop.Transition(Closing)
	a.Window.SetShouldClose(true)
}

func (a *App) setCursorGrab(grabbed bool) {
	if a.Window == nil {
		return
	}
	if grabbed {
		a.Window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		a.Window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

// Frame runs one tick: integrate input, encode params, trace, copy, draw the
// HUD, submit and present. Frame-level failures are logged and the frame is
// skipped; the next tick retries.
func (a *App) Frame() {
	if a.State.Input.CloseRequested() {
		a.Close()
	}
	if a.Loop.Closing() {
		return
	}
	if err := a.Loop.Transition(Rendering); err != nil {
		a.log.Warnf("frame skipped: %v", err)
		return
	}
	defer func() {
		if !a.Loop.Closing() {
			_ = a.Loop.Transition(Idle)
		}
	}()

	// Acquire before integrating so a skipped frame does not count as an
	// accumulated sample.
	a.Profiler.Begin("acquire")
	surfaceTex, err := a.Surface.GetCurrentTexture()
	a.Profiler.End("acquire")
	if err != nil {
		a.log.Warnf("acquire surface texture: %v; reconfiguring", err)
		a.Surface.Configure(a.Adapter, a.Device, a.Config)
		return
	}
	defer surfaceTex.Release()

	view, err := surfaceTex.CreateView(nil)
	if err != nil {
		a.log.Errorf("surface view: %v", err)
		return
	}
	defer view.Release()

	a.Profiler.Begin("integrate")
	frames := a.State.Integrate(a.Controller, time.Now())
	a.Profiler.End("integrate")

	a.Profiler.Begin("encode")
	params, err := a.Manager.Params(a.State.FrameParams(frames, rand.Float32()))
	if err != nil {
		a.log.Errorf("frame params: %v", err)
		return
	}
	if err := a.Manager.WriteParams(params); err != nil {
		a.log.Errorf("write params: %v", err)
		return
	}

	var overlays []gpu.Overlay
	if a.State.ShowHUD && a.HUD != nil {
		lines := HUDLines(a.State)
		if a.cfg.Debug {
			lines = append(lines, a.Profiler.Lines()...)
		}
		items := HUDItems(a.Text, lines, int(a.Config.Width), int(a.Config.Height))
		verts := a.Text.BuildVertices(items, int(a.Config.Width), int(a.Config.Height))
		if err := a.HUD.Update(verts); err != nil {
			a.log.Warnf("hud: %v", err)
		} else {
			overlays = append(overlays, a.HUD)
		}
	}

	encoder, err := a.Device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "Frame Encoder"})
	if err != nil {
		a.log.Errorf("command encoder: %v", err)
		return
	}
	defer encoder.Release()

	if err := a.Manager.EncodeTrace(encoder); err != nil {
		a.log.Errorf("%v", err)
		return
	}
	if err := a.Manager.EncodeCopy(encoder, view, overlays...); err != nil {
		a.log.Errorf("%v", err)
		return
	}

	cmd, err := encoder.Finish(nil)
	a.Profiler.End("encode")
	if err != nil {
		a.log.Errorf("encoder finish: %v", err)
		return
	}
	defer cmd.Release()

	a.Profiler.Begin("submit")
	a.Queue.Submit(cmd)
	a.Surface.Present()
	a.Profiler.End("submit")
	a.State.Submitted()

	if a.State.Clock.Time.Sub(a.lastTitle) >= time.Second {
		a.lastTitle = a.State.Clock.Time
		a.Window.SetTitle(WindowTitle(a.cfg.Title, a.State.Scene.Name, a.State.Clock.FPS))
	}
}

func (a *App) Release() {
	a.HUD.Release()
	if a.Manager != nil {
		a.Manager.Release()
	}
	if a.Device != nil {
		a.Device.Release()
	}
	if a.Adapter != nil {
		a.Adapter.Release()
	}
	if a.Surface != nil {
		a.Surface.Release()
	}
	if a.Instance != nil {
		a.Instance.Release()
	}
}
