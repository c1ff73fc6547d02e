package gpu

import (
	"errors"
	"fmt"

	"github.com/gekko3d/pathrt"
	"github.com/gekko3d/pathrt/rt/core"

	"github.com/cogentcore/webgpu/wgpu"
)

var (
	ErrNoGeneration   = errors.New("no size-dependent resources: RebuildForSize was not called")
	ErrNoSceneBuffers = errors.New("scene buffers not built")
	ErrZeroSize       = errors.New("zero-area size")
	ErrParamsMismatch = errors.New("frame params disagree with bound resources")
)

// SceneBuffers are the read-only storage buffers built once from the scene.
type SceneBuffers struct {
	Spheres  *wgpu.Buffer
	Vertices *wgpu.Buffer
	Meshes   *wgpu.Buffer

	SphereCount uint32
	MeshCount   uint32
	VertexCount uint32
}

func (sb *SceneBuffers) Release() {
	if sb == nil {
		return
	}
	for _, b := range []*wgpu.Buffer{sb.Spheres, sb.Vertices, sb.Meshes} {
		if b != nil {
			b.Release()
		}
	}
}

// Overlay draws extra geometry into the present pass after the copy.
type Overlay interface {
	Draw(pass *wgpu.RenderPassEncoder)
}

// Manager owns every device resource of the renderer. Scene buffers, the
// params buffer, the sampler and the pipelines live for the whole process;
// the size-dependent resources live in the current Generation.
type Manager struct {
	Device *wgpu.Device
	Queue  *wgpu.Queue

	ParamsBuf *wgpu.Buffer
	Sampler   *wgpu.Sampler
	Scene     *SceneBuffers
	Pipelines *Pipelines

	current *Generation
	seq     uint64
	build   func(w, h uint32) (*Generation, error)
	log     pathrt.Logger
}

func NewManager(device *wgpu.Device, logger pathrt.Logger) *Manager {
	m := &Manager{
		Device: device,
		log:    pathrt.OrNop(logger),
	}
	if device != nil {
		m.Queue = device.GetQueue()
	}
	m.build = m.buildGeneration
	return m
}

// Init creates the pipelines, the params uniform and the copy sampler.
func (m *Manager) Init(surfaceFormat wgpu.TextureFormat) error {
	var err error
	m.Pipelines, err = CreatePipelines(m.Device, surfaceFormat)
	if err != nil {
		return err
	}
	m.ParamsBuf, err = m.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "ParamsUB",
		Size:  FrameParamsSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("params buffer: %w", err)
	}
	m.Sampler, err = m.Device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Copy Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeNearest,
		MinFilter:     wgpu.FilterModeNearest,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return fmt.Errorf("copy sampler: %w", err)
	}
	return nil
}

// BuildSceneBuffers uploads the scene once. The buffers are never written
// again.
func (m *Manager) BuildSceneBuffers(spheres []core.Sphere, meshes []core.TriangleMesh) (*SceneBuffers, error) {
	vertices, descs := Flatten(meshes)
	sb := &SceneBuffers{
		SphereCount: uint32(len(spheres)),
		MeshCount:   uint32(len(descs)),
		VertexCount: uint32(len(vertices)),
	}

	uploads := []struct {
		label string
		dst   **wgpu.Buffer
		data  []byte
	}{
		{"SpheresBuf", &sb.Spheres, EncodeSpheres(spheres)},
		{"VerticesBuf", &sb.Vertices, EncodeVertices(vertices)},
		{"MeshesBuf", &sb.Meshes, EncodeMeshes(descs)},
	}
	for _, u := range uploads {
		buf, err := m.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
			Label:    u.label,
			Contents: u.data,
			Usage:    wgpu.BufferUsageStorage,
		})
		if err != nil {
			sb.Release()
			return nil, fmt.Errorf("%s: %w", u.label, err)
		}
		*u.dst = buf
	}

	m.Scene.Release()
	m.Scene = sb
	m.log.Infof("scene buffers: %d spheres, %d meshes, %d vertices", sb.SphereCount, sb.MeshCount, sb.VertexCount)
	return sb, nil
}

// Current returns the live generation, or nil before the first rebuild.
func (m *Manager) Current() *Generation {
	return m.current
}

// RebuildForSize replaces the whole size-dependent generation. The new
// generation is complete before it becomes current; if building fails the
// previous one stays in place untouched.
func (m *Manager) RebuildForSize(w, h uint32) error {
	if w == 0 || h == 0 {
		return fmt.Errorf("rebuild %dx%d: %w", w, h, ErrZeroSize)
	}
	gen, err := m.build(w, h)
	if err != nil {
		return fmt.Errorf("rebuild %dx%d: %w", w, h, err)
	}
	m.seq++
	gen.Seq = m.seq

	old := m.current
	m.current = gen
	old.Release()

	m.log.Debugf("swapped in %s, released %s", gen, old)
	return nil
}

// Params fills in the resource-derived fields of p from what is actually
// bound, so counts and extent always match the buffers and image.
func (m *Manager) Params(p FrameParams) (FrameParams, error) {
	if m.Scene == nil {
		return p, ErrNoSceneBuffers
	}
	if m.current == nil {
		return p, ErrNoGeneration
	}
	p.SphereCount = m.Scene.SphereCount
	p.TriangleMeshCount = m.Scene.MeshCount
	p.Width = m.current.Width
	p.Height = m.current.Height
	return p, nil
}

// CheckParams verifies p against the bound resources.
func (m *Manager) CheckParams(p FrameParams) error {
	if m.Scene == nil {
		return ErrNoSceneBuffers
	}
	if m.current == nil {
		return ErrNoGeneration
	}
	if p.SphereCount != m.Scene.SphereCount || p.TriangleMeshCount != m.Scene.MeshCount {
		return fmt.Errorf("%w: counts %d/%d, buffers hold %d/%d", ErrParamsMismatch,
			p.SphereCount, p.TriangleMeshCount, m.Scene.SphereCount, m.Scene.MeshCount)
	}
	if p.Width != m.current.Width || p.Height != m.current.Height {
		return fmt.Errorf("%w: extent %dx%d, image is %dx%d", ErrParamsMismatch,
			p.Width, p.Height, m.current.Width, m.current.Height)
	}
	return nil
}

// WriteParams uploads the frame's params into the single uniform slot.
func (m *Manager) WriteParams(p FrameParams) error {
	if err := m.CheckParams(p); err != nil {
		return err
	}
	if err := m.Queue.WriteBuffer(m.ParamsBuf, 0, p.Marshal()); err != nil {
		return fmt.Errorf("write params: %w", err)
	}
	return nil
}

// EncodeTrace records the ray-trace compute pass over the current image.
func (m *Manager) EncodeTrace(encoder *wgpu.CommandEncoder) error {
	gen := m.current
	if gen == nil {
		return ErrNoGeneration
	}
	wgX, wgY := gen.Workgroups()
	pass := encoder.BeginComputePass(&wgpu.ComputePassDescriptor{Label: "Raytrace Pass"})
	pass.SetPipeline(m.Pipelines.Trace)
	pass.SetBindGroup(0, gen.TraceBindGroup, nil)
	pass.DispatchWorkgroups(wgX, wgY, 1)
	if err := pass.End(); err != nil {
		return fmt.Errorf("raytrace pass: %w", err)
	}
	return nil
}

// EncodeCopy records the fullscreen copy of the current image into target,
// followed by any overlays. It must be recorded after EncodeTrace in the same
// encoder: the compute pass has ended by then, so the image write is visible.
func (m *Manager) EncodeCopy(encoder *wgpu.CommandEncoder, target *wgpu.TextureView, overlays ...Overlay) error {
	gen := m.current
	if gen == nil {
		return ErrNoGeneration
	}
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "Present Pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       target,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
		}},
	})
	pass.SetPipeline(m.Pipelines.Copy)
	pass.SetBindGroup(0, gen.CopyBindGroup, nil)
	pass.Draw(3, 1, 0, 0)
	for _, o := range overlays {
		if o != nil {
			o.Draw(pass)
		}
	}
	if err := pass.End(); err != nil {
		return fmt.Errorf("present pass: %w", err)
	}
	return nil
}

func (m *Manager) Release() {
	m.current.Release()
	m.current = nil
	m.Scene.Release()
	m.Scene = nil
	if m.ParamsBuf != nil {
		m.ParamsBuf.Release()
		m.ParamsBuf = nil
	}
	if m.Sampler != nil {
		m.Sampler.Release()
		m.Sampler = nil
	}
	m.Pipelines.Release()
	m.Pipelines = nil
}
