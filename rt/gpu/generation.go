package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/google/uuid"
)

// Generation is every resource whose lifetime is tied to the surface size.
// The image, the history buffer and both bind groups that reference them are
// created together and released together, so no bind group can outlive the
// image it points at.
type Generation struct {
	ID     uuid.UUID
	Seq    uint64
	Width  uint32
	Height uint32

	Image   *wgpu.Texture
	View    *wgpu.TextureView
	History *wgpu.Buffer

	TraceBindGroup *wgpu.BindGroup
	CopyBindGroup  *wgpu.BindGroup

	released bool
}

func (g *Generation) String() string {
	if g == nil {
		return "generation(nil)"
	}
	return fmt.Sprintf("generation#%d(%dx%d %s)", g.Seq, g.Width, g.Height, g.ID.String()[:8])
}

func (g *Generation) Workgroups() (uint32, uint32) {
	return WorkgroupCount(g.Width, g.Height)
}

// HistorySize is the byte size of the vec4<f32> running-average buffer.
func HistorySize(w, h uint32) uint64 {
	return uint64(w) * uint64(h) * 16
}

// Released reports whether Release has run.
func (g *Generation) Released() bool {
	return g.released
}

// Release frees bind groups before the resources they reference.
func (g *Generation) Release() {
	if g == nil || g.released {
		return
	}
	g.released = true
	if g.TraceBindGroup != nil {
		g.TraceBindGroup.Release()
	}
	if g.CopyBindGroup != nil {
		g.CopyBindGroup.Release()
	}
	if g.View != nil {
		g.View.Release()
	}
	if g.History != nil {
		g.History.Release()
	}
	if g.Image != nil {
		g.Image.Release()
	}
}

// buildGeneration creates a complete generation for w x h. On error every
// partially created resource is released.
func (m *Manager) buildGeneration(w, h uint32) (_ *Generation, err error) {
	id := uuid.New()
	gen := &Generation{ID: id, Width: w, Height: h}
	defer func() {
		if err != nil {
			gen.Release()
		}
	}()

	label := "Accum " + id.String()[:8]
	gen.Image, err = m.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label,
		Size:          wgpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        AccumFormat,
		Usage:         wgpu.TextureUsageStorageBinding | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		return nil, fmt.Errorf("accumulation image %dx%d: %w", w, h, err)
	}
	gen.View, err = gen.Image.CreateView(nil)
	if err != nil {
		return nil, fmt.Errorf("accumulation view: %w", err)
	}
	gen.History, err = m.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " History",
		Size:  HistorySize(w, h),
		Usage: wgpu.BufferUsageStorage,
	})
	if err != nil {
		return nil, fmt.Errorf("history buffer: %w", err)
	}

	sb := m.Scene
	gen.TraceBindGroup, err = m.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label + " Raytrace BG",
		Layout: m.Pipelines.TraceLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: BindingParams, Buffer: m.ParamsBuf, Size: FrameParamsSize},
			{Binding: BindingImage, TextureView: gen.View},
			{Binding: BindingSpheres, Buffer: sb.Spheres, Size: wgpu.WholeSize},
			{Binding: BindingVertices, Buffer: sb.Vertices, Size: wgpu.WholeSize},
			{Binding: BindingMeshes, Buffer: sb.Meshes, Size: wgpu.WholeSize},
			{Binding: BindingHistory, Buffer: gen.History, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("raytrace bind group: %w", err)
	}
	gen.CopyBindGroup, err = m.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label + " Copy BG",
		Layout: m.Pipelines.CopyLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: BindingCopyImage, TextureView: gen.View},
			{Binding: BindingCopySampler, Sampler: m.Sampler},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("copy bind group: %w", err)
	}
	return gen, nil
}
