package gpu

import (
	"fmt"
	"unsafe"

	"github.com/gekko3d/pathrt/rt/core"
	"github.com/gekko3d/pathrt/rt/shaders"

	"github.com/cogentcore/webgpu/wgpu"
)

// HUDPass draws text quads over the presented image. It implements Overlay.
type HUDPass struct {
	device *wgpu.Device
	queue  *wgpu.Queue

	atlas     *wgpu.Texture
	atlasView *wgpu.TextureView
	sampler   *wgpu.Sampler
	pipeline  *wgpu.RenderPipeline
	bindGroup *wgpu.BindGroup

	vertices    *wgpu.Buffer
	vertexCount uint32
}

// NewHUDPass uploads the glyph atlas of tr and builds the alpha-blended text
// pipeline for the surface format.
func NewHUDPass(device *wgpu.Device, tr *core.TextRenderer, format wgpu.TextureFormat) (_ *HUDPass, err error) {
	h := &HUDPass{device: device, queue: device.GetQueue()}
	defer func() {
		if err != nil {
			h.Release()
		}
	}()

	w, ht := uint32(tr.Atlas.Bounds().Dx()), uint32(tr.Atlas.Bounds().Dy())
	h.atlas, err = device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Text Atlas",
		Size:          wgpu.Extent3D{Width: w, Height: ht, DepthOrArrayLayers: 1},
		Format:        wgpu.TextureFormatR8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("text atlas: %w", err)
	}
	err = h.queue.WriteTexture(h.atlas.AsImageCopy(), tr.Atlas.Pix, &wgpu.TextureDataLayout{
		Offset:       0,
		BytesPerRow:  uint32(tr.Atlas.Stride),
		RowsPerImage: ht,
	}, &wgpu.Extent3D{Width: w, Height: ht, DepthOrArrayLayers: 1})
	if err != nil {
		return nil, fmt.Errorf("upload text atlas: %w", err)
	}

	h.atlasView, err = h.atlas.CreateView(nil)
	if err != nil {
		return nil, fmt.Errorf("text atlas view: %w", err)
	}
	h.sampler, err = device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Text Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("text sampler: %w", err)
	}

	mod, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Text Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.TextWGSL},
	})
	if err != nil {
		return nil, fmt.Errorf("compile text shader: %w", err)
	}
	defer mod.Release()

	h.pipeline, err = device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "Text Pipeline",
		Vertex: wgpu.VertexState{
			Module:     mod,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: uint64(unsafe.Sizeof(core.TextVertex{})),
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
					{Format: wgpu.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
					{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2},
				},
			}},
		},
		Fragment: &wgpu.FragmentState{
			Module:     mod,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format: format,
				Blend: &wgpu.BlendState{
					Color: wgpu.BlendComponent{
						SrcFactor: wgpu.BlendFactorSrcAlpha,
						DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						Operation: wgpu.BlendOperationAdd,
					},
					Alpha: wgpu.BlendComponent{
						SrcFactor: wgpu.BlendFactorOne,
						DstFactor: wgpu.BlendFactorOne,
						Operation: wgpu.BlendOperationAdd,
					},
				},
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopologyTriangleList,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("text pipeline: %w", err)
	}

	layout := h.pipeline.GetBindGroupLayout(0)
	defer layout.Release()
	h.bindGroup, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Text BG",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: h.atlasView},
			{Binding: 1, Sampler: h.sampler},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("text bind group: %w", err)
	}
	return h, nil
}

// Update replaces the quads drawn next frame. The vertex buffer only grows.
func (h *HUDPass) Update(vertices []core.TextVertex) error {
	h.vertexCount = 0
	if len(vertices) == 0 {
		return nil
	}
	size := uint64(len(vertices)) * uint64(unsafe.Sizeof(core.TextVertex{}))
	if h.vertices == nil || h.vertices.GetSize() < size {
		if h.vertices != nil {
			h.vertices.Release()
			h.vertices = nil
		}
		buf, err := h.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "Text VB",
			Size:  size,
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("text vertex buffer: %w", err)
		}
		h.vertices = buf
	}
	if err := h.queue.WriteBuffer(h.vertices, 0, unsafe.Slice((*byte)(unsafe.Pointer(&vertices[0])), size)); err != nil {
		return fmt.Errorf("write text vertices: %w", err)
	}
	h.vertexCount = uint32(len(vertices))
	return nil
}

func (h *HUDPass) Draw(pass *wgpu.RenderPassEncoder) {
	if h == nil || h.vertexCount == 0 || h.vertices == nil {
		return
	}
	pass.SetPipeline(h.pipeline)
	pass.SetBindGroup(0, h.bindGroup, nil)
	pass.SetVertexBuffer(0, h.vertices, 0, h.vertices.GetSize())
	pass.Draw(h.vertexCount, 1, 0, 0)
}

func (h *HUDPass) Release() {
	if h == nil {
		return
	}
	if h.bindGroup != nil {
		h.bindGroup.Release()
	}
	if h.pipeline != nil {
		h.pipeline.Release()
	}
	if h.vertices != nil {
		h.vertices.Release()
	}
	if h.sampler != nil {
		h.sampler.Release()
	}
	if h.atlasView != nil {
		h.atlasView.Release()
	}
	if h.atlas != nil {
		h.atlas.Release()
	}
	*h = HUDPass{}
}
