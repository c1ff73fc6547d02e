package gpu

import (
	"fmt"

	"github.com/gekko3d/pathrt/rt/shaders"

	"github.com/cogentcore/webgpu/wgpu"
)

// Binding slots of the ray-trace bind group (group 0 of raytrace.wgsl).
const (
	BindingParams   = 0
	BindingImage    = 1
	BindingSpheres  = 2
	BindingVertices = 3
	BindingMeshes   = 4
	BindingHistory  = 5
)

// Binding slots of the copy bind group (group 0 of fullscreen.wgsl).
const (
	BindingCopyImage   = 0
	BindingCopySampler = 1
)

// AccumFormat is the format of the intermediate image.
const AccumFormat = wgpu.TextureFormatRGBA8Unorm

// RaytraceLayoutEntries is the fixed resource interface of the ray-trace
// kernel. Pipeline creation fails if the shader declares anything else.
func RaytraceLayoutEntries() []wgpu.BindGroupLayoutEntry {
	readOnly := func(binding uint32) wgpu.BindGroupLayoutEntry {
		return wgpu.BindGroupLayoutEntry{
			Binding:    binding,
			Visibility: wgpu.ShaderStageCompute,
			Buffer: wgpu.BufferBindingLayout{
				Type: wgpu.BufferBindingTypeReadOnlyStorage,
			},
		}
	}
	return []wgpu.BindGroupLayoutEntry{
		{
			Binding:    BindingParams,
			Visibility: wgpu.ShaderStageCompute,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: FrameParamsSize,
			},
		},
		{
			Binding:    BindingImage,
			Visibility: wgpu.ShaderStageCompute,
			StorageTexture: wgpu.StorageTextureBindingLayout{
				Access:        wgpu.StorageTextureAccessWriteOnly,
				Format:        AccumFormat,
				ViewDimension: wgpu.TextureViewDimension2D,
			},
		},
		readOnly(BindingSpheres),
		readOnly(BindingVertices),
		readOnly(BindingMeshes),
		{
			Binding:    BindingHistory,
			Visibility: wgpu.ShaderStageCompute,
			Buffer: wgpu.BufferBindingLayout{
				Type: wgpu.BufferBindingTypeStorage,
			},
		},
	}
}

func CopyLayoutEntries() []wgpu.BindGroupLayoutEntry {
	return []wgpu.BindGroupLayoutEntry{
		{
			Binding:    BindingCopyImage,
			Visibility: wgpu.ShaderStageFragment,
			Texture: wgpu.TextureBindingLayout{
				SampleType:    wgpu.TextureSampleTypeFloat,
				ViewDimension: wgpu.TextureViewDimension2D,
			},
		},
		{
			Binding:    BindingCopySampler,
			Visibility: wgpu.ShaderStageFragment,
			Sampler: wgpu.SamplerBindingLayout{
				Type: wgpu.SamplerBindingTypeNonFiltering,
			},
		},
	}
}

// Pipelines holds both programs and the layouts their bind groups are made from.
type Pipelines struct {
	TraceLayout *wgpu.BindGroupLayout
	CopyLayout  *wgpu.BindGroupLayout
	Trace       *wgpu.ComputePipeline
	Copy        *wgpu.RenderPipeline
}

// CreatePipelines compiles the ray-trace and copy programs against the fixed
// layouts. Any error here is a setup failure.
func CreatePipelines(device *wgpu.Device, surfaceFormat wgpu.TextureFormat) (*Pipelines, error) {
	p := &Pipelines{}
	var err error

	p.TraceLayout, err = device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "Raytrace BGL",
		Entries: RaytraceLayoutEntries(),
	})
	if err != nil {
		return nil, fmt.Errorf("raytrace bind group layout: %w", err)
	}
	p.CopyLayout, err = device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "Copy BGL",
		Entries: CopyLayoutEntries(),
	})
	if err != nil {
		return nil, fmt.Errorf("copy bind group layout: %w", err)
	}

	csModule, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Raytrace CS",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.RaytraceWGSL},
	})
	if err != nil {
		return nil, fmt.Errorf("compile raytrace shader: %w", err)
	}
	defer csModule.Release()

	fsModule, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Fullscreen VS/FS",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.FullscreenWGSL},
	})
	if err != nil {
		return nil, fmt.Errorf("compile fullscreen shader: %w", err)
	}
	defer fsModule.Release()

	traceLayout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Raytrace Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{p.TraceLayout},
	})
	if err != nil {
		return nil, fmt.Errorf("raytrace pipeline layout: %w", err)
	}
	p.Trace, err = device.CreateComputePipeline(&wgpu.ComputePipelineDescriptor{
		Label:  "Raytrace Pipeline",
		Layout: traceLayout,
		Compute: wgpu.ProgrammableStageDescriptor{
			Module:     csModule,
			EntryPoint: "main",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("raytrace pipeline: %w", err)
	}

	copyLayout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Copy Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{p.CopyLayout},
	})
	if err != nil {
		return nil, fmt.Errorf("copy pipeline layout: %w", err)
	}
	p.Copy, err = device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Blit Pipeline",
		Layout: copyLayout,
		Vertex: wgpu.VertexState{
			Module:     fsModule,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     fsModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    surfaceFormat,
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
		return nil, fmt.Errorf("copy pipeline: %w", err)
	}
	return p, nil
}

// WorkgroupCount returns the dispatch grid covering a w x h image.
func WorkgroupCount(w, h uint32) (uint32, uint32) {
	const g = shaders.WorkgroupSize
	return (w + g - 1) / g, (h + g - 1) / g
}

func (p *Pipelines) Release() {
	if p == nil {
		return
	}
	if p.Trace != nil {
		p.Trace.Release()
	}
	if p.Copy != nil {
		p.Copy.Release()
	}
	if p.TraceLayout != nil {
		p.TraceLayout.Release()
	}
	if p.CopyLayout != nil {
		p.CopyLayout.Release()
	}
}
