// Package shaders embeds the WGSL programs used by the renderer.
package shaders

import (
	_ "embed"
)

// RaytraceWGSL is the progressive path-tracing compute kernel. Its group 0
// layout must match gpu.RaytraceLayoutEntries.
//
//go:embed raytrace.wgsl
var RaytraceWGSL string

// FullscreenWGSL draws the accumulation image onto the surface with one
// oversized triangle.
//
//go:embed fullscreen.wgsl
var FullscreenWGSL string

//go:embed text.wgsl
var TextWGSL string

// Workgroup tile edge of raytrace.wgsl's @workgroup_size.
const WorkgroupSize = 8
