// Package uniform defines the bit-exact uniform-block binding points and
// sampler slots this pipeline establish as a hard ABI between the CPU and
// every shader source, plus the CPU-side structs that are memcpy'd (via
// rhi.Device.UpdateUniformBuffer) into each block's std140 layout.
package uniform

// Uniform block binding points.
const (
	BindingCamera  = 0
	BindingModel   = 1
	BindingLights  = 2
	BindingMaterial = 4
	BindingSkinned = 5
)

// Sampler binding points, fixed across every lighting/material shader.
const (
	SamplerMaterialBase = 0 // material textures occupy 0-5
	SamplerGBufferBase  = 5 // G-buffer slots occupy 5-10
	SamplerIBLBase      = 12
	SamplerIBLIrradiance = 12
	SamplerIBLPrefilter  = 13
	SamplerIBLBRDFLUT    = 14
	SamplerShadowBase    = 15 // directional=15, spot=16, point=17
	SamplerShadowDirectional = 15
	SamplerShadowSpot        = 16
	SamplerShadowPoint       = 17
	SamplerHDRColor          = 10 // tone-mapper input
	SamplerBloomResult       = 1  // tone-mapper input
)

// Max counts compiled into shader sources and uniform block sizes; raising
// them is an ABI break (this pipeline).
const (
	MaxPointLights       = 50
	MaxSpotLights        = 50
	MaxDirectionalLights = 1
	MaxBones             = 100
	CascadeCount         = 4
)

// Std140Vec3 pads a Vec3 to 16 bytes, matching GLSL's std140 alignment rule
// for vec3 members inside a uniform block.
type Std140Vec3 struct {
	X, Y, Z float32
	_       float32
}
