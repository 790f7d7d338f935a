package scene

import "rendercore/core"

// RenderPath selects which stage a mesh's material is drawn in. Opaque/
// cutout surfaces fill the G-buffer during the deferred pass; translucent
// and unlit surfaces are drawn forward, after deferred lighting resolves,
// so they can read the already-lit scene and blend against it.
type RenderPath int

const (
	PathOpaque RenderPath = iota
	PathTranslucent
	PathUnlit
)

// Material is a PBR metallic-roughness material feeding the deferred
// G-buffer: Albedo/Metallic/Roughness/Reflectance/AmbientOcclusion/Emissive
// channels, each an optional texture multiplied against its scalar.
// Grounded on the reference renderer's dual Phong/PBR scene.Material, collapsed to
// PBR-only (Phong support is dropped: the deferred G-buffer only has room
// for the metallic-roughness-reflectance channel this renderer's lighting pass
// expects, not a separate specular color).
type Material struct {
	Name string
	Path RenderPath

	Albedo           core.Color
	Metallic         float32
	Roughness        float32
	Reflectance      float32 // dielectric F0, this pipeline default 0.5
	AmbientOcclusion float32
	EmissiveColor    core.Color
	EmissiveStrength float32

	AlbedoTexture           *Texture
	NormalTexture           *Texture
	MetallicRoughnessTexture *Texture // G = roughness, B = metallic (glTF convention)
	AmbientOcclusionTexture *Texture
	EmissiveTexture         *Texture
}

func DefaultMaterial() *Material {
	return &Material{
		Name:             "Default",
		Path:             PathOpaque,
		Albedo:           core.ColorWhite,
		Metallic:         0,
		Roughness:        0.5,
		Reflectance:      0.5,
		AmbientOcclusion: 1,
		EmissiveStrength: 1,
	}
}

func NewMaterial(name string, albedo core.Color, metallic, roughness float32) *Material {
	return &Material{
		Name:             name,
		Path:             PathOpaque,
		Albedo:           albedo,
		Metallic:         metallic,
		Roughness:        roughness,
		Reflectance:      0.5,
		AmbientOcclusion: 1,
		EmissiveStrength: 1,
	}
}
