package rhi

import (
	"unsafe"

	gl "github.com/go-gl/gl/v4.3-core/gl"

	"rendercore/resource"
	"rendercore/scene"
)

// TextureFormat names a GL (internalFormat, format, type) triple. Named
// constructors below cover every format this renderer's shadow/IBL/bloom/G-buffer
// contracts require; ad-hoc formats can still be built by hand.
type TextureFormat struct {
	Internal int32
	Format   uint32
	Type     uint32
}

var (
	FormatRGBA8   = TextureFormat{gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE}
	FormatRGB16F  = TextureFormat{gl.RGB16F, gl.RGB, gl.FLOAT}
	FormatRGBA16F = TextureFormat{gl.RGBA16F, gl.RGBA, gl.FLOAT}
	FormatRG16F   = TextureFormat{gl.RG16F, gl.RG, gl.FLOAT}
	FormatR32F    = TextureFormat{gl.R32F, gl.RED, gl.FLOAT}
	FormatRGB32F  = TextureFormat{gl.RGB32F, gl.RGB, gl.FLOAT}
	FormatRGBA32F = TextureFormat{gl.RGBA32F, gl.RGBA, gl.FLOAT}
	FormatDepth32F = TextureFormat{gl.DEPTH_COMPONENT32F, gl.DEPTH_COMPONENT, gl.FLOAT}
)

func setCommonTexParams(target uint32, wrap int32) {
	gl.TexParameteri(target, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(target, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(target, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(target, gl.TEXTURE_WRAP_T, wrap)
	if target == gl.TEXTURE_CUBE_MAP || target == gl.TEXTURE_CUBE_MAP_ARRAY || target == gl.TEXTURE_2D_ARRAY || target == gl.TEXTURE_3D {
		gl.TexParameteri(target, gl.TEXTURE_WRAP_R, wrap)
	}
}

// CreateTexture2D allocates a plain 2D texture, optionally seeded with
// pixels (nil allocates storage only — used for render targets).
func (d *Device) CreateTexture2D(width, height int, f TextureFormat, pixels unsafe.Pointer) resource.Handle {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, f.Internal, int32(width), int32(height), 0, f.Format, f.Type, pixels)
	setCommonTexParams(gl.TEXTURE_2D, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return d.textures.Insert(gpuTexture{id: id, target: gl.TEXTURE_2D, width: int32(width), height: int32(height), depth: 1, internalFormat: f.Internal})
}

// CreateTexture2DMip allocates a 2D texture with mipCount levels, no
// initial data — used for the bloom chain's mip[0..4]. The IBL
// prefiltered-radiance cubemap gets its per-mip roughness levels from
// CreateCubemap's mipCount argument instead.
func (d *Device) CreateTexture2DMip(width, height, mipCount int, f TextureFormat) resource.Handle {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexStorage2D(gl.TEXTURE_2D, int32(mipCount), uint32(f.Internal), int32(width), int32(height))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return d.textures.Insert(gpuTexture{id: id, target: gl.TEXTURE_2D, width: int32(width), height: int32(height), depth: int32(mipCount), internalFormat: f.Internal})
}

// CreateDepthTextureArray allocates the directional/spot shadow atlas: a
// Texture2DArray of depth32f with border color white, by convention so
// samples outside the atlas decode as "not in shadow".
func (d *Device) CreateDepthTextureArray(width, height, layers int) resource.Handle {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, id)
	gl.TexImage3D(gl.TEXTURE_2D_ARRAY, 0, gl.DEPTH_COMPONENT32F, int32(width), int32(height), int32(layers), 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	border := [4]float32{1, 1, 1, 1}
	gl.TexParameterfv(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_BORDER_COLOR, &border[0])
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, 0)
	return d.textures.Insert(gpuTexture{id: id, target: gl.TEXTURE_2D_ARRAY, width: int32(width), height: int32(height), depth: int32(layers), internalFormat: gl.DEPTH_COMPONENT32F})
}

// CreateDepthStencilTexture2D allocates the G-buffer's combined depth+stencil
// attachment (D32FS8), per the explicit G-buffer layout.
func (d *Device) CreateDepthStencilTexture2D(width, height int) resource.Handle {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH32F_STENCIL8, int32(width), int32(height), 0, gl.DEPTH_STENCIL, gl.FLOAT_32_UNSIGNED_INT_24_8_REV, nil)
	setCommonTexParams(gl.TEXTURE_2D, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return d.textures.Insert(gpuTexture{id: id, target: gl.TEXTURE_2D, width: int32(width), height: int32(height), depth: 1, internalFormat: gl.DEPTH32F_STENCIL8})
}

// CreateDepthTexture2D allocates a single scratch depth texture, reused as
// the GL depth buffer while rendering each face of every point-light
// shadow cube in turn.
func (d *Device) CreateDepthTexture2D(size int) resource.Handle {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT32F, int32(size), int32(size), 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	setCommonTexParams(gl.TEXTURE_2D, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return d.textures.Insert(gpuTexture{id: id, target: gl.TEXTURE_2D, width: int32(size), height: int32(size), depth: 1, internalFormat: gl.DEPTH_COMPONENT32F})
}

// CreateCubemapArray allocates the point-light shadow storage: a cubemap
// array of count cubes, each face R32F holding radial distance from the
// light (not hardware depth), by convention.
func (d *Device) CreateCubemapArray(size, count int, f TextureFormat) resource.Handle {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP_ARRAY, id)
	gl.TexImage3D(gl.TEXTURE_CUBE_MAP_ARRAY, 0, f.Internal, int32(size), int32(size), int32(count*6), 0, f.Format, f.Type, nil)
	setCommonTexParams(gl.TEXTURE_CUBE_MAP_ARRAY, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP_ARRAY, 0)
	return d.textures.Insert(gpuTexture{id: id, target: gl.TEXTURE_CUBE_MAP_ARRAY, width: int32(size), height: int32(size), depth: int32(count), internalFormat: f.Internal})
}

// CreateCubemap allocates a plain cubemap (the IBL environment/irradiance
// maps), with optional mip storage for the prefiltered-radiance cubemap.
func (d *Device) CreateCubemap(size, mipCount int, f TextureFormat) resource.Handle {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, id)
	for face := 0; face < 6; face++ {
		s := size
		for mip := 0; mip < mipCount; mip++ {
			gl.TexImage2D(uint32(gl.TEXTURE_CUBE_MAP_POSITIVE_X+face), int32(mip), f.Internal, int32(s), int32(s), 0, f.Format, f.Type, nil)
			if s > 1 {
				s /= 2
			}
		}
	}
	minFilter := int32(gl.LINEAR)
	if mipCount > 1 {
		minFilter = gl.LINEAR_MIPMAP_LINEAR
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return d.textures.Insert(gpuTexture{id: id, target: gl.TEXTURE_CUBE_MAP, width: int32(size), height: int32(size), depth: int32(mipCount), internalFormat: f.Internal})
}

// UploadTexture2D uploads a scene.Texture's RGBA8 pixels, recording the
// resulting handle back onto it. A no-op if already resident.
func (d *Device) UploadTexture2D(tex *scene.Texture) resource.Handle {
	if tex == nil {
		return resource.Handle{}
	}
	if tex.GPUHandle.IsValid() {
		return tex.GPUHandle
	}
	if len(tex.Pixels) == 0 {
		logAsset("texture %q has no pixel data", tex.Name)
		return resource.Handle{}
	}
	h := d.CreateTexture2D(tex.Width, tex.Height, FormatRGBA8, unsafe.Pointer(&tex.Pixels[0]))
	if t, ok := d.textures.Lookup(h); ok {
		gl.BindTexture(gl.TEXTURE_2D, t.id)
		gl.GenerateMipmap(gl.TEXTURE_2D)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}
	tex.GPUHandle = h
	return h
}

// BindTexture binds h to the given texture unit (gl.TEXTURE0+unit),
// respecting whichever target it was created with.
func (d *Device) BindTexture(unit uint32, h resource.Handle) {
	t, ok := d.textures.Lookup(h)
	if !ok {
		return
	}
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(t.target, t.id)
}

// BindImageTexture binds a mip level of h as a read/write storage image for
// compute shaders — the bloom down/up-sample chain's target slot.
func (d *Device) BindImageTexture(unit uint32, h resource.Handle, mip int32, access uint32, format TextureFormat) {
	t, ok := d.textures.Lookup(h)
	if !ok {
		return
	}
	gl.BindImageTexture(unit, t.id, mip, false, 0, access, uint32(format.Internal))
}

// TextureSize returns a texture's base width/height.
func (d *Device) TextureSize(h resource.Handle) (int, int) {
	t, ok := d.textures.Lookup(h)
	if !ok {
		return 0, 0
	}
	return int(t.width), int(t.height)
}

// DestroyTexture frees a texture's GL object, tolerating teardown races per
// this pipeline (glIsTexture check before delete).
func (d *Device) DestroyTexture(h resource.Handle) {
	t, ok := d.textures.Lookup(h)
	if !ok {
		return
	}
	if gl.IsTexture(t.id) {
		gl.DeleteTextures(1, &t.id)
	}
	d.textures.Release(h)
}
