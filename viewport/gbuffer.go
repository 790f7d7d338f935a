package viewport

import (
	gl "github.com/go-gl/gl/v4.3-core/gl"

	"rendercore/resource"
	"rendercore/rhi"
)

// ViewportData owns every render target a Renderer writes to or reads from
// across one frame: the G-buffer, the forward color target the lighting and
// overlay passes draw into, and the post-process ping-pong targets bloom and
// tone-mapping consume, per the Viewport contract. Allocated lazily
// on first use and whenever Resize sees a new size, mirroring the reference renderer's
// PostProcessFBO/ShadowMap lazy-allocate-on-first-Resize pattern.
type ViewportData struct {
	device *rhi.Device

	Width, Height int

	GBufferFBO resource.Handle
	GNormal    resource.Handle // RGB16F world-space normal
	GAlbedo    resource.Handle // RGB16F albedo
	GMatParams resource.Handle // RGB16F metallic/roughness/reflectance
	GAO        resource.Handle // RG16F ambient occlusion
	GEmissive  resource.Handle // RGBA16F emissive
	GDepth     resource.Handle // D32FS8

	ForwardFBO   resource.Handle
	ForwardColor resource.Handle // RGBA16F, HDR lit output before tone-mapping

	LDRFBO   resource.Handle
	LDRColor resource.Handle // RGBA8, tone-mapped output the host presents
}

func NewViewportData(device *rhi.Device) *ViewportData {
	return &ViewportData{device: device}
}

// Resize (re)allocates every render target at the new size. A no-op if the
// size hasn't changed.
func (v *ViewportData) Resize(width, height int) {
	if width == v.Width && height == v.Height && v.GBufferFBO.IsValid() {
		return
	}
	v.destroy()
	v.Width, v.Height = width, height

	v.GNormal = v.device.CreateTexture2D(width, height, rhi.FormatRGB16F, nil)
	v.GAlbedo = v.device.CreateTexture2D(width, height, rhi.FormatRGB16F, nil)
	v.GMatParams = v.device.CreateTexture2D(width, height, rhi.FormatRGB16F, nil)
	v.GAO = v.device.CreateTexture2D(width, height, rhi.FormatRG16F, nil)
	v.GEmissive = v.device.CreateTexture2D(width, height, rhi.FormatRGBA16F, nil)
	v.GDepth = v.device.CreateDepthStencilTexture2D(width, height)

	v.GBufferFBO = v.device.CreateFramebuffer()
	v.device.AttachTexture(v.GBufferFBO, gl.COLOR_ATTACHMENT0, v.GNormal)
	v.device.AttachTexture(v.GBufferFBO, gl.COLOR_ATTACHMENT0+1, v.GAlbedo)
	v.device.AttachTexture(v.GBufferFBO, gl.COLOR_ATTACHMENT0+2, v.GMatParams)
	v.device.AttachTexture(v.GBufferFBO, gl.COLOR_ATTACHMENT0+3, v.GAO)
	v.device.AttachTexture(v.GBufferFBO, gl.COLOR_ATTACHMENT0+4, v.GEmissive)
	v.device.AttachTexture(v.GBufferFBO, gl.DEPTH_STENCIL_ATTACHMENT, v.GDepth)
	v.device.FinalizeFramebuffer(v.GBufferFBO)

	v.ForwardColor = v.device.CreateTexture2D(width, height, rhi.FormatRGBA16F, nil)
	v.ForwardFBO = v.device.CreateFramebuffer()
	v.device.AttachTexture(v.ForwardFBO, gl.COLOR_ATTACHMENT0, v.ForwardColor)
	v.device.AttachTexture(v.ForwardFBO, gl.DEPTH_STENCIL_ATTACHMENT, v.GDepth)
	v.device.FinalizeFramebuffer(v.ForwardFBO)

	v.LDRColor = v.device.CreateTexture2D(width, height, rhi.FormatRGBA8, nil)
	v.LDRFBO = v.device.CreateFramebuffer()
	v.device.AttachTexture(v.LDRFBO, gl.COLOR_ATTACHMENT0, v.LDRColor)
	v.device.FinalizeFramebuffer(v.LDRFBO)
}

func (v *ViewportData) destroy() {
	for _, h := range []resource.Handle{v.GNormal, v.GAlbedo, v.GMatParams, v.GAO, v.GEmissive, v.GDepth, v.ForwardColor, v.LDRColor} {
		if h.IsValid() {
			v.device.DestroyTexture(h)
		}
	}
	for _, h := range []resource.Handle{v.GBufferFBO, v.ForwardFBO, v.LDRFBO} {
		if h.IsValid() {
			v.device.DestroyFramebuffer(h)
		}
	}
}
