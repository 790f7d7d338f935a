package rhi

import (
	gl "github.com/go-gl/gl/v4.3-core/gl"

	"rendercore/core"
	"rendercore/resource"
)

// ClearFlags selects which buffers BeginRenderPass clears, combinable with
// bitwise OR.
type ClearFlags uint8

const (
	ClearColor ClearFlags = 1 << iota
	ClearDepth
	ClearStencil
)

// CreateFramebuffer allocates an empty FBO; attach textures to it with
// AttachTexture/AttachTextureLayer/AttachTextureFace, then FinalizeFramebuffer.
func (d *Device) CreateFramebuffer() resource.Handle {
	var fbo uint32
	gl.GenFramebuffers(1, &fbo)
	return d.framebuffers.Insert(gpuFramebuffer{fbo: fbo})
}

func (d *Device) bindFramebufferForAttach(fb resource.Handle) (gpuFramebuffer, bool) {
	f, ok := d.framebuffers.Lookup(fb)
	if !ok {
		logAsset("framebuffer: invalid handle %s", fb)
		return gpuFramebuffer{}, false
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.fbo)
	return f, true
}

// AttachTexture binds a whole 2D texture to slot (gl.COLOR_ATTACHMENTn,
// gl.DEPTH_ATTACHMENT, ...). Color attachments are tracked for
// FinalizeFramebuffer's glDrawBuffers call; depth/stencil are not.
func (d *Device) AttachTexture(fb resource.Handle, slot uint32, tex resource.Handle) {
	f, ok := d.bindFramebufferForAttach(fb)
	if !ok {
		return
	}
	t, ok := d.textures.Lookup(tex)
	if !ok {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return
	}
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, slot, t.target, t.id, 0)
	d.trackColorSlot(fb, &f, slot)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// AttachTextureLayer binds a single array layer of tex (a Texture2DArray or
// cubemap array element) to slot — used by the CSM and spot shadow passes
// to target one cascade/light's layer without touching the others.
func (d *Device) AttachTextureLayer(fb resource.Handle, slot uint32, tex resource.Handle, layer int32) {
	f, ok := d.bindFramebufferForAttach(fb)
	if !ok {
		return
	}
	t, ok := d.textures.Lookup(tex)
	if !ok {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return
	}
	gl.FramebufferTextureLayer(gl.FRAMEBUFFER, slot, t.id, 0, layer)
	d.trackColorSlot(fb, &f, slot)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// AttachTextureFace binds one face (+X..-Z, gl.TEXTURE_CUBE_MAP_POSITIVE_X
// + faceIndex) of a cubemap to slot — the point-shadow pass renders each
// face of each light's cube as a separate sub-pass.
func (d *Device) AttachTextureFace(fb resource.Handle, slot uint32, tex resource.Handle, face int32) {
	f, ok := d.bindFramebufferForAttach(fb)
	if !ok {
		return
	}
	t, ok := d.textures.Lookup(tex)
	if !ok {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return
	}
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, slot, uint32(gl.TEXTURE_CUBE_MAP_POSITIVE_X+face), t.id, 0)
	d.trackColorSlot(fb, &f, slot)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// AttachTextureFaceMip binds one face of one mip level of a cubemap to slot
// — the IBL prefiltered-radiance bake targets mip 0..4 in turn as it sweeps
// roughness, each mip a smaller cube than the last.
func (d *Device) AttachTextureFaceMip(fb resource.Handle, slot uint32, tex resource.Handle, face, mip int32) {
	f, ok := d.bindFramebufferForAttach(fb)
	if !ok {
		return
	}
	t, ok := d.textures.Lookup(tex)
	if !ok {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return
	}
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, slot, uint32(gl.TEXTURE_CUBE_MAP_POSITIVE_X+face), t.id, mip)
	d.trackColorSlot(fb, &f, slot)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

func (d *Device) trackColorSlot(fb resource.Handle, f *gpuFramebuffer, slot uint32) {
	if slot < gl.COLOR_ATTACHMENT0 || slot > gl.COLOR_ATTACHMENT15 {
		return
	}
	for _, s := range f.colorSlots {
		if s == slot {
			return
		}
	}
	f.colorSlots = append(f.colorSlots, slot)
	d.framebuffers.Replace(fb, *f)
}

// FinalizeFramebuffer sets glDrawBuffers from every color attachment made
// so far and checks completeness, returning ErrFatal by convention if the
// driver rejects the attachment set.
func (d *Device) FinalizeFramebuffer(fb resource.Handle) error {
	f, ok := d.framebuffers.Lookup(fb)
	if !ok {
		return ErrInvalidHandle
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.fbo)
	if len(f.colorSlots) > 0 {
		gl.DrawBuffers(int32(len(f.colorSlots)), &f.colorSlots[0])
	} else {
		gl.DrawBuffer(gl.NONE)
		gl.ReadBuffer(gl.NONE)
	}
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		return fatalf("framebuffer incomplete: status=0x%X", status)
	}
	return nil
}

// BeginRenderPass binds fb (the zero handle means the default framebuffer),
// sets the viewport, sets the clear color, then clears the requested
// buffers, in that order. Nesting is forbidden.
func (d *Device) BeginRenderPass(fb resource.Handle, x, y, width, height int32, flags ClearFlags, clearColor core.Color) {
	if d.inRenderPass {
		logAsset("BeginRenderPass called while already inside a render pass")
		return
	}
	d.inRenderPass = true

	fbo := uint32(0)
	if fb.IsValid() {
		if f, ok := d.framebuffers.Lookup(fb); ok {
			fbo = f.fbo
		}
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	gl.Viewport(x, y, width, height)

	var mask uint32
	if flags&ClearColor != 0 {
		mask |= gl.COLOR_BUFFER_BIT
		gl.ClearColor(clearColor.R, clearColor.G, clearColor.B, clearColor.A)
	}
	if flags&ClearDepth != 0 {
		mask |= gl.DEPTH_BUFFER_BIT
	}
	if flags&ClearStencil != 0 {
		mask |= gl.STENCIL_BUFFER_BIT
	}
	if mask != 0 {
		gl.Clear(mask)
	}
}

// EndRenderPass unbinds to the default framebuffer.
func (d *Device) EndRenderPass() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	d.inRenderPass = false
}

// DestroyFramebuffer frees an FBO's GL object.
func (d *Device) DestroyFramebuffer(h resource.Handle) {
	f, ok := d.framebuffers.Lookup(h)
	if !ok {
		return
	}
	if gl.IsFramebuffer(f.fbo) {
		gl.DeleteFramebuffers(1, &f.fbo)
	}
	d.framebuffers.Release(h)
}
