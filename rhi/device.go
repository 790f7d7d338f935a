// Package rhi is the single façade the rest of the renderer goes through to
// touch the GPU: model upload, shader programs, textures, framebuffers,
// uniform buffers, draw calls, and compute dispatch. Every exported method
// assumes it runs on the thread that owns the GL context — grounded on the
// reference renderer's internal/opengl.Renderer, generalized from one monolithic
// struct hard-coded to a single forward shader into a resource-handle-keyed
// façade so the deferred/shadow/IBL/bloom passes can each own their own
// programs and render targets without fighting over renderer fields.
package rhi

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.3-core/gl"

	"rendercore/internal/rlog"
	"rendercore/resource"
)

type gpuModel struct {
	vao, vbo, ebo uint32
	vertexCount   int32
	indexCount    int32
}

type gpuTexture struct {
	id             uint32
	target         uint32
	width, height  int32
	depth          int32 // array layers / cube faces*layers; 1 for plain 2D
	internalFormat int32
}

type gpuFramebuffer struct {
	fbo             uint32
	colorSlots      []uint32 // attachment enums in use, e.g. gl.COLOR_ATTACHMENT0+i
	width, height   int32
}

type gpuProgram struct {
	id       uint32
	compute  bool
	state    PipelineState
	uniforms map[string]*uniformSlot
	warned   map[string]bool
}

type gpuUniformBuffer struct {
	ubo          uint32
	size         int
	bindingPoint uint32
}

// Device owns every GPU resource arena and the handful of pieces of state
// (bound program, render-pass nesting guard) the RHI's contract cares about.
// One Device exists per GL context, created after the context is current.
type Device struct {
	models         *resource.Manager[gpuModel]
	textures       *resource.Manager[gpuTexture]
	framebuffers   *resource.Manager[gpuFramebuffer]
	programs       *resource.Manager[gpuProgram]
	uniformBuffers *resource.Manager[gpuUniformBuffer]

	boundProgram  resource.Handle
	inRenderPass  bool
	fullscreenVAO uint32
}

func NewDevice() *Device {
	return &Device{
		models:         resource.NewManager[gpuModel](),
		textures:       resource.NewManager[gpuTexture](),
		framebuffers:   resource.NewManager[gpuFramebuffer](),
		programs:       resource.NewManager[gpuProgram](),
		uniformBuffers: resource.NewManager[gpuUniformBuffer](),
	}
}

// Destroy releases every resource still held by the device. Called once at
// shutdown; per this GPU-resource-lifetime rule, each destroy checks
// the driver-side existence flag before deleting so out-of-order teardown
// (context already gone) doesn't double-free.
func (d *Device) Destroy() {
	d.models.Each(func(_ resource.Handle, m gpuModel) {
		destroyModelGL(m)
	})
	d.textures.Each(func(_ resource.Handle, t gpuTexture) {
		if gl.IsTexture(t.id) {
			gl.DeleteTextures(1, &t.id)
		}
	})
	d.framebuffers.Each(func(_ resource.Handle, f gpuFramebuffer) {
		if gl.IsFramebuffer(f.fbo) {
			gl.DeleteFramebuffers(1, &f.fbo)
		}
	})
	d.programs.Each(func(_ resource.Handle, p gpuProgram) {
		if gl.IsProgram(p.id) {
			gl.DeleteProgram(p.id)
		}
	})
	d.uniformBuffers.Each(func(_ resource.Handle, u gpuUniformBuffer) {
		if gl.IsBuffer(u.ubo) {
			gl.DeleteBuffers(1, &u.ubo)
		}
	})
	if d.fullscreenVAO != 0 && gl.IsVertexArray(d.fullscreenVAO) {
		gl.DeleteVertexArrays(1, &d.fullscreenVAO)
	}
}

func destroyModelGL(m gpuModel) {
	if gl.IsVertexArray(m.vao) {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	if gl.IsBuffer(m.vbo) {
		gl.DeleteBuffers(1, &m.vbo)
	}
	if m.ebo != 0 && gl.IsBuffer(m.ebo) {
		gl.DeleteBuffers(1, &m.ebo)
	}
}

func logAsset(format string, args ...any) {
	rlog.Warnf("rhi", format, args...)
}

func fatalf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrFatal}, args...)...)
}
