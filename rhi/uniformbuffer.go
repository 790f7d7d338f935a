package rhi

import (
	"unsafe"

	gl "github.com/go-gl/gl/v4.3-core/gl"

	"rendercore/resource"
)

// CreateUniformBuffer allocates a GL uniform buffer of size bytes and binds
// it to bindingPoint — one of the bit-exact binding points in this pipeline
// (0 camera, 1 model, 2 lights, 4 material, 5 skinned).
func (d *Device) CreateUniformBuffer(bindingPoint uint32, size int) resource.Handle {
	var ubo uint32
	gl.GenBuffers(1, &ubo)
	gl.BindBuffer(gl.UNIFORM_BUFFER, ubo)
	gl.BufferData(gl.UNIFORM_BUFFER, size, nil, gl.DYNAMIC_DRAW)
	gl.BindBufferBase(gl.UNIFORM_BUFFER, bindingPoint, ubo)
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
	return d.uniformBuffers.Insert(gpuUniformBuffer{ubo: ubo, size: size, bindingPoint: bindingPoint})
}

// UpdateUniformBuffer uploads data at offset into h's backing buffer. Used
// once per frame per block (camera, lights) and once per draw (model,
// material, skinned).
func (d *Device) UpdateUniformBuffer(h resource.Handle, offset int, data unsafe.Pointer, size int) {
	u, ok := d.uniformBuffers.Lookup(h)
	if !ok {
		return
	}
	if offset+size > u.size {
		logAsset("UpdateUniformBuffer: write past end of buffer %s (%d+%d > %d)", h, offset, size, u.size)
		return
	}
	gl.BindBuffer(gl.UNIFORM_BUFFER, u.ubo)
	gl.BufferSubData(gl.UNIFORM_BUFFER, offset, size, data)
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
}

// DestroyUniformBuffer frees a uniform buffer's GL object.
func (d *Device) DestroyUniformBuffer(h resource.Handle) {
	u, ok := d.uniformBuffers.Lookup(h)
	if !ok {
		return
	}
	if gl.IsBuffer(u.ubo) {
		gl.DeleteBuffers(1, &u.ubo)
	}
	d.uniformBuffers.Release(h)
}
