package rhi

import (
	gl "github.com/go-gl/gl/v4.3-core/gl"

	"rendercore/resource"
)

// DispatchCompute binds h and dispatches groupsX*groupsY*groupsZ work
// groups. Callers are responsible for binding image/sampler units first and
// issuing MemoryBarrier before anything downstream reads the result.
func (d *Device) DispatchCompute(h resource.Handle, groupsX, groupsY, groupsZ uint32) {
	p, ok := d.programs.Lookup(h)
	if !ok || !p.compute {
		logAsset("DispatchCompute: invalid compute program %s", h)
		return
	}
	gl.UseProgram(p.id)
	d.boundProgram = h
	gl.DispatchCompute(groupsX, groupsY, groupsZ)
}

// Barrier flags for MemoryBarrier, aliasing the GL constants bloom's
// downsample/upsample chain needs between dispatches.
const (
	BarrierShaderImageAccess = gl.SHADER_IMAGE_ACCESS_BARRIER_BIT
	BarrierTextureFetch      = gl.TEXTURE_FETCH_BARRIER_BIT
	BarrierAll               = gl.ALL_BARRIER_BITS
)

// Image access modes for BindImageTexture.
const (
	AccessReadOnly  = gl.READ_ONLY
	AccessWriteOnly = gl.WRITE_ONLY
	AccessReadWrite = gl.READ_WRITE
)

// MemoryBarrier issues glMemoryBarrier(barrier). The bloom pass calls this
// between every compute dispatch so mip[i] is fully written before mip[i+1]
// samples it.
func (d *Device) MemoryBarrier(barrier uint32) {
	gl.MemoryBarrier(barrier)
}
