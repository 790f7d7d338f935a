package rhi

import (
	gl "github.com/go-gl/gl/v4.3-core/gl"

	"rendercore/math"
	"rendercore/resource"
)

// uniformSlot memoizes a uniform's driver location alongside the last value
// written: if the new value equals the cached one the driver call is
// skipped. location==-1 and !found means the name was looked up once and
// doesn't exist in this program.
type uniformSlot struct {
	location int32
	found    bool
	hasValue bool
	value    any
}

func (d *Device) resolveUniform(p *gpuProgram, name string) (*uniformSlot, bool) {
	if slot, ok := p.uniforms[name]; ok {
		return slot, slot.found
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	slot := &uniformSlot{location: loc, found: loc != -1}
	p.uniforms[name] = slot
	if !slot.found && !p.warned[name] {
		logAsset("unknown uniform %q (first use) — subsequent sets are no-ops", name)
		p.warned[name] = true
	}
	return slot, slot.found
}

func (d *Device) currentProgram() *gpuProgram {
	p, ok := d.programs.Lookup(d.boundProgram)
	if !ok {
		return nil
	}
	return &p
}

// setUniform is the shared cache-and-dispatch path: lookup the program,
// resolve the uniform's location (warn-once if unknown), skip the driver
// call if value is unchanged, otherwise call write and update the cache.
func setUniform[V comparable](d *Device, h resource.Handle, name string, value V, write func(loc int32)) {
	pv, ok := d.programs.Lookup(h)
	if !ok {
		return
	}
	slot, found := d.resolveUniform(&pv, name)
	d.programs.Replace(h, pv)
	if !found {
		return
	}
	if slot.hasValue {
		if cached, ok := slot.value.(V); ok && cached == value {
			return
		}
	}
	write(slot.location)
	slot.value = value
	slot.hasValue = true
}

func (d *Device) SetUniformFloat(h resource.Handle, name string, v float32) {
	setUniform(d, h, name, v, func(loc int32) { gl.Uniform1f(loc, v) })
}

func (d *Device) SetUniformInt(h resource.Handle, name string, v int32) {
	setUniform(d, h, name, v, func(loc int32) { gl.Uniform1i(loc, v) })
}

func (d *Device) SetUniformBool(h resource.Handle, name string, v bool) {
	var iv int32
	if v {
		iv = 1
	}
	setUniform(d, h, name, v, func(loc int32) { gl.Uniform1i(loc, iv) })
}

func (d *Device) SetUniformVec2(h resource.Handle, name string, v math.Vec2) {
	setUniform(d, h, name, v, func(loc int32) { gl.Uniform2f(loc, v.X, v.Y) })
}

// SetUniformIVec2 uploads an integer pair, used for compute-shader dispatch
// bounds (the bloom chain's per-mip outputSize) where ivec2 avoids the
// float-to-int truncation a vec2 comparison would need in the shader.
func (d *Device) SetUniformIVec2(h resource.Handle, name string, x, y int32) {
	type ivec2 struct{ x, y int32 }
	v := ivec2{x, y}
	setUniform(d, h, name, v, func(loc int32) { gl.Uniform2i(loc, x, y) })
}

func (d *Device) SetUniformVec3(h resource.Handle, name string, v math.Vec3) {
	setUniform(d, h, name, v, func(loc int32) { gl.Uniform3f(loc, v.X, v.Y, v.Z) })
}

func (d *Device) SetUniformVec4(h resource.Handle, name string, v math.Vec4) {
	setUniform(d, h, name, v, func(loc int32) { gl.Uniform4f(loc, v.X, v.Y, v.Z, v.W) })
}

func (d *Device) SetUniformMat4(h resource.Handle, name string, v math.Mat4) {
	setUniform(d, h, name, v, func(loc int32) {
		flat := flattenMat4(v)
		gl.UniformMatrix4fv(loc, 1, false, &flat[0])
	})
}

// SetUniformMat4Array uploads the skinned bone palette (binding 5). Arrays
// aren't comparable in Go so this bypasses the equal-value cache skip and
// always issues the driver call — bone palettes change every frame for any
// playing animation anyway.
func (d *Device) SetUniformMat4Array(h resource.Handle, name string, v []math.Mat4) {
	pv, ok := d.programs.Lookup(h)
	if !ok || len(v) == 0 {
		return
	}
	slot, found := d.resolveUniform(&pv, name)
	d.programs.Replace(h, pv)
	if !found {
		return
	}
	flat := make([]float32, 0, len(v)*16)
	for _, m := range v {
		flat = append(flat, flattenMat4(m)[:]...)
	}
	gl.UniformMatrix4fv(slot.location, int32(len(v)), false, &flat[0])
}

// flattenMat4 writes a row-vector Mat4 (v' = v*M) out row by row. GLSL's
// UniformMatrix4fv (not transposed) reads the array as columns, so the
// shader sees the transpose of M, which is exactly the column-vector form
// (M * v) the shaders multiply with; the translation row lands at indices
// 12-14. The std140 uniform blocks get the same layout by copying a
// Mat4's memory as is.
func flattenMat4(m math.Mat4) [16]float32 {
	var out [16]float32
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out[col*4+row] = m[col][row]
		}
	}
	return out
}
