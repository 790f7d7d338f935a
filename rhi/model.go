package rhi

import (
	"unsafe"

	gl "github.com/go-gl/gl/v4.3-core/gl"

	"rendercore/resource"
	"rendercore/scene"
)

// Vertex attribute locations, a hard ABI with every vertex shader source.
const (
	AttribPosition    = 0
	AttribNormal      = 1
	AttribUV          = 2
	AttribTangent     = 3
	AttribBitangent   = 4
	AttribColor       = 5
	AttribBoneIndices = 6
	AttribBoneWeights = 7
)

// CreateModel uploads a mesh's vertex/index data as a VAO+VBO+EBO, grounded
// on the reference renderer's ensureUploaded: struct-of-arrays-free, one interleaved
// VBO uploaded straight from the Go struct slice via unsafe.Sizeof/Offsetof
// rather than hand-packing a flat float buffer.
func (d *Device) CreateModel(vertices []scene.Vertex, indices []uint32) resource.Handle {
	if len(vertices) == 0 {
		logAsset("CreateModel: empty vertex list")
		return resource.Handle{}
	}

	var v scene.Vertex
	stride := int32(unsafe.Sizeof(v))

	var vao, vbo, ebo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(stride), gl.Ptr(vertices), gl.STATIC_DRAW)

	posOff := int(unsafe.Offsetof(v.Position))
	normOff := int(unsafe.Offsetof(v.Normal))
	uvOff := int(unsafe.Offsetof(v.UV))
	tangentOff := int(unsafe.Offsetof(v.Tangent))
	bitangentOff := int(unsafe.Offsetof(v.Bitangent))
	colorOff := int(unsafe.Offsetof(v.Color))
	boneIdxOff := int(unsafe.Offsetof(v.BoneIndices))
	boneWeightOff := int(unsafe.Offsetof(v.BoneWeights))

	gl.EnableVertexAttribArray(AttribPosition)
	gl.VertexAttribPointer(AttribPosition, 3, gl.FLOAT, false, stride, gl.PtrOffset(posOff))
	gl.EnableVertexAttribArray(AttribNormal)
	gl.VertexAttribPointer(AttribNormal, 3, gl.FLOAT, false, stride, gl.PtrOffset(normOff))
	gl.EnableVertexAttribArray(AttribUV)
	gl.VertexAttribPointer(AttribUV, 2, gl.FLOAT, false, stride, gl.PtrOffset(uvOff))
	gl.EnableVertexAttribArray(AttribTangent)
	gl.VertexAttribPointer(AttribTangent, 3, gl.FLOAT, false, stride, gl.PtrOffset(tangentOff))
	gl.EnableVertexAttribArray(AttribBitangent)
	gl.VertexAttribPointer(AttribBitangent, 3, gl.FLOAT, false, stride, gl.PtrOffset(bitangentOff))
	gl.EnableVertexAttribArray(AttribColor)
	gl.VertexAttribPointer(AttribColor, 4, gl.FLOAT, false, stride, gl.PtrOffset(colorOff))
	gl.EnableVertexAttribArray(AttribBoneIndices)
	gl.VertexAttribIPointer(AttribBoneIndices, 4, gl.UNSIGNED_INT, stride, gl.PtrOffset(boneIdxOff))
	gl.EnableVertexAttribArray(AttribBoneWeights)
	gl.VertexAttribPointer(AttribBoneWeights, 4, gl.FLOAT, false, stride, gl.PtrOffset(boneWeightOff))

	indexCount := int32(0)
	if len(indices) > 0 {
		gl.GenBuffers(1, &ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
		indexCount = int32(len(indices))
	}

	gl.BindVertexArray(0)

	return d.models.Insert(gpuModel{vao: vao, vbo: vbo, ebo: ebo, vertexCount: int32(len(vertices)), indexCount: indexCount})
}

// UploadMesh uploads mesh.Vertices/Indices if not already resident and
// records the resulting handles back onto the mesh.
func (d *Device) UploadMesh(mesh *scene.Mesh) {
	if mesh == nil || mesh.VertexBuffer.IsValid() {
		return
	}
	h := d.CreateModel(mesh.Vertices, mesh.Indices)
	mesh.VertexBuffer = h
	mesh.IndexBuffer = h
	mesh.IndexCount = uint32(len(mesh.Indices))
}

// DrawModel binds the stored VAO and issues an indexed draw using the
// stored index count, or, when the model has no indices, a non-indexed
// draw of every stored vertex.
func (d *Device) DrawModel(mode uint32, h resource.Handle) {
	m, ok := d.models.Lookup(h)
	if !ok {
		return
	}
	gl.BindVertexArray(m.vao)
	if m.indexCount > 0 {
		gl.DrawElements(mode, m.indexCount, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(mode, 0, m.vertexCount)
	}
	gl.BindVertexArray(0)
}

// DrawArray issues a non-indexed draw against an externally-bound VAO,
// used for text glyph quads and full-screen triangles that don't go
// through the model arena.
func (d *Device) DrawArray(mode uint32, first, count int32) {
	gl.DrawArrays(mode, first, count)
}

// CreatePositionModel uploads a plain vec3-position-only vertex buffer (no
// indices, no other attributes) at attribute 0 — the unit-cube geometry the
// skybox/IBL capture passes draw, grounded on the reference renderer's
// internal/opengl/skybox.go NewSkybox's skyboxVerts upload.
func (d *Device) CreatePositionModel(positions []float32) resource.Handle {
	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(positions)*4, gl.Ptr(positions), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(AttribPosition)
	gl.VertexAttribPointer(AttribPosition, 3, gl.FLOAT, false, 12, gl.PtrOffset(0))
	gl.BindVertexArray(0)
	return d.models.Insert(gpuModel{vao: vao, vbo: vbo, vertexCount: int32(len(positions) / 3)})
}

// DestroyModel frees a model's VAO/VBO/EBO.
func (d *Device) DestroyModel(h resource.Handle) {
	m, ok := d.models.Lookup(h)
	if !ok {
		return
	}
	destroyModelGL(m)
	d.models.Release(h)
}
