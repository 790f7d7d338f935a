package scene

import (
	"rendercore/math"
	"rendercore/resource"
	"rendercore/spatial"
)

// Mesh is a renderable mesh: CPU vertex/index data plus the GPU handles it
// resolves to once an rhi.Device has uploaded it, a local-space bound for
// octree insertion, and an optional skeleton for skinned draws. Mesh itself
// never touches the GPU directly — that decoupling is what let the reference renderer's
// Vulkan-backed Mesh and this OpenGL-backed rebuild share the same shape;
// here the upload target is rhi.Device instead of a vulkan.Device.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32

	VertexBuffer resource.Handle
	IndexBuffer  resource.Handle
	IndexCount   uint32

	Material *Material
	DrawMode DrawMode

	LocalAABB    spatial.Bound
	HasLocalAABB bool

	Skeleton  *Skeleton
	Animation *Animation
}

// DrawMode selects the GL primitive topology a mesh's index buffer is
// interpreted with. Debug gizmos (grid, AABB wireframes, light gizmos) use
// DrawLines; everything else uses the default DrawTriangles.
type DrawMode int

const (
	DrawTriangles DrawMode = iota
	DrawLines
)

func NewMesh(name string, vertices []Vertex, indices []uint32) *Mesh {
	m := &Mesh{
		Name:       name,
		Vertices:   vertices,
		Indices:    indices,
		IndexCount: uint32(len(indices)),
	}
	m.computeLocalAABB()
	return m
}

func (m *Mesh) computeLocalAABB() {
	if len(m.Vertices) == 0 {
		m.HasLocalAABB = false
		return
	}
	b := spatial.BoundFromMinMax(m.Vertices[0].Position, m.Vertices[0].Position)
	for _, v := range m.Vertices[1:] {
		b.Encapsulate(v.Position)
	}
	m.LocalAABB = b
	m.HasLocalAABB = true
}

// WorldAABB projects LocalAABB through worldMatrix using the same
// basis-projection method as spatial.GetAabbFromTransform.
func (m *Mesh) WorldAABB(worldMatrix math.Mat4) spatial.Bound {
	return spatial.GetAabbFromTransform(m.LocalAABB, worldMatrix)
}

func (m *Mesh) IsSkinned() bool {
	return m.Skeleton != nil
}
