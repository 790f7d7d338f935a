package scene

import "rendercore/math"

// Renderable is attached to a Node to make it drawable. StaticMeshRenderer
// and SkinnedMeshRenderer are the two concrete kinds the meshes drawer
// dispatches on, grounded on
// original_source/Core/include/scene/component/{static_mesh_renderer,skinned_mesh_renderer}.hpp.
type Renderable interface {
	GetMesh() *Mesh
	Update(dt float32)
}

// StaticMeshRenderer draws an unskinned Mesh; it is octree-indexed when the
// owning viewport's camera is perspective, or drawn as a flat list when
// orthographic (meshesdrawer decides which, not the renderer itself).
type StaticMeshRenderer struct {
	Mesh *Mesh
}

func NewStaticMeshRenderer(mesh *Mesh) *StaticMeshRenderer {
	return &StaticMeshRenderer{Mesh: mesh}
}

func (r *StaticMeshRenderer) GetMesh() *Mesh  { return r.Mesh }
func (r *StaticMeshRenderer) Update(float32) {}

// SkinnedMeshRenderer draws a skinned Mesh, advancing its own animation
// playback time independently of any other instance sharing the same Mesh.
// Skinned meshes are never octree-culled (unconditional draw
// path) since they are typically characters that move every frame, making
// the octree rebuild cost not worth paying.
type SkinnedMeshRenderer struct {
	Mesh       *Mesh
	PlayTime   float32
	PlaySpeed  float32
	bonePalette []math.Mat4
}

func NewSkinnedMeshRenderer(mesh *Mesh) *SkinnedMeshRenderer {
	return &SkinnedMeshRenderer{Mesh: mesh, PlaySpeed: 1}
}

func (r *SkinnedMeshRenderer) GetMesh() *Mesh { return r.Mesh }

func (r *SkinnedMeshRenderer) Update(dt float32) {
	if r.Mesh == nil || r.Mesh.Animation == nil || r.Mesh.Skeleton == nil {
		return
	}
	r.PlayTime += dt * r.PlaySpeed
	if r.Mesh.Animation.Duration > 0 {
		for r.PlayTime > r.Mesh.Animation.Duration {
			r.PlayTime -= r.Mesh.Animation.Duration
		}
	}
	pose := r.Mesh.Animation.Sample(r.PlayTime)
	r.bonePalette = r.Mesh.Skeleton.BonePalette(pose)
}

// BonePalette returns the last computed skin matrices, in Skeleton.Bones
// order, ready to upload to the skinned uniform block.
func (r *SkinnedMeshRenderer) BonePalette() []math.Mat4 {
	return r.bonePalette
}
