// Package meshesdrawer walks a scene graph and submits its static and
// skinned renderables to whichever shader program the caller has already
// bound, choosing between an octree-culled path (perspective cameras) and a
// flat-list path (orthographic cameras), per
// original_source/Core/src/rendering/render_systems/meshes_drawer.cpp's
// RenderStaticMesh.
package meshesdrawer

import (
	"unsafe"

	"rendercore/math"
	"rendercore/resource"
	"rendercore/rhi"
	"rendercore/scene"
	"rendercore/spatial"
	"rendercore/uniform"
)

type entry struct {
	node  *scene.Node
	bound spatial.Bound
}

// Caster is the snapshot meshesdrawer hands to the shadow manager each
// frame: enough to transform and draw a mesh without the shadow package
// needing to know anything about scene graphs.
type Caster struct {
	Model   resource.Handle
	World   math.Mat4
	Skinned bool
	Palette []math.Mat4
}

// Drawer owns the per-frame octree over static renderables and the flat
// node lists BeginFrame refreshes.
type Drawer struct {
	device *rhi.Device

	octree  *spatial.Octree[entry]
	statics []*scene.Node
	skinned []*scene.Node

	skinnedUBO resource.Handle
}

func NewDrawer(device *rhi.Device) *Drawer {
	d := &Drawer{device: device}
	d.octree = spatial.NewOctree(func(e *entry) spatial.Bound { return e.bound })
	return d
}

// BeginFrame walks root, splitting renderables into the static and skinned
// lists and rebuilding the octree over static mesh world AABBs — mirroring
// PrepareOctree's per-frame rebuild, since transforms can move between
// frames and the octree has no incremental update.
func (d *Drawer) BeginFrame(root *scene.Node) {
	d.statics = d.statics[:0]
	d.skinned = d.skinned[:0]

	root.Traverse(func(n *scene.Node) {
		if n.Renderer == nil || !n.Visible {
			return
		}
		switch n.Renderer.(type) {
		case *scene.StaticMeshRenderer:
			d.statics = append(d.statics, n)
		case *scene.SkinnedMeshRenderer:
			d.skinned = append(d.skinned, n)
		}
	})

	entries := make([]*entry, 0, len(d.statics))
	for _, n := range d.statics {
		r := n.Renderer.(*scene.StaticMeshRenderer)
		if r.Mesh == nil || !r.Mesh.HasLocalAABB {
			continue
		}
		world := n.GetWorldMatrix()
		entries = append(entries, &entry{node: n, bound: spatial.GetAabbFromTransform(r.Mesh.LocalAABB, world)})
	}
	d.octree.Update(entries)
}

// UploadAll uploads every mesh in the current frame's node lists that isn't
// already GPU-resident.
func (d *Drawer) UploadAll() {
	for _, n := range d.statics {
		d.device.UploadMesh(n.Renderer.(*scene.StaticMeshRenderer).Mesh)
	}
	for _, n := range d.skinned {
		d.device.UploadMesh(n.Renderer.(*scene.SkinnedMeshRenderer).Mesh)
	}
}

// pathFilter reports whether a material's RenderPath belongs in the caller's
// pass. nil means unfiltered (every path draws).
type pathFilter func(scene.RenderPath) bool

// OpaqueOnly keeps PathOpaque materials for the G-buffer pass.
func OpaqueOnly(p scene.RenderPath) bool { return p == scene.PathOpaque }

// ForwardOnly keeps PathTranslucent and PathUnlit materials for the
// forward-overlay pass, which reads the already-lit scene the deferred
// lighting pass produced rather than writing the G-buffer.
func ForwardOnly(p scene.RenderPath) bool { return p != scene.PathOpaque }

// DrawStatic submits every static renderable whose mesh and AABB pass
// frustum culling (or every one, unconditionally, for an orthographic
// camera) and whose material passes filter, through bindMaterial then a
// draw call, per the two draw paths. program must already be bound via
// Device.UseShader. filter may be nil to draw every path.
func (d *Drawer) DrawStatic(program resource.Handle, frustum spatial.Frustum, orthographic bool, filter pathFilter, bindMaterial func(*scene.Material)) {
	if orthographic {
		for _, n := range d.statics {
			d.drawStaticNode(program, n, filter, bindMaterial)
		}
		return
	}

	visible := d.octree.Query(func(b spatial.Bound) bool { return frustum.IsOnFrustum(b) }, nil)
	for _, e := range visible {
		d.drawStaticNode(program, e.node, filter, bindMaterial)
	}
}

func (d *Drawer) drawStaticNode(program resource.Handle, n *scene.Node, filter pathFilter, bindMaterial func(*scene.Material)) {
	r := n.Renderer.(*scene.StaticMeshRenderer)
	if r.Mesh == nil || !r.Mesh.VertexBuffer.IsValid() {
		return
	}
	if filter != nil && r.Mesh.Material != nil && !filter(r.Mesh.Material.Path) {
		return
	}
	world := n.GetWorldMatrix()
	d.device.SetUniformMat4(program, "model", world)
	d.device.SetUniformMat4(program, "inverseTransposeModel", world.Inverse().Transpose())
	if bindMaterial != nil {
		bindMaterial(r.Mesh.Material)
	}
	d.device.DrawModel(drawModeFor(r.Mesh.DrawMode), r.Mesh.VertexBuffer)
}

// DrawSkinned submits every skinned renderable whose material passes filter
// unconditionally — skinned meshes are never octree-culled — uploading the
// current bone palette before each draw. filter may be nil to draw every
// path.
func (d *Drawer) DrawSkinned(program resource.Handle, filter pathFilter, bindMaterial func(*scene.Material)) {
	for _, n := range d.skinned {
		r := n.Renderer.(*scene.SkinnedMeshRenderer)
		if r.Mesh == nil || !r.Mesh.VertexBuffer.IsValid() {
			continue
		}
		if filter != nil && r.Mesh.Material != nil && !filter(r.Mesh.Material.Path) {
			continue
		}
		world := n.GetWorldMatrix()
		d.device.SetUniformMat4(program, "model", world)
		d.device.SetUniformMat4(program, "inverseTransposeModel", world.Inverse().Transpose())
		if bindMaterial != nil {
			bindMaterial(r.Mesh.Material)
		}
		if palette := r.BonePalette(); len(palette) > 0 {
			if !d.skinnedUBO.IsValid() {
				d.skinnedUBO = d.device.CreateUniformBuffer(uniform.BindingSkinned, int(unsafe.Sizeof(uniform.SkinnedBlock{})))
			}
			writeSkinnedBlock(d.device, d.skinnedUBO, palette)
		}
		d.device.DrawModel(drawModeFor(r.Mesh.DrawMode), r.Mesh.VertexBuffer)
	}
}

// writeSkinnedBlock uploads palette into the SkinnedBlock UBO at binding 5,
// zero-padding whatever's left of the fixed-size bone array. boneMatrices is
// a real std140 uniform block, not a plain uniform array — it has to be
// written with UpdateUniformBuffer like every other block this pipeline
// shares between Go and GLSL.
func writeSkinnedBlock(device *rhi.Device, ubo resource.Handle, palette []math.Mat4) {
	var block uniform.SkinnedBlock
	copy(block.BoneMatrices[:], palette)
	device.UpdateUniformBuffer(ubo, 0, unsafe.Pointer(&block), int(unsafe.Sizeof(block)))
}

// Casters returns a flat snapshot of every drawable this frame, for the
// shadow manager's depth passes. Unlike DrawStatic it ignores frustum
// culling against the viewer camera: a caster outside the viewer's frustum
// can still cast a visible shadow.
func (d *Drawer) Casters() []Caster {
	out := make([]Caster, 0, len(d.statics)+len(d.skinned))
	for _, n := range d.statics {
		r := n.Renderer.(*scene.StaticMeshRenderer)
		if r.Mesh == nil || !r.Mesh.VertexBuffer.IsValid() {
			continue
		}
		out = append(out, Caster{Model: r.Mesh.VertexBuffer, World: n.GetWorldMatrix()})
	}
	for _, n := range d.skinned {
		r := n.Renderer.(*scene.SkinnedMeshRenderer)
		if r.Mesh == nil || !r.Mesh.VertexBuffer.IsValid() {
			continue
		}
		out = append(out, Caster{Model: r.Mesh.VertexBuffer, World: n.GetWorldMatrix(), Skinned: true, Palette: r.BonePalette()})
	}
	return out
}

func drawModeFor(mode scene.DrawMode) uint32 {
	if mode == scene.DrawLines {
		return 0x0001 // GL_LINES
	}
	return 0x0004 // GL_TRIANGLES
}
