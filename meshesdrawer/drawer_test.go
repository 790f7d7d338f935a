package meshesdrawer

import (
	"testing"

	"rendercore/math"
	"rendercore/scene"
)

func TestBeginFrameSplitsStaticAndSkinned(t *testing.T) {
	root := scene.NewNode("root")

	staticMesh := scene.NewMesh("box", []scene.Vertex{
		{Position: math.Vec3{X: -1, Y: -1, Z: -1}},
		{Position: math.Vec3{X: 1, Y: 1, Z: 1}},
	}, nil)
	staticNode := scene.NewNode("static")
	staticNode.Renderer = scene.NewStaticMeshRenderer(staticMesh)
	root.AddChild(staticNode)

	skinnedNode := scene.NewNode("skinned")
	skinnedNode.Renderer = scene.NewSkinnedMeshRenderer(nil)
	root.AddChild(skinnedNode)

	d := NewDrawer(nil)
	d.BeginFrame(root)

	if len(d.statics) != 1 {
		t.Fatalf("statics = %d, want 1", len(d.statics))
	}
	if len(d.skinned) != 1 {
		t.Fatalf("skinned = %d, want 1", len(d.skinned))
	}
}

func TestBeginFrameSkipsInvisibleNodes(t *testing.T) {
	root := scene.NewNode("root")
	mesh := scene.NewMesh("box", []scene.Vertex{
		{Position: math.Vec3{X: -1, Y: -1, Z: -1}},
		{Position: math.Vec3{X: 1, Y: 1, Z: 1}},
	}, nil)
	hidden := scene.NewNode("hidden")
	hidden.Renderer = scene.NewStaticMeshRenderer(mesh)
	hidden.Visible = false
	root.AddChild(hidden)

	d := NewDrawer(nil)
	d.BeginFrame(root)

	if len(d.statics) != 0 {
		t.Fatalf("statics = %d, want 0 (invisible node should be skipped)", len(d.statics))
	}
}

func TestOpaqueAndForwardFiltersPartitionRenderPaths(t *testing.T) {
	paths := []scene.RenderPath{scene.PathOpaque, scene.PathTranslucent, scene.PathUnlit}
	for _, p := range paths {
		if OpaqueOnly(p) == ForwardOnly(p) {
			t.Fatalf("OpaqueOnly(%v) and ForwardOnly(%v) agree, want exactly one true", p, p)
		}
	}
	if !OpaqueOnly(scene.PathOpaque) {
		t.Fatalf("OpaqueOnly(PathOpaque) = false, want true")
	}
	if !ForwardOnly(scene.PathTranslucent) || !ForwardOnly(scene.PathUnlit) {
		t.Fatalf("ForwardOnly should keep both PathTranslucent and PathUnlit")
	}
}

func TestCastersIncludesOnlyUploadedMeshes(t *testing.T) {
	root := scene.NewNode("root")
	mesh := scene.NewMesh("box", []scene.Vertex{
		{Position: math.Vec3{X: -1, Y: -1, Z: -1}},
		{Position: math.Vec3{X: 1, Y: 1, Z: 1}},
	}, nil)
	n := scene.NewNode("n")
	n.Renderer = scene.NewStaticMeshRenderer(mesh)
	root.AddChild(n)

	d := NewDrawer(nil)
	d.BeginFrame(root)

	// Mesh never had UploadAll called against a real device, so its
	// VertexBuffer handle is still invalid and must be excluded.
	casters := d.Casters()
	if len(casters) != 0 {
		t.Fatalf("Casters() = %d, want 0 for a mesh with no GPU handle", len(casters))
	}
}
