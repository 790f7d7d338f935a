package scene

import (
	"rendercore/core"
)

// Scene owns the node graph root and the light list the shadow manager and
// deferred lighting pass consume every frame. The active Camera lives on
// the viewport that renders the scene, not here, since one scene can be
// rendered through more than one viewport (e.g. a game view and a shadow
// map pass share the same scene with different cameras).
type Scene struct {
	Root     *Node
	Lights   []*Light
	Ambient  core.Color
	SkyColor core.Color
}

func NewScene() *Scene {
	return &Scene{
		Root:     NewNode("Root"),
		Lights:   make([]*Light, 0),
		Ambient:  core.Color{R: 0.2, G: 0.2, B: 0.2, A: 1.0},
		SkyColor: core.Color{R: 0.5, G: 0.7, B: 1.0, A: 1.0},
	}
}

func (s *Scene) AddNode(node *Node) {
	s.Root.AddChild(node)
}

func (s *Scene) RemoveNode(node *Node) {
	s.Root.RemoveChild(node)
}

func (s *Scene) AddLight(light *Light) {
	s.Lights = append(s.Lights, light)
}

func (s *Scene) RemoveLight(light *Light) {
	for i, l := range s.Lights {
		if l == light {
			s.Lights = append(s.Lights[:i], s.Lights[i+1:]...)
			return
		}
	}
}

func (s *Scene) Update(deltaTime float32) {
	if s.Root != nil {
		s.Root.Update(deltaTime)
	}
}

// VisibleRenderables returns every node with an attached Renderable,
// visible flag set, regardless of frustum containment — the meshes drawer
// applies frustum/octree culling itself.
func (s *Scene) VisibleRenderables() []*Node {
	var out []*Node
	s.Root.Traverse(func(node *Node) {
		if node.Visible && node.Renderer != nil {
			out = append(out, node)
		}
	})
	return out
}
