package asset

import (
	"encoding/json"
	"fmt"
	"os"

	"rendercore/core"
	"rendercore/math"
	"rendercore/scene"
	"rendercore/viewport"
)

// ── JSON data structures ────────────────────────────────────────────────

type vec3JSON struct{ X, Y, Z float32 }
type colorJSON struct{ R, G, B, A float32 }

type transformJSON struct {
	Position               vec3JSON
	Scale                  vec3JSON
	RotX, RotY, RotZ, RotW float32
}

type materialJSON struct {
	Name             string
	Albedo           colorJSON
	Metallic         float32
	Roughness        float32
	Reflectance      float32
	AmbientOcclusion float32
	Path             int
}

type nodeJSON struct {
	ID        uint32
	Name      string
	Transform transformJSON
	Visible   bool
	MeshName  string // hint for re-attaching a Mesh; geometry itself is not stored
	Skinned   bool
	Material  *materialJSON
	Children  []nodeJSON
}

type lightJSON struct {
	Kind        int
	Position    vec3JSON
	Direction   vec3JSON
	Color       colorJSON
	Intensity   float32
	Range       float32
	SpotAngle   float32
	CastsShadow bool
}

type cameraJSON struct {
	Position       vec3JSON
	Fov            float32
	AspectRatio    float32
	Near, Far      float32
	IsOrthographic bool
	LeftRight      float32
	BottomTop      float32
}

type sceneJSON struct {
	Version  int
	SkyColor colorJSON
	Ambient  colorJSON
	Camera   *cameraJSON
	Lights   []lightJSON
	Nodes    []nodeJSON
}

// ── Save ─────────────────────────────────────────────────────────────────

// SaveScene serialises a scene's transforms, lights, and materials to a
// JSON file at path, optionally alongside the viewport camera that renders
// it. Mesh geometry is not stored — re-attach meshes after loading by
// matching nodeJSON.MeshName against an already-loaded asset.
func SaveScene(s *scene.Scene, cam *viewport.Camera, path string) error {
	js := sceneJSON{
		Version:  1,
		SkyColor: colorToJSON(s.SkyColor),
		Ambient:  colorToJSON(s.Ambient),
	}

	if cam != nil {
		js.Camera = &cameraJSON{
			Position:       vec3ToJSON(cam.Position),
			Fov:            cam.Fov,
			AspectRatio:    cam.AspectRatio,
			Near:           cam.Near,
			Far:            cam.Far,
			IsOrthographic: cam.IsOrthographic,
			LeftRight:      cam.LeftRight,
			BottomTop:      cam.BottomTop,
		}
	}

	for _, l := range s.Lights {
		js.Lights = append(js.Lights, lightToJSON(l))
	}
	for _, child := range s.Root.Children {
		js.Nodes = append(js.Nodes, nodeToJSON(child))
	}

	data, err := json.MarshalIndent(js, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal scene: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write scene %q: %w", path, err)
	}
	return nil
}

// ── Load ─────────────────────────────────────────────────────────────────

// SceneData holds the state LoadScene reconstructs. Nodes carry a
// placeholder Mesh named after MeshName where one was recorded; the caller
// assigns the real, already-loaded Mesh back onto the Renderer before
// rendering.
type SceneData struct {
	SkyColor core.Color
	Ambient  core.Color
	Camera   *viewport.Camera
	Lights   []*scene.Light
	Nodes    []*scene.Node
}

func LoadScene(path string) (*SceneData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %q: %w", path, err)
	}
	var js sceneJSON
	if err := json.Unmarshal(data, &js); err != nil {
		return nil, fmt.Errorf("unmarshal scene: %w", err)
	}

	sd := &SceneData{
		SkyColor: jsonToColor(js.SkyColor),
		Ambient:  jsonToColor(js.Ambient),
	}

	if js.Camera != nil {
		var cam *viewport.Camera
		if js.Camera.IsOrthographic {
			cam = viewport.NewOrthographicCamera(js.Camera.LeftRight, js.Camera.BottomTop, js.Camera.Near, js.Camera.Far)
		} else {
			cam = viewport.NewCamera(js.Camera.Fov, js.Camera.AspectRatio, js.Camera.Near, js.Camera.Far)
		}
		cam.SetPosition(jsonToVec3(js.Camera.Position))
		sd.Camera = cam
	}

	for _, lj := range js.Lights {
		sd.Lights = append(sd.Lights, jsonToLight(lj))
	}
	for _, nj := range js.Nodes {
		sd.Nodes = append(sd.Nodes, jsonToNode(nj))
	}

	return sd, nil
}

// ApplyToScene replaces s's lights and node children with sd's.
func (sd *SceneData) ApplyToScene(s *scene.Scene) {
	s.SkyColor = sd.SkyColor
	s.Ambient = sd.Ambient
	s.Lights = sd.Lights

	s.Root.Children = s.Root.Children[:0]
	for _, n := range sd.Nodes {
		s.AddNode(n)
	}
}

// ── conversion helpers ───────────────────────────────────────────────────

func vec3ToJSON(v math.Vec3) vec3JSON    { return vec3JSON{v.X, v.Y, v.Z} }
func jsonToVec3(v vec3JSON) math.Vec3    { return math.Vec3{X: v.X, Y: v.Y, Z: v.Z} }
func colorToJSON(c core.Color) colorJSON { return colorJSON{c.R, c.G, c.B, c.A} }
func jsonToColor(c colorJSON) core.Color { return core.Color{R: c.R, G: c.G, B: c.B, A: c.A} }

func transformToJSON(t core.Transform) transformJSON {
	return transformJSON{
		Position: vec3ToJSON(t.Position),
		Scale:    vec3ToJSON(t.Scale),
		RotX:     t.Rotation.X,
		RotY:     t.Rotation.Y,
		RotZ:     t.Rotation.Z,
		RotW:     t.Rotation.W,
	}
}

func jsonToTransform(tj transformJSON) core.Transform {
	t := core.NewTransform()
	t.Position = jsonToVec3(tj.Position)
	t.Scale = jsonToVec3(tj.Scale)
	t.Rotation = math.Quaternion{X: tj.RotX, Y: tj.RotY, Z: tj.RotZ, W: tj.RotW}
	return t
}

func lightToJSON(l *scene.Light) lightJSON {
	return lightJSON{
		Kind:        int(l.Kind),
		Position:    vec3ToJSON(l.Position),
		Direction:   vec3ToJSON(l.Direction),
		Color:       colorToJSON(l.Color),
		Intensity:   l.Intensity,
		Range:       l.Range,
		SpotAngle:   l.SpotAngle,
		CastsShadow: l.CastsShadow,
	}
}

func jsonToLight(lj lightJSON) *scene.Light {
	return &scene.Light{
		Kind:        scene.LightKind(lj.Kind),
		Position:    jsonToVec3(lj.Position),
		Direction:   jsonToVec3(lj.Direction),
		Color:       jsonToColor(lj.Color),
		Intensity:   lj.Intensity,
		Range:       lj.Range,
		SpotAngle:   lj.SpotAngle,
		CastsShadow: lj.CastsShadow,
	}
}

func matToJSON(m *scene.Material) *materialJSON {
	if m == nil {
		return nil
	}
	return &materialJSON{
		Name:             m.Name,
		Albedo:           colorToJSON(m.Albedo),
		Metallic:         m.Metallic,
		Roughness:        m.Roughness,
		Reflectance:      m.Reflectance,
		AmbientOcclusion: m.AmbientOcclusion,
		Path:             int(m.Path),
	}
}

func jsonToMat(mj *materialJSON) *scene.Material {
	if mj == nil {
		return nil
	}
	return &scene.Material{
		Name:             mj.Name,
		Path:             scene.RenderPath(mj.Path),
		Albedo:           jsonToColor(mj.Albedo),
		Metallic:         mj.Metallic,
		Roughness:        mj.Roughness,
		Reflectance:      mj.Reflectance,
		AmbientOcclusion: mj.AmbientOcclusion,
	}
}

func nodeToJSON(n *scene.Node) nodeJSON {
	nj := nodeJSON{
		ID:        n.Id,
		Name:      n.Name,
		Transform: transformToJSON(n.Transform),
		Visible:   n.Visible,
	}
	if mesh := n.Renderer; mesh != nil {
		m := mesh.GetMesh()
		if m != nil {
			nj.MeshName = m.Name
			nj.Material = matToJSON(m.Material)
		}
		if _, skinned := mesh.(*scene.SkinnedMeshRenderer); skinned {
			nj.Skinned = true
		}
	}
	for _, child := range n.Children {
		nj.Children = append(nj.Children, nodeToJSON(child))
	}
	return nj
}

func jsonToNode(nj nodeJSON) *scene.Node {
	n := scene.NewNode(nj.Name)
	n.Id = nj.ID
	n.Transform = jsonToTransform(nj.Transform)
	n.Visible = nj.Visible
	n.MarkWorldMatrixDirty()

	// Meshes are not serialised: stash a name-only placeholder so the
	// caller can match it against an already-loaded scene.Mesh and swap
	// in the real Renderer.
	if nj.MeshName != "" {
		placeholder := scene.NewMesh(nj.MeshName, nil, nil)
		placeholder.Material = jsonToMat(nj.Material)
		if nj.Skinned {
			n.Renderer = scene.NewSkinnedMeshRenderer(placeholder)
		} else {
			n.Renderer = scene.NewStaticMeshRenderer(placeholder)
		}
	}

	for _, childJSON := range nj.Children {
		n.AddChild(jsonToNode(childJSON))
	}
	return n
}
