package asset

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	stdmath "math"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"rendercore/core"
	"rendercore/math"
	"rendercore/scene"
)

// GLTFResult holds everything LoadGLTF pulled out of a .glb/.gltf document.
// Upload every texture in Textures to the RHI before the first draw of a
// node that references it.
type GLTFResult struct {
	Roots    []*scene.Node
	Textures []*scene.Texture
}

// LoadGLTF opens a .glb or .gltf file and returns a ready-to-use scene
// graph: node hierarchy, PBR metallic-roughness materials, base-colour and
// normal textures, and — for primitives bound to a skin — a Skeleton,
// per-vertex bone weights, and the first animation that targets that skin
// (further animations for the same skin are not attached).
// Grounded on github.com/qmuntal/gltf + modeler, the dependency the reference renderer
// already carries; skin/animation extraction follows the joint-topology
// sort pattern worked out in the oxy-go example loader.
func LoadGLTF(path string) (*GLTFResult, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	dir := filepath.Dir(path)
	result := &GLTFResult{}

	// ── 1. Textures ─────────────────────────────────────────────────────
	texCache := make([]*scene.Texture, len(doc.Textures))
	for i, gt := range doc.Textures {
		if gt.Source == nil {
			continue
		}
		img := doc.Images[*gt.Source]

		var tex *scene.Texture
		if img.BufferView != nil {
			raw, err := modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
			if err != nil {
				fmt.Printf("gltf: image %d bufferview: %v\n", *gt.Source, err)
				continue
			}
			name := img.Name
			if name == "" {
				name = fmt.Sprintf("gltf_img_%d", *gt.Source)
			}
			tex, err = decodeImageBytes(name, raw)
			if err != nil {
				fmt.Printf("gltf: image %d decode: %v\n", *gt.Source, err)
				continue
			}
		} else if img.URI != "" && !img.IsEmbeddedResource() {
			tex, err = scene.LoadTexture(filepath.Join(dir, img.URI))
			if err != nil {
				fmt.Printf("gltf: image %d (%s): %v\n", *gt.Source, img.URI, err)
				continue
			}
		}

		if tex != nil {
			texCache[i] = tex
			result.Textures = append(result.Textures, tex)
		}
	}

	// ── 2. Materials ────────────────────────────────────────────────────
	matCache := make([]*scene.Material, len(doc.Materials))
	for i, gm := range doc.Materials {
		mat := scene.DefaultMaterial()
		mat.Name = gm.Name
		if gm.AlphaMode == gltf.AlphaBlend {
			mat.Path = scene.PathTranslucent
		}

		if pbr := gm.PBRMetallicRoughness; pbr != nil {
			cf := pbr.BaseColorFactorOrDefault()
			mat.Albedo = core.Color{R: float32(cf[0]), G: float32(cf[1]), B: float32(cf[2]), A: float32(cf[3])}
			mat.Metallic = float32(pbr.MetallicFactorOrDefault())
			mat.Roughness = float32(pbr.RoughnessFactorOrDefault())

			if pbr.BaseColorTexture != nil {
				idx := int(pbr.BaseColorTexture.Index)
				if idx < len(texCache) && texCache[idx] != nil {
					mat.AlbedoTexture = texCache[idx]
				}
			}
			if pbr.MetallicRoughnessTexture != nil {
				idx := int(pbr.MetallicRoughnessTexture.Index)
				if idx < len(texCache) && texCache[idx] != nil {
					mat.MetallicRoughnessTexture = texCache[idx]
				}
			}
		}

		if gm.NormalTexture != nil && gm.NormalTexture.Index != nil {
			idx := int(*gm.NormalTexture.Index)
			if idx < len(texCache) && texCache[idx] != nil {
				mat.NormalTexture = texCache[idx]
			}
		}
		if gm.OcclusionTexture != nil && gm.OcclusionTexture.Index != nil {
			idx := int(*gm.OcclusionTexture.Index)
			if idx < len(texCache) && texCache[idx] != nil {
				mat.AmbientOcclusionTexture = texCache[idx]
			}
		}
		if gm.EmissiveTexture != nil {
			idx := int(gm.EmissiveTexture.Index)
			if idx < len(texCache) && texCache[idx] != nil {
				mat.EmissiveTexture = texCache[idx]
			}
		}
		ef := gm.EmissiveFactorOrDefault()
		mat.EmissiveColor = core.Color{R: float32(ef[0]), G: float32(ef[1]), B: float32(ef[2]), A: 1}

		matCache[i] = mat
	}

	// ── 3. Skins (skeletons) ────────────────────────────────────────────
	skeletons := make([]*scene.Skeleton, len(doc.Skins))
	nodeToBone := make([]map[int]int, len(doc.Skins))
	for i := range doc.Skins {
		sk, mapping, err := extractSkeleton(doc, i)
		if err != nil {
			fmt.Printf("gltf: skin %d: %v\n", i, err)
			continue
		}
		skeletons[i] = sk
		nodeToBone[i] = mapping
	}

	animsForSkin := make([][]*scene.Animation, len(doc.Skins))
	for skinIdx := range doc.Skins {
		if skeletons[skinIdx] == nil {
			continue
		}
		jointSet := make(map[int]bool, len(doc.Skins[skinIdx].Joints))
		for _, j := range doc.Skins[skinIdx].Joints {
			jointSet[int(j)] = true
		}
		for _, anim := range doc.Animations {
			relevant := false
			for _, ch := range anim.Channels {
				if ch.Target.Node != nil && jointSet[int(*ch.Target.Node)] {
					relevant = true
					break
				}
			}
			if !relevant {
				continue
			}
			a, err := extractAnimation(doc, anim, nodeToBone[skinIdx], len(skeletons[skinIdx].Bones))
			if err != nil {
				fmt.Printf("gltf: animation %q for skin %d: %v\n", anim.Name, skinIdx, err)
				continue
			}
			animsForSkin[skinIdx] = append(animsForSkin[skinIdx], a)
		}
	}

	// ── 4. Mesh primitives ──────────────────────────────────────────────
	meshPrims := make([][]*scene.Mesh, len(doc.Meshes))
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			m, err := loadGLTFPrimitive(doc, gm.Name, pi, *prim)
			if err != nil {
				fmt.Printf("gltf: mesh %d prim %d: %v\n", mi, pi, err)
				continue
			}
			scene.ComputeTangents(m)
			if prim.Material != nil && int(*prim.Material) < len(matCache) {
				m.Material = matCache[*prim.Material]
			} else {
				m.Material = scene.DefaultMaterial()
			}
			meshPrims[mi] = append(meshPrims[mi], m)
		}
	}

	// ── 5. Nodes ────────────────────────────────────────────────────────
	nodes := make([]*scene.Node, len(doc.Nodes))
	for i, gn := range doc.Nodes {
		name := gn.Name
		if name == "" {
			name = fmt.Sprintf("node_%d", i)
		}
		n := scene.NewNode(name)

		t := gn.TranslationOrDefault()
		n.SetPosition(math.Vec3{X: float32(t[0]), Y: float32(t[1]), Z: float32(t[2])})
		sc := gn.ScaleOrDefault()
		n.SetScale(math.Vec3{X: float32(sc[0]), Y: float32(sc[1]), Z: float32(sc[2])})
		r := gn.RotationOrDefault()
		n.SetRotation(math.Quaternion{X: float32(r[0]), Y: float32(r[1]), Z: float32(r[2]), W: float32(r[3])})

		if gn.Mesh != nil && int(*gn.Mesh) < len(meshPrims) {
			prims := meshPrims[*gn.Mesh]
			var anims []*scene.Animation
			var skel *scene.Skeleton
			if gn.Skin != nil && int(*gn.Skin) < len(skeletons) && skeletons[*gn.Skin] != nil {
				skel = skeletons[*gn.Skin]
				anims = animsForSkin[*gn.Skin]
			}
			attachPrimitives(n, name, prims, skel, anims)
		}
		nodes[i] = n
	}

	for i, gn := range doc.Nodes {
		if nodes[i] == nil {
			continue
		}
		for _, childIdx := range gn.Children {
			if int(childIdx) < len(nodes) && nodes[childIdx] != nil {
				nodes[i].AddChild(nodes[childIdx])
			}
		}
	}

	if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
		for _, rootIdx := range doc.Scenes[*doc.Scene].Nodes {
			if int(rootIdx) < len(nodes) && nodes[rootIdx] != nil {
				result.Roots = append(result.Roots, nodes[rootIdx])
			}
		}
	} else {
		hasParent := make([]bool, len(nodes))
		for _, gn := range doc.Nodes {
			for _, c := range gn.Children {
				if int(c) < len(hasParent) {
					hasParent[c] = true
				}
			}
		}
		for i, n := range nodes {
			if n != nil && !hasParent[i] {
				result.Roots = append(result.Roots, n)
			}
		}
	}

	return result, nil
}

// attachPrimitives wires one mesh's primitives onto node n, either directly
// (single primitive) or via one child per primitive (multiple primitives),
// attaching a SkinnedMeshRenderer when skel is non-nil and a
// StaticMeshRenderer otherwise.
func attachPrimitives(n *scene.Node, baseName string, prims []*scene.Mesh, skel *scene.Skeleton, anims []*scene.Animation) {
	attach := func(target *scene.Node, m *scene.Mesh) {
		if skel != nil {
			m.Skeleton = skel
			if len(anims) > 0 {
				m.Animation = anims[0]
			}
			target.Renderer = scene.NewSkinnedMeshRenderer(m)
		} else {
			target.Renderer = scene.NewStaticMeshRenderer(m)
		}
	}

	switch len(prims) {
	case 0:
	case 1:
		attach(n, prims[0])
	default:
		for pi, p := range prims {
			child := scene.NewNode(fmt.Sprintf("%s_prim%d", baseName, pi))
			attach(child, p)
			n.AddChild(child)
		}
	}
}

// loadGLTFPrimitive converts one glTF mesh primitive into a scene.Mesh,
// including joint/weight attributes when present.
func loadGLTFPrimitive(doc *gltf.Document, meshName string, primIdx int, prim gltf.Primitive) (*scene.Mesh, error) {
	name := fmt.Sprintf("%s_p%d", meshName, primIdx)
	if meshName == "" {
		name = fmt.Sprintf("prim_%d", primIdx)
	}

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	var uvs [][2]float32
	var joints [][4]uint16
	var weights [][4]float32

	if idx, ok := prim.Attributes["NORMAL"]; ok {
		normals, _ = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
	}
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		uvs, _ = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
	}
	if idx, ok := prim.Attributes["JOINTS_0"]; ok {
		joints, _ = modeler.ReadJoints(doc, doc.Accessors[idx], nil)
	}
	if idx, ok := prim.Attributes["WEIGHTS_0"]; ok {
		weights, _ = modeler.ReadWeights(doc, doc.Accessors[idx], nil)
	}

	verts := make([]scene.Vertex, len(positions))
	for i, p := range positions {
		v := scene.Vertex{
			Position: math.Vec3{X: p[0], Y: p[1], Z: p[2]},
			Normal:   math.Vec3{X: 0, Y: 1, Z: 0},
			Color:    core.ColorWhite,
		}
		if i < len(normals) {
			n := normals[i]
			v.Normal = math.Vec3{X: n[0], Y: n[1], Z: n[2]}
		}
		if i < len(uvs) {
			v.UV = math.Vec2{X: uvs[i][0], Y: uvs[i][1]}
		}
		if i < len(joints) {
			j := joints[i]
			v.BoneIndices = [4]uint32{uint32(j[0]), uint32(j[1]), uint32(j[2]), uint32(j[3])}
		}
		if i < len(weights) {
			v.BoneWeights = weights[i]
		}
		verts[i] = v
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	}

	return scene.NewMesh(name, verts, indices), nil
}

// decodeImageBytes decodes a PNG or JPEG byte slice into an RGBA8 Texture.
func decodeImageBytes(name string, data []byte) (*scene.Texture, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rgba.Set(x, y, img.At(x, y))
		}
	}
	return &scene.Texture{Name: name, Width: bounds.Dx(), Height: bounds.Dy(), Pixels: rgba.Pix}, nil
}

// ── Skin / animation extraction ─────────────────────────────────────────

type rawBone struct {
	name        string
	parent      int // index into the raw joints slice, -1 if root
	inverseBind math.Mat4
}

// extractSkeleton builds a scene.Skeleton from doc.Skins[skinIndex], sorting
// joints into parents-before-children order (glTF does not guarantee this),
// and returns the glTF-node-index → sorted-bone-index mapping animation
// extraction needs to target the right channel.
func extractSkeleton(doc *gltf.Document, skinIndex int) (*scene.Skeleton, map[int]int, error) {
	skin := doc.Skins[skinIndex]

	var ibms []math.Mat4
	if skin.InverseBindMatrices != nil {
		flat, err := readFloatAccessor(doc, *skin.InverseBindMatrices)
		if err != nil {
			return nil, nil, fmt.Errorf("inverse bind matrices: %w", err)
		}
		ibms = make([]math.Mat4, len(flat)/16)
		for i := range ibms {
			var a [16]float32
			copy(a[:], flat[i*16:i*16+16])
			ibms[i] = mat4FromGLTFArray(a)
		}
	}

	joints := skin.Joints
	boneOfNode := make(map[int]int, len(joints))
	for i, j := range joints {
		boneOfNode[int(j)] = i
	}

	raw := make([]rawBone, len(joints))
	for i, j := range joints {
		node := doc.Nodes[j]
		name := node.Name
		if name == "" {
			name = fmt.Sprintf("joint_%d", i)
		}
		ib := math.Mat4Identity()
		if i < len(ibms) {
			ib = ibms[i]
		}
		raw[i] = rawBone{name: name, parent: -1, inverseBind: ib}
	}
	for i, j := range joints {
		for _, child := range doc.Nodes[j].Children {
			if bi, ok := boneOfNode[int(child)]; ok {
				raw[bi].parent = i
			}
		}
	}

	order := topoSortBones(raw)
	oldToNew := make([]int, len(raw))
	for newIdx, oldIdx := range order {
		oldToNew[oldIdx] = newIdx
	}

	bones := make([]scene.Bone, len(raw))
	nodeToBone := make(map[int]int, len(joints))
	for newIdx, oldIdx := range order {
		b := raw[oldIdx]
		parentNew := -1
		if b.parent >= 0 {
			parentNew = oldToNew[b.parent]
		}
		bones[newIdx] = scene.Bone{Name: b.name, ParentIndex: parentNew, InverseBind: b.inverseBind}
		nodeToBone[int(joints[oldIdx])] = newIdx
	}

	return &scene.Skeleton{Bones: bones}, nodeToBone, nil
}

// topoSortBones returns raw-slice indices in parents-before-children order
// via a root-first BFS, appending any unreachable (cyclic/orphaned) bones
// at the end so every bone is still included.
func topoSortBones(raw []rawBone) []int {
	children := make(map[int][]int)
	var roots []int
	for i, b := range raw {
		if b.parent < 0 {
			roots = append(roots, i)
		} else {
			children[b.parent] = append(children[b.parent], i)
		}
	}

	order := make([]int, 0, len(raw))
	queue := append([]int{}, roots...)
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		order = append(order, idx)
		queue = append(queue, children[idx]...)
	}
	if len(order) < len(raw) {
		seen := make(map[int]bool, len(order))
		for _, i := range order {
			seen[i] = true
		}
		for i := range raw {
			if !seen[i] {
				order = append(order, i)
			}
		}
	}
	return order
}

// trsTrack holds one bone's raw, possibly-unsynchronised translation/
// rotation/scale sampler tracks before they are baked into Keyframes.
type trsTrack struct {
	tTimes []float32
	tVals  []math.Vec3
	rTimes []float32
	rVals  []math.Quaternion
	sTimes []float32
	sVals  []math.Vec3
}

// extractAnimation merges a glTF animation's per-property channels into a
// scene.Animation with one combined Keyframe list per bone, sampling
// whichever tracks are absent at a given time from their neighbours.
func extractAnimation(doc *gltf.Document, anim gltf.Animation, nodeToBone map[int]int, boneCount int) (*scene.Animation, error) {
	tracks := make(map[int]*trsTrack)
	var duration float32

	for i := range anim.Channels {
		ch := anim.Channels[i]
		if ch.Target.Node == nil {
			continue
		}
		boneIdx, ok := nodeToBone[int(*ch.Target.Node)]
		if !ok {
			continue
		}
		if int(ch.Sampler) >= len(anim.Samplers) {
			continue
		}
		sampler := anim.Samplers[ch.Sampler]

		times, err := readFloatAccessor(doc, sampler.Input)
		if err != nil {
			return nil, fmt.Errorf("channel %d input: %w", i, err)
		}
		if len(times) > 0 && times[len(times)-1] > duration {
			duration = times[len(times)-1]
		}

		tr, ok := tracks[boneIdx]
		if !ok {
			tr = &trsTrack{}
			tracks[boneIdx] = tr
		}

		switch ch.Target.Path {
		case gltf.TRSTranslation:
			out, err := readFloatAccessor(doc, sampler.Output)
			if err != nil {
				return nil, fmt.Errorf("channel %d translation: %w", i, err)
			}
			tr.tTimes, tr.tVals = times, toVec3Slice(out)
		case gltf.TRSRotation:
			out, err := readFloatAccessor(doc, sampler.Output)
			if err != nil {
				return nil, fmt.Errorf("channel %d rotation: %w", i, err)
			}
			tr.rTimes, tr.rVals = times, toQuatSlice(out)
		case gltf.TRSScale:
			out, err := readFloatAccessor(doc, sampler.Output)
			if err != nil {
				return nil, fmt.Errorf("channel %d scale: %w", i, err)
			}
			tr.sTimes, tr.sVals = times, toVec3Slice(out)
		default:
			// weights (morph targets) are not supported
		}
	}

	channels := make([]scene.BoneChannel, boneCount)
	for boneIdx, tr := range tracks {
		if boneIdx >= boneCount {
			continue
		}
		times := unionTimes(tr.tTimes, tr.rTimes, tr.sTimes)
		keys := make([]scene.Keyframe, len(times))
		for i, t := range times {
			keys[i] = scene.Keyframe{
				Time:        t,
				Translation: sampleVec3Track(tr.tTimes, tr.tVals, t, math.Vec3{}),
				Rotation:    sampleQuatTrack(tr.rTimes, tr.rVals, t),
				Scale:       sampleVec3Track(tr.sTimes, tr.sVals, t, math.Vec3{X: 1, Y: 1, Z: 1}),
			}
		}
		channels[boneIdx] = scene.BoneChannel{Keyframes: keys}
	}

	name := anim.Name
	if name == "" {
		name = "animation"
	}
	return &scene.Animation{Name: name, Duration: duration, Channels: channels}, nil
}

func toVec3Slice(flat []float32) []math.Vec3 {
	out := make([]math.Vec3, len(flat)/3)
	for i := range out {
		out[i] = math.Vec3{X: flat[i*3], Y: flat[i*3+1], Z: flat[i*3+2]}
	}
	return out
}

func toQuatSlice(flat []float32) []math.Quaternion {
	out := make([]math.Quaternion, len(flat)/4)
	for i := range out {
		out[i] = math.Quaternion{X: flat[i*4], Y: flat[i*4+1], Z: flat[i*4+2], W: flat[i*4+3]}
	}
	return out
}

// unionTimes merges several sorted time tracks into one sorted, deduped list.
func unionTimes(tracks ...[]float32) []float32 {
	seen := make(map[float32]bool)
	var out []float32
	for _, track := range tracks {
		for _, t := range track {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

func sampleVec3Track(times []float32, vals []math.Vec3, t float32, fallback math.Vec3) math.Vec3 {
	if len(vals) == 0 {
		return fallback
	}
	if len(vals) == 1 || t <= times[0] {
		return vals[0]
	}
	if t >= times[len(times)-1] {
		return vals[len(vals)-1]
	}
	for i := 0; i < len(times)-1; i++ {
		if t >= times[i] && t <= times[i+1] {
			span := times[i+1] - times[i]
			alpha := float32(0)
			if span > 0 {
				alpha = (t - times[i]) / span
			}
			return vals[i].Lerp(vals[i+1], alpha)
		}
	}
	return vals[len(vals)-1]
}

func sampleQuatTrack(times []float32, vals []math.Quaternion, t float32) math.Quaternion {
	if len(vals) == 0 {
		return math.QuaternionIdentity()
	}
	if len(vals) == 1 || t <= times[0] {
		return vals[0]
	}
	if t >= times[len(times)-1] {
		return vals[len(vals)-1]
	}
	for i := 0; i < len(times)-1; i++ {
		if t >= times[i] && t <= times[i+1] {
			span := times[i+1] - times[i]
			alpha := float32(0)
			if span > 0 {
				alpha = (t - times[i]) / span
			}
			return vals[i].Slerp(vals[i+1], alpha)
		}
	}
	return vals[len(vals)-1]
}

// mat4FromGLTFArray reinterprets a flat, column-major glTF matrix as the
// engine's row-vector Mat4: glTF's M[r][c] = arr[c*4+r] combined with the
// engine's v' = v*M convention means engine_m[i][j] = arr[i*4+j], i.e. the
// flat array read directly into the [4][4] grid in order.
func mat4FromGLTFArray(a [16]float32) math.Mat4 {
	var m math.Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			m[i][j] = a[i*4+j]
		}
	}
	return m
}

// readFloatAccessor decodes a float32 accessor (SCALAR/VEC3/VEC4/MAT4) into
// a flat slice, honouring byte offset and interleaved buffer-view stride.
// Animation sampler and inverse-bind-matrix data is effectively always
// exported as float32, so non-float component types are not handled here.
func readFloatAccessor(doc *gltf.Document, accessorIndex uint32) ([]float32, error) {
	acr := doc.Accessors[accessorIndex]
	if acr.BufferView == nil {
		return nil, fmt.Errorf("accessor %d has no buffer view", accessorIndex)
	}
	bv := doc.BufferViews[*acr.BufferView]
	raw, err := modeler.ReadBufferView(doc, bv)
	if err != nil {
		return nil, err
	}

	comps := accessorComponentCount(acr.Type)
	elemSize := comps * 4
	stride := elemSize
	if bv.ByteStride != 0 {
		stride = int(bv.ByteStride)
	}
	count := int(acr.Count)
	base := int(acr.ByteOffset)

	out := make([]float32, count*comps)
	for i := 0; i < count; i++ {
		elemOffset := base + i*stride
		for c := 0; c < comps; c++ {
			off := elemOffset + c*4
			if off+4 > len(raw) {
				return nil, fmt.Errorf("accessor %d: out of range read at element %d", accessorIndex, i)
			}
			bits := binary.LittleEndian.Uint32(raw[off : off+4])
			out[i*comps+c] = stdmath.Float32frombits(bits)
		}
	}
	return out, nil
}

func accessorComponentCount(t gltf.AccessorType) int {
	switch t {
	case gltf.AccessorScalar:
		return 1
	case gltf.AccessorVec2:
		return 2
	case gltf.AccessorVec3:
		return 3
	case gltf.AccessorVec4:
		return 4
	case gltf.AccessorMat4:
		return 16
	default:
		return 1
	}
}
