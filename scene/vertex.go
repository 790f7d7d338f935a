package scene

import (
	"rendercore/core"
	"rendercore/math"
)

const maxBoneInfluences = 4

// Vertex carries everything the deferred G-buffer pass and the skinned
// vertex shader need: position/normal/UV/tangent for lighting, plus up to
// four bone influences per vertex for skinning. Static meshes leave
// BoneIndices/BoneWeights zeroed (weight 0 on bone 0 is a no-op influence).
type Vertex struct {
	Position  math.Vec3
	Normal    math.Vec3
	UV        math.Vec2
	Tangent   math.Vec3
	Bitangent math.Vec3
	Color     core.Color

	BoneIndices [maxBoneInfluences]uint32
	BoneWeights [maxBoneInfluences]float32
}

type MeshData struct {
	Vertices []Vertex
	Indices  []uint32
}
