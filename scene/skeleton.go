package scene

import "rendercore/math"

// MaxBones bounds the bone palette uploaded to the skinned uniform block;
// meshes with more bones than this cannot be skinned in a single draw.
const MaxBones = 100

// Bone is one entry of a Skeleton's flat, parents-before-children bone list,
// grounded on original_source/Core/include/resource/skeleton.hpp. Storing
// bones in topological order lets bone-palette computation run as a single
// forward pass with no recursion: by the time a bone is visited its parent's
// world matrix has already been written.
type Bone struct {
	Name        string
	ParentIndex int // -1 marks a root bone
	InverseBind math.Mat4
}

type Skeleton struct {
	Bones []Bone
}

func (s *Skeleton) BoneIndex(name string) (int, bool) {
	for i, b := range s.Bones {
		if b.Name == name {
			return i, true
		}
	}
	return 0, false
}

// Pose holds one local transform per bone, in the same order as
// Skeleton.Bones, typically produced by Animation.Sample.
type Pose struct {
	Local []math.Mat4
}

// BonePalette resolves a pose into the skin matrices the skinned vertex
// shader consumes: worldMatrix(bone) * InverseBind(bone), computed root-to-leaf
// in a single pass because parents always precede children in s.Bones.
func (s *Skeleton) BonePalette(pose Pose) []math.Mat4 {
	world := make([]math.Mat4, len(s.Bones))
	palette := make([]math.Mat4, len(s.Bones))

	for i, bone := range s.Bones {
		local := math.Mat4Identity()
		if i < len(pose.Local) {
			local = pose.Local[i]
		}
		if bone.ParentIndex < 0 {
			world[i] = local
		} else {
			world[i] = world[bone.ParentIndex].Mul(local)
		}
		palette[i] = world[i].Mul(bone.InverseBind)
	}
	return palette
}
