package scene

import "rendercore/math"

// Keyframe is one sampled instant of a single bone's local transform.
// Grounded on original_source/Core/include/resource/animation.hpp; montage
// blending (animation_montage.hpp) is out of scope, this is single-clip
// sampling only.
type Keyframe struct {
	Time        float32
	Translation math.Vec3
	Scale       math.Vec3
	Rotation    math.Quaternion
}

// BoneChannel is the ordered (by Time) keyframe list for one bone.
type BoneChannel struct {
	Keyframes []Keyframe
}

type Animation struct {
	Name     string
	Duration float32
	Channels []BoneChannel // indexed the same as Skeleton.Bones
}

// Sample produces a Pose by linearly interpolating each bone channel's
// surrounding keyframes at time t (seconds, not wrapped — callers loop by
// taking t = mod(elapsed, Duration) before calling).
func (a *Animation) Sample(t float32) Pose {
	pose := Pose{Local: make([]math.Mat4, len(a.Channels))}
	for i, ch := range a.Channels {
		pose.Local[i] = sampleChannel(ch, t)
	}
	return pose
}

func sampleChannel(ch BoneChannel, t float32) math.Mat4 {
	if len(ch.Keyframes) == 0 {
		return math.Mat4Identity()
	}
	if len(ch.Keyframes) == 1 || t <= ch.Keyframes[0].Time {
		return composeKeyframe(ch.Keyframes[0])
	}

	last := ch.Keyframes[len(ch.Keyframes)-1]
	if t >= last.Time {
		return composeKeyframe(last)
	}

	for i := 0; i < len(ch.Keyframes)-1; i++ {
		a, b := ch.Keyframes[i], ch.Keyframes[i+1]
		if t < a.Time || t > b.Time {
			continue
		}
		span := b.Time - a.Time
		alpha := float32(0)
		if span > 0 {
			alpha = (t - a.Time) / span
		}
		translation := a.Translation.Lerp(b.Translation, alpha)
		scale := a.Scale.Lerp(b.Scale, alpha)
		rotation := a.Rotation.Slerp(b.Rotation, alpha)
		return math.Mat4Translation(translation).Mul(rotation.ToMat4()).Mul(math.Mat4Scale(scale))
	}
	return composeKeyframe(last)
}

func composeKeyframe(k Keyframe) math.Mat4 {
	return math.Mat4Translation(k.Translation).Mul(k.Rotation.ToMat4()).Mul(math.Mat4Scale(k.Scale))
}
