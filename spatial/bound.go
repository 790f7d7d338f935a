// Package spatial holds the axis-aligned bounding volume, the view frustum,
// and the octree used to cull the scene's static renderables.
package spatial

import (
	"rendercore/math"
)

// Bound is a center/half-extent axis-aligned box, not a min/max pair — the
// octree's cube normalization and the frustum's plane test both want the
// center and a per-axis radius.
type Bound struct {
	Center  math.Vec3
	Extents math.Vec3 // half-size
}

func NewBound(center, size math.Vec3) Bound {
	return Bound{Center: center, Extents: size.Mul(0.5)}
}

func (b Bound) GetMin() math.Vec3 { return b.Center.Sub(b.Extents) }
func (b Bound) GetMax() math.Vec3 { return b.Center.Add(b.Extents) }
func (b Bound) GetSize() math.Vec3 {
	return b.Extents.Mul(2)
}

func BoundFromMinMax(min, max math.Vec3) Bound {
	extents := max.Sub(min).Mul(0.5)
	return Bound{Center: min.Add(extents), Extents: extents}
}

func (b Bound) Intersect(other Bound) bool {
	max, min := b.GetMax(), b.GetMin()
	otherMax, otherMin := other.GetMax(), other.GetMin()

	xOverlap := min.X <= otherMax.X && max.X >= otherMin.X
	yOverlap := min.Y <= otherMax.Y && max.Y >= otherMin.Y
	zOverlap := min.Z <= otherMax.Z && max.Z >= otherMin.Z
	return xOverlap && yOverlap && zOverlap
}

// Countain reports whether b fully contains other (name kept as a direct,
// deliberate mirror of the containment test's role in DivideAndAdd).
func (b Bound) Countain(other Bound) bool {
	max, min := b.GetMax(), b.GetMin()
	otherMax, otherMin := other.GetMax(), other.GetMin()

	xInside := min.X <= otherMin.X && max.X >= otherMax.X
	yInside := min.Y <= otherMin.Y && max.Y >= otherMax.Y
	zInside := min.Z <= otherMin.Z && max.Z >= otherMax.Z
	return xInside && yInside && zInside
}

// IsOnPlane reports whether any part of b lies on the positive side of
// plane, using the projected-radius test against the plane normal.
func (b Bound) IsOnPlane(plane Plane) bool {
	r := b.Extents.X*abs32(plane.Normal.X) +
		b.Extents.Y*abs32(plane.Normal.Y) +
		b.Extents.Z*abs32(plane.Normal.Z)
	return -r <= plane.SignedDistance(b.Center)
}

func (b *Bound) Encapsulate(point math.Vec3) {
	min, max := b.GetMin(), b.GetMax()
	min = math.Vec3{X: minf(min.X, point.X), Y: minf(min.Y, point.Y), Z: minf(min.Z, point.Z)}
	max = math.Vec3{X: maxf(max.X, point.X), Y: maxf(max.Y, point.Y), Z: maxf(max.Z, point.Z)}
	*b = BoundFromMinMax(min, max)
}

func (b *Bound) EncapsulateBound(other Bound) {
	b.Encapsulate(other.Center.Sub(other.Extents))
	b.Encapsulate(other.Center.Add(other.Extents))
}

// GetAabbFromTransform re-derives a world-space AABB for a local bound under
// a world matrix, by projecting the scaled local axes onto world X/Y/Z and
// summing their absolute contributions per axis — cheaper than transforming
// all eight corners and exact for the conservative AABB case.
func GetAabbFromTransform(bound Bound, worldMatrix math.Mat4) Bound {
	globalCenter := worldMatrix.MulVec3(bound.Center)

	right := math.Vec3{X: worldMatrix[0][0], Y: worldMatrix[0][1], Z: worldMatrix[0][2]}.Mul(bound.Extents.X)
	up := math.Vec3{X: worldMatrix[1][0], Y: worldMatrix[1][1], Z: worldMatrix[1][2]}.Mul(bound.Extents.Y)
	forward := math.Vec3{X: worldMatrix[2][0], Y: worldMatrix[2][1], Z: worldMatrix[2][2]}.Mul(bound.Extents.Z)

	newExtentX := abs32(right.X) + abs32(up.X) + abs32(forward.X)
	newExtentY := abs32(right.Y) + abs32(up.Y) + abs32(forward.Y)
	newExtentZ := abs32(right.Z) + abs32(up.Z) + abs32(forward.Z)

	return NewBound(globalCenter, math.Vec3{X: newExtentX, Y: newExtentY, Z: newExtentZ}.Mul(2))
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
