package spatial

import "rendercore/math"

// Plane is a point-normal plane stored in normal/distance form so the
// signed-distance test is a single dot product.
type Plane struct {
	Normal   math.Vec3
	Distance float32
}

func NewPlane(point, normal math.Vec3) Plane {
	n := normal.Normalize()
	return Plane{Normal: n, Distance: n.Dot(point)}
}

func (p Plane) SignedDistance(point math.Vec3) float32 {
	return p.Normal.Dot(point) - p.Distance
}
