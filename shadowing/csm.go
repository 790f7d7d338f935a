package shadowing

import (
	stdmath "math"

	"rendercore/math"
	"rendercore/spatial"
)

// SplitFractions are CSM split distances as fractions of the camera's far
// plane, bit-exact by convention.
var SplitFractions = [4]float32{1.0 / 100, 1.0 / 50, 1.0 / 20, 1.0 / 4}

// frustumCorners returns the eight world-space corners of the view frustum
// slice between near and far, using the camera's fov/aspect to size the
// near/far rectangles — the same corner-ray construction spatial.Frustum
// uses, applied to an arbitrary [near,far] sub-range instead of the whole
// frustum.
func frustumCorners(cam spatial.CameraView, aspect, near, far float32) [8]math.Vec3 {
	halfVNear := near * tan32(cam.Fov*0.5)
	halfHNear := halfVNear * aspect
	halfVFar := far * tan32(cam.Fov*0.5)
	halfHFar := halfVFar * aspect

	centerNear := cam.Position.Add(cam.Front.Mul(near))
	centerFar := cam.Position.Add(cam.Front.Mul(far))

	return [8]math.Vec3{
		centerNear.Add(cam.Up.Mul(halfVNear)).Add(cam.Right.Mul(halfHNear)),
		centerNear.Add(cam.Up.Mul(halfVNear)).Sub(cam.Right.Mul(halfHNear)),
		centerNear.Sub(cam.Up.Mul(halfVNear)).Add(cam.Right.Mul(halfHNear)),
		centerNear.Sub(cam.Up.Mul(halfVNear)).Sub(cam.Right.Mul(halfHNear)),
		centerFar.Add(cam.Up.Mul(halfVFar)).Add(cam.Right.Mul(halfHFar)),
		centerFar.Add(cam.Up.Mul(halfVFar)).Sub(cam.Right.Mul(halfHFar)),
		centerFar.Sub(cam.Up.Mul(halfVFar)).Add(cam.Right.Mul(halfHFar)),
		centerFar.Sub(cam.Up.Mul(halfVFar)).Sub(cam.Right.Mul(halfHFar)),
	}
}

func tan32(v float32) float32 {
	return float32(stdmath.Tan(float64(v)))
}

// CascadeViewProj fits an orthographic light-space view-projection matrix
// around the view frustum slice [near,far], average the
// eight corners to a center, place the light camera at
// center+lightDir looking along -lightDir (up = Y), fit an AABB of the
// corners in light space, then widen the Z range symmetrically by
// zMultiplier (each bound scaled away from zero, scaled toward zero if it's
// already on the far side) to capture casters standing outside the slice
// itself on either end.
func CascadeViewProj(cam spatial.CameraView, aspect, near, far float32, lightDir math.Vec3, zMultiplier float32) math.Mat4 {
	corners := frustumCorners(cam, aspect, near, far)

	var center math.Vec3
	for _, c := range corners {
		center = center.Add(c)
	}
	center = center.Mul(1.0 / 8.0)

	up := math.Vec3{X: 0, Y: 1, Z: 0}
	if absf(lightDir.Normalize().Dot(up)) > 0.999 {
		up = math.Vec3{X: 0, Y: 0, Z: 1}
	}
	eye := center.Add(lightDir)
	view := math.Mat4LookAt(eye, center, up)

	minX, minY, minZ := float32(1e30), float32(1e30), float32(1e30)
	maxX, maxY, maxZ := float32(-1e30), float32(-1e30), float32(-1e30)
	for _, c := range corners {
		lc := view.MulVec3(c)
		minX, maxX = minf(minX, lc.X), maxf(maxX, lc.X)
		minY, maxY = minf(minY, lc.Y), maxf(maxY, lc.Y)
		minZ, maxZ = minf(minZ, lc.Z), maxf(maxZ, lc.Z)
	}

	if zMultiplier > 0 {
		if minZ < 0 {
			minZ *= zMultiplier
		} else {
			minZ /= zMultiplier
		}
		if maxZ < 0 {
			maxZ /= zMultiplier
		} else {
			maxZ *= zMultiplier
		}
	}

	proj := math.Mat4Orthographic(minX, maxX, minY, maxY, -maxZ, -minZ)
	return view.Mul(proj)
}

func absf(v float32) float32 {
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
