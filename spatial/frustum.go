package spatial

import "rendercore/math"

// CameraView is the minimal camera state the frustum needs to rebuild its
// six planes: position/basis, fov, near/far, and the orthographic flag.
type CameraView struct {
	Position        math.Vec3
	Front, Up, Right math.Vec3
	Fov             float32 // radians (vertical), perspective only
	Near, Far       float32
	IsOrthographic  bool
}

// Frustum holds six planes, each oriented so its positive side points into
// the visible volume.
type Frustum struct {
	Near, Far, Left, Right, Top, Bottom Plane
}

// UpdateFromCamera rebuilds the six planes from the camera's position, basis
// and projection parameters using the corner-ray/cross-product construction:
// each side plane's normal is the cross product of the camera's up/right
// axis with a ray through the far-plane corner, rather than extracting rows
// from the view-projection matrix.
func (f *Frustum) UpdateFromCamera(cam CameraView, aspect float32) {
	if cam.IsOrthographic {
		f.updateOrthographic(cam, aspect)
	} else {
		f.updatePerspective(cam, aspect)
	}
}

func (f *Frustum) updatePerspective(cam CameraView, aspect float32) {
	halfVSide := cam.Far * tan32(cam.Fov*0.5)
	halfHSide := halfVSide * aspect
	frontMultFar := cam.Front.Mul(cam.Far)

	f.Near = NewPlane(cam.Position.Add(cam.Front.Mul(cam.Near)), cam.Front)
	f.Far = NewPlane(cam.Position.Add(frontMultFar), cam.Front.Negate())
	f.Right = NewPlane(cam.Position, frontMultFar.Sub(cam.Right.Mul(halfHSide)).Cross(cam.Up))
	f.Left = NewPlane(cam.Position, cam.Up.Cross(frontMultFar.Add(cam.Right.Mul(halfHSide))))
	f.Top = NewPlane(cam.Position, cam.Right.Cross(frontMultFar.Sub(cam.Up.Mul(halfVSide))))
	f.Bottom = NewPlane(cam.Position, frontMultFar.Add(cam.Up.Mul(halfVSide)).Cross(cam.Right))
}

// updateOrthographic mirrors the original engine's orthographic construction,
// which still derives a (conservative) pyramidal frustum from far/2 rather
// than the camera's explicit left/right/bottom/top box.
func (f *Frustum) updateOrthographic(cam CameraView, aspect float32) {
	halfVSide := cam.Far * 0.5
	halfHSide := halfVSide * aspect
	frontMultFar := cam.Front.Mul(cam.Far)

	f.Near = NewPlane(cam.Position.Add(cam.Front.Mul(cam.Near)), cam.Front)
	f.Far = NewPlane(cam.Position.Add(frontMultFar), cam.Front.Negate())
	f.Right = NewPlane(cam.Position, frontMultFar.Sub(cam.Right.Mul(halfHSide)).Cross(cam.Up))
	f.Left = NewPlane(cam.Position, cam.Up.Cross(frontMultFar.Add(cam.Right.Mul(halfHSide))))
	f.Top = NewPlane(cam.Position, cam.Right.Cross(frontMultFar.Sub(cam.Up.Mul(halfVSide))))
	f.Bottom = NewPlane(cam.Position, frontMultFar.Add(cam.Up.Mul(halfVSide)).Cross(cam.Right))
}

func (f Frustum) IsOnFrustum(bound Bound) bool {
	return bound.IsOnPlane(f.Top) &&
		bound.IsOnPlane(f.Bottom) &&
		bound.IsOnPlane(f.Near) &&
		bound.IsOnPlane(f.Far) &&
		bound.IsOnPlane(f.Right) &&
		bound.IsOnPlane(f.Left)
}
