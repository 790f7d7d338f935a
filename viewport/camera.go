// Package viewport implements the render-target + camera pairing and the
// orchestrating per-frame Renderer.
package viewport

import (
	stdmath "math"

	"rendercore/math"
	"rendercore/spatial"
)

// Camera is a quaternion-based view camera, extended from the reference renderer's
// scene.Camera with the orthographic projection box
// (LeftRight/BottomTop) it lacked, since this renderer's viewport needs to
// switch between perspective and orthographic cameras (e.g. a CSM light
// camera or an editor ortho view) without a second camera type.
type Camera struct {
	Position    math.Vec3
	Rotation    math.Quaternion
	Fov         float32 // radians (vertical), matching math.Mat4Perspective
	AspectRatio float32
	Near, Far   float32

	IsOrthographic bool
	LeftRight      float32 // ortho horizontal half-extent
	BottomTop      float32 // ortho vertical half-extent

	viewMatrix       math.Mat4
	projectionMatrix math.Mat4
	viewProjMatrix   math.Mat4
	dirty            bool
}

func NewCamera(fov, aspectRatio, near, far float32) *Camera {
	return &Camera{
		Position:    math.Vec3Zero,
		Rotation:    math.QuaternionIdentity(),
		Fov:         fov,
		AspectRatio: aspectRatio,
		Near:        near,
		Far:         far,
		dirty:       true,
	}
}

func NewOrthographicCamera(leftRight, bottomTop, near, far float32) *Camera {
	return &Camera{
		Position:       math.Vec3Zero,
		Rotation:       math.QuaternionIdentity(),
		Near:           near,
		Far:            far,
		IsOrthographic: true,
		LeftRight:      leftRight,
		BottomTop:      bottomTop,
		dirty:          true,
	}
}

func (c *Camera) UpdateAspectRatio(width, height float32) {
	if height > 0 {
		c.AspectRatio = width / height
		c.dirty = true
	}
}

func (c *Camera) SetPosition(pos math.Vec3) {
	c.Position = pos
	c.dirty = true
}

func (c *Camera) SetRotation(rot math.Quaternion) {
	c.Rotation = rot
	c.dirty = true
}

func (c *Camera) LookAt(target, up math.Vec3) {
	c.Rotation = quaternionFromLookAt(c.Position, target, up)
	c.dirty = true
}

func (c *Camera) Forward() math.Vec3 { return c.Rotation.RotateVector(math.Vec3Front) }
func (c *Camera) Right() math.Vec3   { return c.Rotation.RotateVector(math.Vec3Right) }
func (c *Camera) Up() math.Vec3      { return c.Rotation.RotateVector(math.Vec3Up) }

func (c *Camera) GetViewMatrix() math.Mat4 {
	c.ensureMatrices()
	return c.viewMatrix
}

func (c *Camera) GetProjectionMatrix() math.Mat4 {
	c.ensureMatrices()
	return c.projectionMatrix
}

func (c *Camera) GetViewProjectionMatrix() math.Mat4 {
	c.ensureMatrices()
	return c.viewProjMatrix
}

func (c *Camera) ensureMatrices() {
	if !c.dirty {
		return
	}
	rotationMatrix := c.Rotation.ToMat4()
	translationMatrix := math.Mat4Translation(c.Position.Negate())
	c.viewMatrix = rotationMatrix.Mul(translationMatrix)

	if c.IsOrthographic {
		c.projectionMatrix = math.Mat4Orthographic(
			-c.LeftRight, c.LeftRight, -c.BottomTop, c.BottomTop, c.Near, c.Far)
	} else {
		c.projectionMatrix = math.Mat4Perspective(c.Fov, c.AspectRatio, c.Near, c.Far)
	}

	c.viewProjMatrix = c.projectionMatrix.Mul(c.viewMatrix)
	c.dirty = false
}

// View returns the CameraView spatial.Frustum.UpdateFromCamera consumes.
func (c *Camera) View() spatial.CameraView {
	return spatial.CameraView{
		Position:       c.Position,
		Front:          c.Forward(),
		Up:             c.Up(),
		Right:          c.Right(),
		Fov:            c.Fov,
		Near:           c.Near,
		Far:            c.Far,
		IsOrthographic: c.IsOrthographic,
	}
}

func quaternionFromLookAt(position, target, up math.Vec3) math.Quaternion {
	forward := target.Sub(position).Normalize()
	right := up.Cross(forward).Normalize()
	upNew := forward.Cross(right)

	m := math.Mat4{
		{right.X, upNew.X, -forward.X, 0},
		{right.Y, upNew.Y, -forward.Y, 0},
		{right.Z, upNew.Z, -forward.Z, 0},
		{0, 0, 0, 1},
	}

	trace := m[0][0] + m[1][1] + m[2][2]
	var q math.Quaternion
	switch {
	case trace > 0:
		s := float32(0.5 / stdmath.Sqrt(float64(trace+1)))
		q.W = 0.25 / s
		q.X = (m[2][1] - m[1][2]) * s
		q.Y = (m[0][2] - m[2][0]) * s
		q.Z = (m[1][0] - m[0][1]) * s
	case m[0][0] > m[1][1] && m[0][0] > m[2][2]:
		s := 2 * float32(stdmath.Sqrt(float64(1+m[0][0]-m[1][1]-m[2][2])))
		q.W = (m[2][1] - m[1][2]) / s
		q.X = 0.25 * s
		q.Y = (m[0][1] + m[1][0]) / s
		q.Z = (m[0][2] + m[2][0]) / s
	case m[1][1] > m[2][2]:
		s := 2 * float32(stdmath.Sqrt(float64(1+m[1][1]-m[0][0]-m[2][2])))
		q.W = (m[0][2] - m[2][0]) / s
		q.X = (m[0][1] + m[1][0]) / s
		q.Y = 0.25 * s
		q.Z = (m[1][2] + m[2][1]) / s
	default:
		s := 2 * float32(stdmath.Sqrt(float64(1+m[2][2]-m[0][0]-m[1][1])))
		q.W = (m[1][0] - m[0][1]) / s
		q.X = (m[0][2] + m[2][0]) / s
		q.Y = (m[1][2] + m[2][1]) / s
		q.Z = 0.25 * s
	}
	return q.Normalize()
}
