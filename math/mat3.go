package math

// Mat3 is used as the normal matrix (inverse-transpose of the upper 3x3 of
// a model matrix) and for cubemap face basis vectors.
type Mat3 [3][3]float32

func Mat3Identity() Mat3 {
	return Mat3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

func Mat3FromMat4(m Mat4) Mat3 {
	return Mat3{
		{m[0][0], m[0][1], m[0][2]},
		{m[1][0], m[1][1], m[1][2]},
		{m[2][0], m[2][1], m[2][2]},
	}
}

func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*v.X + m[1][0]*v.Y + m[2][0]*v.Z,
		Y: m[0][1]*v.X + m[1][1]*v.Y + m[2][1]*v.Z,
		Z: m[0][2]*v.X + m[1][2]*v.Y + m[2][2]*v.Z,
	}
}

func (m Mat3) Transpose() Mat3 {
	return Mat3{
		{m[0][0], m[1][0], m[2][0]},
		{m[0][1], m[1][1], m[2][1]},
		{m[0][2], m[1][2], m[2][2]},
	}
}

func (m Mat3) Determinant() float32 {
	return m[0][0]*(m[1][1]*m[2][2]-m[2][1]*m[1][2]) -
		m[0][1]*(m[1][0]*m[2][2]-m[2][0]*m[1][2]) +
		m[0][2]*(m[1][0]*m[2][1]-m[2][0]*m[1][1])
}

// Inverse returns the identity matrix when m is singular, mirroring
// Mat4.Inverse's fallback convention.
func (m Mat3) Inverse() Mat3 {
	det := m.Determinant()
	if det == 0 {
		return Mat3Identity()
	}
	invDet := 1 / det

	return Mat3{
		{
			(m[1][1]*m[2][2] - m[2][1]*m[1][2]) * invDet,
			(m[0][2]*m[2][1] - m[0][1]*m[2][2]) * invDet,
			(m[0][1]*m[1][2] - m[0][2]*m[1][1]) * invDet,
		},
		{
			(m[1][2]*m[2][0] - m[1][0]*m[2][2]) * invDet,
			(m[0][0]*m[2][2] - m[0][2]*m[2][0]) * invDet,
			(m[1][0]*m[0][2] - m[0][0]*m[1][2]) * invDet,
		},
		{
			(m[1][0]*m[2][1] - m[2][0]*m[1][1]) * invDet,
			(m[2][0]*m[0][1] - m[0][0]*m[2][1]) * invDet,
			(m[0][0]*m[1][1] - m[1][0]*m[0][1]) * invDet,
		},
	}
}

// NormalMatrix returns the inverse-transpose of the upper 3x3 of m, falling
// back to identity when the upper 3x3 has no valid inverse (Mat3.Inverse
// returns identity on a singular matrix, and its transpose is identity).
func NormalMatrix(m Mat4) Mat3 {
	upper := Mat3FromMat4(m)
	return upper.Inverse().Transpose()
}
