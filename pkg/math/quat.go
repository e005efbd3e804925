package math

import "math"

// Quat is a rotation quaternion.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quat {
	return Quat{0, 0, 0, 1}
}

// QuatFromAxisAngle builds a quaternion from a rotation axis and an
// angle in radians. The axis does not need to be normalized.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	axis = axis.Normalize()
	half := float64(angle) * 0.5
	s := float32(math.Sin(half))
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: float32(math.Cos(half)),
	}
}

// QuatBetween returns the shortest rotation taking direction from onto
// direction to. Both inputs are normalized internally. Opposite vectors
// rotate half a turn around an arbitrary perpendicular axis.
func QuatBetween(from, to Vec3) Quat {
	f := from.Normalize()
	t := to.Normalize()
	d := f.Dot(t)

	if d > 0.99999 {
		return QuatIdentity()
	}
	if d < -0.99999 {
		perp := Vec3{X: 1}.Cross(f)
		if perp.Length() < 0.0001 {
			perp = Vec3{Y: 1}.Cross(f)
		}
		return QuatFromAxisAngle(perp, float32(math.Pi))
	}

	axis := f.Cross(t)
	q := Quat{X: axis.X, Y: axis.Y, Z: axis.Z, W: 1 + d}
	return q.Normalize()
}

// Normalize returns a unit quaternion.
func (q Quat) Normalize() Quat {
	l := float32(math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)))
	if l == 0 {
		return QuatIdentity()
	}
	return Quat{q.X / l, q.Y / l, q.Z / l, q.W / l}
}

// Dot returns the quaternion dot product.
func (q Quat) Dot(other Quat) float32 {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

// Mul returns q * other (apply other first, then q).
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// ToMat4 converts the quaternion to a rotation matrix.
func (q Quat) ToMat4() Mat4 {
	n := q.Normalize()
	x, y, z, w := n.X, n.Y, n.Z, n.W

	xx := x * x
	yy := y * y
	zz := z * z
	xy := x * y
	xz := x * z
	yz := y * z
	wx := w * x
	wy := w * y
	wz := w * z

	return Mat4{
		1 - 2*(yy+zz), 2 * (xy + wz), 2 * (xz - wy), 0,
		2 * (xy - wz), 1 - 2*(xx+zz), 2 * (yz + wx), 0,
		2 * (xz + wy), 2 * (yz - wx), 1 - 2*(xx+yy), 0,
		0, 0, 0, 1,
	}
}
