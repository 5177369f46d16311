package mathutil

import "math"

// Mat4 is a 4×4 matrix stored row-major. Used for view and projection transforms.
type Mat4 [16]float64

func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4Mul returns a × b.
func Mat4Mul(a, b Mat4) Mat4 {
	var m Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m[r*4+c] = a[r*4+0]*b[0*4+c] + a[r*4+1]*b[1*4+c] +
				a[r*4+2]*b[2*4+c] + a[r*4+3]*b[3*4+c]
		}
	}
	return m
}

// MulVec4 transforms a homogeneous 4-vector.
func (m Mat4) MulVec4(v [4]float64) [4]float64 {
	var out [4]float64
	for r := 0; r < 4; r++ {
		out[r] = m[r*4+0]*v[0] + m[r*4+1]*v[1] + m[r*4+2]*v[2] + m[r*4+3]*v[3]
	}
	return out
}

// ProjectPoint transforms a 3D point (w=1) and applies the perspective divide.
// Returns normalized device coordinates.
func (m Mat4) ProjectPoint(v Vec3) Vec3 {
	h := m.MulVec4([4]float64{v.X, v.Y, v.Z, 1})
	w := h[3]
	if math.Abs(w) < 1e-12 {
		return Vec3{h[0], h[1], h[2]}
	}
	return Vec3{h[0] / w, h[1] / w, h[2] / w}
}

// Frustum returns an asymmetric perspective projection with the given clip
// extents measured on the near plane. Right-handed, camera looking down -Z,
// NDC depth in [-1, 1].
func Frustum(left, right, bottom, top, near, far float64) Mat4 {
	return Mat4{
		2 * near / (right - left), 0, (right + left) / (right - left), 0,
		0, 2 * near / (top - bottom), (top + bottom) / (top - bottom), 0,
		0, 0, -(far + near) / (far - near), -2 * far * near / (far - near),
		0, 0, -1, 0,
	}
}

// Translation returns a matrix translating points by v.
func Translation(v Vec3) Mat4 {
	return Mat4{
		1, 0, 0, v.X,
		0, 1, 0, v.Y,
		0, 0, 1, v.Z,
		0, 0, 0, 1,
	}
}

// BasisRows builds a rotation whose rows are the given orthonormal axes.
// Multiplying a world-space vector by it expresses the vector in that basis.
func BasisRows(x, y, z Vec3) Mat4 {
	return Mat4{
		x.X, x.Y, x.Z, 0,
		y.X, y.Y, y.Z, 0,
		z.X, z.Y, z.Z, 0,
		0, 0, 0, 1,
	}
}
