// Package geom provides the small amount of linear algebra the CSG core
// needs: affine 4x4 matrices, axis-angle rotations, and decomposition of a
// matrix into its translation, scale, and rotation components. Vectors are
// the v3.Vec type from sdfx so the whole pipeline shares one vector type.
package geom

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Matrix is a row-major affine 4x4 transformation matrix.
type Matrix [4][4]float64

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translation returns a matrix translating by v.
func Translation(v v3.Vec) Matrix {
	return Matrix{
		{1, 0, 0, v.X},
		{0, 1, 0, v.Y},
		{0, 0, 1, v.Z},
		{0, 0, 0, 1},
	}
}

// Scaling returns a matrix scaling each axis by the matching component of v.
func Scaling(v v3.Vec) Matrix {
	return Matrix{
		{v.X, 0, 0, 0},
		{0, v.Y, 0, 0},
		{0, 0, v.Z, 0},
		{0, 0, 0, 1},
	}
}

// Rotation returns a matrix rotating by angle degrees around axis.
// The axis does not need to be normalized.
func Rotation(angle float64, axis v3.Vec) Matrix {
	a := axis.Normalize()
	rad := angle * math.Pi / 180
	c := math.Cos(rad)
	s := math.Sin(rad)
	t := 1 - c

	return Matrix{
		{t*a.X*a.X + c, t*a.X*a.Y - s*a.Z, t*a.X*a.Z + s*a.Y, 0},
		{t*a.X*a.Y + s*a.Z, t*a.Y*a.Y + c, t*a.Y*a.Z - s*a.X, 0},
		{t*a.X*a.Z - s*a.Y, t*a.Y*a.Z + s*a.X, t*a.Z*a.Z + c, 0},
		{0, 0, 0, 1},
	}
}

// Mul returns the matrix product m * o, so that applying the result is
// equivalent to applying o first and m second.
func (m Matrix) Mul(o Matrix) Matrix {
	var r Matrix
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r[i][j] = m[i][0]*o[0][j] + m[i][1]*o[1][j] + m[i][2]*o[2][j] + m[i][3]*o[3][j]
		}
	}
	return r
}

// MulPosition transforms a point (w=1), applying rotation, scale, and translation.
func (m Matrix) MulPosition(v v3.Vec) v3.Vec {
	return v3.Vec{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z + m[0][3],
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z + m[1][3],
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z + m[2][3],
	}
}

// MulDirection transforms a direction (w=0), ignoring translation.
func (m Matrix) MulDirection(v v3.Vec) v3.Vec {
	return v3.Vec{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// TranslationPart returns the translation encoded in m.
func (m Matrix) TranslationPart() v3.Vec {
	return v3.Vec{X: m[0][3], Y: m[1][3], Z: m[2][3]}
}

// ScalePart returns the per-axis scale encoded in m, as the lengths of the
// upper-left column vectors.
func (m Matrix) ScalePart() v3.Vec {
	x := v3.Vec{X: m[0][0], Y: m[1][0], Z: m[2][0]}
	y := v3.Vec{X: m[0][1], Y: m[1][1], Z: m[2][1]}
	z := v3.Vec{X: m[0][2], Y: m[1][2], Z: m[2][2]}
	return v3.Vec{X: x.Length(), Y: y.Length(), Z: z.Length()}
}

// RotationPart returns the pure rotation encoded in m: the upper-left 3x3
// block with scale divided out and translation cleared. Vertex normals are
// transformed with this matrix so that scale and translation never distort
// shading directions.
func (m Matrix) RotationPart() Matrix {
	s := m.ScalePart()

	return Matrix{
		{m[0][0] / s.X, m[0][1] / s.Y, m[0][2] / s.Z, 0},
		{m[1][0] / s.X, m[1][1] / s.Y, m[1][2] / s.Z, 0},
		{m[2][0] / s.X, m[2][1] / s.Y, m[2][2] / s.Z, 0},
		{0, 0, 0, 1},
	}
}

// Lerp linearly interpolates between a and b with parameter t.
func Lerp(a, b v3.Vec, t float64) v3.Vec {
	return a.Add(b.Sub(a).MulScalar(t))
}
