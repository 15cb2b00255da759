package csg

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Epsilon is the tolerance below which a point is considered to lie on a
// plane. It is the single robustness knob of the whole pipeline.
var Epsilon = 1e-5

// Plane is a plane in 3D space with unit normal N and offset W, such that a
// point p lies on the plane iff dot(N, p) == W. The zero value is the null
// plane, the distinguished empty state of a freshly created BSP node.
type Plane struct {
	Normal v3.Vec
	W      float64
}

// PlaneFromPoints constructs the plane through three non-collinear points.
// The normal is the normalized cross product of (b-a) and (c-a).
func PlaneFromPoints(a, b, c v3.Vec) Plane {
	n := b.Sub(a).Cross(c.Sub(a)).Normalize()
	return Plane{Normal: n, W: n.Dot(a)}
}

// IsNull reports whether the plane is the empty/uninitialized state.
func (p Plane) IsNull() bool {
	return p.Normal.X == 0 && p.Normal.Y == 0 && p.Normal.Z == 0
}

// Flipped returns the plane with front and back sides exchanged.
func (p Plane) Flipped() Plane {
	return Plane{Normal: p.Normal.MulScalar(-1), W: -p.W}
}
