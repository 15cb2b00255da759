package csg

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/hasselmm/gocsg/pkg/geom"
)

// Vertex is a polygon corner: a position and a shading normal. The normal is
// carried along so primitive constructors can emit smooth vertex normals; the
// splitting algorithm itself only ever reads positions. Vertex is an
// immutable value type.
type Vertex struct {
	Position v3.Vec
	Normal   v3.Vec
}

// Flipped returns the vertex with its orientation-specific data inverted.
// Called when the orientation of a polygon is flipped.
func (v Vertex) Flipped() Vertex {
	return Vertex{
		Position: v.Position,
		Normal:   v.Normal.MulScalar(-1),
	}
}

// Interpolated returns a new vertex between v and other, linearly
// interpolating position and normal with parameter t.
func (v Vertex) Interpolated(other Vertex, t float64) Vertex {
	return Vertex{
		Position: geom.Lerp(v.Position, other.Position, t),
		Normal:   geom.Lerp(v.Normal, other.Normal, t),
	}
}

// Transformed applies an affine transform. The position receives the full
// matrix; the normal only its rotation component, so scale and translation
// never distort shading directions.
func (v Vertex) Transformed(m geom.Matrix) Vertex {
	return Vertex{
		Position: m.MulPosition(v.Position),
		Normal:   m.RotationPart().MulDirection(v.Normal),
	}
}
