package csg

import (
	"github.com/hasselmm/gocsg/pkg/geom"
)

// Polygon is a convex, coplanar loop of at least three vertices. The caller
// is responsible for convexity and planarity; the algorithm does not
// validate either. The plane computed from the first three vertices is
// cached at construction time and used for all later classification, so it
// must stay in sync with the vertex list.
//
// Shared is an opaque tag that survives splitting: every fragment cut from
// this polygon carries the same value. It is never inspected by the core and
// is typically used for per-surface attributes such as a material id.
type Polygon struct {
	Vertices []Vertex
	Shared   any
	Plane    Plane
}

// NewPolygon builds a polygon from its vertex loop, caching the plane of the
// first three vertices.
func NewPolygon(vertices []Vertex, shared any) Polygon {
	return Polygon{
		Vertices: vertices,
		Shared:   shared,
		Plane: PlaneFromPoints(
			vertices[0].Position,
			vertices[1].Position,
			vertices[2].Position),
	}
}

// Flipped returns the polygon with reversed orientation: vertex order
// reversed, every vertex normal negated, and the cached plane flipped.
func (p Polygon) Flipped() Polygon {
	flipped := make([]Vertex, len(p.Vertices))
	for i, v := range p.Vertices {
		flipped[len(p.Vertices)-1-i] = v.Flipped()
	}

	return Polygon{Vertices: flipped, Shared: p.Shared, Plane: p.Plane.Flipped()}
}

// Transformed applies an affine transform to every vertex and recomputes the
// cached plane from the transformed loop.
func (p Polygon) Transformed(m geom.Matrix) Polygon {
	transformed := make([]Vertex, len(p.Vertices))
	for i, v := range p.Vertices {
		transformed[i] = v.Transformed(m)
	}

	return NewPolygon(transformed, p.Shared)
}

// Per-vertex classification against a cutting plane. Front and back combine
// into spanning when a polygon has vertices on both sides.
type vertexType int

const (
	coplanarVertex vertexType = 0
	frontVertex    vertexType = 1 << 0
	backVertex     vertexType = 1 << 1
	spanningPoly   vertexType = frontVertex | backVertex
)

// Split classifies p against plane and appends it, or the fragments produced
// by cutting it, to the matching output lists. Coplanar polygons go to
// coplanarFront or coplanarBack depending on whether their own cached plane
// faces the same way as the cutting plane; polygons entirely on one side go
// to front or back unmodified; spanning polygons are cut along the plane,
// with the two fragments sharing the interpolated boundary vertices so the
// cut stays watertight. Fragments with fewer than three vertices are
// dropped. The input polygon is never modified.
func (p Polygon) Split(plane Plane, coplanarFront, coplanarBack, front, back *[]Polygon) {
	polygonType := coplanarVertex
	vertexTypes := make([]vertexType, 0, len(p.Vertices))

	for _, v := range p.Vertices {
		t := plane.Normal.Dot(v.Position) - plane.W

		vt := coplanarVertex
		if t < -Epsilon {
			vt = backVertex
		} else if t > Epsilon {
			vt = frontVertex
		}

		polygonType |= vt
		vertexTypes = append(vertexTypes, vt)
	}

	switch polygonType {
	case coplanarVertex:
		if plane.Normal.Dot(p.Plane.Normal) > 0 {
			*coplanarFront = append(*coplanarFront, p)
		} else {
			*coplanarBack = append(*coplanarBack, p)
		}

	case frontVertex:
		*front = append(*front, p)

	case backVertex:
		*back = append(*back, p)

	case spanningPoly:
		var f, b []Vertex

		for i := range p.Vertices {
			j := (i + 1) % len(p.Vertices)

			ti, tj := vertexTypes[i], vertexTypes[j]
			vi, vj := p.Vertices[i], p.Vertices[j]

			if ti != backVertex {
				f = append(f, vi)
			}
			if ti != frontVertex {
				b = append(b, vi)
			}

			if ti|tj == spanningPoly {
				t := (plane.W - plane.Normal.Dot(vi.Position)) /
					plane.Normal.Dot(vj.Position.Sub(vi.Position))
				v := vi.Interpolated(vj, t)

				// Both fragments get the exact same boundary vertex.
				f = append(f, v)
				b = append(b, v)
			}
		}

		if len(f) >= 3 {
			*front = append(*front, NewPolygon(f, p.Shared))
		}
		if len(b) >= 3 {
			*back = append(*back, NewPolygon(b, p.Shared))
		}
	}
}
