package csg

import (
	"github.com/hasselmm/gocsg/pkg/geom"
)

// Geometry is the boundary of a solid: an unordered list of convex polygons
// with consistently outward-facing normals, plus an error state. Operations
// that fail return a Geometry tagged with a non-NoError state; its polygon
// list is meaningless and callers must check Err before reading it.
type Geometry struct {
	polygons []Polygon
	err      Error
}

// NewGeometry wraps a polygon list in a valid Geometry.
func NewGeometry(polygons []Polygon) Geometry {
	return Geometry{polygons: polygons}
}

// NewGeometryError creates the failed Geometry carrying err, used by
// operators and codecs to report a failure as value state.
func NewGeometryError(err Error) Geometry {
	return Geometry{err: err}
}

// Polygons returns the boundary polygons. The slice is owned by the
// Geometry; callers must not modify it.
func (g Geometry) Polygons() []Polygon {
	return g.polygons
}

// Err returns the error state. A Geometry with a non-NoError state has no
// usable polygons.
func (g Geometry) Err() Error {
	return g.err
}

// IsEmpty reports whether the geometry has no polygons.
func (g Geometry) IsEmpty() bool {
	return len(g.polygons) == 0
}

// Inversed returns a new Geometry with solid and empty space switched, by
// flipping every polygon.
func (g Geometry) Inversed() Geometry {
	inverse := make([]Polygon, len(g.polygons))
	for i, p := range g.polygons {
		inverse[i] = p.Flipped()
	}

	return Geometry{polygons: inverse, err: g.err}
}

// Transformed returns a new Geometry with the affine transform applied to
// every polygon.
func (g Geometry) Transformed(m geom.Matrix) Geometry {
	transformed := make([]Polygon, len(g.polygons))
	for i, p := range g.polygons {
		transformed[i] = p.Transformed(m)
	}

	return Geometry{polygons: transformed, err: g.err}
}

// Union returns the boolean union of g and other. Method form of Merge.
func (g Geometry) Union(other Geometry) Geometry {
	return Merge(g, other)
}

// Subtract returns the boolean difference g minus other. Method form of
// Subtract.
func (g Geometry) Subtract(other Geometry) Geometry {
	return Subtract(g, other)
}

// Intersect returns the boolean intersection of g and other. Method form of
// Intersect.
func (g Geometry) Intersect(other Geometry) Geometry {
	return Intersect(g, other)
}
