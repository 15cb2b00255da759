// Package sdfcsg imports signed-distance-field solids from the
// github.com/deadsy/sdfx CAD library into CSG geometry. The SDF surface is
// triangulated with marching cubes; the resulting triangles become boundary
// polygons that the boolean operators accept like any other input.
package sdfcsg

import (
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"

	"github.com/hasselmm/gocsg/pkg/csg"
)

// DefaultCells controls marching cubes tessellation resolution when the
// caller passes a non-positive cell count. Higher counts trace the surface
// more faithfully and cost cubically more work.
const DefaultCells = 200

// FromSDF triangulates an SDF solid into boundary polygons. The triangles
// are flat shaded: all three corners carry the face normal.
func FromSDF(s sdf.SDF3, cells int) csg.Geometry {
	if s == nil {
		return csg.NewGeometryError(csg.NotSupportedError)
	}
	if cells <= 0 {
		cells = DefaultCells
	}

	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(s, renderer)

	polygons := make([]csg.Polygon, 0, len(triangles))

	for _, tri := range triangles {
		normal := tri.Normal()

		polygons = append(polygons, csg.NewPolygon([]csg.Vertex{
			{Position: tri[0], Normal: normal},
			{Position: tri[1], Normal: normal},
			{Position: tri[2], Normal: normal},
		}, nil))
	}

	return csg.NewGeometry(polygons)
}
