// Package bsp implements the kernel.Kernel interface on top of the BSP-tree
// CSG core. Solids carry exact boundary polygons, so boolean results keep
// sharp edges instead of the smoothed surfaces an SDF backend produces.
package bsp

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/hasselmm/gocsg/pkg/csg"
	"github.com/hasselmm/gocsg/pkg/geom"
	"github.com/hasselmm/gocsg/pkg/kernel"
	"github.com/hasselmm/gocsg/pkg/tessellate"
)

// Compile-time interface check.
var _ kernel.Kernel = (*BspKernel)(nil)

// defaultSegments controls the tessellation of round primitives when the
// caller passes a non-positive segment count.
const defaultSegments = 16

// bspSolid wraps a csg.Geometry to implement kernel.Solid. A failed
// operation travels inside the geometry's error state.
type bspSolid struct {
	g csg.Geometry
}

// BoundingBox returns the axis-aligned bounding box of the boundary. An
// empty or failed solid yields the zero box.
func (s *bspSolid) BoundingBox() (min, max [3]float64) {
	first := true

	for _, p := range s.g.Polygons() {
		for _, v := range p.Vertices {
			pos := [3]float64{v.Position.X, v.Position.Y, v.Position.Z}
			if first {
				min, max = pos, pos
				first = false
				continue
			}
			for i := 0; i < 3; i++ {
				min[i] = math.Min(min[i], pos[i])
				max[i] = math.Max(max[i], pos[i])
			}
		}
	}

	return min, max
}

// BspKernel implements kernel.Kernel using BSP-tree booleans.
type BspKernel struct{}

// New returns a new BspKernel.
func New() *BspKernel {
	return &BspKernel{}
}

// unwrap extracts the underlying geometry from a kernel.Solid.
func unwrap(s kernel.Solid) csg.Geometry {
	return s.(*bspSolid).g
}

// wrap creates a kernel.Solid from a geometry.
func wrap(g csg.Geometry) kernel.Solid {
	return &bspSolid{g: g}
}

// Geometry exposes a solid's boundary to callers that want to keep working
// with polygons instead of meshes.
func Geometry(s kernel.Solid) csg.Geometry {
	return unwrap(s)
}

// FromGeometry wraps an existing boundary, for example one read from a file.
func FromGeometry(g csg.Geometry) kernel.Solid {
	return wrap(g)
}

// Box creates a box with the given dimensions. The resulting solid has its
// minimum corner at the origin (0,0,0) so that placement translations work
// intuitively. The cuboid constructor takes a center and per-axis
// half-extents, so both are half the dimensions.
func (k *BspKernel) Box(x, y, z float64) kernel.Solid {
	half := v3.Vec{X: x / 2, Y: y / 2, Z: z / 2}
	return wrap(csg.Cuboid(half, half))
}

// Sphere creates a sphere centered at the origin. Stacks are derived from
// the segment count, mirroring the primitive's default proportions.
func (k *BspKernel) Sphere(radius float64, segments int) kernel.Solid {
	if segments <= 0 {
		segments = defaultSegments
	}

	stacks := segments / 2
	if stacks < 2 {
		stacks = 2
	}

	return wrap(csg.Sphere(v3.Vec{}, radius, segments, stacks))
}

// Cylinder creates a cylinder along the Z axis with its base at the origin.
func (k *BspKernel) Cylinder(height, radius float64, segments int) kernel.Solid {
	if segments <= 0 {
		segments = defaultSegments
	}

	return wrap(csg.Cylinder(v3.Vec{}, v3.Vec{Z: height}, radius, segments))
}

// Union returns the union of two solids.
func (k *BspKernel) Union(a, b kernel.Solid) kernel.Solid {
	return wrap(csg.Merge(unwrap(a), unwrap(b)))
}

// Difference returns the difference a - b.
func (k *BspKernel) Difference(a, b kernel.Solid) kernel.Solid {
	return wrap(csg.Subtract(unwrap(a), unwrap(b)))
}

// Intersection returns the intersection of two solids.
func (k *BspKernel) Intersection(a, b kernel.Solid) kernel.Solid {
	return wrap(csg.Intersect(unwrap(a), unwrap(b)))
}

// Translate moves a solid by (x, y, z).
func (k *BspKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	return wrap(unwrap(s).Transformed(geom.Translation(v3.Vec{X: x, Y: y, Z: z})))
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes,
// applied in X, Y, Z order.
func (k *BspKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	m := geom.Rotation(z, v3.Vec{Z: 1}).
		Mul(geom.Rotation(y, v3.Vec{Y: 1})).
		Mul(geom.Rotation(x, v3.Vec{X: 1}))

	return wrap(unwrap(s).Transformed(m))
}

// Scale scales a solid per axis.
func (k *BspKernel) Scale(s kernel.Solid, x, y, z float64) kernel.Solid {
	return wrap(unwrap(s).Transformed(geom.Scaling(v3.Vec{X: x, Y: y, Z: z})))
}

// ToMesh converts a solid to a triangle mesh by fanning its convex boundary
// polygons. A failed boolean operation surfaces here.
func (k *BspKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	g := unwrap(s)
	if err := g.Err(); err != csg.NoError {
		return nil, fmt.Errorf("bsp: %w", err)
	}

	return tessellate.Tessellate(g, "")
}
