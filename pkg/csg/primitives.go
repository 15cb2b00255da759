package csg

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Cube returns an axis-aligned solid cube with the given center and
// half-extent size.
func Cube(center v3.Vec, size float64) Geometry {
	return Cuboid(center, v3.Vec{X: size, Y: size, Z: size})
}

// Cuboid returns an axis-aligned solid cuboid with the given center and
// per-axis half-extents: six quads with outward normals.
func Cuboid(center, size v3.Vec) Geometry {
	// The corners are indexed by bit pattern: bit 0 selects +x, bit 1 +y,
	// bit 2 +z.
	corner := func(i int, normal v3.Vec) Vertex {
		direction := v3.Vec{X: -1, Y: -1, Z: -1}
		if i&1 != 0 {
			direction.X = 1
		}
		if i&2 != 0 {
			direction.Y = 1
		}
		if i&4 != 0 {
			direction.Z = 1
		}

		position := v3.Vec{
			X: center.X + size.X*direction.X,
			Y: center.Y + size.Y*direction.Y,
			Z: center.Z + size.Z*direction.Z,
		}

		return Vertex{Position: position, Normal: normal}
	}

	face := func(indices [4]int, normal v3.Vec) Polygon {
		vertices := make([]Vertex, 0, 4)
		for _, i := range indices {
			vertices = append(vertices, corner(i, normal))
		}

		return NewPolygon(vertices, nil)
	}

	return NewGeometry([]Polygon{
		face([4]int{0, 4, 6, 2}, v3.Vec{X: -1}),
		face([4]int{1, 3, 7, 5}, v3.Vec{X: +1}),
		face([4]int{0, 1, 5, 4}, v3.Vec{Y: -1}),
		face([4]int{2, 6, 7, 3}, v3.Vec{Y: +1}),
		face([4]int{0, 2, 3, 1}, v3.Vec{Z: -1}),
		face([4]int{4, 5, 7, 6}, v3.Vec{Z: +1}),
	})
}

// Sphere returns a solid sphere tessellated into slices bands of longitude
// and stacks bands of latitude. The two polar bands produce triangles, the
// rest quads, for slices*stacks polygons total.
func Sphere(center v3.Vec, radius float64, slices, stacks int) Geometry {
	vertex := func(i, j int) Vertex {
		theta := 2 * math.Pi * float64(i) / float64(slices)
		phi := math.Pi * float64(j) / float64(stacks)

		normal := v3.Vec{
			X: math.Cos(theta) * math.Sin(phi),
			Y: math.Cos(phi),
			Z: math.Sin(theta) * math.Sin(phi),
		}

		return Vertex{
			Position: center.Add(normal.MulScalar(radius)),
			Normal:   normal,
		}
	}

	polygons := make([]Polygon, 0, slices*stacks)

	for i := 0; i < slices; i++ {
		for j := 0; j < stacks; j++ {
			vertices := make([]Vertex, 0, 4)
			vertices = append(vertices, vertex(i, j))

			if j > 0 {
				vertices = append(vertices, vertex(i+1, j))
			}
			if j < stacks-1 {
				vertices = append(vertices, vertex(i+1, j+1))
			}

			vertices = append(vertices, vertex(i, j+1))
			polygons = append(polygons, NewPolygon(vertices, nil))
		}
	}

	return NewGeometry(polygons)
}

// Cylinder returns a solid cylinder running from start to end. Each of the
// slices wedges emits a start-cap triangle, a quad side wall, and an end-cap
// triangle. Side-wall normals point radially outward; cap vertex normals
// are purely axial, with the rim vertices blending between the two only
// through the normalBlend parameter at the exact caps.
func Cylinder(start, end v3.Vec, radius float64, slices int) Geometry {
	ray := end.Sub(start)
	axisZ := ray.Normalize()

	// Pick a reference direction that cannot be parallel to the axis.
	perp := v3.Vec{Y: 1}
	if math.Abs(axisZ.Y) > 0.5 {
		perp = v3.Vec{X: 1}
	}

	axisX := perp.Cross(axisZ).Normalize()
	axisY := axisX.Cross(axisZ).Normalize()

	vertexStart := Vertex{Position: start, Normal: axisZ.MulScalar(-1)}
	vertexEnd := Vertex{Position: end, Normal: axisZ}

	point := func(stack, slice, normalBlend int) Vertex {
		phi := 2 * math.Pi * float64(slice) / float64(slices)
		out := axisX.MulScalar(math.Cos(phi)).Add(axisY.MulScalar(math.Sin(phi)))

		position := start.
			Add(ray.MulScalar(float64(stack))).
			Add(out.MulScalar(radius))
		normal := out.MulScalar(1 - math.Abs(float64(normalBlend))).
			Add(axisZ.MulScalar(float64(normalBlend)))

		return Vertex{Position: position, Normal: normal}
	}

	polygons := make([]Polygon, 0, 3*slices)

	for i := 0; i < slices; i++ {
		polygons = append(polygons,
			NewPolygon([]Vertex{vertexStart, point(0, i, -1), point(0, i+1, -1)}, nil),
			NewPolygon([]Vertex{point(0, i+1, 0), point(0, i, 0), point(1, i, 0), point(1, i+1, 0)}, nil),
			NewPolygon([]Vertex{vertexEnd, point(1, i+1, 1), point(1, i, 1)}, nil))
	}

	return NewGeometry(polygons)
}

// UprightCylinder returns a solid cylinder of the given height centered at
// center, running along the Y axis.
func UprightCylinder(center v3.Vec, height, radius float64, slices int) Geometry {
	half := v3.Vec{Y: height / 2}
	return Cylinder(center.Sub(half), center.Add(half), radius, slices)
}
