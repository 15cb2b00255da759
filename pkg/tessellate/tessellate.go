// Package tessellate converts CSG geometry into triangle meshes for
// rendering. Boundary polygons are convex by construction, so each polygon
// decomposes into a triangle fan around its first vertex.
package tessellate

import (
	"fmt"

	"github.com/hasselmm/gocsg/pkg/csg"
	"github.com/hasselmm/gocsg/pkg/kernel"
)

// Tessellate converts a geometry boundary into a flat triangle mesh. Vertex
// normals are carried over per corner, so polygons do not share mesh
// vertices even where their positions coincide. A geometry carrying an error
// state yields that error instead of a mesh.
func Tessellate(g csg.Geometry, name string) (*kernel.Mesh, error) {
	if err := g.Err(); err != csg.NoError {
		return nil, fmt.Errorf("tessellate %q: %w", name, err)
	}

	mesh := &kernel.Mesh{Name: name}

	for i, p := range g.Polygons() {
		if len(p.Vertices) < 3 {
			return nil, fmt.Errorf("tessellate %q: polygon %d has %d vertices",
				name, i, len(p.Vertices))
		}

		base := uint32(mesh.VertexCount())

		for _, v := range p.Vertices {
			mesh.Vertices = append(mesh.Vertices,
				float32(v.Position.X), float32(v.Position.Y), float32(v.Position.Z))
			mesh.Normals = append(mesh.Normals,
				float32(v.Normal.X), float32(v.Normal.Y), float32(v.Normal.Z))
		}

		for j := 2; j < len(p.Vertices); j++ {
			mesh.Indices = append(mesh.Indices, base, base+uint32(j-1), base+uint32(j))
		}
	}

	return mesh, nil
}

// TessellateAll converts a set of named geometries, preserving order. It
// stops at the first failure.
func TessellateAll(geometries map[string]csg.Geometry, order []string) ([]*kernel.Mesh, error) {
	meshes := make([]*kernel.Mesh, 0, len(order))

	for _, name := range order {
		g, ok := geometries[name]
		if !ok {
			return nil, fmt.Errorf("tessellate: unknown geometry %q", name)
		}

		mesh, err := Tessellate(g, name)
		if err != nil {
			return nil, err
		}

		meshes = append(meshes, mesh)
	}

	return meshes, nil
}
