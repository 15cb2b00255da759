package meshio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/hasselmm/gocsg/pkg/csg"
)

// offFormat is the Object File Format codec,
// see http://www.geomview.org/docs/html/OFF.html
type offFormat struct{}

func init() {
	Register(offFormat{})
}

func (offFormat) ID() string { return "off" }

func (offFormat) Accepts(fileName string) bool {
	return strings.HasSuffix(strings.ToLower(fileName), ".off")
}

// Read decodes an OFF document: the "OFF" magic, a header with vertex and
// face counts, the vertex positions, and then one index list per face.
// Comment lines are skipped anywhere. Vertex normals are not stored in OFF
// files; they are reconstructed per corner from the adjacent edges.
func (offFormat) Read(r io.Reader) csg.Geometry {
	const (
		stateMagic = iota
		stateHeader
		stateVertices
		stateFaces
	)

	state := stateMagic
	var vertexCount, faceCount int

	var positions []v3.Vec
	var polygons []csg.Polygon

	scanner := bufio.NewScanner(r)

	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "#") {
			continue
		}

		switch state {
		case stateMagic:
			if line != "OFF" {
				return csg.NewGeometryError(csg.NotSupportedError)
			}

			state = stateHeader

		case stateHeader:
			fields := strings.Fields(line)
			if len(fields) < 2 {
				return csg.NewGeometryError(csg.FileFormatError)
			}

			var err error
			if vertexCount, err = strconv.Atoi(fields[0]); err != nil || vertexCount < 0 {
				return csg.NewGeometryError(csg.FileFormatError)
			}
			if faceCount, err = strconv.Atoi(fields[1]); err != nil || faceCount < 0 {
				return csg.NewGeometryError(csg.FileFormatError)
			}

			// A document announcing no faces describes the empty solid;
			// faces without any vertices to reference cannot be valid.
			if faceCount == 0 {
				return csg.NewGeometry(nil)
			}
			if vertexCount == 0 {
				return csg.NewGeometryError(csg.FileFormatError)
			}

			positions = make([]v3.Vec, 0, vertexCount)
			polygons = make([]csg.Polygon, 0, faceCount)
			state = stateVertices

		case stateVertices:
			fields := strings.Fields(line)
			if len(fields) < 3 {
				return csg.NewGeometryError(csg.FileFormatError)
			}

			var position v3.Vec
			var err error

			if position.X, err = strconv.ParseFloat(fields[0], 64); err != nil {
				return csg.NewGeometryError(csg.FileFormatError)
			}
			if position.Y, err = strconv.ParseFloat(fields[1], 64); err != nil {
				return csg.NewGeometryError(csg.FileFormatError)
			}
			if position.Z, err = strconv.ParseFloat(fields[2], 64); err != nil {
				return csg.NewGeometryError(csg.FileFormatError)
			}

			positions = append(positions, position)

			if vertexCount--; vertexCount == 0 {
				state = stateFaces
			}

		case stateFaces:
			fields := strings.Fields(line)
			if len(fields) < 1 {
				return csg.NewGeometryError(csg.FileFormatError)
			}

			n, err := strconv.Atoi(fields[0])
			if err != nil || n < 3 || len(fields) < 1+n {
				return csg.NewGeometryError(csg.FileFormatError)
			}

			indices := make([]int, 0, n)

			for _, field := range fields[1 : 1+n] {
				index, err := strconv.Atoi(field)
				if err != nil || index < 0 || index >= len(positions) {
					return csg.NewGeometryError(csg.FileFormatError)
				}

				indices = append(indices, index)
			}

			outline := make([]csg.Vertex, 0, n)

			for j := 0; j < n; j++ {
				a := positions[indices[(j+n-1)%n]]
				b := positions[indices[j]]
				c := positions[indices[(j+1)%n]]

				normal := b.Sub(a).Cross(c.Sub(a)).Normalize()
				outline = append(outline, csg.Vertex{Position: b, Normal: normal})
			}

			polygons = append(polygons, csg.NewPolygon(outline, nil))

			if faceCount--; faceCount == 0 {
				return csg.NewGeometry(polygons)
			}
		}
	}

	// Truncated document, or an I/O failure while scanning.
	if scanner.Err() != nil {
		return csg.NewGeometryError(csg.FileSystemError)
	}

	return csg.NewGeometryError(csg.FileFormatError)
}

// Write encodes the boundary as an OFF document. Vertex positions are
// deduplicated; normals are dropped since the format does not carry them.
func (offFormat) Write(w io.Writer, g csg.Geometry) csg.Error {
	var positions []v3.Vec
	indexOf := make(map[v3.Vec]int)

	polygons := g.Polygons()
	faces := make([][]int, 0, len(polygons))

	for _, p := range polygons {
		face := make([]int, 0, len(p.Vertices))

		for _, v := range p.Vertices {
			index, ok := indexOf[v.Position]
			if !ok {
				index = len(positions)
				positions = append(positions, v.Position)
				indexOf[v.Position] = index
			}

			face = append(face, index)
		}

		faces = append(faces, face)
	}

	buffer := bufio.NewWriter(w)

	fmt.Fprintln(buffer, "OFF")
	fmt.Fprintln(buffer, len(positions), len(faces), 0)

	for _, p := range positions {
		fmt.Fprintln(buffer, formatCoord(p.X), formatCoord(p.Y), formatCoord(p.Z))
	}

	for _, f := range faces {
		fmt.Fprint(buffer, len(f))

		for _, i := range f {
			fmt.Fprint(buffer, " ", i)
		}

		fmt.Fprintln(buffer)
	}

	if buffer.Flush() != nil {
		return csg.FileSystemError
	}

	return csg.NoError
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
