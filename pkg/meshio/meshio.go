// Package meshio reads and writes geometry files. Codecs register
// themselves in a format registry keyed by file name pattern, so callers
// load and store boundaries without naming a format explicitly.
package meshio

import (
	"io"
	"os"

	"github.com/hasselmm/gocsg/pkg/csg"
)

// Format is a geometry file codec. Read reports failures through the
// returned geometry's error state; Write reports them directly.
type Format interface {
	// ID is the short lower-case format name, for example "off".
	ID() string
	// Accepts reports whether the codec handles the given file name.
	Accepts(fileName string) bool
	// Read decodes a geometry from r.
	Read(r io.Reader) csg.Geometry
	// Write encodes g to w.
	Write(w io.Writer, g csg.Geometry) csg.Error
}

var formats []Format

// Register adds a codec to the registry. Codecs registered later win when
// several accept the same file name.
func Register(f Format) {
	formats = append(formats, f)
}

// FormatFor returns the registered codec accepting the given file name, or
// nil when no codec does.
func FormatFor(fileName string) Format {
	for i := len(formats) - 1; i >= 0; i-- {
		if formats[i].Accepts(fileName) {
			return formats[i]
		}
	}

	return nil
}

// ReadGeometry loads a geometry from the named file, picking the codec from
// the file name. Unknown formats yield NotSupportedError, unreadable files
// FileSystemError.
func ReadGeometry(fileName string) csg.Geometry {
	format := FormatFor(fileName)
	if format == nil {
		return csg.NewGeometryError(csg.NotSupportedError)
	}

	file, err := os.Open(fileName)
	if err != nil {
		return csg.NewGeometryError(csg.FileSystemError)
	}
	defer file.Close()

	return format.Read(file)
}

// WriteGeometry stores a geometry in the named file, picking the codec from
// the file name.
func WriteGeometry(fileName string, g csg.Geometry) csg.Error {
	if g.Err() != csg.NoError {
		return g.Err()
	}

	format := FormatFor(fileName)
	if format == nil {
		return csg.NotSupportedError
	}

	file, err := os.Create(fileName)
	if err != nil {
		return csg.FileSystemError
	}

	if err := format.Write(file, g); err != csg.NoError {
		file.Close()
		return err
	}

	if err := file.Close(); err != nil {
		return csg.FileSystemError
	}

	return csg.NoError
}
