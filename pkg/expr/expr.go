// Package expr parses textual call expressions into primitive solids. The
// grammar is a single call with named arguments:
//
//	cube(center=[1 0 0], size=2)
//	sphere(radius=1.5, slices=32, stacks=16)
//	cylinder(start=[0 0 0], end=[0 0 5], radius=1)
//	cylinder(center=[0 0 0], height=5, radius=1)
//
// Values are scalars or bracketed 3-vectors; commas between vector
// components are optional. Arguments map straight onto the primitive
// constructors, so a cube's size is its half-extent: the first example above
// spans [-1, 3] on x. Each primitive accepts a fixed set of argument names;
// anything else is rejected with a ParseError instead of a crash.
package expr

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/hasselmm/gocsg/pkg/csg"
)

// ParseError describes why an expression was rejected. Code is
// NotSupportedError for unknown primitive or argument names, and
// FileFormatError for anything malformed.
type ParseError struct {
	Offset  int
	Message string
	Code    csg.Error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Code
}

// Parse evaluates a single primitive call expression. On failure the
// returned geometry carries the ParseError's code as its error state.
func Parse(input string) (csg.Geometry, error) {
	p := &parser{input: input}

	g, err := p.parseCall()
	if err != nil {
		return csg.NewGeometryError(err.Code), err
	}

	p.skipSpace()
	if p.pos != len(p.input) {
		err := p.errorf(csg.FileFormatError, "unexpected trailing input")
		return csg.NewGeometryError(err.Code), err
	}

	return g, nil
}

// value is a scalar or a 3-vector argument.
type value struct {
	scalar   float64
	vector   v3.Vec
	isVector bool
}

type parser struct {
	input string
	pos   int
}

func (p *parser) errorf(code csg.Error, format string, args ...any) *ParseError {
	return &ParseError{
		Offset:  p.pos,
		Message: fmt.Sprintf(format, args...),
		Code:    code,
	}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
}

// accept consumes the given byte if it is next, skipping leading space.
func (p *parser) accept(c byte) bool {
	p.skipSpace()

	if p.pos < len(p.input) && p.input[p.pos] == c {
		p.pos++
		return true
	}

	return false
}

func (p *parser) ident() string {
	p.skipSpace()

	start := p.pos
	for p.pos < len(p.input) {
		c := rune(p.input[p.pos])
		if !unicode.IsLetter(c) && !(p.pos > start && unicode.IsDigit(c)) {
			break
		}
		p.pos++
	}

	return p.input[start:p.pos]
}

func (p *parser) number() (float64, *ParseError) {
	p.skipSpace()

	start := p.pos
	for p.pos < len(p.input) && strings.ContainsRune("+-.0123456789eE", rune(p.input[p.pos])) {
		p.pos++
	}

	n, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		p.pos = start
		return 0, p.errorf(csg.FileFormatError, "expected a number")
	}

	return n, nil
}

func (p *parser) value() (value, *ParseError) {
	if p.accept('[') {
		var v v3.Vec
		for i, c := range []*float64{&v.X, &v.Y, &v.Z} {
			if i > 0 {
				p.accept(',')
			}
			n, err := p.number()
			if err != nil {
				return value{}, err
			}
			*c = n
		}

		if !p.accept(']') {
			return value{}, p.errorf(csg.FileFormatError, "expected ']'")
		}

		return value{vector: v, isVector: true}, nil
	}

	n, err := p.number()
	if err != nil {
		return value{}, err
	}

	return value{scalar: n}, nil
}

// parseCall reads `name(arg=value, ...)` and dispatches on the name.
func (p *parser) parseCall() (csg.Geometry, *ParseError) {
	name := p.ident()
	if name == "" {
		return csg.Geometry{}, p.errorf(csg.FileFormatError, "expected a primitive name")
	}

	build := primitives[name]
	if build == nil {
		return csg.Geometry{}, p.errorf(csg.NotSupportedError, "unknown primitive %q", name)
	}

	allowed := allowedArgsByPrimitive[name]

	if !p.accept('(') {
		return csg.Geometry{}, p.errorf(csg.FileFormatError, "expected '('")
	}

	args := map[string]value{}

	if !p.accept(')') {
		for {
			argPos := p.pos
			arg := p.ident()
			if arg == "" {
				return csg.Geometry{}, p.errorf(csg.FileFormatError, "expected an argument name")
			}
			if !strings.Contains(allowed, " "+arg+" ") {
				p.pos = argPos
				return csg.Geometry{}, p.errorf(csg.NotSupportedError,
					"unknown argument %q for %q", arg, name)
			}
			if _, seen := args[arg]; seen {
				p.pos = argPos
				return csg.Geometry{}, p.errorf(csg.FileFormatError, "duplicate argument %q", arg)
			}

			if !p.accept('=') {
				return csg.Geometry{}, p.errorf(csg.FileFormatError, "expected '='")
			}

			v, err := p.value()
			if err != nil {
				return csg.Geometry{}, err
			}

			args[arg] = v

			if p.accept(')') {
				break
			}
			if !p.accept(',') {
				return csg.Geometry{}, p.errorf(csg.FileFormatError, "expected ',' or ')'")
			}
		}
	}

	return build(p, args)
}

type buildFunc func(p *parser, args map[string]value) (csg.Geometry, *ParseError)

var primitives map[string]buildFunc

// allowedArgsByPrimitive lists the valid argument names per primitive,
// space-delimited for the substring check in parseCall.
var allowedArgsByPrimitive = map[string]string{
	"cube":     " center size ",
	"sphere":   " center radius slices stacks ",
	"cylinder": " start end center height radius slices ",
}

func init() {
	primitives = map[string]buildFunc{
		"cube":     buildCube,
		"sphere":   buildSphere,
		"cylinder": buildCylinder,
	}
}

func (p *parser) scalarArg(args map[string]value, name string, fallback float64) (float64, *ParseError) {
	v, ok := args[name]
	if !ok {
		return fallback, nil
	}
	if v.isVector {
		return 0, p.errorf(csg.FileFormatError, "argument %q must be a scalar", name)
	}

	return v.scalar, nil
}

func (p *parser) vectorArg(args map[string]value, name string, fallback v3.Vec) (v3.Vec, *ParseError) {
	v, ok := args[name]
	if !ok {
		return fallback, nil
	}
	if !v.isVector {
		return v3.Vec{}, p.errorf(csg.FileFormatError, "argument %q must be a 3-vector", name)
	}

	return v.vector, nil
}

func (p *parser) intArg(args map[string]value, name string, fallback int) (int, *ParseError) {
	n, err := p.scalarArg(args, name, float64(fallback))
	if err != nil {
		return 0, err
	}
	if n != float64(int(n)) || n < 0 {
		return 0, p.errorf(csg.FileFormatError, "argument %q must be a non-negative integer", name)
	}

	return int(n), nil
}

func buildCube(p *parser, args map[string]value) (csg.Geometry, *ParseError) {
	center, err := p.vectorArg(args, "center", v3.Vec{})
	if err != nil {
		return csg.Geometry{}, err
	}
	size, err := p.scalarArg(args, "size", 2)
	if err != nil {
		return csg.Geometry{}, err
	}

	return csg.Cube(center, size), nil
}

func buildSphere(p *parser, args map[string]value) (csg.Geometry, *ParseError) {
	center, err := p.vectorArg(args, "center", v3.Vec{})
	if err != nil {
		return csg.Geometry{}, err
	}
	radius, err := p.scalarArg(args, "radius", 1)
	if err != nil {
		return csg.Geometry{}, err
	}
	slices, err := p.intArg(args, "slices", 16)
	if err != nil {
		return csg.Geometry{}, err
	}
	stacks, err := p.intArg(args, "stacks", 8)
	if err != nil {
		return csg.Geometry{}, err
	}

	return csg.Sphere(center, radius, slices, stacks), nil
}

func buildCylinder(p *parser, args map[string]value) (csg.Geometry, *ParseError) {
	radius, err := p.scalarArg(args, "radius", 1)
	if err != nil {
		return csg.Geometry{}, err
	}
	slices, err := p.intArg(args, "slices", 16)
	if err != nil {
		return csg.Geometry{}, err
	}

	// The axial extent comes either as start/end points, or as a center
	// with a height for an upright cylinder along the Y axis.
	_, axial := args["start"]
	if _, ok := args["end"]; ok {
		axial = true
	}
	_, upright := args["height"]

	if axial && upright {
		return csg.Geometry{}, p.errorf(csg.FileFormatError,
			"arguments start/end and height are mutually exclusive")
	}

	if upright {
		center, err := p.vectorArg(args, "center", v3.Vec{})
		if err != nil {
			return csg.Geometry{}, err
		}
		height, err := p.scalarArg(args, "height", 2)
		if err != nil {
			return csg.Geometry{}, err
		}

		return csg.UprightCylinder(center, height, radius, slices), nil
	}

	if _, ok := args["center"]; ok {
		return csg.Geometry{}, p.errorf(csg.FileFormatError,
			"argument center requires height")
	}

	start, err := p.vectorArg(args, "start", v3.Vec{Y: -1})
	if err != nil {
		return csg.Geometry{}, err
	}
	end, err := p.vectorArg(args, "end", v3.Vec{Y: 1})
	if err != nil {
		return csg.Geometry{}, err
	}

	return csg.Cylinder(start, end, radius, slices), nil
}
