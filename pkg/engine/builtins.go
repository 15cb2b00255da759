package engine

import (
	"fmt"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/hasselmm/gocsg/pkg/csg"
	"github.com/hasselmm/gocsg/pkg/geom"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms script source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: half-size -> half_size
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpGeometry wraps a csg.Geometry so it can be passed between builtins.
type sexpGeometry struct {
	geometry csg.Geometry
}

func (g *sexpGeometry) SexpString(ps *zygo.PrintState) string {
	if err := g.geometry.Err(); err != csg.NoError {
		return fmt.Sprintf("(geometry :error %q)", err)
	}
	return fmt.Sprintf("(geometry :polygons %d)", len(g.geometry.Polygons()))
}
func (g *sexpGeometry) Type() *zygo.RegisteredType { return nil }

// sexpVec3 wraps a vector.
type sexpVec3 struct {
	vec v3.Vec
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %.1f %.1f %.1f)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value; treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an int from a Sexp.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a vector from a sexpVec3.
func toVec3(s zygo.Sexp) (v3.Vec, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return v3.Vec{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toGeometry extracts a geometry from a sexpGeometry.
func toGeometry(s zygo.Sexp) (csg.Geometry, error) {
	if g, ok := s.(*sexpGeometry); ok {
		return g.geometry, nil
	}
	return csg.Geometry{}, fmt.Errorf("expected geometry, got %T (%s)", s, s.SexpString(nil))
}

// floatArg reads an optional keyword number argument.
func floatArg(pa kwArgs, builtin, name string, fallback float64) (float64, error) {
	v, ok := pa.kw[name]
	if !ok {
		return fallback, nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %s: %w", builtin, name, err)
	}
	return f, nil
}

// intArg reads an optional keyword integer argument.
func intArg(pa kwArgs, builtin, name string, fallback int) (int, error) {
	v, ok := pa.kw[name]
	if !ok {
		return fallback, nil
	}
	n, err := toInt(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %s: %w", builtin, name, err)
	}
	return n, nil
}

// vecArg reads an optional keyword vector argument.
func vecArg(pa kwArgs, builtin, name string, fallback v3.Vec) (v3.Vec, error) {
	v, ok := pa.kw[name]
	if !ok {
		return fallback, nil
	}
	vec, err := toVec3(v)
	if err != nil {
		return v3.Vec{}, fmt.Errorf("%s: %s: %w", builtin, name, err)
	}
	return vec, nil
}

// geometryArgs converts every positional argument into a geometry.
func geometryArgs(builtin string, args []zygo.Sexp) ([]csg.Geometry, error) {
	geometries := make([]csg.Geometry, 0, len(args))
	for i, arg := range args {
		g, err := toGeometry(arg)
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", builtin, i+1, err)
		}
		geometries = append(geometries, g)
	}
	return geometries, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the solid modeling builtins into a zygomys
// environment.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp) {

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}

		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: y: %w", err)
		}
		z, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: z: %w", err)
		}

		return &sexpVec3{vec: v3.Vec{X: x, Y: y, Z: z}}, nil
	})

	// -----------------------------------------------------------------------
	// (cube :center (vec3 0 0 0) :size 2)
	// -----------------------------------------------------------------------
	env.AddFunction("cube", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		center, err := vecArg(pa, "cube", "center", v3.Vec{})
		if err != nil {
			return zygo.SexpNull, err
		}
		size, err := floatArg(pa, "cube", "size", 2)
		if err != nil {
			return zygo.SexpNull, err
		}

		return &sexpGeometry{geometry: csg.Cube(center, size)}, nil
	})

	// -----------------------------------------------------------------------
	// (sphere :center (vec3 0 0 0) :radius 1 :slices 16 :stacks 8)
	// -----------------------------------------------------------------------
	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		center, err := vecArg(pa, "sphere", "center", v3.Vec{})
		if err != nil {
			return zygo.SexpNull, err
		}
		radius, err := floatArg(pa, "sphere", "radius", 1)
		if err != nil {
			return zygo.SexpNull, err
		}
		slices, err := intArg(pa, "sphere", "slices", 16)
		if err != nil {
			return zygo.SexpNull, err
		}
		stacks, err := intArg(pa, "sphere", "stacks", 8)
		if err != nil {
			return zygo.SexpNull, err
		}

		return &sexpGeometry{geometry: csg.Sphere(center, radius, slices, stacks)}, nil
	})

	// -----------------------------------------------------------------------
	// (cylinder :start (vec3 0 -1 0) :end (vec3 0 1 0) :radius 1 :slices 16)
	// (cylinder :center (vec3 0 0 0) :height 2 :radius 1 :slices 16)
	// -----------------------------------------------------------------------
	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		radius, err := floatArg(pa, "cylinder", "radius", 1)
		if err != nil {
			return zygo.SexpNull, err
		}
		slices, err := intArg(pa, "cylinder", "slices", 16)
		if err != nil {
			return zygo.SexpNull, err
		}

		if _, upright := pa.kw["height"]; upright {
			center, err := vecArg(pa, "cylinder", "center", v3.Vec{})
			if err != nil {
				return zygo.SexpNull, err
			}
			height, err := floatArg(pa, "cylinder", "height", 2)
			if err != nil {
				return zygo.SexpNull, err
			}

			return &sexpGeometry{geometry: csg.UprightCylinder(center, height, radius, slices)}, nil
		}

		start, err := vecArg(pa, "cylinder", "start", v3.Vec{Y: -1})
		if err != nil {
			return zygo.SexpNull, err
		}
		end, err := vecArg(pa, "cylinder", "end", v3.Vec{Y: 1})
		if err != nil {
			return zygo.SexpNull, err
		}

		return &sexpGeometry{geometry: csg.Cylinder(start, end, radius, slices)}, nil
	})

	// -----------------------------------------------------------------------
	// (union a b ...), (subtract a b ...), (intersect a b ...)
	//
	// Each operator folds left over two or more solids.
	// -----------------------------------------------------------------------
	booleans := map[string]func(a, b csg.Geometry) csg.Geometry{
		"union":     csg.Merge,
		"subtract":  csg.Subtract,
		"intersect": csg.Intersect,
	}

	for builtin, op := range booleans {
		env.AddFunction(builtin, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			geometries, err := geometryArgs(name, args)
			if err != nil {
				return zygo.SexpNull, err
			}
			if len(geometries) < 2 {
				return zygo.SexpNull, fmt.Errorf("%s requires at least 2 solids, got %d",
					name, len(geometries))
			}

			result := geometries[0]
			for _, g := range geometries[1:] {
				result = op(result, g)
			}

			return &sexpGeometry{geometry: result}, nil
		})
	}

	// -----------------------------------------------------------------------
	// (translate solid (vec3 10 0 0))
	// -----------------------------------------------------------------------
	env.AddFunction("translate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("translate requires a solid and a vec3")
		}

		g, err := toGeometry(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translate: %w", err)
		}
		offset, err := toVec3(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translate: %w", err)
		}

		return &sexpGeometry{geometry: g.Transformed(geom.Translation(offset))}, nil
	})

	// -----------------------------------------------------------------------
	// (rotate solid :angle 45 :axis (vec3 1 1 0))
	// -----------------------------------------------------------------------
	env.AddFunction("rotate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("rotate requires a solid as first argument")
		}

		g, err := toGeometry(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate: %w", err)
		}
		angle, err := floatArg(pa, "rotate", "angle", 0)
		if err != nil {
			return zygo.SexpNull, err
		}
		axis, err := vecArg(pa, "rotate", "axis", v3.Vec{Z: 1})
		if err != nil {
			return zygo.SexpNull, err
		}

		return &sexpGeometry{geometry: g.Transformed(geom.Rotation(angle, axis))}, nil
	})

	// -----------------------------------------------------------------------
	// (scale solid (vec3 2 1 1))
	// -----------------------------------------------------------------------
	env.AddFunction("scale", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("scale requires a solid and a vec3")
		}

		g, err := toGeometry(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scale: %w", err)
		}
		factors, err := toVec3(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scale: %w", err)
		}

		return &sexpGeometry{geometry: g.Transformed(geom.Scaling(factors))}, nil
	})

	// -----------------------------------------------------------------------
	// (inverse solid)
	// -----------------------------------------------------------------------
	env.AddFunction("inverse", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("inverse requires exactly one solid")
		}

		g, err := toGeometry(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("inverse: %w", err)
		}

		return &sexpGeometry{geometry: g.Inversed()}, nil
	})
}
