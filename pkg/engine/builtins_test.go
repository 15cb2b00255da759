package engine

import (
	"testing"

	"github.com/hasselmm/gocsg/pkg/csg"
)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessKeywords(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "simple keyword",
			input:  `(cube :size 2)`,
			expect: `(cube "__kw_size" 2)`,
		},
		{
			name:   "multiple keywords",
			input:  `(sphere :radius 1 :slices 16)`,
			expect: `(sphere "__kw_radius" 1 "__kw_slices" 16)`,
		},
		{
			name:   "keyword in string preserved",
			input:  `"thing with :keyword inside"`,
			expect: `"thing with :keyword inside"`,
		},
		{
			name:   "assignment operator preserved",
			input:  `(def x := 10)`,
			expect: `(def x := 10)`,
		},
		{
			name:   "kebab-case identifier",
			input:  `(def half-size 2)`,
			expect: `(def half_size 2)`,
		},
		{
			name:   "minus operator preserved",
			input:  `(- 10 5)`,
			expect: `(- 10 5)`,
		},
		{
			name:   "comment converted to // style",
			input:  `;; comment with :keyword`,
			expect: `// comment with :keyword`,
		},
		{
			name:   "single semicolon comment",
			input:  `; simple comment`,
			expect: `// simple comment`,
		},
		{
			name:   "hyphen in keyword preserved",
			input:  `:half-size`,
			expect: `"__kw_half-size"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preprocessSource(tt.input)
			if got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Primitive builtins
// ---------------------------------------------------------------------------

func evaluate(t *testing.T, source string) csg.Geometry {
	t.Helper()

	g, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}

	return g
}

func TestBuiltinPrimitives(t *testing.T) {
	tests := []struct {
		name             string
		source           string
		wantPolygonCount int
	}{
		{"cube", `(cube)`, 6},
		{"cube sized", `(cube :size 3)`, 6},
		{"cube centered", `(cube :center (vec3 1 2 3) :size 0.5)`, 6},
		{"sphere", `(sphere)`, 128},
		{"sphere custom", `(sphere :radius 2 :slices 8 :stacks 4)`, 32},
		{"cylinder", `(cylinder)`, 48},
		{"cylinder points", `(cylinder :start (vec3 0 0 0) :end (vec3 0 0 5) :radius 1 :slices 8)`, 24},
		{"cylinder upright", `(cylinder :center (vec3 0 1 0) :height 4 :radius 0.5)`, 48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := evaluate(t, tt.source)

			if g.Err() != csg.NoError {
				t.Fatalf("geometry error: %v", g.Err())
			}
			if got := len(g.Polygons()); got != tt.wantPolygonCount {
				t.Errorf("polygon count = %d, want %d", got, tt.wantPolygonCount)
			}
		})
	}
}

func TestBuiltinVariables(t *testing.T) {
	source := `
; the cube edge runs from -half-size to +half-size
(def half-size 2)
(cube :size half-size)
`
	g := evaluate(t, source)

	if got := len(g.Polygons()); got != 6 {
		t.Fatalf("polygon count = %d, want 6", got)
	}

	for _, p := range g.Polygons() {
		for _, v := range p.Vertices {
			for _, c := range []float64{v.Position.X, v.Position.Y, v.Position.Z} {
				if c != -2 && c != 2 {
					t.Fatalf("vertex %v not on the sized cube", v.Position)
				}
			}
		}
	}
}

// ---------------------------------------------------------------------------
// Boolean and transform builtins
// ---------------------------------------------------------------------------

func TestBuiltinBooleans(t *testing.T) {
	source := `
(union (cube :center (vec3 -0.5 -0.5 0.5) :size 1)
       (cube :center (vec3 0.5 0.5 -0.5) :size 1))
`
	g := evaluate(t, source)
	if g.Err() != csg.NoError {
		t.Fatalf("geometry error: %v", g.Err())
	}
	if got := len(g.Polygons()); got != 24 {
		t.Errorf("union polygon count = %d, want 24", got)
	}

	carved := evaluate(t, `(subtract (cube :size 2) (sphere :radius 1.3))`)
	if carved.Err() != csg.NoError {
		t.Fatalf("geometry error: %v", carved.Err())
	}
	if carved.IsEmpty() {
		t.Error("subtract produced no polygons")
	}

	disjoint := evaluate(t, `(intersect (cube) (cube :center (vec3 10 0 0)))`)
	if disjoint.Err() != csg.NoError {
		t.Fatalf("geometry error: %v", disjoint.Err())
	}
	if !disjoint.IsEmpty() {
		t.Error("disjoint intersection is not empty")
	}
}

func TestBuiltinBooleanFold(t *testing.T) {
	// Three disjoint cubes union into 18 faces.
	source := `
(union (cube :size 1)
       (cube :center (vec3 5 0 0) :size 1)
       (cube :center (vec3 10 0 0) :size 1))
`
	g := evaluate(t, source)
	if got := len(g.Polygons()); got != 18 {
		t.Errorf("polygon count = %d, want 18", got)
	}
}

func TestBuiltinTransforms(t *testing.T) {
	moved := evaluate(t, `(translate (cube :size 1) (vec3 10 0 0))`)
	for _, p := range moved.Polygons() {
		for _, v := range p.Vertices {
			if v.Position.X < 9 || v.Position.X > 11 {
				t.Fatalf("vertex %v not translated to x=10", v.Position)
			}
		}
	}

	scaled := evaluate(t, `(scale (cube :size 1) (vec3 3 1 1))`)
	for _, p := range scaled.Polygons() {
		for _, v := range p.Vertices {
			if v.Position.X != -3 && v.Position.X != 3 {
				t.Fatalf("vertex %v not scaled to x=3", v.Position)
			}
		}
	}

	rotated := evaluate(t, `(rotate (cube :size 1) :angle 90 :axis (vec3 0 0 1))`)
	if got := len(rotated.Polygons()); got != 6 {
		t.Errorf("rotated polygon count = %d, want 6", got)
	}

	inverse := evaluate(t, `(inverse (cube :size 1))`)
	if got := inverse.Polygons()[0].Plane.Normal.X; got != 1 {
		t.Errorf("inverse first plane normal x = %v, want 1", got)
	}
}

// ---------------------------------------------------------------------------
// Builtin error reporting
// ---------------------------------------------------------------------------

func TestBuiltinErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"vec3 arity", `(vec3 1 2)`},
		{"vec3 type", `(vec3 1 2 "three")`},
		{"cube center type", `(cube :center 5)`},
		{"union arity", `(union (cube))`},
		{"union type", `(union (cube) 42)`},
		{"translate type", `(translate 5 (vec3 0 0 0))`},
		{"rotate missing solid", `(rotate :angle 45)`},
		{"scale arity", `(scale (cube))`},
		{"inverse type", `(inverse 7)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, evalErrs, err := NewEngine().Evaluate(tt.source)
			if err != nil {
				t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
			}
			if len(evalErrs) == 0 {
				t.Fatal("expected eval errors")
			}
			if !g.IsEmpty() {
				t.Error("expected empty geometry on builtin error")
			}
		})
	}
}
