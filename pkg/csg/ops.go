package csg

// DefaultRecursionLimit bounds BSP tree depth during construction, guarding
// against blowup on degenerate input.
const DefaultRecursionLimit = 1024

// Options configures a boolean operation.
type Options struct {
	// Limit is the maximum BSP tree depth; DefaultRecursionLimit when zero.
	Limit int
	// Inspect is an optional single-stepping hook, installed on both
	// operand trees.
	Inspect InspectFunc
}

func (o Options) limit() int {
	if o.Limit <= 0 {
		return DefaultRecursionLimit
	}

	return o.Limit
}

// operands validates both inputs and compiles them into BSP trees. It
// returns a non-NoError state when either input already carries an error, or
// when either tree cannot be built.
func operands(lhs, rhs Geometry, o Options) (a, b *Node, err Error) {
	if lhs.err != NoError {
		return nil, nil, lhs.err
	}
	if rhs.err != NoError {
		return nil, nil, rhs.err
	}

	a = &Node{inspect: o.Inspect}
	b = &Node{inspect: o.Inspect}

	if err := a.Build(lhs.polygons, o.limit()); err != NoError {
		return nil, nil, err
	}
	if err := b.Build(rhs.polygons, o.limit()); err != NoError {
		return nil, nil, err
	}

	return a, b, NoError
}

// Merge returns a new solid covering space in either a or b. Neither input
// is modified.
//
//	+-------+            +-------+
//	|       |            |       |
//	|   A   |            |       |
//	|    +--+----+   =   |       +----+
//	+----+--+    |       +----+       |
//	     |   B   |            |       |
//	     |       |            |       |
//	     +-------+            +-------+
func Merge(lhs, rhs Geometry) Geometry {
	return MergeWith(lhs, rhs, Options{})
}

// MergeWith is Merge with explicit options.
func MergeWith(lhs, rhs Geometry, o Options) Geometry {
	a, b, err := operands(lhs, rhs, o)
	if err != NoError {
		return NewGeometryError(err)
	}

	a.ClipTo(b)
	b.ClipTo(a)
	b.Invert()
	b.ClipTo(a)
	b.Invert()

	if err := a.Build(b.AllPolygons(), o.limit()); err != NoError {
		return NewGeometryError(err)
	}

	return NewGeometry(a.AllPolygons())
}

// Subtract returns a new solid covering space in a but not in b. Neither
// input is modified.
//
//	+-------+            +-------+
//	|       |            |       |
//	|   A   |            |       |
//	|    +--+----+   =   |    +--+
//	+----+--+    |       +----+
//	     |   B   |
//	     |       |
//	     +-------+
func Subtract(lhs, rhs Geometry) Geometry {
	return SubtractWith(lhs, rhs, Options{})
}

// SubtractWith is Subtract with explicit options.
func SubtractWith(lhs, rhs Geometry, o Options) Geometry {
	a, b, err := operands(lhs, rhs, o)
	if err != NoError {
		return NewGeometryError(err)
	}

	a.Invert()
	a.ClipTo(b)
	b.ClipTo(a)
	b.Invert()
	b.ClipTo(a)
	b.Invert()

	if err := a.Build(b.AllPolygons(), o.limit()); err != NoError {
		return NewGeometryError(err)
	}

	a.Invert()

	return NewGeometry(a.AllPolygons())
}

// Intersect returns a new solid covering space in both a and b. Neither
// input is modified.
//
//	+-------+
//	|       |
//	|   A   |
//	|    +--+----+   =   +--+
//	+----+--+    |       +--+
//	     |   B   |
//	     |       |
//	     +-------+
func Intersect(lhs, rhs Geometry) Geometry {
	return IntersectWith(lhs, rhs, Options{})
}

// IntersectWith is Intersect with explicit options.
func IntersectWith(lhs, rhs Geometry, o Options) Geometry {
	a, b, err := operands(lhs, rhs, o)
	if err != NoError {
		return NewGeometryError(err)
	}

	a.Invert()
	b.ClipTo(a)
	b.Invert()
	a.ClipTo(b)
	b.ClipTo(a)

	if err := a.Build(b.AllPolygons(), o.limit()); err != NoError {
		return NewGeometryError(err)
	}

	a.Invert()

	return NewGeometry(a.AllPolygons())
}
