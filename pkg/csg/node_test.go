package csg

import (
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Building a tree from an axis-aligned cube degenerates into a chain of back
// children: each face is strictly behind all previously chosen planes.
func TestNodeBuildCubeChain(t *testing.T) {
	node, err := NodeFromPolygons(Cube(v3.Vec{}, 1).Polygons(), 0)
	if err != NoError {
		t.Fatalf("NodeFromPolygons: %v", err)
	}

	depth := 0
	for sub := node; sub != nil; sub = sub.Back() {
		if got := len(sub.Polygons()); got != 1 {
			t.Errorf("depth %d: polygon count = %d, want 1", depth, got)
		}
		if got := len(sub.Polygons()[0].Vertices); got != 4 {
			t.Errorf("depth %d: vertex count = %d, want 4", depth, got)
		}
		if sub.Front() != nil {
			t.Errorf("depth %d: unexpected front child", depth)
		}
		if hasBack := sub.Back() != nil; hasBack != (depth < 5) {
			t.Errorf("depth %d: back child = %v, want %v", depth, hasBack, depth < 5)
		}
		depth++
	}

	if got := len(node.AllPolygons()); got != 6 {
		t.Errorf("AllPolygons count = %d, want 6", got)
	}

	plane := node.Plane()
	if plane.IsNull() {
		t.Fatal("root plane is null")
	}
	if want := (v3.Vec{X: -1}); !vecApprox(plane.Normal, want) {
		t.Errorf("root plane normal = %v, want %v", plane.Normal, want)
	}
	if !approx(plane.W, 1) {
		t.Errorf("root plane w = %v, want 1", plane.W)
	}
}

func TestNodeInverted(t *testing.T) {
	original, err := NodeFromPolygons(Cube(v3.Vec{}, 1).Polygons(), 0)
	if err != NoError {
		t.Fatalf("NodeFromPolygons: %v", err)
	}

	node := original.Inverted()

	// Inversion swaps front and back, turning the back chain into a front
	// chain.
	depth := 0
	for sub := node; sub != nil; sub = sub.Front() {
		if got := len(sub.Polygons()); got != 1 {
			t.Errorf("depth %d: polygon count = %d, want 1", depth, got)
		}
		if sub.Back() != nil {
			t.Errorf("depth %d: unexpected back child", depth)
		}
		if hasFront := sub.Front() != nil; hasFront != (depth < 5) {
			t.Errorf("depth %d: front child = %v, want %v", depth, hasFront, depth < 5)
		}
		depth++
	}

	if got := len(node.AllPolygons()); got != 6 {
		t.Errorf("AllPolygons count = %d, want 6", got)
	}

	plane := node.Plane()
	if want := (v3.Vec{X: 1}); !vecApprox(plane.Normal, want) {
		t.Errorf("root plane normal = %v, want %v", plane.Normal, want)
	}
	if !approx(plane.W, -1) {
		t.Errorf("root plane w = %v, want -1", plane.W)
	}

	// The original tree is untouched.
	if want := (v3.Vec{X: -1}); !vecApprox(original.Plane().Normal, want) {
		t.Errorf("original plane normal = %v, want %v", original.Plane().Normal, want)
	}
	if original.Front() != nil {
		t.Error("original tree grew a front child")
	}
}

func TestNodeBuildEmpty(t *testing.T) {
	node := &Node{}

	if err := node.Build(nil, 0); err != NoError {
		t.Fatalf("Build(nil) = %v, want NoError", err)
	}
	if !node.Plane().IsNull() {
		t.Error("empty build fixed a plane")
	}
}

func TestNodeBuildIncremental(t *testing.T) {
	node := &Node{}

	cube := Cube(v3.Vec{}, 1).Polygons()

	if err := node.Build(cube[:3], 0); err != NoError {
		t.Fatalf("first Build: %v", err)
	}

	// The plane fixed by the first call survives later calls.
	plane := node.Plane()

	if err := node.Build(cube[3:], 0); err != NoError {
		t.Fatalf("second Build: %v", err)
	}

	if node.Plane() != plane {
		t.Errorf("plane changed across builds: %+v -> %+v", plane, node.Plane())
	}
	if got := len(node.AllPolygons()); got != 6 {
		t.Errorf("AllPolygons count = %d, want 6", got)
	}
}

func TestNodeBuildRecursionLimit(t *testing.T) {
	_, err := NodeFromPolygons(Cube(v3.Vec{}, 1).Polygons(), 3)
	if err != RecursionError {
		t.Fatalf("NodeFromPolygons(limit=3) = %v, want RecursionError", err)
	}
}

func TestNodeClipPolygons(t *testing.T) {
	cube, err := NodeFromPolygons(Cube(v3.Vec{}, 1).Polygons(), 0)
	if err != NoError {
		t.Fatalf("NodeFromPolygons: %v", err)
	}

	// A far-away polygon is entirely outside the solid and survives.
	outside := NewPolygon([]Vertex{
		{Position: v3.Vec{X: 5}, Normal: v3.Vec{Z: 1}},
		{Position: v3.Vec{X: 6}, Normal: v3.Vec{Z: 1}},
		{Position: v3.Vec{X: 5, Y: 1}, Normal: v3.Vec{Z: 1}},
	}, nil)

	if got := cube.ClipPolygons([]Polygon{outside}); len(got) != 1 {
		t.Errorf("outside polygon: %d fragments, want 1", len(got))
	}

	// A small polygon deep inside the solid is removed completely.
	inside := NewPolygon([]Vertex{
		{Position: v3.Vec{X: -0.1}, Normal: v3.Vec{Z: 1}},
		{Position: v3.Vec{X: 0.1}, Normal: v3.Vec{Z: 1}},
		{Position: v3.Vec{Y: 0.1}, Normal: v3.Vec{Z: 1}},
	}, nil)

	if got := cube.ClipPolygons([]Polygon{inside}); len(got) != 0 {
		t.Errorf("inside polygon: %d fragments, want 0", len(got))
	}

	// An empty tree clips nothing.
	empty := &Node{}
	if got := empty.ClipPolygons([]Polygon{inside}); len(got) != 1 {
		t.Errorf("empty tree: %d fragments, want 1", len(got))
	}
}
