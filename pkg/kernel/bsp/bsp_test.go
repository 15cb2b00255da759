package bsp

import (
	"math"
	"testing"

	"github.com/hasselmm/gocsg/pkg/csg"
	"github.com/hasselmm/gocsg/pkg/kernel"
)

const tolerance = 1e-5

func boxApprox(got, want [3]float64) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(got[i]-want[i]) > tolerance {
			return false
		}
	}
	return true
}

func TestBoxBoundingBox(t *testing.T) {
	var k kernel.Kernel = New()

	s := k.Box(10, 20, 30)

	min, max := s.BoundingBox()
	if !boxApprox(min, [3]float64{0, 0, 0}) {
		t.Errorf("min = %v, want [0 0 0]", min)
	}
	if !boxApprox(max, [3]float64{10, 20, 30}) {
		t.Errorf("max = %v, want [10 20 30]", max)
	}
}

func TestSphereBoundingBox(t *testing.T) {
	var k kernel.Kernel = New()

	min, max := k.Sphere(2, 16).BoundingBox()

	// Faceted, so contained in the exact box and filling most of it.
	for i := 0; i < 3; i++ {
		if min[i] < -2-tolerance || min[i] > -1.8 {
			t.Errorf("min[%d] = %v, want in [-2, -1.8]", i, min[i])
		}
		if max[i] > 2+tolerance || max[i] < 1.8 {
			t.Errorf("max[%d] = %v, want in [1.8, 2]", i, max[i])
		}
	}
}

func TestCylinderBoundingBox(t *testing.T) {
	var k kernel.Kernel = New()

	min, max := k.Cylinder(5, 1, 16).BoundingBox()

	if math.Abs(min[2]) > tolerance || math.Abs(max[2]-5) > tolerance {
		t.Errorf("z extent = [%v, %v], want [0, 5]", min[2], max[2])
	}
	if max[0] > 1+tolerance || max[1] > 1+tolerance {
		t.Errorf("radial extent = [%v, %v], want <= 1", max[0], max[1])
	}
}

func TestBooleanOperations(t *testing.T) {
	var k kernel.Kernel = New()

	a := k.Box(2, 2, 2)
	b := k.Translate(k.Box(2, 2, 2), 1, 1, 1)

	union := k.Union(a, b)
	if Geometry(union).Err() != csg.NoError {
		t.Fatalf("Union: %v", Geometry(union).Err())
	}
	min, max := union.BoundingBox()
	if !boxApprox(min, [3]float64{0, 0, 0}) || !boxApprox(max, [3]float64{3, 3, 3}) {
		t.Errorf("union bounds = %v..%v, want [0 0 0]..[3 3 3]", min, max)
	}

	difference := k.Difference(a, b)
	if Geometry(difference).Err() != csg.NoError {
		t.Fatalf("Difference: %v", Geometry(difference).Err())
	}

	intersection := k.Intersection(a, b)
	if Geometry(intersection).Err() != csg.NoError {
		t.Fatalf("Intersection: %v", Geometry(intersection).Err())
	}
	min, max = intersection.BoundingBox()
	if !boxApprox(min, [3]float64{1, 1, 1}) || !boxApprox(max, [3]float64{2, 2, 2}) {
		t.Errorf("intersection bounds = %v..%v, want [1 1 1]..[2 2 2]", min, max)
	}
}

func TestTransforms(t *testing.T) {
	var k kernel.Kernel = New()

	s := k.Box(1, 1, 1)

	moved := k.Translate(s, 10, 0, 0)
	min, max := moved.BoundingBox()
	if !boxApprox(min, [3]float64{10, 0, 0}) || !boxApprox(max, [3]float64{11, 1, 1}) {
		t.Errorf("translated bounds = %v..%v", min, max)
	}

	scaled := k.Scale(s, 2, 3, 4)
	min, max = scaled.BoundingBox()
	if !boxApprox(min, [3]float64{0, 0, 0}) || !boxApprox(max, [3]float64{2, 3, 4}) {
		t.Errorf("scaled bounds = %v..%v", min, max)
	}

	// Rotating 90 degrees around Z maps the +x extent onto +y.
	rotated := k.Rotate(s, 0, 0, 90)
	min, max = rotated.BoundingBox()
	if !boxApprox(min, [3]float64{-1, 0, 0}) || !boxApprox(max, [3]float64{0, 1, 1}) {
		t.Errorf("rotated bounds = %v..%v", min, max)
	}
}

func TestToMesh(t *testing.T) {
	var k kernel.Kernel = New()

	mesh, err := k.ToMesh(k.Box(1, 1, 1))
	if err != nil {
		t.Fatalf("ToMesh: %v", err)
	}
	if mesh.TriangleCount() != 12 {
		t.Errorf("TriangleCount() = %d, want 12", mesh.TriangleCount())
	}

	// A failed boolean surfaces from ToMesh instead of silently yielding an
	// empty mesh.
	failed := FromGeometry(csg.NewGeometryError(csg.RecursionError))
	if _, err := k.ToMesh(failed); err == nil {
		t.Error("expected error for failed solid")
	}
}
