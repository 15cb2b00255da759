package csg

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

const testTolerance = 1e-5

func approx(a, b float64) bool {
	return math.Abs(a-b) <= testTolerance
}

func vecApprox(a, b v3.Vec) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) && approx(a.Z, b.Z)
}
