package sphere

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Objective is the spherical k-means objective,
// the sum of the cosine similarities of each row to its assigned center.
func Objective(view *mat.Dense, centers Centers, labels Labels) float64 {
	var s float64
	for i, l := range labels {
		c, ok := centers[l]
		if !ok {
			continue
		}
		s += floats.Dot(view.RawRowView(i), c)
	}
	return s
}

// Angle returns the angular distance of two unit vectors.
func Angle(a, b []float64) float64 {
	d := floats.Dot(a, b)
	// rounding can push the product of unit vectors out of acos' domain
	if d > 1 {
		d = 1
	} else if d < -1 {
		d = -1
	}
	return math.Acos(d)
}
