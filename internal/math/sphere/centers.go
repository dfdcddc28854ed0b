package sphere

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Estimate computes the unit-norm mean direction for every label present in labels,
// using the rows of the given view.
// Labels without members, or whose members are all zero rows, get no center.
// Unassigned rows are skipped.
func Estimate(view *mat.Dense, labels Labels) Centers {
	_, c := view.Dims()
	sums := make(map[int][]float64)
	for i, l := range labels {
		row := view.RawRowView(i)
		if l == Unassigned || IsZero(row) {
			continue
		}
		s, ok := sums[l]
		if !ok {
			s = make([]float64, c)
			sums[l] = s
		}
		floats.Add(s, row)
	}
	centers := make(Centers, len(sums))
	for l, s := range sums {
		// the mean has the same direction as the sum
		if u := Unit(s); u != nil {
			centers[l] = u
		}
	}
	return centers
}

// Mean computes the unit-norm mean of the given rows of the view.
// It returns nil if the rows do not define a direction.
func Mean(view *mat.Dense, rows []int) []float64 {
	_, c := view.Dims()
	s := make([]float64, c)
	for _, i := range rows {
		floats.Add(s, view.RawRowView(i))
	}
	return Unit(s)
}
