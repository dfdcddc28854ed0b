package sphere

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrDegenerateView    = errors.New("view has no non-zero rows")
	ErrDimensionMismatch = errors.New("views do not share row identity")
	ErrEmptyView         = errors.New("empty view")
)

// Unassigned marks a row that no center could claim.
// It is never a cluster label, which start at 1.
const Unassigned = 0

// Labels holds one cluster label per row of a view.
type Labels []int

// Copy returns an independent copy of the labels.
func (l Labels) Copy() Labels {
	c := make(Labels, len(l))
	copy(c, l)
	return c
}

// Distinct returns the label values present, in ascending order.
func (l Labels) Distinct() []int {
	seen := make(map[int]struct{})
	for _, v := range l {
		seen[v] = struct{}{}
	}
	values := make([]int, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Ints(values)
	return values
}

// Centers maps a cluster label to its unit-norm direction.
type Centers map[int][]float64

// Keys returns the labels of the centers in ascending order.
// Every scan over the centers goes through the keys so that ties resolve to the lowest label.
func (c Centers) Keys() []int {
	keys := make([]int, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Normalize scales every row of the matrix to unit L2 norm.
// Zero rows stay zero rather than turning into NaN.
func Normalize(m mat.Matrix) *mat.Dense {
	r, c := m.Dims()
	n := mat.DenseCopyOf(m)
	for i := 0; i < r; i++ {
		row := n.RawRowView(i)
		norm := floats.Norm(row, 2)
		for j := 0; j < c; j++ {
			v := row[j] / norm
			if math.IsNaN(v) || math.IsInf(v, 0) {
				v = 0
			}
			row[j] = v
		}
	}
	return n
}

// Unit returns a normalized copy of the vector, or nil if the vector has no direction.
func Unit(v []float64) []float64 {
	norm := floats.Norm(v, 2)
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return nil
	}
	u := make([]float64, len(v))
	copy(u, v)
	floats.Scale(1/norm, u)
	return u
}

// IsZero checks if all entries of the row are zero.
func IsZero(row []float64) bool {
	for _, v := range row {
		if v != 0 {
			return false
		}
	}
	return true
}

// Validate checks that the two views can be clustered together.
func Validate(view1, view2 mat.Matrix) error {
	r1, c1 := view1.Dims()
	r2, c2 := view2.Dims()
	if r1 == 0 || c1 == 0 || r2 == 0 || c2 == 0 {
		return ErrEmptyView
	}
	if r1 != r2 {
		return fmt.Errorf("rows [ %d | %d ]: %w", r1, r2, ErrDimensionMismatch)
	}
	return nil
}

// Degenerate reports ErrDegenerateView if no row of the (normalized) view carries a direction.
func Degenerate(view *mat.Dense) error {
	r, _ := view.Dims()
	for i := 0; i < r; i++ {
		if !IsZero(view.RawRowView(i)) {
			return nil
		}
	}
	return ErrDegenerateView
}
