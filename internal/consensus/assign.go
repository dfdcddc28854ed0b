package consensus

import (
	"math"

	"github.com/drakos74/multiview/internal/math/sphere"
	"gonum.org/v1/gonum/mat"
)

// Assign gives every item the consensus cluster minimizing the sum of its angular distances
// to the cluster means of both views.
// Labels are 1-based positions in the means.
func Assign(view1, view2 *mat.Dense, means Means) sphere.Labels {
	r, _ := view1.Dims()
	labels := make(sphere.Labels, r)
	sphere.Rows(r, func(i int) {
		row1 := view1.RawRowView(i)
		row2 := view2.RawRowView(i)
		m := math.Inf(1)
		for j := 0; j < means.Len(); j++ {
			d := sphere.Angle(row1, means.View1[j]) + sphere.Angle(row2, means.View2[j])
			if d < m {
				m = d
				labels[i] = j + 1
			}
		}
	})
	return labels
}

// Agreement is the fraction of items for which both views end up on the same consensus cluster.
func Agreement(labels1, labels2 sphere.Labels, means Means) float64 {
	if len(labels1) == 0 {
		return 0
	}
	consensus := make(map[int]struct{}, means.Len())
	for _, l := range means.Labels {
		consensus[l] = struct{}{}
	}
	var n int
	for i := range labels1 {
		if labels1[i] != labels2[i] {
			continue
		}
		if _, ok := consensus[labels1[i]]; ok {
			n++
		}
	}
	return float64(n) / float64(len(labels1))
}
