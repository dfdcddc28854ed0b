package sphere

import (
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ChunkSize is the number of rows a single worker assigns.
var ChunkSize = 1024

// Assign labels every row of the view with the closest center.
// Both rows and centers are expected on the unit sphere, so the euclidean distance
// orders the centers the same way as the cosine similarity.
// Without any center, e.g. for a view without signal, every row is Unassigned.
func Assign(view *mat.Dense, centers Centers) Labels {
	r, _ := view.Dims()
	labels := make(Labels, r)
	keys := centers.Keys()
	if len(keys) == 0 {
		for i := range labels {
			labels[i] = Unassigned
		}
		return labels
	}
	Rows(r, func(i int) {
		labels[i] = nearest(view.RawRowView(i), keys, centers)
	})
	return labels
}

func nearest(row []float64, keys []int, centers Centers) int {
	label := keys[0]
	m := math.MaxFloat64
	for _, k := range keys {
		if d := floats.Distance(row, centers[k], 2); d < m {
			m = d
			label = k
		}
	}
	return label
}

// Rows applies f to every row index in [0,n), splitting the range across goroutines.
// f must only write state that belongs to its own row.
func Rows(n int, f func(i int)) {
	if n <= ChunkSize {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}
	var g errgroup.Group
	for start := 0; start < n; start += ChunkSize {
		a, b := start, start+ChunkSize
		if b > n {
			b = n
		}
		g.Go(func() error {
			for i := a; i < b; i++ {
				f(i)
			}
			return nil
		})
	}
	// workers never fail
	_ = g.Wait()
}
