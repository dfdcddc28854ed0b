package consensus

import (
	"testing"

	"github.com/drakos74/multiview/internal/math/sphere"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func TestBuild(t *testing.T) {
	view1 := sphere.Normalize(mat.NewDense(4, 2, []float64{
		1, 0,
		0, 1,
		1, 1,
		1, 2,
	}))
	view2 := sphere.Normalize(mat.NewDense(4, 3, []float64{
		0, 0, 1,
		0, 1, 0,
		1, 0, 0,
		1, 1, 0,
	}))

	means, err := Build(view1, view2, sphere.Labels{1, 1, 2, 2}, sphere.Labels{1, 2, 2, 2})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, means.Labels)
	require.Equal(t, 2, means.Len())
	require.Len(t, means.View1, 2)
	require.Len(t, means.View2, 2)

	for i := 0; i < means.Len(); i++ {
		assert.InDelta(t, 1, floats.Norm(means.View1[i], 2), 1e-9)
		assert.InDelta(t, 1, floats.Norm(means.View2[i], 2), 1e-9)
	}

	// item 1 is labelled 1 by the first view only, so it does not pull the mean of label 1
	assert.InDeltaSlice(t, []float64{1, 0}, means.View1[0], 1e-9)
	assert.InDeltaSlice(t, []float64{0, 0, 1}, means.View2[0], 1e-9)
}

func TestBuild_SparseLabels(t *testing.T) {
	view := sphere.Normalize(mat.NewDense(4, 2, []float64{
		1, 0,
		1, 0,
		0, 1,
		0, 1,
	}))

	means, err := Build(view, view, sphere.Labels{7, 7, 3, 3}, sphere.Labels{7, 7, 3, 5})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 7}, means.Labels)
	assert.InDeltaSlice(t, []float64{0, 1}, means.View1[0], 1e-9)
	assert.InDeltaSlice(t, []float64{1, 0}, means.View2[1], 1e-9)
}

func TestBuild_Errors(t *testing.T) {
	view := sphere.Normalize(mat.NewDense(3, 2, []float64{
		1, 0,
		0, 1,
		0, 0,
	}))

	type test struct {
		labels1, labels2 sphere.Labels
		err              error
	}

	tests := map[string]test{
		"disjoint-labels": {
			labels1: sphere.Labels{1, 1, 2},
			labels2: sphere.Labels{3, 3, 4},
			err:     ErrNoSharedLabels,
		},
		"shared-without-agreement": {
			labels1: sphere.Labels{1, 2, 1},
			labels2: sphere.Labels{2, 1, 2},
			err:     ErrNoSharedLabels,
		},
		"agreement-on-zero-rows-only": {
			labels1: sphere.Labels{1, 2, 3},
			labels2: sphere.Labels{2, 1, 3},
			err:     ErrNoSharedLabels,
		},
		"unassigned": {
			labels1: sphere.Labels{sphere.Unassigned, sphere.Unassigned, sphere.Unassigned},
			labels2: sphere.Labels{sphere.Unassigned, sphere.Unassigned, sphere.Unassigned},
			err:     ErrNoSharedLabels,
		},
		"length": {
			labels1: sphere.Labels{1, 2, 3},
			labels2: sphere.Labels{1, 2},
			err:     sphere.ErrDimensionMismatch,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			means, err := Build(view, view, tt.labels1, tt.labels2)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, 0, means.Len())
		})
	}
}

func TestAssign(t *testing.T) {
	data := []float64{
		1, 0,
		1, 0,
		1, 0,
		0, 1,
		0, 1,
		0, 1,
	}
	view1 := sphere.Normalize(mat.NewDense(6, 2, data))
	view2 := sphere.Normalize(mat.NewDense(6, 2, data))
	labels := sphere.Labels{2, 2, 2, 1, 1, 1}

	means, err := Build(view1, view2, labels, labels)
	require.NoError(t, err)
	final := Assign(view1, view2, means)
	assert.Equal(t, sphere.Labels{2, 2, 2, 1, 1, 1}, final)
	assert.Equal(t, 1.0, Agreement(labels, labels, means))
}

func TestAssign_TieGoesToLowestIndex(t *testing.T) {
	view := sphere.Normalize(mat.NewDense(2, 2, []float64{
		1, 1,
		0, 0,
	}))
	means := Means{
		Labels: []int{4, 9},
		View1:  [][]float64{{1, 0}, {0, 1}},
		View2:  [][]float64{{0, 1}, {1, 0}},
	}
	for i := 0; i < 10; i++ {
		assert.Equal(t, sphere.Labels{1, 1}, Assign(view, view, means))
	}
}

func TestAssign_CombinesViews(t *testing.T) {
	// the first view is undecided, the second one breaks the tie
	view1 := sphere.Normalize(mat.NewDense(1, 2, []float64{1, 1}))
	view2 := sphere.Normalize(mat.NewDense(1, 2, []float64{0.2, 1}))
	means := Means{
		Labels: []int{1, 2},
		View1:  [][]float64{{1, 0}, {0, 1}},
		View2:  [][]float64{{1, 0}, {0, 1}},
	}
	assert.Equal(t, sphere.Labels{2}, Assign(view1, view2, means))
}

func TestAgreement(t *testing.T) {
	means := Means{Labels: []int{1, 2}}

	type test struct {
		labels1, labels2 sphere.Labels
		rate             float64
	}

	tests := map[string]test{
		"full": {
			labels1: sphere.Labels{1, 2, 2, 1},
			labels2: sphere.Labels{1, 2, 2, 1},
			rate:    1,
		},
		"half": {
			labels1: sphere.Labels{1, 2, 2, 1},
			labels2: sphere.Labels{1, 1, 2, 2},
			rate:    0.5,
		},
		"outside-consensus": {
			labels1: sphere.Labels{3, 3, 2, 1},
			labels2: sphere.Labels{3, 3, 1, 1},
			rate:    0.25,
		},
		"empty": {
			rate: 0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.rate, Agreement(tt.labels1, tt.labels2, means))
		})
	}
}
