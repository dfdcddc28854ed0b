package multiview

import (
	"testing"

	"github.com/drakos74/multiview/internal/consensus"
	"github.com/drakos74/multiview/internal/cotrain"
	"github.com/drakos74/multiview/internal/math/ml"
	"github.com/drakos74/multiview/internal/math/sphere"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func blocks() []float64 {
	return []float64{
		1, 0,
		1, 0,
		1, 0,
		0, 1,
		0, 1,
		0, 1,
	}
}

func TestEngine_Run(t *testing.T) {

	type test struct {
		partitioner ml.Partitioner
		start       cotrain.View
	}

	tests := map[string]test{
		"fixed-view1": {
			partitioner: ml.Fixed{1, 1, 1, 2, 2, 2},
			start:       cotrain.View1,
		},
		"fixed-view2-swapped": {
			partitioner: ml.Fixed{2, 2, 2, 1, 1, 1},
			start:       cotrain.View2,
		},
		"kmeans": {
			partitioner: ml.NewKMeans(0),
			start:       cotrain.View1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			view1 := mat.NewDense(6, 2, blocks())
			view2 := mat.NewDense(6, 2, blocks())

			engine, err := NewEngine(cotrain.NewConfig(2).WithThreshold(5).WithStartView(tt.start).WithSeed(7))
			require.NoError(t, err)
			trajectory := cotrain.NewTrajectory()

			outcome, err := engine.
				WithPartitioner(tt.partitioner).
				AddObserver(trajectory).
				AddObserver(cotrain.LogObserver{}).
				Run(view1, view2)
			require.NoError(t, err)

			assert.NotEmpty(t, outcome.RunID)
			assert.Len(t, outcome.Labels, 6)
			assert.Len(t, outcome.Labels.Distinct(), 2)
			assert.Equal(t, outcome.Labels[0], outcome.Labels[1])
			assert.Equal(t, outcome.Labels[0], outcome.Labels[2])
			assert.Equal(t, outcome.Labels[3], outcome.Labels[4])
			assert.Equal(t, outcome.Labels[3], outcome.Labels[5])
			assert.NotEqual(t, outcome.Labels[0], outcome.Labels[3])
			for _, l := range outcome.Labels {
				assert.True(t, l >= 1 && l <= 2)
			}

			assert.Equal(t, 1.0, outcome.Agreement)
			assert.True(t, outcome.Loop.Converged)
			assert.Len(t, trajectory.Rounds, outcome.Loop.Iterations)

			// inputs stay untouched
			assert.Equal(t, blocks(), view1.RawMatrix().Data)
		})
	}
}

func TestEngine_NoSharedLabels(t *testing.T) {
	view1 := mat.NewDense(6, 2, blocks())
	// a view without signal never produces a consensus direction
	view2 := mat.NewDense(6, 2, nil)

	engine, err := NewEngine(cotrain.NewConfig(2).WithThreshold(1))
	require.NoError(t, err)

	_, err = engine.WithPartitioner(ml.Fixed{1, 1, 1, 2, 2, 2}).Run(view1, view2)
	assert.ErrorIs(t, err, consensus.ErrNoSharedLabels)
}

func TestEngine_Errors(t *testing.T) {
	_, err := NewEngine(cotrain.NewConfig(0))
	assert.ErrorIs(t, err, cotrain.ErrInvalidK)

	engine, err := NewEngine(cotrain.NewConfig(2))
	require.NoError(t, err)
	_, err = engine.Run(mat.NewDense(3, 2, nil), mat.NewDense(2, 2, nil))
	assert.ErrorIs(t, err, sphere.ErrDimensionMismatch)
}
