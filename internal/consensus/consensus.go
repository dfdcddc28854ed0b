package consensus

import (
	"errors"
	"fmt"

	"github.com/drakos74/multiview/internal/math/sphere"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrNoSharedLabels = errors.New("no label is shared between the two views")
)

// Means are the per-view consensus directions, index aligned on Labels.
type Means struct {
	Labels []int       `json:"labels"`
	View1  [][]float64 `json:"view1"`
	View2  [][]float64 `json:"view2"`
}

// Len returns the number of consensus clusters.
func (m Means) Len() int {
	return len(m.Labels)
}

// Build computes the consensus means of the labels present in both label vectors.
// Only items on which both views agree contribute to the mean of a label.
func Build(view1, view2 *mat.Dense, labels1, labels2 sphere.Labels) (Means, error) {
	if len(labels1) != len(labels2) {
		return Means{}, fmt.Errorf("labels [ %d | %d ]: %w", len(labels1), len(labels2), sphere.ErrDimensionMismatch)
	}

	agreement := make(map[int][]int)
	for i := range labels1 {
		if labels1[i] == labels2[i] {
			agreement[labels1[i]] = append(agreement[labels1[i]], i)
		}
	}

	means := Means{
		Labels: make([]int, 0),
		View1:  make([][]float64, 0),
		View2:  make([][]float64, 0),
	}
	for _, l := range shared(labels1, labels2) {
		rows, ok := agreement[l]
		if !ok {
			log.Debug().Int("label", l).Msg("no agreement for shared label")
			continue
		}
		m1 := sphere.Mean(view1, rows)
		m2 := sphere.Mean(view2, rows)
		if m1 == nil || m2 == nil {
			log.Debug().Int("label", l).Int("rows", len(rows)).Msg("agreeing rows have no direction")
			continue
		}
		means.Labels = append(means.Labels, l)
		means.View1 = append(means.View1, m1)
		means.View2 = append(means.View2, m2)
	}

	if means.Len() == 0 {
		return Means{}, ErrNoSharedLabels
	}
	return means, nil
}

// shared returns the labels present in both vectors, in ascending order.
// Unassigned rows never form a cluster.
func shared(labels1, labels2 sphere.Labels) []int {
	in2 := make(map[int]struct{})
	for _, l := range labels2 {
		in2[l] = struct{}{}
	}
	labels := make([]int, 0)
	for _, l := range labels1.Distinct() {
		if l == sphere.Unassigned {
			continue
		}
		if _, ok := in2[l]; ok {
			labels = append(labels, l)
		}
	}
	return labels
}
