package ml

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"sync"

	"github.com/cdipaolo/goml/cluster"
	"github.com/drakos74/multiview/internal/math/sphere"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"
)

const (
	// DefaultRestarts is the number of independent k-means fits of the initial partition.
	DefaultRestarts = 10
	// DefaultIterations caps a single k-means fit.
	DefaultIterations = 100
)

var (
	ErrNotEnoughRows = errors.New("not enough rows for the requested clusters")
	ErrNoPartition   = errors.New("no partition found")
)

// Partitioner produces the starting labels and centers for one view.
type Partitioner interface {
	Partition(view *mat.Dense, k, restarts int, seed int64) (sphere.Labels, sphere.Centers, error)
}

// KMeans partitions a view with repeated k-means fits and keeps the one with the best spherical objective.
type KMeans struct {
	iterations int
}

// NewKMeans creates a new k-means partitioner.
func NewKMeans(iterations int) *KMeans {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &KMeans{iterations: iterations}
}

// random guards the global random source goml draws its initial centroids from.
var random sync.Mutex

// Partition runs the given number of restarts.
// Each restart seeds the global random source with seed+restart.
func (k *KMeans) Partition(view *mat.Dense, n, restarts int, seed int64) (sphere.Labels, sphere.Centers, error) {
	rows, _ := view.Dims()
	if n < 1 || rows < n {
		return nil, nil, fmt.Errorf("[ %d | %d ]: %w", rows, n, ErrNotEnoughRows)
	}
	if restarts < 1 {
		restarts = DefaultRestarts
	}

	var (
		bestLabels  sphere.Labels
		bestCenters sphere.Centers
		best        = math.Inf(-1)
	)

	for r := 0; r < restarts; r++ {
		guesses, err := k.fit(view, n, seed+int64(r))
		if err != nil {
			log.Warn().
				Err(err).
				Int("restart", r).
				Int("k", n).
				Msg("could not fit k-means")
			continue
		}
		labels := fromGuesses(guesses)
		centers := sphere.Estimate(view, labels)
		objective := sphere.Objective(view, centers, labels)
		log.Debug().
			Int("restart", r).
			Float64("objective", objective).
			Int("clusters", len(centers)).
			Msg("k-means restart")
		if objective > best {
			best = objective
			bestLabels = labels
			bestCenters = centers
		}
	}

	if bestLabels == nil {
		return nil, nil, fmt.Errorf("all %d restarts failed: %w", restarts, ErrNoPartition)
	}
	return bestLabels, bestCenters, nil
}

// fit runs a single k-means.
// goml seeds the global source from the clock in its constructor, so the seed has to be set after it.
func (k *KMeans) fit(view *mat.Dense, n int, seed int64) ([]int, error) {
	random.Lock()
	defer random.Unlock()

	model := cluster.NewKMeans(n, k.iterations, rowsOf(view))
	model.Output = io.Discard
	rand.Seed(seed)
	if err := model.Learn(); err != nil {
		return nil, err
	}
	return model.Guesses(), nil
}

// Fixed is a partitioner returning a pre-defined labeling.
type Fixed sphere.Labels

// Partition returns the fixed labels and the centers they define on the view.
func (f Fixed) Partition(view *mat.Dense, k, restarts int, seed int64) (sphere.Labels, sphere.Centers, error) {
	rows, _ := view.Dims()
	if len(f) != rows {
		return nil, nil, fmt.Errorf("fixed labels [ %d | %d ]: %w", len(f), rows, sphere.ErrDimensionMismatch)
	}
	labels := sphere.Labels(f).Copy()
	return labels, sphere.Estimate(view, labels), nil
}

func rowsOf(view *mat.Dense) [][]float64 {
	r, c := view.Dims()
	data := make([][]float64, r)
	for i := 0; i < r; i++ {
		row := make([]float64, c)
		copy(row, view.RawRowView(i))
		data[i] = row
	}
	return data
}

// fromGuesses shifts the zero-based goml clusters to labels starting at 1.
func fromGuesses(guesses []int) sphere.Labels {
	labels := make(sphere.Labels, len(guesses))
	for i, g := range guesses {
		labels[i] = g + 1
	}
	return labels
}
