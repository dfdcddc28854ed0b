package cotrain

import (
	"fmt"
	"math"

	"github.com/drakos74/multiview/internal/math/ml"
	"github.com/drakos74/multiview/internal/math/sphere"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"
)

// state is the per-view part of the loop.
type state struct {
	view    View
	data    *mat.Dense
	labels  sphere.Labels
	centers sphere.Centers
	max     float64
	stall   int
}

// evaluate updates the running maximum and the stall counter of the view.
func (s *state) evaluate() float64 {
	o := sphere.Objective(s.data, s.centers, s.labels)
	if o > s.max {
		s.max = o
		s.stall = 0
	} else {
		s.stall++
	}
	return o
}

// Result is the terminal state of the loop, indexed by view.
type Result struct {
	Labels     [2]sphere.Labels  `json:"labels"`
	Centers    [2]sphere.Centers `json:"-"`
	Objective  [2]float64        `json:"objective"`
	Iterations int               `json:"iterations"`
	Converged  bool              `json:"converged"`
}

// For returns the labels and centers of the given view.
func (r Result) For(v View) (sphere.Labels, sphere.Centers) {
	return r.Labels[v.index()], r.Centers[v.index()]
}

// Loop alternates the spherical k-means steps between the two views.
type Loop struct {
	config      Config
	partitioner ml.Partitioner
	observer    Observer

	states [2]*state
	// activeIndex points at the view re-estimated in the current iteration.
	activeIndex int
}

// NewLoop creates a new co-training loop.
func NewLoop(config Config, partitioner ml.Partitioner) *Loop {
	if partitioner == nil {
		partitioner = ml.NewKMeans(ml.DefaultIterations)
	}
	return &Loop{
		config:      config,
		partitioner: partitioner,
		observer:    VoidObserver{},
	}
}

// WithObserver registers the observer of the loop iterations.
func (l *Loop) WithObserver(observer Observer) *Loop {
	if observer != nil {
		l.observer = observer
	}
	return l
}

func (l *Loop) active() *state {
	return l.states[l.activeIndex]
}

func (l *Loop) passive() *state {
	return l.states[1-l.activeIndex]
}

func (l *Loop) swap() {
	l.activeIndex = 1 - l.activeIndex
}

func (l *Loop) stalled() bool {
	for _, s := range l.states {
		if s.stall <= l.config.Threshold {
			return false
		}
	}
	return true
}

// Run co-trains the two normalized views until both stall.
func (l *Loop) Run(view1, view2 *mat.Dense) (Result, error) {
	if err := l.config.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid config: %w", err)
	}
	if err := sphere.Validate(view1, view2); err != nil {
		return Result{}, fmt.Errorf("invalid views: %w", err)
	}

	l.states = [2]*state{
		{view: View1, data: view1, max: math.Inf(-1)},
		{view: View2, data: view2, max: math.Inf(-1)},
	}

	start := l.states[l.config.StartView.index()]
	labels, centers, err := l.partitioner.Partition(start.data, l.config.K, l.config.Restarts, l.config.Seed)
	if err != nil {
		return Result{}, fmt.Errorf("could not partition %s: %w", start.view, err)
	}
	start.labels = labels
	start.centers = centers
	l.activeIndex = l.config.StartView.Other().index()

	log.Info().
		Str("start", start.view.String()).
		Int("k", l.config.K).
		Int("clusters", len(centers)).
		Int("threshold", l.config.Threshold).
		Msg("co-training started")

	result := Result{}
	for iteration := 1; ; iteration++ {
		a, p := l.active(), l.passive()
		a.centers = sphere.Estimate(a.data, p.labels)
		a.labels = sphere.Assign(a.data, a.centers)

		round := Round{
			Iteration: iteration,
			Active:    a.view,
			Objective: sphere.Objective(a.data, a.centers, a.labels),
			Clusters:  len(a.centers),
			Labels:    a.labels.Copy(),
		}

		// both views have had their turn
		if iteration%2 == 0 {
			round.Evaluated = true
			for _, s := range l.states {
				s.evaluate()
			}
		}
		for i, s := range l.states {
			round.Stalls[i] = s.stall
		}
		l.observer.Observe(round)

		result.Iterations = iteration
		if round.Evaluated && l.stalled() {
			result.Converged = true
			break
		}
		if l.config.MaxIterations > 0 && iteration >= l.config.MaxIterations {
			log.Warn().
				Int("iterations", iteration).
				Ints("stalls", round.Stalls[:]).
				Msg("co-training reached the iteration cap before converging")
			break
		}
		l.swap()
	}

	for i, s := range l.states {
		result.Labels[i] = s.labels
		result.Centers[i] = s.centers
		result.Objective[i] = s.max
		if math.IsInf(s.max, -1) {
			// stopped before the first evaluation
			result.Objective[i] = sphere.Objective(s.data, s.centers, s.labels)
		}
	}

	log.Info().
		Int("iterations", result.Iterations).
		Bool("converged", result.Converged).
		Floats64("objective", result.Objective[:]).
		Msg("co-training finished")

	return result, nil
}
