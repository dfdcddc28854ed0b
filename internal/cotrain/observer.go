package cotrain

import (
	"github.com/drakos74/multiview/internal/buffer"
	"github.com/drakos74/multiview/internal/math/sphere"
	"github.com/rs/zerolog/log"
)

// Round is the snapshot of one co-training iteration.
type Round struct {
	Iteration int           `json:"iteration"`
	Active    View          `json:"active"`
	Objective float64       `json:"objective"`
	Clusters  int           `json:"clusters"`
	Evaluated bool          `json:"evaluated"`
	Stalls    [2]int        `json:"stalls"`
	Labels    sphere.Labels `json:"labels"`
}

// Observer is notified once per iteration.
type Observer interface {
	Observe(round Round)
}

// ObserverFunc adapts a function to an Observer.
type ObserverFunc func(round Round)

func (f ObserverFunc) Observe(round Round) {
	f(round)
}

// Observers fans out every round to all observers.
type Observers []Observer

func (oo Observers) Observe(round Round) {
	for _, o := range oo {
		if o != nil {
			o.Observe(round)
		}
	}
}

// VoidObserver ignores all rounds.
type VoidObserver struct {
}

func (v VoidObserver) Observe(round Round) {
}

// LogObserver logs every round at debug level.
type LogObserver struct {
}

func (l LogObserver) Observe(round Round) {
	log.Debug().
		Int("iteration", round.Iteration).
		Str("active", round.Active.String()).
		Float64("objective", round.Objective).
		Int("clusters", round.Clusters).
		Bool("evaluated", round.Evaluated).
		Ints("stalls", round.Stalls[:]).
		Msg("co-training round")
}

// Trajectory keeps the history of rounds for diagnostics.
type Trajectory struct {
	Rounds []Round `json:"rounds"`
}

// NewTrajectory creates a new empty trajectory.
func NewTrajectory() *Trajectory {
	return &Trajectory{Rounds: make([]Round, 0)}
}

func (t *Trajectory) Observe(round Round) {
	t.Rounds = append(t.Rounds, round)
}

// Labels returns the label vectors the given view went through.
func (t *Trajectory) Labels(v View) []sphere.Labels {
	labels := make([]sphere.Labels, 0)
	for _, r := range t.Rounds {
		if r.Active == v {
			labels = append(labels, r.Labels)
		}
	}
	return labels
}

// Summary returns the statistics of the objective for the given view.
func (t *Trajectory) Summary(v View) *buffer.Stats {
	stats := buffer.NewStats()
	for _, r := range t.Rounds {
		if r.Active == v {
			stats.Push(r.Objective)
		}
	}
	return stats
}
