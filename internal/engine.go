package multiview

import (
	"errors"
	"fmt"

	"github.com/drakos74/multiview/internal/consensus"
	"github.com/drakos74/multiview/internal/cotrain"
	"github.com/drakos74/multiview/internal/math/ml"
	"github.com/drakos74/multiview/internal/math/sphere"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"
)

// Outcome is the result of clustering two views.
type Outcome struct {
	RunID     string          `json:"run_id"`
	Labels    sphere.Labels   `json:"labels"`
	Consensus consensus.Means `json:"consensus"`
	Agreement float64         `json:"agreement"`
	Loop      cotrain.Result  `json:"loop"`
}

// Engine runs the full multi-view clustering pipeline.
type Engine struct {
	config      cotrain.Config
	partitioner ml.Partitioner
	observers   cotrain.Observers
}

// NewEngine creates a new engine for the given config.
func NewEngine(config cotrain.Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("could not create engine: %w", err)
	}
	return &Engine{
		config:      config,
		partitioner: ml.NewKMeans(ml.DefaultIterations),
		observers:   make(cotrain.Observers, 0),
	}, nil
}

// WithPartitioner replaces the default k-means initial partition.
func (e *Engine) WithPartitioner(partitioner ml.Partitioner) *Engine {
	e.partitioner = partitioner
	return e
}

// AddObserver registers an observer of the co-training rounds.
func (e *Engine) AddObserver(observer cotrain.Observer) *Engine {
	e.observers = append(e.observers, observer)
	return e
}

// Run clusters the items described by the two views.
// The input matrices are not modified.
func (e *Engine) Run(view1, view2 mat.Matrix) (Outcome, error) {
	if err := sphere.Validate(view1, view2); err != nil {
		return Outcome{}, fmt.Errorf("invalid input: %w", err)
	}
	id := uuid.New().String()

	v1 := sphere.Normalize(view1)
	v2 := sphere.Normalize(view2)
	for i, v := range []*mat.Dense{v1, v2} {
		if err := sphere.Degenerate(v); errors.Is(err, sphere.ErrDegenerateView) {
			log.Warn().
				Err(err).
				Str("run", id).
				Int("view", i+1).
				Msg("view carries no signal")
		}
	}

	result, err := cotrain.NewLoop(e.config, e.partitioner).
		WithObserver(e.observers).
		Run(v1, v2)
	if err != nil {
		log.Error().Err(err).Str("run", id).Msg("co-training failed")
		return Outcome{}, fmt.Errorf("could not co-train views: %w", err)
	}

	means, err := consensus.Build(v1, v2, result.Labels[0], result.Labels[1])
	if err != nil {
		log.Error().Err(err).Str("run", id).Msg("could not build consensus")
		return Outcome{}, fmt.Errorf("could not build consensus: %w", err)
	}

	// the final assignment works on freshly normalized views
	v1 = sphere.Normalize(view1)
	v2 = sphere.Normalize(view2)
	labels := consensus.Assign(v1, v2, means)
	agreement := consensus.Agreement(result.Labels[0], result.Labels[1], means)

	log.Info().
		Str("run", id).
		Int("clusters", means.Len()).
		Float64("agreement", agreement).
		Int("iterations", result.Iterations).
		Bool("converged", result.Converged).
		Msg("multi-view clustering done")

	return Outcome{
		RunID:     id,
		Labels:    labels,
		Consensus: means,
		Agreement: agreement,
		Loop:      result,
	}, nil
}
