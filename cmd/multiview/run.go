package main

import (
	"fmt"
	"io"

	"github.com/drakos74/multiview/infra/config"
	multiview "github.com/drakos74/multiview/internal"
	"github.com/drakos74/multiview/internal/buffer"
	"github.com/drakos74/multiview/internal/cotrain"
	"github.com/drakos74/multiview/internal/math/ml"
	"github.com/drakos74/multiview/internal/metrics"
	"github.com/drakos74/multiview/internal/storage"
	"github.com/drakos74/multiview/internal/storage/file"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

const (
	tableName = storage.RunsTable
	configKey = "multiview"
)

// Options are the command line arguments.
// Unset flags leave the config file or default value in place.
type Options struct {
	View1         string `long:"view1" required:"true" description:"CSV file of the first view, one item per row."`
	View2         string `long:"view2" required:"true" description:"CSV file of the second view, same item order as the first."`
	K             *int   `short:"k" long:"clusters" description:"Number of clusters of the initial partition."`
	StartView     *int   `short:"s" long:"start-view" choice:"1" choice:"2" description:"View seeded by the initial partition."`
	Threshold     *int   `short:"t" long:"threshold" description:"Evaluations without improvement tolerated per view."`
	Restarts      *int   `short:"r" long:"restarts" description:"Restarts of the initial k-means."`
	Seed          *int64 `long:"seed" description:"Seed of the initial k-means."`
	MaxIterations *int   `long:"max-iterations" description:"Cap on the co-training iterations."`
	Config        string `short:"c" long:"config" description:"JSON configuration file, defaults to infra/config/multiview.json when present."`
	Out           string `short:"o" long:"out" description:"Directory to persist the run in."`
	MetricsPort   int    `long:"metrics-port" description:"Expose prometheus metrics on this port."`
	Debug         bool   `short:"d" long:"debug" description:"Log every co-training round."`
}

// Resolve resolves the co-training config from the defaults, the config file and the flags.
func (o Options) Resolve() (cotrain.Config, error) {
	cfg := cotrain.NewConfig(0)
	switch {
	case o.Config != "":
		if err := config.Load(o.Config, &cfg); err != nil {
			return cfg, err
		}
	case config.Exists(configKey):
		config.MustLoad(configKey, &cfg)
	}
	if o.K != nil {
		cfg.K = *o.K
	}
	if o.StartView != nil {
		cfg.StartView = cotrain.View(*o.StartView)
	}
	if o.Threshold != nil {
		cfg.Threshold = *o.Threshold
	}
	if o.Restarts != nil {
		cfg.Restarts = *o.Restarts
	}
	if o.Seed != nil {
		cfg.Seed = *o.Seed
	}
	if o.MaxIterations != nil {
		cfg.MaxIterations = *o.MaxIterations
	}
	return cfg, cfg.Validate()
}

// Report is the persisted summary of a run.
type Report struct {
	Config     cotrain.Config    `json:"config"`
	Items      int               `json:"items"`
	Clusters   int               `json:"clusters"`
	Agreement  float64           `json:"agreement"`
	Iterations int               `json:"iterations"`
	Converged  bool              `json:"converged"`
	Objective  [2]buffer.Summary `json:"objective"`
}

func run(opts Options, out io.Writer, shard storage.Shard) error {
	cfg, err := opts.Resolve()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	view1, err := file.ReadView(opts.View1)
	if err != nil {
		return err
	}
	view2, err := file.ReadView(opts.View2)
	if err != nil {
		return err
	}

	engine, err := multiview.NewEngine(cfg)
	if err != nil {
		return err
	}
	trajectory := cotrain.NewTrajectory()
	engine.WithPartitioner(ml.NewKMeans(ml.DefaultIterations)).
		AddObserver(trajectory).
		AddObserver(cotrain.LogObserver{})

	if opts.MetricsPort != 0 {
		m, err := metrics.New(prometheus.DefaultRegisterer)
		if err != nil {
			return err
		}
		engine.AddObserver(m)
		metrics.Serve(opts.MetricsPort)
	}

	outcome, err := engine.Run(view1, view2)
	if err != nil {
		return err
	}

	for _, l := range outcome.Labels {
		if _, err := fmt.Fprintln(out, l); err != nil {
			return fmt.Errorf("could not write labels: %w", err)
		}
	}

	store, err := shard(outcome.RunID)
	if err != nil {
		return fmt.Errorf("could not open storage: %w", err)
	}

	report := Report{
		Config:     cfg,
		Items:      len(outcome.Labels),
		Clusters:   outcome.Consensus.Len(),
		Agreement:  outcome.Agreement,
		Iterations: outcome.Loop.Iterations,
		Converged:  outcome.Loop.Converged,
		Objective: [2]buffer.Summary{
			trajectory.Summary(cotrain.View1).Summary(),
			trajectory.Summary(cotrain.View2).Summary(),
		},
	}

	artifacts := map[string]interface{}{
		"report":     report,
		"labels":     outcome.Labels,
		"consensus":  outcome.Consensus,
		"loop":       outcome.Loop,
		"trajectory": trajectory,
	}
	for label, value := range artifacts {
		k := storage.Key{Run: outcome.RunID, Label: label}
		if err := store.Store(k, value); err != nil {
			log.Error().Err(err).Str("key", k.Path()).Msg("could not persist run")
			return fmt.Errorf("could not store %s: %w", label, err)
		}
	}

	log.Info().
		Str("run", outcome.RunID).
		Int("clusters", report.Clusters).
		Float64("agreement", report.Agreement).
		Msg("run persisted")
	return nil
}
