package metrics

import (
	"fmt"
	"net/http"

	"github.com/drakos74/multiview/internal/cotrain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Metrics exports the co-training rounds to prometheus.
type Metrics struct {
	prometheus Prometheus
}

// New creates the metrics and registers them with the given registerer.
func New(registerer prometheus.Registerer) (*Metrics, error) {
	p := NewPrometheusMetrics()
	if err := p.Register(registerer); err != nil {
		return nil, fmt.Errorf("could not register metrics: %w", err)
	}
	return &Metrics{prometheus: p}, nil
}

// Observe implements cotrain.Observer.
func (m *Metrics) Observe(round cotrain.Round) {
	view := round.Active.String()
	m.prometheus.Rounds.WithLabelValues(view).Inc()
	m.prometheus.Objective.WithLabelValues(view).Set(round.Objective)
	m.prometheus.Clusters.WithLabelValues(view).Set(float64(round.Clusters))
	if round.Evaluated {
		for _, v := range []cotrain.View{cotrain.View1, cotrain.View2} {
			m.prometheus.Stalls.WithLabelValues(v.String()).Set(float64(round.Stalls[int(v)-1]))
		}
	}
}

// Serve exposes the default registry on the given port in the background.
func Serve(port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		err := http.ListenAndServe(fmt.Sprintf(":%d", port), mux)
		if err != nil {
			log.Error().Err(err).Int("port", port).Msg("metrics server stopped")
		}
	}()
	log.Info().Int("port", port).Msg("serving metrics")
}
