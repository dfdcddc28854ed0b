package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus holds the co-training collectors.
type Prometheus struct {
	Rounds    *prometheus.CounterVec
	Objective *prometheus.GaugeVec
	Stalls    *prometheus.GaugeVec
	Clusters  *prometheus.GaugeVec
}

func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Rounds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "multiview",
				Name:      "rounds_total",
				Help:      "co-training iterations per active view",
			}, []string{"view"}),
		Objective: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "multiview",
				Name:      "objective",
				Help:      "spherical k-means objective of the latest round",
			}, []string{"view"}),
		Stalls: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "multiview",
				Name:      "stalls",
				Help:      "evaluations without objective improvement",
			}, []string{"view"}),
		Clusters: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "multiview",
				Name:      "clusters",
				Help:      "effective number of clusters",
			}, []string{"view"}),
	}
}

// Register registers all collectors.
func (p Prometheus) Register(registerer prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{p.Rounds, p.Objective, p.Stalls, p.Clusters} {
		if err := registerer.Register(c); err != nil {
			return err
		}
	}
	return nil
}
