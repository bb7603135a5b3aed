package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusObserver counts events by type and severity, exposing pipeline
// activity (runs, stage completions, recoveries) as Prometheus metrics.
// Register alongside a SlogObserver via MultiObserver to get both logs and
// metrics from the same event stream.
type PrometheusObserver struct {
	events *prometheus.CounterVec
}

// NewPrometheusObserver creates a PrometheusObserver and registers its
// collectors with reg.
func NewPrometheusObserver(reg prometheus.Registerer) (*PrometheusObserver, error) {
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "verdict_events_total",
		Help: "Observability events emitted by the verdict pipeline, by type and severity.",
	}, []string{"type", "level"})

	if err := reg.Register(events); err != nil {
		return nil, err
	}

	return &PrometheusObserver{events: events}, nil
}

func (o *PrometheusObserver) OnEvent(ctx context.Context, event Event) {
	o.events.WithLabelValues(string(event.Type), event.Level.String()).Inc()
}
