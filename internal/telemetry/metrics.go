package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's collectors on their own registry.
type Metrics struct {
	registry    *prometheus.Registry
	Assessments *prometheus.CounterVec
	Latency     prometheus.Histogram
	ModelInfo   *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		Assessments: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cardiorisk_assessments_total",
				Help: "Assessments by resulting tier, or by failure kind.",
			},
			[]string{"result"},
		),
		Latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cardiorisk_assessment_duration_seconds",
			Help:    "Time spent building features and scoring one profile.",
			Buckets: prometheus.ExponentialBuckets(0.00005, 4, 8),
		}),
		ModelInfo: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cardiorisk_model_info",
				Help: "Set to 1 for the loaded model artifact.",
			},
			[]string{"source", "kind"},
		),
	}
	reg.MustRegister(
		m.Assessments,
		m.Latency,
		m.ModelInfo,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RecordAssessment counts one assessment. result is a tier name or a
// failure kind.
func (m *Metrics) RecordAssessment(result string, d time.Duration) {
	m.Assessments.WithLabelValues(result).Inc()
	m.Latency.Observe(d.Seconds())
}

func (m *Metrics) SetModel(source, kind string) {
	m.ModelInfo.Reset()
	m.ModelInfo.WithLabelValues(source, kind).Set(1)
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
