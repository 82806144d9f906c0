package htmlmin

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/alnah/go-htmlmin/engine"
)

// DurationBuckets suit minification latencies, from 0.5ms to 5s.
var DurationBuckets = []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

// Metrics holds the Prometheus collectors of a Minifier. A nil *Metrics
// records nothing.
type Metrics struct {
	RunsTotal         *prometheus.CounterVec
	RunDuration       prometheus.Histogram
	ModuleLoadsTotal  *prometheus.CounterVec
	EngineProbesTotal *prometheus.CounterVec
	TransformDuration *prometheus.HistogramVec
	ProcessedBytes    *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// It panics if registration fails, like prometheus.MustRegister.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "htmlmin_runs_total",
				Help: "Minification runs",
			},
			[]string{"status"},
		),
		RunDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "htmlmin_run_duration_seconds",
				Help:    "Minification run duration",
				Buckets: DurationBuckets,
			},
		),
		ModuleLoadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "htmlmin_module_resolutions_total",
				Help: "Feature module resolutions",
			},
			[]string{"feature", "status"},
		),
		EngineProbesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "htmlmin_engine_probes_total",
				Help: "Optional engine probes",
			},
			[]string{"engine", "status"},
		),
		TransformDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "htmlmin_transform_duration_seconds",
				Help:    "Whole-tree transform duration",
				Buckets: DurationBuckets,
			},
			[]string{"feature"},
		),
		ProcessedBytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "htmlmin_processed_bytes_total",
				Help: "HTML bytes read and written by Process",
			},
			[]string{"direction"},
		),
	}
	reg.MustRegister(
		m.RunsTotal,
		m.RunDuration,
		m.ModuleLoadsTotal,
		m.EngineProbesTotal,
		m.TransformDuration,
		m.ProcessedBytes,
	)
	return m
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) observeRun(start time.Time, err error) {
	if m == nil {
		return
	}
	m.RunsTotal.WithLabelValues(statusLabel(err)).Inc()
	m.RunDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) observeResolve(name string, err error) {
	if m == nil {
		return
	}
	m.ModuleLoadsTotal.WithLabelValues(name, statusLabel(err)).Inc()
}

func (m *Metrics) observeProbe(res engine.Result) {
	if m == nil {
		return
	}
	m.EngineProbesTotal.WithLabelValues(res.Name, res.Status.String()).Inc()
}

func (m *Metrics) observeTransform(name string, start time.Time) {
	if m == nil {
		return
	}
	m.TransformDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
}

func (m *Metrics) observeBytes(in, out int) {
	if m == nil {
		return
	}
	m.ProcessedBytes.WithLabelValues("in").Add(float64(in))
	m.ProcessedBytes.WithLabelValues("out").Add(float64(out))
}
