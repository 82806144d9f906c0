package htmlmin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/alnah/go-htmlmin/engine"
	"github.com/alnah/go-htmlmin/feature"
)

// counterValue sums the samples of a counter family matching labels.
func counterValue(t *testing.T, g prometheus.Gatherer, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := g.Gather()
	if err != nil {
		t.Fatalf("unexpected gather error: %v", err)
	}
	var total float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					continue metrics
				}
			}
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func TestMetrics_Recorded(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := quietMinifier(WithMetrics(NewMetrics(reg)))

	const input = "<div>  <p>x</p>  </div>"
	opts := withFeatures(
		feature.Pair{Key: "collapseWhitespace", Value: "all"},
		feature.Pair{Key: "minifyCss", Value: map[string]any{}},
	)
	out, err := m.Process(context.Background(), input, opts, emptyPreset())
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if _, err := m.Process(context.Background(), input, withFeatures(feature.Pair{Key: "minifyPhp", Value: true}), emptyPreset()); err == nil {
		t.Fatal("Process() with an unknown feature succeeded")
	}

	checks := []struct {
		name   string
		labels map[string]string
		want   float64
	}{
		{"htmlmin_runs_total", map[string]string{"status": "ok"}, 1},
		{"htmlmin_runs_total", map[string]string{"status": "error"}, 1},
		{"htmlmin_module_resolutions_total", map[string]string{"feature": "collapseWhitespace", "status": "ok"}, 1},
		{"htmlmin_engine_probes_total", map[string]string{"engine": engine.CSS, "status": "absent"}, 1},
		{"htmlmin_processed_bytes_total", map[string]string{"direction": "in"}, float64(len(input))},
		{"htmlmin_processed_bytes_total", map[string]string{"direction": "out"}, float64(len(out))},
	}
	for _, c := range checks {
		if got := counterValue(t, reg, c.name, c.labels); got != c.want {
			t.Errorf("%s%v = %v, want %v", c.name, c.labels, got, c.want)
		}
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("unexpected gather error: %v", err)
	}
	found := false
	for _, mf := range families {
		if mf.GetName() == "htmlmin_transform_duration_seconds" {
			found = len(mf.GetMetric()) == 2
		}
	}
	if !found {
		t.Error("htmlmin_transform_duration_seconds: want one series per transform")
	}
}

func TestMetrics_FailedProbe(t *testing.T) {
	t.Parallel()

	engines := engine.NewRegistry()
	engines.Set(engine.JS, func() (engine.Engine, error) { return nil, errors.New("broken install") })
	reg := prometheus.NewRegistry()
	m := quietMinifier(WithEngines(engines), WithMetrics(NewMetrics(reg)))

	opts := withFeatures(feature.Pair{Key: "minifyJs", Value: true})
	_, err := m.Process(context.Background(), "<script>a()</script>", opts, emptyPreset())
	if !errors.Is(err, ErrOptionalDependencyProbe) {
		t.Fatalf("error = %v, want ErrOptionalDependencyProbe", err)
	}

	labels := map[string]string{"engine": engine.JS, "status": "failed"}
	if got := counterValue(t, reg, "htmlmin_engine_probes_total", labels); got != 1 {
		t.Errorf("htmlmin_engine_probes_total%v = %v, want 1", labels, got)
	}
	if got := counterValue(t, reg, "htmlmin_module_resolutions_total", nil); got != 0 {
		t.Errorf("htmlmin_module_resolutions_total = %v, want 0", got)
	}
}

func TestMetrics_Nil(t *testing.T) {
	t.Parallel()

	var m *Metrics
	m.observeRun(time.Time{}, nil)
	m.observeResolve("x", nil)
	m.observeProbe(engine.Result{Name: engine.CSS})
	m.observeBytes(1, 1)
}
