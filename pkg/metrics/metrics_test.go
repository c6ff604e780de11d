package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	// Verify all metrics are initialized
	if r.RunsTotal == nil {
		t.Error("RunsTotal not initialized")
	}
	if r.StageDuration == nil {
		t.Error("StageDuration not initialized")
	}
	if r.ModelVariablesTotal == nil {
		t.Error("ModelVariablesTotal not initialized")
	}
	if r.SolvesTotal == nil {
		t.Error("SolvesTotal not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	// Should return the same instance
	r1 := DefaultRegistry()
	r2 := DefaultRegistry()

	if r1 != r2 {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordRun(t *testing.T) {
	r := NewRegistry()

	r.RecordRun("success", 100*time.Millisecond)
	r.RecordRun("success", 200*time.Millisecond)
	r.RecordRun("error", 50*time.Millisecond)

	successCounter, err := r.RunsTotal.GetMetricWithLabelValues("success")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	var metric dto.Metric
	if err := successCounter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}

	if metric.Counter.GetValue() != 2 {
		t.Errorf("Success counter = %v, want 2", metric.Counter.GetValue())
	}

	errorCounter, err := r.RunsTotal.GetMetricWithLabelValues("error")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	if err := errorCounter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}

	if metric.Counter.GetValue() != 1 {
		t.Errorf("Error counter = %v, want 1", metric.Counter.GetValue())
	}
}

func TestRecordStage(t *testing.T) {
	r := NewRegistry()

	r.RecordStage("synthesize", 10*time.Millisecond)
	r.RecordStage("compile", 20*time.Millisecond)
	r.RecordStage("compile", 30*time.Millisecond)

	histogram, err := r.StageDuration.GetMetricWithLabelValues("compile")
	if err != nil {
		t.Fatalf("Failed to get histogram: %v", err)
	}

	var metric dto.Metric
	if err := histogram.(prometheus.Histogram).Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}

	if metric.Histogram.GetSampleCount() != 2 {
		t.Errorf("Compile sample count = %v, want 2", metric.Histogram.GetSampleCount())
	}

	// Sum should be approximately 0.05 (0.02 + 0.03)
	sum := metric.Histogram.GetSampleSum()
	if sum < 0.049 || sum > 0.051 {
		t.Errorf("Compile sample sum = %v, want ~0.05", sum)
	}
}

func TestRecordSolve(t *testing.T) {
	r := NewRegistry()

	r.RecordSolve("Optimal", 500*time.Millisecond)
	r.RecordSolve("Optimal", 700*time.Millisecond)
	r.RecordSolve("Infeasible", 100*time.Millisecond)

	counter, err := r.SolvesTotal.GetMetricWithLabelValues("Optimal")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}

	if metric.Counter.GetValue() != 2 {
		t.Errorf("Optimal counter = %v, want 2", metric.Counter.GetValue())
	}

	if err := r.SolveDuration.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}

	if metric.Histogram.GetSampleCount() != 3 {
		t.Errorf("Solve duration samples = %v, want 3", metric.Histogram.GetSampleCount())
	}
}

func TestSizeGauges(t *testing.T) {
	r := NewRegistry()

	r.SetNetworkSize(19, 22)
	r.SetModelSize(141, 119)
	r.SetSurplus(12345.6)
	r.SetPricesDiscovered(3)

	tests := []struct {
		name     string
		gauge    prometheus.Gauge
		expected float64
	}{
		{"NetworkNodesTotal", r.NetworkNodesTotal, 19},
		{"NetworkArcsTotal", r.NetworkArcsTotal, 22},
		{"ModelVariablesTotal", r.ModelVariablesTotal, 141},
		{"ModelRowsTotal", r.ModelRowsTotal, 119},
		{"SolveSurplus", r.SolveSurplus, 12345.6},
		{"PricesDiscovered", r.PricesDiscovered, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var metric dto.Metric
			if err := tt.gauge.Write(&metric); err != nil {
				t.Fatalf("Failed to write metric: %v", err)
			}

			if metric.Gauge.GetValue() != tt.expected {
				t.Errorf("%s = %v, want %v", tt.name, metric.Gauge.GetValue(), tt.expected)
			}
		})
	}
}

func TestGetPrometheusRegistry(t *testing.T) {
	r := NewRegistry()
	promRegistry := r.GetPrometheusRegistry()

	if promRegistry == nil {
		t.Fatal("GetPrometheusRegistry() returned nil")
	}

	// Verify we can gather metrics
	metrics, err := promRegistry.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	if len(metrics) == 0 {
		t.Error("No metrics registered")
	}

	// Verify some expected metrics exist
	expectedMetrics := []string{
		"h2plan_runs_total",
		"h2plan_model_variables_total",
		"h2plan_solve_duration_seconds",
	}

	metricNames := make(map[string]bool)
	for _, m := range metrics {
		metricNames[m.GetName()] = true
	}

	for _, expected := range expectedMetrics {
		if !metricNames[expected] {
			t.Errorf("Expected metric %s not found", expected)
		}
	}
}

func TestMetricNaming(t *testing.T) {
	r := NewRegistry()
	promRegistry := r.GetPrometheusRegistry()

	metrics, err := promRegistry.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	// Verify all metrics have the h2plan_ prefix
	for _, m := range metrics {
		name := m.GetName()
		if !strings.HasPrefix(name, "h2plan_") {
			t.Errorf("Metric %s does not have h2plan_ prefix", name)
		}
	}
}

func TestConcurrentMetricUpdates(t *testing.T) {
	r := NewRegistry()

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				r.RecordStage("solve", 10*time.Millisecond)
			}
			done <- true
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}

	histogram, err := r.StageDuration.GetMetricWithLabelValues("solve")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	var metric dto.Metric
	if err := histogram.(prometheus.Histogram).Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}

	// Should have 1000 total observations (10 goroutines * 100 stages)
	if metric.Histogram.GetSampleCount() != 1000 {
		t.Errorf("Sample count = %v, want 1000", metric.Histogram.GetSampleCount())
	}
}

func BenchmarkRecordStage(b *testing.B) {
	r := NewRegistry()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.RecordStage("compile", 10*time.Millisecond)
	}
}

func BenchmarkSetGauge(b *testing.B) {
	r := NewRegistry()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.ModelVariablesTotal.Set(float64(i))
	}
}
