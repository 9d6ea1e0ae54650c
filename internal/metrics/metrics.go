// Package metrics exposes allocation counters through a private Prometheus
// registry.
package metrics

import (
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rhyrak/lecture-scheduler/pkg/model"
)

const (
	RunSuccess = "success"
	RunFailed  = "failed"
)

// Service records placements, constraint warnings and whole runs. It
// satisfies scheduler.Recorder.
type Service struct {
	registry    *prometheus.Registry
	handler     http.Handler
	placements  *prometheus.CounterVec
	warnings    prometheus.Counter
	runs        *prometheus.CounterVec
	runDuration prometheus.Histogram
}

func NewService() *Service {
	registry := prometheus.NewRegistry()

	placements := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduler_placements_total",
		Help: "Placements produced, by outcome",
	}, []string{"outcome"})

	warnings := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_constraint_warnings_total",
		Help: "Available-times constraints that could not be parsed and were ignored",
	})

	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduler_runs_total",
		Help: "Allocation runs, by final status",
	}, []string{"status"})

	runDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "scheduler_run_duration_seconds",
		Help:    "Duration of allocation runs in seconds",
		Buckets: prometheus.DefBuckets,
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(placements, warnings, runs, runDuration, goroutines)

	return &Service{
		registry:    registry,
		handler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		placements:  placements,
		warnings:    warnings,
		runs:        runs,
		runDuration: runDuration,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (s *Service) Handler() http.Handler {
	if s == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return s.handler
}

func (s *Service) ObservePlacement(p *model.Placement) {
	if s == nil {
		return
	}
	s.placements.WithLabelValues(p.Outcome.String()).Inc()
}

func (s *Service) ObserveWarning() {
	if s == nil {
		return
	}
	s.warnings.Inc()
}

// ObserveRun records one finished run with status RunSuccess or RunFailed.
func (s *Service) ObserveRun(status string, elapsed time.Duration) {
	if s == nil {
		return
	}
	s.runs.WithLabelValues(status).Inc()
	s.runDuration.Observe(elapsed.Seconds())
}
