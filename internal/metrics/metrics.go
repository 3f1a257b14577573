// Package metrics counts menu actions and exports them in the Prometheus
// text format for the node_exporter textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds action counters and durations.
type Recorder struct {
	registry       *prometheus.Registry
	actionsTotal   *prometheus.CounterVec
	actionDuration *prometheus.HistogramVec
	cronEntries    prometheus.Counter
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder(namespace string) *Recorder {
	reg := prometheus.NewRegistry()

	r := &Recorder{
		registry: reg,
		actionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "actions_total",
				Help:      "Total number of menu actions by outcome",
			},
			[]string{"action", "status"},
		),
		actionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "action_duration_seconds",
				Help:      "Duration of menu actions",
				Buckets:   []float64{.1, .5, 1, 5, 30, 60, 300, 900, 3600},
			},
			[]string{"action"},
		),
		cronEntries: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "crontab_entries_installed_total",
				Help:      "Number of crontab entries appended",
			},
		),
	}

	reg.MustRegister(r.actionsTotal, r.actionDuration, r.cronEntries)
	return r
}

// ObserveAction records one finished action.
func (r *Recorder) ObserveAction(action string, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	r.actionsTotal.WithLabelValues(action, status).Inc()
	r.actionDuration.WithLabelValues(action).Observe(d.Seconds())
}

// CrontabEntryInstalled counts an appended crontab line.
func (r *Recorder) CrontabEntryInstalled() {
	r.cronEntries.Inc()
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes all metrics to path. An empty path is a no-op.
func (r *Recorder) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
