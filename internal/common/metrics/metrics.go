// internal/common/metrics/metrics.go
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnswersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medqa_answers_total",
			Help: "Total number of questions answered, by pipeline outcome",
		},
		[]string{"outcome"},
	)

	IntentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medqa_intents_total",
			Help: "Total number of answers produced per intent",
		},
		[]string{"intent"},
	)

	LoadErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medqa_load_errors_total",
			Help: "Total number of non-fatal load diagnostics",
		},
		[]string{"source", "error_code"},
	)

	StoreEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "medqa_store_entries",
			Help: "Number of entries held by each in-memory store",
		},
		[]string{"store"},
	)
)

// Recorder forwards domain events to the package collectors.
type Recorder struct{}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) RecordAnswer(outcome, intent string) {
	AnswersTotal.WithLabelValues(outcome).Inc()
	if intent != "" {
		IntentsTotal.WithLabelValues(intent).Inc()
	}
}

func (r *Recorder) RecordLoadError(source, code string) {
	LoadErrorsTotal.WithLabelValues(source, code).Inc()
}

func (r *Recorder) SetStoreEntries(store string, n int) {
	StoreEntries.WithLabelValues(store).Set(float64(n))
}

// WriteTextfile dumps the default registry in the node-exporter textfile format.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
