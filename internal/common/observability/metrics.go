package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability records answer timings through an otel meter exported to
// the default Prometheus registry.
type Observability struct {
	meterProvider  *metric.MeterProvider
	meter          otelmetric.Meter
	answerCounter  otelmetric.Int64Counter
	answerDuration otelmetric.Float64Histogram
}

func New(serviceName string) (*Observability, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return &Observability{}, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	answerCounter, err := meter.Int64Counter(
		"answers_processed",
		otelmetric.WithDescription("Number of questions answered"),
	)
	if err != nil {
		return &Observability{meterProvider: provider}, err
	}

	answerDuration, err := meter.Float64Histogram(
		"answers_duration",
		otelmetric.WithDescription("Question answering duration"),
		otelmetric.WithUnit("ms"),
	)
	if err != nil {
		return &Observability{meterProvider: provider}, err
	}

	return &Observability{
		meterProvider:  provider,
		meter:          meter,
		answerCounter:  answerCounter,
		answerDuration: answerDuration,
	}, nil
}

// ObserveAnswer counts one answer and records how long it took.
func (o *Observability) ObserveAnswer(ctx context.Context, outcome string, duration time.Duration) {
	attrs := otelmetric.WithAttributes(attribute.String("outcome", outcome))
	if o.answerCounter != nil {
		o.answerCounter.Add(ctx, 1, attrs)
	}
	if o.answerDuration != nil {
		o.answerDuration.Record(ctx, float64(duration.Microseconds())/1000, attrs)
	}
}

func (o *Observability) Shutdown() error {
	if o.meterProvider == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return o.meterProvider.Shutdown(ctx)
}
