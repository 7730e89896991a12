// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package observe

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"rivaas.dev/routing/compiler"
)

const meterName = "rivaas.dev/routing"

// ErrConflictingOptions indicates that WithMeterProvider and
// WithPrometheusRegistry were both given.
var ErrConflictingOptions = errors.New("conflicting recorder options: only one of WithMeterProvider or WithPrometheusRegistry can be used")

// defaultDurationBuckets are the compile duration histogram boundaries, in seconds.
var defaultDurationBuckets = []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05}

// Recorder records compiler events as OpenTelemetry metrics.
// It implements compiler.Observer and is safe for concurrent use.
type Recorder struct {
	meterProvider metric.MeterProvider
	sdkProvider   *sdkmetric.MeterProvider // set when the Recorder owns the provider
	registry      *promclient.Registry
	handler       http.Handler

	durationBuckets []float64

	compilations metric.Int64Counter
	duration     metric.Float64Histogram
	variables    metric.Int64Histogram
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithMeterProvider records into a user-managed meter provider instead of
// the built-in Prometheus one. The caller owns the provider's lifecycle.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(r *Recorder) {
		r.meterProvider = provider
	}
}

// WithPrometheusRegistry exports the built-in provider into registry instead
// of a new private one.
func WithPrometheusRegistry(registry *promclient.Registry) Option {
	return func(r *Recorder) {
		r.registry = registry
	}
}

// WithDurationBuckets sets the compile duration histogram boundaries, in seconds.
func WithDurationBuckets(buckets ...float64) Option {
	return func(r *Recorder) {
		r.durationBuckets = buckets
	}
}

// New creates a Recorder. Without WithMeterProvider it exports to a
// Prometheus registry, available through Registry and Handler.
// WithMeterProvider and WithPrometheusRegistry cannot be combined.
func New(opts ...Option) (*Recorder, error) {
	r := &Recorder{durationBuckets: defaultDurationBuckets}
	for _, opt := range opts {
		opt(r)
	}

	if r.meterProvider != nil && r.registry != nil {
		return nil, ErrConflictingOptions
	}

	if r.meterProvider == nil {
		if err := r.initPrometheusProvider(); err != nil {
			return nil, err
		}
	}

	if err := r.initializeMetrics(r.meterProvider.Meter(meterName)); err != nil {
		return nil, err
	}

	return r, nil
}

// initPrometheusProvider creates a meter provider exporting to a Prometheus registry.
func (r *Recorder) initPrometheusProvider() error {
	if r.registry == nil {
		r.registry = promclient.NewRegistry()
	}

	exporter, err := prometheus.New(prometheus.WithRegisterer(r.registry))
	if err != nil {
		return fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}

	r.sdkProvider = sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	r.meterProvider = r.sdkProvider
	r.handler = promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})

	return nil
}

// initializeMetrics creates the metric instruments.
func (r *Recorder) initializeMetrics(meter metric.Meter) error {
	var err error

	r.compilations, err = meter.Int64Counter(
		"route_compilations_total",
		metric.WithDescription("Total number of route compilations"),
	)
	if err != nil {
		return fmt.Errorf("failed to create compilations counter: %w", err)
	}

	r.duration, err = meter.Float64Histogram(
		"route_compile_duration_seconds",
		metric.WithDescription("Duration of route compilations in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(r.durationBuckets...),
	)
	if err != nil {
		return fmt.Errorf("failed to create compile duration histogram: %w", err)
	}

	r.variables, err = meter.Int64Histogram(
		"route_variables",
		metric.WithDescription("Number of variables of successfully compiled routes"),
		metric.WithExplicitBucketBoundaries(0, 1, 2, 3, 4, 6, 8, 12, 16),
	)
	if err != nil {
		return fmt.Errorf("failed to create variables histogram: %w", err)
	}

	return nil
}

// OnCompile records one compilation.
func (r *Recorder) OnCompile(e compiler.Event) {
	ctx := context.Background()

	result := "ok"
	if e.Err != nil {
		result = "error"
	}
	attrs := metric.WithAttributes(
		attribute.String("result", result),
		attribute.String("code", compiler.ErrorCode(e.Err)),
		attribute.Bool("host", e.Host != ""),
	)

	r.compilations.Add(ctx, 1, attrs)
	r.duration.Record(ctx, e.Duration.Seconds(), attrs)
	if e.Err == nil {
		r.variables.Record(ctx, int64(e.Variables), metric.WithAttributes(attribute.Bool("host", e.Host != "")))
	}
}

// Registry returns the Prometheus registry, or nil when a custom meter
// provider is used.
func (r *Recorder) Registry() *promclient.Registry {
	return r.registry
}

// Handler serves the Prometheus registry, or nil when a custom meter
// provider is used.
func (r *Recorder) Handler() http.Handler {
	return r.handler
}

// WriteTextfile writes the current metrics to path in the Prometheus text
// format, for collection by a node exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if r.registry == nil {
		return errors.New("recorder has no Prometheus registry")
	}
	return promclient.WriteToTextfile(path, r.registry)
}

// Shutdown flushes and stops the built-in meter provider. It does nothing
// for a user-managed provider.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if r.sdkProvider == nil {
		return nil
	}
	return r.sdkProvider.Shutdown(ctx)
}

var _ compiler.Observer = (*Recorder)(nil)
