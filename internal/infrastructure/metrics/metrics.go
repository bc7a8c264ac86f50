// Package metrics は、Prometheusのメトリクスを提供します
package metrics

import (
	"eassay/internal/application"
	"eassay/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "eassay"

// Metrics は、HTTPリクエストとエッセイ生成のメトリクスをまとめたものです
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	GenerationsTotal   *prometheus.CounterVec
	GenerationDuration *prometheus.HistogramVec
}

// New は、新しいレジストリにメトリクスを登録して返します
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"method", "path"},
		),
		GenerationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "essay",
				Name:      "generations_total",
				Help:      "Total number of essay submissions by model and outcome",
			},
			[]string{"model", "outcome"},
		),
		GenerationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "essay",
				Name:      "generation_duration_seconds",
				Help:      "Essay submission duration in seconds",
				Buckets:   []float64{.1, .5, 1, 2.5, 5, 10, 20, 30, 60, 120},
			},
			[]string{"model"},
		),
	}

	m.registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.GenerationsTotal,
		m.GenerationDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Registry は、/metrics で公開するレジストリを返します
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordGeneration は、1回の送信結果を記録します
func (m *Metrics) RecordGeneration(model domain.Model, outcome application.GenerationOutcome, seconds float64) {
	m.GenerationsTotal.WithLabelValues(model.String(), string(outcome)).Inc()
	m.GenerationDuration.WithLabelValues(model.String()).Observe(seconds)
}
