// Package metrics provides a prometheus-backed metrics manager. Metrics are declared once by name and then
// recorded with alternating label key/value pairs, e.g.
//
//	m.NewHistogram("app_http_response", "Response time of HTTP requests in seconds.", .001, .01, .1, 1)
//	m.RecordHistogram(ctx, "app_http_response", 0.012, "path", "/api/v1/employee", "method", "GET")
//
// The label keys of a metric are fixed by the first recording.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	errMetricDoesNotExist = errors.New("metric does not exist")
	errMetricExists       = errors.New("metric already registered")
	errOddLabels          = errors.New("labels must be key value pairs")
	errLabelMismatch      = errors.New("label keys differ from the first recording")
)

// Manager declares and records application metrics.
type Manager interface {
	NewCounter(name, desc string)
	NewUpDownCounter(name, desc string)
	NewHistogram(name, desc string, buckets ...float64)
	NewGauge(name, desc string)

	IncrementCounter(ctx context.Context, name string, labels ...string)
	DeltaUpDownCounter(ctx context.Context, name string, value float64, labels ...string)
	RecordHistogram(ctx context.Context, name string, value float64, labels ...string)
	SetGauge(name string, value float64, labels ...string)
}

type Logger interface {
	Error(args ...any)
	Errorf(format string, args ...any)
}

type kind int

const (
	counter kind = iota
	upDownCounter
	histogram
	gauge
)

type metric struct {
	kind      kind
	desc      string
	buckets   []float64
	labelKeys []string
	collector prometheus.Collector
}

type metricsManager struct {
	registry *prometheus.Registry
	logger   Logger

	mu      sync.Mutex
	metrics map[string]*metric
}

// NewMetricsManager returns a Manager that registers its metrics on a fresh prometheus registry.
func NewMetricsManager(logger Logger) Manager {
	return &metricsManager{
		registry: prometheus.NewRegistry(),
		logger:   logger,
		metrics:  make(map[string]*metric),
	}
}

func (m *metricsManager) NewCounter(name, desc string) {
	m.declare(name, &metric{kind: counter, desc: desc})
}

func (m *metricsManager) NewUpDownCounter(name, desc string) {
	m.declare(name, &metric{kind: upDownCounter, desc: desc})
}

func (m *metricsManager) NewHistogram(name, desc string, buckets ...float64) {
	m.declare(name, &metric{kind: histogram, desc: desc, buckets: buckets})
}

func (m *metricsManager) NewGauge(name, desc string) {
	m.declare(name, &metric{kind: gauge, desc: desc})
}

func (m *metricsManager) declare(name string, mt *metric) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.metrics[name]; ok {
		m.logger.Errorf("%v: %v", errMetricExists, name)

		return
	}

	m.metrics[name] = mt
}

// IncrementCounter increases the specified registered counter metric by 1.
func (m *metricsManager) IncrementCounter(_ context.Context, name string, labels ...string) {
	c, err := m.collector(name, counter, labels)
	if err != nil {
		m.logger.Error(err)

		return
	}

	c.(*prometheus.CounterVec).WithLabelValues(labelValues(labels)...).Inc()
}

// DeltaUpDownCounter adds value, which may be negative, to the specified up-down counter.
func (m *metricsManager) DeltaUpDownCounter(_ context.Context, name string, value float64, labels ...string) {
	c, err := m.collector(name, upDownCounter, labels)
	if err != nil {
		m.logger.Error(err)

		return
	}

	c.(*prometheus.GaugeVec).WithLabelValues(labelValues(labels)...).Add(value)
}

func (m *metricsManager) RecordHistogram(_ context.Context, name string, value float64, labels ...string) {
	c, err := m.collector(name, histogram, labels)
	if err != nil {
		m.logger.Error(err)

		return
	}

	c.(*prometheus.HistogramVec).WithLabelValues(labelValues(labels)...).Observe(value)
}

func (m *metricsManager) SetGauge(name string, value float64, labels ...string) {
	c, err := m.collector(name, gauge, labels)
	if err != nil {
		m.logger.Error(err)

		return
	}

	c.(*prometheus.GaugeVec).WithLabelValues(labelValues(labels)...).Set(value)
}

// collector returns the prometheus vector behind name, creating and registering it on first use.
func (m *metricsManager) collector(name string, k kind, labels []string) (prometheus.Collector, error) {
	if len(labels)%2 != 0 {
		return nil, fmt.Errorf("%w: %v", errOddLabels, name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	mt, ok := m.metrics[name]
	if !ok || mt.kind != k {
		return nil, fmt.Errorf("%w: %v", errMetricDoesNotExist, name)
	}

	keys := labelKeys(labels)

	if mt.collector != nil {
		if !slices.Equal(mt.labelKeys, keys) {
			return nil, fmt.Errorf("%w: %v", errLabelMismatch, name)
		}

		return mt.collector, nil
	}

	var c prometheus.Collector

	switch k {
	case counter:
		c = prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: mt.desc}, keys)
	case upDownCounter, gauge:
		c = prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: mt.desc}, keys)
	case histogram:
		c = prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: name, Help: mt.desc, Buckets: mt.buckets}, keys)
	}

	if err := m.registry.Register(c); err != nil {
		return nil, err
	}

	mt.collector = c
	mt.labelKeys = keys

	return c, nil
}

func labelKeys(labels []string) []string {
	keys := make([]string, 0, len(labels)/2)

	for i := 0; i < len(labels); i += 2 {
		keys = append(keys, labels[i])
	}

	return keys
}

func labelValues(labels []string) []string {
	values := make([]string, 0, len(labels)/2)

	for i := 1; i < len(labels); i += 2 {
		values = append(values, labels[i])
	}

	return values
}
