// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"sync"

	"github.com/ethereum/go-ethereum/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "nftstaker"

var logger = log.New("pkg", "metrics")

// InitializePrometheusMetrics installs a prometheus backed provider. Calling it
// again keeps the installed one.
func InitializePrometheusMetrics() {
	if _, ok := metrics.(*prometheusMetrics); !ok {
		metrics = newPrometheusMetrics()
	}
}

// Gatherer returns the registry of the installed provider, nil when metrics are disabled.
func Gatherer() prometheus.Gatherer {
	if p, ok := metrics.(*prometheusMetrics); ok {
		return p.registry
	}
	return nil
}

type prometheusMetrics struct {
	registry *prometheus.Registry
	handler  http.Handler
	meters   sync.Map // name -> meter
}

func newPrometheusMetrics() *prometheusMetrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: namespace}),
		newHostCollector(),
	)
	return &prometheusMetrics{
		registry: registry,
		handler:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
	}
}

// load returns the meter cached under name, registering the collector built by create
// on first use. A name reused with another meter type yields a no-op meter.
func load[M any](p *prometheusMetrics, name string, create func() (prometheus.Collector, M)) M {
	if m, ok := p.meters.Load(name); ok {
		if meter, ok := m.(M); ok {
			return meter
		}
		logger.Warn("metric registered with another type", "name", name)
		return any(noopMeter{}).(M)
	}
	collector, meter := create()
	actual, loaded := p.meters.LoadOrStore(name, meter)
	if loaded {
		if meter, ok := actual.(M); ok {
			return meter
		}
		return any(noopMeter{}).(M)
	}
	if err := p.registry.Register(collector); err != nil {
		logger.Warn("unable to register metric", "name", name, "err", err)
	}
	return meter
}

func floatBuckets(buckets []int64) []float64 {
	if len(buckets) == 0 {
		return nil
	}
	out := make([]float64, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, float64(b))
	}
	return out
}

func (p *prometheusMetrics) GetOrCreateHandler() http.Handler { return p.handler }

func (p *prometheusMetrics) GetOrCreateCountMeter(name string) CountMeter {
	return load(p, name, func() (prometheus.Collector, CountMeter) {
		c := prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name})
		return c, &promCountMeter{c}
	})
}

func (p *prometheusMetrics) GetOrCreateCountVecMeter(name string, labels []string) CountVecMeter {
	return load(p, name, func() (prometheus.Collector, CountVecMeter) {
		c := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name}, labels)
		return c, &promCountVecMeter{c}
	})
}

func (p *prometheusMetrics) GetOrCreateGaugeMeter(name string) GaugeMeter {
	return load(p, name, func() (prometheus.Collector, GaugeMeter) {
		g := prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name})
		return g, &promGaugeMeter{g}
	})
}

func (p *prometheusMetrics) GetOrCreateGaugeVecMeter(name string, labels []string) GaugeVecMeter {
	return load(p, name, func() (prometheus.Collector, GaugeVecMeter) {
		g := prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: namespace, Name: name}, labels)
		return g, &promGaugeVecMeter{g}
	})
}

func (p *prometheusMetrics) GetOrCreateHistogramMeter(name string, buckets []int64) HistogramMeter {
	return load(p, name, func() (prometheus.Collector, HistogramMeter) {
		h := prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Buckets:   floatBuckets(buckets),
		})
		return h, &promHistogramMeter{h}
	})
}

func (p *prometheusMetrics) GetOrCreateHistogramVecMeter(name string, labels []string, buckets []int64) HistogramVecMeter {
	return load(p, name, func() (prometheus.Collector, HistogramVecMeter) {
		h := prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Buckets:   floatBuckets(buckets),
		}, labels)
		return h, &promHistogramVecMeter{h}
	})
}

type promCountMeter struct{ counter prometheus.Counter }

func (m *promCountMeter) Add(i int64) { m.counter.Add(float64(i)) }

type promCountVecMeter struct{ counter *prometheus.CounterVec }

func (m *promCountVecMeter) AddWithLabel(i int64, labels map[string]string) {
	m.counter.With(labels).Add(float64(i))
}

type promGaugeMeter struct{ gauge prometheus.Gauge }

func (m *promGaugeMeter) Add(i int64) { m.gauge.Add(float64(i)) }
func (m *promGaugeMeter) Set(i int64) { m.gauge.Set(float64(i)) }

type promGaugeVecMeter struct{ gauge *prometheus.GaugeVec }

func (m *promGaugeVecMeter) AddWithLabel(i int64, labels map[string]string) {
	m.gauge.With(labels).Add(float64(i))
}

func (m *promGaugeVecMeter) SetWithLabel(i int64, labels map[string]string) {
	m.gauge.With(labels).Set(float64(i))
}

type promHistogramMeter struct{ histogram prometheus.Histogram }

func (m *promHistogramMeter) Observe(i int64) { m.histogram.Observe(float64(i)) }

type promHistogramVecMeter struct{ histogram *prometheus.HistogramVec }

func (m *promHistogramVecMeter) ObserveWithLabels(i int64, labels map[string]string) {
	m.histogram.With(labels).Observe(float64(i))
}
