// Package metrics exposes Prometheus instruments for the analytics pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "club_analytics"

// Pipeline holds the pipeline's instruments. A nil *Pipeline is a valid no-op.
type Pipeline struct {
	registry      *prometheus.Registry
	snapshots     *prometheus.CounterVec
	buildDuration *prometheus.HistogramVec
	eventsKept    *prometheus.GaugeVec
	rowsDropped   *prometheus.CounterVec
	cacheLookups  *prometheus.CounterVec
}

// NewPipeline registers the instruments on a fresh registry together with the
// Go runtime and process collectors.
func NewPipeline() *Pipeline {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Pipeline{
		registry: registry,
		snapshots: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "snapshots_total",
			Help:      "Snapshot builds by source and outcome.",
		}, []string{"source", "status"}),
		buildDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "snapshot_build_seconds",
			Help:      "Time spent loading and cleaning one snapshot.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}, []string{"source"}),
		eventsKept: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "events",
			Help:      "Clean events in the latest snapshot.",
		}, []string{"source"}),
		rowsDropped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "rows_dropped_total",
			Help:      "Raw rows removed or left unmatched during cleaning, by reason.",
		}, []string{"source", "reason"}),
		cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Snapshot cache lookups by result.",
		}, []string{"result"}),
	}
}

func (p *Pipeline) Handler() http.Handler {
	if p == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

// Registry exposes the underlying registry, mainly for tests.
func (p *Pipeline) Registry() *prometheus.Registry {
	if p == nil {
		return nil
	}
	return p.registry
}

// ObserveSnapshot records one build attempt.
func (p *Pipeline) ObserveSnapshot(source string, took time.Duration, events int, drops map[string]int, err error) {
	if p == nil {
		return
	}

	status := "ok"
	if err != nil {
		status = "error"
	}
	p.snapshots.WithLabelValues(source, status).Inc()
	p.buildDuration.WithLabelValues(source).Observe(took.Seconds())
	if err != nil {
		return
	}

	p.eventsKept.WithLabelValues(source).Set(float64(events))
	for reason, n := range drops {
		if n <= 0 {
			continue
		}
		p.rowsDropped.WithLabelValues(source, reason).Add(float64(n))
	}
}

func (p *Pipeline) CacheHit(string) {
	if p == nil {
		return
	}
	p.cacheLookups.WithLabelValues("hit").Inc()
}

func (p *Pipeline) CacheMiss(string) {
	if p == nil {
		return
	}
	p.cacheLookups.WithLabelValues("miss").Inc()
}
