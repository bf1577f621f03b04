package observability

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// SearchCollector records A* searches as Prometheus metrics. It satisfies
// astar.Recorder.
type SearchCollector struct {
	gatherer prometheus.Gatherer

	Searches      *prometheus.CounterVec
	Durations     prometheus.Histogram
	ExpandedNodes prometheus.Histogram
}

// NewSearchCollector registers search metrics against reg, defaulting to the
// global Prometheus registry when nil.
func NewSearchCollector(reg prometheus.Registerer) (*SearchCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	searches, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gridnav_searches_total",
		Help: "Total number of A* searches, labeled by outcome.",
	}, []string{"outcome"}), "gridnav_searches_total")
	if err != nil {
		return nil, err
	}

	durations, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "gridnav_search_duration_seconds",
		Help:    "A* search latency in seconds.",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
	}), "gridnav_search_duration_seconds")
	if err != nil {
		return nil, err
	}

	expanded, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "gridnav_search_expanded_nodes",
		Help:    "Nodes expanded per A* search.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	}), "gridnav_search_expanded_nodes")
	if err != nil {
		return nil, err
	}

	return &SearchCollector{
		gatherer:      gatherer,
		Searches:      searches,
		Durations:     durations,
		ExpandedNodes: expanded,
	}, nil
}

func (c *SearchCollector) ObserveSearch(outcome string, expanded int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.Searches.WithLabelValues(outcome).Inc()
	c.Durations.Observe(elapsed.Seconds())
	c.ExpandedNodes.Observe(float64(expanded))
}

// WriteTextfile dumps the gathered metrics in the text exposition format,
// for node_exporter's textfile collector.
func (c *SearchCollector) WriteTextfile(path string) error {
	return errors.Wrap(prometheus.WriteToTextfile(path, c.gatherer), "write metrics textfile")
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}
