package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"

	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// PricingMetrics records quote throughput, latency and snapshot cache usage.
type PricingMetrics struct {
	quotes   *prometheus.CounterVec
	duration *prometheus.HistogramVec
	cache    *prometheus.CounterVec
}

// NewPricingMetrics registers the pricing metrics on the provided registerer.
// A nil registerer yields a recorder that drops everything.
func NewPricingMetrics(reg prometheus.Registerer) *PricingMetrics {
	if reg == nil {
		return &PricingMetrics{}
	}
	quotes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_quotes_total",
		Help: "Pricing operations by outcome.",
	}, []string{"operation", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pricing_quote_duration_seconds",
		Help:    "Duration of pricing operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	cache := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_snapshot_cache_total",
		Help: "Item snapshot cache lookups by result.",
	}, []string{"result"})
	reg.MustRegister(quotes, duration, cache)
	return &PricingMetrics{
		quotes:   quotes,
		duration: duration,
		cache:    cache,
	}
}

// ObserveQuote records one operation and its latency.
func (m *PricingMetrics) ObserveQuote(operation string, err error, took time.Duration) {
	if m == nil || m.quotes == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	op := normalizeLabel(operation)
	m.quotes.WithLabelValues(op, outcome).Inc()
	m.duration.WithLabelValues(op).Observe(took.Seconds())
}

// IncCache counts a snapshot cache lookup result.
func (m *PricingMetrics) IncCache(result string) {
	if m == nil || m.cache == nil {
		return
	}
	m.cache.WithLabelValues(normalizeLabel(result)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
