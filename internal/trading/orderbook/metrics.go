package orderbook

import "github.com/prometheus/client_golang/prometheus"

// Metrics bundles the Prometheus collectors observing one engine/book pair's
// steady-state behavior. A nil *Metrics is valid everywhere it is accepted:
// every Record* method is a nil-receiver no-op, so callers never need a
// presence check of their own.
type Metrics struct {
	ordersProcessed *prometheus.CounterVec
	tradesExecuted  prometheus.Counter
	tradeVolume     prometheus.Counter
	orderLatency    prometheus.Histogram
	arenaInUse      prometheus.Gauge
	arenaCapacity   prometheus.Gauge
	errorsByKind    *prometheus.CounterVec
}

// NewMetrics registers a fresh collector set with reg. Passing nil for reg
// constructs unregistered collectors, which is useful in tests that want
// real recording without touching the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ordersProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchcore_orders_processed_total",
			Help: "Orders accepted by the engine, by side.",
		}, []string{"side"}),
		tradesExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchcore_trades_executed_total",
			Help: "Trades produced by the matching loop.",
		}),
		tradeVolume: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchcore_trade_volume_total",
			Help: "Sum of traded quantity across all trades.",
		}),
		orderLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "matchcore_order_latency_seconds",
			Help:    "Wall-clock latency of a single submit/cancel/modify call.",
			Buckets: prometheus.ExponentialBuckets(1e-7, 4, 12),
		}),
		arenaInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "matchcore_arena_in_use",
			Help: "Resting-order slots currently checked out of the arena.",
		}),
		arenaCapacity: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "matchcore_arena_capacity",
			Help: "Total resting-order slots the arena was constructed with.",
		}),
		errorsByKind: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchcore_errors_total",
			Help: "Engine calls rejected, by error kind.",
		}, []string{"kind"}),
	}
	if reg != nil {
		reg.MustRegister(
			m.ordersProcessed, m.tradesExecuted, m.tradeVolume,
			m.orderLatency, m.arenaInUse, m.arenaCapacity, m.errorsByKind,
		)
	}
	return m
}

func (m *Metrics) RecordOrderProcessed(side string) {
	if m == nil {
		return
	}
	m.ordersProcessed.WithLabelValues(side).Inc()
}

func (m *Metrics) RecordTrade(quantity uint32) {
	if m == nil {
		return
	}
	m.tradesExecuted.Inc()
	m.tradeVolume.Add(float64(quantity))
}

func (m *Metrics) RecordLatency(seconds float64) {
	if m == nil {
		return
	}
	m.orderLatency.Observe(seconds)
}

func (m *Metrics) RecordArenaUsage(inUse, capacity int) {
	if m == nil {
		return
	}
	m.arenaInUse.Set(float64(inUse))
	m.arenaCapacity.Set(float64(capacity))
}

func (m *Metrics) RecordError(kind string) {
	if m == nil {
		return
	}
	m.errorsByKind.WithLabelValues(kind).Inc()
}
