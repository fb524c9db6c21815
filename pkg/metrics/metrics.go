package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-коллекторов сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueriesTotal     *prometheus.CounterVec
	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
	DBIdleConnections  prometheus.Gauge
	DBWaitCount        prometheus.Gauge

	SwapPairsTotal   *prometheus.CounterVec
	ProposalsTotal   *prometheus.CounterVec
	EngineDuration   *prometheus.HistogramVec
	RateLimitedTotal *prometheus.CounterVec
}

// New создает метрики и регистрирует их в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в reg
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}),
		DBInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}),
		DBIdleConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}),

		SwapPairsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "slotengine_swap_pairs_total",
			Help:        "Booking pairs examined by the swap search, by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		ProposalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "slotengine_proposals_total",
			Help:        "Swap proposals returned, by slot kind",
			ConstLabels: constLabels,
		}, []string{"kind"}),
		EngineDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "slotengine_query_duration_seconds",
			Help:        "Slot engine computation latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
		}, []string{"operation"}),
		RateLimitedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_rate_limited_total",
			Help:        "Requests rejected by the rate limiter",
			ConstLabels: constLabels,
		}, []string{"route"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueriesTotal,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.SwapPairsTotal,
		m.ProposalsTotal,
		m.EngineDuration,
		m.RateLimitedTotal,
	)

	return m
}

// ObserveHTTP учитывает обработанный HTTP-запрос
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveDB учитывает запрос к БД
func (m *Metrics) ObserveDB(operation string, err error, d time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.DBQueriesTotal.WithLabelValues(operation, status).Inc()
	m.DBQueryDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncSwapPair учитывает пару бронирований, рассмотренную поиском обменов
func (m *Metrics) IncSwapPair(outcome string) {
	if m == nil {
		return
	}
	m.SwapPairsTotal.WithLabelValues(outcome).Inc()
}

// AddProposals учитывает n предложений обмена вида kind
func (m *Metrics) AddProposals(kind string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ProposalsTotal.WithLabelValues(kind).Add(float64(n))
}

// ObserveEngine учитывает время вычисления операции движка
func (m *Metrics) ObserveEngine(operation string, d time.Duration) {
	if m == nil {
		return
	}
	m.EngineDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncRateLimited учитывает отклонённый лимитером запрос
func (m *Metrics) IncRateLimited(route string) {
	if m == nil {
		return
	}
	m.RateLimitedTotal.WithLabelValues(route).Inc()
}
