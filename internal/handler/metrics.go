package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/service"
)

// Metrics holds all Prometheus collectors for the aggregation service.
var Metrics = struct {
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
	CacheHits        prometheus.CounterFunc
	CacheMisses      prometheus.CounterFunc
	DroppedRecords   prometheus.CounterFunc
	CacheEntries     prometheus.GaugeFunc
	DBPoolActive     prometheus.GaugeFunc
	DBPoolIdle       prometheus.GaugeFunc
}{}

// InitMetrics registers all Prometheus metrics. Call once at startup.
func InitMetrics(agg *service.Aggregator, pool *pgxpool.Pool) {
	Metrics.RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "metaagg_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	Metrics.RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "metaagg_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	// Cache and normalization counters read live values from the aggregator
	// so the same numbers back /api/stats and /metrics.
	Metrics.CacheHits = prometheus.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "metaagg_result_cache_hits_total",
			Help: "Total result cache hits.",
		},
		func() float64 {
			return float64(agg.Stats().CacheHits)
		},
	)

	Metrics.CacheMisses = prometheus.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "metaagg_result_cache_misses_total",
			Help: "Total result cache misses.",
		},
		func() float64 {
			return float64(agg.Stats().CacheMisses)
		},
	)

	Metrics.DroppedRecords = prometheus.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "metaagg_dropped_records_total",
			Help: "Total malformed source records dropped during normalization.",
		},
		func() float64 {
			return float64(agg.Stats().DroppedRecords)
		},
	)

	Metrics.CacheEntries = prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "metaagg_result_cache_entries",
			Help: "Number of entries currently in the result cache.",
		},
		func() float64 {
			return float64(agg.Stats().CacheEntries)
		},
	)

	// DB pool gauges — read live stats from pgxpool
	if pool != nil {
		Metrics.DBPoolActive = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "metaagg_db_connection_pool_active",
				Help: "Number of active database connections.",
			},
			func() float64 {
				return float64(pool.Stat().AcquiredConns())
			},
		)

		Metrics.DBPoolIdle = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "metaagg_db_connection_pool_idle",
				Help: "Number of idle database connections.",
			},
			func() float64 {
				return float64(pool.Stat().IdleConns())
			},
		)

		prometheus.MustRegister(Metrics.DBPoolActive)
		prometheus.MustRegister(Metrics.DBPoolIdle)
	}

	prometheus.MustRegister(
		Metrics.RequestDuration,
		Metrics.RequestsInFlight,
		Metrics.CacheHits,
		Metrics.CacheMisses,
		Metrics.DroppedRecords,
		Metrics.CacheEntries,
	)
}

// MetricsMiddleware records request duration and in-flight count for Prometheus.
func MetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Don't instrument the /metrics endpoint itself
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Copy path and method into owned strings BEFORE c.Next() — Fiber
		// returns slices backed by the fasthttp buffer which can be reused
		// or overwritten by handlers (especially fasthttpadaptor).
		path := string([]byte(c.Path()))
		method := string([]byte(c.Method()))
		endpoint := sanitizeEndpoint(path)

		Metrics.RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())

		Metrics.RequestDuration.WithLabelValues(endpoint, method, status).Observe(duration)
		Metrics.RequestsInFlight.Dec()

		return err
	}
}

// sanitizeEndpoint normalizes paths to avoid cardinality explosion. The
// literal list routes under /api/videos/ keep their own labels.
func sanitizeEndpoint(path string) string {
	switch {
	case path == "/api/videos/trending" || path == "/api/videos/search" || path == "/api/videos/shorts":
		return path
	case len(path) > 12 && path[:12] == "/api/videos/":
		return "/api/videos/:videoId"
	case len(path) > 14 && path[:14] == "/api/channels/":
		return "/api/channels/:channelId"
	default:
		return path
	}
}

// MetricsHandler serves the Prometheus /metrics endpoint via Fiber.
func MetricsHandler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		httpHandler(c.RequestCtx())
		return nil
	}
}
