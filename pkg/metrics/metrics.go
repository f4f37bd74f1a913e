package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP Метрики диагностического сервера
// =============================================================================

// HttpRequestsTotal - счётчик запросов к диагностическому серверу
// Labels: service, method, path, status
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration - гистограмма времени ответа
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

// HttpRequestsInFlight - текущее количество обрабатываемых запросов
var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Catalog API Метрики (исходящие запросы клиента)
// =============================================================================

// CatalogRequestsTotal - запросы к Catalog API
// Labels: endpoint (categories, products), outcome (ok, network, api, parse)
// Пример: rate(catalog_api_requests_total{outcome!="ok"}[5m])
var CatalogRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "catalog_api_requests_total",
		Help: "Total number of requests issued to the catalog API",
	},
	[]string{"endpoint", "outcome"},
)

// CatalogRequestDuration - время ответа Catalog API
var CatalogRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "catalog_api_request_duration_seconds",
		Help:    "Duration of catalog API requests in seconds",
		Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"endpoint"},
)

// =============================================================================
// Query Cache Метрики (кеш экрана)
// =============================================================================

// QueryCacheHits - ключ уже был загружен экраном, сетевой запрос не нужен
var QueryCacheHits = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "query_cache_hits_total",
		Help: "Total number of screen query cache hits",
	},
	[]string{"query"},
)

// QueryCacheMisses - ключ не найден, выполняется запрос
var QueryCacheMisses = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "query_cache_misses_total",
		Help: "Total number of screen query cache misses",
	},
	[]string{"query"},
)

// QueryStaleResponses - ответы, пришедшие для уже неактуального ключа
var QueryStaleResponses = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "query_stale_responses_total",
		Help: "Total number of responses discarded because their key was superseded",
	},
	[]string{"query"},
)

// =============================================================================
// Renderer Метрики
// =============================================================================

// ImageFallbacks - изображения, заменённые плейсхолдером
// Labels: reason (empty, failed)
var ImageFallbacks = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "image_fallbacks_total",
		Help: "Total number of images replaced with the placeholder",
	},
	[]string{"reason"},
)
