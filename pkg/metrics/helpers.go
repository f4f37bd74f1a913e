package metrics

import (
	"time"
)

// Исходы запроса к Catalog API
const (
	OutcomeOK      = "ok"
	OutcomeNetwork = "network"
	OutcomeAPI     = "api"
	OutcomeParse   = "parse"
)

// Причины подстановки плейсхолдера
const (
	FallbackEmpty  = "empty"
	FallbackFailed = "failed"
)

type CatalogTimer struct {
	endpoint string
	start    time.Time
}

func NewCatalogTimer(endpoint string) *CatalogTimer {
	return &CatalogTimer{
		endpoint: endpoint,
		start:    time.Now(),
	}
}

// Finish фиксирует длительность и исход запроса
func (ct *CatalogTimer) Finish(outcome string) {
	CatalogRequestDuration.WithLabelValues(ct.endpoint).Observe(time.Since(ct.start).Seconds())
	CatalogRequestsTotal.WithLabelValues(ct.endpoint, outcome).Inc()
}

func RecordCacheHit(query string) {
	QueryCacheHits.WithLabelValues(query).Inc()
}

func RecordCacheMiss(query string) {
	QueryCacheMisses.WithLabelValues(query).Inc()
}

func RecordStaleResponse(query string) {
	QueryStaleResponses.WithLabelValues(query).Inc()
}

func RecordImageFallback(reason string) {
	ImageFallbacks.WithLabelValues(reason).Inc()
}
