package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"storefront/catalog-browser/internal/app/browser/entity"
	"storefront/pkg/logger"
	"storefront/pkg/metrics"
)

// Сколько байт тела ошибки сохраняется в APIError
const errorBodyLimit = 512

// CatalogClient клиент для чтения Catalog API
// Не хранит состояния между запросами: кеширование - забота экранов
type CatalogClient struct {
	httpClient *http.Client
}

// NewCatalogClient создает клиент с общим таймаутом на запрос
func NewCatalogClient(timeout time.Duration) *CatalogClient {
	return &CatalogClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchCategories получает список категорий по готовому URL
func (c *CatalogClient) FetchCategories(ctx context.Context, url string) ([]entity.Category, error) {
	return fetchJSON[entity.Category](ctx, c.httpClient, "categories", url)
}

// FetchProducts получает список товаров; URL уже содержит параметры фильтров
func (c *CatalogClient) FetchProducts(ctx context.Context, url string) ([]entity.Product, error) {
	return fetchJSON[entity.Product](ctx, c.httpClient, "products", url)
}

// fetchJSON выполняет GET и разбирает тело как JSON-массив T
// Ошибки классифицируются как NetworkError, APIError или ParseError
func fetchJSON[T any](ctx context.Context, client *http.Client, endpoint, url string) ([]T, error) {
	log := logger.Component("catalog-client")
	timer := metrics.NewCatalogTimer(endpoint)
	requestID := logger.NewRequestID()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		timer.Finish(metrics.OutcomeNetwork)
		return nil, &NetworkError{URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(logger.RequestIDHeader, requestID)

	log.Debug().
		Str("request_id", requestID).
		Str("url", url).
		Msg("Fetching catalog data")

	resp, err := client.Do(req)
	if err != nil {
		timer.Finish(metrics.OutcomeNetwork)
		if !errors.Is(err, context.Canceled) {
			log.Warn().Err(err).Str("request_id", requestID).Str("url", url).Msg("Catalog request failed")
		}
		return nil, &NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		timer.Finish(metrics.OutcomeAPI)
		log.Warn().
			Str("request_id", requestID).
			Str("url", url).
			Int("status", resp.StatusCode).
			Msg("Catalog API returned error status")
		return nil, &APIError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		timer.Finish(metrics.OutcomeNetwork)
		return nil, &NetworkError{URL: url, Err: err}
	}

	var items []T
	if err := json.Unmarshal(body, &items); err != nil {
		timer.Finish(metrics.OutcomeParse)
		log.Warn().Err(err).Str("request_id", requestID).Str("url", url).Msg("Malformed catalog response")
		return nil, &ParseError{URL: url, Err: err}
	}
	if items == nil {
		// "null" в теле трактуем как пустой список
		items = []T{}
	}

	timer.Finish(metrics.OutcomeOK)
	log.Debug().
		Str("request_id", requestID).
		Int("count", len(items)).
		Msg("Catalog data fetched")

	return items, nil
}
