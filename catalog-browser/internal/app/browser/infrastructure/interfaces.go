package infrastructure

import (
	"context"

	"storefront/catalog-browser/internal/app/browser/entity"
)

// CatalogFetcher - HTTP коллаборатор экранов: GET + разбор JSON
// Любой не-2xx ответ или ошибка разбора возвращается как ошибка
type CatalogFetcher interface {
	FetchCategories(ctx context.Context, url string) ([]entity.Category, error)
	FetchProducts(ctx context.Context, url string) ([]entity.Product, error)
}

// ImageChecker проверяет, загружается ли изображение по URL
type ImageChecker interface {
	Probe(ctx context.Context, url string) error
}
