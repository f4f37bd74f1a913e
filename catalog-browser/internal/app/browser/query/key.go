package query

import (
	"strings"

	"storefront/catalog-browser/internal/app/browser/entity"
)

// Key - кеш-ключ запроса. String() возвращает URL, по которому выполняется запрос,
// поэтому два равных ключа всегда означают один и тот же запрос
type Key interface {
	comparable
	String() string
}

// CategoriesKey - постоянный ключ списка категорий
type CategoriesKey struct {
	Base string
}

func (k CategoriesKey) String() string {
	return k.Base
}

// ProductKey - упорядоченный кортеж полей, определяющих запрос товаров
type ProductKey struct {
	Base       string
	CategoryID string
	Price      string
	Title      string
	PriceMin   string
	PriceMax   string
}

// NewProductKey строит ключ из адреса endpoint и текущих фильтров
func NewProductKey(base string, state entity.FilterState) ProductKey {
	return ProductKey{
		Base:       base,
		CategoryID: state.CategoryID,
		Price:      state.Price,
		Title:      state.Title,
		PriceMin:   state.PriceRange.Min,
		PriceMax:   state.PriceRange.Max,
	}
}

func (k ProductKey) String() string {
	return BuildProductURL(k.Base, entity.FilterState{
		CategoryID: k.CategoryID,
		Title:      k.Title,
		Price:      k.Price,
		PriceRange: entity.PriceRange{Min: k.PriceMin, Max: k.PriceMax},
	})
}

// BuildProductURL добавляет непустые фильтры как name=value в фиксированном порядке
// categoryId, price, title, price_min, price_max. Значения не экранируются:
// интерпретация и отклонение некорректных значений - ответственность API.
// Без фильтров "?" не добавляется
func BuildProductURL(base string, state entity.FilterState) string {
	params := make([]string, 0, 5)

	if state.CategoryID != "" {
		params = append(params, "categoryId="+state.CategoryID)
	}
	if state.Price != "" {
		params = append(params, "price="+state.Price)
	}
	if state.Title != "" {
		params = append(params, "title="+state.Title)
	}
	if state.PriceRange.Min != "" {
		params = append(params, "price_min="+state.PriceRange.Min)
	}
	if state.PriceRange.Max != "" {
		params = append(params, "price_max="+state.PriceRange.Max)
	}

	if len(params) == 0 {
		return base
	}
	return base + "?" + strings.Join(params, "&")
}
