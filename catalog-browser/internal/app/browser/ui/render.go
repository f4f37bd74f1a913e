package ui

import (
	"github.com/shopspring/decimal"

	"storefront/catalog-browser/internal/app/browser/entity"
	"storefront/pkg/logger"
	"storefront/pkg/metrics"
)

// Item - одна строка списка, ключ - идентификатор записи
type Item struct {
	Key      int
	Title    string
	Subtitle string
	Detail   string
	ImageURL string
}

// Renderer превращает записи API в элементы списка
// Порядок записей сохраняется как в ответе API
type Renderer struct {
	placeholder string
	failed      map[string]bool
}

func NewRenderer(placeholder string) *Renderer {
	return &Renderer{
		placeholder: placeholder,
		failed:      make(map[string]bool),
	}
}

func (r *Renderer) Placeholder() string {
	return r.placeholder
}

// ResolveImage возвращает URL для показа: плейсхолдер вместо пустого
// или не загрузившегося изображения
func (r *Renderer) ResolveImage(url string) string {
	if url == "" || r.failed[url] {
		return r.placeholder
	}
	return url
}

// MarkFailed запоминает, что изображение не загрузилось.
// Возвращает true, если это новая информация и список нужно перестроить
func (r *Renderer) MarkFailed(url string) bool {
	if url == "" || r.failed[url] {
		return false
	}
	r.failed[url] = true
	metrics.RecordImageFallback(metrics.FallbackFailed)
	return true
}

// ProbeTargets отбирает изображения, которые ещё нужно проверить
func (r *Renderer) ProbeTargets(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	targets := make([]string, 0, len(urls))
	for _, url := range urls {
		if url == "" {
			metrics.RecordImageFallback(metrics.FallbackEmpty)
			continue
		}
		if seen[url] || r.failed[url] {
			continue
		}
		seen[url] = true
		targets = append(targets, url)
	}
	return targets
}

func (r *Renderer) Categories(categories []entity.Category) []Item {
	items := make([]Item, 0, len(categories))
	seen := make(map[int]bool, len(categories))
	for _, c := range categories {
		if seen[c.ID] {
			warnDuplicate("category", c.ID)
			continue
		}
		seen[c.ID] = true
		items = append(items, Item{
			Key:      c.ID,
			Title:    c.Name,
			ImageURL: r.ResolveImage(c.Image),
		})
	}
	return items
}

func (r *Renderer) Products(products []entity.Product) []Item {
	items := make([]Item, 0, len(products))
	seen := make(map[int]bool, len(products))
	for _, p := range products {
		if seen[p.ID] {
			warnDuplicate("product", p.ID)
			continue
		}
		seen[p.ID] = true
		items = append(items, Item{
			Key:      p.ID,
			Title:    p.Title,
			Subtitle: FormatPrice(p.Price) + " · " + p.Category.Name,
			Detail:   p.Description,
			ImageURL: r.ResolveImage(p.PrimaryImage()),
		})
	}
	return items
}

// FormatPrice форматирует цену с двумя знаками без артефактов float
func FormatPrice(price float64) string {
	return "$" + decimal.NewFromFloat(price).StringFixed(2)
}

// Дубликаты ID - проблема качества данных API, а не повод падать
func warnDuplicate(kind string, id int) {
	logger.Component("renderer").Warn().
		Str("kind", kind).
		Int("id", id).
		Msg("Duplicate record id in API response, skipping")
}
