package entity

// Category представляет категорию каталога
// Идентичность определяется полем ID
type Category struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"` // URL изображения, может быть пустым
}

// Product представляет товар, как его отдаёт Catalog API
type Product struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Images      []string `json:"images"` // Порядок сохраняется как в ответе API
}

// PrimaryImage возвращает первое изображение товара или пустую строку
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// PriceRange - диапазон цен; пустая граница означает отсутствие ограничения
type PriceRange struct {
	Min string
	Max string
}

// FilterState - пользовательские ограничения поиска на экране товаров
// Значения не валидируются: пустая строка означает "без ограничения",
// остальное передаётся в API как есть
type FilterState struct {
	CategoryID string
	Title      string
	Price      string
	PriceRange PriceRange
}

// IsEmpty сообщает, что ни одно ограничение не задано
func (f FilterState) IsEmpty() bool {
	return f == FilterState{}
}
