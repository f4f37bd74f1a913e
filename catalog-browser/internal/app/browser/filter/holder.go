package filter

import "storefront/catalog-browser/internal/app/browser/entity"

// Holder хранит текущее состояние фильтров экрана товаров
// Каждый сеттер заменяет ровно одно поле и сообщает, изменилось ли значение
type Holder struct {
	state entity.FilterState
}

// NewHolder создает holder; categoryID приходит от роутинга (выбранная категория)
// и может быть пустым
func NewHolder(categoryID string) *Holder {
	return &Holder{
		state: entity.FilterState{CategoryID: categoryID},
	}
}

// State возвращает копию текущего состояния
func (h *Holder) State() entity.FilterState {
	return h.state
}

func (h *Holder) SetCategory(value string) bool {
	return set(&h.state.CategoryID, value)
}

func (h *Holder) SetTitle(value string) bool {
	return set(&h.state.Title, value)
}

func (h *Holder) SetPrice(value string) bool {
	return set(&h.state.Price, value)
}

// SetPriceMin меняет нижнюю границу, верхняя остаётся прежней
func (h *Holder) SetPriceMin(value string) bool {
	return set(&h.state.PriceRange.Min, value)
}

// SetPriceMax меняет верхнюю границу, нижняя остаётся прежней
func (h *Holder) SetPriceMax(value string) bool {
	return set(&h.state.PriceRange.Max, value)
}

// Reset сбрасывает все фильтры, включая категорию
func (h *Holder) Reset() bool {
	if h.state.IsEmpty() {
		return false
	}
	h.state = entity.FilterState{}
	return true
}

func set(field *string, value string) bool {
	if *field == value {
		return false
	}
	*field = value
	return true
}
