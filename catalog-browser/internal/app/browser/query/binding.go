package query

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"storefront/pkg/logger"
	"storefront/pkg/metrics"
)

// cacheEntry - успешный ответ и поколение запроса, который его получил
type cacheEntry[T any] struct {
	data       []T
	generation uint64
}

// FetchFunc выполняет запрос по URL ключа и возвращает разобранные записи
type FetchFunc[T any] func(ctx context.Context, url string) ([]T, error)

// ResultMsg - ответ на запрос, помеченный ключом и поколением, для которых он выполнялся
type ResultMsg[K Key, T any] struct {
	BindingID  string
	Key        K
	Generation uint64
	Data       []T
	Err        error
}

// Binding связывает кеш-ключ экрана с запросом данных
//
// Кеш принадлежит экрану и живёт до Close. Каждая смена ключа увеличивает
// поколение; отображается только ответ текущего поколения, более старые
// ответы лишь пополняют кеш своего ключа. Устаревшие запросы не отменяются:
// они завершаются и отбрасываются
type Binding[K Key, T any] struct {
	id    string
	name  string
	fetch FetchFunc[T]

	ctx    context.Context
	cancel context.CancelFunc
	group  *singleflight.Group

	cache      map[K]cacheEntry[T]
	current    K
	hasCurrent bool
	generation uint64
	result     Result[T]
	closed     bool
}

// NewBinding создает binding; name используется в логах и метриках
func NewBinding[K Key, T any](name string, fetch FetchFunc[T]) *Binding[K, T] {
	ctx, cancel := context.WithCancel(context.Background())
	return &Binding[K, T]{
		id:     uuid.NewString(),
		name:   name,
		fetch:  fetch,
		ctx:    ctx,
		cancel: cancel,
		group:  &singleflight.Group{},
		cache:  make(map[K]cacheEntry[T]),
	}
}

func (b *Binding[K, T]) ID() string {
	return b.id
}

// Key возвращает ключ последнего запроса
func (b *Binding[K, T]) Key() (K, bool) {
	return b.current, b.hasCurrent
}

func (b *Binding[K, T]) Result() Result[T] {
	return b.result
}

func (b *Binding[K, T]) Generation() uint64 {
	return b.generation
}

// Load делает key текущим. Возвращает команду запроса, если результата
// для ключа ещё нет; nil - если ключ не изменился или данные взяты из кеша
func (b *Binding[K, T]) Load(key K) tea.Cmd {
	if b.closed {
		return nil
	}
	if b.hasCurrent && key == b.current {
		return nil
	}

	b.generation++
	b.current = key
	b.hasCurrent = true

	if entry, ok := b.cache[key]; ok {
		metrics.RecordCacheHit(b.name)
		b.result = Result[T]{Data: entry.data}
		return nil
	}

	metrics.RecordCacheMiss(b.name)
	b.result = Result[T]{IsLoading: true}
	return b.fetchCmd(key, b.generation)
}

// Refresh повторяет запрос текущего ключа, минуя кеш
func (b *Binding[K, T]) Refresh() tea.Cmd {
	if b.closed || !b.hasCurrent {
		return nil
	}

	delete(b.cache, b.current)
	// Обновление не должно присоединяться к запросу, который уже выполняется
	b.group.Forget(b.current.String())
	b.generation++
	b.result = Result[T]{IsLoading: true}
	return b.fetchCmd(b.current, b.generation)
}

// Resolve применяет ответ. Возвращает true, если отображаемый результат изменился
func (b *Binding[K, T]) Resolve(msg ResultMsg[K, T]) bool {
	if msg.BindingID != b.id || b.closed {
		return false
	}

	if msg.Err == nil {
		if msg.Data == nil {
			msg.Data = []T{}
		}
		// Более старый ответ не затирает кеш, обновлённый позже
		if entry, ok := b.cache[msg.Key]; !ok || entry.generation <= msg.Generation {
			b.cache[msg.Key] = cacheEntry[T]{data: msg.Data, generation: msg.Generation}
		}
	}

	if msg.Generation != b.generation || msg.Key != b.current {
		metrics.RecordStaleResponse(b.name)
		logger.Component("query").Debug().
			Str("query", b.name).
			Str("key", msg.Key.String()).
			Uint64("generation", msg.Generation).
			Uint64("current_generation", b.generation).
			Msg("Discarding stale response")
		return false
	}

	if msg.Err != nil {
		b.result = Result[T]{IsError: true, Err: msg.Err}
		return true
	}

	b.result = Result[T]{Data: msg.Data}
	return true
}

// Close отменяет незавершённые запросы и освобождает кеш
func (b *Binding[K, T]) Close() {
	if b.closed {
		return
	}
	b.closed = true
	b.cancel()
	b.cache = nil
}

func (b *Binding[K, T]) fetchCmd(key K, generation uint64) tea.Cmd {
	ctx, fetch, group, id := b.ctx, b.fetch, b.group, b.id

	return func() tea.Msg {
		url := key.String()
		// Одинаковые запросы одного экрана, идущие параллельно, объединяются
		v, err, _ := group.Do(url, func() (interface{}, error) {
			return fetch(ctx, url)
		})

		msg := ResultMsg[K, T]{
			BindingID:  id,
			Key:        key,
			Generation: generation,
			Err:        err,
		}
		if err == nil {
			msg.Data = v.([]T)
		}
		return msg
	}
}
