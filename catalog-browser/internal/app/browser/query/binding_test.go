package query

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"storefront/catalog-browser/internal/app/browser/entity"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingFetcher запоминает URL запросов и отвечает из таблицы
type recordingFetcher struct {
	mu        sync.Mutex
	urls      []string
	responses map[string][]entity.Product
	failures  map[string]error
}

func newRecordingFetcher() *recordingFetcher {
	return &recordingFetcher{
		responses: make(map[string][]entity.Product),
		failures:  make(map[string]error),
	}
}

func (f *recordingFetcher) fetch(ctx context.Context, url string) ([]entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls = append(f.urls, url)
	if err, ok := f.failures[url]; ok {
		return nil, err
	}
	if data, ok := f.responses[url]; ok {
		return data, nil
	}
	return []entity.Product{}, nil
}

func (f *recordingFetcher) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.urls...)
}

func run(t *testing.T, cmd tea.Cmd) ResultMsg[ProductKey, entity.Product] {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(ResultMsg[ProductKey, entity.Product])
	require.True(t, ok)
	return msg
}

func TestBinding_InitialStateIsIdle(t *testing.T) {
	b := NewBinding[ProductKey, entity.Product]("products", newRecordingFetcher().fetch)
	defer b.Close()

	assert.Equal(t, StatusIdle, b.Result().Status())
	_, ok := b.Key()
	assert.False(t, ok)
}

func TestBinding_LoadSuccess(t *testing.T) {
	// Arrange
	fetcher := newRecordingFetcher()
	key := NewProductKey(productBase, entity.FilterState{})
	fetcher.responses[key.String()] = []entity.Product{{ID: 1, Title: "Shirt"}}

	b := NewBinding[ProductKey, entity.Product]("products", fetcher.fetch)
	defer b.Close()

	// Act
	cmd := b.Load(key)

	// Assert - пока запрос выполняется, данных нет
	assert.Equal(t, StatusLoading, b.Result().Status())
	assert.Nil(t, b.Result().Data)

	assert.True(t, b.Resolve(run(t, cmd)))
	assert.Equal(t, StatusSuccess, b.Result().Status())
	assert.Equal(t, []entity.Product{{ID: 1, Title: "Shirt"}}, b.Result().Data)
	assert.False(t, b.Result().IsError)
	assert.Equal(t, []string{productBase}, fetcher.calls())
}

func TestBinding_LoadFailure(t *testing.T) {
	// Arrange
	fetcher := newRecordingFetcher()
	key := NewProductKey(productBase, entity.FilterState{Price: "abc"})
	fetcher.failures[key.String()] = errors.New("catalog API returned status 500")

	b := NewBinding[ProductKey, entity.Product]("products", fetcher.fetch)
	defer b.Close()

	// Act
	assert.True(t, b.Resolve(run(t, b.Load(key))))

	// Assert
	result := b.Result()
	assert.Equal(t, StatusError, result.Status())
	assert.True(t, result.IsError)
	assert.False(t, result.IsLoading)
	assert.Nil(t, result.Data)
	assert.EqualError(t, result.Err, "catalog API returned status 500")
}

func TestBinding_SameKeyDoesNotRefetch(t *testing.T) {
	fetcher := newRecordingFetcher()
	b := NewBinding[ProductKey, entity.Product]("products", fetcher.fetch)
	defer b.Close()

	key := NewProductKey(productBase, entity.FilterState{})
	cmd := b.Load(key)

	// Повторный Load во время загрузки не создаёт второй запрос
	assert.Nil(t, b.Load(key))

	b.Resolve(run(t, cmd))
	assert.Nil(t, b.Load(key))
	assert.Len(t, fetcher.calls(), 1)
}

func TestBinding_SingleFieldChangeTriggersOneFetch(t *testing.T) {
	fields := map[string]func(*entity.FilterState){
		"category":  func(s *entity.FilterState) { s.CategoryID = "1" },
		"price":     func(s *entity.FilterState) { s.Price = "10" },
		"title":     func(s *entity.FilterState) { s.Title = "shirt" },
		"price_min": func(s *entity.FilterState) { s.PriceRange.Min = "5" },
		"price_max": func(s *entity.FilterState) { s.PriceRange.Max = "50" },
	}

	for name, apply := range fields {
		t.Run(name, func(t *testing.T) {
			fetcher := newRecordingFetcher()
			b := NewBinding[ProductKey, entity.Product]("products", fetcher.fetch)
			defer b.Close()

			var state entity.FilterState
			initial := NewProductKey(productBase, state)
			b.Resolve(run(t, b.Load(initial)))

			apply(&state)
			next := NewProductKey(productBase, state)
			b.Resolve(run(t, b.Load(next)))

			calls := fetcher.calls()
			require.Len(t, calls, 2)
			assert.Equal(t, next.String(), calls[1])

			// Ключи различаются ровно в одном поле
			diff := cmp.Diff(initial, next)
			assert.NotEmpty(t, diff)
			assert.Equal(t, 1, countChangedFields(initial, next))
		})
	}
}

func countChangedFields(a, b ProductKey) int {
	pairs := [][2]string{
		{a.Base, b.Base},
		{a.CategoryID, b.CategoryID},
		{a.Price, b.Price},
		{a.Title, b.Title},
		{a.PriceMin, b.PriceMin},
		{a.PriceMax, b.PriceMax},
	}
	changed := 0
	for _, p := range pairs {
		if p[0] != p[1] {
			changed++
		}
	}
	return changed
}

func TestBinding_StaleResponseIsDiscarded(t *testing.T) {
	// Arrange
	fetcher := newRecordingFetcher()
	keyA := NewProductKey(productBase, entity.FilterState{Title: "a"})
	keyB := NewProductKey(productBase, entity.FilterState{Title: "ab"})
	fetcher.responses[keyA.String()] = []entity.Product{{ID: 1, Title: "from A"}}
	fetcher.responses[keyB.String()] = []entity.Product{{ID: 2, Title: "from B"}}

	b := NewBinding[ProductKey, entity.Product]("products", fetcher.fetch)
	defer b.Close()

	cmdA := b.Load(keyA)
	cmdB := b.Load(keyB)

	// Act - B приходит первым, A опаздывает
	assert.True(t, b.Resolve(run(t, cmdB)))
	assert.False(t, b.Resolve(run(t, cmdA)))

	// Assert
	assert.Equal(t, []entity.Product{{ID: 2, Title: "from B"}}, b.Result().Data)
	current, _ := b.Key()
	assert.Equal(t, keyB, current)
}

func TestBinding_StaleResponseWhileNewKeyLoading(t *testing.T) {
	fetcher := newRecordingFetcher()
	keyA := NewProductKey(productBase, entity.FilterState{CategoryID: "1"})
	keyB := NewProductKey(productBase, entity.FilterState{CategoryID: "2"})
	fetcher.responses[keyA.String()] = []entity.Product{{ID: 1}}

	b := NewBinding[ProductKey, entity.Product]("products", fetcher.fetch)
	defer b.Close()

	cmdA := b.Load(keyA)
	b.Load(keyB)

	// A разрешается, пока B ещё загружается: экран остаётся в LOADING
	assert.False(t, b.Resolve(run(t, cmdA)))
	assert.Equal(t, StatusLoading, b.Result().Status())
	assert.Nil(t, b.Result().Data)
}

func TestBinding_StaleSuccessIsCachedForItsKey(t *testing.T) {
	fetcher := newRecordingFetcher()
	keyA := NewProductKey(productBase, entity.FilterState{Title: "a"})
	keyB := NewProductKey(productBase, entity.FilterState{Title: "b"})
	fetcher.responses[keyA.String()] = []entity.Product{{ID: 1}}

	b := NewBinding[ProductKey, entity.Product]("products", fetcher.fetch)
	defer b.Close()

	cmdA := b.Load(keyA)
	cmdB := b.Load(keyB)
	b.Resolve(run(t, cmdA))
	b.Resolve(run(t, cmdB))

	// Возврат к A берёт данные из кеша без сетевого запроса
	assert.Nil(t, b.Load(keyA))
	assert.Equal(t, []entity.Product{{ID: 1}}, b.Result().Data)
	assert.Len(t, fetcher.calls(), 2)
}

func TestBinding_StaleResponseAfterCacheHitIsDiscarded(t *testing.T) {
	fetcher := newRecordingFetcher()
	keyA := NewProductKey(productBase, entity.FilterState{Title: "a"})
	keyB := NewProductKey(productBase, entity.FilterState{Title: "b"})
	fetcher.responses[keyA.String()] = []entity.Product{{ID: 1}}
	fetcher.responses[keyB.String()] = []entity.Product{{ID: 2}}

	b := NewBinding[ProductKey, entity.Product]("products", fetcher.fetch)
	defer b.Close()

	b.Resolve(run(t, b.Load(keyA)))
	cmdB := b.Load(keyB)
	// Возврат к A обслуживается из кеша, B ещё в полёте
	assert.Nil(t, b.Load(keyA))

	assert.False(t, b.Resolve(run(t, cmdB)))
	assert.Equal(t, []entity.Product{{ID: 1}}, b.Result().Data)
}

func TestBinding_FailuresAreNotCached(t *testing.T) {
	fetcher := newRecordingFetcher()
	keyA := NewProductKey(productBase, entity.FilterState{Price: "x"})
	keyB := NewProductKey(productBase, entity.FilterState{})
	fetcher.failures[keyA.String()] = errors.New("boom")

	b := NewBinding[ProductKey, entity.Product]("products", fetcher.fetch)
	defer b.Close()

	b.Resolve(run(t, b.Load(keyA)))
	b.Resolve(run(t, b.Load(keyB)))

	// Возврат к ключу с ошибкой выполняет новый запрос
	cmd := b.Load(keyA)
	require.NotNil(t, cmd)
	b.Resolve(run(t, cmd))
	assert.Len(t, fetcher.calls(), 3)
}

func TestBinding_RefreshBypassesCache(t *testing.T) {
	fetcher := newRecordingFetcher()
	key := NewProductKey(productBase, entity.FilterState{})

	b := NewBinding[ProductKey, entity.Product]("products", fetcher.fetch)
	defer b.Close()

	assert.Nil(t, b.Refresh())

	b.Resolve(run(t, b.Load(key)))
	generation := b.Generation()

	cmd := b.Refresh()
	assert.Equal(t, StatusLoading, b.Result().Status())
	assert.Greater(t, b.Generation(), generation)

	assert.True(t, b.Resolve(run(t, cmd)))
	assert.Len(t, fetcher.calls(), 2)
}

func TestBinding_RefreshDuringLoadSendsNewRequest(t *testing.T) {
	// Arrange - первый запрос висит, пока его не отпустят
	release := make(chan struct{})
	var calls atomic.Int32
	fetch := func(ctx context.Context, url string) ([]entity.Product, error) {
		if calls.Add(1) == 1 {
			<-release
			return []entity.Product{{ID: 1, Title: "old"}}, nil
		}
		return []entity.Product{{ID: 2, Title: "new"}}, nil
	}

	b := NewBinding[ProductKey, entity.Product]("products", fetch)
	defer b.Close()
	key := NewProductKey(productBase, entity.FilterState{})

	first := b.Load(key)
	firstDone := make(chan tea.Msg, 1)
	go func() { firstDone <- first() }()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)

	// Act
	refreshed := run(t, b.Refresh())
	close(release)
	stale, ok := (<-firstDone).(ResultMsg[ProductKey, entity.Product])
	require.True(t, ok)

	// Assert
	assert.Equal(t, int32(2), calls.Load())
	require.True(t, b.Resolve(refreshed))
	assert.False(t, b.Resolve(stale))
	assert.Equal(t, []entity.Product{{ID: 2, Title: "new"}}, b.Result().Data)
	assert.Equal(t, []entity.Product{{ID: 2, Title: "new"}}, b.cache[key].data, "старый ответ не затирает кеш")
}

func TestBinding_NilSuccessIsEmptyResult(t *testing.T) {
	b := NewBinding[ProductKey, entity.Product]("products", func(ctx context.Context, url string) ([]entity.Product, error) {
		return nil, nil
	})
	defer b.Close()

	require.True(t, b.Resolve(run(t, b.Load(NewProductKey(productBase, entity.FilterState{})))))

	assert.Equal(t, StatusSuccess, b.Result().Status())
	assert.NotNil(t, b.Result().Data)
	assert.Empty(t, b.Result().Data)
}

func TestBinding_IgnoresMessagesFromOtherBindings(t *testing.T) {
	fetcher := newRecordingFetcher()
	key := NewProductKey(productBase, entity.FilterState{})

	first := NewBinding[ProductKey, entity.Product]("products", fetcher.fetch)
	defer first.Close()
	second := NewBinding[ProductKey, entity.Product]("products", fetcher.fetch)
	defer second.Close()

	first.Load(key)
	msg := run(t, second.Load(key))

	assert.False(t, first.Resolve(msg))
	assert.Equal(t, StatusLoading, first.Result().Status())
	assert.True(t, second.Resolve(msg))
}

func TestBinding_CloseCancelsContextAndStopsUpdates(t *testing.T) {
	var seen context.Context
	b := NewBinding[ProductKey, entity.Product]("products", func(ctx context.Context, url string) ([]entity.Product, error) {
		seen = ctx
		return nil, ctx.Err()
	})

	cmd := b.Load(NewProductKey(productBase, entity.FilterState{}))
	b.Close()

	msg := run(t, cmd)
	assert.ErrorIs(t, seen.Err(), context.Canceled)
	assert.ErrorIs(t, msg.Err, context.Canceled)
	assert.False(t, b.Resolve(msg))
	assert.Nil(t, b.Load(NewProductKey(productBase, entity.FilterState{Title: "x"})))
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "IDLE", StatusIdle.String())
	assert.Equal(t, "LOADING", StatusLoading.String())
	assert.Equal(t, "SUCCESS", StatusSuccess.String())
	assert.Equal(t, "ERROR", StatusError.String())
}
