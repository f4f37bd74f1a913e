package ui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"storefront/catalog-browser/internal/app/browser/entity"
	"storefront/catalog-browser/internal/app/browser/filter"
	"storefront/catalog-browser/internal/app/browser/infrastructure"
	"storefront/catalog-browser/internal/app/browser/query"
)

type productsBinding = query.Binding[query.ProductKey, entity.Product]

type productsResultMsg = query.ResultMsg[query.ProductKey, entity.Product]

// filterChangedMsg отправляется после каждого изменения фильтров
type filterChangedMsg struct {
	screenID string
	state    entity.FilterState
}

// Поля формы в порядке обхода по tab
const (
	fieldCategory = iota
	fieldTitle
	fieldPrice
	fieldPriceMin
	fieldPriceMax
	fieldCount
)

var fieldLabels = [fieldCount]string{"Category", "Title", "Price", "Price Min", "Price Max"}

// ProductsScreen - список товаров с формой фильтров
type ProductsScreen struct {
	id          string
	holder      *filter.Holder
	productBase string
	categoryKey query.CategoriesKey
	products    *productsBinding
	categories  *categoriesBinding
	renderer    *Renderer
	images      infrastructure.ImageChecker

	ctx    context.Context
	cancel context.CancelFunc

	inputs  [fieldCount]textinput.Model // fieldCategory не используется
	focus   int
	spinner spinner.Model
	help    help.Model
	styles  Styles
	items   []Item
	cursor  int
	width   int
	height  int
}

// NewProductsScreen создает экран; categoryID приходит от роутинга и может быть пустым
func NewProductsScreen(deps Deps, categoryID string) *ProductsScreen {
	ctx, cancel := context.WithCancel(context.Background())

	s := &ProductsScreen{
		id:          uuid.NewString(),
		holder:      filter.NewHolder(categoryID),
		productBase: deps.ProductURL,
		categoryKey: query.CategoriesKey{Base: deps.CategoryURL},
		products:    query.NewBinding[query.ProductKey, entity.Product]("products", deps.Fetcher.FetchProducts),
		categories:  query.NewBinding[query.CategoriesKey, entity.Category]("product-categories", deps.Fetcher.FetchCategories),
		renderer:    NewRenderer(deps.Placeholder),
		images:      deps.Images,
		ctx:         ctx,
		cancel:      cancel,
		spinner:     newSpinner(),
		help:        help.New(),
		styles:      DefaultStyles(),
	}

	for i := fieldTitle; i < fieldCount; i++ {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 64
		in.Width = 24
		if i != fieldTitle {
			in.Placeholder = "any"
		}
		s.inputs[i] = in
	}

	return s
}

func (s *ProductsScreen) Init() tea.Cmd {
	return tea.Batch(
		s.spinner.Tick,
		s.categories.Load(s.categoryKey),
		s.products.Load(query.NewProductKey(s.productBase, s.holder.State())),
	)
}

func (s *ProductsScreen) Filter() entity.FilterState {
	return s.holder.State()
}

func (s *ProductsScreen) Result() query.Result[entity.Product] {
	return s.products.Result()
}

func (s *ProductsScreen) Items() []Item {
	return s.items
}

func (s *ProductsScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case productsResultMsg:
		if !s.products.Resolve(msg) {
			return nil
		}
		return s.rebuild(true)

	case categoriesResultMsg:
		// Категории нужны только для выбора в форме
		s.categories.Resolve(msg)
		return nil

	case filterChangedMsg:
		if msg.screenID != s.id {
			return nil
		}
		return s.load()

	case imageFailedMsg:
		if msg.screenID == s.id && s.renderer.MarkFailed(msg.url) {
			s.rebuild(false)
		}
		return nil

	case spinner.TickMsg:
		if !s.products.Result().IsLoading {
			return nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return nil
}

func (s *ProductsScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Refresh):
		if cmd := s.products.Refresh(); cmd != nil {
			s.rebuild(false)
			return tea.Batch(s.spinner.Tick, cmd)
		}
		return nil

	case key.Matches(msg, keys.Clear):
		for i := fieldTitle; i < fieldCount; i++ {
			s.inputs[i].SetValue("")
		}
		if s.holder.Reset() {
			return s.filterChanged()
		}
		return nil

	case key.Matches(msg, keys.Next):
		return s.setFocus((s.focus + 1) % fieldCount)

	case key.Matches(msg, keys.Prev):
		return s.setFocus((s.focus + fieldCount - 1) % fieldCount)

	case msg.Type == tea.KeyUp:
		s.cursor = clampCursor(s.cursor-1, len(s.items))
		return nil

	case msg.Type == tea.KeyDown:
		s.cursor = clampCursor(s.cursor+1, len(s.items))
		return nil
	}

	if s.focus == fieldCategory {
		switch {
		case key.Matches(msg, keys.Left):
			return s.cycleCategory(-1)
		case key.Matches(msg, keys.Right):
			return s.cycleCategory(1)
		}
		return nil
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return tea.Batch(cmd, s.syncInput(s.focus))
}

func (s *ProductsScreen) setFocus(field int) tea.Cmd {
	if s.focus != fieldCategory {
		s.inputs[s.focus].Blur()
	}
	s.focus = field
	if field == fieldCategory {
		return nil
	}
	return s.inputs[field].Focus()
}

// syncInput переносит значение поля ввода в holder
func (s *ProductsScreen) syncInput(field int) tea.Cmd {
	value := s.inputs[field].Value()

	var changed bool
	switch field {
	case fieldTitle:
		changed = s.holder.SetTitle(value)
	case fieldPrice:
		changed = s.holder.SetPrice(value)
	case fieldPriceMin:
		changed = s.holder.SetPriceMin(value)
	case fieldPriceMax:
		changed = s.holder.SetPriceMax(value)
	}

	if !changed {
		return nil
	}
	return s.filterChanged()
}

// CategoryOptions - варианты выбора категории; "" означает все категории
func (s *ProductsScreen) CategoryOptions() []string {
	options := []string{""}
	for _, item := range s.renderer.Categories(s.categories.Result().Data) {
		options = append(options, strconv.Itoa(item.Key))
	}
	return options
}

func (s *ProductsScreen) cycleCategory(step int) tea.Cmd {
	options := s.CategoryOptions()
	current := 0
	for i, id := range options {
		if id == s.holder.State().CategoryID {
			current = i
			break
		}
	}
	next := (current + step + len(options)) % len(options)

	if !s.holder.SetCategory(options[next]) {
		return nil
	}
	return s.filterChanged()
}

func (s *ProductsScreen) filterChanged() tea.Cmd {
	id, state := s.id, s.holder.State()
	return func() tea.Msg {
		return filterChangedMsg{screenID: id, state: state}
	}
}

// load запрашивает товары для текущих фильтров. Ключ берётся из holder,
// а не из сообщения: промежуточные состояния не порождают запросов
func (s *ProductsScreen) load() tea.Cmd {
	cmd := s.products.Load(query.NewProductKey(s.productBase, s.holder.State()))
	s.rebuild(false)
	if cmd == nil {
		return nil
	}
	return tea.Batch(s.spinner.Tick, cmd)
}

func (s *ProductsScreen) rebuild(probe bool) tea.Cmd {
	result := s.products.Result()
	s.items = s.renderer.Products(result.Data)
	s.cursor = clampCursor(s.cursor, len(s.items))
	if !probe {
		return nil
	}

	urls := make([]string, 0, len(result.Data))
	for _, p := range result.Data {
		urls = append(urls, p.PrimaryImage())
	}
	return probeImages(s.ctx, s.images, s.id, s.renderer.ProbeTargets(urls))
}

func (s *ProductsScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.help.Width = width
}

func (s *ProductsScreen) CapturesText() bool {
	return s.focus != fieldCategory
}

func (s *ProductsScreen) Close() {
	s.cancel()
	s.products.Close()
	s.categories.Close()
}

func (s *ProductsScreen) categoryLabel() string {
	id := s.holder.State().CategoryID
	if id == "" {
		return "All"
	}
	for _, c := range s.categories.Result().Data {
		if strconv.Itoa(c.ID) == id {
			return c.Name
		}
	}
	return id
}

func (s *ProductsScreen) View() string {
	var sb strings.Builder
	sb.WriteString(s.styles.Title.Render("Products"))
	sb.WriteString("\n")

	result := s.products.Result()
	if status := renderStatus(s.styles, s.spinner, result.IsLoading, result.IsError, result.Err); status != "" {
		sb.WriteString(status)
		sb.WriteString("\n\n")
	}

	sb.WriteString(s.styles.Header.Render("Search by"))
	sb.WriteString("\n")
	for field := 0; field < fieldCount; field++ {
		label := s.styles.Label.Render(fieldLabels[field])
		if field == s.focus {
			label = s.styles.Focused.Render(fieldLabels[field])
		}
		if field == fieldPriceMin {
			sb.WriteString(s.styles.Muted.Render("Price range"))
			sb.WriteString("\n")
		}
		sb.WriteString(label)
		if field == fieldCategory {
			sb.WriteString("< " + s.categoryLabel() + " >")
		} else {
			sb.WriteString(s.inputs[field].View())
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if result.Status() == query.StatusSuccess {
		listHeight := 0
		if s.height > 0 {
			listHeight = s.height - 14
		}
		sb.WriteString(renderItems(s.styles, s.items, s.cursor, listHeight, "No products match the filters"))
		sb.WriteString("\n")
	}

	sb.WriteString(s.help.View(productsHelp{}))
	return s.styles.Container.Render(sb.String())
}
