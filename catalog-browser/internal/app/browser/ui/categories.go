package ui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"storefront/catalog-browser/internal/app/browser/entity"
	"storefront/catalog-browser/internal/app/browser/infrastructure"
	"storefront/catalog-browser/internal/app/browser/query"
)

type categoriesBinding = query.Binding[query.CategoriesKey, entity.Category]

type categoriesResultMsg = query.ResultMsg[query.CategoriesKey, entity.Category]

// NavigateMsg - переход к товарам выбранной категории
type NavigateMsg struct {
	CategoryID string
}

// CategoriesScreen показывает категории; список загружается один раз
// под постоянным ключом
type CategoriesScreen struct {
	id       string
	key      query.CategoriesKey
	binding  *categoriesBinding
	renderer *Renderer
	images   infrastructure.ImageChecker

	ctx    context.Context
	cancel context.CancelFunc

	spinner spinner.Model
	help    help.Model
	styles  Styles
	items   []Item
	cursor  int
	width   int
	height  int
}

func NewCategoriesScreen(deps Deps) *CategoriesScreen {
	ctx, cancel := context.WithCancel(context.Background())
	return &CategoriesScreen{
		id:       uuid.NewString(),
		key:      query.CategoriesKey{Base: deps.CategoryURL},
		binding:  query.NewBinding[query.CategoriesKey, entity.Category]("categories", deps.Fetcher.FetchCategories),
		renderer: NewRenderer(deps.Placeholder),
		images:   deps.Images,
		ctx:      ctx,
		cancel:   cancel,
		spinner:  newSpinner(),
		help:     help.New(),
		styles:   DefaultStyles(),
	}
}

func (s *CategoriesScreen) Init() tea.Cmd {
	return tea.Batch(s.spinner.Tick, s.binding.Load(s.key))
}

func (s *CategoriesScreen) Result() query.Result[entity.Category] {
	return s.binding.Result()
}

func (s *CategoriesScreen) Items() []Item {
	return s.items
}

func (s *CategoriesScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case categoriesResultMsg:
		if !s.binding.Resolve(msg) {
			return nil
		}
		return s.rebuild(true)

	case imageFailedMsg:
		if msg.screenID == s.id && s.renderer.MarkFailed(msg.url) {
			s.rebuild(false)
		}
		return nil

	case spinner.TickMsg:
		if !s.binding.Result().IsLoading {
			return nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			s.cursor = clampCursor(s.cursor-1, len(s.items))
		case key.Matches(msg, keys.Down):
			s.cursor = clampCursor(s.cursor+1, len(s.items))
		case key.Matches(msg, keys.Refresh):
			if cmd := s.binding.Refresh(); cmd != nil {
				return tea.Batch(s.spinner.Tick, cmd)
			}
		case key.Matches(msg, keys.Select):
			if len(s.items) == 0 {
				return nil
			}
			categoryID := strconv.Itoa(s.items[s.cursor].Key)
			return func() tea.Msg { return NavigateMsg{CategoryID: categoryID} }
		}
	}
	return nil
}

// rebuild пересчитывает элементы; probe - запустить проверку изображений
func (s *CategoriesScreen) rebuild(probe bool) tea.Cmd {
	result := s.binding.Result()
	s.items = s.renderer.Categories(result.Data)
	s.cursor = clampCursor(s.cursor, len(s.items))
	if !probe {
		return nil
	}

	urls := make([]string, 0, len(result.Data))
	for _, c := range result.Data {
		urls = append(urls, c.Image)
	}
	return probeImages(s.ctx, s.images, s.id, s.renderer.ProbeTargets(urls))
}

func (s *CategoriesScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.help.Width = width
}

func (s *CategoriesScreen) CapturesText() bool {
	return false
}

func (s *CategoriesScreen) Close() {
	s.cancel()
	s.binding.Close()
}

func (s *CategoriesScreen) View() string {
	var sb strings.Builder
	sb.WriteString(s.styles.Title.Render("Categories"))
	sb.WriteString("\n")

	result := s.binding.Result()
	if status := renderStatus(s.styles, s.spinner, result.IsLoading, result.IsError, result.Err); status != "" {
		sb.WriteString(status)
		sb.WriteString("\n\n")
	}

	if result.Status() == query.StatusSuccess {
		listHeight := 0
		if s.height > 0 {
			listHeight = s.height - 6
		}
		sb.WriteString(renderItems(s.styles, s.items, s.cursor, listHeight, "No categories"))
		sb.WriteString("\n")
	}

	sb.WriteString(s.help.View(categoriesHelp{}))
	return s.styles.Container.Render(sb.String())
}
