package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"storefront/pkg/logger"
)

// Route - стартовый экран приложения
type Route struct {
	Products   bool
	CategoryID string
}

// App - корневая модель: стек экранов, сверху активный
type App struct {
	deps   Deps
	stack  []screen
	width  int
	height int
}

// NewApp строит стек экранов для маршрута. Товары открываются
// поверх категорий, чтобы esc возвращал к списку категорий
func NewApp(deps Deps, route Route) *App {
	a := &App{deps: deps}
	a.stack = append(a.stack, NewCategoriesScreen(deps))
	if route.Products {
		a.stack = append(a.stack, NewProductsScreen(deps, route.CategoryID))
	}
	return a
}

func (a *App) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(a.stack))
	for _, s := range a.stack {
		cmds = append(cmds, s.Init())
	}
	return tea.Batch(cmds...)
}

func (a *App) current() screen {
	return a.stack[len(a.stack)-1]
}

// Depth - число открытых экранов
func (a *App) Depth() int {
	return len(a.stack)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		for _, s := range a.stack {
			s.SetSize(msg.Width, msg.Height)
		}
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.QuitChar) && !a.current().CapturesText():
			return a, tea.Quit
		case key.Matches(msg, keys.Back):
			a.back()
			return a, nil
		}
		// клавиши получает только активный экран
		return a, a.current().Update(msg)

	case NavigateMsg:
		logger.Component("router").Info().Str("category_id", msg.CategoryID).Msg("Opening products")
		s := NewProductsScreen(a.deps, msg.CategoryID)
		s.SetSize(a.width, a.height)
		a.stack = append(a.stack, s)
		return a, s.Init()
	}

	// Остальные сообщения адресованы по id привязки или экрана,
	// поэтому их получают все экраны стека
	cmds := make([]tea.Cmd, 0, len(a.stack))
	for _, s := range a.stack {
		cmds = append(cmds, s.Update(msg))
	}
	return a, tea.Batch(cmds...)
}

func (a *App) back() {
	if len(a.stack) < 2 {
		return
	}
	top := a.current()
	a.stack = a.stack[:len(a.stack)-1]
	top.Close()
}

func (a *App) View() string {
	return a.current().View()
}

// Close освобождает все экраны после завершения программы
func (a *App) Close() {
	for _, s := range a.stack {
		s.Close()
	}
}
