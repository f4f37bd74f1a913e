package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"storefront/catalog-browser/internal/app/browser/infrastructure"
)

// Deps - зависимости экранов
type Deps struct {
	Fetcher     infrastructure.CatalogFetcher
	Images      infrastructure.ImageChecker // nil - изображения не проверяются
	CategoryURL string
	ProductURL  string
	Placeholder string
}

// screen - экран, управляемый App. Экраны изменяются на месте
// и возвращают только команды
type screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	Close()
	// CapturesText сообщает, что печатные клавиши уходят в поле ввода
	CapturesText() bool
}

func newSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = DefaultStyles().Selected
	return s
}

// renderStatus - индикатор загрузки или ошибки над списком
func renderStatus(styles Styles, s spinner.Model, isLoading, isError bool, err error) string {
	switch {
	case isLoading:
		return s.View() + " Loading..."
	case isError:
		msg := "unknown error"
		if err != nil {
			msg = err.Error()
		}
		return styles.Error.Render("Error: " + msg)
	default:
		return ""
	}
}

// linesPerItem - заголовок, подзаголовок/изображение и отступ
const linesPerItem = 3

// renderItems выводит окно списка вокруг курсора, подстраиваясь под высоту
func renderItems(styles Styles, items []Item, cursor, height int, empty string) string {
	if len(items) == 0 {
		return styles.Muted.Render(empty)
	}

	start, end := 0, len(items)
	if height > 0 {
		visible := height / linesPerItem
		if visible < 1 {
			visible = 1
		}
		if visible < len(items) {
			start = cursor - visible/2
			if start < 0 {
				start = 0
			}
			end = start + visible
			if end > len(items) {
				end = len(items)
				start = end - visible
			}
		}
	}

	var sb strings.Builder
	for i := start; i < end; i++ {
		item := items[i]
		title := item.Title
		if item.Subtitle != "" {
			title += "  " + styles.Muted.Render(item.Subtitle)
		}
		if i == cursor {
			sb.WriteString(styles.Selected.Render("> " + title))
		} else {
			sb.WriteString(styles.Item.Render(title))
		}
		sb.WriteString("\n")
		sb.WriteString(styles.Item.Render(styles.Muted.Render("    image: " + item.ImageURL)))
		sb.WriteString("\n\n")
	}
	if start > 0 || end < len(items) {
		sb.WriteString(styles.Muted.Render(fmt.Sprintf("%d-%d of %d", start+1, end, len(items))))
	}
	return sb.String()
}

func clampCursor(cursor, length int) int {
	if cursor >= length {
		cursor = length - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}
