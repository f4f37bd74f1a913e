package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"storefront/catalog-browser/internal/app/browser/infrastructure"
	"storefront/catalog-browser/internal/app/browser/infrastructure/mocks"
)

const (
	testCategoryURL = "http://api.test/categories"
	testProductURL  = "http://api.test/products"
	testPlaceholder = "http://img.test/placeholder.png"
)

func newTestDeps(fetcher *mocks.MockCatalogFetcher, images infrastructure.ImageChecker) Deps {
	return Deps{
		Fetcher:     fetcher,
		Images:      images,
		CategoryURL: testCategoryURL,
		ProductURL:  testProductURL,
		Placeholder: testPlaceholder,
	}
}

// collect выполняет команду вместе с вложенными batch-командами.
// Команды, которые ждут таймер (мигание курсора), пропускаются
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(100 * time.Millisecond):
		return nil
	}

	switch m := msg.(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range m {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// pump прогоняет сообщения через update, пока очередь не опустеет
func pump(update func(tea.Msg) tea.Cmd, cmd tea.Cmd) {
	queue := collect(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		if _, ok := msg.(spinner.TickMsg); ok {
			continue
		}
		queue = append(queue, collect(update(msg))...)
	}
}

func keyPress(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
