package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"storefront/catalog-browser/internal/app/browser/infrastructure"
	"storefront/pkg/logger"
)

// imageFailedMsg - изображение не загрузилось при показе
type imageFailedMsg struct {
	screenID string
	url      string
	err      error
}

// probeImages проверяет изображения параллельно; успешные проверки
// сообщений не порождают
func probeImages(ctx context.Context, checker infrastructure.ImageChecker, screenID string, urls []string) tea.Cmd {
	if checker == nil || len(urls) == 0 {
		return nil
	}

	cmds := make([]tea.Cmd, 0, len(urls))
	for _, url := range urls {
		url := url
		cmds = append(cmds, func() tea.Msg {
			if err := checker.Probe(ctx, url); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				logger.Component("images").Debug().Err(err).Str("url", url).Msg("Image failed to load")
				return imageFailedMsg{screenID: screenID, url: url, err: err}
			}
			return nil
		})
	}
	return tea.Batch(cmds...)
}
