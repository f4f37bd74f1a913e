package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ImageProber проверяет доступность изображений перед показом
// Аналог onError у <img>: неудача означает, что нужно показать плейсхолдер
type ImageProber struct {
	httpClient *http.Client
}

func NewImageProber(timeout time.Duration) *ImageProber {
	return &ImageProber{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Probe выполняет HEAD; если сервер не поддерживает HEAD, повторяет через GET
func (p *ImageProber) Probe(ctx context.Context, url string) error {
	status, err := p.do(ctx, http.MethodHead, url)
	if err != nil {
		return err
	}
	if status == http.StatusMethodNotAllowed {
		status, err = p.do(ctx, http.MethodGet, url)
		if err != nil {
			return err
		}
	}
	if status < 200 || status > 299 {
		return fmt.Errorf("image %s returned status %d", url, status)
	}
	return nil
}

func (p *ImageProber) do(ctx context.Context, method, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create image request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to load image: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	return resp.StatusCode, nil
}
