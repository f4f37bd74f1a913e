package http

import (
	"fmt"
)

// NetworkError - запрос не удалось выполнить (DNS, соединение, таймаут, отмена)
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure requesting %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError - сервер ответил статусом вне диапазона 2xx
type APIError struct {
	URL        string
	StatusCode int
	Body       string // Начало тела ответа для диагностики
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("catalog API returned status %d for %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("catalog API returned status %d for %s: %s", e.StatusCode, e.URL, e.Body)
}

// ParseError - тело ответа не является ожидаемым JSON
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse response from %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
