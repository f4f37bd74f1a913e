package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestIDHeader - заголовок корреляции запросов
const RequestIDHeader = "X-Request-ID"

// RequestIDKey - ключ идентификатора запроса в gin.Context
const RequestIDKey = "request_id"

// GinLoggerMiddleware пишет одну запись на запрос диагностического сервера.
// Успешные запросы к quietPaths (периодический опрос /health, /metrics)
// пишутся на уровне debug, чтобы не забивать файл лога
func GinLoggerMiddleware(quietPaths ...string) gin.HandlerFunc {
	quiet := make(map[string]bool, len(quietPaths))
	for _, p := range quietPaths {
		quiet[p] = true
	}

	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = NewRequestID()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		event := requestEvent(status, quiet[c.Request.URL.Path]).
			Str(RequestIDKey, requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("duration", time.Since(start))
		if len(c.Errors) > 0 {
			event = event.Str("error", c.Errors.String())
		}
		event.Msg("Diagnostics request")
	}
}

func requestEvent(status int, quiet bool) *zerolog.Event {
	switch {
	case status >= 500:
		return Error()
	case status >= 400:
		return Warn()
	case quiet:
		return Debug()
	default:
		return Info()
	}
}

// NewRequestID генерирует идентификатор для заголовка X-Request-ID
func NewRequestID() string {
	return uuid.NewString()
}
