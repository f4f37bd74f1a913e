package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storefront/pkg/logger"
	"storefront/pkg/metrics"
)

const serviceName = "catalog-browser"

// SetupRoutes настраивает диагностические маршруты: состояние процесса и метрики
func SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())

	router.Use(logger.GinLoggerMiddleware("/health", "/metrics"))

	// Опрос /metrics не попадает в собственные счетчики
	router.Use(metrics.GinPrometheusMiddleware(serviceName, "/metrics"))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

// Server - диагностический HTTP сервер, работающий рядом с TUI
type Server struct {
	server *http.Server
}

func NewServer(addr string) *Server {
	return &Server{
		server: &http.Server{
			Addr:         addr,
			Handler:      SetupRoutes(),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start запускает сервер в отдельной горутине
func (s *Server) Start() {
	go func() {
		logger.Info().Str("addr", s.server.Addr).Msg("Starting diagnostics server")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("Diagnostics server failed")
		}
	}()
}

// Shutdown дает текущим запросам до timeout на завершение
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	logger.Info().Msg("Diagnostics server stopped gracefully")
	return nil
}
