package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"storefront/catalog-browser/internal/app/browser/config"
	"storefront/catalog-browser/internal/app/browser/handler"
	"storefront/catalog-browser/internal/app/browser/infrastructure"
	catalogHTTP "storefront/catalog-browser/internal/app/browser/infrastructure/http"
	"storefront/catalog-browser/internal/app/browser/ui"
	"storefront/pkg/logger"
)

const serviceName = "catalog-browser"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   serviceName,
		Short: "Terminal browser for the product catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, ui.Route{})
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")

	var categoryID string
	products := &cobra.Command{
		Use:   "products",
		Short: "Open the product list, optionally filtered by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, ui.Route{Products: true, CategoryID: categoryID})
		},
	}
	products.Flags().StringVar(&categoryID, "category", "", "category id to preselect")
	root.AddCommand(products)

	return root
}

func run(configPath string, route ui.Route) error {
	// === ИНИЦИАЛИЗАЦИЯ КОНФИГУРАЦИИ ===
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// === ЛОГИРОВАНИЕ ===
	// stdout занят интерфейсом, логи пишутся в файл
	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	logger.Init(serviceName, cfg.Log.Level, logFile)

	if cfg.Log.LogstashAddr != "" {
		conn, err := logger.InitLogstash(cfg.Log.LogstashAddr, serviceName, cfg.Log.Level, logFile)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Logstash, using log file only")
		} else {
			defer conn.Close()
			logger.Info().Str("logstash_addr", cfg.Log.LogstashAddr).Msg("Connected to Logstash")
		}
	}

	logger.Info().
		Str("category_url", cfg.API.CategoryURL).
		Str("product_url", cfg.API.ProductURL).
		Dur("timeout", cfg.API.Timeout).
		Msg("Starting catalog browser")

	// === ДИАГНОСТИКА ===
	if cfg.Diagnostics.Addr != "" {
		server := handler.NewServer(cfg.Diagnostics.Addr)
		server.Start()
		defer func() {
			if err := server.Shutdown(5 * time.Second); err != nil {
				logger.Error().Err(err).Msg("Diagnostics server forced to shutdown")
			}
		}()
	}

	// === КЛИЕНТЫ CATALOG API ===
	// Без проверки изображений интерфейс должен остаться nil
	var images infrastructure.ImageChecker
	if cfg.UI.ImageProbe {
		images = catalogHTTP.NewImageProber(cfg.UI.ImageProbeTimeout)
	}

	app := ui.NewApp(ui.Deps{
		Fetcher:     catalogHTTP.NewCatalogClient(cfg.API.Timeout),
		Images:      images,
		CategoryURL: cfg.API.CategoryURL,
		ProductURL:  cfg.API.ProductURL,
		Placeholder: cfg.UI.ErrorImageURL,
	}, route)
	defer app.Close()

	// === ЗАПУСК ИНТЕРФЕЙСА ===
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		logger.Error().Err(err).Msg("Catalog browser crashed")
		return fmt.Errorf("failed to run program: %w", err)
	}

	logger.Info().Msg("Catalog browser stopped")
	return nil
}
