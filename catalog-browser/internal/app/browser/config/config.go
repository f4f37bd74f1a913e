package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config содержит все настройки catalog-browser
// Порядок применения: значения по умолчанию, YAML-файл (если задан), переменные окружения
type Config struct {
	API         APIConfig         `yaml:"api"`
	UI          UIConfig          `yaml:"ui"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`
	Log         LogConfig         `yaml:"log"`
}

// APIConfig - адреса Catalog API
type APIConfig struct {
	BaseURL     string        `yaml:"base_url" validate:"required,url"`
	CategoryURL string        `yaml:"category_url" validate:"required,url"` // По умолчанию BaseURL + /categories
	ProductURL  string        `yaml:"product_url" validate:"required,url"`  // По умолчанию BaseURL + /products
	Timeout     time.Duration `yaml:"timeout" validate:"gt=0"`              // Таймаут HTTP запроса
}

// UIConfig - настройки рендера экранов
type UIConfig struct {
	ErrorImageURL     string        `yaml:"error_image_url" validate:"required,url"` // Плейсхолдер для пустых и битых изображений
	ImageProbe        bool          `yaml:"image_probe"`                             // Проверять доступность изображений
	ImageProbeTimeout time.Duration `yaml:"image_probe_timeout" validate:"gt=0"`
}

// DiagnosticsConfig - необязательный HTTP сервер с /health и /metrics
type DiagnosticsConfig struct {
	Addr string `yaml:"addr" validate:"omitempty,hostname_port"` // Пусто - сервер не запускается
}

// LogConfig - логирование; stdout занят интерфейсом, поэтому пишем в файл
type LogConfig struct {
	Level        string `yaml:"level"`
	File         string `yaml:"file" validate:"required"`
	LogstashAddr string `yaml:"logstash_addr" validate:"omitempty,hostname_port"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "https://api.escuelajs.co/api/v1",
			Timeout: 10 * time.Second,
		},
		UI: UIConfig{
			ErrorImageURL:     "https://placehold.co/600x400?text=No+Image",
			ImageProbe:        true,
			ImageProbeTimeout: 5 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
			File:  "catalog-browser.log",
		},
	}
}

// Load загружает конфигурацию; path - необязательный YAML-файл
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	base := strings.TrimRight(cfg.API.BaseURL, "/")
	if cfg.API.CategoryURL == "" {
		cfg.API.CategoryURL = base + "/categories"
	}
	if cfg.API.ProductURL == "" {
		cfg.API.ProductURL = base + "/products"
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.API.BaseURL = getEnv("CATALOG_API_URL", c.API.BaseURL)
	c.API.CategoryURL = getEnv("CATEGORY_API_URL", c.API.CategoryURL)
	c.API.ProductURL = getEnv("PRODUCT_API_URL", c.API.ProductURL)

	timeout, err := getDuration("CATALOG_API_TIMEOUT", c.API.Timeout)
	if err != nil {
		return err
	}
	c.API.Timeout = timeout

	c.UI.ErrorImageURL = getEnv("ERROR_IMAGE_URL", c.UI.ErrorImageURL)

	probe, err := strconv.ParseBool(getEnv("IMAGE_PROBE_ENABLED", strconv.FormatBool(c.UI.ImageProbe)))
	if err != nil {
		return fmt.Errorf("invalid IMAGE_PROBE_ENABLED value: %w", err)
	}
	c.UI.ImageProbe = probe

	probeTimeout, err := getDuration("IMAGE_PROBE_TIMEOUT", c.UI.ImageProbeTimeout)
	if err != nil {
		return err
	}
	c.UI.ImageProbeTimeout = probeTimeout

	c.Diagnostics.Addr = getEnv("DIAGNOSTICS_ADDR", c.Diagnostics.Addr)

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.File = getEnv("LOG_FILE", c.Log.File)
	c.Log.LogstashAddr = getEnv("LOGSTASH_ADDR", c.Log.LogstashAddr)

	return nil
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}
