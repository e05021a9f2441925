// Package config loads and validates client configuration from env and an
// optional config file using Viper.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the client needs to talk to the marketplace
// backend and the inference service.
type Config struct {
	// BaseURL is the marketplace API root, e.g. https://api.agromarket.example/api.
	BaseURL string `mapstructure:"BASE_URL"`
	// UploadsURL is the origin serving uploaded images; defaults to BaseURL
	// with the /api suffix stripped.
	UploadsURL string `mapstructure:"UPLOADS_URL"`
	// InferenceURL is the plant-disease inference endpoint (separate origin).
	InferenceURL string `mapstructure:"INFERENCE_URL"`

	// RequestTimeout bounds every outbound request. Timeouts are reported as
	// network-class failures.
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	// RefreshLead is how far before expiry a token is refreshed.
	RefreshLead time.Duration `mapstructure:"REFRESH_LEAD"`

	// DataDir holds the durable session store and analysis history.
	DataDir string `mapstructure:"DATA_DIR"`
	// RedisAddr, when set, replaces the SQLite durable tier with Redis so
	// several workers can share one account session.
	RedisAddr   string `mapstructure:"REDIS_ADDR"`
	RedisPrefix string `mapstructure:"REDIS_PREFIX"`

	OTELEnabled               bool          `mapstructure:"OTEL_ENABLED"`
	OTELExporterOTLPEndpoint  string        `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTELExporterOTLPInsecure  bool          `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`
	OTELServiceName           string        `mapstructure:"OTEL_SERVICE_NAME"`
	OTELEnvironment           string        `mapstructure:"OTEL_ENVIRONMENT"`
	OTELMetricsExportInterval time.Duration `mapstructure:"OTEL_METRICS_EXPORT_INTERVAL"`
}

// Load builds and validates Config. Precedence: env vars (AGROMARKET_*),
// then $AGROMARKET_DATA_DIR/config.yaml, then defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("AGROMARKET")
	v.AutomaticEnv()

	home, _ := os.UserHomeDir()
	defaultDataDir := filepath.Join(home, ".agromarket")

	v.SetDefault("BASE_URL", "")
	v.SetDefault("UPLOADS_URL", "")
	v.SetDefault("INFERENCE_URL", "")
	v.SetDefault("REQUEST_TIMEOUT", "10s")
	v.SetDefault("REFRESH_LEAD", "5m")
	v.SetDefault("DATA_DIR", defaultDataDir)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PREFIX", "agromarket_client")
	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", true)
	v.SetDefault("OTEL_SERVICE_NAME", "agromarket-client")
	v.SetDefault("OTEL_ENVIRONMENT", "development")
	v.SetDefault("OTEL_METRICS_EXPORT_INTERVAL", "30s")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(v.GetString("DATA_DIR"))
	_ = v.ReadInConfig() // a missing config file is fine

	var cfg Config
	err := v.Unmarshal(&cfg)
	if err != nil {
		err = fmt.Errorf("parse config: %w", err)
	} else {
		err = cfg.validate()
	}
	recordConfigLoadEvent(context.Background(), classifyConfigError(err))
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// classifyConfigError buckets a load failure for the config.load.events
// counter.
func classifyConfigError(err error) string {
	switch {
	case err == nil:
		return "none"
	case strings.Contains(err.Error(), "validate config"):
		return "validation"
	case strings.Contains(err.Error(), "parse config"):
		return "parse"
	default:
		return "load"
	}
}

func (c *Config) validate() error {
	if c.BaseURL == "" {
		return errors.New("validate config: AGROMARKET_BASE_URL must be set")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("validate config: REQUEST_TIMEOUT must be positive")
	}
	if c.RefreshLead <= 0 {
		return errors.New("validate config: REFRESH_LEAD must be positive")
	}
	if c.UploadsURL == "" {
		c.UploadsURL = trimAPISuffix(c.BaseURL)
	}
	return nil
}

func trimAPISuffix(base string) string {
	const suffix = "/api"
	if len(base) > len(suffix) && base[len(base)-len(suffix):] == suffix {
		return base[:len(base)-len(suffix)]
	}
	return base
}
