package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jvigneron-hub/gistools/pkg/place"
)

// Config holds the full application configuration.
type Config struct {
	Google GoogleConfig `yaml:"google" mapstructure:"google"`
	Place  PlaceConfig  `yaml:"place" mapstructure:"place"`
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Batch  BatchConfig  `yaml:"batch" mapstructure:"batch"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// GoogleConfig holds Maps web service credentials and client tuning.
type GoogleConfig struct {
	Key      string `yaml:"key" mapstructure:"key"`
	Language string `yaml:"language" mapstructure:"language"`
	Region   string `yaml:"region" mapstructure:"region"`
	QPS      int    `yaml:"qps" mapstructure:"qps"`
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"`
}

// PlaceConfig holds the resolution profile applied to every place.
type PlaceConfig struct {
	Components map[string]string `yaml:"components" mapstructure:"components"`
	Business   bool              `yaml:"business" mapstructure:"business"`
	CodeLength int               `yaml:"code_length" mapstructure:"code_length"`
	Thresholds place.Thresholds  `yaml:"thresholds" mapstructure:"thresholds"`
}

// StoreConfig configures the response cache and run bookkeeping backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// BatchConfig configures batch dataset processing.
type BatchConfig struct {
	Workers int  `yaml:"workers" mapstructure:"workers"`
	Cache   bool `yaml:"cache" mapstructure:"cache"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment. The file is
// optional; environment variables use the GISTOOLS_ prefix with dots
// flattened to underscores (GISTOOLS_GOOGLE_KEY, GISTOOLS_STORE_DRIVER).
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("GISTOOLS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("google.language", "fr")
	v.SetDefault("google.region", "fr")
	v.SetDefault("google.qps", 10)
	v.SetDefault("place.components", map[string]string{"country": "france"})
	v.SetDefault("place.business", false)
	v.SetDefault("place.code_length", 10)
	v.SetDefault("place.thresholds.overall", 0.85)
	v.SetDefault("place.thresholds.name", 0.0)
	v.SetDefault("place.thresholds.addr", 0.0)
	v.SetDefault("place.thresholds.city", 0.9)
	v.SetDefault("place.thresholds.postal_code", 1.0)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "gistools.db")
	v.SetDefault("batch.workers", 8)
	v.SetDefault("batch.cache", true)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the fields the given mode depends on: "resolve" for
// one-shot lookups, "batch" for dataset runs, "serve" for the HTTP API.
func (c *Config) Validate(mode string) error {
	var issues []string

	appendThresholdIssues := func() {
		for key, v := range map[string]float64{
			"overall":     c.Place.Thresholds.Overall,
			"name":        c.Place.Thresholds.Name,
			"addr":        c.Place.Thresholds.Addr,
			"city":        c.Place.Thresholds.City,
			"postal_code": c.Place.Thresholds.PostalCode,
		} {
			if v < 0 || v > 1 {
				issues = append(issues, fmt.Sprintf("place.thresholds.%s must be between 0 and 1", key))
			}
		}
		if c.Place.CodeLength < 2 || c.Place.CodeLength > 15 {
			issues = append(issues, "place.code_length must be between 2 and 15")
		}
	}

	requireKey := func() {
		if c.Google.Key == "" {
			issues = append(issues, "google.key is required")
		}
	}

	requireStore := func() {
		switch c.Store.Driver {
		case "sqlite", "postgres":
		default:
			issues = append(issues, "store.driver must be sqlite or postgres")
		}
		if c.Store.DatabaseURL == "" {
			issues = append(issues, "store.database_url is required")
		}
	}

	requireWorkers := func() {
		if c.Batch.Workers < 1 || c.Batch.Workers > 64 {
			issues = append(issues, "batch.workers must be between 1 and 64")
		}
	}

	switch mode {
	case "resolve":
		requireKey()
		appendThresholdIssues()
	case "batch":
		requireKey()
		requireStore()
		requireWorkers()
		appendThresholdIssues()
	case "serve":
		requireKey()
		requireWorkers()
		appendThresholdIssues()
		if c.Server.Port <= 0 {
			issues = append(issues, "server.port must be > 0")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(issues) > 0 {
		return eris.Errorf("config: invalid configuration: %s", strings.Join(issues, "; "))
	}
	return nil
}

// PlaceOptions renders the place profile as constructor options.
func (c *Config) PlaceOptions() []place.Option {
	return []place.Option{
		place.WithComponents(c.Place.Components),
		place.WithLanguage(c.Google.Language),
		place.WithBusiness(c.Place.Business),
		place.WithCodeLength(c.Place.CodeLength),
		place.WithThresholds(c.Place.Thresholds),
	}
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
