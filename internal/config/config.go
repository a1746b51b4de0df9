package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

type Config struct {
	Port         string   `mapstructure:"PORT"`
	Env          string   `mapstructure:"ENV"`
	GinMode      string   `mapstructure:"GIN_MODE"`
	LogLevel     string   `mapstructure:"LOG_LEVEL"`
	ModelSource  string   `mapstructure:"MODEL_SOURCE"`
	ModelPath    string   `mapstructure:"MODEL_PATH"`
	ModelName    string   `mapstructure:"MODEL_NAME"`
	EnableDB     bool     `mapstructure:"ENABLE_DB"`
	DatabaseURL  string   `mapstructure:"DATABASE_URL"`
	CORSOrigins  []string `mapstructure:"-"`
	MaxBodyBytes int64    `mapstructure:"MAX_BODY_BYTES"`
}

var keys = []string{
	"PORT", "ENV", "GIN_MODE", "LOG_LEVEL", "MODEL_SOURCE", "MODEL_PATH",
	"MODEL_NAME", "ENABLE_DB", "DATABASE_URL", "CORS_ORIGINS", "MAX_BODY_BYTES",
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MODEL_SOURCE", SourceFile)
	v.SetDefault("MODEL_PATH", "cardio_model.json")
	v.SetDefault("MODEL_NAME", "cardio")
	v.SetDefault("ENABLE_DB", false)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("MAX_BODY_BYTES", 1<<20)
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	for _, o := range strings.Split(v.GetString("CORS_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unknown GIN_MODE %q (want debug, release or test)", c.GinMode)
	}
	switch c.ModelSource {
	case SourceFile:
		if c.ModelPath == "" {
			return fmt.Errorf("MODEL_PATH is required when MODEL_SOURCE=%s", SourceFile)
		}
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when MODEL_SOURCE=%s", SourcePostgres)
		}
	default:
		return fmt.Errorf("unknown MODEL_SOURCE %q", c.ModelSource)
	}
	if c.EnableDB && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required when ENABLE_DB=true")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}
	return nil
}

// NeedsDB reports whether a database connection must be opened.
func (c *Config) NeedsDB() bool {
	return c.EnableDB || c.ModelSource == SourcePostgres
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}
