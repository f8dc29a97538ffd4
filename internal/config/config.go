// Package config loads LogiClue settings from defaults, an optional YAML
// file, a .env file and LOGICLUE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/logiclue/logiclue/internal/analysis"
	"github.com/logiclue/logiclue/internal/llm"
	"github.com/logiclue/logiclue/internal/server"
	"github.com/logiclue/logiclue/internal/store"
)

// EnvPrefix prefixes every environment override, e.g. LOGICLUE_LLM_PROVIDER.
const EnvPrefix = "LOGICLUE"

// Config is the full application configuration.
type Config struct {
	LLM      llm.Config      `mapstructure:"llm" yaml:"llm"`
	Store    store.Config    `mapstructure:"store" yaml:"store"`
	Server   server.Config   `mapstructure:"server" yaml:"server"`
	Analysis analysis.Config `mapstructure:"analysis" yaml:"analysis"`
	Log      LogConfig       `mapstructure:"log" yaml:"log"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-" yaml:"-"`
}

// LogConfig selects the slog level and handler.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`   // debug, info, warn, error
	Format string `mapstructure:"format" yaml:"format"` // text or json
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LLM:      llm.DefaultConfig(),
		Store:    store.Config{Driver: store.DriverSQLite},
		Server:   server.DefaultConfig(),
		Analysis: analysis.DefaultConfig(),
		Log:      LogConfig{Level: "info", Format: "text"},
	}
}

// Load builds the configuration. path may be empty, in which case
// ./logiclue.yaml and $HOME/.config/logiclue/config.yaml are tried.
// Precedence, highest first: LOGICLUE_* env, the config file, defaults.
// Provider API keys fall back to their conventional variables.
func Load(path string) (*Config, error) {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v, Default())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("logiclue")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home + "/.config/logiclue")
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	llm.FillKeysFromEnv(&cfg.LLM)
	cfg.Analysis.Provider = cfg.LLM.Provider
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("llm.provider", d.LLM.Provider)
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", d.LLM.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", d.LLM.OpenRouter.BaseURL)
	v.SetDefault("llm.openrouter.site_url", d.LLM.OpenRouter.SiteURL)
	v.SetDefault("llm.openrouter.app_title", d.LLM.OpenRouter.AppTitle)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", d.LLM.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", d.LLM.Anthropic.Model)
	v.SetDefault("llm.anthropic.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", d.LLM.Gemini.Model)
	v.SetDefault("llm.retry.max_attempts", d.LLM.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.LLM.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.LLM.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.LLM.Retry.Multiplier)
	v.SetDefault("llm.rate_limit.rps", d.LLM.RateLimit.RPS)
	v.SetDefault("llm.rate_limit.burst", d.LLM.RateLimit.Burst)
	v.SetDefault("llm.cache_ttl", d.LLM.CacheTTL)
	v.SetDefault("llm.timeout", d.LLM.Timeout)

	v.SetDefault("store.driver", d.Store.Driver)
	v.SetDefault("store.dsn", d.Store.DSN)

	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.cors_origins", d.Server.CORSOrigins)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)

	v.SetDefault("analysis.max_tokens", d.Analysis.MaxTokens)
	v.SetDefault("analysis.temperature", d.Analysis.Temperature)
	v.SetDefault("analysis.extract_max_tokens", d.Analysis.ExtractMaxTokens)
	v.SetDefault("analysis.batch_concurrency", d.Analysis.BatchConcurrency)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Validate checks the settings a command needs before it touches the
// network or the database.
func (c *Config) Validate() error {
	if err := c.LLM.Validate(); err != nil {
		return err
	}
	switch c.Store.Driver {
	case "", store.DriverSQLite:
	case store.DriverPostgres:
		if c.Store.DSN == "" {
			return fmt.Errorf("store.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported store driver %q", c.Store.Driver)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}

// StoreConfig returns the store settings with the default SQLite path
// filled in when no DSN is set.
func (c *Config) StoreConfig() (store.Config, error) {
	sc := c.Store
	if sc.Driver == "" {
		sc.Driver = store.DriverSQLite
	}
	if sc.DSN == "" && sc.Driver == store.DriverSQLite {
		p, err := store.DefaultDBPath()
		if err != nil {
			return sc, err
		}
		sc.DSN = p
	}
	return sc, nil
}

// Redacted returns a copy with API keys masked, for display.
func (c *Config) Redacted() *Config {
	out := *c
	out.LLM.OpenRouter.APIKey = mask(c.LLM.OpenRouter.APIKey)
	out.LLM.OpenAI.APIKey = mask(c.LLM.OpenAI.APIKey)
	out.LLM.Anthropic.APIKey = mask(c.LLM.Anthropic.APIKey)
	out.LLM.Gemini.APIKey = mask(c.LLM.Gemini.APIKey)
	if c.Store.Driver == store.DriverPostgres && c.Store.DSN != "" {
		out.Store.DSN = mask(c.Store.DSN)
	}
	return &out
}

func mask(s string) string {
	switch {
	case s == "":
		return ""
	case len(s) <= 8:
		return "****"
	}
	return s[:4] + "****"
}
