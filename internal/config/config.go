package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/coinlens/coinlens/internal/core"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Fetch    FetchConfig    `mapstructure:"fetch"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// UpstreamConfig holds the upstream market-data source settings.
type UpstreamConfig struct {
	Binance   BinanceConfig   `mapstructure:"binance"`
	Symbol    string          `mapstructure:"symbol"` // default when the request omits ?symbol=
	Period    string          `mapstructure:"period"` // statistics period for non-funding series
	PageLimit int             `mapstructure:"page_limit"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type BinanceConfig struct {
	APIKey    string `mapstructure:"api_key"`
	APISecret string `mapstructure:"api_secret"`
	Testnet   bool   `mapstructure:"testnet"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

// FetchConfig holds window-fetch loop settings.
type FetchConfig struct {
	MaxAttempts int `mapstructure:"max_attempts"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from file
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	cfg := &Config{
		Metrics: MetricsConfig{Enabled: true},
	}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Upstream.Symbol == "" {
		cfg.Upstream.Symbol = "BTCUSDT"
	}
	if cfg.Upstream.Period == "" {
		cfg.Upstream.Period = "5m"
	}
	if cfg.Upstream.PageLimit == 0 {
		cfg.Upstream.PageLimit = 500
	}
	if cfg.Upstream.RateLimit.RPS == 0 {
		cfg.Upstream.RateLimit.RPS = 4
	}
	if cfg.Upstream.RateLimit.Burst == 0 {
		cfg.Upstream.RateLimit.Burst = 2
	}
	if cfg.Fetch.MaxAttempts == 0 {
		cfg.Fetch.MaxAttempts = 200
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("port must be between 1 and 65535, got %d", c.Server.Port))
	}

	if c.Upstream.PageLimit < 1 || c.Upstream.PageLimit > 1000 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("page_limit must be between 1 and 1000, got %d", c.Upstream.PageLimit))
	}
	if c.Upstream.RateLimit.RPS <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("rate_limit.rps must be positive, got %f", c.Upstream.RateLimit.RPS))
	}

	if c.Fetch.MaxAttempts < 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("max_attempts must be positive, got %d", c.Fetch.MaxAttempts))
	}

	switch c.Upstream.Period {
	case "5m", "15m", "30m", "1h", "2h", "4h", "6h", "12h", "1d":
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("period %q is not a supported statistics period", c.Upstream.Period))
	}

	return nil
}
