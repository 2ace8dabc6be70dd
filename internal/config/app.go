package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// DefaultRatesURL is the endpoint prefix, the base currency is appended as the last path segment.
	DefaultRatesURL     = "https://api.exchangerate-api.com/v4/latest"
	DefaultBaseCurrency = "USD"
)

type HTTPServer struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// Enabled reports whether the local HTTP API should be started.
func (c HTTPServer) Enabled() bool { return c.Port != "" }

func (c HTTPServer) Addr() string { return net.JoinHostPort(c.Host, c.Port) }

type ExchangeRateAPI struct {
	URL          string `mapstructure:"url"`
	BaseCurrency string `mapstructure:"base_currency"`
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

func (c HTTPClient) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type Refresh struct {
	IntervalSeconds int `mapstructure:"interval_seconds"`
}

func (c Refresh) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

type Cache struct {
	MaxItems int64 `mapstructure:"max_items"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type AppConfig struct {
	ExchangeRateAPI ExchangeRateAPI `mapstructure:"exchange_rate_api"`
	HTTPClient      HTTPClient      `mapstructure:"http_client"`
	HTTPServer      HTTPServer      `mapstructure:"http_server"`
	Refresh         Refresh         `mapstructure:"refresh"`
	Cache           Cache           `mapstructure:"cache"`
	Logging         Logging         `mapstructure:"logging"`
}

// Init loads .env and config.yaml from the working directory. Both are optional.
func Init() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}
	return Load("config.yaml")
}

// Load reads the given yaml file when it exists and applies defaults and env overrides.
func Load(path string) (*AppConfig, error) {
	var cfg AppConfig
	v := viper.New()

	v.SetDefault("exchange_rate_api.url", DefaultRatesURL)
	v.SetDefault("exchange_rate_api.base_currency", DefaultBaseCurrency)
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("http_server.host", "127.0.0.1")
	v.SetDefault("http_server.port", "")
	v.SetDefault("refresh.interval_seconds", 0)
	v.SetDefault("cache.max_items", 1024)
	v.SetDefault("logging.level", "warn")

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// exchange rate api env vars
	_ = v.BindEnv("exchange_rate_api.url", "FX_API_URL")
	_ = v.BindEnv("exchange_rate_api.base_currency", "FX_BASE_CURRENCY")

	// http client env vars
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	// http server env vars
	_ = v.BindEnv("http_server.host", "HTTP_SERVER_HOST")
	_ = v.BindEnv("http_server.port", "HTTP_SERVER_PORT")

	_ = v.BindEnv("refresh.interval_seconds", "FX_REFRESH_INTERVAL_SECONDS")
	_ = v.BindEnv("cache.max_items", "FX_CACHE_MAX_ITEMS")
	_ = v.BindEnv("logging.level", "LOG_LEVEL")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (cfg *AppConfig) validate() error {
	if cfg.ExchangeRateAPI.URL == "" {
		return errors.New("exchange rate api url is required")
	}
	if cfg.ExchangeRateAPI.BaseCurrency == "" {
		return errors.New("base currency is required")
	}
	if cfg.Refresh.IntervalSeconds < 0 {
		return fmt.Errorf("refresh interval must not be negative, got %d", cfg.Refresh.IntervalSeconds)
	}
	return nil
}
