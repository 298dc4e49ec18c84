// Package config provides application configuration management using Viper.
// Configuration is loaded from YAML files and environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Provider ProviderConfig `mapstructure:"provider"`
	Service  ServiceConfig  `mapstructure:"service"`
	Refresh  RefreshConfig  `mapstructure:"refresh"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Sentry   SentryConfig   `mapstructure:"sentry"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name  string `mapstructure:"name"`
	Env   string `mapstructure:"env"` // development, staging, production
	Port  int    `mapstructure:"port"`
	Debug bool   `mapstructure:"debug"`
}

// ProviderConfig holds external provider settings.
type ProviderConfig struct {
	StreamAvail StreamAvailConfig `mapstructure:"streamavail"`
	Simkl       SimklConfig       `mapstructure:"simkl"`
}

// StreamAvailConfig holds the streaming availability provider settings.
type StreamAvailConfig struct {
	ProviderEndpoint `mapstructure:",squash"`
	APIKey           string `mapstructure:"api_key"`
	APIHost          string `mapstructure:"api_host"`
	Country          string `mapstructure:"country"`
}

// SimklConfig holds the title metadata provider settings.
type SimklConfig struct {
	ProviderEndpoint `mapstructure:",squash"`
	ClientID         string `mapstructure:"client_id"`
	ImageBase        string `mapstructure:"image_base"`
}

// ProviderEndpoint holds the settings shared by every provider client.
type ProviderEndpoint struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Retry   RetryConfig   `mapstructure:"retry"`
	CB      CBConfig      `mapstructure:"circuit_breaker"`
}

// RetryConfig holds retry settings.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	WaitTime    time.Duration `mapstructure:"wait_time"`
	MaxWaitTime time.Duration `mapstructure:"max_wait_time"`
}

// CBConfig holds circuit breaker settings.
type CBConfig struct {
	MaxRequests  uint32        `mapstructure:"max_requests"`
	Interval     time.Duration `mapstructure:"interval"`
	Timeout      time.Duration `mapstructure:"timeout"`
	FailureRatio float64       `mapstructure:"failure_ratio"`
}

// ServiceConfig holds aggregation service settings.
type ServiceConfig struct {
	// OperationTimeout caps a single public read operation end to end,
	// including every provider sub-fetch it fans out to.
	OperationTimeout time.Duration `mapstructure:"operation_timeout"`
}

// RefreshConfig holds background cache refresh worker settings.
type RefreshConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Interval  time.Duration `mapstructure:"interval"`
	OnStartup bool          `mapstructure:"on_startup"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
	Output string `mapstructure:"output"` // stdout, stderr, file path
}

// SentryConfig holds Sentry error tracking settings.
type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

// RedisConfig holds Redis connection settings for the cache store and
// distributed locking.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the host:port address for the Redis client.
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CacheConfig holds cache store settings. ShortTTL covers volatile
// listings, LongTTL covers stable metadata.
type CacheConfig struct {
	ShortTTL  time.Duration `mapstructure:"short_ttl"`
	LongTTL   time.Duration `mapstructure:"long_ttl"`
	KeyPrefix string        `mapstructure:"key_prefix"`
}

// Load reads configuration from file and environment variables.
// Priority: env vars > config file > defaults
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Config file settings
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Config file not found, continue with defaults + env vars
	}

	// Environment variable settings
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "media-catalog-service")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.debug", true)

	// Streaming availability provider defaults
	v.SetDefault("provider.streamavail.base_url", "http://localhost:8081")
	v.SetDefault("provider.streamavail.api_key", "")
	v.SetDefault("provider.streamavail.api_host", "streaming-availability.p.rapidapi.com")
	v.SetDefault("provider.streamavail.country", "us")
	v.SetDefault("provider.streamavail.timeout", "10s")
	v.SetDefault("provider.streamavail.retry.max_attempts", 3)
	v.SetDefault("provider.streamavail.retry.wait_time", "1s")
	v.SetDefault("provider.streamavail.retry.max_wait_time", "5s")
	v.SetDefault("provider.streamavail.circuit_breaker.max_requests", 3)
	v.SetDefault("provider.streamavail.circuit_breaker.interval", "60s")
	v.SetDefault("provider.streamavail.circuit_breaker.timeout", "30s")
	v.SetDefault("provider.streamavail.circuit_breaker.failure_ratio", 0.5)

	// Title metadata provider defaults
	v.SetDefault("provider.simkl.base_url", "http://localhost:8082")
	v.SetDefault("provider.simkl.client_id", "")
	v.SetDefault("provider.simkl.image_base", "https://simkl.in")
	v.SetDefault("provider.simkl.timeout", "10s")
	v.SetDefault("provider.simkl.retry.max_attempts", 3)
	v.SetDefault("provider.simkl.retry.wait_time", "1s")
	v.SetDefault("provider.simkl.retry.max_wait_time", "5s")
	v.SetDefault("provider.simkl.circuit_breaker.max_requests", 3)
	v.SetDefault("provider.simkl.circuit_breaker.interval", "60s")
	v.SetDefault("provider.simkl.circuit_breaker.timeout", "30s")
	v.SetDefault("provider.simkl.circuit_breaker.failure_ratio", 0.5)

	// Service defaults
	v.SetDefault("service.operation_timeout", "30s")

	// Refresh defaults
	v.SetDefault("refresh.enabled", true)
	v.SetDefault("refresh.interval", "4h")
	v.SetDefault("refresh.on_startup", true)
	v.SetDefault("refresh.timeout", "2m")

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output", "stdout")

	// Sentry defaults
	v.SetDefault("sentry.enabled", false)
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "development")
	v.SetDefault("sentry.sample_rate", 1.0)

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Cache defaults
	v.SetDefault("cache.short_ttl", "6h")
	v.SetDefault("cache.long_ttl", "24h")
	v.SetDefault("cache.key_prefix", "media-catalog")
}
