// Package config loads service configuration with koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default configuration values.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultMaxRequestSize caps request bodies at 64KB; a dedication is tiny.
	DefaultMaxRequestSize = 64 << 10

	DefaultClientRetryMaxAttempts     = 3
	DefaultClientRetryMultiplier      = 2.0
	DefaultClientRetryJitterFactor    = 0.25
	DefaultClientCircuitMaxFailures   = 5
	DefaultClientCircuitHalfOpenLimit = 2

	DefaultTransportMaxIdleConns        = 50
	DefaultTransportMaxIdleConnsPerHost = 10

	DefaultLogFileMaxSizeMB  = 100
	DefaultLogFileMaxBackups = 3
	DefaultLogFileMaxAgeDays = 28
)

// Storage backends.
const (
	BackendMemory  = "memory"
	BackendFile    = "file"
	BackendSQLite  = "sqlite"
	BackendBadger  = "badger"
	BackendRedis   = "redis"
	BackendRemote  = "remote"
	BackendBaserow = "baserow"
)

// Config is the root configuration structure.
type Config struct {
	App          AppConfig          `koanf:"app"          validate:"required"`
	Server       ServerConfig       `koanf:"server"       validate:"required"`
	Log          LogConfig          `koanf:"log"          validate:"required"`
	Telemetry    TelemetryConfig    `koanf:"telemetry"`
	Client       ClientConfig       `koanf:"client"       validate:"required"`
	Services     ServicesConfig     `koanf:"services"     validate:"required"`
	Storage      StorageConfig      `koanf:"storage"      validate:"required"`
	Presentation PresentationConfig `koanf:"presentation"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	RequestTimeout  time.Duration `koanf:"request_timeout"  validate:"required,min=100ms"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// ClientConfig contains settings shared by outbound HTTP clients.
type ClientConfig struct {
	Timeout        time.Duration        `koanf:"timeout"         validate:"required,min=100ms"`
	Retry          RetryConfig          `koanf:"retry"           validate:"required"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker" validate:"required"`
	Transport      TransportConfig      `koanf:"transport"       validate:"required"`
}

// RetryConfig contains retry settings for idempotent requests.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"     validate:"required,min=1,max=10"`
	InitialInterval time.Duration `koanf:"initial_interval" validate:"required,min=10ms"`
	MaxInterval     time.Duration `koanf:"max_interval"     validate:"required,min=100ms"`
	Multiplier      float64       `koanf:"multiplier"       validate:"required,min=1.1,max=10"`
	JitterFactor    float64       `koanf:"jitter_factor"    validate:"min=0,max=1"`
}

// CircuitBreakerConfig contains circuit breaker settings.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"    validate:"required,min=1"`
	Timeout       time.Duration `koanf:"timeout"         validate:"required,min=1s"`
	HalfOpenLimit int           `koanf:"half_open_limit" validate:"required,min=1"`
}

// TransportConfig contains HTTP transport pool settings.
type TransportConfig struct {
	MaxIdleConns        int           `koanf:"max_idle_conns"          validate:"required,min=1"`
	MaxIdleConnsPerHost int           `koanf:"max_idle_conns_per_host" validate:"required,min=1"`
	IdleConnTimeout     time.Duration `koanf:"idle_conn_timeout"       validate:"required,min=1s"`
}

// ServicesConfig contains downstream services.
type ServicesConfig struct {
	OEmbed OEmbedConfig `koanf:"oembed" validate:"required"`
}

// OEmbedConfig configures the song metadata provider. When disabled, song
// lookups return empty editable fields.
type OEmbedConfig struct {
	Enabled bool   `koanf:"enabled"`
	BaseURL string `koanf:"base_url" validate:"required_if=Enabled true,omitempty,url"`
	Name    string `koanf:"name"     validate:"required"`
}

// ServiceEndpointConfig identifies a downstream HTTP service.
type ServiceEndpointConfig struct {
	BaseURL string `koanf:"base_url" validate:"omitempty,url"`
	Name    string `koanf:"name"     validate:"required"`
}

// StorageConfig selects and configures the dedication store. Only the
// section matching Backend is read.
type StorageConfig struct {
	Backend string                `koanf:"backend" validate:"required,oneof=memory file sqlite badger redis remote baserow"`
	File    FileStorageConfig     `koanf:"file"`
	SQLite  SQLiteStorageConfig   `koanf:"sqlite"`
	Badger  BadgerStorageConfig   `koanf:"badger"`
	Redis   RedisStorageConfig    `koanf:"redis"`
	Remote  ServiceEndpointConfig `koanf:"remote"`
	Baserow BaserowStorageConfig  `koanf:"baserow"`
}

// FileStorageConfig configures the JSON file backing.
type FileStorageConfig struct {
	Path string `koanf:"path"`
}

// SQLiteStorageConfig configures the SQLite backing.
type SQLiteStorageConfig struct {
	Path string `koanf:"path"`
}

// BadgerStorageConfig configures the badger backing. An empty Dir keeps the
// database in memory.
type BadgerStorageConfig struct {
	Dir string `koanf:"dir"`
	Key string `koanf:"key"`
}

// RedisStorageConfig configures the redis backing.
type RedisStorageConfig struct {
	URL string `koanf:"url"`
	Key string `koanf:"key"`
}

// BaserowStorageConfig configures the Baserow table backing.
type BaserowStorageConfig struct {
	BaseURL string `koanf:"base_url" validate:"omitempty,url"`
	TableID int    `koanf:"table_id" validate:"min=0"`
	Token   string `koanf:"token"`
	Name    string `koanf:"name"`
}

// PresentationConfig controls how dates are shown.
type PresentationConfig struct {
	Timezone string `koanf:"timezone"`
}

// Location resolves the configured timezone, defaulting to UTC.
func (p PresentationConfig) Location() (*time.Location, error) {
	if p.Timezone == "" {
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return nil, fmt.Errorf("presentation.timezone: %w", err)
	}

	return loc, nil
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "dedication-wall",
		"app.version":     "dev",
		"app.environment": "local",

		"server.port":             DefaultServerPort,
		"server.host":             "0.0.0.0",
		"server.read_timeout":     "15s",
		"server.write_timeout":    "15s",
		"server.idle_timeout":     "60s",
		"server.shutdown_timeout": "10s",
		"server.request_timeout":  "10s",
		"server.max_request_size": DefaultMaxRequestSize,

		"log.level":            "info",
		"log.format":           "json",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/dedications.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "dedication-wall",
		"telemetry.sampling_rate": 1.0,

		"client.timeout":                           "5s",
		"client.retry.max_attempts":                DefaultClientRetryMaxAttempts,
		"client.retry.initial_interval":            "100ms",
		"client.retry.max_interval":                "2s",
		"client.retry.multiplier":                  DefaultClientRetryMultiplier,
		"client.retry.jitter_factor":               DefaultClientRetryJitterFactor,
		"client.circuit_breaker.max_failures":      DefaultClientCircuitMaxFailures,
		"client.circuit_breaker.timeout":           "30s",
		"client.circuit_breaker.half_open_limit":   DefaultClientCircuitHalfOpenLimit,
		"client.transport.max_idle_conns":          DefaultTransportMaxIdleConns,
		"client.transport.max_idle_conns_per_host": DefaultTransportMaxIdleConnsPerHost,
		"client.transport.idle_conn_timeout":       "90s",

		"services.oembed.enabled":  true,
		"services.oembed.base_url": "https://open.spotify.com",
		"services.oembed.name":     "spotify-oembed",

		"storage.backend":          BackendFile,
		"storage.file.path":        "./data/dedications.json",
		"storage.sqlite.path":      "./data/dedications.db",
		"storage.badger.dir":       "./data/badger",
		"storage.badger.key":       "dedications",
		"storage.redis.url":        "redis://localhost:6379/0",
		"storage.redis.key":        "dedications",
		"storage.remote.base_url":  "",
		"storage.remote.name":      "dedications-api",
		"storage.baserow.base_url": "https://api.baserow.io",
		"storage.baserow.table_id": 0,
		"storage.baserow.token":    "",
		"storage.baserow.name":     "baserow",

		"presentation.timezone": "UTC",
	}
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Environment variables (APP_ prefix), including those from a .env file
//  2. Profile config file (configs/{profile}.yaml)
//  3. Base config file (configs/base.yaml)
//  4. Default values
//
// Nested keys use a double underscore in env names, e.g.
// APP_STORAGE__BASEROW__TABLE_ID sets storage.baserow.table_id.
func Load(profile string) (*Config, error) {
	return LoadFrom(".", profile)
}

// LoadFrom is Load with configs/ and .env resolved relative to dir.
func LoadFrom(dir, profile string) (*Config, error) {
	k := koanf.New(".")

	err := k.Load(confmap.Provider(defaults(), "."), nil)
	if err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	err = loadFileIfExists(k, dir+"/configs/base.yaml")
	if err != nil {
		return nil, fmt.Errorf("loading base config: %w", err)
	}

	if profile != "" {
		err := loadFileIfExists(k, fmt.Sprintf("%s/configs/%s.yaml", dir, profile))
		if err != nil {
			return nil, fmt.Errorf("loading profile config %q: %w", profile, err)
		}
	}

	err = loadDotEnv(dir + "/.env")
	if err != nil {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	err = k.Load(env.Provider("APP_", ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config

	err = k.Unmarshal("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// envKey maps APP_STORAGE__BASEROW__TABLE_ID to storage.baserow.table_id.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "APP_")), "__", ".")
}

// loadDotEnv exports variables from path without overriding ones already set.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return godotenv.Load(path)
}

// loadFileIfExists loads a YAML config file if it exists.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}
