package config

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a fully valid configuration for testing.
func validConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:        "test-service",
			Version:     "1.0.0",
			Environment: "local",
		},
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RequestTimeout:  10 * time.Second,
			MaxRequestSize:  65536,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Client: ClientConfig{
			Timeout: 30 * time.Second,
			Retry: RetryConfig{
				MaxAttempts:     3,
				InitialInterval: 100 * time.Millisecond,
				MaxInterval:     5 * time.Second,
				Multiplier:      2.0,
				JitterFactor:    0.25,
			},
			CircuitBreaker: CircuitBreakerConfig{
				MaxFailures:   5,
				Timeout:       30 * time.Second,
				HalfOpenLimit: 3,
			},
			Transport: TransportConfig{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		Services: ServicesConfig{
			OEmbed: OEmbedConfig{
				Enabled: true,
				BaseURL: "https://open.spotify.com",
				Name:    "spotify-oembed",
			},
		},
		Storage: StorageConfig{
			Backend: BackendFile,
			File:    FileStorageConfig{Path: "./data/dedications.json"},
		},
		Presentation: PresentationConfig{Timezone: "UTC"},
	}
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	cfg := validConfig()
	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestConfig_Validate_AppConfig(t *testing.T) {
	t.Run("missing name", func(t *testing.T) {
		cfg := validConfig()
		cfg.App.Name = ""

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "app.name")
		assert.Contains(t, err.Error(), "required")
	})

	t.Run("missing version", func(t *testing.T) {
		cfg := validConfig()
		cfg.App.Version = ""

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "app.version")
	})

	t.Run("missing environment", func(t *testing.T) {
		cfg := validConfig()
		cfg.App.Environment = ""

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "app.environment")
	})

	t.Run("invalid environment", func(t *testing.T) {
		cfg := validConfig()
		cfg.App.Environment = "invalid"

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "app.environment")
		assert.Contains(t, err.Error(), "must be one of")
	})
}

func TestConfig_Validate_ValidEnvironments(t *testing.T) {
	validEnvs := []string{"local", "dev", "qa", "prod", "test"}

	for _, env := range validEnvs {
		t.Run(env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = env

			err := cfg.Validate()
			assert.NoError(t, err)
		})
	}
}

func TestConfig_Validate_ServerConfig(t *testing.T) {
	t.Run("valid port range", func(t *testing.T) {
		tests := []struct {
			name    string
			port    int
			wantErr bool
		}{
			{"minimum valid port", 1, false},
			{"typical port", 8080, false},
			{"maximum valid port", 65535, false},
			{"zero port", 0, true},
			{"negative port", -1, true},
			{"port too high", 65536, true},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				cfg := validConfig()
				cfg.Server.Port = tt.port

				err := cfg.Validate()
				if tt.wantErr {
					assert.Error(t, err)
					assert.Contains(t, err.Error(), "server.port")
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})

	t.Run("missing host", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.Host = ""

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server.host")
	})

	t.Run("timeout minimum", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.ReadTimeout = 500 * time.Millisecond // Less than 1s minimum

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server.readtimeout")
	})

	t.Run("max request size minimum", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.MaxRequestSize = 0

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server.maxrequestsize")
	})
}

func TestConfig_Validate_LogConfig(t *testing.T) {
	t.Run("valid log levels", func(t *testing.T) {
		levels := []string{"trace", "debug", "info", "warn", "error"}
		for _, level := range levels {
			t.Run(level, func(t *testing.T) {
				cfg := validConfig()
				cfg.Log.Level = level

				err := cfg.Validate()
				assert.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level", func(t *testing.T) {
		cfg := validConfig()
		cfg.Log.Level = "invalid"

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log.level")
		assert.Contains(t, err.Error(), "must be one of")
	})

	t.Run("case sensitive log level", func(t *testing.T) {
		cfg := validConfig()
		cfg.Log.Level = "DEBUG" // Should be lowercase

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log.level")
	})

	t.Run("valid log formats", func(t *testing.T) {
		formats := []string{"json", "text", "pretty"}
		for _, format := range formats {
			t.Run(format, func(t *testing.T) {
				cfg := validConfig()
				cfg.Log.Format = format

				err := cfg.Validate()
				assert.NoError(t, err)
			})
		}
	})

	t.Run("invalid log format", func(t *testing.T) {
		cfg := validConfig()
		cfg.Log.Format = "xml"

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log.format")
	})
}

func TestConfig_Validate_LogFileConfig(t *testing.T) {
	t.Run("file logging disabled - path not required", func(t *testing.T) {
		cfg := validConfig()
		cfg.Log.File.Enabled = false
		cfg.Log.File.Path = ""

		err := cfg.Validate()
		assert.NoError(t, err)
	})

	t.Run("file logging enabled - path required", func(t *testing.T) {
		cfg := validConfig()
		cfg.Log.File.Enabled = true
		cfg.Log.File.Path = ""

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log.file.path")
	})

	t.Run("file logging enabled with valid config", func(t *testing.T) {
		cfg := validConfig()
		cfg.Log.File.Enabled = true
		cfg.Log.File.Path = "/var/log/app.log"
		cfg.Log.File.MaxSizeMB = 100
		cfg.Log.File.MaxBackups = 3
		cfg.Log.File.MaxAgeDays = 28

		err := cfg.Validate()
		assert.NoError(t, err)
	})

	t.Run("max size bounds", func(t *testing.T) {
		cfg := validConfig()
		cfg.Log.File.Enabled = true
		cfg.Log.File.Path = "/var/log/app.log"
		cfg.Log.File.MaxSizeMB = 1025 // Exceeds max of 1024

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log.file.maxsize")
	})
}

func TestConfig_Validate_TelemetryConfig(t *testing.T) {
	t.Run("telemetry disabled - endpoint not required", func(t *testing.T) {
		cfg := validConfig()
		cfg.Telemetry.Enabled = false
		cfg.Telemetry.Endpoint = ""

		err := cfg.Validate()
		assert.NoError(t, err)
	})

	t.Run("telemetry enabled - endpoint required", func(t *testing.T) {
		cfg := validConfig()
		cfg.Telemetry.Enabled = true
		cfg.Telemetry.Endpoint = ""
		cfg.Telemetry.ServiceName = "test"

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "telemetry.endpoint")
	})

	t.Run("telemetry enabled - service name required", func(t *testing.T) {
		cfg := validConfig()
		cfg.Telemetry.Enabled = true
		cfg.Telemetry.Endpoint = "http://localhost:4317"
		cfg.Telemetry.ServiceName = ""

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "telemetry.servicename")
	})

	t.Run("telemetry enabled - invalid endpoint URL", func(t *testing.T) {
		cfg := validConfig()
		cfg.Telemetry.Enabled = true
		cfg.Telemetry.Endpoint = "not-a-url"
		cfg.Telemetry.ServiceName = "test"

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "telemetry.endpoint")
	})

	t.Run("telemetry enabled with valid config", func(t *testing.T) {
		cfg := validConfig()
		cfg.Telemetry.Enabled = true
		cfg.Telemetry.Endpoint = "http://localhost:4317"
		cfg.Telemetry.ServiceName = "test-service"
		cfg.Telemetry.SamplingRate = 0.5

		err := cfg.Validate()
		assert.NoError(t, err)
	})

	t.Run("sampling rate bounds", func(t *testing.T) {
		tests := []struct {
			rate    float64
			wantErr bool
		}{
			{0.0, false},
			{0.5, false},
			{1.0, false},
			{-0.1, true},
			{1.1, true},
		}

		for _, tt := range tests {
			t.Run(fmt.Sprintf("rate_%v", tt.rate), func(t *testing.T) {
				cfg := validConfig()
				cfg.Telemetry.SamplingRate = tt.rate

				err := cfg.Validate()
				if tt.wantErr {
					assert.Error(t, err)
					assert.Contains(t, err.Error(), "telemetry.samplingrate")
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})
}

func TestConfig_Validate_ClientConfig(t *testing.T) {
	t.Run("timeout minimum", func(t *testing.T) {
		cfg := validConfig()
		cfg.Client.Timeout = 50 * time.Millisecond // Less than 100ms minimum

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "client.timeout")
	})
}

//nolint:dupl // Test functions with similar structure are acceptable
func TestConfig_Validate_RetryConfig(t *testing.T) {
	t.Run("max attempts bounds", func(t *testing.T) {
		tests := []struct {
			attempts int
			wantErr  bool
		}{
			{1, false},
			{3, false},
			{10, false},
			{0, true},
			{11, true},
		}

		for _, tt := range tests {
			t.Run(fmt.Sprintf("attempts_%d", tt.attempts), func(t *testing.T) {
				cfg := validConfig()
				cfg.Client.Retry.MaxAttempts = tt.attempts

				err := cfg.Validate()
				if tt.wantErr {
					assert.Error(t, err)
					assert.Contains(t, err.Error(), "client.retry.maxattempts")
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})

	t.Run("initial interval minimum", func(t *testing.T) {
		cfg := validConfig()
		cfg.Client.Retry.InitialInterval = 5 * time.Millisecond // Less than 10ms minimum

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "client.retry.initialinterval")
	})

	t.Run("max interval minimum", func(t *testing.T) {
		cfg := validConfig()
		cfg.Client.Retry.MaxInterval = 50 * time.Millisecond // Less than 100ms minimum

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "client.retry.maxinterval")
	})

	t.Run("multiplier bounds", func(t *testing.T) {
		tests := []struct {
			multiplier float64
			wantErr    bool
		}{
			{1.1, false},
			{2.0, false},
			{10.0, false},
			{1.0, true},  // Less than 1.1 minimum
			{10.1, true}, // Greater than 10 maximum
		}

		for _, tt := range tests {
			t.Run(fmt.Sprintf("multiplier_%v", tt.multiplier), func(t *testing.T) {
				cfg := validConfig()
				cfg.Client.Retry.Multiplier = tt.multiplier

				err := cfg.Validate()
				if tt.wantErr {
					assert.Error(t, err)
					assert.Contains(t, err.Error(), "client.retry.multiplier")
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})
}

func TestConfig_Validate_CircuitBreakerConfig(t *testing.T) {
	t.Run("max failures minimum", func(t *testing.T) {
		cfg := validConfig()
		cfg.Client.CircuitBreaker.MaxFailures = 0

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "client.circuitbreaker.maxfailures")
	})

	t.Run("timeout minimum", func(t *testing.T) {
		cfg := validConfig()
		cfg.Client.CircuitBreaker.Timeout = 500 * time.Millisecond // Less than 1s minimum

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "client.circuitbreaker.timeout")
	})

	t.Run("half open limit minimum", func(t *testing.T) {
		cfg := validConfig()
		cfg.Client.CircuitBreaker.HalfOpenLimit = 0

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "client.circuitbreaker.halfopenlimit")
	})
}

func TestConfig_Validate_OEmbedConfig(t *testing.T) {
	t.Run("disabled without base url", func(t *testing.T) {
		cfg := validConfig()
		cfg.Services.OEmbed.Enabled = false
		cfg.Services.OEmbed.BaseURL = ""

		assert.NoError(t, cfg.Validate())
	})

	t.Run("enabled without base url", func(t *testing.T) {
		cfg := validConfig()
		cfg.Services.OEmbed.BaseURL = ""

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "services.oembed.baseurl")
	})

	t.Run("invalid base url", func(t *testing.T) {
		cfg := validConfig()
		cfg.Services.OEmbed.BaseURL = "not a url"

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be a valid URL")
	})
}

func TestConfig_Validate_StorageConfig(t *testing.T) {
	t.Run("unknown backend", func(t *testing.T) {
		cfg := validConfig()
		cfg.Storage.Backend = "mongo"

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.backend must be one of")
	})

	tests := []struct {
		name    string
		mutate  func(*StorageConfig)
		wantErr string
	}{
		{
			name:   "memory needs nothing",
			mutate: func(s *StorageConfig) { s.Backend = BackendMemory; s.File.Path = "" },
		},
		{
			name:    "file without path",
			mutate:  func(s *StorageConfig) { s.File.Path = "" },
			wantErr: "storage.file.path is required when storage.backend is file",
		},
		{
			name:    "sqlite without path",
			mutate:  func(s *StorageConfig) { s.Backend = BackendSQLite },
			wantErr: "storage.sqlite.path",
		},
		{
			name:   "badger in memory",
			mutate: func(s *StorageConfig) { s.Backend = BackendBadger; s.Badger.Key = "dedications" },
		},
		{
			name:    "badger without key",
			mutate:  func(s *StorageConfig) { s.Backend = BackendBadger },
			wantErr: "storage.badger.key",
		},
		{
			name:    "redis without url",
			mutate:  func(s *StorageConfig) { s.Backend = BackendRedis; s.Redis.Key = "k" },
			wantErr: "storage.redis.url",
		},
		{
			name:    "remote without base url",
			mutate:  func(s *StorageConfig) { s.Backend = BackendRemote; s.Remote.Name = "api" },
			wantErr: "storage.remote.base_url",
		},
		{
			name: "baserow without token",
			mutate: func(s *StorageConfig) {
				s.Backend = BackendBaserow
				s.Baserow.BaseURL = "https://api.baserow.io"
				s.Baserow.TableID = 42
			},
			wantErr: "storage.baserow.token",
		},
		{
			name: "baserow complete",
			mutate: func(s *StorageConfig) {
				s.Backend = BackendBaserow
				s.Baserow.BaseURL = "https://api.baserow.io"
				s.Baserow.TableID = 42
				s.Baserow.Token = "secret"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg.Storage)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_Validate_PresentationTimezone(t *testing.T) {
	cfg := validConfig()
	cfg.Presentation.Timezone = "Mars/Olympus_Mons"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "presentation.timezone")

	cfg.Presentation.Timezone = "Europe/Berlin"
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_MultipleErrors(t *testing.T) {
	cfg := &Config{
		App: AppConfig{
			Name:        "",        // missing
			Version:     "",        // missing
			Environment: "invalid", // invalid
		},
		Server: ServerConfig{
			Port: -1, // invalid
		},
		// Other fields will fail required validation
	}

	err := cfg.Validate()
	require.Error(t, err)

	// Should report multiple errors
	errStr := err.Error()
	assert.Contains(t, errStr, "app.name")
	assert.Contains(t, errStr, "app.version")
}

func TestFormatFieldPath(t *testing.T) {
	tests := []struct {
		namespace string
		expected  string
	}{
		{"Config.Server.Port", "server.port"},
		{"Config.App.Name", "app.name"},
		{"Config.Client.Retry.MaxAttempts", "client.retry.maxattempts"},
		{"Config.Log.File.Path", "log.file.path"},
		{"Config.Telemetry.SamplingRate", "telemetry.samplingrate"},
	}

	for _, tt := range tests {
		t.Run(tt.namespace, func(t *testing.T) {
			result := formatFieldPath(tt.namespace)
			assert.Equal(t, tt.expected, result)
		})
	}
}
