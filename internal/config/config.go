// Package config loads the application configuration from the environment.
//
// Values are read from MYLIST_-prefixed variables (a `.env` file is
// auto-loaded when present), layered over built-in defaults, decoded into
// typed structs and validated so the process fails fast on bad config.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads a `.env` file into the process env, if one exists.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix is stripped from every variable before it becomes a key.
	EnvPrefix = "MYLIST_"

	// LegacyConnectionStringEnv is the variable the original hosting
	// environment used for the store connection string.
	LegacyConnectionStringEnv = "SqlConnectionString"
)

// Config is the root configuration object.
//
// Keys are nested with "__" in variable names:
//
//	MYLIST_SERVER__PORT   -> server.port   -> Config.Server.Port
//	MYLIST_DATABASE__URL  -> database.url  -> Config.Database.URL
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Auth          AuthConfig           `koanf:"auth"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// RateLimit is the sustained requests per second allowed per client IP.
	// Zero disables rate limiting.
	RateLimit float64 `koanf:"rate_limit" validate:"min=0"`
	RateBurst int     `koanf:"rate_burst" validate:"min=0"`
}

// DatabaseConfig names the relational store and tunes the pool.
//
// URL is the only required value. The pool settings are optional; zero
// leaves pgxpool's defaults in place. Lifetimes are whole seconds.
type DatabaseConfig struct {
	URL             string `koanf:"url" validate:"required"`
	MaxConns        int32  `koanf:"max_conns" validate:"min=0"`
	MinConns        int32  `koanf:"min_conns" validate:"min=0"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"min=0"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"min=0"`
}

// AuthConfig holds the optional shared function key.
//
// When FunctionKey is empty the business routes are open, which is how
// they behave behind a gateway that already checks keys.
type AuthConfig struct {
	FunctionKey string `koanf:"function_key"`
}

// String masks secrets so the config can be logged.
func (c *Config) String() string {
	return fmt.Sprintf("Config{env: %s, port: %s, database: *** (masked) ***, function_key set: %t}",
		c.Primary.Env, c.Server.Port, c.Auth.FunctionKey != "")
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"primary.env":                 "local",
		"server.port":                 "8080",
		"server.read_timeout":         30,
		"server.write_timeout":        30,
		"server.idle_timeout":         60,
		"server.cors_allowed_origins": []string{"*"},
		"server.rate_limit":           0,
		"server.rate_burst":           0,

		"observability.logging.level":                         "info",
		"observability.logging.format":                        "json",
		"observability.logging.slow_query_threshold":          "100ms",
		"observability.new_relic.app_log_forwarding_enabled":  true,
		"observability.new_relic.distributed_tracing_enabled": true,
		"observability.health_checks.timeout":                 "5s",
	}
}

// envKey maps MYLIST_SERVER__READ_TIMEOUT to server.read_timeout.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// envValue splits comma lists so slice fields decode from a single variable.
// Blank variables are skipped and leave the lower layers in place.
func envValue(key, value string) (string, interface{}) {
	if strings.TrimSpace(value) == "" {
		return "", nil
	}

	key = envKey(key)
	if key == "server.cors_allowed_origins" {
		var origins []string
		for _, o := range strings.Split(value, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		return key, origins
	}
	return key, value
}

// LoadConfig loads, decodes and validates the configuration.
//
// Order of precedence, lowest first: built-in defaults, the legacy
// SqlConnectionString variable, MYLIST_ variables.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading config defaults: %w", err)
	}

	if legacy := os.Getenv(LegacyConnectionStringEnv); legacy != "" {
		if err := k.Set("database.url", legacy); err != nil {
			return nil, fmt.Errorf("applying %s: %w", LegacyConnectionStringEnv, err)
		}
	}

	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}
	mainConfig.Observability.ServiceName = "mylist"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
