// AngelaMos | 2026
// config.go

package config

import (
	"errors"
	"fmt"
	"net"
	"slices"
	"strconv"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App       AppConfig       `koanf:"app"`
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Redis     RedisConfig     `koanf:"redis"`
	JWT       JWTConfig       `koanf:"jwt"`
	Auth      AuthConfig      `koanf:"auth"`
	Listings  ListingsConfig  `koanf:"listings"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	CORS      CORSConfig      `koanf:"cors"`
	Log       LogConfig       `koanf:"log"`
	Otel      OtelConfig      `koanf:"otel"`
}

type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL             string        `koanf:"url"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
	AutoMigrate     bool          `koanf:"auto_migrate"`
}

type RedisConfig struct {
	URL          string `koanf:"url"`
	PoolSize     int    `koanf:"pool_size"`
	MinIdleConns int    `koanf:"min_idle_conns"`
}

type JWTConfig struct {
	Secret      string        `koanf:"secret"`
	TokenExpire time.Duration `koanf:"token_expire"`
	Issuer      string        `koanf:"issuer"`
	Audience    string        `koanf:"audience"`
}

// AuthConfig holds registration secrets. AdminCode may be empty; ADMIN
// registration then fails as a server misconfiguration.
type AuthConfig struct {
	AdminCode string `koanf:"admin_code"`
}

type ListingsConfig struct {
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

type RateLimitConfig struct {
	Requests      int           `koanf:"requests"`
	Window        time.Duration `koanf:"window"`
	Burst         int           `koanf:"burst"`
	ApplyRequests int           `koanf:"apply_requests"`
}

type CORSConfig struct {
	AllowedOrigins   []string `koanf:"allowed_origins"`
	AllowedMethods   []string `koanf:"allowed_methods"`
	AllowedHeaders   []string `koanf:"allowed_headers"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           int      `koanf:"max_age"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type OtelConfig struct {
	Endpoint    string  `koanf:"endpoint"`
	ServiceName string  `koanf:"service_name"`
	Enabled     bool    `koanf:"enabled"`
	Insecure    bool    `koanf:"insecure"`
	SampleRate  float64 `koanf:"sample_rate"`
}

// Load reads defaults, then the optional YAML file at configPath, then the
// mapped environment variables, and validates the result.
func Load(configPath string) (*Config, error) {
	return load(configPath)
}

func load(configPath string) (*Config, error) {
	k := koanf.New(".")

	for section, values := range defaults {
		for key, value := range values {
			if err := k.Set(section+"."+key, value); err != nil {
				return nil, fmt.Errorf("default %s.%s: %w", section, key, err)
			}
		}
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	var c Config
	if err := k.Unmarshal("", &c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

var defaults = map[string]map[string]any{
	"app": {
		"name":        "InternHub API",
		"version":     "1.0.0",
		"environment": "development",
	},
	"server": {
		"host":             "0.0.0.0",
		"port":             5000,
		"read_timeout":     "30s",
		"write_timeout":    "30s",
		"idle_timeout":     "120s",
		"shutdown_timeout": "15s",
	},
	"database": {
		"max_open_conns":     10,
		"max_idle_conns":     5,
		"conn_max_lifetime":  "1h",
		"conn_max_idle_time": "30m",
		"auto_migrate":       true,
	},
	"redis": {
		"pool_size":      10,
		"min_idle_conns": 2,
	},
	"jwt": {
		"token_expire": "168h",
		"issuer":       "internhub",
		"audience":     "internhub-api",
	},
	"listings": {
		"cache_ttl": "1m",
	},
	"rate_limit": {
		"requests":       100,
		"window":         "1m",
		"burst":          20,
		"apply_requests": 10,
	},
	"cors": {
		"allowed_origins":   []string{"http://localhost:5173"},
		"allowed_methods":   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		"allowed_headers":   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		"allow_credentials": true,
		"max_age":           300,
	},
	"log": {
		"level":  "info",
		"format": "json",
	},
	"otel": {
		"enabled":      false,
		"insecure":     true,
		"sample_rate":  0.1,
		"service_name": "internhub-api",
	},
}

// envKeys maps the deployment environment variables onto config paths.
// Unlisted variables are ignored.
var envKeys = map[string]string{
	"DATABASE_URL":                "database.url",
	"DATABASE_AUTO_MIGRATE":       "database.auto_migrate",
	"REDIS_URL":                   "redis.url",
	"ENVIRONMENT":                 "app.environment",
	"HOST":                        "server.host",
	"PORT":                        "server.port",
	"LOG_LEVEL":                   "log.level",
	"LOG_FORMAT":                  "log.format",
	"JWT_SECRET":                  "jwt.secret",
	"JWT_TOKEN_EXPIRE":            "jwt.token_expire",
	"JWT_ISSUER":                  "jwt.issuer",
	"JWT_AUDIENCE":                "jwt.audience",
	"ADMIN_SECRET_CODE":           "auth.admin_code",
	"LISTINGS_CACHE_TTL":          "listings.cache_ttl",
	"RATE_LIMIT_REQUESTS":         "rate_limit.requests",
	"RATE_LIMIT_WINDOW":           "rate_limit.window",
	"RATE_LIMIT_BURST":            "rate_limit.burst",
	"RATE_LIMIT_APPLY_REQUESTS":   "rate_limit.apply_requests",
	"OTEL_ENDPOINT":               "otel.endpoint",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "otel.endpoint",
	"OTEL_SERVICE_NAME":           "otel.service_name",
	"OTEL_ENABLED":                "otel.enabled",
	"OTEL_INSECURE":               "otel.insecure",
	"OTEL_SAMPLE_RATE":            "otel.sample_rate",
}

func envKey(name string) string {
	return envKeys[name]
}

// validate reports every problem at once.
func (c *Config) validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Database.URL != "", "DATABASE_URL is required")
	check(c.Redis.URL != "", "REDIS_URL is required")
	check(c.JWT.Secret != "", "JWT_SECRET is required")
	check(c.JWT.TokenExpire > 0, "jwt.token_expire must be positive")
	check(c.Server.ReadTimeout > 0, "server.read_timeout must be positive")
	check(c.Server.WriteTimeout > 0, "server.write_timeout must be positive")
	check(c.Listings.CacheTTL >= 0, "listings.cache_ttl must not be negative")
	check(!c.CORS.AllowCredentials || !slices.Contains(c.CORS.AllowedOrigins, "*"),
		"cors: wildcard origin cannot be combined with credentials")

	if c.IsProduction() {
		check(!c.Otel.Enabled || !c.Otel.Insecure, "OTEL_INSECURE must be false in production")
		check(len(c.JWT.Secret) >= 32, "JWT_SECRET must be at least 32 bytes in production")
	}

	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func (s *ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
