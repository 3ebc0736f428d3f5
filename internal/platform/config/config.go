// Package config reads deployment settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is everything main needs to wire the service.
type Config struct {
	Server   Server
	Provider ProviderConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	Environment     string
	LogLevel        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	TrustedProxies  string
}

// ProviderConfig selects the lookup adapter. Only the VerifyMe adapter needs credentials.
type ProviderConfig struct {
	Active          string
	VerifyMeKey     string
	VerifyMeBaseURL string
	VerifyMeTimeout time.Duration
}

// DatabaseConfig is empty-URL disabled; the service then keeps records in memory.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// AutoMigrate applies the embedded schema at startup.
	AutoMigrate bool
}

type RedisConfig struct {
	URL            string
	PoolSize       int
	MinIdleConns   int
	DialTimeout    time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	StatusCacheTTL time.Duration
}

type KafkaConfig struct {
	Brokers     string
	LookupTopic string
}

// FromEnv builds the config from environment variables so main stays lean.
// Malformed numbers or durations are reported rather than silently defaulted.
func FromEnv() (Config, error) {
	r := envReader{}
	cfg := Config{
		Server: Server{
			Addr:            r.str("NIN_LOOKUP_ADDR", ":8080"),
			Environment:     r.str("APP_ENV", "development"),
			LogLevel:        r.str("LOG_LEVEL", "info"),
			RequestTimeout:  r.duration("REQUEST_TIMEOUT", 30*time.Second),
			ShutdownTimeout: r.duration("SHUTDOWN_TIMEOUT", 10*time.Second),
			TrustedProxies:  r.str("TRUSTED_PROXIES", ""),
		},
		Provider: ProviderConfig{
			Active:          strings.ToLower(r.str("NIN_PROVIDER", "mock")),
			VerifyMeKey:     r.str("PROVIDER_VERIFYME_KEY", ""),
			VerifyMeBaseURL: r.str("PROVIDER_VERIFYME_BASE_URL", ""),
			VerifyMeTimeout: r.duration("PROVIDER_VERIFYME_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			URL:             r.str("DATABASE_URL", ""),
			MaxOpenConns:    r.int("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    r.int("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: r.duration("DATABASE_CONN_MAX_LIFETIME", 5*time.Minute),
			AutoMigrate:     r.bool("DATABASE_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			URL:            r.str("REDIS_URL", ""),
			PoolSize:       r.int("REDIS_POOL_SIZE", 10),
			MinIdleConns:   r.int("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:    r.duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:    r.duration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout:   r.duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			StatusCacheTTL: r.duration("STATUS_CACHE_TTL", 10*time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers:     r.str("KAFKA_BROKERS", ""),
			LookupTopic: r.str("KAFKA_LOOKUP_TOPIC", "ninlookup.lookups"),
		},
	}
	if r.err != nil {
		return Config{}, r.err
	}
	return cfg, nil
}

// IsProduction reports whether APP_ENV names a production deployment.
func (s Server) IsProduction() bool {
	return strings.EqualFold(s.Environment, "production")
}

// envReader keeps the first parse error so FromEnv can read every key in one pass.
type envReader struct {
	err error
}

func (r *envReader) str(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func (r *envReader) duration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		r.fail(fmt.Errorf("%s: invalid duration %q", key, v))
		return def
	}
	return d
}

func (r *envReader) int(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		r.fail(fmt.Errorf("%s: invalid integer %q", key, v))
		return def
	}
	return n
}

func (r *envReader) bool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(fmt.Errorf("%s: invalid boolean %q", key, v))
		return def
	}
	return b
}

func (r *envReader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}
