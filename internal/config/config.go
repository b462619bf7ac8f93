package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string         `json:"env"`
	Http     HttpConfig     `json:"http"`
	Postgres PostgresConfig `json:"postgres"`
	Redis    RedisConfig    `json:"redis"`
	APIKey   string         `json:"api_key,omitempty"`
	Alerts   AlertsConfig   `json:"alerts"`
	Dispatch DispatchConfig `json:"dispatch"`
}

type HttpConfig struct {
	Port            string        `json:"port"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
}

type PostgresConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	User     string `json:"user"`
	Password string `json:"password,omitempty"`
	SSLMode  string `json:"ssl_mode"`

	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password,omitempty"`
	DB       int    `json:"db"`
}

// AlertsConfig drives the proximity alert engine.
//
// UnmeteredOnly is recorded policy for client scheduling hosts; the server-side
// periodic loop has no network-class signal and does not gate on it.
type AlertsConfig struct {
	CadenceHours      int           `json:"cadence_hours"`
	UnmeteredOnly     bool          `json:"unmetered_only"`
	Workers           int           `json:"workers"`
	EvalTimeout       time.Duration `json:"eval_timeout"`
	LocationTTL       time.Duration `json:"location_ttl"`
	CandidateCacheTTL time.Duration `json:"candidate_cache_ttl"`
}

type DispatchConfig struct {
	URL      string `json:"url"`
	Disabled bool   `json:"disabled"`
}

func Load() (*Config, error) {

	stdLogger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		stdLogger.Warn(".env load warning", slog.Any("error", err))
	}

	cfg := &Config{
		Env: getEnv("ENV", "local"),
		Http: HttpConfig{
			Port:            getEnv("HTTP_PORT", ":8080"),
			ReadTimeout:     getEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "pg-local"),
			Port:            getEnvInt("POSTGRES_PORT", 5432),
			Database:        getEnv("POSTGRES_DB", "alertavecino_db"),
			User:            getEnv("POSTGRES_USER", "postgres"),
			Password:        getEnv("POSTGRES_PASSWORD", "postgres"),
			SSLMode:         getEnv("POSTGRES_SSL_MODE", "disable"),
			MaxConns:        20,
			MinConns:        1,
			MaxConnLifetime: 1 * time.Hour,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "redis-local:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		APIKey: getEnv("API_KEY", "super-secret-key"),
		Alerts: AlertsConfig{
			CadenceHours:      getEnvInt("ALERTS_CADENCE_HOURS", 6),
			UnmeteredOnly:     getEnvBool("ALERTS_UNMETERED_ONLY", false),
			Workers:           getEnvInt("ALERTS_WORKERS", 4),
			EvalTimeout:       getEnvDuration("ALERTS_EVAL_TIMEOUT", 30*time.Second),
			LocationTTL:       getEnvDuration("ALERTS_LOCATION_TTL", 15*time.Minute),
			CandidateCacheTTL: getEnvDuration("ALERTS_CANDIDATE_CACHE_TTL", 1*time.Minute),
		},
		Dispatch: DispatchConfig{
			URL:      getEnv("DISPATCH_URL", ""),
			Disabled: getEnvBool("DISPATCH_DISABLED", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stdLogger.Info("Config loaded successfully",
		slog.String("env", cfg.Env),
		slog.String("http_port", cfg.Http.Port),
		slog.String("postgres_db", cfg.Postgres.Database),
		slog.String("redis_addr", cfg.Redis.Addr),
		slog.Int("alerts_cadence_hours", cfg.Alerts.CadenceHours),
	)

	return cfg, nil
}

func (c *Config) Validate() error {

	if c.Http.Port == "" || c.Http.Port[0] != ':' {
		return errors.New("HTTP_PORT must start with ':' like ':8080'")
	}

	if c.Postgres.Host == "" {
		return errors.New("POSTGRES_HOST required")
	}

	if c.Alerts.CadenceHours < 1 || c.Alerts.CadenceHours > 24 {
		return fmt.Errorf("ALERTS_CADENCE_HOURS must be in [1,24], got %d", c.Alerts.CadenceHours)
	}

	if c.Alerts.Workers < 1 {
		c.Alerts.Workers = 1
	}

	if c.Dispatch.URL == "" && !c.Dispatch.Disabled {
		c.Dispatch.Disabled = true
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
