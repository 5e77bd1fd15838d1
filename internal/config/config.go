package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
)

// Переменные окружения с секретами. Перекрывают значения из файла
const (
	envDBPassword    = "DB_PASSWORD"
	envJWTSecret     = "JWT_SECRET"
	envRedisPassword = "REDIS_PASSWORD"
)

// ErrInvalidConfig конфигурация не прошла проверку
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Availability AvailabilityConfig `toml:"availability"`
	Auth         AuthConfig         `toml:"auth"`
	Cache        CacheConfig        `toml:"cache"`
	RateLimit    RateLimitConfig    `toml:"rate_limit"`
	CORS         CORSConfig         `toml:"cors"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AvailabilityConfig параметры движка свободных слотов
type AvailabilityConfig struct {
	TravelBufferMinutes int  `toml:"travel_buffer_minutes"`
	StepMinutes         int  `toml:"step_minutes"`
	AnchorMinMinutes    int  `toml:"anchor_min_minutes"`
	LookaheadDays       int  `toml:"lookahead_days"`
	IgnoreShiftEdgeGaps bool `toml:"ignore_shift_edge_gaps"`
}

type AuthConfig struct {
	JWTSecret     string `toml:"jwt_secret"`
	TokenTTLHours int    `toml:"token_ttl_hours"`
	Issuer        string `toml:"issuer"`
}

// TokenTTL время жизни токена администратора
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLHours) * time.Hour
}

// CacheConfig кеш свободных слотов в Redis. Выключен - считаем на каждый запрос
type CacheConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TTLSeconds int    `toml:"ttl_seconds"`
}

func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// RateLimitConfig лимит на публичные POST (клиенты, записи, логин)
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
	IdleTTLMinutes    int     `toml:"idle_ttl_minutes"`
	TrustForwarded    bool    `toml:"trust_forwarded"`
}

func (r RateLimitConfig) IdleTTL() time.Duration {
	return time.Duration(r.IdleTTLMinutes) * time.Minute
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Load читает .env (если есть), TOML файл и секреты из окружения
func Load(path string) (*Config, error) {
	// .env нужен только для локального запуска
	_ = godotenv.Load()

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default значения, которые используются, если в файле поле не задано
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "cleaning-booking",
		},
		Availability: AvailabilityConfig{
			TravelBufferMinutes: domain.DefaultTravelBufferMinutes,
			StepMinutes:         domain.DefaultCandidateStepMinutes,
			AnchorMinMinutes:    domain.DefaultAnchorMinMinutes,
			LookaheadDays:       domain.DefaultLookaheadDays,
		},
		Auth: AuthConfig{
			TokenTTLHours: 24,
			Issuer:        "cleaning-booking",
		},
		Cache: CacheConfig{
			Addr:       "localhost:6379",
			TTLSeconds: 300,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 1,
			Burst:             5,
			IdleTTLMinutes:    10,
		},
	}
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv(envDBPassword); ok {
		c.Database.Password = v
	}
	if v, ok := os.LookupEnv(envJWTSecret); ok {
		c.Auth.JWTSecret = v
	}
	if v, ok := os.LookupEnv(envRedisPassword); ok {
		c.Cache.Password = v
	}
}

// Validate проверяет значения, без которых сервис не сможет работать корректно
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port must be in 1..65535")
	}
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		problems = append(problems, "database.host, database.dbname and database.user are required")
	}
	if c.Availability.StepMinutes <= 0 {
		problems = append(problems, "availability.step_minutes must be positive")
	}
	if c.Availability.TravelBufferMinutes < 0 || c.Availability.AnchorMinMinutes < 0 {
		problems = append(problems, "availability buffer and anchor must not be negative")
	}
	if c.Availability.LookaheadDays < 0 {
		problems = append(problems, "availability.lookahead_days must not be negative")
	}
	if len(c.Auth.JWTSecret) < 32 {
		problems = append(problems, "auth.jwt_secret (or JWT_SECRET) must be at least 32 bytes")
	}
	if c.Auth.TokenTTLHours <= 0 {
		problems = append(problems, "auth.token_ttl_hours must be positive")
	}
	if c.Cache.Enabled && (c.Cache.Addr == "" || c.Cache.TTLSeconds <= 0) {
		problems = append(problems, "cache.addr and positive cache.ttl_seconds are required when cache is enabled")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0 || c.RateLimit.IdleTTLMinutes <= 0) {
		problems = append(problems, "rate_limit values must be positive when rate limiting is enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
