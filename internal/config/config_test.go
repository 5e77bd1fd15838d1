package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningBooking/internal/availability"
	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
)

const sampleConfig = `
[server]
http_port = 9090

[database]
host = "db"
user = "booking"
password = "from-file"
dbname = "cleaning"

[logs]
level = "debug"

[availability]
anchor_min_minutes = 60
ignore_shift_edge_gaps = true

[auth]
jwt_secret = "file-secret-file-secret-file-secret"
token_ttl_hours = 12

[cache]
enabled = true
addr = "redis:6379"

[rate_limit]
enabled = true
burst = 3

[cors]
allowed_origins = ["https://example.com"]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault_AvailabilityMatchesEngineDefaults(t *testing.T) {
	cfg := Default()
	rules := availability.DefaultRules()

	assert.Equal(t, rules.TravelBufferMinutes, cfg.Availability.TravelBufferMinutes)
	assert.Equal(t, rules.StepMinutes, cfg.Availability.StepMinutes)
	assert.Equal(t, rules.AnchorMinMinutes, cfg.Availability.AnchorMinMinutes)
	assert.Equal(t, domain.DefaultLookaheadDays, cfg.Availability.LookaheadDays)
	assert.False(t, cfg.Availability.IgnoreShiftEdgeGaps)
}

func TestLoad_FileOverDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout, "default kept")
	assert.Equal(t, "from-file", cfg.Database.Password)
	assert.Equal(t, 5432, cfg.Database.Port)

	assert.Equal(t, 30, cfg.Availability.TravelBufferMinutes)
	assert.Equal(t, 30, cfg.Availability.StepMinutes)
	assert.Equal(t, 60, cfg.Availability.AnchorMinMinutes)
	assert.Equal(t, 30, cfg.Availability.LookaheadDays)
	assert.True(t, cfg.Availability.IgnoreShiftEdgeGaps)

	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenTTL())
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL())
	assert.Equal(t, 3, cfg.RateLimit.Burst)
	assert.Equal(t, 10*time.Minute, cfg.RateLimit.IdleTTL())
	assert.Equal(t, []string{"https://example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "host=db port=5432 user=booking password=from-file dbname=cleaning sslmode=disable", cfg.Database.DSN())
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	t.Setenv(envDBPassword, "from-env")
	t.Setenv(envJWTSecret, "env-secret-env-secret-env-secret-env")
	t.Setenv(envRedisPassword, "redis-env")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "env-secret-env-secret-env-secret-env", cfg.Auth.JWTSecret)
	assert.Equal(t, "redis-env", cfg.Cache.Password)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "[server\nhttp_port = "))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, `[database]
host = "db"
user = "u"
dbname = "d"`))
	assert.ErrorIs(t, err, ErrInvalidConfig, "jwt secret is required")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Database.User = "u"
		cfg.Database.DBName = "d"
		cfg.Auth.JWTSecret = "0123456789abcdef0123456789abcdef"
		return cfg
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"port", func(c *Config) { c.Server.HTTPPort = 0 }},
		{"db name", func(c *Config) { c.Database.DBName = "" }},
		{"step", func(c *Config) { c.Availability.StepMinutes = 0 }},
		{"negative buffer", func(c *Config) { c.Availability.TravelBufferMinutes = -1 }},
		{"negative anchor", func(c *Config) { c.Availability.AnchorMinMinutes = -30 }},
		{"short secret", func(c *Config) { c.Auth.JWTSecret = "short" }},
		{"ttl", func(c *Config) { c.Auth.TokenTTLHours = 0 }},
		{"cache ttl", func(c *Config) { c.Cache.Enabled = true; c.Cache.TTLSeconds = 0 }},
		{"rate limit", func(c *Config) { c.RateLimit.Enabled = true; c.RateLimit.Burst = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
