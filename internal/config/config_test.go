package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.True(t, cfg.Database.AtomicWrites)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
app:
  env: production
http:
  addr: ":9000"
database:
  driver: postgres
  url: postgres://cup@localhost/cup?sslmode=disable
  atomic_writes: false
session:
  lifetime: 2h
cors:
  allowed_origins: ["https://cup.example.com"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.False(t, cfg.Database.AtomicWrites)
	assert.Equal(t, 2*time.Hour, cfg.Session.Lifetime)
	assert.Equal(t, []string{"https://cup.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 10, cfg.RateLimit.Burst, "unset keys keep their defaults")
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "database:\n  atomic_writes: true\n")
	t.Setenv("DATABASE_ATOMIC_WRITES", "false")
	t.Setenv("SESSION_LIFETIME", "30m")
	t.Setenv("DISCORD_KEY", "key")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("RATE_LIMIT_RPS", "1.5")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.Database.AtomicWrites)
	assert.Equal(t, 30*time.Minute, cfg.Session.Lifetime)
	assert.Equal(t, "key", cfg.Discord.Key)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 1.5, cfg.RateLimit.RPS)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string][2]string{
		"driver":   {"DATABASE_DRIVER", "mysql"},
		"atomic":   {"DATABASE_ATOMIC_WRITES", "sometimes"},
		"lifetime": {"SESSION_LIFETIME", "forever"},
		"burst":    {"RATE_LIMIT_BURST", "0"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "database: [unclosed"))
	assert.Error(t, err)
}
