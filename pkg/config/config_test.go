package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Logistica-bff/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://backend.local/api")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "http://backend.local/api", cfg.Backend.BaseURL)
	assert.Equal(t, "logistica", cfg.App.Tenant)
	assert.Equal(t, 3*time.Second, cfg.Session.GraceWindow)
	assert.Equal(t, 1500*time.Millisecond, cfg.Session.RedirectDelay)
	assert.Equal(t, "/login", cfg.Session.LoginPath)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.False(t, cfg.DB.Enabled(), "sin DB_HOST ni DATABASE_URL la bitácora queda deshabilitada")
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_SinBackendURL_RetornaError(t *testing.T) {
	t.Setenv("BACKEND_URL", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_DuracionesDesdeEnv(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://backend.local")
	t.Setenv("SESSION_GRACE_WINDOW", "5")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("BACKEND_TIMEOUT", "no-es-duracion")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Session.GraceWindow)
	assert.Equal(t, 90*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 30*time.Second, cfg.Backend.Timeout, "un valor inválido conserva el defecto")
}

func TestDBConfig_DSN_EscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "bff", SSLMode: "disable"}

	assert.True(t, c.Enabled())
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/bff?sslmode=disable", c.ConnectionString())
}
