package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/work-ledger/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.CORS.AllowedOrigins)
	assert.Equal(t, "horari.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 2026, cfg.Calendar.Year)
	assert.Empty(t, cfg.Calendar.HolidaysFile)
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, "horari.yaml", `
server:
  port: 9000
  cors:
    allowed_origins: ["https://horari.example"]
db:
  path: /var/lib/horari/horari.db
log:
  level: debug
calendar:
  year: 2027
  holidays_file: festius.yaml
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, []string{"https://horari.example"}, cfg.Server.CORS.AllowedOrigins)
	assert.Equal(t, "/var/lib/horari/horari.db", cfg.Database.Path)
	assert.Equal(t, 2027, cfg.Calendar.Year)
	assert.Equal(t, "festius.yaml", cfg.Calendar.HolidaysFile)
	assert.Equal(t, logrus.DebugLevel, cfg.NewLogger().GetLevel())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "horari.yaml", "server:\n  port: 9000\n")
	t.Setenv("HORARI_SERVER_PORT", "9191")
	t.Setenv("HORARI_DB_PATH", ":memory:")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, ":memory:", cfg.Database.Path)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeFile(t, "horari.yaml", "server: [port\n")

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *config.Config {
		return &config.Config{
			Server:   config.ServerConfig{Port: 8080},
			Database: config.DatabaseConfig{Path: "horari.db"},
			Log:      config.LogConfig{Level: "info"},
			Calendar: config.CalendarConfig{Year: 2026},
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr string
	}{
		{"port zero", func(c *config.Config) { c.Server.Port = 0 }, "server.port"},
		{"port too high", func(c *config.Config) { c.Server.Port = 70000 }, "server.port"},
		{"empty db path", func(c *config.Config) { c.Database.Path = "" }, "db.path"},
		{"year out of range", func(c *config.Config) { c.Calendar.Year = 1900 }, "calendar.year"},
		{"unknown level", func(c *config.Config) { c.Log.Level = "loud" }, "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
