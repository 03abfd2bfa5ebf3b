package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 8085

[database]
host = "localhost"
user = "postgres"
password = "from-file"
dbname = "mentor_booking"

[user_service]
url = "http://localhost:8081"

[booking]
default_timezone = "Europe/Moscow"
min_notice_minutes = 120
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_DefaultsApplied(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 8085, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "Europe/Moscow", cfg.Booking.DefaultTimezone)
	assert.Equal(t, 60, cfg.Booking.DefaultDurationMinutes)
	assert.Equal(t, 120, cfg.Booking.MinNoticeMinutes)
	assert.Equal(t, 0, cfg.Booking.AdvanceBookingDays)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "debug", cfg.Logs.Level)
}

func TestLoad_InvalidPortEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "eighty")

	_, err := Load(writeConfig(t, sampleConfig))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}

func TestLoad_InvalidTimezone(t *testing.T) {
	content := `
[database]
host = "localhost"
dbname = "mentor_booking"

[user_service]
url = "http://localhost:8081"

[booking]
default_timezone = "Nowhere/Special"
`
	_, err := Load(writeConfig(t, content))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", d.DSN())
}
