package config

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches the working directory for the test and restores it on cleanup
// (t.Chdir requires Go 1.24+, which is newer than the toolchain in use).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadConfig_MissingEnvFileIsTolerated(t *testing.T) {
	viper.Reset()
	chdir(t, t.TempDir())
	t.Setenv("APP_PORT", "3000")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, 10*time.Second, cfg.CRM.Timeout)
	assert.Equal(t, "0 7 * * *", cfg.Reminder.Cron)
	assert.Equal(t, "db/migrations", cfg.DB.MigrationsDir)
}

func TestLoadConfig_ReadsEnvFile(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	envFile := "APP_PORT=8080\nDB_NAME=agenda\nCRM_TIMEOUT=30s\nREMINDER_ENABLED=true\n"
	require.NoError(t, os.WriteFile(dir+"/.env", []byte(envFile), 0o600))
	chdir(t, dir)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "agenda", cfg.DB.Name)
	assert.Equal(t, 30*time.Second, cfg.CRM.Timeout)
	assert.True(t, cfg.Reminder.Enabled)
}
