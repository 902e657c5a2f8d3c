package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	require.Equal(t, "3001", cfg.Port)
	require.Equal(t, "sqlite3", cfg.DBDriver)
	require.Equal(t, 10, cfg.DBMaxOpenConns)
	require.Equal(t, 1200*time.Millisecond, cfg.TypingDelay)
	require.Equal(t, "* * * * *", cfg.ReminderSchedule)
	require.True(t, cfg.UsingDevSecret())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("DB_DSN", "postgres://bubble@localhost/bubble")
	t.Setenv("TYPING_DELAY", "250ms")
	t.Setenv("JWT_SECRET", "shh")

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	require.Equal(t, "9000", cfg.Port)
	require.Equal(t, "pgx", cfg.DBDriver)
	require.Equal(t, "postgres://bubble@localhost/bubble", cfg.DBDsn)
	require.Equal(t, 250*time.Millisecond, cfg.TypingDelay)
	require.False(t, cfg.UsingDevSecret())
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	_, err := Load(viper.New())
	require.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("BUBBLE_TEST_DOTENV=from-file\n"), 0o600))
	t.Setenv("BUBBLE_TEST_DOTENV", "")
	os.Unsetenv("BUBBLE_TEST_DOTENV")

	require.NoError(t, LoadDotEnv(path))
	require.Equal(t, "from-file", os.Getenv("BUBBLE_TEST_DOTENV"))
}
