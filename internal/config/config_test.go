package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.LoadWith(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, "file:storefront.db", cfg.DatabaseURL)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, int64(2*1024*1024), cfg.MaxUploadSize)
	assert.Equal(t, 10, cfg.RateLimitMax)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Empty(t, cfg.RedisURL)
	assert.False(t, cfg.ConsumeEvents)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")

	cfg, err := config.LoadWith(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.Addr())
	assert.Equal(t, "mongodb://localhost:27017", cfg.DatabaseURL)
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
}

func TestLoadFromEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DATABASE_URL=memory://\nRATE_LIMIT_MAX=5\n"), 0o600))

	cfg, err := config.LoadWith(viper.New(), envFile)
	require.NoError(t, err)

	assert.Equal(t, "memory://", cfg.DatabaseURL)
	assert.Equal(t, 5, cfg.RateLimitMax)
}

func TestLoadMissingEnvFileIsIgnored(t *testing.T) {
	_, err := config.LoadWith(viper.New(), filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}

func TestLoadRejectsInvalidLimits(t *testing.T) {
	t.Setenv("RATE_LIMIT_MAX", "0")

	_, err := config.LoadWith(viper.New(), "")
	assert.Error(t, err)
}
