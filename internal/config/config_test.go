package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/studifund/studifund-api/internal/config"
)

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("STUDIFUND_DATABASE_URL", "postgres://localhost:5432/studifund")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "StudiFund API", cfg.AppName)
	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, ":8080", cfg.HTTPAddress())
	require.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	require.Equal(t, 10, cfg.UploadMaxSizeMB)
	require.Equal(t, 5*time.Minute, cfg.SummaryCacheTTL)
	require.Equal(t, 10, cfg.ClaimSubmitLimit)
}

func TestLoadReadsOverrides(t *testing.T) {
	t.Setenv("STUDIFUND_DATABASE_URL", "postgres://localhost:5432/studifund")
	t.Setenv("STUDIFUND_APP_PORT", "9090")
	t.Setenv("STUDIFUND_UPLOAD_MAX_SIZE_MB", "25")
	t.Setenv("STUDIFUND_SESSION_TTL", "24h")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddress())
	require.Equal(t, 25, cfg.UploadMaxSizeMB)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("STUDIFUND_DATABASE_URL", "")

	_, err := config.Load()
	require.Error(t, err)
}

func TestHTTPAddressKeepsLeadingColon(t *testing.T) {
	cfg := config.Config{AppPort: ":3000"}
	require.Equal(t, ":3000", cfg.HTTPAddress())
}
