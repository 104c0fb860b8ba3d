package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"parcellocker/internal/adapters/out/postgres/dialect"
	"parcellocker/internal/core/application/usecases/commands"
	"parcellocker/internal/jobs"
	"parcellocker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func lookupFrom(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	cfg, err := ConfigFromEnv(lookupFrom(nil))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, dialect.Postgres, cfg.DBDriver)
	assert.Equal(t, 48*time.Hour, cfg.OTPValidity)
	assert.Equal(t, 3, cfg.MaxOTPAttempts)
	assert.Equal(t, commands.DefaultTxTimeout, cfg.TxTimeout)
	assert.Equal(t, 10*time.Second, cfg.TxTimeout)
	assert.Equal(t, time.UTC, cfg.Timezone)
	assert.Equal(t, jobs.DefaultSyncCleanupSchedule, cfg.CleanupSchedule)
	assert.Equal(t, rate.Limit(10), cfg.RateLimit)
	assert.Equal(t, 5, cfg.RateBurst)
	assert.False(t, cfg.SMTPEnabled())
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	cfg, err := ConfigFromEnv(lookupFrom(map[string]string{
		"HTTP_PORT":          "9090",
		"DB_DRIVER":          "MySQL",
		"DB_PORT":            "3306",
		"DB_MAX_OPEN_CONNS":  "4",
		"DB_MAX_IDLE_CONNS":  "10",
		"OTP_VALIDITY_HOURS": "24",
		"MAX_OTP_ATTEMPTS":   "5",
		"TX_TIMEOUT":         "750ms",
		"SMTP_HOST":          "smtp.example.com",
		"TIMEZONE":           "Asia/Kolkata",
		"CLEANUP_SCHEDULE":   "0 0 * * * *",
		"RATE_LIMIT_RPS":     "2.5",
	}))

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, dialect.MySQL, cfg.DBDriver)
	assert.Equal(t, 4, cfg.DBMaxOpenConns)
	assert.Equal(t, 4, cfg.DBMaxIdleConns, "idle connections never exceed the pool")
	assert.Equal(t, 24*time.Hour, cfg.OTPValidity)
	assert.Equal(t, 5, cfg.MaxOTPAttempts)
	assert.Equal(t, 750*time.Millisecond, cfg.TxTimeout)
	assert.True(t, cfg.SMTPEnabled())
	assert.Equal(t, "Asia/Kolkata", cfg.Timezone.String())
	assert.Equal(t, "0 0 * * * *", cfg.CleanupSchedule)
	assert.Equal(t, rate.Limit(2.5), cfg.RateLimit)

	store := cfg.StoreConfig()
	assert.Equal(t, dialect.MySQL, store.Driver)
	assert.Equal(t, "3306", store.Port)
	assert.Equal(t, 4, store.MaxOpenConns)
}

func TestConfigFromEnv_ReportsEveryBadValue(t *testing.T) {
	_, err := ConfigFromEnv(lookupFrom(map[string]string{
		"MAX_OTP_ATTEMPTS":   "0",
		"OTP_VALIDITY_HOURS": "two days",
		"TX_TIMEOUT":         "-1s",
		"TIMEZONE":           "Mars/Olympus",
	}))

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	for _, key := range []string{"MAX_OTP_ATTEMPTS", "OTP_VALIDITY_HOURS", "TX_TIMEOUT", "TIMEZONE"} {
		assert.Contains(t, err.Error(), key)
	}
}

func TestLoadConfig_ReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("MAX_OTP_ATTEMPTS=4\n"), 0o600))
	t.Setenv("MAX_OTP_ATTEMPTS", "")
	require.NoError(t, os.Unsetenv("MAX_OTP_ATTEMPTS"))

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, 4, cfg.MaxOTPAttempts)
}

func TestLoadConfig_MissingFileIsFine(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"))

	require.NoError(t, err)
	assert.NotEmpty(t, cfg.HTTPPort)
}
