package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"parcellocker/internal/core/application/usecases/commands"
	"parcellocker/internal/core/domain/services"
	"parcellocker/internal/jobs"
	"parcellocker/internal/pkg/errs"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

type Config struct {
	HTTPPort string

	DBDriver          string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	DBPath            string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	OTPValidity    time.Duration
	MaxOTPAttempts int
	TxTimeout      time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string
	Timezone     *time.Location

	CleanupSchedule string
	RateLimit       rate.Limit
	RateBurst       int
	CacheTTL        time.Duration
	ShutdownTimeout time.Duration
}

// SMTPEnabled reports whether outgoing mail is configured.
func (c Config) SMTPEnabled() bool {
	return c.SMTPHost != ""
}

// LoadConfig reads an optional .env file and then the environment.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}
	return ConfigFromEnv(os.LookupEnv)
}

// ConfigFromEnv builds a Config from lookup, applying defaults for unset
// keys. Every malformed value is reported.
func ConfigFromEnv(lookup func(string) (string, bool)) (Config, error) {
	e := env{lookup: lookup}

	cfg := Config{
		HTTPPort: e.str("HTTP_PORT", "8080"),

		DBDriver:          strings.ToLower(e.str("DB_DRIVER", "postgres")),
		DBHost:            e.str("DB_HOST", "localhost"),
		DBPort:            e.str("DB_PORT", "5432"),
		DBUser:            e.str("DB_USER", ""),
		DBPassword:        e.str("DB_PASSWORD", ""),
		DBName:            e.str("DB_NAME", "parcellocker"),
		DBSslMode:         e.str("DB_SSLMODE", "disable"),
		DBPath:            e.str("DB_PATH", "parcellocker.db"),
		DBMaxOpenConns:    e.integer("DB_MAX_OPEN_CONNS", 20, 1),
		DBMaxIdleConns:    e.integer("DB_MAX_IDLE_CONNS", 5, 0),
		DBConnMaxLifetime: e.duration("DB_CONN_MAX_LIFETIME", 30*time.Minute),

		OTPValidity:    time.Duration(e.integer("OTP_VALIDITY_HOURS", int(services.DefaultOTPValidity/time.Hour), 1)) * time.Hour,
		MaxOTPAttempts: e.integer("MAX_OTP_ATTEMPTS", services.DefaultMaxOTPAttempts, 1),
		TxTimeout:      e.duration("TX_TIMEOUT", commands.DefaultTxTimeout),

		SMTPHost:     e.str("SMTP_HOST", ""),
		SMTPPort:     e.str("SMTP_PORT", "587"),
		SMTPUsername: e.str("SMTP_USERNAME", ""),
		SMTPPassword: e.str("SMTP_PASSWORD", ""),
		SMTPFrom:     e.str("SMTP_FROM", "noreply@parcellocker.local"),
		SMTPFromName: e.str("SMTP_FROM_NAME", "Parcel Locker"),
		Timezone:     e.location("TIMEZONE", time.UTC),

		CleanupSchedule: e.str("CLEANUP_SCHEDULE", jobs.DefaultSyncCleanupSchedule),
		RateLimit:       rate.Limit(e.float("RATE_LIMIT_RPS", 10)),
		RateBurst:       e.integer("RATE_LIMIT_BURST", 5, 0),
		CacheTTL:        e.duration("AVAILABILITY_CACHE_TTL", 5*time.Second),
		ShutdownTimeout: e.duration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if cfg.DBMaxIdleConns > cfg.DBMaxOpenConns {
		cfg.DBMaxIdleConns = cfg.DBMaxOpenConns
	}

	if err := errors.Join(e.errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type env struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (e *env) raw(key string) (string, bool) {
	v, ok := e.lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (e *env) str(key, def string) string {
	if v, ok := e.raw(key); ok {
		return v
	}
	return def
}

func (e *env) integer(key string, def, minValue int) int {
	v, ok := e.raw(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.errs = append(e.errs, errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	if n < minValue {
		e.errs = append(e.errs, errs.NewValueIsOutOfRangeError(key, n, minValue, "unbounded"))
		return def
	}
	return n
}

func (e *env) float(key string, def float64) float64 {
	v, ok := e.raw(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		e.errs = append(e.errs, errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	return f
}

func (e *env) duration(key string, def time.Duration) time.Duration {
	v, ok := e.raw(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		e.errs = append(e.errs, errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	return d
}

func (e *env) location(key string, def *time.Location) *time.Location {
	v, ok := e.raw(key)
	if !ok {
		return def
	}
	loc, err := time.LoadLocation(v)
	if err != nil {
		e.errs = append(e.errs, errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	return loc
}
