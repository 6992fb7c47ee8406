package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jobconnect/jobconnect-go/internal/crypto"
	"github.com/jobconnect/jobconnect-go/internal/session"
)

// MinSecretLength is the shortest accepted JWT_SECRET, in bytes.
const MinSecretLength = 32

var (
	ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")
	ErrWeakJWTSecret    = fmt.Errorf("JWT_SECRET must be at least %d bytes", MinSecretLength)
)

type Config struct {
	Port        string
	Env         string
	DatabaseDSN string
	JWTSecret   string
	JWTExpiry   time.Duration
	CookieName  string

	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	LiveStatusCheck bool
	StatusCacheTTL  time.Duration

	AuthRateLimitRPS   float64
	AuthRateLimitBurst int

	AllowAdminSignup bool
}

// Load reads configuration from the environment. It fails when the signing
// secret is missing or too short; there is no built-in fallback secret.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		DatabaseDSN: getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/jobconnect?parseTime=true"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		JWTExpiry:   crypto.SessionLifetime,
		CookieName:  getEnv("COOKIE_NAME", session.DefaultCookieName),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	var err error
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.LiveStatusCheck, err = getBool("LIVE_STATUS_CHECK", false); err != nil {
		return Config{}, err
	}
	if cfg.StatusCacheTTL, err = getDuration("STATUS_CACHE_TTL", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.AuthRateLimitRPS, err = getFloat("AUTH_RATE_LIMIT_RPS", 5); err != nil {
		return Config{}, err
	}
	if cfg.AuthRateLimitBurst, err = getInt("AUTH_RATE_LIMIT_BURST", 10); err != nil {
		return Config{}, err
	}
	if cfg.AllowAdminSignup, err = getBool("ALLOW_ADMIN_REGISTRATION", false); err != nil {
		return Config{}, err
	}

	switch {
	case cfg.JWTSecret == "":
		return Config{}, ErrMissingJWTSecret
	case len(cfg.JWTSecret) < MinSecretLength:
		return Config{}, ErrWeakJWTSecret
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
