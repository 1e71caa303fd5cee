package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for configuration values.
const (
	DefaultPort              = "4005"
	DefaultDBPath            = "gamelog.db"
	DefaultTokenTTL          = 1 * time.Hour
	DefaultGameCacheTTL      = 30 * time.Minute
	DefaultPlayerCacheTTL    = 24 * time.Hour
	DefaultRequestsPerMinute = 600
	DefaultCORSOrigin        = "http://localhost:5173"
	DefaultEnv               = "prod"
	MinJWTSecretLength       = 16
	MinRequestsPerMinute     = 6
)

// Config holds all application configuration.
type Config struct {
	APIKey string
	Port   string
	DBPath string
	Env    string

	// Session gate
	JWTSecret string
	TokenTTL  time.Duration

	// Caching (RedisURL empty = player cache disabled)
	GameCacheTTL   time.Duration
	RedisURL       string
	PlayerCacheTTL time.Duration

	RequestsPerMinute int
	CORSOrigins       []string
}

// Load reads configuration from environment variables (and .env file if present).
func Load() Config {
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	cfg := Config{
		APIKey:            os.Getenv("BALLDONTLIE_API_KEY"),
		Port:              DefaultPort,
		DBPath:            DefaultDBPath,
		Env:               DefaultEnv,
		JWTSecret:         os.Getenv("JWT_SECRET"),
		TokenTTL:          DefaultTokenTTL,
		GameCacheTTL:      DefaultGameCacheTTL,
		RedisURL:          os.Getenv("REDIS_URL"),
		PlayerCacheTTL:    DefaultPlayerCacheTTL,
		RequestsPerMinute: DefaultRequestsPerMinute,
		CORSOrigins:       []string{DefaultCORSOrigin},
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}

	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}

	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Env = strings.ToLower(v)
	}

	if v := os.Getenv("TOKEN_TTL_MINUTES"); v != "" {
		if m, err := strconv.Atoi(v); err == nil {
			cfg.TokenTTL = time.Duration(m) * time.Minute
		}
	}

	if v := os.Getenv("GAME_CACHE_TTL_MINUTES"); v != "" {
		if m, err := strconv.Atoi(v); err == nil {
			cfg.GameCacheTTL = time.Duration(m) * time.Minute
		}
	}

	if v := os.Getenv("PLAYER_CACHE_TTL_HOURS"); v != "" {
		if h, err := strconv.Atoi(v); err == nil {
			cfg.PlayerCacheTTL = time.Duration(h) * time.Hour
		}
	}

	if v := os.Getenv("REQUESTS_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RequestsPerMinute = n
		}
	}

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}

	return cfg
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks that configuration values are within acceptable ranges.
func Validate(cfg Config) error {
	if cfg.Port == "" {
		return fmt.Errorf("PORT must be set")
	}
	if len(cfg.JWTSecret) < MinJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters, got %d", MinJWTSecretLength, len(cfg.JWTSecret))
	}
	if cfg.TokenTTL < time.Minute {
		return fmt.Errorf("TOKEN_TTL_MINUTES must be at least 1, got %v", cfg.TokenTTL)
	}
	if err := ValidateProvider(cfg); err != nil {
		return err
	}
	if cfg.PlayerCacheTTL <= 0 {
		return fmt.Errorf("PLAYER_CACHE_TTL_HOURS must be positive, got %v", cfg.PlayerCacheTTL)
	}
	if len(cfg.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must name at least one origin")
	}
	return nil
}

// ValidateProvider checks only the settings used to fetch and cache games.
// Tools that never serve HTTP call this instead of Validate.
func ValidateProvider(cfg Config) error {
	if cfg.RequestsPerMinute < MinRequestsPerMinute {
		return fmt.Errorf("REQUESTS_PER_MINUTE must be at least %d, got %d", MinRequestsPerMinute, cfg.RequestsPerMinute)
	}
	if cfg.GameCacheTTL < 0 {
		return fmt.Errorf("GAME_CACHE_TTL_MINUTES must be non-negative, got %v", cfg.GameCacheTTL)
	}
	return nil
}

// Describe returns a one-line summary for startup logs. Secrets are omitted.
func (c Config) Describe() string {
	redis := "off"
	if c.RedisURL != "" {
		redis = "on"
	}
	return fmt.Sprintf("port=%s db=%s env=%s token_ttl=%s game_ttl=%s player_cache=%s rpm=%d",
		c.Port, c.DBPath, c.Env, c.TokenTTL, c.GameCacheTTL, redis, c.RequestsPerMinute)
}
