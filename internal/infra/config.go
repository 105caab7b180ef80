package infra

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
// The Gemini API key is intentionally absent: it is resolved on every
// generation so a missing key fails that call instead of the launch.
type Config struct {
	AppEnv            string
	Port              string
	DatabaseURL       string
	GeoIPDBPath       string
	DefaultLocale     string
	GeminiModel       string
	GeminiBaseURL     string
	GeminiTimeout     time.Duration
	SessionTTL        time.Duration
	MaxUploadBytes    int64
	RateLimitPerMin   int
	LogFile           string
	HTTPReadTimeout   time.Duration
	HTTPWriteTimeout  time.Duration
	HTTPIdleTimeout   time.Duration
	TrustProxyHeaders bool
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		Port:              getEnv("PORT", "8080"),
		DatabaseURL:       strings.TrimSpace(os.Getenv("DATABASE_URL")),
		GeoIPDBPath:       strings.TrimSpace(os.Getenv("GEOIP_DB_PATH")),
		DefaultLocale:     getEnv("DEFAULT_LOCALE", "en"),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.5-flash-image-preview"),
		GeminiBaseURL:     strings.TrimSpace(os.Getenv("GEMINI_BASE_URL")),
		GeminiTimeout:     time.Second * time.Duration(getEnvInt("GEMINI_TIMEOUT_SECONDS", 120)),
		SessionTTL:        time.Minute * time.Duration(getEnvInt("SESSION_TTL_MINUTES", 60)),
		MaxUploadBytes:    int64(getEnvInt("MAX_UPLOAD_MB", 10)) << 20,
		RateLimitPerMin:   getEnvInt("RATE_LIMIT_PER_MINUTE", 10),
		LogFile:           strings.TrimSpace(os.Getenv("LOG_FILE")),
		HTTPReadTimeout:   time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 30)),
		HTTPWriteTimeout:  time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:   time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		TrustProxyHeaders: getEnvBool("TRUST_PROXY_HEADERS", false),
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = time.Hour
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 << 20
	}
	if cfg.RateLimitPerMin <= 0 {
		cfg.RateLimitPerMin = 10
	}

	return cfg, nil
}

// HasDatabase reports whether a PostgreSQL connection string was configured.
func (c *Config) HasDatabase() bool {
	return c != nil && c.DatabaseURL != ""
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return fallback
}
