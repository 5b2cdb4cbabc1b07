package cmdfactory

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/elijahthis/extract-api/internal/limiter"
	"github.com/elijahthis/extract-api/internal/shared"
	"github.com/rs/zerolog/log"
)

type Config struct {
	// Auth / CORS
	Token          string
	AllowedOrigins []string

	// Input bounds
	MaxTextChars int

	// Rate limiting
	RateLimitMax    int
	RateLimitWindow time.Duration

	// TextAPI Specific
	TextAddr        string
	TextMetricsPort int

	// SheetsAPI Specific
	SheetsAddr        string
	SheetsMetricsPort int
}

// LoadEnv fills the environment-governed fields: API_TOKEN, CORS_ORIGINS,
// MAX_REQUEST_SIZE (characters), RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW
// (seconds).
func (c *Config) LoadEnv() {
	c.Token = getEnv("API_TOKEN", "your-secret-token-here")
	if c.Token == "your-secret-token-here" {
		log.Warn().Msg("API_TOKEN not set, using the default token")
	}

	c.AllowedOrigins = splitAndTrim(getEnv("CORS_ORIGINS", "*"))
	c.MaxTextChars = getEnvInt("MAX_REQUEST_SIZE", 1048576)
	c.RateLimitMax = getEnvInt("RATE_LIMIT_REQUESTS", limiter.DefaultMaxRequests)
	c.RateLimitWindow = time.Duration(getEnvInt("RATE_LIMIT_WINDOW", 3600)) * time.Second
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("Ignoring non-numeric environment value")
		return fallback
	}
	return n
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func newRateLimiter(cfg *Config) shared.RateLimiter {
	memoryLimiter := limiter.NewMemoryRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)
	return memoryLimiter
}
