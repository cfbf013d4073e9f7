package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/wichananm65/meli-optimizer/internal/ai"
)

// Config holds environment-driven configuration.
type Config struct {
	Addr        string
	Env         string
	DatabaseURL string
	JWTSecret   string

	RequestTimeout time.Duration

	MeliAPIURL    string
	MeliRateLimit float64
	MeliTimeout   time.Duration

	AI ai.Config

	KeywordCacheTTL time.Duration
	SyncConcurrency int
}

// Load reads the .env file (when present) and the process environment.
// The AI provider is resolved here once; an unknown AI_PROVIDER value is an error.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		zap.L().Debug("no .env file found, using process environment")
	}

	provider, err := ai.ParseProvider(os.Getenv("AI_PROVIDER"))
	if err != nil {
		return Config{}, err
	}

	return Config{
		Addr:        getEnv("APP_ADDR", ":8080"),
		Env:         getEnv("APP_ENV", "development"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),

		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 60*time.Second),

		MeliAPIURL:    getEnv("MELI_API_URL", "https://api.mercadolibre.com"),
		MeliRateLimit: getEnvFloat("MELI_RATE_LIMIT", 0),
		MeliTimeout:   getEnvDuration("MELI_TIMEOUT", 15*time.Second),

		AI: ai.Config{
			Provider: provider,
			APIKey:   os.Getenv("AI_API_KEY"),
			Model:    os.Getenv("AI_MODEL"),
			BaseURL:  os.Getenv("AI_BASE_URL"),
		},

		KeywordCacheTTL: getEnvDuration("KEYWORD_CACHE_TTL", time.Hour),
		SyncConcurrency: getEnvInt("SYNC_CONCURRENCY", 5),
	}, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err == nil {
			return d
		}
	}
	return fallback
}
