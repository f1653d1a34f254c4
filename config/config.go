package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Redis    RedisConfig
	Database DatabaseConfig
	App      AppConfig
	Content  ContentConfig
	Firebase FirebaseConfig
	Sweeper  SweeperConfig
	Lock     LockConfig
}

type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
	CORSOrigins     []string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// DatabaseConfig enables the completed-site archive when DSN is set.
type DatabaseConfig struct {
	DSN      string
	MaxConns int32
}

type AppConfig struct {
	Environment string
	LogLevel    string
	LogFormat   string
	Version     string
}

type ContentConfig struct {
	Provider     string
	BaseURL      string
	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string
	OpenAIURL    string
	Timeout      time.Duration
	RatePerSec   float64
	Burst        int
}

type FirebaseConfig struct {
	CredentialsPath string
}

type SweeperConfig struct {
	Schedule   string
	StaleAfter time.Duration
}

type LockConfig struct {
	Backend string
	TTL     time.Duration
}

// Content providers
const (
	ProviderHTTP   = "http"
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderNone   = "none"
)

// Lock backends
const (
	LockMemory = "memory"
	LockRedis  = "redis"
)

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
			CORSOrigins:     getEnvAsList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Database: DatabaseConfig{
			DSN:      getEnv("DB_DSN", ""),
			MaxConns: int32(getEnvAsInt("DB_MAX_CONNS", 4)),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			LogFormat:   getEnv("LOG_FORMAT", "json"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Content: ContentConfig{
			Provider:     strings.ToLower(getEnv("CONTENT_PROVIDER", ProviderNone)),
			BaseURL:      getEnv("CONTENT_BASE_URL", "http://localhost:8088"),
			GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
			GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
			OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4"),
			OpenAIURL:    getEnv("OPENAI_BASE_URL", ""),
			Timeout:      getEnvAsDuration("CONTENT_TIMEOUT", 20*time.Second),
			RatePerSec:   getEnvAsFloat("CONTENT_RATE_PER_SEC", 2),
			Burst:        getEnvAsInt("CONTENT_BURST", 4),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		},
		Sweeper: SweeperConfig{
			Schedule:   getEnv("SWEEP_SCHEDULE", "0 */15 * * * *"),
			StaleAfter: getEnvAsDuration("SWEEP_STALE_AFTER", 72*time.Hour),
		},
		Lock: LockConfig{
			Backend: strings.ToLower(getEnv("LOCK_BACKEND", LockMemory)),
			TTL:     getEnvAsDuration("LOCK_TTL", 30*time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Redis.Addr == "" {
		return fmt.Errorf("REDIS_ADDR is required")
	}

	switch c.Content.Provider {
	case ProviderHTTP, ProviderNone:
	case ProviderGemini:
		if c.Content.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when CONTENT_PROVIDER=gemini")
		}
	case ProviderOpenAI:
		if c.Content.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when CONTENT_PROVIDER=openai")
		}
	default:
		return fmt.Errorf("unknown CONTENT_PROVIDER %q", c.Content.Provider)
	}

	if c.Lock.Backend != LockMemory && c.Lock.Backend != LockRedis {
		return fmt.Errorf("unknown LOCK_BACKEND %q", c.Lock.Backend)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
