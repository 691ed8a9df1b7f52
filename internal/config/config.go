package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string
	Environment string
	LogFilePath string

	DBDriver string
	DBDSN    string

	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	WorkspaceTTL time.Duration
	UploadLimit  string
	Timezone     string

	SwaggerHost string
}

// ConfigError reports a missing or malformed setting.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Key, e.Reason)
}

// Load builds Config from .env (when present) and the environment with sensible defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	return &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		Environment:   getEnv("APP_ENV", "development"),
		LogFilePath:   getEnv("LOG_FILE_PATH", "studybuddy.log"),
		DBDriver:      getEnv("DB_DRIVER", DriverSQLite),
		DBDSN:         getEnv("DB_DSN", "learning_companion.db"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisPass:     os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     getEnv("JWT_SECRET", "change-me"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		WorkspaceTTL:  getEnvDuration("WORKSPACE_TTL", 24*time.Hour),
		UploadLimit:   getEnv("UPLOAD_LIMIT", "10M"),
		Timezone:      getEnv("TIMEZONE", "UTC"),
		SwaggerHost:   os.Getenv("SWAGGER_HOST"),
	}
}

// Validate reports the first setting that would otherwise fail later at call time.
func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return &ConfigError{Key: "GEMINI_API_KEY", Reason: "must be set"}
	}
	switch c.DBDriver {
	case DriverSQLite, DriverMySQL:
	default:
		return &ConfigError{Key: "DB_DRIVER", Reason: fmt.Sprintf("unsupported driver %q", c.DBDriver)}
	}
	if c.DBDSN == "" {
		return &ConfigError{Key: "DB_DSN", Reason: "must be set"}
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return &ConfigError{Key: "TIMEZONE", Reason: err.Error()}
	}
	if c.WorkspaceTTL <= 0 {
		return &ConfigError{Key: "WORKSPACE_TTL", Reason: "must be positive"}
	}
	return nil
}

// Location returns the timezone study sessions are scheduled in.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsProduction reports whether the service runs with production logging.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
