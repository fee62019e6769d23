package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DB         DBConfig
	Server     ServerConfig
	Generation GenerationConfig
	Locale     LocaleConfig
	Metrics    MetricsConfig
}

// DBType represents database type
type DBType string

const (
	DBTypePostgreSQL DBType = "postgres"
	DBTypeMemory     DBType = "memory"
)

const (
	minGenerationTimeout = 60 * time.Second
	maxGenerationTimeout = 90 * time.Second
	maxLocaleTimeout     = 5 * time.Second
)

// DBConfig holds database configuration
type DBConfig struct {
	Type     DBType
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// GenerationConfig holds settings for the external generative-language endpoint.
// An empty APIKey disables the endpoint and every itinerary comes from the fallback.
type GenerationConfig struct {
	APIKey      string
	Endpoint    string
	Model       string
	Timeout     time.Duration
	Temperature float64
}

// Configured reports whether a credential for the generation endpoint is present.
func (c GenerationConfig) Configured() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// LocaleConfig holds settings for the reference locale endpoint
type LocaleConfig struct {
	Endpoint string
	Timeout  time.Duration
}

// MetricsConfig holds prometheus settings
type MetricsConfig struct {
	Namespace string
}

// DSN returns the database connection string
func (c DBConfig) DSN() string {
	if c.Type == DBTypeMemory {
		if c.Name != "" && c.Name != "tripsynth" {
			return fmt.Sprintf("file:%s?mode=memory&cache=shared", c.Name)
		}
		return "file::memory:?cache=shared"
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// IsMemory returns true if using in-memory database
func (c DBConfig) IsMemory() bool {
	return c.Type == DBTypeMemory
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbType := DBType(getEnv("DB_TYPE", "memory"))
	if dbType != DBTypePostgreSQL && dbType != DBTypeMemory {
		dbType = DBTypeMemory
	}

	temperature := getEnvAsFloat("GENERATION_TEMPERATURE", 0.3)
	if temperature < 0 || temperature > 1 {
		return nil, fmt.Errorf("GENERATION_TEMPERATURE must be within [0, 1], got %v", temperature)
	}

	config := &Config{
		DB: DBConfig{
			Type:     dbType,
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "tripsynth"),
			Password: getEnv("DB_PASSWORD", "tripsynth_password"),
			Name:     getEnv("DB_NAME", "tripsynth"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Server: ServerConfig{
			Port: getEnv("APP_PORT", "8080"),
		},
		Generation: GenerationConfig{
			APIKey:      strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
			Endpoint:    strings.TrimRight(getEnv("GENERATION_ENDPOINT", "https://generativelanguage.googleapis.com"), "/"),
			Model:       getEnv("GENERATION_MODEL", "gemini-2.0-flash"),
			Timeout:     clampDuration(getEnvAsSeconds("GENERATION_TIMEOUT_SECONDS", 75), minGenerationTimeout, maxGenerationTimeout),
			Temperature: temperature,
		},
		Locale: LocaleConfig{
			Endpoint: strings.TrimRight(getEnv("LOCALE_ENDPOINT", "https://restcountries.com"), "/"),
			Timeout:  clampDuration(getEnvAsSeconds("LOCALE_TIMEOUT_SECONDS", 5), time.Second, maxLocaleTimeout),
		},
		Metrics: MetricsConfig{
			Namespace: getEnv("METRICS_NAMESPACE", "tripsynth"),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsSeconds(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvAsInt(key, defaultSeconds)) * time.Second
}

func clampDuration(d, lo, hi time.Duration) time.Duration {
	if d < lo {
		return lo
	}
	if d > hi {
		return hi
	}
	return d
}
