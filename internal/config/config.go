package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET environment variable is not set")

type Config struct {
	Server  ServerConfig
	Auth    AuthConfig
	Seed    SeedConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	Mode            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

type AuthConfig struct {
	JWTSecret        string
	TokenTTL         time.Duration
	PasswordHash     string
	PasswordPepper   string
	PBKDF2Iterations int
	RateLimit        float64
	RateBurst        int
}

type SeedConfig struct {
	DemoData      bool
	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

type LoggingConfig struct {
	Level  string
	Format string
}

// LoadDotEnv reads .env files into the process environment. A missing file is
// not an error.
func LoadDotEnv(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// LoadConfig builds the configuration from the environment. The signing
// secret has no fallback: without JWT_SECRET the server must not start.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnvAsString("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 4000),
			Mode:            getEnvAsString("GIN_MODE", "release"),
			ReadTimeout:     getEnvAsDuration("READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvAsDuration("WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{
				"http://localhost:3000",
				"https://studio.apollographql.com",
			}),
		},
		Auth: AuthConfig{
			JWTSecret:        os.Getenv("JWT_SECRET"),
			TokenTTL:         getEnvAsDuration("TOKEN_TTL", 24*time.Hour),
			PasswordHash:     getEnvAsString("PASSWORD_HASH", "sha256"),
			PasswordPepper:   os.Getenv("PASSWORD_PEPPER"),
			PBKDF2Iterations: getEnvAsInt("PBKDF2_ITERATIONS", 100000),
			RateLimit:        getEnvAsFloat("AUTH_RATE_LIMIT", 5),
			RateBurst:        getEnvAsInt("AUTH_RATE_BURST", 10),
		},
		Seed: SeedConfig{
			DemoData:      getEnvAsBool("SEED_DEMO_DATA", false),
			AdminUsername: os.Getenv("ADMIN_USERNAME"),
			AdminEmail:    os.Getenv("ADMIN_EMAIL"),
			AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		},
		Logging: LoggingConfig{
			Level:  getEnvAsString("LOG_LEVEL", "info"),
			Format: getEnvAsString("LOG_FORMAT", "json"),
		},
	}

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		return nil, ErrMissingJWTSecret
	}

	return cfg, nil
}

func getEnvAsString(key, defaultValue string) string {
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
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
