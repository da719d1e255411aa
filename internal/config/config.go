package config

import (
	"os"
	"strings"
)

// defaultJWTSecret is the insecure built-in fallback; production refuses to
// start with it.
const defaultJWTSecret = "your-secret-key-change-in-production"

type Config struct {
	PostgresURI         string
	RedisURI            string // Optional; rate limiting is disabled when empty
	JWTSecret           string
	Port                string
	AllowedOrigins      []string
	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	Environment         string
}

func Load() *Config {
	return &Config{
		PostgresURI:         getEnv("POSTGRES_URI", "postgres://localhost:5432/reports?sslmode=disable"),
		RedisURI:            getEnv("REDIS_URI", ""),
		JWTSecret:           getEnv("JWT_SECRET", defaultJWTSecret),
		Port:                getEnv("PORT", "3000"),
		AllowedOrigins:      parseOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
		CloudinaryName:      getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		Environment:         strings.ToLower(strings.TrimSpace(getEnv("ENV", "development"))),
	}
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// HasDefaultJWTSecret reports whether JWT_SECRET was left at the insecure
// built-in value.
func (c *Config) HasDefaultJWTSecret() bool {
	return c.JWTSecret == defaultJWTSecret
}

func parseOrigins(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
