// Package config loads and validates application configuration from
// environment variables. Loading collects every problem it finds and
// reports them together, so a misconfigured deployment fails once with
// the full list instead of one variable at a time.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// PoolConfig holds settings for the PostgreSQL connection pool.
type PoolConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxSize  int
}

// AuthConfig holds token signing and lifetime settings.
// The same secret signs both token profiles; they differ only in
// lifetime and the type claim embedded in the token.
type AuthConfig struct {
	JWTSecret       string        // secret key for signing JWTs
	SessionTokenTTL time.Duration // lifetime of login session tokens
	ResetTokenTTL   time.Duration // lifetime of password-reset tokens
	ResetLinkBase   string        // base URL the reset token is appended to
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string
}

// AppConfig is the top-level configuration structure.
type AppConfig struct {
	DB     *PoolConfig
	Auth   *AuthConfig
	Server *ServerConfig
}

// getRequiredEnv reads a mandatory variable, recording an error when
// it is absent.
func getRequiredEnv(key string, errs *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		*errs = append(*errs, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getOptionalEnvInt(key string, defaultValue int, errs *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

func getOptionalEnvDuration(key string, defaultValue time.Duration, errs *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueDuration
}

// LoadConfig builds an AppConfig from the environment. It returns a
// single aggregated error when any variable is missing or malformed.
func LoadConfig() (*AppConfig, error) {
	var errs []string

	// Database settings.
	dbUser := getRequiredEnv("DB_USER", &errs)
	dbPassword := getRequiredEnv("DB_PASSWORD", &errs)
	dbName := getRequiredEnv("DB_NAME", &errs)
	dbHost := getOptionalEnv("DB_HOST", "localhost")
	dbPort := getOptionalEnvInt("DB_PORT", 5432, &errs)
	poolSize := getOptionalEnvInt("DB_POOL_SIZE", 10, &errs)
	if poolSize < 1 {
		errs = append(errs, fmt.Sprintf("DB_POOL_SIZE must be positive, got %d", poolSize))
		poolSize = 10
	}

	dbConfig := &PoolConfig{
		Host:     dbHost,
		Port:     dbPort,
		User:     dbUser,
		Password: dbPassword,
		DBName:   dbName,
		MaxSize:  poolSize,
	}

	// Token settings. Session tokens live for 7 days, reset tokens
	// for 15 minutes unless overridden.
	jwtSecret := getRequiredEnv("JWT_SECRET", &errs)
	sessionTTL := getOptionalEnvDuration("SESSION_TOKEN_TTL", 168*time.Hour, &errs)
	resetTTL := getOptionalEnvDuration("RESET_TOKEN_TTL", 15*time.Minute, &errs)
	resetLinkBase := getOptionalEnv("RESET_LINK_BASE", "http://localhost:5173/reset-password")

	authConfig := &AuthConfig{
		JWTSecret:       jwtSecret,
		SessionTokenTTL: sessionTTL,
		ResetTokenTTL:   resetTTL,
		ResetLinkBase:   resetLinkBase,
	}

	serverConfig := &ServerConfig{
		Port: getOptionalEnv("PORT", "5000"),
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errs, "\n- "))
	}

	return &AppConfig{
		DB:     dbConfig,
		Auth:   authConfig,
		Server: serverConfig,
	}, nil
}
