// Package config provides configuration management for the kitchen receipt service.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Database DatabaseConfig
	Catalog  CatalogConfig
	Receipt  ReceiptConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port               string
	RateLimit          int
	RateWindow         time.Duration
	CORSOrigins        []string
	SwaggerUser        string
	SwaggerPass        string
	RequestTimeout     time.Duration
	IdempotencyEnabled bool
	IdempotencyTTL     time.Duration
	ShutdownTimeout    time.Duration
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	Enabled      bool
	APIKeys      map[string]bool
	JWTSecretKey string
	JWTIssuer    string
}

// DatabaseConfig holds MongoDB configuration.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	Enabled      bool
	ReceiptsTTL  time.Duration
	// CircuitBreaker configuration
	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// CatalogConfig holds menu catalog sync configuration.
type CatalogConfig struct {
	RefreshInterval time.Duration
	FetchTimeout    time.Duration
	SeedDefaults    bool
}

// ReceiptConfig holds receipt layout and archive configuration.
type ReceiptConfig struct {
	CompanyName    string
	Attribution    []string
	Timezone       string
	ArchiveWorkers int
	ArchiveBuffer  int
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string
	Pretty bool
}

var (
	// ErrAuthWithoutCredentials is returned when auth is on but nothing can authenticate.
	ErrAuthWithoutCredentials = errors.New("AUTH_ENABLED requires API_KEYS or JWT_SECRET_KEY")
	// ErrInvalidTimezone is returned for an unknown RECEIPT_TIMEZONE.
	ErrInvalidTimezone = errors.New("RECEIPT_TIMEZONE is not a known time zone")
)

// Load creates a Config from environment variables.
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			RateLimit:          getEnvInt("RATE_LIMIT", 100),
			RateWindow:         getEnvDuration("RATE_WINDOW", time.Minute),
			CORSOrigins:        parseList(os.Getenv("CORS_ORIGINS")),
			SwaggerUser:        getEnv("SWAGGER_USER", ""),
			SwaggerPass:        getEnv("SWAGGER_PASS", ""),
			RequestTimeout:     getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
			IdempotencyEnabled: getEnvBool("IDEMPOTENCY_ENABLED", true),
			IdempotencyTTL:     getEnvDuration("IDEMPOTENCY_TTL", 5*time.Minute),
			ShutdownTimeout:    getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Auth: AuthConfig{
			Enabled:      getEnvBool("AUTH_ENABLED", false),
			APIKeys:      parseAPIKeys(os.Getenv("API_KEYS")),
			JWTSecretKey: getEnv("JWT_SECRET_KEY", ""),
			JWTIssuer:    getEnv("JWT_ISSUER", "kitchen-receipt-service"),
		},
		Database: DatabaseConfig{
			URI:                            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName:                   getEnv("MONGODB_DATABASE", "kitchen_receipts"),
			Enabled:                        getEnvBool("MONGODB_ENABLED", false),
			ReceiptsTTL:                    getEnvDuration("MONGODB_RECEIPTS_TTL", 30*24*time.Hour),
			CircuitBreakerFailureThreshold: getEnvInt("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: getEnvInt("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          getEnvDuration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
		Catalog: CatalogConfig{
			RefreshInterval: getEnvDuration("CATALOG_REFRESH_INTERVAL", 30*time.Second),
			FetchTimeout:    getEnvDuration("CATALOG_FETCH_TIMEOUT", 10*time.Second),
			SeedDefaults:    getEnvBool("CATALOG_SEED_DEFAULTS", true),
		},
		Receipt: ReceiptConfig{
			CompanyName:    getEnv("RECEIPT_COMPANY_NAME", ""),
			Attribution:    parseList(os.Getenv("RECEIPT_ATTRIBUTION")),
			Timezone:       getEnv("RECEIPT_TIMEZONE", "Local"),
			ArchiveWorkers: getEnvInt("RECEIPT_ARCHIVE_WORKERS", 2),
			ArchiveBuffer:  getEnvInt("RECEIPT_ARCHIVE_BUFFER", 500),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvBool("LOG_PRETTY", false),
		},
	}
}

// Validate reports settings that would leave the service unusable.
func (c Config) Validate() error {
	if c.Auth.Enabled && len(c.Auth.APIKeys) == 0 && c.Auth.JWTSecretKey == "" {
		return ErrAuthWithoutCredentials
	}
	if _, err := c.Receipt.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone. An empty value means the host's zone.
func (c ReceiptConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, errors.Join(ErrInvalidTimezone, err)
	}
	return loc, nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func parseAPIKeys(s string) map[string]bool {
	keys := parseList(s)
	if len(keys) == 0 {
		return nil
	}
	result := make(map[string]bool, len(keys))
	for _, k := range keys {
		result[k] = true
	}
	return result
}

// parseList splits a comma-separated value, dropping blanks. It returns nil
// when nothing is left.
func parseList(s string) []string {
	if s == "" {
		return nil
	}
	var result []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
