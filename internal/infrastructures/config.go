package infrastructures

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type AppConfig struct {
	DATABASE_URL          string
	CONNECT_BASE_URL      string
	REDIS_ADDRESS         string
	REDIS_PASSWORD        string
	HTTP_ADDRESS          string
	PENDING_CODE_TTL      time.Duration
	REDEMPTION_TIMEZONE   string
	NOTIFICATION_QUEUE    string
	NOTIFICATION_TIMEOUT  time.Duration
	HOUSEKEEPING_INTERVAL time.Duration
	PENDING_RETENTION     time.Duration
	RATE_LIMIT_BACKEND    string
	AUTO_MIGRATE          bool
	LOG_LEVEL             string
	OTEL_ENDPOINT         string

	location *time.Location
}

var Config *AppConfig

func LoadConfig() *AppConfig {
	godotenv.Load()

	Config = &AppConfig{
		DATABASE_URL:          os.Getenv("DATABASE_URL"),
		CONNECT_BASE_URL:      os.Getenv("CONNECT_BASE_URL"),
		REDIS_ADDRESS:         os.Getenv("REDIS_ADDRESS"),
		REDIS_PASSWORD:        os.Getenv("REDIS_PASSWORD"),
		HTTP_ADDRESS:          getEnv("HTTP_ADDRESS", ":8080"),
		PENDING_CODE_TTL:      getEnvDuration("PENDING_CODE_TTL", 15*time.Minute),
		REDEMPTION_TIMEZONE:   getEnv("REDEMPTION_TIMEZONE", "UTC"),
		NOTIFICATION_QUEUE:    getEnv("NOTIFICATION_QUEUE", "gsalt:notifications"),
		NOTIFICATION_TIMEOUT:  getEnvDuration("NOTIFICATION_TIMEOUT", 5*time.Second),
		HOUSEKEEPING_INTERVAL: getEnvDuration("HOUSEKEEPING_INTERVAL", 10*time.Minute),
		PENDING_RETENTION:     getEnvDuration("PENDING_RETENTION", 7*24*time.Hour),
		RATE_LIMIT_BACKEND:    getEnv("RATE_LIMIT_BACKEND", "redis"),
		AUTO_MIGRATE:          getEnvBool("AUTO_MIGRATE", true),
		LOG_LEVEL:             getEnv("LOG_LEVEL", "info"),
		OTEL_ENDPOINT:         os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	configureLogger(Config.LOG_LEVEL)

	return Config
}

// NewAppConfig hands the loaded configuration to the injector.
func NewAppConfig() *AppConfig {
	if Config == nil {
		return LoadConfig()
	}
	return Config
}

// Location is the zone that defines a calendar day for the daily redemption limit.
func (c *AppConfig) Location() *time.Location {
	if c.location != nil {
		return c.location
	}
	loc, err := time.LoadLocation(c.REDEMPTION_TIMEZONE)
	if err != nil {
		logrus.Warnf("unknown REDEMPTION_TIMEZONE %q, falling back to UTC", c.REDEMPTION_TIMEZONE)
		loc = time.UTC
	}
	c.location = loc
	return loc
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		logrus.Warnf("invalid duration for %s: %v", key, err)
		return defaultValue
	}
	return d
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
