package config

import (
	"fmt"
	"os"
	"time"
)

// Service configuration constants
const (
	ServiceName    = "order-service"
	ServiceVersion = "0.1.0"
)

// Kafka configuration constants
const (
	OrderCreatedTopic = "OrderCreated"
	BatchTimeout      = 10 * time.Millisecond
	BatchSize         = 100
)

// OpenTelemetry configuration constants
const (
	LogsPath      = "/otlp/v1/logs"
	TracesPath    = "/otlp/v1/traces"
	ExportTimeout = 30 * time.Second
	MaxQueueSize  = 2048
)

// Config holds environment-specific configuration
type Config struct {
	ServerAddr             string
	DBPath                 string
	InventoryServiceURL    string
	NotificationServiceURL string
	RequestTimeout         time.Duration

	// Optional: order events are published only when a broker is configured
	KafkaBroker string

	// Optional: telemetry export is disabled when the endpoint is empty
	OtelEndpoint   string
	OtelAuthHeader string
}

// LoadConfig loads configuration from environment variables with sensible defaults
func LoadConfig() (*Config, error) {
	config := &Config{
		ServerAddr:             getEnvOrDefault("SERVER_ADDR", ":8000"),
		DBPath:                 getEnvOrDefault("DB_PATH", "/data/orders.db"),
		InventoryServiceURL:    getEnvOrDefault("INVENTORY_SERVICE_URL", "http://nodejs-service:3000"),
		NotificationServiceURL: getEnvOrDefault("NOTIFICATION_SERVICE_URL", "http://java-service:8081"),
		KafkaBroker:            os.Getenv("KAFKA_BROKER"),
		OtelEndpoint:           os.Getenv("OTEL_ENDPOINT"),
		OtelAuthHeader:         os.Getenv("OTEL_AUTH_HEADER"),
	}

	timeout := getEnvOrDefault("DOWNSTREAM_TIMEOUT", "10s")
	d, err := time.ParseDuration(timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid DOWNSTREAM_TIMEOUT %q: %w", timeout, err)
	}
	if d <= 0 {
		return nil, fmt.Errorf("DOWNSTREAM_TIMEOUT must be positive, got %q", timeout)
	}
	config.RequestTimeout = d

	// Basic validation
	if config.InventoryServiceURL == "" {
		return nil, fmt.Errorf("INVENTORY_SERVICE_URL cannot be empty")
	}
	if config.NotificationServiceURL == "" {
		return nil, fmt.Errorf("NOTIFICATION_SERVICE_URL cannot be empty")
	}
	if config.OtelEndpoint != "" && config.OtelAuthHeader == "" {
		return nil, fmt.Errorf("OTEL_AUTH_HEADER is required when OTEL_ENDPOINT is set")
	}

	return config, nil
}

// Helper function
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
