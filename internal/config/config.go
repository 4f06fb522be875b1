package config

import (
	"fmt"
	"os"
	"strings"
)

type ServerConfig struct {
	Port string
}

type MongoConfig struct {
	URI      string
	Database string
}

type SecurityConfig struct {
	// CustomerJWTSecret verifies session tokens minted by the identity provider.
	CustomerJWTSecret string
	// CustomerJWTPublicKey optionally enables RS256 verification.
	CustomerJWTPublicKey string
	AdminEmail           string
	AdminPassword        string
	AdminJWTSecret       string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type LoggingConfig struct {
	Directory string
	Level     string
	Format    string
}

type InvoiceConfig struct {
	// UPIAddress is the payee VPA embedded in the invoice payment URI.
	UPIAddress string
	PayeeName  string
}

type Config struct {
	Server   ServerConfig
	Mongo    MongoConfig
	Security SecurityConfig
	Kafka    KafkaConfig
	Logging  LoggingConfig
	Invoice  InvoiceConfig
}

// Load reads the configuration from the environment and validates the values
// the service cannot run without.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getenv("PORT", "5000"),
		},
		Mongo: MongoConfig{
			URI:      os.Getenv("MONGODB_URI"),
			Database: getenv("MONGODB_DATABASE", "pizzaunlimited"),
		},
		Security: SecurityConfig{
			CustomerJWTSecret:    os.Getenv("CUSTOMER_JWT_SECRET"),
			CustomerJWTPublicKey: os.Getenv("CUSTOMER_JWT_PUBLIC_KEY"),
			AdminEmail:           os.Getenv("ADMIN_EMAIL"),
			AdminPassword:        os.Getenv("ADMIN_PASSWORD"),
			AdminJWTSecret:       os.Getenv("ADMIN_JWT_SECRET"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:   getenv("KAFKA_EVENTS_TOPIC", "restaurant.events"),
		},
		Logging: LoggingConfig{
			Directory: getenv("LOG_DIRECTORY", "./logs"),
			Level:     getenv("LOG_LEVEL", "info"),
			Format:    getenv("LOG_FORMAT", "text"),
		},
		Invoice: InvoiceConfig{
			UPIAddress: getenv("INVOICE_UPI_ADDRESS", "yourupi@bank"),
			PayeeName:  getenv("INVOICE_PAYEE_NAME", "PizzaUnlimited"),
		},
	}

	if cfg.Mongo.URI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}
	if cfg.Security.CustomerJWTSecret == "" && cfg.Security.CustomerJWTPublicKey == "" {
		return nil, fmt.Errorf("CUSTOMER_JWT_SECRET or CUSTOMER_JWT_PUBLIC_KEY is required")
	}
	if cfg.Security.AdminEmail == "" || cfg.Security.AdminPassword == "" {
		return nil, fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}
	if cfg.Security.AdminJWTSecret == "" {
		return nil, fmt.Errorf("ADMIN_JWT_SECRET is required")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
