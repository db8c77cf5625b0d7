package config

import (
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/solarspark/store/pkg/config"
)

type Config struct {
	ServiceName string
	ServerPort  int

	DatabaseURL string

	JWTSecret []byte
	TokenTTL  time.Duration

	// Pricing is configuration rather than package constants so tests
	// can run with varied rates.
	TaxRate      decimal.Decimal
	ShippingCost decimal.Decimal

	KafkaBrokers   []string
	AnalyticsTopic string

	LogLevel string
}

func Load() Config {
	cfg := Config{
		ServiceName: config.EnvDefault("SERVICE_NAME", "store-api"),
		ServerPort:  config.EnvIntDefault("SERVER_PORT", 8080),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret: []byte(os.Getenv("JWT_SECRET")),
		TokenTTL:  time.Duration(config.EnvIntDefault("TOKEN_TTL_HOURS", 24)) * time.Hour,

		TaxRate:      config.EnvDecimalDefault("TAX_RATE", "0.075"),
		ShippingCost: config.EnvDecimalDefault("SHIPPING_COST", "25.00"),

		KafkaBrokers:   config.CSV(os.Getenv("KAFKA_BROKERS")),
		AnalyticsTopic: config.EnvDefault("ANALYTICS_TOPIC", "analytics_events"),

		LogLevel: os.Getenv("LOG_LEVEL"),
	}

	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	return cfg
}
