package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Port         string `env:"PORT" env-default:"8082"`
	DatabaseURL  string `env:"DATABASE_URL" env-default:"postgres://localhost:5432/webstore?sslmode=disable"`
	RedisAddr    string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	KafkaBrokers string `env:"KAFKA_BROKERS" env-default:"localhost:9092"`
	OTLPEndpoint string `env:"OTLP_ENDPOINT" env-default:"jaeger:4318"`
	CartTitle    string `env:"CART_TITLE" env-default:"webstore"`

	PayWay PayWayConfig
	SMTP   SMTPConfig
}

type PayWayConfig struct {
	Endpoint   string        `env:"PAYWAY_ENDPOINT" env-default:"https://api.payway.com.au/rest/v1/transactions"`
	APIKey     string        `env:"PAYWAY_API_KEY"`
	MerchantID string        `env:"PAYWAY_MERCHANT_ID"`
	Currency   string        `env:"PAYWAY_CURRENCY" env-default:"aud"`
	Timeout    time.Duration `env:"PAYWAY_TIMEOUT" env-default:"30s"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST" env-default:"localhost"`
	Port     string `env:"SMTP_PORT" env-default:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM" env-default:"noreply@webstore.local"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
