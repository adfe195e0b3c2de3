package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is built once at startup and passed by reference. It is never
// mutated after Load returns.
type Config struct {
	AppPort    string `env:"APP_PORT" envDefault:"8080"`
	PublicHost string `env:"PUBLIC_HOST" envDefault:"http://localhost:8080"`

	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBName     string `env:"DB_NAME"`

	JWTSecret string `env:"JWT_SECRET"`

	NATSURL string `env:"NATS_URL" envDefault:"nats://localhost:4222"`

	S3Endpoint     string `env:"S3_ENDPOINT"`
	S3Bucket       string `env:"S3_BUCKET_NAME"`
	AWSRegion      string `env:"AWS_REGION" envDefault:"eu-west-1"`
	AWSAccessKey   string `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretKey   string `env:"AWS_SECRET_ACCESS_KEY"`
	S3UsePathStyle bool   `env:"S3_USE_PATH_STYLE"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM" envDefault:"equipe@pickaguide.fr"`

	PaymentAPIURL string `env:"PAYMENT_API_URL"`
	PaymentAPIKey string `env:"PAYMENT_API_KEY"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}
	return &cfg, nil
}

func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Validate checks the settings the server cannot run without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("missing JWT_SECRET environment variable")
	}
	if c.DBName == "" {
		return fmt.Errorf("missing DB_NAME environment variable")
	}
	return nil
}
