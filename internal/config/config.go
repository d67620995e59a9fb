package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StoreFile     = "file"
	StorePostgres = "postgres"
	StoreMemory   = "memory"

	MailGmail = "gmail"
	MailSMTP  = "smtp"
)

// Config reúne tudo que vem do ambiente. Defaults ficam nas tags.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	StoreDriver string `env:"STORE_DRIVER" envDefault:"file"`
	DataDir     string `env:"DATA_DIR" envDefault:"data"`
	DatabaseURL string `env:"DATABASE_URL"`

	MailDriver            string `env:"MAIL_DRIVER" envDefault:"gmail"`
	GmailTokenPath        string `env:"GMAIL_TOKEN_PATH" envDefault:"token.json"`
	GmailClientSecretPath string `env:"GMAIL_CLIENT_SECRET_PATH" envDefault:"credentials.json"`
	MailHost              string `env:"MAIL_HOST"`
	MailPort              int    `env:"MAIL_PORT" envDefault:"587"`
	MailUser              string `env:"MAIL_USER"`
	MailPass              string `env:"MAIL_PASS"`
	MailFrom              string `env:"MAIL_FROM"`

	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`

	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	DraftCacheTTL time.Duration `env:"DRAFT_CACHE_TTL" envDefault:"24h"`

	AMQPURL string `env:"AMQP_URL"`

	StorageType        string `env:"STORAGE_TYPE" envDefault:"local"`
	StorageLocalPath   string `env:"STORAGE_LOCAL_PATH" envDefault:"uploads"`
	AWSS3Bucket        string `env:"AWS_S3_BUCKET"`
	AWSRegion          string `env:"AWS_REGION" envDefault:"us-east-1"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`

	StripeSecretKey    string `env:"STRIPE_SECRET_KEY"`
	CheckoutSuccessURL string `env:"CHECKOUT_SUCCESS_URL" envDefault:"http://localhost:3000/success"`
	CheckoutCancelURL  string `env:"CHECKOUT_CANCEL_URL" envDefault:"http://localhost:3000/cancel"`

	PolarAPIKey         string `env:"POLAR_API_KEY"`
	PolarOrganizationID string `env:"POLAR_ORGANIZATION_ID"`
	PolarBaseURL        string `env:"POLAR_BASE_URL" envDefault:"https://api.polar.sh/v1"`

	// Zero desliga o worker de sync de respostas
	ReplySyncInterval time.Duration `env:"REPLY_SYNC_INTERVAL" envDefault:"5m"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`
	DraftRateLimit int      `env:"DRAFT_RATE_LIMIT" envDefault:"30"`
}

// Load lê o .env (se existir) e depois o ambiente.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse só lê o ambiente atual, sem .env.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreFile, StoreMemory:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	switch c.MailDriver {
	case MailGmail:
	case MailSMTP:
		if c.MailHost == "" || c.MailFrom == "" {
			return fmt.Errorf("MAIL_HOST and MAIL_FROM are required when MAIL_DRIVER=smtp")
		}
	default:
		return fmt.Errorf("unknown MAIL_DRIVER %q", c.MailDriver)
	}

	if c.ReplySyncInterval < 0 {
		return fmt.Errorf("REPLY_SYNC_INTERVAL must not be negative")
	}
	return nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}
