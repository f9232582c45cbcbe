package config

import (
	"fmt"
	"net/url"

	"github.com/caarlos0/env/v6"
	"golang.org/x/crypto/bcrypt"
)

const (
	NotifierLog      = "log"
	NotifierSES      = "ses"
	NotifierRabbitMQ = "rabbitmq"
)

type Config struct {
	// IsTestMode echoes issued reset tokens in a response header for end-to-end
	// tests. Never enable it in production.
	IsTestMode bool `env:"TEST_MODE" envDefault:"false"`
	Port       int  `env:"PORT" envDefault:"3001"`

	PostgresqlURL  string `env:"POSTGRESQL_URL,required"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"migrations"`

	BcryptHasherCost                int `env:"BCRYPT_HASHER_COST" envDefault:"10"`
	PasswordMinLength               int `env:"PASSWORD_MIN_LENGTH" envDefault:"6"`
	PasswordResetValidDurationHours int `env:"PASSWORD_RESET_VALID_DURATION_HOURS" envDefault:"1"`

	FrontendURL    url.URL  `env:"FRONTEND_URL" envDefault:"http://localhost:8080"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:8080"`

	Notifier string `env:"NOTIFIER" envDefault:"log"`

	AwsRegion      string `env:"AWS_REGION"`
	AwsAccessKey   string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey   string `env:"AWS_SECRET_KEY"`
	AwsEmailSender string `env:"AWS_EMAIL_SENDER"`

	RabbitmqURL       string `env:"RABBITMQ_URL"`
	RabbitmqMailQueue string `env:"RABBITMQ_MAIL_QUEUE" envDefault:"mail"`

	SentryDsn *url.URL `env:"SENTRY_DSN"`
}

func Load() (*Config, error) {
	return load(env.Options{})
}

func load(opts env.Options) (*Config, error) {
	config := &Config{}
	if err := env.Parse(config, opts); err != nil {
		return nil, err
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	if c.PostgresqlURL == "" {
		return fmt.Errorf("POSTGRESQL_URL must be set")
	}
	if c.BcryptHasherCost < bcrypt.MinCost || c.BcryptHasherCost > bcrypt.MaxCost {
		return fmt.Errorf(
			"BCRYPT_HASHER_COST must be in [%d, %d], got %d",
			bcrypt.MinCost,
			bcrypt.MaxCost,
			c.BcryptHasherCost,
		)
	}
	if c.PasswordMinLength <= 0 {
		return fmt.Errorf("PASSWORD_MIN_LENGTH must be positive, got %d", c.PasswordMinLength)
	}
	if c.PasswordResetValidDurationHours <= 0 {
		return fmt.Errorf(
			"PASSWORD_RESET_VALID_DURATION_HOURS must be positive, got %d",
			c.PasswordResetValidDurationHours,
		)
	}
	if c.FrontendURL.Scheme == "" || c.FrontendURL.Host == "" {
		return fmt.Errorf("FRONTEND_URL must be an absolute URL, got %q", c.FrontendURL.String())
	}

	switch c.Notifier {
	case NotifierLog:
	case NotifierSES:
		return c.ValidateSES()
	case NotifierRabbitMQ:
		if c.RabbitmqURL == "" {
			return fmt.Errorf("RABBITMQ_URL must be set for the %s notifier", NotifierRabbitMQ)
		}
		if c.RabbitmqMailQueue == "" {
			return fmt.Errorf("RABBITMQ_MAIL_QUEUE must not be empty")
		}
	default:
		return fmt.Errorf("unknown NOTIFIER %q", c.Notifier)
	}
	return nil
}

// ValidateSES checks the settings needed to deliver mail through Amazon SES.
func (c *Config) ValidateSES() error {
	return validateSES(c.AwsRegion, c.AwsEmailSender, c.AwsAccessKey, c.AwsSecretKey)
}

// MailerConfig configures the worker that drains the mail queue into Amazon SES.
type MailerConfig struct {
	AwsRegion      string `env:"AWS_REGION"`
	AwsAccessKey   string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey   string `env:"AWS_SECRET_KEY"`
	AwsEmailSender string `env:"AWS_EMAIL_SENDER"`

	RabbitmqURL       string `env:"RABBITMQ_URL,required"`
	RabbitmqMailQueue string `env:"RABBITMQ_MAIL_QUEUE" envDefault:"mail"`

	SentryDsn *url.URL `env:"SENTRY_DSN"`
}

func LoadMailer() (*MailerConfig, error) {
	return loadMailer(env.Options{})
}

func loadMailer(opts env.Options) (*MailerConfig, error) {
	config := &MailerConfig{}
	if err := env.Parse(config, opts); err != nil {
		return nil, err
	}
	if config.RabbitmqURL == "" {
		return nil, fmt.Errorf("RABBITMQ_URL must be set")
	}
	if config.RabbitmqMailQueue == "" {
		return nil, fmt.Errorf("RABBITMQ_MAIL_QUEUE must not be empty")
	}
	err := validateSES(config.AwsRegion, config.AwsEmailSender, config.AwsAccessKey, config.AwsSecretKey)
	if err != nil {
		return nil, err
	}
	return config, nil
}

func validateSES(region, sender, accessKey, secretKey string) error {
	if region == "" {
		return fmt.Errorf("AWS_REGION must be set")
	}
	if sender == "" {
		return fmt.Errorf("AWS_EMAIL_SENDER must be set")
	}
	if (accessKey == "") != (secretKey == "") {
		return fmt.Errorf("AWS_ACCESS_KEY and AWS_SECRET_KEY must be set together")
	}
	return nil
}
