package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Registration store backends.
const (
	RegistrationStoreNone   = "none"
	RegistrationStoreMemory = "memory"
	RegistrationStoreDynamo = "dynamo"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort        string   `envconfig:"APP_PORT" default:"3000"`
	AppEnv         string   `envconfig:"APP_ENV" default:"development"`
	LogFormat      string   `envconfig:"LOG_FORMAT" default:"text"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"*"` // CORS allowed origins

	Latency Latency
	Auth    Auth
	Fixture Fixture
	Credit  Credit

	RegistrationStore string `envconfig:"REGISTRATION_STORE" default:"none"`

	AWSRegion      string `envconfig:"AWS_REGION" default:"us-east-1"`
	AWSEndpointURL string `envconfig:"AWS_ENDPOINT_URL"` // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string `envconfig:"AWS_ACCESS_KEY_ID"`
	AWSSecretKey   string `envconfig:"AWS_SECRET_ACCESS_KEY"`

	DynamoRegistrationsTable string `envconfig:"DYNAMO_TABLE_REGISTRATIONS" default:"registrations"`
	S3BucketName             string `envconfig:"S3_BUCKET_NAME" default:"vsbank-fixtures"`
	SNSTopicARN              string `envconfig:"SNS_TOPIC_ARN"`

	RedisAddr string `envconfig:"REDIS_ADDR"`

	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPPort     string `envconfig:"SMTP_PORT" default:"1025"`
	SMTPFrom     string `envconfig:"SMTP_FROM" default:"nao-responda@vsbank.local"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`

	RateLimitPerMinute int     `envconfig:"RATE_LIMIT_PER_MINUTE" default:"120"`
	AuthRatePerSecond  float64 `envconfig:"AUTH_RATE_PER_SECOND" default:"5"`
	AuthRateBurst      int     `envconfig:"AUTH_RATE_BURST" default:"10"`
}

// Nested groups are read with their field name as prefix, e.g. LATENCY_LOGIN,
// AUTH_STRICT_TOKENS, FIXTURE_S3_KEY, CREDIT_MAX_AMOUNT. envconfig also
// falls back to the bare tag, so tags avoid common names such as PATH.

// Latency is the simulated network delay of each gateway operation.
type Latency struct {
	Login        time.Duration `envconfig:"LOGIN" default:"1000ms"`
	TwoFactor    time.Duration `envconfig:"2FA" default:"800ms"`
	Register     time.Duration `envconfig:"REGISTER" default:"1200ms"`
	AccountInfo  time.Duration `envconfig:"ACCOUNT_ME" default:"500ms"`
	Summary      time.Duration `envconfig:"ACCOUNT_SUMMARY" default:"300ms"`
	Transactions time.Duration `envconfig:"TRANSACTIONS" default:"400ms"`
}

type Auth struct {
	// StrictTokens makes 2FA consume issued pre-auth tokens and bearer checks
	// require a session token issued by this process.
	StrictTokens      bool          `envconfig:"STRICT_TOKENS" default:"false"`
	PreTokenTTL       time.Duration `envconfig:"PRE_TOKEN_TTL" default:"5m"`
	SessionTTL        time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	JWTPrivateKeyPath string        `envconfig:"JWT_PRIVATE_KEY_PATH"`
	JWTPublicKeyPath  string        `envconfig:"JWT_PUBLIC_KEY_PATH"`
}

type Fixture struct {
	File        string `envconfig:"FILE"`
	S3Key       string `envconfig:"S3_KEY"`
	RebaseDates bool   `envconfig:"REBASE_DATES" default:"false"`
}

type Credit struct {
	DefaultMonthlyRate float64 `envconfig:"DEFAULT_MONTHLY_RATE" default:"2.99"`
	MaxAmount          float64 `envconfig:"MAX_AMOUNT" default:"50000"`
}

// Load reads all configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	switch cfg.RegistrationStore {
	case RegistrationStoreNone, RegistrationStoreMemory, RegistrationStoreDynamo:
	default:
		return nil, fmt.Errorf("unknown REGISTRATION_STORE %q", cfg.RegistrationStore)
	}
	if cfg.Credit.MaxAmount <= 0 {
		return nil, errors.New("CREDIT_MAX_AMOUNT must be positive")
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// JWTEnabled reports whether both key paths are configured.
func (c *Config) JWTEnabled() bool {
	return c.Auth.JWTPrivateKeyPath != "" && c.Auth.JWTPublicKeyPath != ""
}
