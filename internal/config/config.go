// Package config handles loading and validation of application configuration
// from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Environment represents the application's running environment (development or production).
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"

	// DevChallengeSecret signs local verification challenges in development.
	// It is rejected in production.
	DevChallengeSecret = "tabsplit-development-challenge-secret"

	minSecretLength = 32
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT"`
	Port           string      `mapstructure:"PORT"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS"`
	// StaticPath is a directory of frontend files served on /. Empty disables it.
	StaticPath     string `mapstructure:"STATIC_PATH"`
	MaxUploadBytes int64  `mapstructure:"MAX_UPLOAD_BYTES"`
}

// DatabaseConfig selects the SQL backend.
type DatabaseConfig struct {
	Driver       string `mapstructure:"DRIVER"`
	Path         string `mapstructure:"PATH"`
	URL          string `mapstructure:"URL"`
	MaxOpenConns int    `mapstructure:"MAX_OPEN_CONNS"`
}

// ImageConfig selects where receipt images are stored.
type ImageConfig struct {
	Backend         string `mapstructure:"BACKEND"`
	Dir             string `mapstructure:"DIR"`
	Bucket          string `mapstructure:"BUCKET"`
	Region          string `mapstructure:"REGION"`
	Endpoint        string `mapstructure:"ENDPOINT"`
	AccessKeyID     string `mapstructure:"ACCESS_KEY_ID"`
	SecretAccessKey string `mapstructure:"SECRET_ACCESS_KEY"`
}

// ParserConfig configures the receipt parsing service.
type ParserConfig struct {
	Provider       string `mapstructure:"PROVIDER"`
	APIKey         string `mapstructure:"API_KEY"`
	Model          string `mapstructure:"MODEL"`
	BaseURL        string `mapstructure:"BASE_URL"`
	TimeoutSeconds int    `mapstructure:"TIMEOUT_SECONDS"`
}

// TwilioConfig holds Twilio credentials for SMS and Verify.
type TwilioConfig struct {
	AccountSID       string `mapstructure:"ACCOUNT_SID"`
	AuthToken        string `mapstructure:"AUTH_TOKEN"`
	FromNumber       string `mapstructure:"FROM_NUMBER"`
	VerifyServiceSID string `mapstructure:"VERIFY_SERVICE_SID"`
}

// Enabled reports whether Twilio credentials are configured.
func (c *TwilioConfig) Enabled() bool {
	return c.AccountSID != "" && c.AuthToken != ""
}

// VerificationConfig selects the phone verification provider.
type VerificationConfig struct {
	Provider        string `mapstructure:"PROVIDER"`
	ChallengeSecret string `mapstructure:"CHALLENGE_SECRET"`
	CodeTTLSeconds  int    `mapstructure:"CODE_TTL_SECONDS"`
}

// CodeTTL returns the verification code lifetime.
func (c *VerificationConfig) CodeTTL() time.Duration {
	return time.Duration(c.CodeTTLSeconds) * time.Second
}

// RedisConfig holds Redis connection details. An empty address disables
// rate limiting.
type RedisConfig struct {
	Address  string `mapstructure:"ADDRESS"`
	Password string `mapstructure:"PASSWORD"`
	DB       int    `mapstructure:"DB"`
}

// RateLimitConfig holds fixed-window limits.
type RateLimitConfig struct {
	VerificationStarts        int `mapstructure:"VERIFICATION_STARTS"`
	VerificationWindowSeconds int `mapstructure:"VERIFICATION_WINDOW_SECONDS"`
	// VerificationChecks bounds code guesses per participant.
	VerificationChecks             int `mapstructure:"VERIFICATION_CHECKS"`
	VerificationCheckWindowSeconds int `mapstructure:"VERIFICATION_CHECK_WINDOW_SECONDS"`
	Joins                          int `mapstructure:"JOINS"`
	JoinWindowSeconds              int `mapstructure:"JOIN_WINDOW_SECONDS"`
}

// WorkerPoolConfig sizes the outbound message worker pool.
type WorkerPoolConfig struct {
	MaxWorkers             int `mapstructure:"MAX_WORKERS"`
	QueueSize              int `mapstructure:"QUEUE_SIZE"`
	ShutdownTimeoutSeconds int `mapstructure:"SHUTDOWN_TIMEOUT_SECONDS"`
}

// Config is the complete application configuration.
type Config struct {
	Server       ServerConfig       `mapstructure:"SERVER"`
	Database     DatabaseConfig     `mapstructure:"DATABASE"`
	Images       ImageConfig        `mapstructure:"IMAGES"`
	Parser       ParserConfig       `mapstructure:"PARSER"`
	Twilio       TwilioConfig       `mapstructure:"TWILIO"`
	Verification VerificationConfig `mapstructure:"VERIFICATION"`
	Redis        RedisConfig        `mapstructure:"REDIS"`
	RateLimit    RateLimitConfig    `mapstructure:"RATE_LIMIT"`
	WorkerPool   WorkerPoolConfig   `mapstructure:"WORKER_POOL"`
	LogLevel     string             `mapstructure:"LOG_LEVEL"`
}

// IsDevelopment returns true if the application is running in development environment.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}

// IsProduction returns true if the application is running in production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper,
// sets default values, unmarshals the configuration, and validates it.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8080")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SERVER.STATIC_PATH", "")
	v.SetDefault("SERVER.MAX_UPLOAD_BYTES", 10<<20)
	v.SetDefault("DATABASE.DRIVER", "sqlite")
	v.SetDefault("DATABASE.PATH", "./data/tabsplit.db")
	v.SetDefault("DATABASE.URL", "")
	v.SetDefault("DATABASE.MAX_OPEN_CONNS", 5)
	v.SetDefault("IMAGES.BACKEND", "local")
	v.SetDefault("IMAGES.DIR", "./data/images")
	v.SetDefault("IMAGES.BUCKET", "")
	v.SetDefault("IMAGES.REGION", "auto")
	v.SetDefault("IMAGES.ENDPOINT", "")
	v.SetDefault("IMAGES.ACCESS_KEY_ID", "")
	v.SetDefault("IMAGES.SECRET_ACCESS_KEY", "")
	v.SetDefault("PARSER.PROVIDER", "none")
	v.SetDefault("PARSER.API_KEY", "")
	v.SetDefault("PARSER.MODEL", "gpt-4o")
	v.SetDefault("PARSER.BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("PARSER.TIMEOUT_SECONDS", 60)
	v.SetDefault("TWILIO.ACCOUNT_SID", "")
	v.SetDefault("TWILIO.AUTH_TOKEN", "")
	v.SetDefault("TWILIO.FROM_NUMBER", "")
	v.SetDefault("TWILIO.VERIFY_SERVICE_SID", "")
	v.SetDefault("VERIFICATION.PROVIDER", "local")
	v.SetDefault("VERIFICATION.CHALLENGE_SECRET", DevChallengeSecret)
	v.SetDefault("VERIFICATION.CODE_TTL_SECONDS", 600)
	v.SetDefault("REDIS.ADDRESS", "")
	v.SetDefault("REDIS.PASSWORD", "")
	v.SetDefault("REDIS.DB", 0)
	v.SetDefault("RATE_LIMIT.VERIFICATION_STARTS", 5)
	v.SetDefault("RATE_LIMIT.VERIFICATION_WINDOW_SECONDS", 3600)
	v.SetDefault("RATE_LIMIT.VERIFICATION_CHECKS", 10)
	v.SetDefault("RATE_LIMIT.VERIFICATION_CHECK_WINDOW_SECONDS", 900)
	v.SetDefault("RATE_LIMIT.JOINS", 30)
	v.SetDefault("RATE_LIMIT.JOIN_WINDOW_SECONDS", 60)
	v.SetDefault("WORKER_POOL.MAX_WORKERS", 4)
	v.SetDefault("WORKER_POOL.QUEUE_SIZE", 256)
	v.SetDefault("WORKER_POOL.SHUTDOWN_TIMEOUT_SECONDS", 10)
	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBindings := [][2]string{
		// Server config
		{"SERVER.ENVIRONMENT", "SERVER_ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.STATIC_PATH", "STATIC_PATH"},
		{"SERVER.MAX_UPLOAD_BYTES", "MAX_UPLOAD_BYTES"},
		// Database config
		{"DATABASE.DRIVER", "DB_DRIVER"},
		{"DATABASE.PATH", "DB_PATH"},
		{"DATABASE.URL", "DATABASE_URL"},
		{"DATABASE.MAX_OPEN_CONNS", "DB_MAX_OPEN_CONNS"},
		// Image storage
		{"IMAGES.BACKEND", "IMAGES_BACKEND"},
		{"IMAGES.DIR", "IMAGES_DIR"},
		{"IMAGES.BUCKET", "S3_BUCKET"},
		{"IMAGES.REGION", "S3_REGION"},
		{"IMAGES.ENDPOINT", "S3_ENDPOINT"},
		{"IMAGES.ACCESS_KEY_ID", "S3_ACCESS_KEY_ID"},
		{"IMAGES.SECRET_ACCESS_KEY", "S3_SECRET_ACCESS_KEY"},
		// Parsing service
		{"PARSER.PROVIDER", "PARSER_PROVIDER"},
		{"PARSER.API_KEY", "OPENAI_API_KEY"},
		{"PARSER.MODEL", "OPENAI_MODEL"},
		{"PARSER.BASE_URL", "OPENAI_BASE_URL"},
		{"PARSER.TIMEOUT_SECONDS", "PARSER_TIMEOUT_SECONDS"},
		// Twilio
		{"TWILIO.ACCOUNT_SID", "TWILIO_ACCOUNT_SID"},
		{"TWILIO.AUTH_TOKEN", "TWILIO_AUTH_TOKEN"},
		{"TWILIO.FROM_NUMBER", "TWILIO_PHONE_NUMBER"},
		{"TWILIO.VERIFY_SERVICE_SID", "TWILIO_VERIFY_SERVICE_SID"},
		// Verification
		{"VERIFICATION.PROVIDER", "VERIFICATION_PROVIDER"},
		{"VERIFICATION.CHALLENGE_SECRET", "VERIFICATION_CHALLENGE_SECRET"},
		{"VERIFICATION.CODE_TTL_SECONDS", "VERIFICATION_CODE_TTL_SECONDS"},
		// Redis config
		{"REDIS.ADDRESS", "REDIS_ADDRESS"},
		{"REDIS.PASSWORD", "REDIS_PASSWORD"},
		{"REDIS.DB", "REDIS_DB"},
		// Rate limit config
		{"RATE_LIMIT.VERIFICATION_STARTS", "RATE_LIMIT_VERIFICATION_STARTS"},
		{"RATE_LIMIT.VERIFICATION_WINDOW_SECONDS", "RATE_LIMIT_VERIFICATION_WINDOW_SECONDS"},
		{"RATE_LIMIT.VERIFICATION_CHECKS", "RATE_LIMIT_VERIFICATION_CHECKS"},
		{"RATE_LIMIT.VERIFICATION_CHECK_WINDOW_SECONDS", "RATE_LIMIT_VERIFICATION_CHECK_WINDOW_SECONDS"},
		{"RATE_LIMIT.JOINS", "RATE_LIMIT_JOINS"},
		{"RATE_LIMIT.JOIN_WINDOW_SECONDS", "RATE_LIMIT_JOIN_WINDOW_SECONDS"},
		// WorkerPool config
		{"WORKER_POOL.MAX_WORKERS", "WORKER_POOL_MAX_WORKERS"},
		{"WORKER_POOL.QUEUE_SIZE", "WORKER_POOL_QUEUE_SIZE"},
		{"WORKER_POOL.SHUTDOWN_TIMEOUT_SECONDS", "WORKER_POOL_SHUTDOWN_TIMEOUT_SECONDS"},
		{"LOG_LEVEL", "LOG_LEVEL"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	slog.Info("Configuration loaded",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port,
		"db_driver", cfg.Database.Driver,
		"images", cfg.Images.Backend,
		"parser", cfg.Parser.Provider,
		"verification", cfg.Verification.Provider,
		"sms", cfg.Twilio.Enabled(),
		"rate_limiting", cfg.Redis.Address != "",
	)
	return &cfg, nil
}

// validateConfig checks if the loaded configuration values are valid.
func validateConfig(cfg *Config) error {
	// Validate Server Config
	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if cfg.Server.Environment != EnvDevelopment && cfg.Server.Environment != EnvProduction {
		return fmt.Errorf("unknown environment %q", cfg.Server.Environment)
	}
	if !containsWildcard(cfg.Server.AllowedOrigins) {
		for _, origin := range cfg.Server.AllowedOrigins {
			if _, err := url.ParseRequestURI(origin); err != nil {
				return fmt.Errorf("invalid allowed origin '%s': %w", origin, err)
			}
		}
	}
	if cfg.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("max upload bytes must be positive")
	}

	// Validate Database Config
	switch cfg.Database.Driver {
	case "sqlite":
		if cfg.Database.Path == "" {
			return fmt.Errorf("database path is required for sqlite")
		}
	case "postgres":
		if cfg.Database.URL == "" {
			return fmt.Errorf("database URL is required for postgres")
		}
	default:
		return fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}

	// Validate Image storage
	switch cfg.Images.Backend {
	case "local":
		if cfg.Images.Dir == "" {
			return fmt.Errorf("image directory is required for local image storage")
		}
	case "s3":
		if cfg.Images.Bucket == "" {
			return fmt.Errorf("S3 bucket is required for s3 image storage")
		}
	default:
		return fmt.Errorf("unknown image backend %q", cfg.Images.Backend)
	}

	// Validate Parsing service
	switch cfg.Parser.Provider {
	case "none":
	case "openai":
		if cfg.Parser.APIKey == "" {
			return fmt.Errorf("OpenAI API key is required")
		}
		if cfg.Parser.TimeoutSeconds <= 0 {
			return fmt.Errorf("parser timeout must be positive")
		}
	default:
		return fmt.Errorf("unknown parser provider %q", cfg.Parser.Provider)
	}

	// Validate Twilio and Verification
	if cfg.Twilio.Enabled() && cfg.Twilio.FromNumber == "" {
		return fmt.Errorf("twilio phone number is required when twilio is configured")
	}
	switch cfg.Verification.Provider {
	case "twilio":
		if !cfg.Twilio.Enabled() || cfg.Twilio.VerifyServiceSID == "" {
			return fmt.Errorf("twilio credentials and verify service SID are required for twilio verification")
		}
	case "local":
		if len(cfg.Verification.ChallengeSecret) < minSecretLength {
			return fmt.Errorf("verification challenge secret must be at least %d characters long", minSecretLength)
		}
		if cfg.IsProduction() && cfg.Verification.ChallengeSecret == DevChallengeSecret {
			return fmt.Errorf("verification challenge secret must be set in production")
		}
		if cfg.Verification.CodeTTLSeconds <= 0 {
			return fmt.Errorf("verification code TTL must be positive")
		}
	default:
		return fmt.Errorf("unknown verification provider %q", cfg.Verification.Provider)
	}

	// Validate RateLimit config
	if cfg.RateLimit.VerificationStarts <= 0 || cfg.RateLimit.VerificationWindowSeconds <= 0 {
		return fmt.Errorf("verification rate limit must be positive")
	}
	if cfg.RateLimit.VerificationChecks <= 0 || cfg.RateLimit.VerificationCheckWindowSeconds <= 0 {
		return fmt.Errorf("verification check rate limit must be positive")
	}
	if cfg.RateLimit.Joins <= 0 || cfg.RateLimit.JoinWindowSeconds <= 0 {
		return fmt.Errorf("join rate limit must be positive")
	}

	// Validate WorkerPool config
	if cfg.WorkerPool.MaxWorkers <= 0 {
		return fmt.Errorf("worker pool max workers must be positive")
	}
	if cfg.WorkerPool.QueueSize <= 0 {
		return fmt.Errorf("worker pool queue size must be positive")
	}
	if cfg.WorkerPool.ShutdownTimeoutSeconds <= 0 {
		return fmt.Errorf("worker pool shutdown timeout must be positive")
	}

	return nil
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
