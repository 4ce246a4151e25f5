package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App          AppConfig          `envPrefix:"APP_"`
	Server       ServerConfig       `envPrefix:"SERVER_"`
	Log          LogConfig          `envPrefix:"LOG_"`
	Database     DatabaseConfig     `envPrefix:"DATABASE_"`
	JWT          JWTConfig          `envPrefix:"JWT_"`
	Auth         AuthConfig         `envPrefix:"AUTH_"`
	CORS         CORSConfig         `envPrefix:"CORS_"`
	RateLimit    RateLimitConfig    `envPrefix:"RATE_LIMIT_"`
	Pickup       PickupConfig       `envPrefix:"PICKUP_"`
	Distribution DistributionConfig `envPrefix:"DISTRIBUTION_"`
	Mail         MailConfig         `envPrefix:"MAIL_"`
}

type AppConfig struct {
	Name    string `env:"NAME" envDefault:"FeedChain Backend"`
	Version string `env:"VERSION" envDefault:"1.0.0"`
}

type ServerConfig struct {
	Port            string        `env:"PORT" envDefault:"8000"`
	Host            string        `env:"HOST" envDefault:"0.0.0.0"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"json"`
	Output string `env:"OUTPUT" envDefault:"stdout"`
}

type DatabaseConfig struct {
	Driver          string        `env:"DRIVER" envDefault:"postgres"`
	DSN             string        `env:"DSN" envDefault:""`
	AutoMigrate     bool          `env:"AUTO_MIGRATE" envDefault:"true"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"30m"`
}

type JWTConfig struct {
	SecretKey    string        `env:"SECRET_KEY"`
	AccessExpiry time.Duration `env:"ACCESS_EXPIRY" envDefault:"168h"`
	Issuer       string        `env:"ISSUER" envDefault:"feedchain"`
	Algorithm    string        `env:"ALGORITHM" envDefault:"HS256"`
}

type AuthConfig struct {
	BcryptCost        int    `env:"BCRYPT_COST" envDefault:"10"`
	PasswordMinLength int    `env:"PASSWORD_MIN_LENGTH" envDefault:"6"`
	PasswordMaxLength int    `env:"PASSWORD_MAX_LENGTH" envDefault:"100"`
	DemoLoginEnabled  bool   `env:"DEMO_LOGIN_ENABLED" envDefault:"true"`
	DemoEmailDomain   string `env:"DEMO_EMAIL_DOMAIN" envDefault:"feedchain.local"`
}

type CORSConfig struct {
	AllowOriginPattern string   `env:"ALLOW_ORIGIN_PATTERN" envDefault:"^http://(localhost|127\\.0\\.0\\.1)(:\\d+)?$"`
	AllowMethods       []string `env:"ALLOW_METHODS" envDefault:"GET,POST,PUT,PATCH,DELETE,OPTIONS" envSeparator:","`
	// Empty reflects the preflight's Access-Control-Request-Headers.
	AllowHeaders       []string `env:"ALLOW_HEADERS" envSeparator:","`
	AllowCredentials   bool     `env:"ALLOW_CREDENTIALS" envDefault:"true"`
}

type RateLimitConfig struct {
	Enabled bool          `env:"ENABLED" envDefault:"true"`
	Rate    int           `env:"RATE" envDefault:"20"`
	Period  time.Duration `env:"PERIOD" envDefault:"1m"`
}

type PickupConfig struct {
	OTPDigits int `env:"OTP_DIGITS" envDefault:"6"`
}

type DistributionConfig struct {
	MaxPeopleServed int `env:"MAX_PEOPLE_SERVED" envDefault:"100000"`
}

type MailConfig struct {
	Enabled     bool   `env:"ENABLED" envDefault:"false"`
	Host        string `env:"HOST" envDefault:"localhost"`
	Port        int    `env:"PORT" envDefault:"587"`
	Username    string `env:"USERNAME"`
	Password    string `env:"PASSWORD"`
	Encryption  string `env:"ENCRYPTION" envDefault:"starttls"`
	FromAddress string `env:"FROM_ADDRESS"`
	FromName    string `env:"FROM_NAME" envDefault:"FeedChain"`
}

var supportedDrivers = []string{"postgres", "postgresql", "mysql", "sqlite"}

// LoadConfig reads .env (when present) and the process environment into cfg.
// A *Config is validated after parsing; other structs are only parsed.
func LoadConfig(cfg any) error {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}

	if c, ok := cfg.(*Config); ok {
		return c.Validate()
	}
	return nil
}

func (c *Config) Validate() error {
	if err := validateJWTConfig(&c.JWT); err != nil {
		return err
	}
	if err := validateDatabaseConfig(&c.Database); err != nil {
		return err
	}
	if c.Pickup.OTPDigits != 6 && c.Pickup.OTPDigits != 8 {
		return fmt.Errorf("pickup OTP digits must be 6 or 8, got %d", c.Pickup.OTPDigits)
	}
	if c.Distribution.MaxPeopleServed < 1 {
		return errors.New("distribution max people served must be positive")
	}
	if c.Auth.PasswordMinLength < 1 || c.Auth.PasswordMaxLength < c.Auth.PasswordMinLength {
		return errors.New("auth password length bounds are invalid")
	}
	if c.Mail.Enabled && c.Mail.FromAddress == "" {
		return errors.New("MAIL_FROM_ADDRESS is required when mail is enabled")
	}
	return nil
}

func validateJWTConfig(cfg *JWTConfig) error {
	if cfg.SecretKey == "" {
		return errors.New("JWT_SECRET_KEY is required")
	}
	if len(cfg.SecretKey) < 32 {
		return errors.New("JWT secret key must be at least 32 characters long")
	}
	if cfg.Algorithm != "HS256" {
		return fmt.Errorf("unsupported JWT algorithm %q (supported: HS256)", cfg.Algorithm)
	}
	if cfg.AccessExpiry <= 0 {
		return errors.New("JWT access expiry must be positive")
	}
	return nil
}

func validateDatabaseConfig(cfg *DatabaseConfig) error {
	driver := strings.ToLower(cfg.Driver)
	supported := false
	for _, d := range supportedDrivers {
		if d == driver {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported database driver: %s (supported: %s)", cfg.Driver, strings.Join(supportedDrivers, ", "))
	}
	if cfg.DSN == "" {
		return errors.New("DATABASE_DSN is required")
	}
	return nil
}
