// Package config loads the process configuration once at startup.
// The resulting Config is immutable and handed to constructors explicitly;
// nothing else in the codebase reads the environment after Load returns.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"
)

// Config holds every externally sourced setting the server needs.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	SMTP      SMTPConfig
	Reset     ResetConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host          string
	Port          string
	User          string
	Password      string
	Name          string
	SSLMode       string
	RunMigrations bool
}

// DSN builds the Postgres connection string for gorm.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type JWTConfig struct {
	Secret string
	// Expiry is the session token lifetime. Defaults to one year.
	Expiry time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

type ResetConfig struct {
	// BaseURL is the frontend origin the password reset link points at,
	// e.g. http://localhost:3000.
	BaseURL string
}

type RedisConfig struct {
	Addr     string
	Password string
}

type RateLimitConfig struct {
	// Limit is the number of requests allowed per Window and client IP
	// on the login and forgot-password routes.
	Limit  int
	Window time.Duration
}

// Load reads .env (if present) and the environment into a Config.
// Missing JWT_SECRET is an error; everything else has a workable default.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("RUN_MIGRATIONS", false)
	viper.SetDefault("JWT_EXPIRY", "8760h") // 1 year
	viper.SetDefault("RESET_BASE_URL", "http://localhost:3000")
	viper.SetDefault("SMTP_FROM", "no-reply@example.com")
	viper.SetDefault("RATE_LIMIT", 10)
	viper.SetDefault("RATE_LIMIT_WINDOW", "1m")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			// A missing .env is fine, a broken one is not.
			slog.Warn("could not read .env, falling back to environment", "error", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetString("PORT"),
		},
		Database: DatabaseConfig{
			Host:          viper.GetString("DB_HOST"),
			Port:          viper.GetString("DB_PORT"),
			User:          viper.GetString("DB_USER"),
			Password:      viper.GetString("DB_PASSWORD"),
			Name:          viper.GetString("DB_NAME"),
			SSLMode:       viper.GetString("DB_SSLMODE"),
			RunMigrations: viper.GetBool("RUN_MIGRATIONS"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
			Expiry: viper.GetDuration("JWT_EXPIRY"),
		},
		SMTP: SMTPConfig{
			Host:     viper.GetString("EMAIL_HOST"),
			Port:     viper.GetString("EMAIL_PORT"),
			User:     viper.GetString("EMAIL_USER"),
			Password: viper.GetString("EMAIL_PASS"),
			From:     viper.GetString("SMTP_FROM"),
		},
		Reset: ResetConfig{
			BaseURL: viper.GetString("RESET_BASE_URL"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
		},
		RateLimit: RateLimitConfig{
			Limit:  viper.GetInt("RATE_LIMIT"),
			Window: viper.GetDuration("RATE_LIMIT_WINDOW"),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}

	return cfg, nil
}
