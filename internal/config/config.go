// Package config loads service configuration from file and environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config is the full service configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	Book   BookConfig   `mapstructure:"book"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"min=0"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

// BookConfig configures the instrument book and the order validator.
type BookConfig struct {
	Symbol string `mapstructure:"symbol" validate:"required"`
	// MinAmount is the strict lower bound on order amount magnitude,
	// kept as a string so it round-trips exactly into decimal.
	MinAmount string `mapstructure:"min_amount" validate:"required"`
}

// MinAmountDecimal parses the configured minimum amount.
func (b BookConfig) MinAmountDecimal() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(b.MinAmount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid book.min_amount %q: %w", b.MinAmount, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("book.min_amount must not be negative, got %s", b.MinAmount)
	}
	return d, nil
}

// Load reads configuration from matchbook.yaml (working directory or
// /etc/matchbook) and MATCHBOOK_* environment variables, applying defaults
// for everything not set.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("matchbook")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/matchbook")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("book.symbol", "BTC-USD")
	v.SetDefault("book.min_amount", "100")

	v.SetEnvPrefix("MATCHBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine, defaults and env cover everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	if _, err := cfg.Book.MinAmountDecimal(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
