package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	AppPort            int           `mapstructure:"APP_PORT" validate:"min=1,max=65535"`
	APIBaseURL         string        `mapstructure:"API_BASE_URL" validate:"required,url"`
	APITimeout         time.Duration `mapstructure:"API_TIMEOUT" validate:"min=0"`
	LogLevel           string        `mapstructure:"LOG_LEVEL" validate:"oneof=DEBUG INFO WARN ERROR debug info warn error"`
	UserName           string        `mapstructure:"USER_NAME" validate:"required"`
	SessionTTL         time.Duration `mapstructure:"SESSION_TTL" validate:"gt=0"`
	MaxUploadBytes     int64         `mapstructure:"MAX_UPLOAD_BYTES" validate:"gt=0"`
	CORSAllowedOrigins []string      `mapstructure:"CORS_ALLOWED_ORIGINS"`
	Timezone           string        `mapstructure:"TIMEZONE" validate:"required"`
	DateLayout         string        `mapstructure:"DATE_LAYOUT" validate:"required"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 8080)
	viper.SetDefault("API_BASE_URL", "http://127.0.0.1:8000")
	viper.SetDefault("API_TIMEOUT", "0s")
	viper.SetDefault("LOG_LEVEL", "INFO")
	viper.SetDefault("USER_NAME", "Sergey Belkin")
	viper.SetDefault("SESSION_TTL", "60m")
	viper.SetDefault("MAX_UPLOAD_BYTES", 32<<20)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("TIMEZONE", "Local")
	viper.SetDefault("DATE_LAYOUT", "02.01.2006")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the struct tags above.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// Location resolves Timezone, falling back to the local zone when it is unknown.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
