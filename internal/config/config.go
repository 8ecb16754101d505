package config

import (
	"fmt"

	"github.com/go-playground/validator"
	"github.com/spf13/viper"

	"kalvihub/pkg/utils"
)

var Validate *validator.Validate

type Config struct {
	ServerPort     int    `mapstructure:"SERVER_PORT"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	AdminAPIKey    string `mapstructure:"ADMIN_API_KEY"`
	MailgunAPIKey  string `mapstructure:"MAILGUN_API_KEY"`
	MailgunDomain  string `mapstructure:"MAILGUN_DOMAIN"`
	MailgunAPIBase string `mapstructure:"MAILGUN_API_BASE"`
	MailFrom       string `mapstructure:"MAIL_FROM"`
	SeedDemoUser   bool   `mapstructure:"SEED_DEMO_USER"`
}

func Load() (*Config, error) {
	viper.SetDefault("SERVER_PORT", 3_000)
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("ADMIN_API_KEY", utils.GenerateRandomString(32))
	viper.SetDefault("MAIL_FROM", "Kalvihub <no-reply@kalvihub.in>")
	viper.SetDefault("SEED_DEMO_USER", false)

	viper.SetEnvPrefix("KH")
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/kalvihub/")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Validate = validator.New()

	return &cfg, nil
}

// Mail reports whether Mailgun delivery is configured.
func (cfg *Config) Mail() bool {
	return cfg.MailgunDomain != "" && cfg.MailgunAPIKey != ""
}
