package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bright0ne/A.M-Yusuf-Official/pkg/cloudapi"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultVerifyToken is accepted when VERIFY_TOKEN is unset. It is public and must
// not be relied on outside local development.
const DefaultVerifyToken = "my_verify_token"

type Config struct {
	API      API             `mapstructure:"api"`
	WhatsApp cloudapi.Config `mapstructure:"whatsapp"`
	Webhook  Webhook         `mapstructure:"webhook"`
	Log      Log             `mapstructure:"log"`
}

type API struct {
	Port string `mapstructure:"port" validate:"required,numeric"`
}

func (a API) Address() string {
	return ":" + a.Port
}

type Webhook struct {
	VerifyToken string `mapstructure:"verify_token" validate:"required"`
	AppSecret   string `mapstructure:"app_secret"`
}

func (w Webhook) UsesDefaultVerifyToken() bool {
	return w.VerifyToken == DefaultVerifyToken
}

type Log struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

var envBindings = map[string]string{
	"api.port":                 "PORT",
	"whatsapp.api_token":       "API_TOKEN",
	"whatsapp.phone_number_id": "PHONE_NUMBER_ID",
	"whatsapp.api_version":     "API_VERSION",
	"whatsapp.base_url":        "API_BASE_URL",
	"whatsapp.timeout":         "SEND_TIMEOUT",
	"whatsapp.max_attempts":    "SEND_MAX_ATTEMPTS",
	"webhook.verify_token":     "VERIFY_TOKEN",
	"webhook.app_secret":       "APP_SECRET",
	"log.level":                "LOG_LEVEL",
}

func Load() (*Config, error) {
	// a missing .env is normal outside development
	_ = godotenv.Load()

	return load(viper.New())
}

func load(v *viper.Viper) (cfg *Config, err error) {
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath("./config")

	setDefaults(v)

	for key, env := range envBindings {
		if err = v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if err = v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.Log.Level = strings.ToLower(cfg.Log.Level)

	if err = validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", "5000")
	v.SetDefault("whatsapp.base_url", cloudapi.DefaultBaseURL)
	v.SetDefault("whatsapp.api_version", cloudapi.DefaultAPIVersion)
	v.SetDefault("whatsapp.timeout", cloudapi.DefaultTimeout)
	v.SetDefault("whatsapp.max_attempts", 1)
	v.SetDefault("whatsapp.api_token", "")
	v.SetDefault("whatsapp.phone_number_id", "")
	v.SetDefault("webhook.verify_token", DefaultVerifyToken)
	v.SetDefault("webhook.app_secret", "")
	v.SetDefault("log.level", "info")
}
