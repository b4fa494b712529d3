package cloudapi

import (
	"strings"
	"time"
)

const (
	DefaultBaseURL    = "https://graph.facebook.com"
	DefaultAPIVersion = "v18.0"
	DefaultTimeout    = 10 * time.Second
)

type Config struct {
	BaseURL       string        `mapstructure:"base_url" validate:"required,url"`
	APIVersion    string        `mapstructure:"api_version" validate:"required"`
	PhoneNumberID string        `mapstructure:"phone_number_id" validate:"required"`
	APIToken      string        `mapstructure:"api_token" validate:"required"`
	Timeout       time.Duration `mapstructure:"timeout" validate:"gt=0"`
	MaxAttempts   int           `mapstructure:"max_attempts" validate:"gte=1,lte=5"`
}

// MessagesURL is the send endpoint for the configured phone number.
func (c Config) MessagesURL() string {
	return strings.TrimRight(c.BaseURL, "/") + "/" + c.APIVersion + "/" + c.PhoneNumberID + "/messages"
}
