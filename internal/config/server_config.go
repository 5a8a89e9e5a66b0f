package config

import (
	"errors"
	"fmt"
	"github.com/spf13/viper"
	"net/url"
	"time"
)

type ServerConfig struct {
	Address              string        `mapstructure:"address"`
	BaseURL              string        `mapstructure:"base_url"`
	Mode                 string        `mapstructure:"mode"`
	AllowedOrigins       []string      `mapstructure:"allowed_origins"`
	ApplyDelay           time.Duration `mapstructure:"apply_delay"`
	ContactRatePerMinute float64       `mapstructure:"contact_rate_per_minute"`
}

func (config ServerConfig) validate() error {
	var errs []error

	if config.Address == "" {
		errs = append(errs, fmt.Errorf("missing variable: address"))
	}
	if config.BaseURL != "" {
		if _, err := url.ParseRequestURI(config.BaseURL); err != nil {
			errs = append(errs, fmt.Errorf("invalid base_url: %w", err))
		}
	}
	if config.ApplyDelay < 0 {
		errs = append(errs, fmt.Errorf("apply_delay must not be negative"))
	}
	if config.ContactRatePerMinute < 0 {
		errs = append(errs, fmt.Errorf("contact_rate_per_minute must not be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config ServerConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"server.address":                 "ADDRESS",
		"server.base_url":                "BASE_URL",
		"server.mode":                    "GIN_MODE",
		"server.allowed_origins":         "ALLOWED_ORIGINS",
		"server.apply_delay":             "APPLY_DELAY",
		"server.contact_rate_per_minute": "CONTACT_RATE_PER_MINUTE",
	})
}
