package config

import (
	"errors"
	"fmt"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"net/url"
	"time"
)

type BackendConfig struct {
	URL                  string        `mapstructure:"url"`
	Timeout              time.Duration `mapstructure:"timeout"`
	MaxRequestsPerSecond float32       `mapstructure:"max_requests_per_second"`
	JobsTTL              time.Duration `mapstructure:"jobs_ttl"`
	StaffTTL             time.Duration `mapstructure:"staff_ttl"`
	PortfolioTTL         time.Duration `mapstructure:"portfolio_ttl"`
	WarmSchedule         string        `mapstructure:"warm_schedule"`
}

func (config BackendConfig) validate() error {
	var errs []error

	if config.URL == "" {
		errs = append(errs, fmt.Errorf("missing variable: url"))
	} else if u, err := url.ParseRequestURI(config.URL); err != nil || u.Host == "" {
		errs = append(errs, fmt.Errorf("invalid url: %q", config.URL))
	}

	if config.JobsTTL <= 0 || config.StaffTTL <= 0 || config.PortfolioTTL <= 0 {
		errs = append(errs, fmt.Errorf("jobs_ttl, staff_ttl and portfolio_ttl must be positive"))
	}

	if config.WarmSchedule != "" {
		if _, err := cron.ParseStandard(config.WarmSchedule); err != nil {
			errs = append(errs, fmt.Errorf("invalid warm_schedule: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config BackendConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"backend.url":                     "BACKEND_URL",
		"backend.timeout":                 "BACKEND_TIMEOUT",
		"backend.max_requests_per_second": "BACKEND_MAX_REQUESTS_PER_SECOND",
		"backend.jobs_ttl":                "JOBS_TTL",
		"backend.staff_ttl":               "STAFF_TTL",
		"backend.portfolio_ttl":           "PORTFOLIO_TTL",
		"backend.warm_schedule":           "BACKEND_WARM_SCHEDULE",
	})
}
