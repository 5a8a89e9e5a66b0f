package config

import (
	"errors"
	"fmt"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"time"
)

const defaultCleanupSchedule = "0 0 * * *"

// DBConfig describes the local SQLite inbox that stores job applications.
type DBConfig struct {
	ConnectionString string `mapstructure:"connection_string"`
	RetentionDays    int    `mapstructure:"retention_days"`
	CleanupSchedule  string `mapstructure:"cleanup_schedule"`
}

func (config DBConfig) Retention() time.Duration {
	return time.Duration(config.RetentionDays) * 24 * time.Hour
}

func (config DBConfig) Schedule() string {
	if config.CleanupSchedule == "" {
		return defaultCleanupSchedule
	}
	return config.CleanupSchedule
}

func (config DBConfig) validate() error {
	var errs []error

	if config.ConnectionString == "" {
		errs = append(errs, fmt.Errorf("missing variable: db connection string"))
	}
	if config.RetentionDays <= 0 {
		errs = append(errs, fmt.Errorf("retention_days must be greater than zero"))
	}
	if _, err := cron.ParseStandard(config.Schedule()); err != nil {
		errs = append(errs, fmt.Errorf("invalid cleanup_schedule: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config DBConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"db.connection_string": "DB_CONNECTION_STRING",
		"db.retention_days":    "DB_RETENTION_DAYS",
		"db.cleanup_schedule":  "DB_CLEANUP_SCHEDULE",
	})
}
