package services

import (
	"context"
	"github.com/pkg/errors"
	"github.com/quantumstack/site/internal/logger"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"time"
)

type ApplicationCleanupRepository interface {
	RemoveOlderThan(ctx context.Context, expirationTime time.Time) (int64, error)
}

// ApplicationsCleaner removes stored job applications past the retention period on a cron schedule.
type ApplicationsCleaner struct {
	applications ApplicationCleanupRepository
	cron         *cron.Cron
	retention    time.Duration
	now          func() time.Time
}

func NewApplicationsCleaner(applications ApplicationCleanupRepository, retention time.Duration, schedule string) (*ApplicationsCleaner, error) {

	if retention <= 0 {
		return nil, errors.New("retention must be greater than zero")
	}

	ac := &ApplicationsCleaner{
		applications: applications,
		cron:         cron.New(),
		retention:    retention,
		now:          time.Now,
	}

	if _, err := ac.cron.AddFunc(schedule, ac.cleanOldApplications); err != nil {
		return nil, errors.Wrapf(err, "invalid cleanup schedule %q", schedule)
	}

	ac.cron.Start()
	log.WithFields(log.Fields{"retention": retention, "schedule": schedule}).Info("applications cleaner started")
	return ac, nil
}

func (ac *ApplicationsCleaner) Stop() {
	<-ac.cron.Stop().Done()
}

func (ac *ApplicationsCleaner) cleanOldApplications() {
	expirationTime := ac.now().Add(-ac.retention)
	rowsAffected, err := ac.applications.RemoveOlderThan(context.Background(), expirationTime)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("Failed to clean old applications: %v", err)
	} else {
		log.Infof("Old applications were cleaned, affected rows: %v", rowsAffected)
	}
}
