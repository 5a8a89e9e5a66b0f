package services

import (
	"context"
	"fmt"
	"github.com/asaskevich/EventBus"
	"github.com/go-playground/validator/v10"
	"github.com/quantumstack/site/internal/entities"
	"github.com/quantumstack/site/internal/events"
	"github.com/quantumstack/site/internal/logger"
	"github.com/quantumstack/site/internal/metrics"
	log "github.com/sirupsen/logrus"
	"strings"
)

type applicationStore interface {
	Add(ctx context.Context, application *entities.JobApplication) error
}

// ApplicationService accepts applications sent from the inline job card form.
type ApplicationService struct {
	store    applicationStore
	validate *validator.Validate
	bus      EventBus.Bus
}

func NewApplicationService(store applicationStore, bus EventBus.Bus) *ApplicationService {
	return &ApplicationService{store: store, validate: newValidator(), bus: bus}
}

func (s *ApplicationService) Validate(application *entities.JobApplication) *ValidationError {
	application.FullName = strings.TrimSpace(application.FullName)
	application.Email = strings.TrimSpace(application.Email)
	application.Phone = strings.TrimSpace(application.Phone)
	application.LinkedIn = strings.TrimSpace(application.LinkedIn)
	application.PortfolioURL = strings.TrimSpace(application.PortfolioURL)
	application.CoverLetter = strings.TrimSpace(application.CoverLetter)

	return validateForm(s.validate, application)
}

// Apply stores the application for the given opening and announces it on the bus.
func (s *ApplicationService) Apply(ctx context.Context, job entities.JobOpening, application *entities.JobApplication) error {

	if verr := s.Validate(application); verr != nil {
		return verr
	}

	application.JobID = job.ID
	application.JobTitle = job.Title

	if err := s.store.Add(ctx, application); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to store application: %v", err)
		return fmt.Errorf("couldn't store application: %w", err)
	}

	metrics.ApplicationsCounter.Inc()
	log.Infof("application %s received for job %s", application.ID, job.ID)

	if s.bus != nil {
		s.bus.Publish(events.ApplicationReceivedTopic, events.ApplicationReceived{Application: *application})
	}
	return nil
}
