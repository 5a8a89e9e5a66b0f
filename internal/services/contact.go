package services

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/quantumstack/site/internal/entities"
	"github.com/quantumstack/site/internal/events"
	"github.com/quantumstack/site/internal/logger"
	"github.com/quantumstack/site/internal/metrics"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
	"strings"
)

var ErrRateLimited = errors.New("too many contact submissions")

type contactSender interface {
	SubmitContact(ctx context.Context, submission entities.ContactSubmission) error
}

type ContactService struct {
	sender   contactSender
	validate *validator.Validate
	inFlight singleflight.Group
	limiter  *clientLimiter
	bus      EventBus.Bus
}

// NewContactService limits each client to ratePerMinute submissions; zero disables the limit.
func NewContactService(sender contactSender, bus EventBus.Bus, ratePerMinute float64) *ContactService {
	return &ContactService{
		sender:   sender,
		validate: newValidator(),
		limiter:  newClientLimiter(ratePerMinute),
		bus:      bus,
	}
}

// Validate trims the submission in place and returns nil when it may be sent.
func (s *ContactService) Validate(submission *entities.ContactSubmission) *ValidationError {
	submission.Name = strings.TrimSpace(submission.Name)
	submission.Email = strings.TrimSpace(submission.Email)
	submission.Message = strings.TrimSpace(submission.Message)

	return validateForm(s.validate, submission)
}

// Submit validates and posts the submission once. Identical submissions arriving
// while one is in flight share its result.
func (s *ContactService) Submit(ctx context.Context, client string, submission entities.ContactSubmission) error {

	if verr := s.Validate(&submission); verr != nil {
		metrics.ContactSubmissionsCounter.WithLabelValues("invalid").Inc()
		return verr
	}

	if !s.limiter.Allow(client) {
		metrics.ContactSubmissionsCounter.WithLabelValues("limited").Inc()
		log.Warnf("contact submission from %s rejected by rate limit", client)
		return ErrRateLimited
	}

	key := submission.Name + "\x00" + strings.ToLower(submission.Email) + "\x00" + submission.Message
	// joined callers must not lose the POST when the caller that started it goes away
	detached := context.WithoutCancel(ctx)
	result := s.inFlight.DoChan(key, func() (any, error) {
		return nil, s.sender.SubmitContact(detached, submission)
	})

	var err error
	select {
	case res := <-result:
		err = res.Err
		if res.Shared {
			log.Debugf("contact submission from %s joined an in-flight request", client)
		}
	case <-ctx.Done():
		log.Debugf("contact submission from %s abandoned: %v", client, ctx.Err())
		return ctx.Err()
	}

	if err != nil {
		metrics.ContactSubmissionsCounter.WithLabelValues("failed").Inc()
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeBackendApi).
			Errorf("failed to submit contact form: %v", err)
		return err
	}

	metrics.ContactSubmissionsCounter.WithLabelValues("sent").Inc()
	if s.bus != nil {
		s.bus.Publish(events.ContactSubmittedTopic, events.ContactSubmitted{Name: submission.Name, Email: submission.Email})
	}
	return nil
}
