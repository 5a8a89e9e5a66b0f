package ui

import (
	"github.com/quantumstack/site/internal/entities"
	"sync"
	"time"
)

type ContactStatus string

const (
	ContactIdle    ContactStatus = "idle"
	ContactLoading ContactStatus = "loading"
	ContactSuccess ContactStatus = "success"
	ContactError   ContactStatus = "error"
)

const GenericErrorMessage = "Something went wrong. Please try again."

type ContactFormView struct {
	Status      ContactStatus
	Fields      entities.ContactSubmission
	FieldErrors map[string]string
	Error       string
}

// ContactForm walks idle -> loading -> success | error. Success falls back to idle
// after the reset delay or on Reset.
type ContactForm struct {
	mu          sync.Mutex
	status      ContactStatus
	fields      entities.ContactSubmission
	fieldErrors map[string]string
	err         string
	resetDelay  time.Duration
	timer       *time.Timer
}

func NewContactForm(resetDelay time.Duration) *ContactForm {
	return &ContactForm{status: ContactIdle, resetDelay: resetDelay}
}

func (f *ContactForm) View() ContactFormView {
	f.mu.Lock()
	defer f.mu.Unlock()
	errs := make(map[string]string, len(f.fieldErrors))
	for k, v := range f.fieldErrors {
		errs[k] = v
	}
	return ContactFormView{Status: f.status, Fields: f.fields, FieldErrors: errs, Error: f.err}
}

func (f *ContactForm) Status() ContactStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Reject keeps the form idle with the typed fields and their validation messages.
func (f *ContactForm) Reject(fields entities.ContactSubmission, fieldErrors map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status == ContactLoading {
		return ErrSubmissionInFlight
	}
	f.stopTimer()
	f.status = ContactIdle
	f.fields = fields
	f.fieldErrors = fieldErrors
	f.err = ""
	return nil
}

// Begin moves the form to loading. Retrying from error passes through idle.
func (f *ContactForm) Begin(fields entities.ContactSubmission) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.status == ContactLoading {
		return ErrSubmissionInFlight
	}
	if f.status != ContactIdle {
		f.toIdle()
	}
	f.status = ContactLoading
	f.fields = fields
	f.fieldErrors = nil
	return nil
}

func (f *ContactForm) Succeed() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status != ContactLoading {
		return
	}
	f.status = ContactSuccess
	f.fields = entities.ContactSubmission{}
	f.timer = time.AfterFunc(f.resetDelay, f.Reset)
}

func (f *ContactForm) Fail() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status != ContactLoading {
		return
	}
	f.status = ContactError
	f.err = GenericErrorMessage
}

// Reset is the "send another message" action.
func (f *ContactForm) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status == ContactLoading {
		return
	}
	f.stopTimer()
	f.toIdle()
}

func (f *ContactForm) Close() {
	f.mu.Lock()
	f.stopTimer()
	f.mu.Unlock()
}

func (f *ContactForm) toIdle() {
	f.status = ContactIdle
	f.err = ""
	f.fieldErrors = nil
}

func (f *ContactForm) stopTimer() {
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}
