package ui

import (
	"github.com/pkg/errors"
	"sync"
	"time"
)

const (
	DefaultApplyDelay = 1500 * time.Millisecond
	ResetDelay        = 3 * time.Second
)

var (
	ErrSubmissionInFlight = errors.New("submission already in progress")
	ErrAlreadySubmitted   = errors.New("application already submitted")
	ErrFormNotOpen        = errors.New("application form is not open")
)

type JobCardState struct {
	Expanded   bool
	ShowForm   bool
	Submitting bool
	Submitted  bool
}

// JobCard holds the expand/apply state of one job listing. Cards never share state.
type JobCard struct {
	mu          sync.Mutex
	state       JobCardState
	submitDelay time.Duration
	resetDelay  time.Duration
	timers      []*time.Timer
	closed      bool
}

type JobCardOption func(*JobCard)

func WithSubmitDelay(d time.Duration) JobCardOption {
	return func(c *JobCard) { c.submitDelay = d }
}

func WithResetDelay(d time.Duration) JobCardOption {
	return func(c *JobCard) { c.resetDelay = d }
}

func NewJobCard(opts ...JobCardOption) *JobCard {
	c := &JobCard{submitDelay: DefaultApplyDelay, resetDelay: ResetDelay}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *JobCard) State() JobCardState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *JobCard) Toggle() {
	c.mu.Lock()
	c.state.Expanded = !c.state.Expanded
	c.mu.Unlock()
}

// OpenForm shows the application form. It has no effect on a collapsed card.
func (c *JobCard) OpenForm() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.Expanded {
		return false
	}
	c.state.ShowForm = true
	return true
}

func (c *JobCard) CloseForm() {
	c.mu.Lock()
	c.state.ShowForm = false
	c.mu.Unlock()
}

// Submit starts the fixed submission delay. The returned channel is closed once
// the card reaches the submitted state; the form hides itself resetDelay later.
// The success panel replaces the form, so a submitted card rejects another Submit
// until it resets.
func (c *JobCard) Submit() (<-chan struct{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.state.Submitting:
		return nil, ErrSubmissionInFlight
	case c.state.Submitted:
		return nil, ErrAlreadySubmitted
	case !c.state.Expanded || !c.state.ShowForm || c.closed:
		return nil, ErrFormNotOpen
	}

	c.state.Submitting = true
	done := make(chan struct{})

	c.timers = append(c.timers, time.AfterFunc(c.submitDelay, func() {
		c.mu.Lock()
		c.state.Submitting = false
		c.state.Submitted = true
		if !c.closed {
			c.timers = append(c.timers, time.AfterFunc(c.resetDelay, c.reset))
		}
		c.mu.Unlock()
		close(done)
	}))

	return done, nil
}

func (c *JobCard) reset() {
	c.mu.Lock()
	c.state.ShowForm = false
	c.state.Submitted = false
	c.mu.Unlock()
}

// Close stops pending timers and keeps a submission already past its delay
// from scheduling the reset. The state stays as it was.
func (c *JobCard) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
}

func (c *JobCard) closeLocked() {
	c.closed = true
	for _, t := range c.timers {
		t.Stop()
	}
	c.timers = nil
}
