package services

import (
	"context"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"sync"
	"time"
)

type healthChecker interface {
	Health(ctx context.Context) error
}

// BackendWarmer pings the backend health endpoint so a sleeping host is awake
// before the first visitor needs it. Failures are only logged.
type BackendWarmer struct {
	backend healthChecker
	cron    *cron.Cron
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewBackendWarmer(backend healthChecker, schedule string, timeout time.Duration) (*BackendWarmer, error) {

	w := &BackendWarmer{backend: backend, cron: cron.New(), timeout: timeout}

	if _, err := w.cron.AddFunc(schedule, w.ping); err != nil {
		return nil, err
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.ping()
	}()

	w.cron.Start()
	log.Infof("backend warmer started, schedule: %s", schedule)
	return w, nil
}

func (w *BackendWarmer) Stop() {
	<-w.cron.Stop().Done()
	w.wg.Wait()
}

func (w *BackendWarmer) ping() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	if err := w.backend.Health(ctx); err != nil {
		log.Debugf("backend warm-up ping failed: %v", err)
		return
	}
	log.Debug("backend warm-up ping succeeded")
}
