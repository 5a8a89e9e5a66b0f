package services

import (
	"context"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"testing"
	"time"
)

type mockHealthChecker struct {
	mock.Mock
}

func (m *mockHealthChecker) Health(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func Test_BackendWarmer_PingsOnStart(t *testing.T) {

	backend := &mockHealthChecker{}
	backend.On("Health", mock.Anything).Return(errors.New("sleeping"))

	warmer, err := NewBackendWarmer(backend, "@every 1h", time.Second)
	assert.NoError(t, err)
	warmer.Stop()

	backend.AssertNumberOfCalls(t, "Health", 1)
}

func Test_BackendWarmer_InvalidSchedule(t *testing.T) {
	_, err := NewBackendWarmer(&mockHealthChecker{}, "every ten minutes", time.Second)
	assert.Error(t, err)
}
