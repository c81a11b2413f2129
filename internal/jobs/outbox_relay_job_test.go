package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRelayHandler struct {
	mock.Mock
}

func (m *MockRelayHandler) Handle(ctx context.Context, cmd commands.RelayOrderEventsCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOutboxRelayJob_RunOnce(t *testing.T) {
	batchOf := func(size int) any {
		return mock.MatchedBy(func(cmd commands.RelayOrderEventsCommand) bool { return cmd.BatchSize() == size })
	}

	t.Run("drains full batches", func(t *testing.T) {
		handler := new(MockRelayHandler)
		mock.InOrder(
			handler.On("Handle", mock.Anything, batchOf(10)).Return(10, nil).Once(),
			handler.On("Handle", mock.Anything, batchOf(10)).Return(10, nil).Once(),
			handler.On("Handle", mock.Anything, batchOf(10)).Return(3, nil).Once(),
		)

		published := NewOutboxRelayJob(handler, 10, "", discardLogger()).RunOnce(t.Context())

		assert.Equal(t, 23, published)
		handler.AssertExpectations(t)
	})

	t.Run("stops at the first failure", func(t *testing.T) {
		handler := new(MockRelayHandler)
		mock.InOrder(
			handler.On("Handle", mock.Anything, mock.Anything).Return(10, nil).Once(),
			handler.On("Handle", mock.Anything, mock.Anything).Return(0, errors.New("broker down")).Once(),
		)

		published := NewOutboxRelayJob(handler, 10, "", discardLogger()).RunOnce(t.Context())

		assert.Equal(t, 10, published)
		handler.AssertExpectations(t)
	})

	t.Run("empty outbox", func(t *testing.T) {
		handler := new(MockRelayHandler)
		handler.On("Handle", mock.Anything, mock.Anything).Return(0, nil).Once()

		assert.Zero(t, NewOutboxRelayJob(handler, 0, "", discardLogger()).RunOnce(t.Context()))
		handler.AssertExpectations(t)
	})
}

func TestOutboxRelayJob_StartRejectsBadSchedule(t *testing.T) {
	job := NewOutboxRelayJob(new(MockRelayHandler), 10, "not a schedule", discardLogger())

	require.Error(t, job.Start())
}

func TestJobManager_StartStop(t *testing.T) {
	handler := new(MockRelayHandler)
	handler.On("Handle", mock.Anything, mock.Anything).Return(0, nil).Maybe()

	jm := NewJobManager(handler, 10, "@every 1h", discardLogger())

	require.NoError(t, jm.StartAll())
	jm.StopAll()
}
