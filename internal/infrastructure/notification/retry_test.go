package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// flakySender fails a fixed number of times before succeeding
type flakySender struct {
	mu       sync.Mutex
	failures int
	calls    int
}

func (s *flakySender) Send(_ context.Context, _ []string, _, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.calls <= s.failures {
		return errors.New("smtp unavailable")
	}
	return nil
}

func (s *flakySender) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestRetryingSender_SucceedsFirstAttempt(t *testing.T) {
	inner := &flakySender{}
	sender := NewRetryingSender(inner, 3, time.Millisecond, zap.NewNop())

	err := sender.Send(context.Background(), []string{"a@b.co"}, "subject", "body")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.callCount())
}

func TestRetryingSender_RetriesUntilSuccess(t *testing.T) {
	inner := &flakySender{failures: 2}
	sender := NewRetryingSender(inner, 3, time.Millisecond, zap.NewNop())

	err := sender.Send(context.Background(), []string{"a@b.co"}, "subject", "body")
	require.NoError(t, err)
	assert.Equal(t, 3, inner.callCount())
}

func TestRetryingSender_ExhaustsAttempts(t *testing.T) {
	inner := &flakySender{failures: 10}
	sender := NewRetryingSender(inner, 3, time.Millisecond, zap.NewNop())

	err := sender.Send(context.Background(), []string{"a@b.co"}, "subject", "body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Equal(t, 3, inner.callCount())
}

func TestRetryingSender_AbortsOnContextCancellation(t *testing.T) {
	inner := &flakySender{failures: 10}
	sender := NewRetryingSender(inner, 3, time.Second, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := sender.Send(ctx, []string{"a@b.co"}, "subject", "body")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, inner.callCount())
}
