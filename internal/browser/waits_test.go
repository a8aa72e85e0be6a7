// File: internal/browser/waits_test.go
package browser

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/nghalot5-hub/crm.vtiger/internal/config"
)

// newTestSession builds a session with no live browser attached, enough for
// the pure polling logic.
func newTestSession(t *testing.T) *Session {
	t.Helper()
	return &Session{
		cfg:    config.New(),
		logger: zap.NewNop(),
	}
}

func TestWaitForAlreadyTrueReturnsImmediately(t *testing.T) {
	s := newTestSession(t)

	start := time.Now()
	err := s.waitFor(context.Background(), "already true", WaitOptions{
		Timeout:      2 * time.Second,
		PollInterval: 500 * time.Millisecond,
	}, func(ctx context.Context) (bool, error) {
		return true, nil
	})

	require.NoError(t, err)
	// A condition that holds on the first check must not wait out a poll cycle.
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestWaitForTimesOutWithSentinel(t *testing.T) {
	s := newTestSession(t)

	timeout := 80 * time.Millisecond
	start := time.Now()
	err := s.waitFor(context.Background(), "never true", WaitOptions{
		Timeout:      timeout,
		PollInterval: 10 * time.Millisecond,
	}, func(ctx context.Context) (bool, error) {
		return false, nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWaitTimeout)
	assert.Contains(t, err.Error(), "never true")

	elapsed := time.Since(start)
	assert.GreaterOrEqual(t, elapsed, timeout)
	assert.Less(t, elapsed, timeout+100*time.Millisecond)
}

func TestWaitForConditionBecomesTrue(t *testing.T) {
	s := newTestSession(t)

	var calls atomic.Int64
	err := s.waitFor(context.Background(), "true on third poll", WaitOptions{
		Timeout:      2 * time.Second,
		PollInterval: 10 * time.Millisecond,
	}, func(ctx context.Context) (bool, error) {
		return calls.Add(1) >= 3, nil
	})

	require.NoError(t, err)
	assert.Equal(t, int64(3), calls.Load())
}

func TestWaitForTransientErrorsIgnoredUntilDeadline(t *testing.T) {
	s := newTestSession(t)

	var calls atomic.Int64
	err := s.waitFor(context.Background(), "errors then true", WaitOptions{
		Timeout:      2 * time.Second,
		PollInterval: 10 * time.Millisecond,
	}, func(ctx context.Context) (bool, error) {
		if calls.Add(1) < 3 {
			return false, errors.New("element not found yet")
		}
		return true, nil
	})

	require.NoError(t, err)
}

func TestWaitForPersistentErrorSurfacesTimeout(t *testing.T) {
	s := newTestSession(t)

	err := s.waitFor(context.Background(), "always failing", WaitOptions{
		Timeout:      60 * time.Millisecond,
		PollInterval: 10 * time.Millisecond,
	}, func(ctx context.Context) (bool, error) {
		return false, errors.New("page mid-navigation")
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWaitTimeout)
}

func TestWaitForContextCancellation(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := newTestSession(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- s.waitFor(ctx, "canceled externally", WaitOptions{
			Timeout:      10 * time.Second,
			PollInterval: 20 * time.Millisecond,
		}, func(ctx context.Context) (bool, error) {
			return false, nil
		})
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("waitFor did not return after context cancellation")
	}
}

func TestNormalizeWaitFillsDefaults(t *testing.T) {
	s := newTestSession(t)

	got := s.normalizeWait(WaitOptions{})
	assert.Equal(t, s.cfg.Wait.DefaultTimeout, got.Timeout)
	assert.Equal(t, s.cfg.Wait.PollInterval, got.PollInterval)
}

func TestNormalizeWaitKeepsExplicitValues(t *testing.T) {
	s := newTestSession(t)

	opts := WaitOptions{Timeout: 3 * time.Second, PollInterval: 50 * time.Millisecond}
	got := s.normalizeWait(opts)
	assert.Equal(t, opts, got)
}
