package resilience_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posterminal/internal/terminal/domain/services"
	"posterminal/internal/terminal/resilience"
)

func fastRetry() resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.InitialBackoff = time.Millisecond
	cfg.MaxBackoff = 2 * time.Millisecond
	cfg.Jitter = 0
	return cfg
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"network", fmt.Errorf("%w: dial", services.ErrNetwork), true},
		{"server 503", &services.APIError{Status: http.StatusServiceUnavailable}, true},
		{"client 404", &services.APIError{Status: http.StatusNotFound}, false},
		{"client 401", &services.APIError{Status: http.StatusUnauthorized}, false},
		{"no refresh token", services.ErrNoRefreshToken, false},
		{"canceled", fmt.Errorf("%w: %w", services.ErrNetwork, context.Canceled), false},
		{"unknown", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resilience.IsTransient(tt.err))
		})
	}
}

func TestRetry_RetriesTransientOnly(t *testing.T) {
	ctx := context.Background()
	r := resilience.NewRetry("test", fastRetry())

	calls := 0
	err := r.Execute(ctx, func() error {
		calls++
		if calls < 3 {
			return services.ErrNetwork
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	calls = 0
	err = r.Execute(ctx, func() error {
		calls++
		return &services.APIError{Status: http.StatusBadRequest}
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls, "4xx must never be retried")
}

func TestRetry_GivesUpAfterMaxAttempts(t *testing.T) {
	r := resilience.NewRetry("test", fastRetry())

	calls := 0
	err := r.Execute(context.Background(), func() error {
		calls++
		return services.ErrNetwork
	})

	assert.ErrorIs(t, err, services.ErrNetwork)
	assert.Equal(t, 3, calls)
}

func TestRetry_ContextCanceledDuringBackoff(t *testing.T) {
	cfg := fastRetry()
	cfg.InitialBackoff = time.Hour
	r := resilience.NewRetry("test", cfg)

	ctx, cancel := context.WithCancel(context.Background())
	err := r.Execute(ctx, func() error {
		cancel()
		return services.ErrNetwork
	})

	assert.ErrorIs(t, err, resilience.ErrContextCanceled)
}

func TestCircuitBreaker_TripsAndRecovers(t *testing.T) {
	ctx := context.Background()
	cb := resilience.NewCircuitBreaker("test", resilience.CircuitBreakerConfig{
		ErrorThreshold:   2,
		Timeout:          20 * time.Millisecond,
		SuccessThreshold: 1,
	})

	fail := func() error { return services.ErrNetwork }
	ok := func() error { return nil }

	assert.Error(t, cb.Execute(ctx, fail))
	assert.Error(t, cb.Execute(ctx, fail))
	assert.Equal(t, resilience.StateOpen, cb.GetState())
	err := cb.Execute(ctx, ok)
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.ErrorIs(t, err, services.ErrNetwork, "open circuit reads as a network failure")

	time.Sleep(30 * time.Millisecond)
	require.NoError(t, cb.Execute(ctx, ok))
	assert.Equal(t, resilience.StateClosed, cb.GetState())
}

func TestCircuitBreaker_ClientErrorsDoNotTrip(t *testing.T) {
	ctx := context.Background()
	cb := resilience.NewCircuitBreaker("test", resilience.CircuitBreakerConfig{
		ErrorThreshold:   1,
		Timeout:          time.Minute,
		SuccessThreshold: 1,
	})

	err := cb.Execute(ctx, func() error { return &services.APIError{Status: http.StatusNotFound} })

	assert.Error(t, err)
	assert.Equal(t, resilience.StateClosed, cb.GetState())
}

func TestDo(t *testing.T) {
	r := resilience.NewServiceResilienceWithConfig("test", resilience.DefaultCircuitBreakerConfig(), fastRetry())

	calls := 0
	got, err := resilience.Do(context.Background(), r, "get", func() (int, error) {
		calls++
		if calls == 1 {
			return 0, services.ErrNetwork
		}
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, resilience.StateClosed, r.State())
}

func TestCircuitBreaker_SingleProbeWhenHalfOpen(t *testing.T) {
	ctx := context.Background()
	cb := resilience.NewCircuitBreaker("test", resilience.CircuitBreakerConfig{
		ErrorThreshold:   1,
		Timeout:          10 * time.Millisecond,
		SuccessThreshold: 1,
	})
	require.Error(t, cb.Execute(ctx, func() error { return services.ErrServer }))
	time.Sleep(20 * time.Millisecond)

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- cb.Execute(ctx, func() error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	assert.Equal(t, resilience.StateHalfOpen, cb.GetState())
	assert.ErrorIs(t, cb.Execute(ctx, func() error { return nil }), resilience.ErrCircuitOpen)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, resilience.StateClosed, cb.GetState())
}

func TestCircuitBreaker_FailedProbeReopens(t *testing.T) {
	ctx := context.Background()
	cb := resilience.NewCircuitBreaker("test", resilience.CircuitBreakerConfig{
		ErrorThreshold:   1,
		Timeout:          10 * time.Millisecond,
		SuccessThreshold: 1,
	})
	require.Error(t, cb.Execute(ctx, func() error { return services.ErrNetwork }))
	time.Sleep(20 * time.Millisecond)

	require.Error(t, cb.Execute(ctx, func() error { return services.ErrNetwork }))
	assert.Equal(t, resilience.StateOpen, cb.GetState())
}
