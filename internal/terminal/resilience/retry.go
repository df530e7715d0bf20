package resilience

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"posterminal/internal/terminal/domain/services"
	"posterminal/pkg/logger"
)

// RetryConfig - настройки повторов с экспоненциальной задержкой.
type RetryConfig struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	BackoffFactor  float64
	// Jitter - доля задержки, на которую она случайно уменьшается, от 0 до 1.
	Jitter      float64
	ShouldRetry func(error) bool
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     time.Second,
		BackoffFactor:  2,
		Jitter:         0.2,
		ShouldRetry:    IsTransient,
	}
}

// ErrContextCanceled означает, что ожидание следующей попытки прервано.
var ErrContextCanceled = errors.New("retry wait interrupted")

// IsTransient сообщает, что чтение стоит повторить: сбой сети или 5xx.
// Отказы 4xx, проблемы сессии и отмена контекста окончательны.
func IsTransient(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.Is(err, services.ErrUnauthenticated), errors.Is(err, services.ErrNoRefreshToken):
		return false
	case services.IsClientError(err):
		return false
	}
	return errors.Is(err, services.ErrNetwork) || errors.Is(err, services.ErrServer)
}

const (
	LogRetryAttempt   = "backend call failed, retrying"
	LogRetryExhausted = "backend call failed after all attempts"
)

// Retry повторяет операцию, пока ошибка признается временной.
type Retry struct {
	name   string
	config RetryConfig
}

func NewRetry(name string, config RetryConfig) *Retry {
	if config.ShouldRetry == nil {
		config.ShouldRetry = IsTransient
	}
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}
	if config.BackoffFactor < 1 {
		config.BackoffFactor = 1
	}
	config.Jitter = min(max(config.Jitter, 0), 1)
	return &Retry{name: name, config: config}
}

// Execute возвращает ошибку последней попытки.
func (r *Retry) Execute(ctx context.Context, operation func() error) error {
	for attempt := 1; ; attempt++ {
		err := operation()
		if err == nil || !r.config.ShouldRetry(err) {
			return err
		}

		log := logger.Log(ctx).With(zap.String("retry", r.name), zap.Int("attempt", attempt))
		if attempt >= r.config.MaxAttempts {
			log.Warn(ctx, LogRetryExhausted, zap.Error(err))
			return err
		}

		wait := r.backoff(attempt)
		log.Info(ctx, LogRetryAttempt, zap.Duration("backoff", wait), zap.Error(err))

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%w: %w", ErrContextCanceled, ctx.Err())
		}
	}
}

// backoff - задержка перед попыткой attempt+1.
func (r *Retry) backoff(attempt int) time.Duration {
	wait := float64(r.config.InitialBackoff)
	for range attempt - 1 {
		wait *= r.config.BackoffFactor
	}
	if r.config.MaxBackoff > 0 {
		wait = min(wait, float64(r.config.MaxBackoff))
	}
	if r.config.Jitter > 0 {
		wait -= wait * r.config.Jitter * rand.Float64()
	}
	return time.Duration(wait)
}
