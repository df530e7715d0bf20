// Package resilience защищает чтения из бэкенда повторами и размыкателем цепи.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"posterminal/internal/terminal/domain/services"
	"posterminal/pkg/logger"
)

// CircuitState - состояние размыкателя.
type CircuitState int

const (
	StateClosed CircuitState = iota
	StateOpen
	StateHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

const (
	LogCircuitStateChange = "backend circuit state changed"
	LogCircuitReject      = "backend circuit rejected call"
)

// ErrCircuitOpen возвращается без обращения к бэкенду, пока цепь разомкнута.
// Ошибка также сопоставляется с services.ErrNetwork.
var ErrCircuitOpen = errors.New("backend circuit is open")

// CircuitBreakerConfig - настройки размыкателя.
type CircuitBreakerConfig struct {
	// ErrorThreshold - сколько отказов подряд размыкают цепь.
	ErrorThreshold int
	// Timeout - сколько цепь остается разомкнутой до пробного вызова.
	Timeout time.Duration
	// SuccessThreshold - сколько удачных проб замыкают цепь.
	SuccessThreshold int
	// IsFailure отделяет отказы бэкенда от отказов по существу запроса.
	IsFailure func(error) bool
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		ErrorThreshold:   5,
		Timeout:          10 * time.Second,
		SuccessThreshold: 2,
		IsFailure:        IsTransient,
	}
}

// CircuitBreaker пропускает в полуоткрытом состоянии только одну пробу
// за раз, остальные вызовы отклоняются до ее результата.
type CircuitBreaker struct {
	name   string
	config CircuitBreakerConfig
	now    func() time.Time

	mu        sync.Mutex
	state     CircuitState
	openedAt  time.Time
	failures  int
	successes int
	probing   bool
}

func NewCircuitBreaker(name string, config CircuitBreakerConfig) *CircuitBreaker {
	if config.IsFailure == nil {
		config.IsFailure = IsTransient
	}
	if config.ErrorThreshold < 1 {
		config.ErrorThreshold = 1
	}
	if config.SuccessThreshold < 1 {
		config.SuccessThreshold = 1
	}
	return &CircuitBreaker{name: name, config: config, now: time.Now}
}

// Execute вызывает fn, если цепь позволяет, и учитывает результат.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	probe, ok := cb.admit(ctx)
	if !ok {
		return fmt.Errorf("%w: %w", ErrCircuitOpen, services.ErrNetwork)
	}

	err := fn()
	cb.record(ctx, probe, err)
	return err
}

func (cb *CircuitBreaker) admit(ctx context.Context) (probe bool, ok bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen && cb.now().Sub(cb.openedAt) >= cb.config.Timeout {
		cb.transition(ctx, StateHalfOpen)
	}

	switch cb.state {
	case StateClosed:
		return false, true
	case StateHalfOpen:
		if cb.probing {
			break
		}
		cb.probing = true
		return true, true
	}

	logger.Log(ctx).Debug(ctx, LogCircuitReject,
		zap.String("circuit", cb.name),
		zap.Stringer("state", cb.state))
	return false, false
}

// record считает ошибки, не относящиеся к отказу бэкенда, успехом.
func (cb *CircuitBreaker) record(ctx context.Context, probe bool, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if probe {
		cb.probing = false
	}
	failed := err != nil && cb.config.IsFailure(err)

	switch cb.state {
	case StateClosed:
		if !failed {
			cb.failures = 0
			return
		}
		cb.failures++
		if cb.failures >= cb.config.ErrorThreshold {
			cb.transition(ctx, StateOpen)
		}
	case StateHalfOpen:
		if failed {
			cb.transition(ctx, StateOpen)
			return
		}
		cb.successes++
		if cb.successes >= cb.config.SuccessThreshold {
			cb.transition(ctx, StateClosed)
		}
	}
}

// transition вызывается под мьютексом.
func (cb *CircuitBreaker) transition(ctx context.Context, to CircuitState) {
	if cb.state == to {
		return
	}
	logger.Log(ctx).Info(ctx, LogCircuitStateChange,
		zap.String("circuit", cb.name),
		zap.Stringer("from", cb.state),
		zap.Stringer("to", to),
		zap.Int("failures", cb.failures))

	cb.state = to
	cb.failures = 0
	cb.successes = 0
	cb.probing = false
	if to == StateOpen {
		cb.openedAt = cb.now()
	}
}

// GetState возвращает текущее состояние цепи.
func (cb *CircuitBreaker) GetState() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}
