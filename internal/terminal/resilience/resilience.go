package resilience

import (
	"context"
)

// ServiceResilience объединяет размыкатель и повторы для чтений одного
// сервиса. Повторы идут внутри цепи, поэтому серия попыток считается
// одним отказом.
type ServiceResilience struct {
	breaker *CircuitBreaker
	retry   *Retry
}

func NewServiceResilience(serviceName string) *ServiceResilience {
	return NewServiceResilienceWithConfig(serviceName, DefaultCircuitBreakerConfig(), DefaultRetryConfig())
}

func NewServiceResilienceWithConfig(serviceName string, cb CircuitBreakerConfig, retry RetryConfig) *ServiceResilience {
	return &ServiceResilience{
		breaker: NewCircuitBreaker(serviceName, cb),
		retry:   NewRetry(serviceName, retry),
	}
}

// Execute выполняет operation. Имя операции попадает в логи повторов.
func (r *ServiceResilience) Execute(ctx context.Context, operationName string, operation func() error) error {
	named := &Retry{name: r.retry.name + "." + operationName, config: r.retry.config}
	return r.breaker.Execute(ctx, func() error {
		return named.Execute(ctx, operation)
	})
}

func (r *ServiceResilience) State() CircuitState {
	return r.breaker.GetState()
}

// Do - Execute для операций с результатом.
func Do[T any](ctx context.Context, r *ServiceResilience, operationName string, operation func() (T, error)) (T, error) {
	var result T
	err := r.Execute(ctx, operationName, func() error {
		var err error
		result, err = operation()
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
