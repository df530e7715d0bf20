// Package shutdown останавливает агент по SIGINT или SIGTERM.
package shutdown

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"posterminal/pkg/logger"
)

const (
	LogSignalReceived = "shutdown signal received"
	LogHookFailed     = "shutdown step failed"
	LogStepSkipped    = "shutdown deadline reached, step skipped"
)

// Hook - шаг остановки.
type Hook func(context.Context) error

// Named добавляет к ошибкам шага его имя.
func Named(name string, hook Hook) Hook {
	return func(ctx context.Context) error {
		if err := hook(ctx); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	}
}

// Wait ждет сигнала или отмены ctx и выполняет шаги через Run.
func Wait(ctx context.Context, timeout time.Duration, hooks ...Hook) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		logger.Log(ctx).Info(ctx, LogSignalReceived, zap.Stringer("signal", sig))
	case <-ctx.Done():
	}

	return Run(context.WithoutCancel(ctx), timeout, hooks...)
}

// Run выполняет шаги по порядку под общим дедлайном. Сначала
// останавливается то, что принимает запросы, затем хранилища, от которых
// оно зависит. Ошибка шага не отменяет следующие, после дедлайна
// оставшиеся шаги пропускаются.
func Run(ctx context.Context, timeout time.Duration, hooks ...Hook) error {
	log := logger.Log(ctx)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var errs []error
	for i, hook := range hooks {
		if ctx.Err() != nil {
			log.Warn(ctx, LogStepSkipped, zap.Int("step", i), zap.Duration("timeout", timeout))
			errs = append(errs, ctx.Err())
			break
		}
		if err := runStep(ctx, hook); err != nil {
			log.Warn(ctx, LogHookFailed, zap.Int("step", i), zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// runStep не дает зависшему шагу пережить дедлайн.
func runStep(ctx context.Context, hook Hook) error {
	done := make(chan error, 1)
	go func() { done <- hook(ctx) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
