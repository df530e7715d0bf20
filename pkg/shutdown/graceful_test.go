package shutdown_test

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posterminal/pkg/shutdown"
)

func TestRunExecutesHooksInOrder(t *testing.T) {
	var order []string

	err := shutdown.Run(context.Background(), time.Second,
		func(context.Context) error { order = append(order, "http"); return nil },
		shutdown.Named("redis", func(context.Context) error {
			order = append(order, "redis")
			return errors.New("close failed")
		}),
		func(context.Context) error { order = append(order, "flush"); return nil },
	)

	assert.Equal(t, []string{"http", "redis", "flush"}, order)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis: close failed")
}

func TestRunRespectsTimeout(t *testing.T) {
	var laterCalled atomic.Bool
	start := time.Now()

	err := shutdown.Run(context.Background(), 100*time.Millisecond,
		func(context.Context) error {
			time.Sleep(2 * time.Second)
			return nil
		},
		func(context.Context) error { laterCalled.Store(true); return nil },
	)

	assert.Less(t, time.Since(start), time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, laterCalled.Load(), "steps after the deadline are skipped")
}

func TestWaitReturnsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hookCalled := make(chan struct{})

	done := make(chan struct{})
	go func() {
		err := shutdown.Wait(ctx, time.Second, func(context.Context) error {
			close(hookCalled)
			return nil
		})
		assert.NoError(t, err)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return after context cancel")
	}

	select {
	case <-hookCalled:
	default:
		t.Error("hook was not called")
	}
}

func TestWaitHandlesSignal(t *testing.T) {
	hookCalled := make(chan struct{})

	go shutdown.Wait(context.Background(), time.Second, func(context.Context) error {
		close(hookCalled)
		return nil
	})

	time.Sleep(100 * time.Millisecond)

	process, err := os.FindProcess(os.Getpid())
	if err != nil {
		t.Fatalf("Failed to find process: %v", err)
	}
	if err := process.Signal(syscall.SIGTERM); err != nil {
		t.Fatalf("Failed to send signal: %v", err)
	}

	select {
	case <-hookCalled:
	case <-time.After(2 * time.Second):
		t.Error("hook was not called")
	}
}
