package ui

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"posterminal/internal/terminal/domain/entities"
	ports "posterminal/internal/terminal/ports/services"
	"posterminal/pkg/logger"
)

// DefaultToastDuration - время показа уведомления по умолчанию.
const DefaultToastDuration = 4 * time.Second

// LogToastShown - сообщение журнала о показе уведомления.
const LogToastShown = "toast shown"

// Toaster показывает одно уведомление за раз и скрывает его по таймеру.
type Toaster struct {
	mu       sync.Mutex
	duration time.Duration
	current  *entities.Toast
	timer    *time.Timer
	now      func() time.Time
}

var _ ports.Notifier = (*Toaster)(nil)

// NewToaster создает Toaster. Неположительная длительность заменяется
// значением по умолчанию.
func NewToaster(duration time.Duration) *Toaster {
	if duration <= 0 {
		duration = DefaultToastDuration
	}
	return &Toaster{duration: duration, now: time.Now}
}

// Show заменяет текущее уведомление и заново запускает таймер скрытия.
func (t *Toaster) Show(ctx context.Context, toast entities.Toast) {
	logger.Log(ctx).Debug(ctx, LogToastShown,
		zap.String("type", string(toast.Type)),
		zap.String("message", toast.Message))

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
	}

	toast.ExpiresAt = t.now().Add(t.duration)
	shown := &toast
	t.current = shown

	t.timer = time.AfterFunc(t.duration, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.current == shown {
			t.current = nil
			t.timer = nil
		}
	})
}

// Current возвращает видимое уведомление.
func (t *Toaster) Current() (entities.Toast, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == nil {
		return entities.Toast{}, false
	}
	return *t.current, true
}

func (t *Toaster) Dismiss() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.current = nil
}

// Info, Success, Warning и Error - короткие формы Show.
func (t *Toaster) Info(ctx context.Context, message string) {
	t.Show(ctx, entities.Toast{Type: entities.ToastInfo, Message: message})
}

func (t *Toaster) Success(ctx context.Context, message string) {
	t.Show(ctx, entities.Toast{Type: entities.ToastSuccess, Message: message})
}

func (t *Toaster) Warning(ctx context.Context, message string) {
	t.Show(ctx, entities.Toast{Type: entities.ToastWarning, Message: message})
}

func (t *Toaster) Error(ctx context.Context, message string) {
	t.Show(ctx, entities.Toast{Type: entities.ToastError, Message: message})
}
