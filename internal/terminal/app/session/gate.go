package session

import (
	"context"
	"sync"
	"time"

	"posterminal/internal/terminal/domain/entities"
)

// RefreshFunc выполняет одно обновление токенов.
type RefreshFunc func(ctx context.Context) (*entities.TokenPair, error)

type refreshResult struct {
	pair *entities.TokenPair
	err  error
}

// RefreshGate допускает не более одного обновления токенов одновременно.
// Все вызывающие, пришедшие во время обновления, получают его результат
// в порядке прихода.
type RefreshGate struct {
	mu         sync.Mutex
	inProgress bool
	waiters    []chan refreshResult
	timeout    time.Duration
	calls      int
}

// NewRefreshGate создает шлюз. timeout ограничивает одно обновление.
func NewRefreshGate(timeout time.Duration) *RefreshGate {
	return &RefreshGate{timeout: timeout}
}

// InProgress сообщает, выполняется ли обновление.
func (g *RefreshGate) InProgress() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inProgress
}

// Waiting возвращает число вызывающих, ожидающих текущее обновление.
func (g *RefreshGate) Waiting() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.waiters)
}

// Calls возвращает число запущенных обновлений.
func (g *RefreshGate) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// Do присоединяет вызывающего к текущему обновлению или запускает новое.
// Обновление выполняется отдельно от ctx вызывающего: отмена ctx освобождает
// только самого вызывающего, остальные ожидающие получат результат.
func (g *RefreshGate) Do(ctx context.Context, fn RefreshFunc) (*entities.TokenPair, error) {
	wait := make(chan refreshResult, 1)

	g.mu.Lock()
	g.waiters = append(g.waiters, wait)
	if !g.inProgress {
		g.inProgress = true
		g.calls++
		go g.run(context.WithoutCancel(ctx), fn)
	}
	g.mu.Unlock()

	select {
	case res := <-wait:
		return res.pair, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (g *RefreshGate) run(ctx context.Context, fn RefreshFunc) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	pair, err := fn(ctx)

	g.mu.Lock()
	waiters := g.waiters
	g.waiters = nil
	g.inProgress = false
	g.mu.Unlock()

	res := refreshResult{pair: pair, err: err}
	for _, w := range waiters {
		w <- res
	}
}
