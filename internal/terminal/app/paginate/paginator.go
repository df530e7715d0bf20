// Package paginate реализует постраничную загрузку списков бэкенда
// с поиском, фильтрами и догрузкой следующих страниц.
package paginate

import (
	"context"
	"maps"
	"sync"

	"posterminal/internal/terminal/domain/entities"
	"posterminal/internal/terminal/ports/services"
)

// DefaultLimit - размер страницы по умолчанию.
const DefaultLimit = 10

// FetchFunc загружает одну страницу.
type FetchFunc[T any] func(ctx context.Context, q entities.PageQuery) (*entities.Page[T], error)

// Paginator накапливает элементы списка страница за страницей.
// Смена поиска или фильтра сбрасывает накопленное и загружает первую страницу.
// Результат загрузки, начатой до сброса, отбрасывается.
type Paginator[T any] struct {
	fetch FetchFunc[T]
	limit int

	mu         sync.Mutex
	offset     int
	search     string
	filters    map[string]string
	items      []T
	total      int
	loading    bool
	err        error
	generation int
}

// New создает Paginator. Неположительный limit заменяется DefaultLimit.
func New[T any](fetch FetchFunc[T], limit int) *Paginator[T] {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Paginator[T]{
		fetch:   fetch,
		limit:   limit,
		filters: make(map[string]string),
		items:   []T{},
	}
}

// Load сбрасывает список и загружает первую страницу.
func (p *Paginator[T]) Load(ctx context.Context) error {
	p.mu.Lock()
	q := p.resetLocked()
	gen := p.generation
	p.mu.Unlock()

	return p.run(ctx, q, gen, false)
}

// Reload повторяет загрузку с текущими поиском и фильтрами.
func (p *Paginator[T]) Reload(ctx context.Context) error {
	return p.Load(ctx)
}

// NextPage догружает следующую страницу. Ничего не делает, если загрузка
// уже идет или все элементы получены.
func (p *Paginator[T]) NextPage(ctx context.Context) error {
	p.mu.Lock()
	if p.loading || !p.hasMoreLocked() {
		p.mu.Unlock()
		return nil
	}
	p.offset += p.limit
	p.loading = true
	p.err = nil
	q := p.queryLocked()
	gen := p.generation
	p.mu.Unlock()

	return p.run(ctx, q, gen, true)
}

// SetSearch задает строку поиска и загружает первую страницу.
func (p *Paginator[T]) SetSearch(ctx context.Context, search string) error {
	p.mu.Lock()
	p.search = search
	p.mu.Unlock()
	return p.Load(ctx)
}

// SetFilter задает фильтр запроса и загружает первую страницу.
// Пустое значение снимает фильтр.
func (p *Paginator[T]) SetFilter(ctx context.Context, key, value string) error {
	p.mu.Lock()
	if value == "" {
		delete(p.filters, key)
	} else {
		p.filters[key] = value
	}
	p.mu.Unlock()
	return p.Load(ctx)
}

// HasMore сообщает, что на бэкенде есть еще элементы.
func (p *Paginator[T]) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasMoreLocked()
}

// Items возвращает копию накопленных элементов.
func (p *Paginator[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]T{}, p.items...)
}

// Total возвращает общее число элементов по данным бэкенда.
func (p *Paginator[T]) Total() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}

// Loading сообщает, что идет загрузка.
func (p *Paginator[T]) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// Err возвращает ошибку последней загрузки.
func (p *Paginator[T]) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// View возвращает состояние списка для отображения.
func (p *Paginator[T]) View() services.PageView[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return services.PageView[T]{
		Items:   append([]T{}, p.items...),
		Total:   p.total,
		HasMore: p.hasMoreLocked(),
		Loading: p.loading,
	}
}

func (p *Paginator[T]) run(ctx context.Context, q entities.PageQuery, gen int, appendPage bool) error {
	page, err := p.fetch(ctx, q)

	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.generation {
		return err
	}
	p.loading = false

	if err != nil {
		p.err = err
		if appendPage {
			p.offset -= p.limit
		}
		return err
	}

	if appendPage {
		p.items = append(p.items, page.Items...)
	} else {
		p.items = append([]T{}, page.Items...)
	}
	p.total = page.Total
	return nil
}

func (p *Paginator[T]) resetLocked() entities.PageQuery {
	p.generation++
	p.offset = 0
	p.items = []T{}
	p.total = 0
	p.err = nil
	p.loading = true
	return p.queryLocked()
}

func (p *Paginator[T]) queryLocked() entities.PageQuery {
	return entities.PageQuery{
		Offset:  p.offset,
		Limit:   p.limit,
		Search:  p.search,
		Filters: maps.Clone(p.filters),
	}
}

func (p *Paginator[T]) hasMoreLocked() bool {
	return len(p.items) < p.total
}
