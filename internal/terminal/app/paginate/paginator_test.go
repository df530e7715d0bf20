package paginate_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posterminal/internal/terminal/app/paginate"
	"posterminal/internal/terminal/domain/entities"
)

// source отдает срез чисел 0..total-1 постранично и запоминает запросы.
type source struct {
	mu      sync.Mutex
	total   int
	queries []entities.PageQuery
	err     error
}

func (s *source) fetch(_ context.Context, q entities.PageQuery) (*entities.Page[int], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, q)
	if s.err != nil {
		return nil, s.err
	}

	items := []int{}
	for i := q.Offset; i < q.Offset+q.Limit && i < s.total; i++ {
		items = append(items, i)
	}
	return &entities.Page[int]{Items: items, Limit: q.Limit, Offset: q.Offset, Total: s.total}, nil
}

func TestPaginator_LoadAndAppend(t *testing.T) {
	ctx := context.Background()
	src := &source{total: 25}
	p := paginate.New(src.fetch, 10)

	require.NoError(t, p.Load(ctx))
	assert.Equal(t, 10, len(p.Items()))
	assert.Equal(t, 25, p.Total())
	assert.True(t, p.HasMore())

	require.NoError(t, p.NextPage(ctx))
	require.NoError(t, p.NextPage(ctx))
	assert.Equal(t, 25, len(p.Items()))
	assert.False(t, p.HasMore())

	require.NoError(t, p.NextPage(ctx))
	assert.Len(t, src.queries, 3, "no request once everything is loaded")

	items := p.Items()
	for i, v := range items {
		assert.Equal(t, i, v)
	}
}

func TestPaginator_SearchAndFilterReset(t *testing.T) {
	ctx := context.Background()
	src := &source{total: 30}
	p := paginate.New(src.fetch, 10)

	require.NoError(t, p.Load(ctx))
	require.NoError(t, p.NextPage(ctx))
	require.Len(t, p.Items(), 20)

	require.NoError(t, p.SetSearch(ctx, "cola"))
	assert.Len(t, p.Items(), 10, "search replaces accumulated items")
	last := src.queries[len(src.queries)-1]
	assert.Equal(t, 0, last.Offset)
	assert.Equal(t, "cola", last.Search)

	require.NoError(t, p.SetFilter(ctx, "productId", "p7"))
	last = src.queries[len(src.queries)-1]
	assert.Equal(t, map[string]string{"productId": "p7"}, last.Filters)
	assert.Equal(t, "cola", last.Search)

	require.NoError(t, p.SetFilter(ctx, "productId", ""))
	last = src.queries[len(src.queries)-1]
	assert.Empty(t, last.Filters)
}

func TestPaginator_ErrorKeepsOffset(t *testing.T) {
	ctx := context.Background()
	src := &source{total: 30}
	p := paginate.New(src.fetch, 10)
	require.NoError(t, p.Load(ctx))

	boom := errors.New("boom")
	src.err = boom
	assert.ErrorIs(t, p.NextPage(ctx), boom)
	assert.ErrorIs(t, p.Err(), boom)
	assert.False(t, p.Loading())

	src.err = nil
	require.NoError(t, p.NextPage(ctx))
	assert.Equal(t, 10, src.queries[len(src.queries)-1].Offset, "failed page is requested again")
	assert.Len(t, p.Items(), 20)
	assert.NoError(t, p.Err())
}

func TestPaginator_StalePageDiscardedAfterReset(t *testing.T) {
	ctx := context.Background()
	release := make(chan struct{})
	started := make(chan struct{})
	calls := 0

	p := paginate.New(func(_ context.Context, q entities.PageQuery) (*entities.Page[string], error) {
		calls++
		if calls == 2 {
			close(started)
			<-release
			return &entities.Page[string]{Items: []string{"stale"}, Total: 100}, nil
		}
		return &entities.Page[string]{Items: []string{q.Search}, Total: 100}, nil
	}, 1)

	require.NoError(t, p.Load(ctx))

	done := make(chan error, 1)
	go func() { done <- p.NextPage(ctx) }()
	<-started

	require.NoError(t, p.SetSearch(ctx, "fresh"))
	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, []string{"fresh"}, p.Items())
}

func TestPaginator_View(t *testing.T) {
	src := &source{total: 3}
	p := paginate.New(src.fetch, 0)
	require.NoError(t, p.Load(context.Background()))

	view := p.View()
	assert.Equal(t, []int{0, 1, 2}, view.Items)
	assert.Equal(t, 3, view.Total)
	assert.False(t, view.HasMore)
	assert.False(t, view.Loading)
	assert.Equal(t, paginate.DefaultLimit, src.queries[0].Limit)
}
