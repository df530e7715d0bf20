package cart_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posterminal/internal/terminal/app/cart"
	"posterminal/internal/terminal/domain/entities"
)

func product(id string, price float64, stock int) entities.Product {
	return entities.Product{ID: id, Name: "product " + id, Price: price, Stock: stock}
}

func TestAddProduct(t *testing.T) {
	tests := []struct {
		name      string
		adds      []int
		stock     int
		wantLines int
		wantQty   int
	}{
		{"single unit", []int{1}, 5, 1, 1},
		{"aggregates", []int{2, 2}, 5, 1, 4},
		{"clamped on create", []int{9}, 5, 1, 5},
		{"clamped on increase", []int{3, 3}, 5, 1, 5},
		{"zero ignored", []int{0}, 5, 0, 0},
		{"negative ignored", []int{-3}, 5, 0, 0},
		{"out of stock creates nothing", []int{2}, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cart.New()
			p := product("p1", 2.5, tt.stock)
			for _, qty := range tt.adds {
				c.AddProduct(p, qty)
			}

			lines := c.Products()
			require.Len(t, lines, tt.wantLines)
			assert.Equal(t, tt.wantQty, c.ItemCount())
			for _, l := range lines {
				assert.Positive(t, l.Quantity)
				assert.LessOrEqual(t, l.Quantity, p.Stock)
			}
		})
	}
}

func TestAddProduct_StockDroppedToZeroRemovesLine(t *testing.T) {
	c := cart.New()
	c.AddProduct(product("p1", 1, 5), 2)

	c.AddProduct(product("p1", 1, 0), 1)

	assert.Empty(t, c.Products())
}

func TestRemoveProduct(t *testing.T) {
	c := cart.New()
	p := product("p1", 3, 10)
	c.AddProduct(p, 5)

	c.RemoveProduct(p, 2)
	assert.Equal(t, 3, c.ItemCount())

	c.RemoveProduct(p, 0)
	c.RemoveProduct(p, -1)
	assert.Equal(t, 3, c.ItemCount(), "non-positive removal is a no-op")

	c.RemoveProduct(p, 3)
	assert.Empty(t, c.Products(), "line is deleted, not kept at zero")

	c.RemoveProduct(p, 1)
	assert.Empty(t, c.Products())
}

func TestRemoveProduct_BelowZeroDeletesLine(t *testing.T) {
	c := cart.New()
	p := product("p1", 3, 10)
	c.AddProduct(p, 2)

	c.RemoveProduct(p, 7)

	assert.Empty(t, c.Products())
	assert.Zero(t, c.Total())
}

func TestClearProductAndClear(t *testing.T) {
	c := cart.New()
	a, b := product("a", 1, 10), product("b", 2, 10)
	c.AddProduct(a, 3)
	c.AddProduct(b, 1)

	c.ClearProduct(a)
	lines := c.Products()
	require.Len(t, lines, 1)
	assert.Equal(t, "b", lines[0].Product.ID)

	c.ClearProduct(a)
	assert.Len(t, c.Products(), 1)

	c.Clear()
	assert.Empty(t, c.Products())
	assert.Zero(t, c.ItemCount())
}

func TestSubtract(t *testing.T) {
	c := cart.New()
	a, b, d := product("a", 1, 10), product("b", 2, 10), product("d", 3, 10)
	c.AddProduct(a, 3)
	c.AddProduct(b, 1)

	notified := 0
	unsubscribe := c.Subscribe(func(entities.CartSnapshot) { notified++ })
	defer unsubscribe()

	c.Subtract([]entities.CartLine{
		{Product: a, Quantity: 2},
		{Product: b, Quantity: 1},
		{Product: d, Quantity: 4},
	})

	lines := c.Products()
	require.Len(t, lines, 1)
	assert.Equal(t, "a", lines[0].Product.ID)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, 1, notified, "one notification per subtraction")

	c.Subtract([]entities.CartLine{{Product: d, Quantity: 1}})
	assert.Equal(t, 1, notified, "nothing changed, nothing published")
}

func TestTotalsAndOrder(t *testing.T) {
	c := cart.New()
	c.AddProduct(product("a", 1.25, 10), 2)
	c.AddProduct(product("b", 10, 10), 1)
	c.AddProduct(product("c", 0.5, 10), 4)
	c.AddProduct(product("a", 1.25, 10), 1)

	assert.InDelta(t, 1.25*3+10+0.5*4, c.Total(), 1e-9)
	assert.Equal(t, 8, c.ItemCount())

	snapshot := c.Snapshot()
	ids := make([]string, 0, len(snapshot.Lines))
	for _, l := range snapshot.Lines {
		ids = append(ids, l.Product.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids, "insertion order is preserved")
	assert.InDelta(t, c.Total(), snapshot.Total, 1e-9)
	assert.Equal(t, c.ItemCount(), snapshot.ItemCount)
}

func TestProductsReturnsCopy(t *testing.T) {
	c := cart.New()
	c.AddProduct(product("a", 1, 10), 2)

	lines := c.Products()
	lines[0].Quantity = 100

	assert.Equal(t, 2, c.ItemCount())
}

func TestSubscribe(t *testing.T) {
	c := cart.New()
	p := product("a", 2, 10)

	var got []entities.CartSnapshot
	unsubscribe := c.Subscribe(func(s entities.CartSnapshot) { got = append(got, s) })

	c.AddProduct(p, 2)
	c.AddProduct(p, 0)
	c.RemoveProduct(p, 1)
	c.Clear()
	c.Clear()

	require.Len(t, got, 3, "only effective mutations notify")
	assert.Equal(t, 2, got[0].ItemCount)
	assert.Equal(t, 1, got[1].ItemCount)
	assert.Empty(t, got[2].Lines)

	unsubscribe()
	unsubscribe()
	c.AddProduct(p, 1)
	assert.Len(t, got, 3)
}

func TestConcurrentMutationsKeepInvariants(t *testing.T) {
	c := cart.New()
	p := product("a", 1, 50)

	var wg sync.WaitGroup
	for range 100 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.AddProduct(p, 1)
		}()
		go func() {
			defer wg.Done()
			_ = c.Snapshot()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, c.ItemCount())
	require.Len(t, c.Products(), 1)
}
