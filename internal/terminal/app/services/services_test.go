package services_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posterminal/internal/terminal/adapters/cache"
	"posterminal/internal/terminal/app/cart"
	"posterminal/internal/terminal/app/services"
	"posterminal/internal/terminal/domain/entities"
	domain "posterminal/internal/terminal/domain/services"
)

func products(n int) []entities.Product {
	out := make([]entities.Product, 0, n)
	for i := range n {
		out = append(out, entities.Product{
			ID:    "p" + string(rune('a'+i)),
			Name:  "item",
			Price: float64(i + 1),
			Stock: 10,
		})
	}
	return out
}

func TestProductService_Pagination(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI(products(12)...)
	svc := services.NewProductService(api, cache.NewMemoryCache(time.Minute), time.Minute, 5)

	view, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, view.Items, 5)
	assert.Equal(t, 12, view.Total)
	assert.True(t, view.HasMore)

	_, err = svc.NextPage(ctx)
	require.NoError(t, err)
	view, err = svc.NextPage(ctx)
	require.NoError(t, err)
	assert.Len(t, view.Items, 12)
	assert.False(t, view.HasMore)

	view, err = svc.Search(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.Total)
}

func TestProductService_GetIsCachedAndInvalidated(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI(products(1)...)
	svc := services.NewProductService(api, cache.NewMemoryCache(time.Minute), time.Minute, 5)

	first, err := svc.Get(ctx, "pa")
	require.NoError(t, err)
	second, err := svc.Get(ctx, "pa")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, api.count("GetProduct"))

	price := 99.0
	_, err = svc.Update(ctx, "pa", entities.ProductInput{Price: &price})
	require.NoError(t, err)

	updated, err := svc.Get(ctx, "pa")
	require.NoError(t, err)
	assert.InDelta(t, 99.0, updated.Price, 1e-9)
	assert.Equal(t, 2, api.count("GetProduct"))
}

func TestProductService_FreshBypassesCache(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI(products(1)...)
	svc := services.NewProductService(api, cache.NewMemoryCache(time.Minute), time.Minute, 5)

	cached, err := svc.Get(ctx, "pa")
	require.NoError(t, err)
	assert.Equal(t, 10, cached.Stock)

	api.mu.Lock()
	p := api.products["pa"]
	p.Stock = 2
	api.products["pa"] = p
	api.mu.Unlock()

	stale, err := svc.Get(ctx, "pa")
	require.NoError(t, err)
	assert.Equal(t, 10, stale.Stock, "Get serves the cached copy")

	fresh, err := svc.Fresh(ctx, "pa")
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.Stock)

	again, err := svc.Get(ctx, "pa")
	require.NoError(t, err)
	assert.Equal(t, 2, again.Stock, "Fresh refreshes the cache")
	assert.Equal(t, 2, api.count("GetProduct"))
}

func TestProductService_ClientErrorsAreNotRetried(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	svc := services.NewProductService(api, cache.NewMemoryCache(time.Minute), time.Minute, 5)

	_, err := svc.Get(ctx, "nope")

	require.Error(t, err)
	status, ok := domain.StatusOf(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, 1, api.count("GetProduct"))
}

func TestProductService_NetworkErrorsAreRetried(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI(products(1)...)
	api.failWith("ListProducts", domain.ErrNetwork)
	svc := services.NewProductService(api, cache.NewMemoryCache(time.Minute), time.Minute, 5)

	_, err := svc.List(ctx)

	assert.ErrorIs(t, err, domain.ErrNetwork)
	assert.Equal(t, 3, api.count("ListProducts"))
}

func TestProductService_MutationsReloadList(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI(products(2)...)
	svc := services.NewProductService(api, cache.NewMemoryCache(time.Minute), time.Minute, 5)
	_, err := svc.List(ctx)
	require.NoError(t, err)

	name := "new"
	created, err := svc.Create(ctx, entities.ProductInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "new", created.Name)
	require.NoError(t, svc.Delete(ctx, created.ID))

	assert.Equal(t, 3, api.count("ListProducts"))
}

func TestSalesService_Checkout(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	c := cart.New()
	svc := services.NewSalesService(api, c, cache.NewMemoryCache(time.Minute))

	_, err := svc.Checkout(ctx)
	assert.ErrorIs(t, err, domain.ErrValidation, "empty cart is rejected locally")
	assert.Zero(t, api.count("CreateSale"))

	c.AddProduct(entities.Product{ID: "a", Price: 2, Stock: 5}, 2)
	c.AddProduct(entities.Product{ID: "b", Price: 1, Stock: 5}, 1)

	sale, err := svc.Checkout(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sale.ID)
	assert.Empty(t, c.Products(), "cart is cleared after a confirmed sale")

	require.Len(t, api.saleRequests, 1)
	assert.Equal(t, []entities.SaleItem{{ProductID: "a", Quantity: 2}, {ProductID: "b", Quantity: 1}}, api.saleRequests[0].Items)
	assert.False(t, api.saleRequests[0].Date.IsZero())
	assert.NotEmpty(t, api.saleKeys[0])
}

func TestSalesService_CheckoutKeepsItemsAddedDuringSale(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	c := cart.New()
	a := entities.Product{ID: "a", Price: 2, Stock: 5}
	b := entities.Product{ID: "b", Price: 1, Stock: 5}
	c.AddProduct(a, 1)

	inFlight := make(chan struct{})
	release := make(chan struct{})
	api.onSale = func() {
		close(inFlight)
		<-release
	}
	svc := services.NewSalesService(api, c, cache.NewMemoryCache(time.Minute))

	done := make(chan error, 1)
	go func() {
		_, err := svc.Checkout(ctx)
		done <- err
	}()

	<-inFlight
	c.AddProduct(b, 2)
	c.AddProduct(a, 1)
	close(release)
	require.NoError(t, <-done)

	require.Len(t, api.saleRequests, 1)
	assert.Equal(t, []entities.SaleItem{{ProductID: "a", Quantity: 1}}, api.saleRequests[0].Items)

	lines := c.Products()
	require.Len(t, lines, 2)
	assert.Equal(t, "a", lines[0].Product.ID)
	assert.Equal(t, 1, lines[0].Quantity, "only the sold unit is removed")
	assert.Equal(t, "b", lines[1].Product.ID)
	assert.Equal(t, 2, lines[1].Quantity)
}

func TestSalesService_FailedCheckoutKeepsCart(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	api.failWith("CreateSale", &domain.APIError{Status: http.StatusBadRequest, Message: "insufficient stock"})
	c := cart.New()
	c.AddProduct(entities.Product{ID: "a", Price: 2, Stock: 5}, 2)
	svc := services.NewSalesService(api, c, cache.NewMemoryCache(time.Minute))

	_, err := svc.Checkout(ctx)

	require.Error(t, err)
	assert.Equal(t, "insufficient stock", domain.MessageOf(err))
	assert.Equal(t, 2, c.ItemCount())
	assert.Equal(t, 1, api.count("CreateSale"), "sales are never retried automatically")
}

func TestSalesService_CheckoutInvalidatesSoldProducts(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI(products(1)...)
	memCache := cache.NewMemoryCache(time.Minute)
	productSvc := services.NewProductService(api, memCache, time.Minute, 5)
	c := cart.New()
	salesSvc := services.NewSalesService(api, c, memCache)

	p, err := productSvc.Get(ctx, "pa")
	require.NoError(t, err)
	c.AddProduct(*p, 1)

	_, err = salesSvc.Checkout(ctx)
	require.NoError(t, err)

	_, err = productSvc.Get(ctx, "pa")
	require.NoError(t, err)
	assert.Equal(t, 2, api.count("GetProduct"))
}

func TestInventoryService(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	svc := services.NewInventoryService(api, cache.NewMemoryCache(time.Minute), 10)

	view, err := svc.Movements(ctx)
	require.NoError(t, err)
	assert.Len(t, view.Items, 2)

	view, err = svc.FilterByProduct(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "m1", view.Items[0].ID)

	low, err := svc.LowStock(ctx)
	require.NoError(t, err)
	assert.Len(t, low.Items, 1)

	_, err = svc.CreateMovement(ctx, entities.InventoryMovementInput{
		ProductID: "p1", Quantity: 3, MovementType: entities.MovementIn, Description: "restock",
	})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteMovement(ctx, "m3"))

	assert.Equal(t, 4, api.count("ListMovements"), "mutations reload movements")
	assert.Equal(t, 3, api.count("ListLowStock"), "mutations reload low stock")
}

func TestConfigurationService(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	svc := services.NewConfigurationService(api, cache.NewMemoryCache(time.Minute), time.Minute)

	cfg, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Corner Shop", cfg.StoreName)

	name := "Main Street"
	updated, err := svc.Update(ctx, entities.StoreConfigurationUpdate{StoreName: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.StoreName)

	cfg, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, name, cfg.StoreName)
	assert.Equal(t, 1, api.count("GetConfiguration"))
}

func TestUserService(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	svc := services.NewUserService(api, 10)

	view, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, entities.RoleAdmin, view.Items[0].Role)

	_, err = svc.Create(ctx, entities.UserInput{})
	require.NoError(t, err)
	_, err = svc.Update(ctx, "u1", entities.UserInput{})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, "u1"))
	assert.Equal(t, 4, api.count("ListUsers"))

	user, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
}

func TestDashboardService(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	memCache := cache.NewMemoryCache(time.Minute)
	dashboard := services.NewDashboardService(
		services.NewSalesService(api, cart.New(), memCache),
		services.NewInventoryService(api, memCache, 10),
	)

	data, err := dashboard.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, data.Summary.TotalSales)
	assert.Len(t, data.Today, 1)
	assert.Len(t, data.LowStock.Items, 1)

	api.failWith("Summary", &domain.APIError{Status: http.StatusForbidden})
	_, err = dashboard.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrServer)
}
