package services_test

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"posterminal/internal/terminal/domain/entities"
	domain "posterminal/internal/terminal/domain/services"
)

// fakeAPI - бэкенд в памяти со счетчиками вызовов.
type fakeAPI struct {
	mu       sync.Mutex
	calls    map[string]int
	products map[string]entities.Product
	order    []string
	errs     map[string]error

	saleRequests []entities.SaleRequest
	saleKeys     []string
	// onSale, если задан, вызывается до ответа на CreateSale.
	onSale func()
	config       entities.StoreConfiguration
}

func newFakeAPI(products ...entities.Product) *fakeAPI {
	f := &fakeAPI{
		calls:    make(map[string]int),
		products: make(map[string]entities.Product),
		errs:     make(map[string]error),
		config:   entities.StoreConfiguration{StoreName: "Corner Shop"},
	}
	for _, p := range products {
		f.products[p.ID] = p
		f.order = append(f.order, p.ID)
	}
	return f
}

func (f *fakeAPI) record(method string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[method]++
	return f.errs[method]
}

func (f *fakeAPI) failWith(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[method] = err
}

func (f *fakeAPI) count(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func page[T any](all []T, q entities.PageQuery) *entities.Page[T] {
	end := min(q.Offset+q.Limit, len(all))
	items := []T{}
	if q.Offset < end {
		items = append(items, all[q.Offset:end]...)
	}
	return &entities.Page[T]{Items: items, Limit: q.Limit, Offset: q.Offset, Total: len(all)}
}

func (f *fakeAPI) ListProducts(_ context.Context, q entities.PageQuery) (*entities.Page[entities.Product], error) {
	if err := f.record("ListProducts"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	all := []entities.Product{}
	for _, id := range f.order {
		p := f.products[id]
		if q.Search == "" || p.Name == q.Search {
			all = append(all, p)
		}
	}
	return page(all, q), nil
}

func (f *fakeAPI) GetProduct(_ context.Context, id string) (*entities.Product, error) {
	if err := f.record("GetProduct"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, &domain.APIError{Status: http.StatusNotFound, Path: "/products/" + id}
	}
	return &p, nil
}

func (f *fakeAPI) CreateProduct(_ context.Context, in entities.ProductInput) (*entities.Product, error) {
	if err := f.record("CreateProduct"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p := entities.Product{ID: fmt.Sprintf("p%d", len(f.order)+1)}
	if in.Name != nil {
		p.Name = *in.Name
	}
	f.products[p.ID] = p
	f.order = append(f.order, p.ID)
	return &p, nil
}

func (f *fakeAPI) UpdateProduct(_ context.Context, id string, in entities.ProductInput) (*entities.Product, error) {
	if err := f.record("UpdateProduct"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.products[id]
	if in.Price != nil {
		p.Price = *in.Price
	}
	f.products[id] = p
	return &p, nil
}

func (f *fakeAPI) DeleteProduct(context.Context, string) error {
	return f.record("DeleteProduct")
}

func (f *fakeAPI) ListUsers(_ context.Context, q entities.PageQuery) (*entities.Page[entities.User], error) {
	if err := f.record("ListUsers"); err != nil {
		return nil, err
	}
	return page([]entities.User{{ID: "u1", Username: "root", Role: entities.RoleAdmin}}, q), nil
}

func (f *fakeAPI) GetUser(_ context.Context, id string) (*entities.User, error) {
	if err := f.record("GetUser"); err != nil {
		return nil, err
	}
	return &entities.User{ID: id}, nil
}

func (f *fakeAPI) CreateUser(context.Context, entities.UserInput) (*entities.User, error) {
	if err := f.record("CreateUser"); err != nil {
		return nil, err
	}
	return &entities.User{ID: "u2"}, nil
}

func (f *fakeAPI) UpdateUser(_ context.Context, id string, _ entities.UserInput) (*entities.User, error) {
	if err := f.record("UpdateUser"); err != nil {
		return nil, err
	}
	return &entities.User{ID: id}, nil
}

func (f *fakeAPI) DeleteUser(context.Context, string) error {
	return f.record("DeleteUser")
}

func (f *fakeAPI) ListMovements(_ context.Context, q entities.PageQuery) (*entities.Page[entities.InventoryMovement], error) {
	if err := f.record("ListMovements"); err != nil {
		return nil, err
	}
	all := []entities.InventoryMovement{
		{ID: "m1", ProductID: "p1", Quantity: 5, MovementType: entities.MovementIn},
		{ID: "m2", ProductID: "p2", Quantity: 1, MovementType: entities.MovementOut},
	}
	if id := q.Filters["productId"]; id != "" {
		filtered := all[:0:0]
		for _, m := range all {
			if m.ProductID == id {
				filtered = append(filtered, m)
			}
		}
		all = filtered
	}
	return page(all, q), nil
}

func (f *fakeAPI) CreateMovement(_ context.Context, in entities.InventoryMovementInput) (*entities.InventoryMovement, error) {
	if err := f.record("CreateMovement"); err != nil {
		return nil, err
	}
	return &entities.InventoryMovement{ID: "m3", ProductID: in.ProductID, Quantity: in.Quantity, MovementType: in.MovementType}, nil
}

func (f *fakeAPI) DeleteMovement(context.Context, string) error {
	return f.record("DeleteMovement")
}

func (f *fakeAPI) ListLowStock(_ context.Context, q entities.PageQuery) (*entities.Page[entities.Product], error) {
	if err := f.record("ListLowStock"); err != nil {
		return nil, err
	}
	return page([]entities.Product{{ID: "p9", Name: "Low", Stock: 1}}, q), nil
}

func (f *fakeAPI) CreateSale(_ context.Context, req entities.SaleRequest, key string) (*entities.Sale, error) {
	if err := f.record("CreateSale"); err != nil {
		return nil, err
	}
	if f.onSale != nil {
		f.onSale()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saleRequests = append(f.saleRequests, req)
	f.saleKeys = append(f.saleKeys, key)
	return &entities.Sale{ID: len(f.saleRequests), Items: req.Items}, nil
}

func (f *fakeAPI) Summary(context.Context) (*entities.SalesSummary, error) {
	if err := f.record("Summary"); err != nil {
		return nil, err
	}
	return &entities.SalesSummary{TotalSales: 3, TotalRevenue: 42}, nil
}

func (f *fakeAPI) SalesOfTheDay(context.Context) ([]entities.Sale, error) {
	if err := f.record("SalesOfTheDay"); err != nil {
		return nil, err
	}
	return []entities.Sale{{ID: 1, Total: 10}}, nil
}

func (f *fakeAPI) GetConfiguration(context.Context) (*entities.StoreConfiguration, error) {
	if err := f.record("GetConfiguration"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cfg := f.config
	return &cfg, nil
}

func (f *fakeAPI) UpdateConfiguration(_ context.Context, in entities.StoreConfigurationUpdate) (*entities.StoreConfiguration, error) {
	if err := f.record("UpdateConfiguration"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if in.StoreName != nil {
		f.config.StoreName = *in.StoreName
	}
	cfg := f.config
	return &cfg, nil
}
