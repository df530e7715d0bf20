package backend

import (
	"context"
	"net/http"

	"posterminal/internal/terminal/domain/entities"
	"posterminal/internal/terminal/ports/api"
)

// Пути ресурсов.
const (
	PathProducts      = "/products"
	PathUsers         = "/users"
	PathInventory     = "/inventory"
	PathLowStock      = "/inventory/low-stock"
	PathSales         = "/sales"
	PathSalesSummary  = "/sales/summary"
	PathSalesOfDay    = "/sales/of-the-day"
	PathConfiguration = "/configuration"
)

var (
	_ api.ProductsAPI      = (*Client)(nil)
	_ api.UsersAPI         = (*Client)(nil)
	_ api.InventoryAPI     = (*Client)(nil)
	_ api.SalesAPI         = (*Client)(nil)
	_ api.ConfigurationAPI = (*Client)(nil)
)

func getPage[T any](ctx context.Context, c *Client, path string, q entities.PageQuery) (*entities.Page[T], error) {
	var page entities.Page[T]
	if err := c.do(ctx, request{method: http.MethodGet, path: path, query: pageValues(q)}, &page); err != nil {
		return nil, err
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	return &page, nil
}

func send[T any](ctx context.Context, c *Client, method, path string, body any) (*T, error) {
	var out T
	if err := c.do(ctx, request{method: method, path: path, body: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListProducts(ctx context.Context, q entities.PageQuery) (*entities.Page[entities.Product], error) {
	return getPage[entities.Product](ctx, c, PathProducts, q)
}

func (c *Client) GetProduct(ctx context.Context, id string) (*entities.Product, error) {
	return send[entities.Product](ctx, c, http.MethodGet, resourcePath(PathProducts, id), nil)
}

func (c *Client) CreateProduct(ctx context.Context, in entities.ProductInput) (*entities.Product, error) {
	return send[entities.Product](ctx, c, http.MethodPost, PathProducts, in)
}

func (c *Client) UpdateProduct(ctx context.Context, id string, in entities.ProductInput) (*entities.Product, error) {
	return send[entities.Product](ctx, c, http.MethodPatch, resourcePath(PathProducts, id), in)
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: resourcePath(PathProducts, id)}, nil)
}

func (c *Client) ListUsers(ctx context.Context, q entities.PageQuery) (*entities.Page[entities.User], error) {
	return getPage[entities.User](ctx, c, PathUsers, q)
}

func (c *Client) GetUser(ctx context.Context, id string) (*entities.User, error) {
	return send[entities.User](ctx, c, http.MethodGet, resourcePath(PathUsers, id), nil)
}

func (c *Client) CreateUser(ctx context.Context, in entities.UserInput) (*entities.User, error) {
	return send[entities.User](ctx, c, http.MethodPost, PathUsers, in)
}

func (c *Client) UpdateUser(ctx context.Context, id string, in entities.UserInput) (*entities.User, error) {
	return send[entities.User](ctx, c, http.MethodPatch, resourcePath(PathUsers, id), in)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: resourcePath(PathUsers, id)}, nil)
}

func (c *Client) ListMovements(ctx context.Context, q entities.PageQuery) (*entities.Page[entities.InventoryMovement], error) {
	return getPage[entities.InventoryMovement](ctx, c, PathInventory, q)
}

func (c *Client) CreateMovement(ctx context.Context, in entities.InventoryMovementInput) (*entities.InventoryMovement, error) {
	return send[entities.InventoryMovement](ctx, c, http.MethodPost, PathInventory, in)
}

func (c *Client) DeleteMovement(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: resourcePath(PathInventory, id)}, nil)
}

func (c *Client) ListLowStock(ctx context.Context, q entities.PageQuery) (*entities.Page[entities.Product], error) {
	return getPage[entities.Product](ctx, c, PathLowStock, q)
}

// CreateSale оформляет продажу. Ключ идемпотентности защищает от двойного
// списания при повторе запроса после обновления сессии.
func (c *Client) CreateSale(ctx context.Context, req entities.SaleRequest, idempotencyKey string) (*entities.Sale, error) {
	header := http.Header{}
	if idempotencyKey != "" {
		header.Set(HeaderIdempotencyKey, idempotencyKey)
	}

	var sale entities.Sale
	if err := c.do(ctx, request{method: http.MethodPost, path: PathSales, body: req, header: header}, &sale); err != nil {
		return nil, err
	}
	return &sale, nil
}

func (c *Client) Summary(ctx context.Context) (*entities.SalesSummary, error) {
	return send[entities.SalesSummary](ctx, c, http.MethodGet, PathSalesSummary, nil)
}

func (c *Client) SalesOfTheDay(ctx context.Context) ([]entities.Sale, error) {
	var sales []entities.Sale
	if err := c.do(ctx, request{method: http.MethodGet, path: PathSalesOfDay}, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

func (c *Client) GetConfiguration(ctx context.Context) (*entities.StoreConfiguration, error) {
	return send[entities.StoreConfiguration](ctx, c, http.MethodGet, PathConfiguration, nil)
}

func (c *Client) UpdateConfiguration(ctx context.Context, in entities.StoreConfigurationUpdate) (*entities.StoreConfiguration, error) {
	return send[entities.StoreConfiguration](ctx, c, http.MethodPatch, PathConfiguration, in)
}
