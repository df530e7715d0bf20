package services

import (
	"context"

	"posterminal/internal/terminal/domain/entities"
)

// PageView - состояние постраничного списка для отображения.
type PageView[T any] struct {
	Items   []T  `json:"items"`
	Total   int  `json:"total"`
	HasMore bool `json:"hasMore"`
	Loading bool `json:"loading"`
}

// ProductService определяет интерфейс каталога товаров.
type ProductService interface {
	List(ctx context.Context) (PageView[entities.Product], error)
	Search(ctx context.Context, query string) (PageView[entities.Product], error)
	NextPage(ctx context.Context) (PageView[entities.Product], error)
	Get(ctx context.Context, id string) (*entities.Product, error)
	Fresh(ctx context.Context, id string) (*entities.Product, error)
	Create(ctx context.Context, in entities.ProductInput) (*entities.Product, error)
	Update(ctx context.Context, id string, in entities.ProductInput) (*entities.Product, error)
	Delete(ctx context.Context, id string) error
}

// UserService определяет интерфейс администрирования пользователей.
type UserService interface {
	List(ctx context.Context) (PageView[entities.User], error)
	Search(ctx context.Context, query string) (PageView[entities.User], error)
	NextPage(ctx context.Context) (PageView[entities.User], error)
	Get(ctx context.Context, id string) (*entities.User, error)
	Create(ctx context.Context, in entities.UserInput) (*entities.User, error)
	Update(ctx context.Context, id string, in entities.UserInput) (*entities.User, error)
	Delete(ctx context.Context, id string) error
}

// InventoryService определяет интерфейс складского учета.
type InventoryService interface {
	Movements(ctx context.Context) (PageView[entities.InventoryMovement], error)
	FilterByProduct(ctx context.Context, productID string) (PageView[entities.InventoryMovement], error)
	NextMovements(ctx context.Context) (PageView[entities.InventoryMovement], error)
	LowStock(ctx context.Context) (PageView[entities.Product], error)
	NextLowStock(ctx context.Context) (PageView[entities.Product], error)
	CreateMovement(ctx context.Context, in entities.InventoryMovementInput) (*entities.InventoryMovement, error)
	DeleteMovement(ctx context.Context, id string) error
}

// SalesService определяет интерфейс оформления продаж.
type SalesService interface {
	Checkout(ctx context.Context) (*entities.Sale, error)
	Summary(ctx context.Context) (*entities.SalesSummary, error)
	Today(ctx context.Context) ([]entities.Sale, error)
}

// ConfigurationService определяет интерфейс настроек магазина.
type ConfigurationService interface {
	Get(ctx context.Context) (*entities.StoreConfiguration, error)
	Update(ctx context.Context, in entities.StoreConfigurationUpdate) (*entities.StoreConfiguration, error)
}

// Dashboard - данные панели администратора.
type Dashboard struct {
	Summary  *entities.SalesSummary     `json:"summary"`
	Today    []entities.Sale            `json:"today"`
	LowStock PageView[entities.Product] `json:"lowStock"`
}

// DashboardService собирает данные панели администратора.
type DashboardService interface {
	Load(ctx context.Context) (*Dashboard, error)
}
