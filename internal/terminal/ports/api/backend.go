// Package api определяет интерфейсы REST API бэкенда магазина.
package api

import (
	"context"

	"posterminal/internal/terminal/domain/entities"
)

// MeResponse - ответ /auth/me.
type MeResponse struct {
	Valid   bool `json:"valid"`
	Payload struct {
		Exp      int64         `json:"exp"`
		Iat      int64         `json:"iat"`
		Role     entities.Role `json:"role"`
		Sub      string        `json:"sub"`
		Username string        `json:"username"`
	} `json:"payload"`
}

// AuthAPI - эндпоинты /auth.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (*entities.TokenPair, error)

	// Refresh передает refresh-токен только как Bearer, не в теле запроса.
	Refresh(ctx context.Context, refreshToken string) (*entities.TokenPair, error)

	Me(ctx context.Context) (*MeResponse, error)

	Logout(ctx context.Context) error

	ForgotPassword(ctx context.Context, email string) error

	ResetPassword(ctx context.Context, token, newPassword string) error

	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
}

// ProductsAPI - эндпоинты /products.
type ProductsAPI interface {
	ListProducts(ctx context.Context, q entities.PageQuery) (*entities.Page[entities.Product], error)
	GetProduct(ctx context.Context, id string) (*entities.Product, error)
	CreateProduct(ctx context.Context, in entities.ProductInput) (*entities.Product, error)
	UpdateProduct(ctx context.Context, id string, in entities.ProductInput) (*entities.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// UsersAPI - эндпоинты /users.
type UsersAPI interface {
	ListUsers(ctx context.Context, q entities.PageQuery) (*entities.Page[entities.User], error)
	GetUser(ctx context.Context, id string) (*entities.User, error)
	CreateUser(ctx context.Context, in entities.UserInput) (*entities.User, error)
	UpdateUser(ctx context.Context, id string, in entities.UserInput) (*entities.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// InventoryAPI - эндпоинты /inventory.
type InventoryAPI interface {
	ListMovements(ctx context.Context, q entities.PageQuery) (*entities.Page[entities.InventoryMovement], error)
	CreateMovement(ctx context.Context, in entities.InventoryMovementInput) (*entities.InventoryMovement, error)
	DeleteMovement(ctx context.Context, id string) error
	ListLowStock(ctx context.Context, q entities.PageQuery) (*entities.Page[entities.Product], error)
}

// SalesAPI - эндпоинты /sales.
type SalesAPI interface {
	CreateSale(ctx context.Context, req entities.SaleRequest, idempotencyKey string) (*entities.Sale, error)
	Summary(ctx context.Context) (*entities.SalesSummary, error)
	SalesOfTheDay(ctx context.Context) ([]entities.Sale, error)
}

// ConfigurationAPI - эндпоинты /configuration.
type ConfigurationAPI interface {
	GetConfiguration(ctx context.Context) (*entities.StoreConfiguration, error)
	UpdateConfiguration(ctx context.Context, in entities.StoreConfigurationUpdate) (*entities.StoreConfiguration, error)
}
