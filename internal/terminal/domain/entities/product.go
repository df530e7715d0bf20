// Package entities содержит доменные сущности терминала.
package entities

import "time"

// Product представляет товар, получаемый от бэкенда.
// Терминал не владеет товаром: Stock считается верхней границей количества
// на момент взаимодействия.
type Product struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Price       float64    `json:"price"`
	Stock       int        `json:"stock"`
	ImageURL    *string    `json:"imageUrl,omitempty"`
	SKU         string     `json:"sku"`
	Barcode     string     `json:"barcode,omitempty"`
	IsActive    *bool      `json:"isActive,omitempty"`
	CreatedAt   time.Time  `json:"createdAt,omitempty"`
	UpdatedAt   time.Time  `json:"updatedAt,omitempty"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
}

// ProductInput содержит поля для создания или частичного обновления товара.
type ProductInput struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	SKU         *string  `json:"sku,omitempty"`
	Barcode     *string  `json:"barcode,omitempty"`
	IsActive    *bool    `json:"isActive,omitempty"`
}
