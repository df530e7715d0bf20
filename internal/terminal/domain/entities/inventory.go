package entities

import "time"

// MovementType - направление складского движения.
type MovementType string

// Типы движений.
const (
	MovementIn  MovementType = "IN"
	MovementOut MovementType = "OUT"
)

// InventoryMovement представляет складское движение товара.
type InventoryMovement struct {
	ID           string       `json:"id"`
	ProductID    string       `json:"productId,omitempty"`
	Quantity     int          `json:"quantity"`
	MovementType MovementType `json:"movementType"`
	Description  string       `json:"description"`
	CreatedAt    time.Time    `json:"createdAt,omitempty"`
	UpdatedAt    time.Time    `json:"updatedAt,omitempty"`
	DeletedAt    *time.Time   `json:"deletedAt,omitempty"`
}

// InventoryMovementInput содержит данные нового движения.
type InventoryMovementInput struct {
	ProductID    string       `json:"productId"`
	Quantity     int          `json:"quantity"`
	MovementType MovementType `json:"movementType"`
	Description  string       `json:"description"`
}
