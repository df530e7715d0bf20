package services

import "posterminal/internal/terminal/domain/entities"

// CartService определяет интерфейс корзины продавца.
type CartService interface {
	AddProduct(p entities.Product, quantity int)

	RemoveProduct(p entities.Product, quantity int)

	ClearProduct(p entities.Product)

	Clear()

	// Subtract уменьшает строки на проданные количества.
	Subtract(sold []entities.CartLine)

	Total() float64

	ItemCount() int

	Products() []entities.CartLine

	Snapshot() entities.CartSnapshot

	Subscribe(fn func(entities.CartSnapshot)) (unsubscribe func())
}
