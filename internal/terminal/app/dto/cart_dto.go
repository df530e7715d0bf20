package dto

// AddCartItemRequest добавляет товар в корзину. Нулевое количество
// означает одну единицу.
type AddCartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}
