package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"posterminal/internal/terminal/app/dto"
	"posterminal/internal/terminal/app/http/middleware"
	"posterminal/internal/terminal/domain/entities"
	ports "posterminal/internal/terminal/ports/services"
)

// CartHandler обслуживает корзину продавца и оформление продажи.
type CartHandler struct {
	cart     ports.CartService
	products ports.ProductService
	sales    ports.SalesService
}

// NewCartHandler создает обработчик корзины.
func NewCartHandler(cart ports.CartService, products ports.ProductService, sales ports.SalesService) *CartHandler {
	return &CartHandler{cart: cart, products: products, sales: sales}
}

func (h *CartHandler) Get(c fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(h.cart.Snapshot())
}

// AddItem загружает товар из бэкенда в обход кэша и добавляет его в
// корзину. Количество ограничивается текущим остатком.
func (h *CartHandler) AddItem(c fiber.Ctx) error {
	var req dto.AddCartItemRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if req.ProductID == "" {
		return validationError("productId", "is required")
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, err := h.products.Fresh(middleware.RequestContext(c), req.ProductID)
	if err != nil {
		return err
	}

	h.cart.AddProduct(*product, req.Quantity)
	return c.Status(http.StatusOK).JSON(h.cart.Snapshot())
}

// RemoveItem уменьшает количество товара, по умолчанию на одну единицу.
func (h *CartHandler) RemoveItem(c fiber.Ctx) error {
	quantity := 1
	if raw := c.Query("quantity"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return validationError("quantity", "must be an integer")
		}
		quantity = parsed
	}

	h.cart.RemoveProduct(entities.Product{ID: c.Params("id")}, quantity)
	return c.Status(http.StatusOK).JSON(h.cart.Snapshot())
}

func (h *CartHandler) ClearItem(c fiber.Ctx) error {
	h.cart.ClearProduct(entities.Product{ID: c.Params("id")})
	return c.Status(http.StatusOK).JSON(h.cart.Snapshot())
}

func (h *CartHandler) Clear(c fiber.Ctx) error {
	h.cart.Clear()
	return c.Status(http.StatusOK).JSON(h.cart.Snapshot())
}

// Checkout оформляет продажу содержимого корзины.
func (h *CartHandler) Checkout(c fiber.Ctx) error {
	sale, err := h.sales.Checkout(middleware.RequestContext(c))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(sale)
}
