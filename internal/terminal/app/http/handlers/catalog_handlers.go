package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v3"

	"posterminal/internal/terminal/app/http/middleware"
	"posterminal/internal/terminal/domain/entities"
	ports "posterminal/internal/terminal/ports/services"
)

// QuerySearch - параметр строки поиска.
const QuerySearch = "search"

// CatalogHandler обслуживает каталог товаров для продавца и администратора.
type CatalogHandler struct {
	products ports.ProductService
}

func NewCatalogHandler(products ports.ProductService) *CatalogHandler {
	return &CatalogHandler{products: products}
}

// List загружает первую страницу. С параметром search выполняет поиск.
func (h *CatalogHandler) List(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)

	var (
		view ports.PageView[entities.Product]
		err  error
	)
	if hasQuery(c, QuerySearch) {
		view, err = h.products.Search(requestCtx, c.Query(QuerySearch))
	} else {
		view, err = h.products.List(requestCtx)
	}
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(view)
}

func (h *CatalogHandler) Next(c fiber.Ctx) error {
	view, err := h.products.NextPage(middleware.RequestContext(c))
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(view)
}

func (h *CatalogHandler) Get(c fiber.Ctx) error {
	product, err := h.products.Get(middleware.RequestContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(product)
}

// hasQuery отличает пустой параметр от отсутствующего.
func hasQuery(c fiber.Ctx, key string) bool {
	return c.Request().URI().QueryArgs().Has(key)
}
