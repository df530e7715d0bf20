package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"posterminal/internal/terminal/app/http/middleware"
	"posterminal/internal/terminal/domain/entities"
	ports "posterminal/internal/terminal/ports/services"
	"posterminal/pkg/logger"
)

// QueryProductID - параметр фильтра движений по товару.
const QueryProductID = "productId"

// AdminHandler обслуживает разделы администратора.
type AdminHandler struct {
	products      ports.ProductService
	users         ports.UserService
	inventory     ports.InventoryService
	configuration ports.ConfigurationService
	dashboard     ports.DashboardService
}

// NewAdminHandler создает обработчик разделов администратора.
func NewAdminHandler(
	products ports.ProductService,
	users ports.UserService,
	inventory ports.InventoryService,
	configuration ports.ConfigurationService,
	dashboard ports.DashboardService,
) *AdminHandler {
	return &AdminHandler{
		products:      products,
		users:         users,
		inventory:     inventory,
		configuration: configuration,
		dashboard:     dashboard,
	}
}

func (h *AdminHandler) logAction(c fiber.Ctx, action string) {
	requestCtx := middleware.RequestContext(c)
	fields := []zap.Field{zap.String("action", action)}
	if info, ok := middleware.Session(c); ok {
		fields = append(fields, zap.String("username", info.Username))
	}
	logger.Log(requestCtx).Info(requestCtx, "admin handler", fields...)
}

func (h *AdminHandler) CreateProduct(c fiber.Ctx) error {
	h.logAction(c, "create product")

	var in entities.ProductInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	product, err := h.products.Create(middleware.RequestContext(c), in)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(product)
}

func (h *AdminHandler) UpdateProduct(c fiber.Ctx) error {
	h.logAction(c, "update product")

	var in entities.ProductInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	product, err := h.products.Update(middleware.RequestContext(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(product)
}

func (h *AdminHandler) DeleteProduct(c fiber.Ctx) error {
	h.logAction(c, "delete product")

	if err := h.products.Delete(middleware.RequestContext(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListUsers загружает первую страницу пользователей или результаты поиска.
func (h *AdminHandler) ListUsers(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)

	var (
		view ports.PageView[entities.User]
		err  error
	)
	if hasQuery(c, QuerySearch) {
		view, err = h.users.Search(requestCtx, c.Query(QuerySearch))
	} else {
		view, err = h.users.List(requestCtx)
	}
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(view)
}

func (h *AdminHandler) NextUsers(c fiber.Ctx) error {
	view, err := h.users.NextPage(middleware.RequestContext(c))
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(view)
}

func (h *AdminHandler) GetUser(c fiber.Ctx) error {
	user, err := h.users.Get(middleware.RequestContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(user)
}

func (h *AdminHandler) CreateUser(c fiber.Ctx) error {
	h.logAction(c, "create user")

	var in entities.UserInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	user, err := h.users.Create(middleware.RequestContext(c), in)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(user)
}

func (h *AdminHandler) UpdateUser(c fiber.Ctx) error {
	h.logAction(c, "update user")

	var in entities.UserInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	user, err := h.users.Update(middleware.RequestContext(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(user)
}

func (h *AdminHandler) DeleteUser(c fiber.Ctx) error {
	h.logAction(c, "delete user")

	if err := h.users.Delete(middleware.RequestContext(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListMovements загружает движения склада. Параметр productId задает
// фильтр по товару, пустое значение снимает его.
func (h *AdminHandler) ListMovements(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)

	var (
		view ports.PageView[entities.InventoryMovement]
		err  error
	)
	if hasQuery(c, QueryProductID) {
		view, err = h.inventory.FilterByProduct(requestCtx, c.Query(QueryProductID))
	} else {
		view, err = h.inventory.Movements(requestCtx)
	}
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(view)
}

func (h *AdminHandler) NextMovements(c fiber.Ctx) error {
	view, err := h.inventory.NextMovements(middleware.RequestContext(c))
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(view)
}

func (h *AdminHandler) CreateMovement(c fiber.Ctx) error {
	h.logAction(c, "create inventory movement")

	var in entities.InventoryMovementInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	movement, err := h.inventory.CreateMovement(middleware.RequestContext(c), in)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(movement)
}

func (h *AdminHandler) DeleteMovement(c fiber.Ctx) error {
	h.logAction(c, "delete inventory movement")

	if err := h.inventory.DeleteMovement(middleware.RequestContext(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *AdminHandler) LowStock(c fiber.Ctx) error {
	view, err := h.inventory.LowStock(middleware.RequestContext(c))
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(view)
}

func (h *AdminHandler) NextLowStock(c fiber.Ctx) error {
	view, err := h.inventory.NextLowStock(middleware.RequestContext(c))
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(view)
}

func (h *AdminHandler) GetConfiguration(c fiber.Ctx) error {
	cfg, err := h.configuration.Get(middleware.RequestContext(c))
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(cfg)
}

func (h *AdminHandler) UpdateConfiguration(c fiber.Ctx) error {
	h.logAction(c, "update configuration")

	var in entities.StoreConfigurationUpdate
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	cfg, err := h.configuration.Update(middleware.RequestContext(c), in)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(cfg)
}

// Dashboard возвращает сводку продаж, продажи за день и дефицит товаров.
func (h *AdminHandler) Dashboard(c fiber.Ctx) error {
	dashboard, err := h.dashboard.Load(middleware.RequestContext(c))
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(dashboard)
}
