package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v3"

	"posterminal/internal/terminal/app/dto"
	"posterminal/internal/terminal/app/http/middleware"
	"posterminal/internal/terminal/app/ui"
	"posterminal/internal/terminal/domain/entities"
	ports "posterminal/internal/terminal/ports/services"
)

// UIHandler отдает состояние интерфейса: уведомление, тему и маршрут.
type UIHandler struct {
	notifier  ports.Notifier
	theme     ports.ThemeService
	navigator ports.Navigator
	guard     *ui.Guard
}

func NewUIHandler(notifier ports.Notifier, theme ports.ThemeService, navigator ports.Navigator, guard *ui.Guard) *UIHandler {
	return &UIHandler{notifier: notifier, theme: theme, navigator: navigator, guard: guard}
}

func (h *UIHandler) Toast(c fiber.Ctx) error {
	toast, visible := h.notifier.Current()
	response := dto.ToastResponse{Visible: visible}
	if visible {
		response.Toast = &toast
	}
	return c.Status(http.StatusOK).JSON(response)
}

// ShowToast показывает уведомление от оболочки интерфейса.
func (h *UIHandler) ShowToast(c fiber.Ctx) error {
	var toast entities.Toast
	if err := bindJSON(c, &toast); err != nil {
		return err
	}
	if toast.Message == "" {
		return validationError("message", "is required")
	}
	if toast.Type == "" {
		toast.Type = entities.ToastInfo
	}

	h.notifier.Show(middleware.RequestContext(c), toast)
	return h.Toast(c)
}

func (h *UIHandler) DismissToast(c fiber.Ctx) error {
	h.notifier.Dismiss()
	return c.SendStatus(http.StatusNoContent)
}

func (h *UIHandler) Theme(c fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(dto.ThemeResponse{Theme: h.theme.Current(middleware.RequestContext(c))})
}

func (h *UIHandler) ToggleTheme(c fiber.Ctx) error {
	theme, err := h.theme.Toggle(middleware.RequestContext(c))
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(dto.ThemeResponse{Theme: theme})
}

func (h *UIHandler) SetTheme(c fiber.Ctx) error {
	var req dto.ThemeRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := h.theme.Set(middleware.RequestContext(c), req.Theme); err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(dto.ThemeResponse(req))
}

func (h *UIHandler) Route(c fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(dto.RouteResponse{Route: h.navigator.Current()})
}

// Navigate применяет правила доступа к запрошенному URL и переходит
// на разрешенный маршрут.
func (h *UIHandler) Navigate(c fiber.Ctx) error {
	var req dto.RouteRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	route := h.guard.Resolve(middleware.RequestContext(c), req.URL)
	h.navigator.Navigate(route)
	return c.Status(http.StatusOK).JSON(dto.RouteResponse{Route: route})
}
