// Package http содержит локальный HTTP фасад терминала.
package http

import (
	"github.com/gofiber/fiber/v3"

	"posterminal/internal/terminal/app/http/handlers"
	"posterminal/internal/terminal/app/http/middleware"
	"posterminal/internal/terminal/app/ui"
	"posterminal/internal/terminal/domain/entities"
	"posterminal/internal/terminal/ports/services"
)

// Services - зависимости обработчиков фасада.
type Services struct {
	Session       services.SessionService
	Cart          services.CartService
	Products      services.ProductService
	Users         services.UserService
	Inventory     services.InventoryService
	Sales         services.SalesService
	Configuration services.ConfigurationService
	Dashboard     services.DashboardService
	Notifier      services.Notifier
	Theme         services.ThemeService
	Navigator     services.Navigator
	Flows         *ui.AccountFlows
	Guard         *ui.Guard
}

// NewApp создает fiber приложение с обработчиком ошибок фасада.
func NewApp(cfg fiber.Config) *fiber.App {
	cfg.ErrorHandler = handlers.ErrorHandler
	return fiber.New(cfg)
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, s Services) {
	authHandler := handlers.NewAuthHandler(s.Flows, s.Session)
	cartHandler := handlers.NewCartHandler(s.Cart, s.Products, s.Sales)
	catalogHandler := handlers.NewCatalogHandler(s.Products)
	adminHandler := handlers.NewAdminHandler(s.Products, s.Users, s.Inventory, s.Configuration, s.Dashboard)
	uiHandler := handlers.NewUIHandler(s.Notifier, s.Theme, s.Navigator, s.Guard)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	apiV1 := app.Group("/api/v1")

	// Учетная запись (публичные маршруты).
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Get("/me", authHandler.Me)
	authRoutes.Get("/session", authHandler.Session)
	authRoutes.Post("/forgot-password", authHandler.ForgotPassword)
	authRoutes.Get("/reset-password", authHandler.OpenResetPage)
	authRoutes.Post("/reset-password", authHandler.ResetPassword)
	authRoutes.Post("/change-password", middleware.NewRoleMiddleware(s.Session), authHandler.ChangePassword)

	// Состояние интерфейса.
	uiRoutes := apiV1.Group("/ui")
	uiRoutes.Get("/toast", uiHandler.Toast)
	uiRoutes.Post("/toast", uiHandler.ShowToast)
	uiRoutes.Delete("/toast", uiHandler.DismissToast)
	uiRoutes.Get("/theme", uiHandler.Theme)
	uiRoutes.Put("/theme", uiHandler.SetTheme)
	uiRoutes.Post("/theme/toggle", uiHandler.ToggleTheme)
	uiRoutes.Get("/route", uiHandler.Route)
	uiRoutes.Post("/route", uiHandler.Navigate)

	// Каталог доступен любой роли.
	productRoutes := apiV1.Group("/products", middleware.NewRoleMiddleware(s.Session))
	productRoutes.Get("/", catalogHandler.List)
	productRoutes.Get("/next", catalogHandler.Next)
	productRoutes.Get("/:id", catalogHandler.Get)

	// Касса продавца.
	seller := middleware.NewRoleMiddleware(s.Session, entities.RoleSeller)
	cartRoutes := apiV1.Group("/cart", seller)
	cartRoutes.Get("/", cartHandler.Get)
	cartRoutes.Delete("/", cartHandler.Clear)
	cartRoutes.Post("/items", cartHandler.AddItem)
	cartRoutes.Delete("/items/:id", cartHandler.RemoveItem)
	cartRoutes.Delete("/items/:id/all", cartHandler.ClearItem)
	apiV1.Post("/checkout", seller, cartHandler.Checkout)

	// Разделы администратора.
	adminRoutes := apiV1.Group("/admin", middleware.NewRoleMiddleware(s.Session, entities.RoleAdmin))
	adminRoutes.Get("/dashboard", adminHandler.Dashboard)

	adminRoutes.Post("/products", adminHandler.CreateProduct)
	adminRoutes.Patch("/products/:id", adminHandler.UpdateProduct)
	adminRoutes.Delete("/products/:id", adminHandler.DeleteProduct)

	adminRoutes.Get("/users", adminHandler.ListUsers)
	adminRoutes.Get("/users/next", adminHandler.NextUsers)
	adminRoutes.Get("/users/:id", adminHandler.GetUser)
	adminRoutes.Post("/users", adminHandler.CreateUser)
	adminRoutes.Patch("/users/:id", adminHandler.UpdateUser)
	adminRoutes.Delete("/users/:id", adminHandler.DeleteUser)

	adminRoutes.Get("/inventory/movements", adminHandler.ListMovements)
	adminRoutes.Get("/inventory/movements/next", adminHandler.NextMovements)
	adminRoutes.Post("/inventory/movements", adminHandler.CreateMovement)
	adminRoutes.Delete("/inventory/movements/:id", adminHandler.DeleteMovement)
	adminRoutes.Get("/inventory/low-stock", adminHandler.LowStock)
	adminRoutes.Get("/inventory/low-stock/next", adminHandler.NextLowStock)

	adminRoutes.Get("/configuration", adminHandler.GetConfiguration)
	adminRoutes.Patch("/configuration", adminHandler.UpdateConfiguration)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
