package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	ports "posterminal/internal/terminal/ports/services"
)

// ErrorLoadDashboard - ошибка загрузки панели администратора.
const ErrorLoadDashboard = "failed to load dashboard"

// DashboardServiceImpl реализует интерфейс DashboardService.
type DashboardServiceImpl struct {
	sales     ports.SalesService
	inventory ports.InventoryService
}

var _ ports.DashboardService = (*DashboardServiceImpl)(nil)

// NewDashboardService создает сервис панели администратора.
func NewDashboardService(sales ports.SalesService, inventory ports.InventoryService) *DashboardServiceImpl {
	return &DashboardServiceImpl{sales: sales, inventory: inventory}
}

// Load параллельно загружает сводку продаж, продажи за день и первую
// страницу товаров с низким остатком.
func (s *DashboardServiceImpl) Load(ctx context.Context) (*ports.Dashboard, error) {
	var dashboard ports.Dashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		summary, err := s.sales.Summary(gctx)
		dashboard.Summary = summary
		return err
	})
	g.Go(func() error {
		today, err := s.sales.Today(gctx)
		dashboard.Today = today
		return err
	})
	g.Go(func() error {
		lowStock, err := s.inventory.LowStock(gctx)
		dashboard.LowStock = lowStock
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorLoadDashboard, err)
	}
	return &dashboard, nil
}
