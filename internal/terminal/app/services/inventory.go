package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"posterminal/internal/terminal/app/paginate"
	"posterminal/internal/terminal/domain/entities"
	"posterminal/internal/terminal/ports/api"
	"posterminal/internal/terminal/ports/cache"
	ports "posterminal/internal/terminal/ports/services"
	"posterminal/internal/terminal/resilience"
	"posterminal/pkg/logger"
)

// Константы для логирования.
const (
	LogMovementCreate = "inventory service: create movement"
	LogMovementDelete = "inventory service: delete movement"

	ErrorListMovements  = "failed to list inventory movements"
	ErrorListLowStock   = "failed to list low stock products"
	ErrorCreateMovement = "failed to create inventory movement"
	ErrorDeleteMovement = "failed to delete inventory movement"
)

// FilterProductID - фильтр движений по товару.
const FilterProductID = "productId"

// InventoryServiceImpl реализует интерфейс InventoryService.
type InventoryServiceImpl struct {
	api        api.InventoryAPI
	cache      cache.Cache
	resilience *resilience.ServiceResilience
	movements  *paginate.Paginator[entities.InventoryMovement]
	lowStock   *paginate.Paginator[entities.Product]
}

var _ ports.InventoryService = (*InventoryServiceImpl)(nil)

// NewInventoryService создает сервис складского учета.
func NewInventoryService(inventoryAPI api.InventoryAPI, c cache.Cache, pageLimit int) *InventoryServiceImpl {
	s := &InventoryServiceImpl{
		api:        inventoryAPI,
		cache:      c,
		resilience: resilience.NewServiceResilience("inventory-service"),
	}
	s.movements = paginate.New(s.fetchMovements, pageLimit)
	s.lowStock = paginate.New(s.fetchLowStock, pageLimit)
	return s
}

func (s *InventoryServiceImpl) fetchMovements(ctx context.Context, q entities.PageQuery) (*entities.Page[entities.InventoryMovement], error) {
	page, err := resilience.Do(ctx, s.resilience, "ListMovements", func() (*entities.Page[entities.InventoryMovement], error) {
		return s.api.ListMovements(ctx, q)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorListMovements, err)
	}
	return page, nil
}

func (s *InventoryServiceImpl) fetchLowStock(ctx context.Context, q entities.PageQuery) (*entities.Page[entities.Product], error) {
	page, err := resilience.Do(ctx, s.resilience, "ListLowStock", func() (*entities.Page[entities.Product], error) {
		return s.api.ListLowStock(ctx, q)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorListLowStock, err)
	}
	return page, nil
}

func (s *InventoryServiceImpl) Movements(ctx context.Context) (ports.PageView[entities.InventoryMovement], error) {
	err := s.movements.Load(ctx)
	return s.movements.View(), err
}

// FilterByProduct показывает движения одного товара. Пустой productID снимает фильтр.
func (s *InventoryServiceImpl) FilterByProduct(ctx context.Context, productID string) (ports.PageView[entities.InventoryMovement], error) {
	err := s.movements.SetFilter(ctx, FilterProductID, productID)
	return s.movements.View(), err
}

func (s *InventoryServiceImpl) NextMovements(ctx context.Context) (ports.PageView[entities.InventoryMovement], error) {
	err := s.movements.NextPage(ctx)
	return s.movements.View(), err
}

func (s *InventoryServiceImpl) LowStock(ctx context.Context) (ports.PageView[entities.Product], error) {
	err := s.lowStock.Load(ctx)
	return s.lowStock.View(), err
}

func (s *InventoryServiceImpl) NextLowStock(ctx context.Context) (ports.PageView[entities.Product], error) {
	err := s.lowStock.NextPage(ctx)
	return s.lowStock.View(), err
}

// CreateMovement проводит движение и обновляет списки движений и дефицита.
func (s *InventoryServiceImpl) CreateMovement(ctx context.Context, in entities.InventoryMovementInput) (*entities.InventoryMovement, error) {
	logger.Log(ctx).Info(ctx, LogMovementCreate,
		zap.String("product_id", in.ProductID),
		zap.String("movement_type", string(in.MovementType)),
		zap.Int("quantity", in.Quantity))

	movement, err := s.api.CreateMovement(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorCreateMovement, err)
	}

	invalidate(ctx, s.cache, ProductCacheKeyPrefix+in.ProductID)
	s.reload(ctx)
	return movement, nil
}

func (s *InventoryServiceImpl) DeleteMovement(ctx context.Context, id string) error {
	logger.Log(ctx).Info(ctx, LogMovementDelete, zap.String("movement_id", id))

	if err := s.api.DeleteMovement(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", ErrorDeleteMovement, err)
	}

	s.reload(ctx)
	return nil
}

func (s *InventoryServiceImpl) reload(ctx context.Context) {
	reloadQuietly(ctx, "inventory movements", s.movements.Reload)
	reloadQuietly(ctx, "low stock", s.lowStock.Reload)
}
