package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"posterminal/internal/terminal/domain/entities"
	domain "posterminal/internal/terminal/domain/services"
	"posterminal/internal/terminal/ports/api"
	"posterminal/internal/terminal/ports/cache"
	ports "posterminal/internal/terminal/ports/services"
	"posterminal/internal/terminal/resilience"
	"posterminal/pkg/logger"
)

// Константы для логирования.
const (
	LogCheckout          = "sales service: checkout"
	LogCheckoutCompleted = "sales service: sale created"

	ErrorCheckout     = "failed to create sale"
	ErrorSalesSummary = "failed to load sales summary"
	ErrorSalesToday   = "failed to load today's sales"
)

// SalesServiceImpl реализует интерфейс SalesService.
type SalesServiceImpl struct {
	api        api.SalesAPI
	cart       ports.CartService
	cache      cache.Cache
	resilience *resilience.ServiceResilience
	now        func() time.Time
}

var _ ports.SalesService = (*SalesServiceImpl)(nil)

// NewSalesService создает сервис продаж поверх корзины продавца.
func NewSalesService(salesAPI api.SalesAPI, cart ports.CartService, c cache.Cache) *SalesServiceImpl {
	return &SalesServiceImpl{
		api:        salesAPI,
		cart:       cart,
		cache:      c,
		resilience: resilience.NewServiceResilience("sales-service"),
		now:        time.Now,
	}
}

// Checkout оформляет продажу снимка корзины. После подтверждения бэкенда
// из корзины списывается только проданное, товары, добавленные во время
// запроса, остаются.
func (s *SalesServiceImpl) Checkout(ctx context.Context) (*entities.Sale, error) {
	snapshot := s.cart.Snapshot()
	if len(snapshot.Lines) == 0 {
		return nil, &domain.ValidationError{Field: "cart", Reason: "cart is empty"}
	}

	items := make([]entities.SaleItem, 0, len(snapshot.Lines))
	productKeys := make([]string, 0, len(snapshot.Lines))
	for _, line := range snapshot.Lines {
		items = append(items, entities.SaleItem{ProductID: line.Product.ID, Quantity: line.Quantity})
		productKeys = append(productKeys, ProductCacheKeyPrefix+line.Product.ID)
	}

	key := uuid.NewString()
	log := logger.Log(ctx).With(zap.String("idempotency_key", key))
	log.Info(ctx, LogCheckout, zap.Int("lines", len(items)), zap.Float64("total", snapshot.Total))

	sale, err := s.api.CreateSale(ctx, entities.SaleRequest{Date: s.now(), Items: items}, key)
	if err != nil {
		log.Warn(ctx, ErrorCheckout, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorCheckout, err)
	}

	s.cart.Subtract(snapshot.Lines)
	invalidate(ctx, s.cache, productKeys...)
	log.Info(ctx, LogCheckoutCompleted, zap.Int("sale_id", sale.ID))
	return sale, nil
}

func (s *SalesServiceImpl) Summary(ctx context.Context) (*entities.SalesSummary, error) {
	summary, err := resilience.Do(ctx, s.resilience, "Summary", func() (*entities.SalesSummary, error) {
		return s.api.Summary(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorSalesSummary, err)
	}
	return summary, nil
}

func (s *SalesServiceImpl) Today(ctx context.Context) ([]entities.Sale, error) {
	sales, err := resilience.Do(ctx, s.resilience, "SalesOfTheDay", func() ([]entities.Sale, error) {
		return s.api.SalesOfTheDay(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorSalesToday, err)
	}
	if sales == nil {
		sales = []entities.Sale{}
	}
	return sales, nil
}
