package services

import (
	"context"
	"fmt"
	"time"

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
	LogProductsList   = "products service: list"
	LogProductsSearch = "products service: search"
	LogProductCreate  = "products service: create"
	LogProductUpdate  = "products service: update"
	LogProductDelete  = "products service: delete"

	ErrorListProducts  = "failed to list products"
	ErrorGetProduct    = "failed to get product"
	ErrorCreateProduct = "failed to create product"
	ErrorUpdateProduct = "failed to update product"
	ErrorDeleteProduct = "failed to delete product"
)

// ProductServiceImpl реализует интерфейс ProductService.
type ProductServiceImpl struct {
	api        api.ProductsAPI
	cache      cache.Cache
	ttl        time.Duration
	resilience *resilience.ServiceResilience
	list       *paginate.Paginator[entities.Product]
}

var _ ports.ProductService = (*ProductServiceImpl)(nil)

// NewProductService создает сервис каталога.
func NewProductService(productsAPI api.ProductsAPI, c cache.Cache, ttl time.Duration, pageLimit int) *ProductServiceImpl {
	s := &ProductServiceImpl{
		api:        productsAPI,
		cache:      c,
		ttl:        ttl,
		resilience: resilience.NewServiceResilience("products-service"),
	}
	s.list = paginate.New(s.fetchPage, pageLimit)
	return s
}

func (s *ProductServiceImpl) fetchPage(ctx context.Context, q entities.PageQuery) (*entities.Page[entities.Product], error) {
	page, err := resilience.Do(ctx, s.resilience, "ListProducts", func() (*entities.Page[entities.Product], error) {
		return s.api.ListProducts(ctx, q)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorListProducts, err)
	}
	return page, nil
}

// List загружает первую страницу каталога.
func (s *ProductServiceImpl) List(ctx context.Context) (ports.PageView[entities.Product], error) {
	logger.Log(ctx).Debug(ctx, LogProductsList)
	err := s.list.Load(ctx)
	return s.list.View(), err
}

// Search ищет товары по строке и загружает первую страницу результатов.
func (s *ProductServiceImpl) Search(ctx context.Context, query string) (ports.PageView[entities.Product], error) {
	logger.Log(ctx).Debug(ctx, LogProductsSearch, zap.String("query", query))
	err := s.list.SetSearch(ctx, query)
	return s.list.View(), err
}

// NextPage догружает следующую страницу каталога.
func (s *ProductServiceImpl) NextPage(ctx context.Context) (ports.PageView[entities.Product], error) {
	err := s.list.NextPage(ctx)
	return s.list.View(), err
}

// Get возвращает товар, по возможности из кэша.
func (s *ProductServiceImpl) Get(ctx context.Context, id string) (*entities.Product, error) {
	product, err := cachedLoad(ctx, s.cache, ProductCacheKeyPrefix+id, s.ttl, func() (*entities.Product, error) {
		return resilience.Do(ctx, s.resilience, "GetProduct", func() (*entities.Product, error) {
			return s.api.GetProduct(ctx, id)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorGetProduct, err)
	}
	return product, nil
}

// Fresh загружает товар из бэкенда в обход кэша и обновляет кэш.
// Используется там, где важен текущий остаток.
func (s *ProductServiceImpl) Fresh(ctx context.Context, id string) (*entities.Product, error) {
	product, err := resilience.Do(ctx, s.resilience, "GetProduct", func() (*entities.Product, error) {
		return s.api.GetProduct(ctx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorGetProduct, err)
	}
	storeCached(ctx, s.cache, ProductCacheKeyPrefix+id, s.ttl, product)
	return product, nil
}

func (s *ProductServiceImpl) Create(ctx context.Context, in entities.ProductInput) (*entities.Product, error) {
	logger.Log(ctx).Info(ctx, LogProductCreate)

	product, err := s.api.CreateProduct(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorCreateProduct, err)
	}

	reloadQuietly(ctx, "products", s.list.Reload)
	return product, nil
}

func (s *ProductServiceImpl) Update(ctx context.Context, id string, in entities.ProductInput) (*entities.Product, error) {
	logger.Log(ctx).Info(ctx, LogProductUpdate, zap.String("product_id", id))

	product, err := s.api.UpdateProduct(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorUpdateProduct, err)
	}

	invalidate(ctx, s.cache, ProductCacheKeyPrefix+id)
	reloadQuietly(ctx, "products", s.list.Reload)
	return product, nil
}

func (s *ProductServiceImpl) Delete(ctx context.Context, id string) error {
	logger.Log(ctx).Info(ctx, LogProductDelete, zap.String("product_id", id))

	if err := s.api.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", ErrorDeleteProduct, err)
	}

	invalidate(ctx, s.cache, ProductCacheKeyPrefix+id)
	reloadQuietly(ctx, "products", s.list.Reload)
	return nil
}

// Invalidate удаляет товары из кэша, например после продажи.
func (s *ProductServiceImpl) Invalidate(ctx context.Context, ids ...string) {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, ProductCacheKeyPrefix+id)
	}
	invalidate(ctx, s.cache, keys...)
}
