package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"time"

	"github.com/nppdeals/inventory-platform/internal/api/middleware"
	"github.com/nppdeals/inventory-platform/internal/cache"
	"github.com/nppdeals/inventory-platform/internal/errors"
	"github.com/nppdeals/inventory-platform/internal/models"
	repository "github.com/nppdeals/inventory-platform/internal/repositories"
)

type ProductService interface {
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	GetProductsByIDs(ctx context.Context, ids []int64) ([]*models.Product, error)
	ReplaceProduct(ctx context.Context, id int64, product *models.Product) (*models.Product, error)
	PatchProduct(ctx context.Context, id int64, patch models.ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	MarkOutOfStock(ctx context.Context, id int64) (*models.Product, error)
	ListProducts(ctx context.Context, page, pageSize int) ([]*models.Product, int, error)
	ListAllProducts(ctx context.Context) ([]*models.Product, error)
	SearchProducts(ctx context.Context, query string) ([]*models.Product, error)
	RecordSent(ctx context.Context, ids []int64, at time.Time) error
}

type productService struct {
	repo  repository.ProductRepository
	cache cache.Cache
	ttl   time.Duration
	now   func() time.Time
}

func NewProductService(repo repository.ProductRepository, cache cache.Cache, ttl time.Duration) ProductService {
	return &productService{repo: repo, cache: cache, ttl: ttl, now: time.Now}
}

// notFoundOr maps a missing row onto NotFound and everything else onto a
// database error carrying message.
func notFoundOr(err error, message string) error {
	if isNoRows(err) {
		return errors.NotFoundError("Product not found").WithError(err)
	}

	return errors.DatabaseError(message).WithError(err)
}

func isNoRows(err error) bool {
	return stdErrors.Is(err, sql.ErrNoRows)
}

func (s *productService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Delete(ctx, cache.ProductListKey); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to invalidate product cache", "error", err)
	}
}

func (s *productService) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {

	if product.Title == "" {
		product.Title = models.DefaultTitle
	}

	if product.OfferDate == nil {
		now := s.now().UTC()
		product.OfferDate = &now
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to create product").WithError(err)
	}

	s.invalidate(ctx)

	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Failed to fetch product")
	}

	return product, nil
}

func (s *productService) GetProductsByIDs(ctx context.Context, ids []int64) ([]*models.Product, error) {

	products, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return products, nil
}

// ReplaceProduct overwrites every column. Omitted fields are cleared.
func (s *productService) ReplaceProduct(ctx context.Context, id int64, product *models.Product) (*models.Product, error) {

	product.ID = id
	if product.Title == "" {
		product.Title = models.DefaultTitle
	}

	if err := s.repo.Replace(ctx, product); err != nil {
		return nil, notFoundOr(err, "Failed to update product")
	}

	s.invalidate(ctx)

	return product, nil
}

func (s *productService) PatchProduct(ctx context.Context, id int64, patch models.ProductPatch) (*models.Product, error) {

	normalized, err := patch.Normalize()
	if err != nil {
		return nil, errors.ValidationError("Invalid product fields").WithDetail(err.Error())
	}

	product, err := s.repo.Patch(ctx, id, normalized)
	if err != nil {
		return nil, notFoundOr(err, "Failed to update product")
	}

	s.invalidate(ctx)

	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id int64) error {

	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Failed to delete product")
	}

	s.invalidate(ctx)

	return nil
}

func (s *productService) MarkOutOfStock(ctx context.Context, id int64) (*models.Product, error) {

	product, err := s.repo.MarkOutOfStock(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Failed to update product")
	}

	s.invalidate(ctx)

	return product, nil
}

// page means "page number requested"
// pageSize means "number of products to be displayed per page"
func (s *productService) ListProducts(ctx context.Context, page, pageSize int) ([]*models.Product, int, error) {

	products, total, err := s.repo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return products, total, nil
}

// ListAllProducts returns the whole collection, served from the cache when warm.
func (s *productService) ListAllProducts(ctx context.Context) ([]*models.Product, error) {

	logger := middleware.LoggerFromContext(ctx)

	if s.cache != nil {
		var cached []*models.Product
		found, err := s.cache.Get(ctx, cache.ProductListKey, &cached)
		if err != nil {
			logger.Warn("Product cache read failed", "error", err)
		} else if found {
			return cached, nil
		}
	}

	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch products").WithError(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.ProductListKey, products, s.ttl); err != nil {
			logger.Warn("Product cache write failed", "error", err)
		}
	}

	return products, nil
}

func (s *productService) SearchProducts(ctx context.Context, query string) ([]*models.Product, error) {

	products, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, errors.DatabaseError("Failed to search products").WithError(err)
	}

	return products, nil
}

// RecordSent stamps last_sent on products included in a delivered email.
func (s *productService) RecordSent(ctx context.Context, ids []int64, at time.Time) error {

	if err := s.repo.TouchLastSent(ctx, ids, at); err != nil {
		return errors.DatabaseError("Failed to record email delivery").WithError(err)
	}

	s.invalidate(ctx)

	return nil
}
