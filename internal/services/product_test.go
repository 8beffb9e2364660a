package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/nppdeals/inventory-platform/internal/cache"
	cacheMocks "github.com/nppdeals/inventory-platform/internal/cache/mocks"
	appErrors "github.com/nppdeals/inventory-platform/internal/errors"
	"github.com/nppdeals/inventory-platform/internal/models"
	"github.com/nppdeals/inventory-platform/internal/repositories/mocks"
	service "github.com/nppdeals/inventory-platform/internal/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const cacheTTL = 5 * time.Minute

func setupProductService() (service.ProductService, *mocks.ProductRepository, *cacheMocks.Cache) {
	mockRepo := new(mocks.ProductRepository)
	mockCache := new(cacheMocks.Cache)

	return service.NewProductService(mockRepo, mockCache, cacheTTL), mockRepo, mockCache
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()

	var appErr *appErrors.AppError
	require.True(t, errors.As(err, &appErr), "expected an AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Defaults title and offer date", func(t *testing.T) {
		// Arrange
		productService, mockRepo, mockCache := setupProductService()
		mockRepo.On("Create", ctx, mock.MatchedBy(func(p *models.Product) bool {
			return p.Title == models.DefaultTitle && p.OfferDate != nil && !p.OutOfStock
		})).Return(nil).Once()
		mockCache.On("Delete", ctx, cache.ProductListKey).Return(nil).Once()

		// Act
		product, err := productService.CreateProduct(ctx, &models.Product{ASIN: "B0NEW"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.DefaultTitle, product.Title)
		assert.NotNil(t, product.OfferDate)
		mockRepo.AssertExpectations(t)
		mockCache.AssertExpectations(t)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		productService, mockRepo, mockCache := setupProductService()
		mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Product")).Return(errors.New("db down")).Once()

		// Act
		product, err := productService.CreateProduct(ctx, &models.Product{Title: "Desk"})

		// Assert
		assert.Nil(t, product)
		assertAppErrorCode(t, err, appErrors.ErrCodeDatabaseError)
		mockCache.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestGetProductByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		productService, mockRepo, _ := setupProductService()
		mockRepo.On("GetByID", ctx, int64(4)).Return(&models.Product{ID: 4, Title: "Chair"}, nil).Once()

		product, err := productService.GetProductByID(ctx, 4)

		require.NoError(t, err)
		assert.Equal(t, "Chair", product.Title)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		productService, mockRepo, _ := setupProductService()
		mockRepo.On("GetByID", ctx, int64(5)).Return(nil, sql.ErrNoRows).Once()

		_, err := productService.GetProductByID(ctx, 5)

		assertAppErrorCode(t, err, appErrors.ErrCodeNotFound)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		productService, mockRepo, _ := setupProductService()
		mockRepo.On("GetByID", ctx, int64(6)).Return(nil, errors.New("timeout")).Once()

		_, err := productService.GetProductByID(ctx, 6)

		assertAppErrorCode(t, err, appErrors.ErrCodeDatabaseError)
	})
}

func TestPatchProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Normalizes and invalidates cache", func(t *testing.T) {
		// Arrange
		productService, mockRepo, mockCache := setupProductService()
		mockRepo.On("Patch", ctx, int64(8), mock.MatchedBy(func(p models.ProductPatch) bool {
			d, ok := p["price"].(decimal.Decimal)
			return ok && d.Equal(decimal.RequireFromString("19.99"))
		})).Return(&models.Product{ID: 8}, nil).Once()
		mockCache.On("Delete", ctx, cache.ProductListKey).Return(nil).Once()

		// Act
		product, err := productService.PatchProduct(ctx, 8, models.ProductPatch{"price": "19.99"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(8), product.ID)
		mockRepo.AssertExpectations(t)
		mockCache.AssertExpectations(t)
	})

	t.Run("Failure - Invalid Field", func(t *testing.T) {
		productService, mockRepo, _ := setupProductService()

		_, err := productService.PatchProduct(ctx, 8, models.ProductPatch{"qty": "many"})

		assertAppErrorCode(t, err, appErrors.ErrCodeValidation)
		mockRepo.AssertNotCalled(t, "Patch", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		productService, mockRepo, _ := setupProductService()
		mockRepo.On("Patch", ctx, int64(9), mock.Anything).Return(nil, sql.ErrNoRows).Once()

		_, err := productService.PatchProduct(ctx, 9, models.ProductPatch{"qty": 1})

		assert.True(t, appErrors.IsNotFound(err))
	})
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		productService, mockRepo, mockCache := setupProductService()
		mockRepo.On("Delete", ctx, int64(3)).Return(nil).Once()
		mockCache.On("Delete", ctx, cache.ProductListKey).Return(nil).Once()

		assert.NoError(t, productService.DeleteProduct(ctx, 3))
		mockCache.AssertExpectations(t)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		productService, mockRepo, _ := setupProductService()
		mockRepo.On("Delete", ctx, int64(3)).Return(sql.ErrNoRows).Once()

		assertAppErrorCode(t, productService.DeleteProduct(ctx, 3), appErrors.ErrCodeNotFound)
	})
}

func TestListAllProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Cache Hit", func(t *testing.T) {
		// Arrange
		productService, mockRepo, mockCache := setupProductService()
		mockCache.On("Get", ctx, cache.ProductListKey, mock.Anything).Return(true, nil).Run(func(args mock.Arguments) {
			dest := args.Get(2).(*[]*models.Product)
			*dest = []*models.Product{{ID: 1}}
		}).Once()

		// Act
		products, err := productService.ListAllProducts(ctx)

		// Assert
		require.NoError(t, err)
		assert.Len(t, products, 1)
		mockRepo.AssertNotCalled(t, "ListAll", mock.Anything)
	})

	t.Run("Success - Cache Miss", func(t *testing.T) {
		// Arrange
		productService, mockRepo, mockCache := setupProductService()
		stored := []*models.Product{{ID: 1}, {ID: 2}}
		mockCache.On("Get", ctx, cache.ProductListKey, mock.Anything).Return(false, nil).Once()
		mockRepo.On("ListAll", ctx).Return(stored, nil).Once()
		mockCache.On("Set", ctx, cache.ProductListKey, stored, cacheTTL).Return(nil).Once()

		// Act
		products, err := productService.ListAllProducts(ctx)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, stored, products)
		mockCache.AssertExpectations(t)
	})

	t.Run("Success - Cache Failure Falls Back", func(t *testing.T) {
		productService, mockRepo, mockCache := setupProductService()
		mockCache.On("Get", ctx, cache.ProductListKey, mock.Anything).Return(false, errors.New("redis down")).Once()
		mockRepo.On("ListAll", ctx).Return([]*models.Product{}, nil).Once()
		mockCache.On("Set", ctx, cache.ProductListKey, mock.Anything, cacheTTL).Return(errors.New("redis down")).Once()

		products, err := productService.ListAllProducts(ctx)

		require.NoError(t, err)
		assert.Empty(t, products)
	})
}

func TestListProducts(t *testing.T) {
	ctx := context.Background()
	productService, mockRepo, _ := setupProductService()
	mockRepo.On("List", ctx, 2, 10).Return([]*models.Product{{ID: 11}}, 11, nil).Once()

	products, total, err := productService.ListProducts(ctx, 2, 10)

	require.NoError(t, err)
	assert.Equal(t, 11, total)
	assert.Len(t, products, 1)
}

func TestRecordSent(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		productService, mockRepo, mockCache := setupProductService()
		mockRepo.On("TouchLastSent", ctx, []int64{1, 2}, at).Return(nil).Once()
		mockCache.On("Delete", ctx, cache.ProductListKey).Return(nil).Once()

		assert.NoError(t, productService.RecordSent(ctx, []int64{1, 2}, at))
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		productService, mockRepo, _ := setupProductService()
		mockRepo.On("TouchLastSent", ctx, []int64{1}, at).Return(errors.New("boom")).Once()

		assertAppErrorCode(t, productService.RecordSent(ctx, []int64{1}, at), appErrors.ErrCodeDatabaseError)
	})
}
