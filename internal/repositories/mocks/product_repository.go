package mocks

import (
	"context"
	"time"

	"github.com/nppdeals/inventory-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

// ProductRepository is a mock type for the ProductRepository type
type ProductRepository struct {
	mock.Mock
}

func productsResult(ret mock.Arguments) ([]*models.Product, error) {
	var products []*models.Product
	if v := ret.Get(0); v != nil {
		products = v.([]*models.Product)
	}

	return products, ret.Error(1)
}

func productResult(ret mock.Arguments) (*models.Product, error) {
	var product *models.Product
	if v := ret.Get(0); v != nil {
		product = v.(*models.Product)
	}

	return product, ret.Error(1)
}

func (_m *ProductRepository) ListAll(ctx context.Context) ([]*models.Product, error) {
	return productsResult(_m.Called(ctx))
}

func (_m *ProductRepository) List(ctx context.Context, page int, size int) ([]*models.Product, int, error) {
	ret := _m.Called(ctx, page, size)

	var products []*models.Product
	if v := ret.Get(0); v != nil {
		products = v.([]*models.Product)
	}

	return products, ret.Int(1), ret.Error(2)
}

func (_m *ProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	return productResult(_m.Called(ctx, id))
}

func (_m *ProductRepository) GetByIDs(ctx context.Context, ids []int64) ([]*models.Product, error) {
	return productsResult(_m.Called(ctx, ids))
}

func (_m *ProductRepository) FindByASIN(ctx context.Context, asin string) (*models.Product, error) {
	return productResult(_m.Called(ctx, asin))
}

func (_m *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	return _m.Called(ctx, product).Error(0)
}

func (_m *ProductRepository) Replace(ctx context.Context, product *models.Product) error {
	return _m.Called(ctx, product).Error(0)
}

func (_m *ProductRepository) Patch(ctx context.Context, id int64, patch models.ProductPatch) (*models.Product, error) {
	return productResult(_m.Called(ctx, id, patch))
}

func (_m *ProductRepository) Delete(ctx context.Context, id int64) error {
	return _m.Called(ctx, id).Error(0)
}

func (_m *ProductRepository) MarkOutOfStock(ctx context.Context, id int64) (*models.Product, error) {
	return productResult(_m.Called(ctx, id))
}

func (_m *ProductRepository) Search(ctx context.Context, query string) ([]*models.Product, error) {
	return productsResult(_m.Called(ctx, query))
}

func (_m *ProductRepository) TouchLastSent(ctx context.Context, ids []int64, at time.Time) error {
	return _m.Called(ctx, ids, at).Error(0)
}
