package mocks

import (
	"context"
	"time"

	"github.com/nppdeals/inventory-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

// ProductService is a mock type for the ProductService type
type ProductService struct {
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

func (_m *ProductService) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	return productResult(_m.Called(ctx, product))
}

func (_m *ProductService) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	return productResult(_m.Called(ctx, id))
}

func (_m *ProductService) GetProductsByIDs(ctx context.Context, ids []int64) ([]*models.Product, error) {
	return productsResult(_m.Called(ctx, ids))
}

func (_m *ProductService) ReplaceProduct(ctx context.Context, id int64, product *models.Product) (*models.Product, error) {
	return productResult(_m.Called(ctx, id, product))
}

func (_m *ProductService) PatchProduct(ctx context.Context, id int64, patch models.ProductPatch) (*models.Product, error) {
	return productResult(_m.Called(ctx, id, patch))
}

func (_m *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	return _m.Called(ctx, id).Error(0)
}

func (_m *ProductService) MarkOutOfStock(ctx context.Context, id int64) (*models.Product, error) {
	return productResult(_m.Called(ctx, id))
}

func (_m *ProductService) ListProducts(ctx context.Context, page, pageSize int) ([]*models.Product, int, error) {
	ret := _m.Called(ctx, page, pageSize)

	var products []*models.Product
	if v := ret.Get(0); v != nil {
		products = v.([]*models.Product)
	}

	return products, ret.Int(1), ret.Error(2)
}

func (_m *ProductService) ListAllProducts(ctx context.Context) ([]*models.Product, error) {
	return productsResult(_m.Called(ctx))
}

func (_m *ProductService) SearchProducts(ctx context.Context, query string) ([]*models.Product, error) {
	return productsResult(_m.Called(ctx, query))
}

func (_m *ProductService) RecordSent(ctx context.Context, ids []int64, at time.Time) error {
	return _m.Called(ctx, ids, at).Error(0)
}
