package mocks

import (
	"context"
	"net/url"

	"github.com/nppdeals/inventory-platform/internal/catalog"
	"github.com/stretchr/testify/mock"
)

// CatalogService is a mock type for the CatalogService type
type CatalogService struct {
	mock.Mock
}

func (_m *CatalogService) View(ctx context.Context, query url.Values) (catalog.View, error) {
	ret := _m.Called(ctx, query)

	return ret.Get(0).(catalog.View), ret.Error(1)
}

func (_m *CatalogService) PublicCatalog(ctx context.Context, query url.Values) (catalog.View, error) {
	ret := _m.Called(ctx, query)

	return ret.Get(0).(catalog.View), ret.Error(1)
}

func (_m *CatalogService) FilterOptions(ctx context.Context) (catalog.FilterOptions, error) {
	ret := _m.Called(ctx)

	return ret.Get(0).(catalog.FilterOptions), ret.Error(1)
}

func (_m *CatalogService) Quote(ctx context.Context, req *catalog.QuoteRequest) (catalog.Quote, error) {
	ret := _m.Called(ctx, req)

	return ret.Get(0).(catalog.Quote), ret.Error(1)
}

func (_m *CatalogService) VendorReport(ctx context.Context) ([]catalog.VendorPerformance, error) {
	ret := _m.Called(ctx)

	var report []catalog.VendorPerformance
	if v := ret.Get(0); v != nil {
		report = v.([]catalog.VendorPerformance)
	}

	return report, ret.Error(1)
}
