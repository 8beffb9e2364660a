package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/nppdeals/inventory-platform/internal/api/handlers"
	"github.com/nppdeals/inventory-platform/internal/catalog"
	appErrors "github.com/nppdeals/inventory-platform/internal/errors"
	"github.com/nppdeals/inventory-platform/internal/services/mocks"
	"github.com/nppdeals/inventory-platform/internal/testutils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPublicCatalog(t *testing.T) {
	t.Run("Success - No Authentication Needed", func(t *testing.T) {
		// Arrange
		catalogService := new(mocks.CatalogService)
		handler := handlers.NewCatalogHandler(catalogService)
		catalogService.On("PublicCatalog", mock.Anything, mock.MatchedBy(func(q url.Values) bool {
			return q.Get("categories") == "Office Products"
		})).Return(catalog.View{Stats: catalog.Stats{TotalProducts: 3}}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/catalog?categories=Office+Products", nil, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.PublicCatalog().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var view catalog.View
		testutils.DecodeResponse(t, rr, &view)
		assert.Equal(t, 3, view.Stats.TotalProducts)
		catalogService.AssertExpectations(t)
	})

	t.Run("Failure - Invalid Range", func(t *testing.T) {
		// Arrange
		catalogService := new(mocks.CatalogService)
		handler := handlers.NewCatalogHandler(catalogService)
		catalogService.On("PublicCatalog", mock.Anything, mock.Anything).Return(catalog.View{}, appErrors.ValidationError("Invalid view query")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/catalog?deal_min=abc", nil, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.PublicCatalog().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Success - Filter Options", func(t *testing.T) {
		// Arrange
		catalogService := new(mocks.CatalogService)
		handler := handlers.NewCatalogHandler(catalogService)
		catalogService.On("FilterOptions", mock.Anything).Return(catalog.FilterOptions{Categories: []string{"Furniture"}}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/catalog/filters", nil, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.FilterOptions().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var options catalog.FilterOptions
		testutils.DecodeResponse(t, rr, &options)
		assert.Equal(t, []string{"Furniture"}, options.Categories)
	})
}

func TestQuote(t *testing.T) {
	t.Run("Success - Quote Built", func(t *testing.T) {
		// Arrange
		catalogService := new(mocks.CatalogService)
		handler := handlers.NewCatalogHandler(catalogService)

		quote := catalog.Quote{Subject: "Quote Request", MailTo: "mailto:" + catalog.SalesAddress, Total: decimal.RequireFromString("250")}
		catalogService.On("Quote", mock.Anything, mock.MatchedBy(func(req *catalog.QuoteRequest) bool {
			return len(req.Lines) == 1 && req.Lines[0].ProductID == 4 && req.Lines[0].Qty == 10
		})).Return(quote, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/catalog/quote", strings.NewReader(`{"lines":[{"product_id":4,"qty":10}]}`), nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Quote().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var got catalog.Quote
		testutils.DecodeResponse(t, rr, &got)
		assert.Equal(t, "Quote Request", got.Subject)
		assert.True(t, got.Total.Equal(decimal.RequireFromString("250")))
		catalogService.AssertExpectations(t)
	})

	t.Run("Failure - No Lines", func(t *testing.T) {
		// Arrange
		catalogService := new(mocks.CatalogService)
		handler := handlers.NewCatalogHandler(catalogService)

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/catalog/quote", strings.NewReader(`{"lines":[]}`), nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Quote().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		catalogService.AssertNotCalled(t, "Quote", mock.Anything, mock.Anything)
	})
}

func TestVendorPerformance(t *testing.T) {
	t.Run("Success - Report Returned", func(t *testing.T) {
		// Arrange
		catalogService := new(mocks.CatalogService)
		handler := handlers.NewCatalogHandler(catalogService)
		report := []catalog.VendorPerformance{{Vendor: "Acme", TotalProducts: 2, ActiveProducts: 1, ActiveRate: 50}}
		catalogService.On("VendorReport", mock.Anything).Return(report, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/vendors/performance", nil, uuid.New(), nil)
		rr := httptest.NewRecorder()

		// Act
		handler.VendorPerformance().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var got []catalog.VendorPerformance
		testutils.DecodeResponse(t, rr, &got)
		require.Len(t, got, 1)
		assert.Equal(t, "Acme", got[0].Vendor)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		// Arrange
		catalogService := new(mocks.CatalogService)
		handler := handlers.NewCatalogHandler(catalogService)

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/vendors/performance", nil, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.VendorPerformance().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		catalogService.AssertNotCalled(t, "VendorReport", mock.Anything)
	})
}
