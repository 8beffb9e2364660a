package catalog_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/nppdeals/inventory-platform/internal/catalog"
	"github.com/nppdeals/inventory-platform/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuote(t *testing.T) {
	products := map[int64]*models.Product{
		1: {ID: 1, Title: "Mesh Office Chair", ASIN: "B0CHAIR", Price: price("1250"), MOQ: int64Ptr(2)},
		2: {ID: 2, Title: "", Price: price("19.99"), MOQ: int64Ptr(10)},
	}

	t.Run("Success - Multiple lines", func(t *testing.T) {
		// Act
		quote, err := catalog.BuildQuote(products, []catalog.QuoteLine{
			{ProductID: 1, Qty: 4},
			{ProductID: 2},
			{ProductID: 99, Qty: 1},
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Invoice Request: 2 Product(s) [B0CHAIR]", quote.Subject)
		assert.Contains(t, quote.Body, "• Mesh Office Chair\n  ASIN: B0CHAIR | Price: $1250 | Qty: 4 | Total: $5,000.00")
		assert.Contains(t, quote.Body, "• Untitled\n  ASIN: N/A | Price: $19.99 | Qty: 10 | Total: $199.90")
		assert.True(t, strings.HasPrefix(quote.Body, "Hi NPP Office Furniture Team,"))
		assert.True(t, decimal.RequireFromString("5199.9").Equal(quote.Total))

		parsed, err := url.Parse(quote.MailTo)
		require.NoError(t, err)
		assert.Equal(t, "mailto", parsed.Scheme)
		assert.Equal(t, catalog.SalesAddress, parsed.Opaque)
		assert.NotContains(t, quote.MailTo, "+")
		assert.Equal(t, quote.Subject, parsed.Query().Get("subject"))
		assert.Equal(t, quote.Body, parsed.Query().Get("body"))
	})

	t.Run("Failure - No known products", func(t *testing.T) {
		_, err := catalog.BuildQuote(products, []catalog.QuoteLine{{ProductID: 42}})

		assert.Error(t, err)
	})
}

func TestMOQOptions(t *testing.T) {
	cases := []struct {
		name     string
		product  *models.Product
		expected []int64
	}{
		{name: "Exact multiples", product: &models.Product{MOQ: int64Ptr(5), Qty: int64Ptr(15)}, expected: []int64{5, 10, 15}},
		{name: "Remainder adds all units", product: &models.Product{MOQ: int64Ptr(4), Qty: int64Ptr(10)}, expected: []int64{4, 8, 10}},
		{name: "Capped at ten multiples", product: &models.Product{MOQ: int64Ptr(1), Qty: int64Ptr(50)}, expected: []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
		{name: "Nothing available falls back to MOQ", product: &models.Product{MOQ: int64Ptr(6)}, expected: []int64{6}},
		{name: "Missing MOQ counts as one", product: &models.Product{Qty: int64Ptr(2)}, expected: []int64{1, 2}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, catalog.MOQOptions(tc.product))
		})
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "0.00", catalog.FormatMoney(decimal.Zero))
	assert.Equal(t, "999.50", catalog.FormatMoney(decimal.RequireFromString("999.5")))
	assert.Equal(t, "1,234,567.89", catalog.FormatMoney(decimal.RequireFromString("1234567.891")))
	assert.Equal(t, "-12,000.00", catalog.FormatMoney(decimal.NewFromInt(-12000)))
}
