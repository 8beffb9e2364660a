package catalog_test

import (
	"net/url"
	"testing"

	"github.com/nppdeals/inventory-platform/internal/catalog"
	"github.com/nppdeals/inventory-platform/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterFromQuery(t *testing.T) {
	t.Run("Success - Parses comma separated options", func(t *testing.T) {
		// Arrange
		q := url.Values{
			"q":            {"desk"},
			"categories":   {"Office Products, Baby"},
			"marketplaces": {"Amazon,eBay"},
			"stock":        {"in_stock"},
			"deal_min":     {"100"},
			"sort":         {"price_desc"},
		}

		// Act
		f, mode, err := catalog.FilterFromQuery(q)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "desk", f.TextQuery)
		assert.Equal(t, catalog.NewToggles("Office Products", "Baby"), f.Categories)
		assert.Equal(t, catalog.NewToggles("amazon", "ebay"), f.Marketplaces)
		assert.Equal(t, catalog.StockIn, f.Stock)
		require.NotNil(t, f.DealCost.Min)
		assert.Equal(t, "100", f.DealCost.Min.String())
		assert.Nil(t, f.DealCost.Max)
		assert.Equal(t, catalog.SortPriceDesc, mode)
	})

	t.Run("Defaults to newest", func(t *testing.T) {
		f, mode, err := catalog.FilterFromQuery(url.Values{})

		require.NoError(t, err)
		assert.Equal(t, catalog.SortNewest, mode)
		assert.Nil(t, f.Categories)
	})

	t.Run("Failure - Bad inputs", func(t *testing.T) {
		for _, q := range []url.Values{
			{"sort": {"random"}},
			{"deal_min": {"cheap"}},
			{"price_min": {"10"}, "price_max": {"5"}},
		} {
			_, _, err := catalog.FilterFromQuery(q)
			assert.Error(t, err, q.Encode())
		}
	})
}

func TestBuildFilterOptions(t *testing.T) {
	// Arrange
	products := []*models.Product{
		{Category: "Office Products", FOB: "FOB NJ", Brand: "Herman", Price: price("120")},
		{Category: "Baby", FOB: "FOB NJ", Material: "Oak", Price: price("15.5")},
		{Category: "Office Products", FOB: "FOB LA", Color: " Black "},
	}

	// Act
	opts := catalog.BuildFilterOptions(products)

	// Assert
	assert.Equal(t, []string{"Baby", "Office Products"}, opts.Categories)
	assert.Equal(t, []string{"FOB LA", "FOB NJ"}, opts.FOBLocations)
	assert.Equal(t, []string{"Herman"}, opts.Brands)
	assert.Equal(t, []string{"Black"}, opts.Colors)
	assert.Empty(t, opts.Styles)
	assert.Equal(t, "15.5", opts.PriceRange.Min.String())
	assert.Equal(t, "120", opts.PriceRange.Max.String())
}
