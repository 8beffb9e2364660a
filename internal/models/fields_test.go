package models_test

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/nppdeals/inventory-platform/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePatch(t *testing.T) {
	t.Run("Success - Typed values", func(t *testing.T) {
		// Act
		patch, err := models.ParsePatch([]byte(`{
			"price": "12.50", "moq": 6, "width": 24.5, "out_of_stock": "true",
			"offer_date": "2025-01-15", "secondary_images": ["https://a", "https://b"], "title": "  "
		}`))

		// Assert
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("12.5").Equal(patch["price"].(decimal.Decimal)))
		assert.Equal(t, int64(6), patch["moq"])
		assert.Equal(t, 24.5, patch["width"])
		assert.Equal(t, true, patch["out_of_stock"])
		assert.Equal(t, time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC), patch["offer_date"])
		assert.Equal(t, pq.StringArray{"https://a", "https://b"}, patch["secondary_images"])
		assert.Equal(t, models.DefaultTitle, patch["title"])
	})

	t.Run("Success - Null clears", func(t *testing.T) {
		patch, err := models.ParsePatch([]byte(`{"price": null, "offer_date": ""}`))

		require.NoError(t, err)
		assert.Nil(t, patch["price"])
		assert.Contains(t, patch, "price")
		assert.Nil(t, patch["offer_date"])
	})

	failures := map[string]string{
		"unknown field":     `{"colour": "red"}`,
		"id is immutable":   `{"id": 4}`,
		"negative qty":      `{"qty": -1}`,
		"fractional moq":    `{"moq": 1.5}`,
		"negative price":    `{"price": "-3"}`,
		"cleared flag":      `{"out_of_stock": null}`,
		"bad date":          `{"offer_date": "next tuesday"}`,
		"empty patch":       `{}`,
		"not an object":     `[1, 2]`,
		"text as number":    `{"title": 5}`,
		"list of numbers":   `{"secondary_images": [1]}`,
		"bool as gibberish": `{"out_of_stock": "maybe"}`,
	}

	for name, body := range failures {
		t.Run("Failure - "+name, func(t *testing.T) {
			_, err := models.ParsePatch([]byte(body))
			assert.Error(t, err)
		})
	}
}

func TestProductPatch_ApplyTo(t *testing.T) {
	// Arrange
	qty := int64(3)
	p := &models.Product{ID: 1, Title: "Old", Qty: &qty, Price: decimal.NewNullDecimal(decimal.NewFromInt(9))}
	patch, err := models.ProductPatch{"title": "New", "qty": nil, "price": "10.25", "out_of_stock": true, "height": "30"}.Normalize()
	require.NoError(t, err)

	// Act
	patch.ApplyTo(p)

	// Assert
	assert.Equal(t, "New", p.Title)
	assert.Nil(t, p.Qty)
	assert.Equal(t, "10.25", p.Price.Decimal.String())
	assert.True(t, p.OutOfStock)
	require.NotNil(t, p.Height)
	assert.Equal(t, 30.0, *p.Height)
}

func TestParseTimestamp(t *testing.T) {
	cases := map[string]time.Time{
		"2025-03-01T10:00:00Z":  time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC),
		"2025-03-01":            time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		"3/1/2025":              time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		"3/1/2025, 4:05:06 PM":  time.Date(2025, time.March, 1, 16, 5, 6, 0, time.UTC),
		" 2025-03-01 08:30:00 ": time.Date(2025, time.March, 1, 8, 30, 0, 0, time.UTC),
	}

	for in, want := range cases {
		got, err := models.ParseTimestamp(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), in)
	}

	_, err := models.ParseTimestamp("soon")
	assert.Error(t, err)
}

func TestProductDerivedValues(t *testing.T) {
	moq := int64(4)
	w, h := 24.0, 29.5
	p := &models.Product{Price: decimal.NewNullDecimal(decimal.RequireFromString("12.5")), MOQ: &moq, Width: &w, Height: &h}

	deal, ok := p.DealCost()
	assert.True(t, ok)
	assert.Equal(t, "50", deal.String())
	assert.Equal(t, `24"W x 29.5"H`, p.Dimensions())
	assert.Equal(t, models.DefaultTitle, p.DisplayTitle())

	_, ok = (&models.Product{MOQ: &moq}).DealCost()
	assert.False(t, ok, "deal cost needs a price")
}
