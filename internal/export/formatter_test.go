package export_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	appErrors "github.com/nppdeals/inventory-platform/internal/errors"
	"github.com/nppdeals/inventory-platform/internal/export"
	"github.com/nppdeals/inventory-platform/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func int64Ptr(v int64) *int64 { return &v }

func money(v string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(v))
}

func sampleProducts() []*models.Product {
	offer := time.Date(2025, time.January, 15, 17, 30, 5, 0, time.UTC)

	return []*models.Product{
		{
			ID:         1,
			Title:      `Executive Desk, 60" "Walnut"`,
			Price:      money("100"),
			Cost:       money("60"),
			MOQ:        int64Ptr(5),
			Qty:        int64Ptr(20),
			ExpDate:    "6/27",
			OfferDate:  &offer,
			OutOfStock: false,
		},
		{ID: 2, Title: "Task Chair", Price: money("45.5"), OutOfStock: true},
		{ID: 3, Title: "Unselected"},
	}
}

func readCSV(t *testing.T, data []byte) [][]string {
	t.Helper()

	require.True(t, bytes.HasPrefix(data, []byte("\ufeff")), "missing byte order mark")

	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\ufeff")))).ReadAll()
	require.NoError(t, err)

	return records
}

func TestExportSelected(t *testing.T) {
	formatter := export.NewFormatter(nil)

	t.Run("Success - Labels, quoting and formatting", func(t *testing.T) {
		// Act
		data, err := formatter.ExportSelected(sampleProducts(), []string{"2", "1"},
			[]string{"title", "price", "exp_date", "out_of_stock", "offer_date", "customer_cost", "profit_per_moq", "roi"})

		// Assert
		require.NoError(t, err)
		records := readCSV(t, data)
		require.Len(t, records, 3)

		assert.Equal(t, []string{"Title", "Price", "Exp Date", "Out of Stock", "Offer Date", "Customer Cost per MOQ", "Profit per MOQ", "ROI (%)"}, records[0])
		assert.Equal(t, []string{`Executive Desk, 60" "Walnut"`, "100", "'6/27", "false", "1/15/2025, 12:30:05 PM", "500.00", "200.00", "40.00"}, records[1])
		assert.Equal(t, []string{"Task Chair", "45.5", "", "true", "", "", "", ""}, records[2])
		assert.Contains(t, string(data), "\r\n")
	})

	t.Run("Unknown and repeated columns are dropped", func(t *testing.T) {
		data, err := formatter.ExportSelected(sampleProducts(), []string{"1"}, []string{"asin", "bogus", "asin", "qty"})

		require.NoError(t, err)
		records := readCSV(t, data)
		assert.Equal(t, []string{"ASIN", "Qty"}, records[0])
		assert.Equal(t, []string{"", "20"}, records[1])
	})

	t.Run("Configured timezone is used", func(t *testing.T) {
		// Arrange
		pacific, err := export.NewFormatterForZone("America/Los_Angeles")
		require.NoError(t, err)

		// Act
		data, err := pacific.ExportSelected(sampleProducts(), []string{"1"}, []string{"offer_date"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "1/15/2025, 9:30:05 AM", readCSV(t, data)[1][0])
	})

	t.Run("Failure - Empty column selection", func(t *testing.T) {
		for _, cols := range [][]string{nil, {}, {"nope", " "}} {
			data, err := formatter.ExportSelected(sampleProducts(), []string{"1"}, cols)

			assert.Nil(t, data)
			appErr, ok := appErrors.IsAppError(err)
			require.True(t, ok)
			assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		}
	})

	t.Run("Failure - Nothing selected", func(t *testing.T) {
		_, err := formatter.ExportSelected(sampleProducts(), []string{"42"}, []string{"title"})

		assert.Error(t, err)
	})

	t.Run("Failure - Unknown timezone", func(t *testing.T) {
		_, err := export.NewFormatterForZone("Atlantis/Central")

		assert.Error(t, err)
	})
}

func TestExportSelectedXLSX(t *testing.T) {
	// Arrange
	formatter := export.NewFormatter(time.UTC)

	// Act
	data, err := formatter.Export(export.FormatXLSX, sampleProducts(), []string{"1", "2"}, []string{"id", "title", "exp_date"})

	// Assert
	require.NoError(t, err)

	book, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows("Products")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Title", "Exp Date"}, rows[0])
	assert.Equal(t, "6/27", rows[1][2])
	assert.Equal(t, "Task Chair", rows[2][1])
}

func TestColumns(t *testing.T) {
	keys := export.ColumnKeys()

	assert.Contains(t, keys, "customer_cost")
	assert.Contains(t, keys, "roi")
	assert.Equal(t, "id", keys[0])
	assert.Len(t, export.Columns(), len(models.ProductFields)+3)
}

func TestFilename(t *testing.T) {
	at := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "products_export_2025-05-01.xlsx", export.Filename(export.FormatXLSX, at))
	assert.True(t, strings.HasSuffix(export.Filename("", at), ".csv"))
}
