package handlers_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nppdeals/inventory-platform/internal/api/handlers"
	"github.com/nppdeals/inventory-platform/internal/bulk"
	appErrors "github.com/nppdeals/inventory-platform/internal/errors"
	"github.com/nppdeals/inventory-platform/internal/models"
	"github.com/nppdeals/inventory-platform/internal/services/mocks"
	"github.com/nppdeals/inventory-platform/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBulkEdit(t *testing.T) {
	userID := uuid.New()

	t.Run("Success - Numeric Value Accepted", func(t *testing.T) {
		// Arrange
		bulkService := new(mocks.BulkService)
		handler := handlers.NewBulkHandler(bulkService)

		result := bulk.Result{
			Succeeded: []string{"1"},
			Failed:    []bulk.Failure{{ID: "99", Kind: bulk.FailureNotFound, Message: "Product not found"}},
		}
		bulkService.On("ApplyBulkEdit", mock.Anything, userID, []string{"1", "99"}, "qty", "25").Return(result, nil).Once()

		body := `{"ids":["1","99"],"field":"qty","value":25}`
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/products/bulk/edit", strings.NewReader(body), userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.BulkEdit().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var got bulk.Result
		testutils.DecodeResponse(t, rr, &got)
		assert.Equal(t, []string{"1"}, got.Succeeded)
		require.Len(t, got.Failed, 1)
		assert.Equal(t, bulk.FailureNotFound, got.Failed[0].Kind)
		bulkService.AssertExpectations(t)
	})

	t.Run("Success - Null Value Clears", func(t *testing.T) {
		// Arrange
		bulkService := new(mocks.BulkService)
		handler := handlers.NewBulkHandler(bulkService)
		bulkService.On("ApplyBulkEdit", mock.Anything, userID, []string{"4"}, "lead_time", "").Return(bulk.Result{Succeeded: []string{"4"}}, nil).Once()

		body := `{"ids":["4"],"field":"lead_time","value":null}`
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/products/bulk/edit", strings.NewReader(body), userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.BulkEdit().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		bulkService.AssertExpectations(t)
	})

	t.Run("Failure - Field Not Editable", func(t *testing.T) {
		// Arrange
		bulkService := new(mocks.BulkService)
		handler := handlers.NewBulkHandler(bulkService)
		bulkService.On("ApplyBulkEdit", mock.Anything, userID, []string{"1"}, "title", "x").
			Return(bulk.Result{}, appErrors.ValidationError("Field is not bulk editable")).Once()

		body := `{"ids":["1"],"field":"title","value":"x"}`
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/products/bulk/edit", strings.NewReader(body), userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.BulkEdit().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		resp := testutils.DecodeResponse(t, rr, nil)
		assert.Equal(t, appErrors.ErrCodeValidation, resp.Error.Code)
	})

	t.Run("Failure - Empty Selection", func(t *testing.T) {
		// Arrange
		bulkService := new(mocks.BulkService)
		handler := handlers.NewBulkHandler(bulkService)

		body := `{"ids":[],"field":"qty","value":"1"}`
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/products/bulk/edit", strings.NewReader(body), userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.BulkEdit().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		bulkService.AssertNotCalled(t, "ApplyBulkEdit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestBulkStockAndUndo(t *testing.T) {
	userID := uuid.New()
	record := bulk.UndoRecord{
		ID:        uuid.New(),
		Operation: bulk.OpMarkOutOfStock,
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Entries:   []bulk.Snapshot{{ID: 1, OutOfStock: false}},
	}

	t.Run("Success - Stock Change Returns Record", func(t *testing.T) {
		// Arrange
		bulkService := new(mocks.BulkService)
		handler := handlers.NewBulkHandler(bulkService)
		bulkService.On("ApplyStockChange", mock.Anything, userID, []string{"1"}, true).
			Return(&record, bulk.Result{Succeeded: []string{"1"}}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/products/bulk/stock", strings.NewReader(`{"ids":["1"],"out_of_stock":true}`), userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.BulkStock().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var got handlers.BulkChangeResponse
		testutils.DecodeResponse(t, rr, &got)
		require.NotNil(t, got.Record)
		assert.Equal(t, record.ID, got.Record.ID)
		assert.Equal(t, []string{"1"}, got.Result.Succeeded)
		bulkService.AssertExpectations(t)
	})

	t.Run("Failure - Missing Target Status", func(t *testing.T) {
		// Arrange
		bulkService := new(mocks.BulkService)
		handler := handlers.NewBulkHandler(bulkService)

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/products/bulk/stock", strings.NewReader(`{"ids":["1"]}`), userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.BulkStock().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		bulkService.AssertNotCalled(t, "ApplyStockChange", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Success - Undo", func(t *testing.T) {
		// Arrange
		bulkService := new(mocks.BulkService)
		handler := handlers.NewBulkHandler(bulkService)
		bulkService.On("Undo", mock.Anything, userID).Return(record, bulk.Result{Succeeded: []string{"1"}}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/products/bulk/undo", nil, userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Undo().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		bulkService.AssertExpectations(t)
	})

	t.Run("Failure - Nothing To Undo", func(t *testing.T) {
		// Arrange
		bulkService := new(mocks.BulkService)
		handler := handlers.NewBulkHandler(bulkService)
		bulkService.On("Undo", mock.Anything, userID).Return(bulk.UndoRecord{}, bulk.Result{}, appErrors.NotFoundError("Nothing to undo")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/products/bulk/undo", nil, userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Undo().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Success - Empty History Is An Array", func(t *testing.T) {
		// Arrange
		bulkService := new(mocks.BulkService)
		handler := handlers.NewBulkHandler(bulkService)
		bulkService.On("History", userID).Return(nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/products/bulk/undo", nil, userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.History().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"data":[]`)
	})
}

func TestUpload(t *testing.T) {
	userID := uuid.New()

	multipartBody := func(t *testing.T, filename, content string) (io.Reader, string) {
		t.Helper()

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		return &buf, mw.FormDataContentType()
	}

	t.Run("Success - CSV Imported", func(t *testing.T) {
		// Arrange
		bulkService := new(mocks.BulkService)
		handler := handlers.NewBulkHandler(bulkService)

		summary := &models.ImportSummary{Inserted: 1, Updated: 2}
		bulkService.On("Upload", mock.Anything, userID, "products.csv", mock.Anything).Return(summary, nil).Once()

		body, contentType := multipartBody(t, "products.csv", "Title,ASIN\nDesk,B000\n")
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/products/upload", body, userID, nil)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		// Act
		handler.Upload().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var got models.ImportSummary
		testutils.DecodeResponse(t, rr, &got)
		assert.Equal(t, 1, got.Inserted)
		assert.Equal(t, 2, got.Updated)
		bulkService.AssertExpectations(t)
	})

	t.Run("Failure - Missing File", func(t *testing.T) {
		// Arrange
		bulkService := new(mocks.BulkService)
		handler := handlers.NewBulkHandler(bulkService)

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/products/upload", strings.NewReader("{}"), userID, nil)
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		// Act
		handler.Upload().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		bulkService.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		// Arrange
		bulkService := new(mocks.BulkService)
		handler := handlers.NewBulkHandler(bulkService)

		body, contentType := multipartBody(t, "products.csv", "Title\nDesk\n")
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/products/upload", body, nil)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		// Act
		handler.Upload().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
