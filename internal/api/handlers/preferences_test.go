package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/nppdeals/inventory-platform/internal/api/handlers"
	appErrors "github.com/nppdeals/inventory-platform/internal/errors"
	"github.com/nppdeals/inventory-platform/internal/models"
	"github.com/nppdeals/inventory-platform/internal/services/mocks"
	"github.com/nppdeals/inventory-platform/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPreferences(t *testing.T) {
	userID := uuid.New()

	t.Run("Success - Defaults Returned", func(t *testing.T) {
		// Arrange
		prefsService := new(mocks.PreferencesService)
		handler := handlers.NewPreferencesHandler(prefsService)
		prefsService.On("GetPreferences", mock.Anything, userID).Return(&models.Preferences{Theme: "light", PageSize: 50, Timezone: "America/Los_Angeles"}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/preferences", nil, userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.GetPreferences().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var prefs models.Preferences
		testutils.DecodeResponse(t, rr, &prefs)
		assert.Equal(t, "America/Los_Angeles", prefs.Timezone)
	})

	t.Run("Success - Saved", func(t *testing.T) {
		// Arrange
		prefsService := new(mocks.PreferencesService)
		handler := handlers.NewPreferencesHandler(prefsService)
		prefsService.On("SavePreferences", mock.Anything, userID, mock.MatchedBy(func(p *models.Preferences) bool {
			return p.Theme == "dark" && !p.ColumnVisibility["cost"]
		})).Return(&models.Preferences{Theme: "dark"}, nil).Once()

		body := `{"theme":"dark","column_visibility":{"cost":false}}`
		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/preferences", strings.NewReader(body), userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.SavePreferences().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		prefsService.AssertExpectations(t)
	})

	t.Run("Failure - Invalid Theme", func(t *testing.T) {
		// Arrange
		prefsService := new(mocks.PreferencesService)
		handler := handlers.NewPreferencesHandler(prefsService)
		prefsService.On("SavePreferences", mock.Anything, userID, mock.Anything).Return(nil, appErrors.ValidationError("Invalid preferences")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/preferences", strings.NewReader(`{"theme":"neon"}`), userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.SavePreferences().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		// Arrange
		prefsService := new(mocks.PreferencesService)
		handler := handlers.NewPreferencesHandler(prefsService)

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/preferences", nil, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.GetPreferences().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
