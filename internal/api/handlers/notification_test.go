package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nppdeals/inventory-platform/internal/api/handlers"
	appErrors "github.com/nppdeals/inventory-platform/internal/errors"
	"github.com/nppdeals/inventory-platform/internal/models"
	"github.com/nppdeals/inventory-platform/internal/services/mocks"
	"github.com/nppdeals/inventory-platform/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSendProductEmail(t *testing.T) {
	userID := uuid.New()

	t.Run("Success - Email Sent", func(t *testing.T) {
		// Arrange
		notificationService := new(mocks.NotificationService)
		handler := handlers.NewNotificationHandler(notificationService)

		sentAt := time.Now().UTC()
		resp := &models.NotificationResponse{ID: uuid.New(), Type: models.NotificationTypeProductEmail, Status: models.StatusSent, SentAt: &sentAt}
		notificationService.On("SendProductEmail", mock.Anything, int64(12)).Return(resp, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/products/12/send-email", nil, userID, map[string]string{"id": "12"})
		rr := httptest.NewRecorder()

		// Act
		handler.SendProductEmail().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		var got models.NotificationResponse
		testutils.DecodeResponse(t, rr, &got)
		assert.Equal(t, models.StatusSent, got.Status)
		notificationService.AssertExpectations(t)
	})

	t.Run("Failure - Provider Error", func(t *testing.T) {
		// Arrange
		notificationService := new(mocks.NotificationService)
		handler := handlers.NewNotificationHandler(notificationService)
		notificationService.On("SendProductEmail", mock.Anything, int64(12)).Return(nil, appErrors.ThirdPartyError("Failed to send email")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/products/12/send-email", nil, userID, map[string]string{"id": "12"})
		rr := httptest.NewRecorder()

		// Act
		handler.SendProductEmail().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		resp := testutils.DecodeResponse(t, rr, nil)
		assert.Equal(t, appErrors.ErrCodeThirdPartyError, resp.Error.Code)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		// Arrange
		notificationService := new(mocks.NotificationService)
		handler := handlers.NewNotificationHandler(notificationService)

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/products/12/send-email", nil, map[string]string{"id": "12"})
		rr := httptest.NewRecorder()

		// Act
		handler.SendProductEmail().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		notificationService.AssertNotCalled(t, "SendProductEmail", mock.Anything, mock.Anything)
	})
}

func TestSendGroupEmail(t *testing.T) {
	userID := uuid.New()

	t.Run("Success - Group Sent", func(t *testing.T) {
		// Arrange
		notificationService := new(mocks.NotificationService)
		handler := handlers.NewNotificationHandler(notificationService)
		notificationService.On("SendGroupEmail", mock.Anything, []int64{1, 2}).
			Return(&models.NotificationResponse{ID: uuid.New(), Type: models.NotificationTypeGroupEmail}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/products/send-group-email", strings.NewReader(`{"product_ids":[1,2]}`), userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.SendGroupEmail().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		notificationService.AssertExpectations(t)
	})

	t.Run("Failure - Non Positive ID", func(t *testing.T) {
		// Arrange
		notificationService := new(mocks.NotificationService)
		handler := handlers.NewNotificationHandler(notificationService)

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/products/send-group-email", strings.NewReader(`{"product_ids":[0]}`), userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.SendGroupEmail().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		notificationService.AssertNotCalled(t, "SendGroupEmail", mock.Anything, mock.Anything)
	})
}

func TestListNotifications(t *testing.T) {
	userID := uuid.New()

	t.Run("Success - Default Pagination", func(t *testing.T) {
		// Arrange
		notificationService := new(mocks.NotificationService)
		handler := handlers.NewNotificationHandler(notificationService)
		notifications := []*models.Notification{{ID: uuid.New(), Subject: "Desk"}}
		notificationService.On("ListNotifications", mock.Anything, 1, 10).Return(notifications, 1, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/notifications", nil, userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.ListNotifications().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		notificationService.AssertExpectations(t)
	})
}
