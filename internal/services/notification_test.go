package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	appErrors "github.com/nppdeals/inventory-platform/internal/errors"
	"github.com/nppdeals/inventory-platform/internal/models"
	repoMocks "github.com/nppdeals/inventory-platform/internal/repositories/mocks"
	service "github.com/nppdeals/inventory-platform/internal/services"
	"github.com/nppdeals/inventory-platform/internal/services/mocks"
	"github.com/nppdeals/inventory-platform/pkg/sendgrid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockEmailService struct {
	mock.Mock
}

func (m *mockEmailService) Send(ctx context.Context, msg *sendgrid.Message) error {
	return m.Called(ctx, msg).Error(0)
}

var draftRecipients = []string{"deals@example.com", "ops@example.com"}

func setupNotificationService(recipients []string) (service.NotificationService, *repoMocks.NotificationRepository, *mocks.ProductService, *mockEmailService) {
	mockRepo := new(repoMocks.NotificationRepository)
	mockProducts := new(mocks.ProductService)
	mockEmail := new(mockEmailService)

	return service.NewNotificationService(mockRepo, mockProducts, mockEmail, recipients), mockRepo, mockProducts, mockEmail
}

func TestNotificationService_SendProductEmail(t *testing.T) {
	ctx := context.Background()
	desk := &models.Product{
		ID:        7,
		Title:     "Oak Desk",
		Price:     decimal.NewNullDecimal(decimal.RequireFromString("149.5")),
		AmazonURL: "https://amazon.com/dp/B0DESK",
	}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		svc, mockRepo, mockProducts, mockEmail := setupNotificationService(draftRecipients)
		mockProducts.On("GetProductByID", ctx, int64(7)).Return(desk, nil).Once()
		mockRepo.On("CreateNotification", ctx, mock.MatchedBy(func(n *models.Notification) bool {
			return n.Type == models.NotificationTypeProductEmail &&
				n.Status == models.StatusPending &&
				n.Subject == "Oak Desk" &&
				n.Recipient == "deals@example.com,ops@example.com"
		})).Return(nil).Once()
		mockEmail.On("Send", ctx, mock.MatchedBy(func(m *sendgrid.Message) bool {
			return m.Subject == "Oak Desk" && len(m.To) == 2 && assert.ObjectsAreEqual(draftRecipients, m.To)
		})).Return(nil).Once()
		mockRepo.On("UpdateNotificationStatus", ctx, mock.Anything, models.StatusSent, "", mock.AnythingOfType("*time.Time")).Return(nil).Once()
		mockProducts.On("RecordSent", ctx, []int64{7}, mock.AnythingOfType("time.Time")).Return(nil).Once()

		// Act
		resp, err := svc.SendProductEmail(ctx, 7)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.StatusSent, resp.Status)
		assert.NotNil(t, resp.SentAt)
		mockRepo.AssertExpectations(t)
		mockProducts.AssertExpectations(t)
		mockEmail.AssertExpectations(t)
	})

	t.Run("Failure - Delivery Error", func(t *testing.T) {
		// Arrange
		svc, mockRepo, mockProducts, mockEmail := setupNotificationService(draftRecipients)
		mockProducts.On("GetProductByID", ctx, int64(7)).Return(desk, nil).Once()
		mockRepo.On("CreateNotification", ctx, mock.Anything).Return(nil).Once()
		mockEmail.On("Send", ctx, mock.Anything).Return(errors.New("sendgrid returned status 401")).Once()
		mockRepo.On("UpdateNotificationStatus", ctx, mock.Anything, models.StatusFailed, "sendgrid returned status 401", (*time.Time)(nil)).Return(nil).Once()

		// Act
		resp, err := svc.SendProductEmail(ctx, 7)

		// Assert
		assert.Nil(t, resp)
		assertAppErrorCode(t, err, appErrors.ErrCodeThirdPartyError)
		mockProducts.AssertNotCalled(t, "RecordSent", mock.Anything, mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Product Not Found", func(t *testing.T) {
		svc, _, mockProducts, mockEmail := setupNotificationService(draftRecipients)
		mockProducts.On("GetProductByID", ctx, int64(8)).Return(nil, appErrors.NotFoundError("Product not found")).Once()

		_, err := svc.SendProductEmail(ctx, 8)

		assert.True(t, appErrors.IsNotFound(err))
		mockEmail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("Failure - No Recipients", func(t *testing.T) {
		svc, mockRepo, mockProducts, _ := setupNotificationService(nil)
		mockProducts.On("GetProductByID", ctx, int64(7)).Return(desk, nil).Once()

		_, err := svc.SendProductEmail(ctx, 7)

		assertAppErrorCode(t, err, appErrors.ErrCodeInternal)
		mockRepo.AssertNotCalled(t, "CreateNotification", mock.Anything, mock.Anything)
	})
}

func TestNotificationService_SendGroupEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Subject counts products", func(t *testing.T) {
		// Arrange
		svc, mockRepo, mockProducts, mockEmail := setupNotificationService(draftRecipients)
		mockProducts.On("GetProductsByIDs", ctx, []int64{1, 2}).Return([]*models.Product{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}}, nil).Once()
		mockRepo.On("CreateNotification", ctx, mock.MatchedBy(func(n *models.Notification) bool {
			return n.Type == models.NotificationTypeGroupEmail && len(n.ProductIDs) == 2
		})).Return(nil).Once()
		mockEmail.On("Send", ctx, mock.MatchedBy(func(m *sendgrid.Message) bool {
			return m.Subject == "Group Deal: 2 Products Available!"
		})).Return(nil).Once()
		mockRepo.On("UpdateNotificationStatus", ctx, mock.Anything, models.StatusSent, "", mock.Anything).Return(nil).Once()
		mockProducts.On("RecordSent", ctx, []int64{1, 2}, mock.Anything).Return(nil).Once()

		// Act
		resp, err := svc.SendGroupEmail(ctx, []int64{2, 1, 2})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Group Deal: 2 Products Available!", resp.Subject)
		mockEmail.AssertExpectations(t)
	})

	t.Run("Failure - Missing Product", func(t *testing.T) {
		svc, _, mockProducts, _ := setupNotificationService(draftRecipients)
		mockProducts.On("GetProductsByIDs", ctx, []int64{1, 3}).Return([]*models.Product{{ID: 1}}, nil).Once()

		_, err := svc.SendGroupEmail(ctx, []int64{1, 3})

		require.True(t, appErrors.IsNotFound(err))
		appErr, _ := appErrors.IsAppError(err)
		assert.Equal(t, "3", appErr.Detail)
	})

	t.Run("Failure - Empty Selection", func(t *testing.T) {
		svc, _, _, _ := setupNotificationService(draftRecipients)

		_, err := svc.SendGroupEmail(ctx, nil)

		assertAppErrorCode(t, err, appErrors.ErrCodeValidation)
	})
}

func TestNotificationService_ListNotifications(t *testing.T) {
	ctx := context.Background()
	svc, mockRepo, _, _ := setupNotificationService(draftRecipients)
	mockRepo.On("ListNotifications", ctx, 1, 10).Return([]*models.Notification{{Subject: "Oak Desk"}}, 1, nil).Once()

	notifications, total, err := svc.ListNotifications(ctx, 0, 0)

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, notifications, 1)
}
