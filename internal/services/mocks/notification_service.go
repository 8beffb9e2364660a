package mocks

import (
	"context"

	"github.com/nppdeals/inventory-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

// NotificationService is a mock type for the NotificationService type
type NotificationService struct {
	mock.Mock
}

func notificationResult(ret mock.Arguments) (*models.NotificationResponse, error) {
	var resp *models.NotificationResponse
	if v := ret.Get(0); v != nil {
		resp = v.(*models.NotificationResponse)
	}

	return resp, ret.Error(1)
}

func (_m *NotificationService) SendProductEmail(ctx context.Context, productID int64) (*models.NotificationResponse, error) {
	return notificationResult(_m.Called(ctx, productID))
}

func (_m *NotificationService) SendGroupEmail(ctx context.Context, productIDs []int64) (*models.NotificationResponse, error) {
	return notificationResult(_m.Called(ctx, productIDs))
}

func (_m *NotificationService) ListNotifications(ctx context.Context, page int, size int) ([]*models.Notification, int, error) {
	ret := _m.Called(ctx, page, size)

	var notifications []*models.Notification
	if v := ret.Get(0); v != nil {
		notifications = v.([]*models.Notification)
	}

	return notifications, ret.Int(1), ret.Error(2)
}
