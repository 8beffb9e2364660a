package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nppdeals/inventory-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

// NotificationRepository is a mock type for the NotificationRepository type
type NotificationRepository struct {
	mock.Mock
}

func (_m *NotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	return _m.Called(ctx, notification).Error(0)
}

func (_m *NotificationRepository) UpdateNotificationStatus(ctx context.Context, id uuid.UUID, status models.NotificationStatus, errorMsg string, sentAt *time.Time) error {
	return _m.Called(ctx, id, status, errorMsg, sentAt).Error(0)
}

func (_m *NotificationRepository) ListNotifications(ctx context.Context, page int, size int) ([]*models.Notification, int, error) {
	ret := _m.Called(ctx, page, size)

	var list []*models.Notification
	if v := ret.Get(0); v != nil {
		list = v.([]*models.Notification)
	}

	return list, ret.Int(1), ret.Error(2)
}
