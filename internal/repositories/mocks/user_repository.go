package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/nppdeals/inventory-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

// UserRepository is a mock type for the UserRepository type
type UserRepository struct {
	mock.Mock
}

func (_m *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return _m.Called(ctx, user).Error(0)
}

func (_m *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	ret := _m.Called(ctx, username)

	var user *models.User
	if v := ret.Get(0); v != nil {
		user = v.(*models.User)
	}

	return user, ret.Error(1)
}

func (_m *UserRepository) GetUserById(ctx context.Context, id uuid.UUID) (*models.User, error) {
	ret := _m.Called(ctx, id)

	var user *models.User
	if v := ret.Get(0); v != nil {
		user = v.(*models.User)
	}

	return user, ret.Error(1)
}
