package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/nppdeals/inventory-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

// UserService is a mock type for the UserService type
type UserService struct {
	mock.Mock
}

func loginResult(ret mock.Arguments) (*models.LoginResponse, error) {
	var resp *models.LoginResponse
	if v := ret.Get(0); v != nil {
		resp = v.(*models.LoginResponse)
	}

	return resp, ret.Error(1)
}

func userResult(ret mock.Arguments) (*models.User, error) {
	var user *models.User
	if v := ret.Get(0); v != nil {
		user = v.(*models.User)
	}

	return user, ret.Error(1)
}

func (_m *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	return userResult(_m.Called(ctx, req))
}

func (_m *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	return loginResult(_m.Called(ctx, req))
}

func (_m *UserService) Refresh(ctx context.Context, req *models.RefreshRequest) (*models.LoginResponse, error) {
	return loginResult(_m.Called(ctx, req))
}

func (_m *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return userResult(_m.Called(ctx, id))
}
