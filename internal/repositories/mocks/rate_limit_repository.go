package mocks

import (
	"context"

	"github.com/nppdeals/inventory-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

// RateLimitRepository is a mock type for the RateLimitRepository type
type RateLimitRepository struct {
	mock.Mock
}

func (_m *RateLimitRepository) AllowLogin(ctx context.Context, username string) (models.LoginDecision, error) {
	ret := _m.Called(ctx, username)

	return ret.Get(0).(models.LoginDecision), ret.Error(1)
}
