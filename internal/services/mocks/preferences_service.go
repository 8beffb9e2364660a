package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/nppdeals/inventory-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

// PreferencesService is a mock type for the PreferencesService type
type PreferencesService struct {
	mock.Mock
}

func preferencesResult(ret mock.Arguments) (*models.Preferences, error) {
	var prefs *models.Preferences
	if v := ret.Get(0); v != nil {
		prefs = v.(*models.Preferences)
	}

	return prefs, ret.Error(1)
}

func (_m *PreferencesService) GetPreferences(ctx context.Context, userID uuid.UUID) (*models.Preferences, error) {
	return preferencesResult(_m.Called(ctx, userID))
}

func (_m *PreferencesService) SavePreferences(ctx context.Context, userID uuid.UUID, prefs *models.Preferences) (*models.Preferences, error) {
	return preferencesResult(_m.Called(ctx, userID, prefs))
}
