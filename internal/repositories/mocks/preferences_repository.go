package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/nppdeals/inventory-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

// PreferencesRepository is a mock type for the PreferencesRepository type
type PreferencesRepository struct {
	mock.Mock
}

func (_m *PreferencesRepository) GetPreferences(ctx context.Context, userID uuid.UUID) (*models.Preferences, bool, error) {
	ret := _m.Called(ctx, userID)

	var prefs *models.Preferences
	if v := ret.Get(0); v != nil {
		prefs = v.(*models.Preferences)
	}

	return prefs, ret.Bool(1), ret.Error(2)
}

func (_m *PreferencesRepository) SavePreferences(ctx context.Context, userID uuid.UUID, prefs *models.Preferences) error {
	return _m.Called(ctx, userID, prefs).Error(0)
}
