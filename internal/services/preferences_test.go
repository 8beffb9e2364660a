package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	appErrors "github.com/nppdeals/inventory-platform/internal/errors"
	"github.com/nppdeals/inventory-platform/internal/models"
	"github.com/nppdeals/inventory-platform/internal/repositories/mocks"
	service "github.com/nppdeals/inventory-platform/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPreferencesService_Get(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success - Defaults When Missing", func(t *testing.T) {
		mockRepo := new(mocks.PreferencesRepository)
		svc := service.NewPreferencesService(mockRepo, "America/Chicago")
		mockRepo.On("GetPreferences", ctx, userID).Return(nil, false, nil).Once()

		prefs, err := svc.GetPreferences(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, models.ThemeLight, prefs.Theme)
		assert.Equal(t, "America/Chicago", prefs.Timezone)
		assert.True(t, prefs.ColumnVisibility["title"])
	})

	t.Run("Success - Stored Values Win", func(t *testing.T) {
		mockRepo := new(mocks.PreferencesRepository)
		svc := service.NewPreferencesService(mockRepo, "America/New_York")
		mockRepo.On("GetPreferences", ctx, userID).Return(&models.Preferences{Theme: models.ThemeDark, PageSize: 25}, true, nil).Once()

		prefs, err := svc.GetPreferences(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, models.ThemeDark, prefs.Theme)
		assert.Equal(t, 25, prefs.PageSize)
		assert.Equal(t, 1.0, prefs.TextScale)
		assert.Equal(t, "America/New_York", prefs.Timezone)
	})

	t.Run("Failure - Store Error", func(t *testing.T) {
		mockRepo := new(mocks.PreferencesRepository)
		svc := service.NewPreferencesService(mockRepo, "America/New_York")
		mockRepo.On("GetPreferences", ctx, userID).Return(nil, false, errors.New("redis down")).Once()

		_, err := svc.GetPreferences(ctx, userID)

		assertAppErrorCode(t, err, appErrors.ErrCodeThirdPartyError)
	})
}

func TestPreferencesService_Save(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success - Unknown Columns Dropped", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.PreferencesRepository)
		svc := service.NewPreferencesService(mockRepo, "America/New_York")
		mockRepo.On("SavePreferences", ctx, userID, mock.MatchedBy(func(p *models.Preferences) bool {
			_, unknown := p.ColumnVisibility["shoe_size"]
			return !unknown && p.ColumnVisibility["roi"]
		})).Return(nil).Once()

		// Act
		prefs, err := svc.SavePreferences(ctx, userID, &models.Preferences{
			Theme:            models.ThemeDark,
			ColumnVisibility: map[string]bool{"roi": true, "shoe_size": true},
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.ThemeDark, prefs.Theme)
		assert.Equal(t, 50, prefs.PageSize)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Invalid Values", func(t *testing.T) {
		mockRepo := new(mocks.PreferencesRepository)
		svc := service.NewPreferencesService(mockRepo, "America/New_York")

		_, err := svc.SavePreferences(ctx, userID, &models.Preferences{Theme: "neon", Timezone: "Mars/Olympus"})

		assertAppErrorCode(t, err, appErrors.ErrCodeValidation)
		mockRepo.AssertNotCalled(t, "SavePreferences", mock.Anything, mock.Anything, mock.Anything)
	})
}
