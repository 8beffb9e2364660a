package repository_test

import (
	"encoding/json"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/nppdeals/inventory-platform/internal/models"
	repository "github.com/nppdeals/inventory-platform/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferencesRepository(t *testing.T) {
	ctx := t.Context()
	userID := uuid.New()
	key := "preferences:" + userID.String()

	t.Run("Success - Saved preferences", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		prefs := models.Preferences{Theme: models.ThemeDark, PageSize: 25}
		data, err := json.Marshal(prefs)
		require.NoError(t, err)
		mock.ExpectGet(key).SetVal(string(data))

		repo := repository.NewPreferencesRepo(client)

		// Act
		got, found, err := repo.GetPreferences(ctx, userID)

		// Assert
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, models.ThemeDark, got.Theme)
		assert.Equal(t, 25, got.PageSize)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Nothing saved", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectGet(key).RedisNil()

		got, found, err := repository.NewPreferencesRepo(client).GetPreferences(ctx, userID)

		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, got)
	})

	t.Run("Success - Save", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		prefs := &models.Preferences{Theme: models.ThemeLight, TextScale: 1.25}
		data, err := json.Marshal(prefs)
		require.NoError(t, err)
		mock.ExpectSet(key, data, 0).SetVal("OK")

		// Act
		err = repository.NewPreferencesRepo(client).SavePreferences(ctx, userID, prefs)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
