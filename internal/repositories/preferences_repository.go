package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/nppdeals/inventory-platform/internal/models"
	"github.com/redis/go-redis/v9"
)

const preferencesKeyPrefix = "preferences:"

type PreferencesRepository interface {
	// GetPreferences reports found=false when the user never saved any.
	GetPreferences(ctx context.Context, userID uuid.UUID) (*models.Preferences, bool, error)
	SavePreferences(ctx context.Context, userID uuid.UUID, prefs *models.Preferences) error
}

type preferencesRepository struct {
	client *redis.Client
}

func NewPreferencesRepo(client *redis.Client) PreferencesRepository {
	return &preferencesRepository{client: client}
}

func preferencesKey(userID uuid.UUID) string {
	return preferencesKeyPrefix + userID.String()
}

func (r *preferencesRepository) GetPreferences(ctx context.Context, userID uuid.UUID) (*models.Preferences, bool, error) {

	data, err := r.client.Get(ctx, preferencesKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("failed to load preferences: %w", err)
	}

	prefs := &models.Preferences{}
	if err := json.Unmarshal(data, prefs); err != nil {
		return nil, false, fmt.Errorf("failed to decode preferences: %w", err)
	}

	return prefs, true, nil
}

// SavePreferences stores prefs without expiry.
func (r *preferencesRepository) SavePreferences(ctx context.Context, userID uuid.UUID, prefs *models.Preferences) error {

	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	if err := r.client.Set(ctx, preferencesKey(userID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	return nil
}
