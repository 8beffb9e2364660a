package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/nppdeals/inventory-platform/internal/errors"
	"github.com/nppdeals/inventory-platform/internal/export"
	"github.com/nppdeals/inventory-platform/internal/models"
	repository "github.com/nppdeals/inventory-platform/internal/repositories"
)

type PreferencesService interface {
	GetPreferences(ctx context.Context, userID uuid.UUID) (*models.Preferences, error)
	SavePreferences(ctx context.Context, userID uuid.UUID, prefs *models.Preferences) (*models.Preferences, error)
}

type preferencesService struct {
	repo     repository.PreferencesRepository
	defaults models.Preferences
	validate *validator.Validate
}

// NewPreferencesService fills missing settings from the built-in defaults,
// using timezone as the default display zone.
func NewPreferencesService(repo repository.PreferencesRepository, timezone string) PreferencesService {
	defaults := models.DefaultPreferences()
	defaults.Timezone = timezone

	return &preferencesService{repo: repo, defaults: defaults, validate: validator.New()}
}

func (s *preferencesService) GetPreferences(ctx context.Context, userID uuid.UUID) (*models.Preferences, error) {

	stored, found, err := s.repo.GetPreferences(ctx, userID)
	if err != nil {
		return nil, errors.ThirdPartyError("Failed to load preferences").WithError(err)
	}

	prefs := s.defaults
	if found {
		prefs = stored.Merge(s.defaults)
	}

	return &prefs, nil
}

// SavePreferences stores prefs after dropping column keys the export
// catalog does not know.
func (s *preferencesService) SavePreferences(ctx context.Context, userID uuid.UUID, prefs *models.Preferences) (*models.Preferences, error) {

	if err := s.validate.Struct(prefs); err != nil {
		return nil, errors.ValidationError("Invalid preferences").WithError(err)
	}

	known := map[string]bool{}
	for _, key := range export.ColumnKeys() {
		known[key] = true
	}

	visibility := make(map[string]bool, len(prefs.ColumnVisibility))
	for key, visible := range prefs.ColumnVisibility {
		if known[key] {
			visibility[key] = visible
		}
	}
	prefs.ColumnVisibility = visibility

	if err := s.repo.SavePreferences(ctx, userID, prefs); err != nil {
		return nil, errors.ThirdPartyError("Failed to save preferences").WithError(err)
	}

	merged := prefs.Merge(s.defaults)

	return &merged, nil
}
