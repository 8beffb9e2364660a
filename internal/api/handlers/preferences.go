package handlers

import (
	"log/slog"
	"net/http"

	"github.com/nppdeals/inventory-platform/internal/errors"
	"github.com/nppdeals/inventory-platform/internal/models"
	service "github.com/nppdeals/inventory-platform/internal/services"
	"github.com/nppdeals/inventory-platform/internal/utils"
	"github.com/nppdeals/inventory-platform/internal/utils/response"
)

type PreferencesHandler struct {
	preferencesService service.PreferencesService
}

func NewPreferencesHandler(preferencesService service.PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{preferencesService: preferencesService}
}

// GetPreferences godoc
//
//	@Summary	Get display preferences
//	@Tags		Preferences
//	@Produce	json
//	@Success	200	{object}	models.Preferences
//	@Security	BearerAuth
//	@Router		/preferences [get]
func (h *PreferencesHandler) GetPreferences() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, logger, ok := requireClaims(w, r, "preferences access")
		if !ok {
			return
		}

		prefs, err := h.preferencesService.GetPreferences(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to load preferences", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, prefs)
	}
}

// SavePreferences godoc
//
//	@Summary		Save display preferences
//	@Description	Unset fields keep their defaults. Unknown column keys are dropped.
//	@Tags			Preferences
//	@Accept			json
//	@Produce		json
//	@Param			preferences	body		models.Preferences		true	"Preferences"
//	@Success		200			{object}	models.Preferences		"Saved preferences"
//	@Failure		400			{object}	response.ErrorResponse	"Invalid preferences"
//	@Security		BearerAuth
//	@Router			/preferences [put]
func (h *PreferencesHandler) SavePreferences() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, logger, ok := requireClaims(w, r, "preferences update")
		if !ok {
			return
		}

		var prefs models.Preferences

		if err := utils.DecodeJSONBody(r, &prefs); err != nil {
			logger.Warn("Invalid preferences body", slog.String("error", err.Error()))
			response.Error(w, errors.BadRequestError("Invalid request body").WithDetail(err.Error()))
			return
		}

		saved, err := h.preferencesService.SavePreferences(r.Context(), claims.UserID, &prefs)
		if err != nil {
			logger.Warn("Failed to save preferences", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Preferences saved")
		response.Success(w, http.StatusOK, saved)
	}
}
