package handlers

import (
	"log/slog"
	"net/http"

	"github.com/nppdeals/inventory-platform/internal/api/middleware"
	"github.com/nppdeals/inventory-platform/internal/errors"
	"github.com/nppdeals/inventory-platform/internal/models"
	"github.com/nppdeals/inventory-platform/internal/utils/response"
)

// requireClaims writes 401 and returns false when the request carries no
// authenticated user.
func requireClaims(w http.ResponseWriter, r *http.Request, action string) (*models.Claims, *slog.Logger, bool) {
	logger := middleware.LoggerFromContext(r.Context())

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		logger.Warn("Unauthorized " + action + " attempt")
		response.Error(w, errors.UnauthorizedError("Authentication required"))
		return nil, logger, false
	}

	return claims, logger.With(slog.String("userID", claims.UserID.String())), true
}
