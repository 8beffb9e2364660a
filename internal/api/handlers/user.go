package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/nppdeals/inventory-platform/internal/api/middleware"
	"github.com/nppdeals/inventory-platform/internal/models"
	service "github.com/nppdeals/inventory-platform/internal/services"
	"github.com/nppdeals/inventory-platform/internal/utils"
	"github.com/nppdeals/inventory-platform/internal/utils/response"
)

type UserHandler struct {
	userService service.UserService
	validator   *validator.Validate
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService, validator: validator.New()}
}

// Login godoc
//
//	@Summary		Sign in
//	@Description	Exchanges admin credentials for a bearer token. Repeated failures are rate limited per username.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		models.LoginRequest		true	"Username and password"
//	@Success		200			{object}	models.LoginResponse	"Signed in"
//	@Failure		400			{object}	response.ErrorResponse	"Invalid request body"
//	@Failure		401			{object}	models.LoginResponse	"Invalid username or password"
//	@Failure		429			{object}	models.LoginResponse	"Too many attempts"
//	@Router			/auth/login [post]
func (h *UserHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.userService.Login(r.Context(), &req)
		if err != nil {
			logger.Error("Login failed", slog.String("username", req.Username), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		if !resp.Success {
			status := http.StatusUnauthorized
			if resp.RetryAfter > 0 {
				status = http.StatusTooManyRequests
			}

			logger.Warn("Login rejected", slog.String("username", req.Username), slog.Int("status", status))
			response.WriteJson(w, status, resp)
			return
		}

		logger.Info("User logged in", slog.String("username", req.Username))
		response.Success(w, http.StatusOK, resp)
	}
}

// Refresh godoc
//
//	@Summary		Refresh a session token
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			token	body		models.RefreshRequest	true	"Current token"
//	@Success		200		{object}	models.LoginResponse	"New token"
//	@Failure		401		{object}	response.ErrorResponse	"Session expired"
//	@Router			/auth/refresh [post]
func (h *UserHandler) Refresh() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.RefreshRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.userService.Refresh(r.Context(), &req)
		if err != nil {
			logger.Warn("Token refresh rejected", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}

// Profile godoc
//
//	@Summary	Current user profile
//	@Tags		Auth
//	@Produce	json
//	@Success	200	{object}	models.User				"Signed-in user"
//	@Failure	401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure	404	{object}	response.ErrorResponse	"User not found"
//	@Security	BearerAuth
//	@Router		/users/profile [get]
func (h *UserHandler) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, logger, ok := requireClaims(w, r, "profile access")
		if !ok {
			return
		}

		user, err := h.userService.GetUserByID(r.Context(), claims.UserID)
		if err != nil {
			logger.Warn("Failed to load profile", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, user)
	}
}
