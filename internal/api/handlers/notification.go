package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/nppdeals/inventory-platform/internal/errors"
	"github.com/nppdeals/inventory-platform/internal/models"
	service "github.com/nppdeals/inventory-platform/internal/services"
	"github.com/nppdeals/inventory-platform/internal/utils"
	"github.com/nppdeals/inventory-platform/internal/utils/response"
)

type NotificationHandler struct {
	notificationService service.NotificationService
	validator           *validator.Validate
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		validator:           validator.New(),
	}
}

// SendProductEmail godoc
//
//	@Summary		Email a single product
//	@Description	Sends the product draft to the configured recipients and stamps last_sent on success.
//	@Tags			Notifications
//	@Produce		json
//	@Param			id	path		int							true	"Product ID"
//	@Success		201	{object}	models.NotificationResponse	"Email sent"
//	@Failure		400	{object}	response.ErrorResponse		"Invalid product ID"
//	@Failure		404	{object}	response.ErrorResponse		"Product not found"
//	@Failure		500	{object}	response.ErrorResponse		"Email provider failure"
//	@Security		BearerAuth
//	@Router			/products/{id}/send-email [post]
func (h *NotificationHandler) SendProductEmail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		_, logger, ok := requireClaims(w, r, "product email")
		if !ok {
			return
		}

		id, err := utils.PathID(r)
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid product ID").WithDetail(err.Error()))
			return
		}

		resp, err := h.notificationService.SendProductEmail(r.Context(), id)
		if err != nil {
			logger.Error("Failed to send product email", slog.Int64("productId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product email sent", slog.Int64("productId", id), slog.String("notificationId", resp.ID.String()))
		response.Success(w, http.StatusCreated, resp)
	}
}

// SendGroupEmail godoc
//
//	@Summary	Email a group of products
//	@Tags		Notifications
//	@Accept		json
//	@Produce	json
//	@Param		request	body		models.GroupEmailRequest	true	"Products to include"
//	@Success	201		{object}	models.NotificationResponse	"Email sent"
//	@Failure	400		{object}	response.ErrorResponse		"Invalid request"
//	@Failure	404		{object}	response.ErrorResponse		"Product not found"
//	@Failure	500		{object}	response.ErrorResponse		"Email provider failure"
//	@Security	BearerAuth
//	@Router		/products/send-group-email [post]
func (h *NotificationHandler) SendGroupEmail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		_, logger, ok := requireClaims(w, r, "group email")
		if !ok {
			return
		}

		var req models.GroupEmailRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.notificationService.SendGroupEmail(r.Context(), req.ProductIDs)
		if err != nil {
			logger.Error("Failed to send group email", slog.Int("products", len(req.ProductIDs)), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Group email sent", slog.Int("products", len(req.ProductIDs)), slog.String("notificationId", resp.ID.String()))
		response.Success(w, http.StatusCreated, resp)
	}
}

// ListNotifications godoc
//
//	@Summary	List sent email drafts
//	@Tags		Notifications
//	@Produce	json
//	@Param		page		query		int														false	"Page number (default: 1)"				minimum(1)
//	@Param		pageSize	query		int														false	"Items per page (default: 10, max: 100)"	minimum(1)	maximum(100)
//	@Success	200			{object}	models.PaginatedResponse{Data=[]models.Notification}	"Notifications"
//	@Security	BearerAuth
//	@Router		/notifications [get]
func (h *NotificationHandler) ListNotifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		_, logger, ok := requireClaims(w, r, "notification listing")
		if !ok {
			return
		}

		page := utils.QueryInt(r, "page", 1)
		pageSize := utils.QueryInt(r, "pageSize", 10)
		if pageSize > 100 {
			pageSize = 10
		}

		notifications, total, err := h.notificationService.ListNotifications(r.Context(), page, pageSize)
		if err != nil {
			logger.Error("Failed to fetch notifications", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     notifications,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}
