package handlers

import (
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/nppdeals/inventory-platform/internal/bulk"
	"github.com/nppdeals/inventory-platform/internal/errors"
	"github.com/nppdeals/inventory-platform/internal/models"
	service "github.com/nppdeals/inventory-platform/internal/services"
	"github.com/nppdeals/inventory-platform/internal/utils"
	"github.com/nppdeals/inventory-platform/internal/utils/response"
)

// MaxUploadBytes bounds spreadsheet uploads.
const MaxUploadBytes = 10 << 20

type BulkHandler struct {
	bulkService service.BulkService
	validator   *validator.Validate
}

func NewBulkHandler(bulkService service.BulkService) *BulkHandler {
	return &BulkHandler{bulkService: bulkService, validator: validator.New()}
}

// BulkChangeResponse pairs a batch result with the undo record it pushed.
// Record is nil when nothing changed.
type BulkChangeResponse struct {
	Record *bulk.UndoRecord `json:"record"`
	Result bulk.Result      `json:"result"`
}

// BulkEdit godoc
//
//	@Summary		Set one field on many products
//	@Description	Coerces the value for the field, then updates every selected product. Per-id failures are reported in the result.
//	@Tags			Bulk
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.BulkEditRequest	true	"Selection, field and value"
//	@Success		200		{object}	bulk.Result				"Per-id outcome"
//	@Failure		400		{object}	response.ErrorResponse	"Invalid field or value"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/products/bulk/edit [post]
func (h *BulkHandler) BulkEdit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, logger, ok := requireClaims(w, r, "bulk edit")
		if !ok {
			return
		}

		var req models.BulkEditRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		result, err := h.bulkService.ApplyBulkEdit(r.Context(), claims.UserID, req.IDs, req.Field, string(req.Value))
		if err != nil {
			logger.Warn("Bulk edit rejected", slog.String("field", req.Field), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Bulk edit applied",
			slog.String("field", req.Field),
			slog.Int("succeeded", len(result.Succeeded)),
			slog.Int("failed", len(result.Failed)),
		)
		response.Success(w, http.StatusOK, result)
	}
}

// BulkStock godoc
//
//	@Summary		Change stock status of many products
//	@Description	Marks the selection in or out of stock and pushes an undo record covering the products that changed.
//	@Tags			Bulk
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.BulkStockRequest	true	"Selection and target status"
//	@Success		200		{object}	BulkChangeResponse		"Undo record and per-id outcome"
//	@Failure		400		{object}	response.ErrorResponse	"Invalid request"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/products/bulk/stock [post]
func (h *BulkHandler) BulkStock() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, logger, ok := requireClaims(w, r, "bulk stock change")
		if !ok {
			return
		}

		var req models.BulkStockRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		record, result, err := h.bulkService.ApplyStockChange(r.Context(), claims.UserID, req.IDs, *req.OutOfStock)
		if err != nil {
			logger.Warn("Bulk stock change rejected", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Bulk stock change applied",
			slog.Bool("outOfStock", *req.OutOfStock),
			slog.Int("succeeded", len(result.Succeeded)),
			slog.Int("failed", len(result.Failed)),
		)
		response.Success(w, http.StatusOK, BulkChangeResponse{Record: record, Result: result})
	}
}

// Undo godoc
//
//	@Summary		Undo the latest stock change
//	@Description	Restores the previous stock values. The record is kept for the entries that could not be restored.
//	@Tags			Bulk
//	@Produce		json
//	@Success		200	{object}	BulkChangeResponse		"Undone record and per-id outcome"
//	@Failure		404	{object}	response.ErrorResponse	"Nothing to undo"
//	@Security		BearerAuth
//	@Router			/products/bulk/undo [post]
func (h *BulkHandler) Undo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, logger, ok := requireClaims(w, r, "undo")
		if !ok {
			return
		}

		record, result, err := h.bulkService.Undo(r.Context(), claims.UserID)
		if err != nil {
			logger.Warn("Undo failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Undo applied",
			slog.String("recordId", record.ID.String()),
			slog.Int("succeeded", len(result.Succeeded)),
			slog.Int("failed", len(result.Failed)),
		)
		response.Success(w, http.StatusOK, BulkChangeResponse{Record: &record, Result: result})
	}
}

// History godoc
//
//	@Summary	Undo history
//	@Tags		Bulk
//	@Produce	json
//	@Success	200	{array}	bulk.UndoRecord	"Records, newest first"
//	@Security	BearerAuth
//	@Router		/products/bulk/undo [get]
func (h *BulkHandler) History() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, _, ok := requireClaims(w, r, "undo history")
		if !ok {
			return
		}

		history := h.bulkService.History(claims.UserID)
		if history == nil {
			history = []bulk.UndoRecord{}
		}

		response.Success(w, http.StatusOK, history)
	}
}

// Upload godoc
//
//	@Summary		Import products from a spreadsheet
//	@Description	Accepts a .csv or .xlsx file. Rows match existing products by ID, then ASIN; unmatched rows are inserted.
//	@Tags			Bulk
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file					true	"Spreadsheet"
//	@Success		200		{object}	models.ImportSummary	"Import summary"
//	@Failure		400		{object}	response.ErrorResponse	"Invalid file"
//	@Security		BearerAuth
//	@Router			/products/upload [post]
func (h *BulkHandler) Upload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, logger, ok := requireClaims(w, r, "upload")
		if !ok {
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)

		file, header, err := r.FormFile("file")
		if err != nil {
			logger.Warn("Missing upload file", slog.String("error", err.Error()))
			response.Error(w, errors.BadRequestError("A file field is required").WithDetail(err.Error()))
			return
		}
		defer file.Close()

		filename := filepath.Base(header.Filename)

		summary, err := h.bulkService.Upload(r.Context(), claims.UserID, filename, file)
		if err != nil {
			logger.Warn("Upload failed", slog.String("filename", filename), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Upload imported",
			slog.String("filename", filename),
			slog.Int("inserted", summary.Inserted),
			slog.Int("updated", summary.Updated),
			slog.Int("skipped", summary.Skipped),
		)
		response.Success(w, http.StatusOK, summary)
	}
}
