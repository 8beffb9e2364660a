package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	service "github.com/nppdeals/inventory-platform/internal/services"
	"github.com/nppdeals/inventory-platform/internal/utils"
	"github.com/nppdeals/inventory-platform/internal/utils/response"
)

type ExportHandler struct {
	exportService service.ExportService
	validator     *validator.Validate
}

func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService, validator: validator.New()}
}

// ExportProducts godoc
//
//	@Summary		Export selected products
//	@Description	Writes the selected products as CSV or XLSX. Columns default to the caller's visible columns; timestamps use the caller's timezone.
//	@Tags			Export
//	@Accept			json
//	@Produce		text/csv
//	@Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Param			request	body		service.ExportRequest	true	"Selection, columns and format"
//	@Success		200		{file}		file					"Spreadsheet attachment"
//	@Failure		400		{object}	response.ErrorResponse	"Empty selection or unknown column"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/products/export [post]
func (h *ExportHandler) ExportProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, logger, ok := requireClaims(w, r, "export")
		if !ok {
			return
		}

		var req service.ExportRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		file, err := h.exportService.Export(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Warn("Export failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		w.Header().Set("Content-Type", file.ContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
		w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
		w.WriteHeader(http.StatusOK)

		if _, err := w.Write(file.Data); err != nil {
			logger.Warn("Failed to write export", slog.Any("error", err))
			return
		}

		logger.Info("Products exported",
			slog.String("filename", file.Filename),
			slog.Int("ids", len(req.IDs)),
			slog.Int("bytes", len(file.Data)),
		)
	}
}
