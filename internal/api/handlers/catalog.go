package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/nppdeals/inventory-platform/internal/api/middleware"
	"github.com/nppdeals/inventory-platform/internal/catalog"
	service "github.com/nppdeals/inventory-platform/internal/services"
	"github.com/nppdeals/inventory-platform/internal/utils"
	"github.com/nppdeals/inventory-platform/internal/utils/response"
)

// CatalogHandler serves the customer-facing catalog. Only VendorPerformance
// requires a signed-in admin.
type CatalogHandler struct {
	catalogService service.CatalogService
	validator      *validator.Validate
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, validator: validator.New()}
}

// PublicCatalog godoc
//
//	@Summary		Browse the public catalog
//	@Description	Same filters and sort modes as the admin view, restricted to available products.
//	@Tags			Catalog
//	@Produce		json
//	@Param			q				query		string	false	"Text search on title, ASIN and UPC"
//	@Param			categories		query		string	false	"Comma separated categories"
//	@Param			fob				query		string	false	"Comma separated FOB ports"
//	@Param			marketplaces	query		string	false	"Comma separated marketplaces"
//	@Param			deal_min		query		number	false	"Minimum deal cost"
//	@Param			deal_max		query		number	false	"Maximum deal cost"
//	@Param			sort			query		string	false	"Sort mode"
//	@Success		200				{object}	catalog.View
//	@Failure		400				{object}	response.ErrorResponse	"Invalid filter or sort"
//	@Router			/catalog [get]
func (h *CatalogHandler) PublicCatalog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		view, err := h.catalogService.PublicCatalog(r.Context(), r.URL.Query())
		if err != nil {
			logger.Warn("Failed to compute catalog", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// FilterOptions godoc
//
//	@Summary	Catalog filter options
//	@Tags		Catalog
//	@Produce	json
//	@Success	200	{object}	catalog.FilterOptions
//	@Router		/catalog/filters [get]
func (h *CatalogHandler) FilterOptions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		options, err := h.catalogService.FilterOptions(r.Context())
		if err != nil {
			logger.Error("Failed to build filter options", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, options)
	}
}

// Quote godoc
//
//	@Summary		Build a quote request
//	@Description	Renders the quote email for the requested products and quantities. A zero quantity uses the MOQ.
//	@Tags			Catalog
//	@Accept			json
//	@Produce		json
//	@Param			request	body		catalog.QuoteRequest	true	"Quote lines"
//	@Success		200		{object}	catalog.Quote
//	@Failure		400		{object}	response.ErrorResponse	"Invalid request"
//	@Router			/catalog/quote [post]
func (h *CatalogHandler) Quote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req catalog.QuoteRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		quote, err := h.catalogService.Quote(r.Context(), &req)
		if err != nil {
			logger.Warn("Failed to build quote", slog.Int("lines", len(req.Lines)), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Quote built", slog.Int("lines", len(req.Lines)))
		response.Success(w, http.StatusOK, quote)
	}
}

// VendorPerformance godoc
//
//	@Summary	Vendor performance report
//	@Tags		Catalog
//	@Produce	json
//	@Success	200	{array}		catalog.VendorPerformance
//	@Failure	401	{object}	response.ErrorResponse	"Authentication required"
//	@Security	BearerAuth
//	@Router		/vendors/performance [get]
func (h *CatalogHandler) VendorPerformance() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		_, logger, ok := requireClaims(w, r, "vendor report")
		if !ok {
			return
		}

		report, err := h.catalogService.VendorReport(r.Context())
		if err != nil {
			logger.Error("Failed to build vendor report", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, report)
	}
}
