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

type ProductHandler struct {
	productService service.ProductService
	catalogService service.CatalogService
}

func NewProductHandler(productService service.ProductService, catalogService service.CatalogService) *ProductHandler {
	return &ProductHandler{productService: productService, catalogService: catalogService}
}

// decodeProduct reads a JSON object of product fields. Field names and
// value types are checked against the field catalog.
func decodeProduct(r *http.Request) (*models.Product, error) {
	body, err := utils.ReadBody(r)
	if err != nil {
		return nil, errors.BadRequestError("Invalid request body").WithDetail(err.Error())
	}

	patch, err := models.ParsePatch(body)
	if err != nil {
		return nil, errors.ValidationError("Invalid product fields").WithDetail(err.Error())
	}

	product := &models.Product{}
	patch.ApplyTo(product)

	return product, nil
}

// CreateProduct godoc
//
//	@Summary		Create a product
//	@Description	Creates a product. Title defaults to "Untitled" and offer date to now.
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Param			product	body		models.Product			true	"Product fields"
//	@Success		201		{object}	models.Product			"Product created"
//	@Failure		400		{object}	response.ErrorResponse	"Invalid product fields"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/products [post]
func (h *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		_, logger, ok := requireClaims(w, r, "product creation")
		if !ok {
			return
		}

		product, err := decodeProduct(r)
		if err != nil {
			logger.Warn("Invalid create product input", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		created, err := h.productService.CreateProduct(r.Context(), product)
		if err != nil {
			logger.Error("Failed to create product", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product created successfully", slog.Int64("productId", created.ID))
		response.Success(w, http.StatusCreated, created)
	}
}

// GetProduct godoc
//
//	@Summary	Get a product by ID
//	@Tags		Products
//	@Produce	json
//	@Param		id	path		int						true	"Product ID"
//	@Success	200	{object}	models.Product			"Product"
//	@Failure	400	{object}	response.ErrorResponse	"Invalid product ID"
//	@Failure	404	{object}	response.ErrorResponse	"Product not found"
//	@Security	BearerAuth
//	@Router		/products/{id} [get]
func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		_, logger, ok := requireClaims(w, r, "product access")
		if !ok {
			return
		}

		id, err := utils.PathID(r)
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, errors.BadRequestError("Invalid product ID").WithDetail(err.Error()))
			return
		}

		product, err := h.productService.GetProductByID(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to get product", slog.Int64("productId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

// ReplaceProduct godoc
//
//	@Summary		Replace a product
//	@Description	Overwrites every field. Fields left out of the body are cleared.
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Product ID"
//	@Param			product	body		models.Product			true	"Product fields"
//	@Success		200		{object}	models.Product			"Product replaced"
//	@Failure		400		{object}	response.ErrorResponse	"Invalid product fields"
//	@Failure		404		{object}	response.ErrorResponse	"Product not found"
//	@Security		BearerAuth
//	@Router			/products/{id} [put]
func (h *ProductHandler) ReplaceProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		_, logger, ok := requireClaims(w, r, "product update")
		if !ok {
			return
		}

		id, err := utils.PathID(r)
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid product ID").WithDetail(err.Error()))
			return
		}

		product, err := decodeProduct(r)
		if err != nil {
			logger.Warn("Invalid replace product input", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		replaced, err := h.productService.ReplaceProduct(r.Context(), id, product)
		if err != nil {
			logger.Error("Failed to replace product", slog.Int64("productId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product replaced successfully", slog.Int64("productId", id))
		response.Success(w, http.StatusOK, replaced)
	}
}

// PatchProduct godoc
//
//	@Summary		Update product fields
//	@Description	Writes only the fields present in the body. A JSON null clears a field.
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Product ID"
//	@Param			patch	body		object					true	"Fields to change"
//	@Success		200		{object}	models.Product			"Updated product"
//	@Failure		400		{object}	response.ErrorResponse	"Invalid product fields"
//	@Failure		404		{object}	response.ErrorResponse	"Product not found"
//	@Security		BearerAuth
//	@Router			/products/{id} [patch]
func (h *ProductHandler) PatchProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		_, logger, ok := requireClaims(w, r, "product update")
		if !ok {
			return
		}

		id, err := utils.PathID(r)
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid product ID").WithDetail(err.Error()))
			return
		}

		body, err := utils.ReadBody(r)
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid request body").WithDetail(err.Error()))
			return
		}

		patch, err := models.ParsePatch(body)
		if err != nil {
			logger.Warn("Invalid product patch", slog.String("error", err.Error()))
			response.Error(w, errors.ValidationError("Invalid product fields").WithDetail(err.Error()))
			return
		}

		product, err := h.productService.PatchProduct(r.Context(), id, patch)
		if err != nil {
			logger.Error("Failed to update product", slog.Int64("productId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product updated successfully", slog.Int64("productId", id), slog.Int("fields", len(patch)))
		response.Success(w, http.StatusOK, product)
	}
}

// DeleteProduct godoc
//
//	@Summary	Delete a product
//	@Tags		Products
//	@Param		id	path	int	true	"Product ID"
//	@Success	204	"Product deleted"
//	@Failure	404	{object}	response.ErrorResponse	"Product not found"
//	@Security	BearerAuth
//	@Router		/products/{id} [delete]
func (h *ProductHandler) DeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		_, logger, ok := requireClaims(w, r, "product deletion")
		if !ok {
			return
		}

		id, err := utils.PathID(r)
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid product ID").WithDetail(err.Error()))
			return
		}

		if err := h.productService.DeleteProduct(r.Context(), id); err != nil {
			logger.Error("Failed to delete product", slog.Int64("productId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product deleted", slog.Int64("productId", id))
		w.WriteHeader(http.StatusNoContent)
	}
}

// MarkOutOfStock godoc
//
//	@Summary	Mark a product out of stock
//	@Tags		Products
//	@Produce	json
//	@Param		id	path		int						true	"Product ID"
//	@Success	200	{object}	models.Product			"Updated product"
//	@Failure	404	{object}	response.ErrorResponse	"Product not found"
//	@Security	BearerAuth
//	@Router		/products/{id}/out-of-stock [post]
func (h *ProductHandler) MarkOutOfStock() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		_, logger, ok := requireClaims(w, r, "stock update")
		if !ok {
			return
		}

		id, err := utils.PathID(r)
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid product ID").WithDetail(err.Error()))
			return
		}

		product, err := h.productService.MarkOutOfStock(r.Context(), id)
		if err != nil {
			logger.Error("Failed to mark product out of stock", slog.Int64("productId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product marked out of stock", slog.Int64("productId", id))
		response.Success(w, http.StatusOK, product)
	}
}

// ListProducts godoc
//
//	@Summary	List products with pagination
//	@Tags		Products
//	@Produce	json
//	@Param		page		query		int													false	"Page number (default: 1)"				minimum(1)
//	@Param		pageSize	query		int													false	"Items per page (default: 50, max: 500)"	minimum(1)	maximum(500)
//	@Success	200			{object}	models.PaginatedResponse{Data=[]models.Product}	"Products, newest offer first"
//	@Security	BearerAuth
//	@Router		/products [get]
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		_, logger, ok := requireClaims(w, r, "product listing")
		if !ok {
			return
		}

		page := utils.QueryInt(r, "page", 1)
		pageSize := utils.QueryInt(r, "pageSize", 50)
		if pageSize > 500 {
			pageSize = 500
		}

		products, total, err := h.productService.ListProducts(r.Context(), page, pageSize)
		if err != nil {
			logger.Error("Failed to fetch products", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     products,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}

// ListAllProducts godoc
//
//	@Summary	List every product
//	@Tags		Products
//	@Produce	json
//	@Success	200	{array}	models.Product	"All products"
//	@Security	BearerAuth
//	@Router		/products/all [get]
func (h *ProductHandler) ListAllProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		_, logger, ok := requireClaims(w, r, "product listing")
		if !ok {
			return
		}

		products, err := h.productService.ListAllProducts(r.Context())
		if err != nil {
			logger.Error("Failed to fetch products", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, products)
	}
}

// SearchProducts godoc
//
//	@Summary	Search products
//	@Description	Case-insensitive match on title, category, ASIN and UPC.
//	@Tags		Products
//	@Produce	json
//	@Param		query	query	string	true	"Search text"
//	@Success	200	{array}	models.Product	"Matching products"
//	@Failure	400	{object}	response.ErrorResponse	"Missing query"
//	@Security	BearerAuth
//	@Router		/products/search [get]
func (h *ProductHandler) SearchProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		_, logger, ok := requireClaims(w, r, "product search")
		if !ok {
			return
		}

		query := r.URL.Query().Get("query")
		if query == "" {
			response.Error(w, errors.ValidationError("Search query is required"))
			return
		}

		products, err := h.productService.SearchProducts(r.Context(), query)
		if err != nil {
			logger.Error("Failed to search products", slog.String("query", query), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, products)
	}
}

// ProductView godoc
//
//	@Summary		Filtered and sorted product view
//	@Description	Applies the admin grid filters and sort, returning rows with deal cost, dimensions, expiration status and summary statistics.
//	@Tags			Products
//	@Produce		json
//	@Param			q				query		string	false	"Text search on title, ASIN and UPC"
//	@Param			categories		query		string	false	"Comma separated categories"
//	@Param			fob				query		string	false	"Comma separated FOB ports"
//	@Param			marketplaces	query		string	false	"Comma separated marketplaces (amazon, walmart, ebay)"
//	@Param			stock			query		string	false	"all, in_stock, out_of_stock or available"
//	@Param			deal_min		query		number	false	"Minimum deal cost"
//	@Param			deal_max		query		number	false	"Maximum deal cost"
//	@Param			sort			query		string	false	"Sort mode (default newest)"
//	@Success		200				{object}	catalog.View
//	@Failure		400				{object}	response.ErrorResponse	"Invalid filter or sort"
//	@Security		BearerAuth
//	@Router			/products/view [get]
func (h *ProductHandler) ProductView() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		_, logger, ok := requireClaims(w, r, "product view")
		if !ok {
			return
		}

		view, err := h.catalogService.View(r.Context(), r.URL.Query())
		if err != nil {
			logger.Warn("Failed to compute product view", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}
