package service

import (
	"context"
	"net/url"

	"github.com/nppdeals/inventory-platform/internal/catalog"
	"github.com/nppdeals/inventory-platform/internal/errors"
	"github.com/nppdeals/inventory-platform/internal/models"
)

// CatalogService serves the derived views over the product collection.
type CatalogService interface {
	View(ctx context.Context, query url.Values) (catalog.View, error)
	PublicCatalog(ctx context.Context, query url.Values) (catalog.View, error)
	FilterOptions(ctx context.Context) (catalog.FilterOptions, error)
	Quote(ctx context.Context, req *catalog.QuoteRequest) (catalog.Quote, error)
	VendorReport(ctx context.Context) ([]catalog.VendorPerformance, error)
}

type catalogService struct {
	products ProductService
	engine   *catalog.Engine
}

func NewCatalogService(products ProductService, engine *catalog.Engine) CatalogService {
	return &catalogService{products: products, engine: engine}
}

func (s *catalogService) View(ctx context.Context, query url.Values) (catalog.View, error) {

	filter, mode, err := catalog.FilterFromQuery(query)
	if err != nil {
		return catalog.View{}, errors.ValidationError("Invalid view parameters").WithDetail(err.Error())
	}

	return s.compute(ctx, filter, mode)
}

// PublicCatalog only ever shows products that can be ordered.
func (s *catalogService) PublicCatalog(ctx context.Context, query url.Values) (catalog.View, error) {

	filter, mode, err := catalog.FilterFromQuery(query)
	if err != nil {
		return catalog.View{}, errors.ValidationError("Invalid catalog parameters").WithDetail(err.Error())
	}

	filter.Stock = catalog.StockAvailable

	return s.compute(ctx, filter, mode)
}

func (s *catalogService) compute(ctx context.Context, filter catalog.Filter, mode catalog.SortMode) (catalog.View, error) {

	products, err := s.products.ListAllProducts(ctx)
	if err != nil {
		return catalog.View{}, err
	}

	view, err := s.engine.ComputeView(products, filter, mode)
	if err != nil {
		return catalog.View{}, errors.ValidationError("Invalid view parameters").WithDetail(err.Error())
	}

	return view, nil
}

// FilterOptions lists the values offered by the public catalog filters.
func (s *catalogService) FilterOptions(ctx context.Context) (catalog.FilterOptions, error) {

	view, err := s.compute(ctx, catalog.Filter{Stock: catalog.StockAvailable}, catalog.SortNewest)
	if err != nil {
		return catalog.FilterOptions{}, err
	}

	products := make([]*models.Product, 0, len(view.Rows))
	for _, r := range view.Rows {
		products = append(products, r.Product)
	}

	return catalog.BuildFilterOptions(products), nil
}

func (s *catalogService) Quote(ctx context.Context, req *catalog.QuoteRequest) (catalog.Quote, error) {

	ids := make([]int64, 0, len(req.Lines))
	for _, line := range req.Lines {
		ids = append(ids, line.ProductID)
	}

	found, err := s.products.GetProductsByIDs(ctx, ids)
	if err != nil {
		return catalog.Quote{}, err
	}

	byID := make(map[int64]*models.Product, len(found))
	for _, p := range found {
		if !p.OutOfStock {
			byID[p.ID] = p
		}
	}

	quote, err := catalog.BuildQuote(byID, req.Lines)
	if err != nil {
		return catalog.Quote{}, errors.ValidationError("Invalid quote request").WithDetail(err.Error())
	}

	return quote, nil
}

func (s *catalogService) VendorReport(ctx context.Context) ([]catalog.VendorPerformance, error) {

	products, err := s.products.ListAllProducts(ctx)
	if err != nil {
		return nil, err
	}

	return catalog.VendorReport(products), nil
}
