// Package catalog computes the filtered, sorted and summarised views of the
// product collection used by the admin grid and the public catalog.
package catalog

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nppdeals/inventory-platform/internal/models"
	"github.com/shopspring/decimal"
)

// LowStockThreshold is the exclusive upper bound for the low stock count.
const LowStockThreshold = 5

type StockFilter string

const (
	StockAll StockFilter = "all"
	StockIn  StockFilter = "in_stock"
	StockOut StockFilter = "out_of_stock"
	// StockAvailable is the public catalog rule: listed and units on hand.
	StockAvailable StockFilter = "available"
)

type SortMode string

const (
	SortNewest    SortMode = "newest"
	SortOldest    SortMode = "oldest"
	SortPriceAsc  SortMode = "price_asc"
	SortPriceDesc SortMode = "price_desc"
	SortDealAsc   SortMode = "deal_asc"
	SortDealDesc  SortMode = "deal_desc"
	SortMOQAsc    SortMode = "moq_asc"
	SortMOQDesc   SortMode = "moq_desc"
)

var sortModes = map[SortMode]bool{
	SortNewest: true, SortOldest: true,
	SortPriceAsc: true, SortPriceDesc: true,
	SortDealAsc: true, SortDealDesc: true,
	SortMOQAsc: true, SortMOQDesc: true,
}

func (m SortMode) Valid() bool {
	return sortModes[m]
}

// Toggles maps an option to its on/off state. With nothing switched on the
// toggle set does not restrict anything.
type Toggles map[string]bool

func NewToggles(values ...string) Toggles {
	t := make(Toggles, len(values))
	for _, v := range values {
		t[v] = true
	}

	return t
}

func (t Toggles) active() bool {
	for _, on := range t {
		if on {
			return true
		}
	}

	return false
}

// allows reports whether value passes the toggle set.
func (t Toggles) allows(value string) bool {
	if !t.active() {
		return true
	}

	return t[value]
}

// Range is an inclusive decimal interval. A nil bound is open.
type Range struct {
	Min *decimal.Decimal `json:"min,omitempty"`
	Max *decimal.Decimal `json:"max,omitempty"`
}

func (r Range) contains(v decimal.Decimal) bool {
	if r.Min != nil && v.LessThan(*r.Min) {
		return false
	}
	if r.Max != nil && v.GreaterThan(*r.Max) {
		return false
	}

	return true
}

type Filter struct {
	// TextQuery matches title, ASIN or UPC, case-insensitively.
	TextQuery    string
	Categories   Toggles
	FOBPorts     Toggles
	Marketplaces Toggles
	Brands       Toggles
	Materials    Toggles
	Colors       Toggles
	RoomTypes    Toggles
	Styles       Toggles
	Conditions   Toggles
	Stock        StockFilter
	DealCost     Range
	Price        Range
}

type Row struct {
	*models.Product
	Deal       decimal.NullDecimal `json:"deal_cost"`
	Dims       string              `json:"dimensions,omitempty"`
	Expiration ExpirationStatus    `json:"expiration_status,omitempty"`
}

type Stats struct {
	TotalProducts int             `json:"total_products"`
	TotalUnits    int64           `json:"total_units"`
	TotalValue    decimal.Decimal `json:"total_value"`
	AveragePrice  decimal.Decimal `json:"average_price"`
	Categories    int             `json:"categories"`
	Vendors       int             `json:"vendors"`
	LowStock      int             `json:"low_stock"`
}

type View struct {
	Rows  []Row `json:"rows"`
	Stats Stats `json:"stats"`
}

type Engine struct {
	now func() time.Time
}

type Option func(*Engine)

// WithClock replaces the wall clock used for expiration status.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// ComputeView returns the visible rows in sort order plus statistics over
// them. The input slice and its products are never modified.
func (e *Engine) ComputeView(products []*models.Product, f Filter, mode SortMode) (View, error) {
	if mode == "" {
		mode = SortNewest
	}
	if !mode.Valid() {
		return View{}, fmt.Errorf("unknown sort mode %q", mode)
	}

	if f.Stock == "" {
		f.Stock = StockAll
	}

	switch f.Stock {
	case StockAll, StockIn, StockOut, StockAvailable:
	default:
		return View{}, fmt.Errorf("unknown stock filter %q", f.Stock)
	}

	query := strings.ToLower(strings.TrimSpace(f.TextQuery))
	rows := make([]Row, 0, len(products))

	for _, p := range products {
		if p == nil || !f.matches(p, query) {
			continue
		}

		rows = append(rows, e.row(p))
	}

	sortRows(rows, mode)

	return View{Rows: rows, Stats: computeStats(rows)}, nil
}

func (e *Engine) row(p *models.Product) Row {
	r := Row{Product: p, Dims: p.Dimensions(), Expiration: e.ExpirationStatus(p.ExpDate)}

	if deal, ok := p.DealCost(); ok {
		r.Deal = decimal.NewNullDecimal(deal)
	}

	return r
}

func (f *Filter) matches(p *models.Product, query string) bool {
	if query != "" && !containsFold(query, p.Title, p.ASIN, p.UPC) {
		return false
	}

	if !f.Categories.allows(p.Category) ||
		!f.FOBPorts.allows(p.FOB) ||
		!f.Brands.allows(p.Brand) ||
		!f.Materials.allows(p.Material) ||
		!f.Colors.allows(p.Color) ||
		!f.RoomTypes.allows(p.RoomType) ||
		!f.Styles.allows(p.Style) ||
		!f.Conditions.allows(p.Condition) {
		return false
	}

	if f.Marketplaces.active() && !f.anyMarketplace(p) {
		return false
	}

	switch f.Stock {
	case StockIn:
		if p.OutOfStock {
			return false
		}
	case StockOut:
		if !p.OutOfStock {
			return false
		}
	case StockAvailable:
		if p.OutOfStock || p.QtyOrZero() <= 0 {
			return false
		}
	}

	// Listings without a computable deal cost are never hidden by the range.
	if deal, ok := p.DealCost(); ok && !f.DealCost.contains(deal) {
		return false
	}

	if (f.Price.Min != nil || f.Price.Max != nil) && !f.Price.contains(p.PriceOrZero()) {
		return false
	}

	return true
}

func (f *Filter) anyMarketplace(p *models.Product) bool {
	for marketplace, on := range f.Marketplaces {
		if on && strings.TrimSpace(p.MarketplaceURL(marketplace)) != "" {
			return true
		}
	}

	return false
}

func containsFold(query string, fields ...string) bool {
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}

	return false
}

var epoch = time.Unix(0, 0).UTC()

func offerTime(r Row) time.Time {
	if r.OfferDate == nil {
		return epoch
	}

	return *r.OfferDate
}

func dealOrZero(r Row) decimal.Decimal {
	if !r.Deal.Valid {
		return decimal.Zero
	}

	return r.Deal.Decimal
}

func sortRows(rows []Row, mode SortMode) {
	var less func(a, b Row) bool

	switch mode {
	case SortNewest:
		less = func(a, b Row) bool { return offerTime(a).After(offerTime(b)) }
	case SortOldest:
		less = func(a, b Row) bool { return offerTime(a).Before(offerTime(b)) }
	case SortPriceAsc:
		less = func(a, b Row) bool { return a.PriceOrZero().LessThan(b.PriceOrZero()) }
	case SortPriceDesc:
		less = func(a, b Row) bool { return a.PriceOrZero().GreaterThan(b.PriceOrZero()) }
	case SortDealAsc:
		less = func(a, b Row) bool { return dealOrZero(a).LessThan(dealOrZero(b)) }
	case SortDealDesc:
		less = func(a, b Row) bool { return dealOrZero(a).GreaterThan(dealOrZero(b)) }
	case SortMOQAsc:
		less = func(a, b Row) bool { return a.MOQOrZero() < b.MOQOrZero() }
	case SortMOQDesc:
		less = func(a, b Row) bool { return a.MOQOrZero() > b.MOQOrZero() }
	}

	sort.SliceStable(rows, func(i, j int) bool { return less(rows[i], rows[j]) })
}

func computeStats(rows []Row) Stats {
	stats := Stats{TotalProducts: len(rows), TotalValue: decimal.Zero, AveragePrice: decimal.Zero}

	categories := map[string]struct{}{}
	vendors := map[string]struct{}{}

	for _, r := range rows {
		qty := r.QtyOrZero()

		stats.TotalUnits += qty
		stats.TotalValue = stats.TotalValue.Add(r.PriceOrZero().Mul(decimal.NewFromInt(qty)))

		if qty > 0 && qty < LowStockThreshold {
			stats.LowStock++
		}
		if c := strings.TrimSpace(r.Category); c != "" {
			categories[c] = struct{}{}
		}
		if v := strings.TrimSpace(r.Vendor); v != "" {
			vendors[v] = struct{}{}
		}
	}

	// Weighted by units, not a mean of listed prices.
	if stats.TotalUnits > 0 {
		stats.AveragePrice = stats.TotalValue.Div(decimal.NewFromInt(stats.TotalUnits))
	}

	stats.Categories = len(categories)
	stats.Vendors = len(vendors)

	return stats
}
