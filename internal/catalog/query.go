package catalog

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// FilterFromQuery reads filter and sort options from URL parameters.
// Multi-value options are comma separated, e.g. categories=Office Products,Baby.
func FilterFromQuery(q url.Values) (Filter, SortMode, error) {
	f := Filter{
		TextQuery:    q.Get("q"),
		Categories:   splitToggles(q.Get("categories")),
		FOBPorts:     splitToggles(q.Get("fob")),
		Marketplaces: splitToggles(strings.ToLower(q.Get("marketplaces"))),
		Brands:       splitToggles(q.Get("brands")),
		Materials:    splitToggles(q.Get("materials")),
		Colors:       splitToggles(q.Get("colors")),
		RoomTypes:    splitToggles(q.Get("room_types")),
		Styles:       splitToggles(q.Get("styles")),
		Conditions:   splitToggles(q.Get("conditions")),
		Stock:        StockFilter(q.Get("stock")),
	}

	var err error

	if f.DealCost, err = parseRange(q.Get("deal_min"), q.Get("deal_max")); err != nil {
		return Filter{}, "", fmt.Errorf("deal cost range: %w", err)
	}

	if f.Price, err = parseRange(q.Get("price_min"), q.Get("price_max")); err != nil {
		return Filter{}, "", fmt.Errorf("price range: %w", err)
	}

	mode := SortMode(q.Get("sort"))
	if mode == "" {
		mode = SortNewest
	}

	if !mode.Valid() {
		return Filter{}, "", fmt.Errorf("unknown sort mode %q", mode)
	}

	return f, mode, nil
}

func splitToggles(raw string) Toggles {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	t := Toggles{}
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			t[v] = true
		}
	}

	return t
}

func parseRange(minRaw, maxRaw string) (Range, error) {
	var r Range

	if s := strings.TrimSpace(minRaw); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return Range{}, fmt.Errorf("invalid minimum %q", s)
		}
		r.Min = &d
	}

	if s := strings.TrimSpace(maxRaw); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return Range{}, fmt.Errorf("invalid maximum %q", s)
		}
		r.Max = &d
	}

	if r.Min != nil && r.Max != nil && r.Min.GreaterThan(*r.Max) {
		return Range{}, fmt.Errorf("minimum exceeds maximum")
	}

	return r, nil
}
