package catalog

import (
	"sort"
	"strings"

	"github.com/nppdeals/inventory-platform/internal/models"
	"github.com/shopspring/decimal"
)

// FilterOptions lists the distinct values offered by the catalog sidebar.
type FilterOptions struct {
	Categories   []string   `json:"categories"`
	FOBLocations []string   `json:"fob_locations"`
	Brands       []string   `json:"brands"`
	Materials    []string   `json:"materials"`
	Colors       []string   `json:"colors"`
	RoomTypes    []string   `json:"room_types"`
	Styles       []string   `json:"styles"`
	Conditions   []string   `json:"conditions"`
	PriceRange   PriceRange `json:"price_range"`
}

type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

func BuildFilterOptions(products []*models.Product) FilterOptions {
	sets := map[string]map[string]struct{}{}
	add := func(group, value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		if sets[group] == nil {
			sets[group] = map[string]struct{}{}
		}
		sets[group][value] = struct{}{}
	}

	var (
		minPrice, maxPrice decimal.Decimal
		seenPrice          bool
	)

	for _, p := range products {
		if p == nil {
			continue
		}

		add("category", p.Category)
		add("fob", p.FOB)
		add("brand", p.Brand)
		add("material", p.Material)
		add("color", p.Color)
		add("room_type", p.RoomType)
		add("style", p.Style)
		add("condition", p.Condition)

		if !p.Price.Valid {
			continue
		}

		if !seenPrice || p.Price.Decimal.LessThan(minPrice) {
			minPrice = p.Price.Decimal
		}
		if !seenPrice || p.Price.Decimal.GreaterThan(maxPrice) {
			maxPrice = p.Price.Decimal
		}
		seenPrice = true
	}

	return FilterOptions{
		Categories:   sorted(sets["category"]),
		FOBLocations: sorted(sets["fob"]),
		Brands:       sorted(sets["brand"]),
		Materials:    sorted(sets["material"]),
		Colors:       sorted(sets["color"]),
		RoomTypes:    sorted(sets["room_type"]),
		Styles:       sorted(sets["style"]),
		Conditions:   sorted(sets["condition"]),
		PriceRange:   PriceRange{Min: minPrice, Max: maxPrice},
	}
}

func sorted(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}

	sort.Strings(out)

	return out
}
