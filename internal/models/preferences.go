package models

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Preferences are the per-user display settings injected into view and export.
type Preferences struct {
	Theme            string          `json:"theme" validate:"omitempty,oneof=light dark"`
	TextScale        float64         `json:"text_scale" validate:"omitempty,gte=0.5,lte=2"`
	ColumnVisibility map[string]bool `json:"column_visibility"`
	PageSize         int             `json:"page_size" validate:"omitempty,gte=1,lte=500"`
	Timezone         string          `json:"timezone" validate:"omitempty,timezone"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		Theme:     ThemeLight,
		TextScale: 1,
		PageSize:  50,
		ColumnVisibility: map[string]bool{
			"title":        true,
			"category":     true,
			"price":        true,
			"moq":          true,
			"qty":          true,
			"asin":         true,
			"fob":          true,
			"exp_date":     true,
			"out_of_stock": true,
		},
	}
}

// Merge fills zero-valued fields from the defaults.
func (p Preferences) Merge(defaults Preferences) Preferences {
	if p.Theme == "" {
		p.Theme = defaults.Theme
	}
	if p.TextScale == 0 {
		p.TextScale = defaults.TextScale
	}
	if p.PageSize == 0 {
		p.PageSize = defaults.PageSize
	}
	if p.Timezone == "" {
		p.Timezone = defaults.Timezone
	}
	if len(p.ColumnVisibility) == 0 {
		p.ColumnVisibility = defaults.ColumnVisibility
	}

	return p
}

// VisibleColumns returns the enabled keys in the given catalog order.
func (p Preferences) VisibleColumns(order []string) []string {
	out := make([]string, 0, len(order))
	for _, key := range order {
		if p.ColumnVisibility[key] {
			out = append(out, key)
		}
	}

	return out
}
