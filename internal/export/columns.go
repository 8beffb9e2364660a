package export

import (
	"strconv"
	"strings"
	"time"

	appErrors "github.com/nppdeals/inventory-platform/internal/errors"
	"github.com/nppdeals/inventory-platform/internal/models"
	"github.com/shopspring/decimal"
)

// DateLayout matches the en-US locale rendering used on screen.
const DateLayout = "1/2/2006, 3:04:05 PM"

// Column is one exportable field, stored or computed.
type Column struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Computed bool   `json:"computed"`

	// textPrefix is written before non-empty values in delimited text output.
	textPrefix string
	value      func(p *models.Product, loc *time.Location) string
}

var computedColumns = []Column{
	{Key: "customer_cost", Label: "Customer Cost per MOQ", Computed: true, value: customerCost},
	{Key: "profit_per_moq", Label: "Profit per MOQ", Computed: true, value: profitPerMOQ},
	{Key: "roi", Label: "ROI (%)", Computed: true, value: roi},
}

var catalog = buildCatalog()

func buildCatalog() []Column {
	cols := make([]Column, 0, len(models.ProductFields)+len(computedColumns))

	for _, f := range models.ProductFields {
		col := Column{Key: f.Key, Label: f.Label, value: storedValue(f.Key)}
		if f.Key == "exp_date" {
			col.textPrefix = "'"
		}
		cols = append(cols, col)
	}

	return append(cols, computedColumns...)
}

// Columns lists every exportable column in catalog order.
func Columns() []Column {
	out := make([]Column, len(catalog))
	copy(out, catalog)

	return out
}

// ColumnKeys lists the keys of every exportable column in catalog order.
func ColumnKeys() []string {
	keys := make([]string, 0, len(catalog))
	for _, c := range catalog {
		keys = append(keys, c.Key)
	}

	return keys
}

// ResolveColumns validates keys against the catalog, keeping the caller's
// order and dropping unknown or repeated keys. Nothing left is an error.
func ResolveColumns(keys []string) ([]Column, error) {
	byKey := make(map[string]Column, len(catalog))
	for _, c := range catalog {
		byKey[c.Key] = c
	}

	seen := map[string]bool{}
	cols := make([]Column, 0, len(keys))

	for _, k := range keys {
		k = strings.TrimSpace(k)
		c, ok := byKey[k]
		if !ok || seen[k] {
			continue
		}
		seen[k] = true
		cols = append(cols, c)
	}

	if len(cols) == 0 {
		return nil, appErrors.ValidationError("No valid columns selected for export")
	}

	return cols, nil
}

func storedValue(key string) func(*models.Product, *time.Location) string {
	return func(p *models.Product, loc *time.Location) string {
		switch key {
		case "id":
			return p.IDString()
		case "title":
			return p.Title
		case "category":
			return p.Category
		case "vendor":
			return p.Vendor
		case "vendor_id":
			return p.VendorID
		case "price":
			return nullDecimal(p.Price)
		case "cost":
			return nullDecimal(p.Cost)
		case "moq":
			return nullInt(p.MOQ)
		case "qty":
			return nullInt(p.Qty)
		case "upc":
			return p.UPC
		case "asin":
			return p.ASIN
		case "sku":
			return p.SKU
		case "lead_time":
			return p.LeadTime
		case "exp_date":
			return p.ExpDate
		case "fob":
			return p.FOB
		case "image_url":
			return p.ImageURL
		case "secondary_images":
			return strings.Join(p.SecondaryImages, ", ")
		case "amazon_url":
			return p.AmazonURL
		case "walmart_url":
			return p.WalmartURL
		case "ebay_url":
			return p.EbayURL
		case "out_of_stock":
			return strconv.FormatBool(p.OutOfStock)
		case "offer_date":
			return timestamp(p.OfferDate, loc)
		case "last_sent":
			return timestamp(p.LastSent, loc)
		case "brand":
			return p.Brand
		case "color":
			return p.Color
		case "material":
			return p.Material
		case "room_type":
			return p.RoomType
		case "style":
			return p.Style
		case "condition":
			return p.Condition
		case "width":
			return nullFloat(p.Width)
		case "depth":
			return nullFloat(p.Depth)
		case "height":
			return nullFloat(p.Height)
		case "weight":
			return nullFloat(p.Weight)
		case "warranty":
			return p.Warranty
		case "assembly_required":
			return strconv.FormatBool(p.AssemblyRequired)
		}

		return ""
	}
}

func customerCost(p *models.Product, _ *time.Location) string {
	if !p.Price.Valid || p.MOQ == nil {
		return ""
	}

	return p.Price.Decimal.Mul(decimal.NewFromInt(*p.MOQ)).StringFixed(2)
}

func profitPerMOQ(p *models.Product, _ *time.Location) string {
	if !p.Price.Valid || !p.Cost.Valid || p.MOQ == nil {
		return ""
	}

	return p.Price.Decimal.Sub(p.Cost.Decimal).Mul(decimal.NewFromInt(*p.MOQ)).StringFixed(2)
}

func roi(p *models.Product, _ *time.Location) string {
	if !p.Price.Valid || !p.Cost.Valid || !p.Price.Decimal.IsPositive() {
		return ""
	}

	net := p.Price.Decimal.Sub(p.Cost.Decimal)

	return net.Div(p.Price.Decimal).Mul(decimal.NewFromInt(100)).StringFixed(2)
}

func nullDecimal(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}

	return d.Decimal.String()
}

func nullInt(v *int64) string {
	if v == nil {
		return ""
	}

	return strconv.FormatInt(*v, 10)
}

func nullFloat(v *float64) string {
	if v == nil {
		return ""
	}

	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func timestamp(t *time.Time, loc *time.Location) string {
	if t == nil || t.IsZero() {
		return ""
	}

	return t.In(loc).Format(DateLayout)
}
