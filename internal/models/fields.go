package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type FieldKind int

const (
	FieldText FieldKind = iota
	FieldInteger
	FieldDecimal
	FieldFloat
	FieldBool
	FieldTimestamp
	FieldTextList
)

func (k FieldKind) String() string {
	switch k {
	case FieldInteger:
		return "integer"
	case FieldDecimal, FieldFloat:
		return "decimal"
	case FieldBool:
		return "boolean"
	case FieldTimestamp:
		return "date"
	case FieldTextList:
		return "list"
	}

	return "text"
}

// FieldSpec describes one stored product column.
type FieldSpec struct {
	Key          string
	Label        string
	Kind         FieldKind
	BulkEditable bool
}

// ProductFields lists the stored columns in display order.
var ProductFields = []FieldSpec{
	{Key: "id", Label: "ID", Kind: FieldInteger},
	{Key: "title", Label: "Title", Kind: FieldText},
	{Key: "category", Label: "Category", Kind: FieldText, BulkEditable: true},
	{Key: "vendor", Label: "Vendor", Kind: FieldText, BulkEditable: true},
	{Key: "vendor_id", Label: "Vendor ID", Kind: FieldText, BulkEditable: true},
	{Key: "price", Label: "Price", Kind: FieldDecimal, BulkEditable: true},
	{Key: "cost", Label: "Cost", Kind: FieldDecimal},
	{Key: "moq", Label: "MOQ", Kind: FieldInteger, BulkEditable: true},
	{Key: "qty", Label: "Qty", Kind: FieldInteger, BulkEditable: true},
	{Key: "upc", Label: "UPC", Kind: FieldText},
	{Key: "asin", Label: "ASIN", Kind: FieldText},
	{Key: "sku", Label: "SKU", Kind: FieldText},
	{Key: "lead_time", Label: "Lead Time", Kind: FieldText, BulkEditable: true},
	{Key: "exp_date", Label: "Exp Date", Kind: FieldText, BulkEditable: true},
	{Key: "fob", Label: "FOB", Kind: FieldText, BulkEditable: true},
	{Key: "image_url", Label: "Image URL", Kind: FieldText},
	{Key: "secondary_images", Label: "Secondary Images", Kind: FieldTextList},
	{Key: "amazon_url", Label: "Amazon URL", Kind: FieldText},
	{Key: "walmart_url", Label: "Walmart URL", Kind: FieldText},
	{Key: "ebay_url", Label: "eBay URL", Kind: FieldText},
	{Key: "out_of_stock", Label: "Out of Stock", Kind: FieldBool},
	{Key: "offer_date", Label: "Offer Date", Kind: FieldTimestamp, BulkEditable: true},
	{Key: "last_sent", Label: "Last Sent", Kind: FieldTimestamp},
	{Key: "brand", Label: "Brand", Kind: FieldText, BulkEditable: true},
	{Key: "color", Label: "Color", Kind: FieldText, BulkEditable: true},
	{Key: "material", Label: "Material", Kind: FieldText, BulkEditable: true},
	{Key: "room_type", Label: "Room Type", Kind: FieldText, BulkEditable: true},
	{Key: "style", Label: "Style", Kind: FieldText, BulkEditable: true},
	{Key: "condition", Label: "Condition", Kind: FieldText, BulkEditable: true},
	{Key: "width", Label: "Width", Kind: FieldFloat, BulkEditable: true},
	{Key: "depth", Label: "Depth", Kind: FieldFloat, BulkEditable: true},
	{Key: "height", Label: "Height", Kind: FieldFloat, BulkEditable: true},
	{Key: "weight", Label: "Weight", Kind: FieldFloat, BulkEditable: true},
	{Key: "warranty", Label: "Warranty", Kind: FieldText, BulkEditable: true},
	{Key: "assembly_required", Label: "Assembly Required", Kind: FieldBool},
}

var fieldIndex = func() map[string]FieldSpec {
	idx := make(map[string]FieldSpec, len(ProductFields))
	for _, f := range ProductFields {
		idx[f.Key] = f
	}

	return idx
}()

func LookupField(key string) (FieldSpec, bool) {
	f, ok := fieldIndex[key]

	return f, ok
}

// ProductPatch maps column keys to new values. A nil value clears the column.
type ProductPatch map[string]any

// ParsePatch decodes a JSON object into a normalized patch.
func ParsePatch(body []byte) (ProductPatch, error) {
	dec := json.NewDecoder(strings.NewReader(string(body)))
	dec.UseNumber()

	raw := map[string]any{}
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid JSON format: %w", err)
	}

	return ProductPatch(raw).Normalize()
}

// Normalize validates every key against the field catalog and converts the
// values into the types written to the database.
func (p ProductPatch) Normalize() (ProductPatch, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("patch is empty")
	}

	out := make(ProductPatch, len(p))

	for key, value := range p {
		spec, ok := LookupField(key)
		if !ok || key == "id" {
			return nil, fmt.Errorf("field %q is not editable", key)
		}

		v, err := normalizeValue(spec, value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}

		out[key] = v
	}

	return out, nil
}

func normalizeValue(spec FieldSpec, value any) (any, error) {
	if value == nil {
		switch {
		case spec.Key == "title":
			return DefaultTitle, nil
		case spec.Kind == FieldBool:
			return nil, fmt.Errorf("cannot be cleared")
		}

		return nil, nil
	}

	switch spec.Kind {
	case FieldText:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("expected text, got %T", value)
		}
		if spec.Key == "title" && strings.TrimSpace(s) == "" {
			return DefaultTitle, nil
		}

		return s, nil

	case FieldInteger:
		n, err := toInt64(value)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("must not be negative")
		}

		return n, nil

	case FieldDecimal:
		d, err := toDecimal(value)
		if err != nil {
			return nil, err
		}
		if d.IsNegative() {
			return nil, fmt.Errorf("must not be negative")
		}

		return d, nil

	case FieldFloat:
		d, err := toDecimal(value)
		if err != nil {
			return nil, err
		}
		if d.IsNegative() {
			return nil, fmt.Errorf("must not be negative")
		}
		f, _ := d.Float64()

		return f, nil

	case FieldBool:
		switch b := value.(type) {
		case bool:
			return b, nil
		case string:
			parsed, err := strconv.ParseBool(strings.TrimSpace(b))
			if err != nil {
				return nil, fmt.Errorf("expected true or false")
			}

			return parsed, nil
		}

		return nil, fmt.Errorf("expected boolean, got %T", value)

	case FieldTimestamp:
		switch t := value.(type) {
		case time.Time:
			return t, nil
		case string:
			if strings.TrimSpace(t) == "" {
				return nil, nil
			}

			return ParseTimestamp(t)
		}

		return nil, fmt.Errorf("expected date, got %T", value)

	case FieldTextList:
		switch l := value.(type) {
		case pq.StringArray:
			return l, nil
		case []string:
			return pq.StringArray(l), nil
		case []any:
			out := make(pq.StringArray, 0, len(l))
			for _, item := range l {
				s, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("expected list of text")
				}
				out = append(out, s)
			}

			return out, nil
		}

		return nil, fmt.Errorf("expected list of text, got %T", value)
	}

	return nil, fmt.Errorf("unsupported field kind")
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006, 3:04:05 PM",
	"1/2/2006",
}

// ParseTimestamp accepts RFC 3339, ISO dates without zone and US M/D/YYYY
// dates with or without a time of day.
func ParseTimestamp(s string) (time.Time, error) {
	return ParseTimestampIn(s, time.UTC)
}

// ParseTimestampIn reads zone-less layouts as wall time in loc.
func ParseTimestampIn(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

func toInt64(value any) (int64, error) {
	switch n := value.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case json.Number:
		return parseInt(n.String())
	case string:
		return parseInt(n)
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("expected a whole number")
		}

		return int64(n), nil
	}

	return 0, fmt.Errorf("expected a whole number, got %T", value)
}

func parseInt(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("expected a whole number")
	}

	return n, nil
}

func toDecimal(value any) (decimal.Decimal, error) {
	switch d := value.(type) {
	case decimal.Decimal:
		return d, nil
	case float64:
		return decimal.NewFromFloat(d), nil
	case int64:
		return decimal.NewFromInt(d), nil
	case int:
		return decimal.NewFromInt(int64(d)), nil
	case json.Number:
		return parseDecimal(d.String())
	case string:
		return parseDecimal(d)
	}

	return decimal.Zero, fmt.Errorf("expected a number, got %T", value)
}

func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("expected a number")
	}

	return d, nil
}
