package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// ApplyTo writes a normalized patch onto p.
func (patch ProductPatch) ApplyTo(p *Product) {
	for key, value := range patch {
		switch key {
		case "title":
			p.Title = textValue(value)
			if p.Title == "" {
				p.Title = DefaultTitle
			}
		case "category":
			p.Category = textValue(value)
		case "vendor":
			p.Vendor = textValue(value)
		case "vendor_id":
			p.VendorID = textValue(value)
		case "price":
			p.Price = decimalValue(value)
		case "cost":
			p.Cost = decimalValue(value)
		case "moq":
			p.MOQ = intValue(value)
		case "qty":
			p.Qty = intValue(value)
		case "upc":
			p.UPC = textValue(value)
		case "asin":
			p.ASIN = textValue(value)
		case "sku":
			p.SKU = textValue(value)
		case "lead_time":
			p.LeadTime = textValue(value)
		case "exp_date":
			p.ExpDate = textValue(value)
		case "fob":
			p.FOB = textValue(value)
		case "image_url":
			p.ImageURL = textValue(value)
		case "secondary_images":
			p.SecondaryImages, _ = value.(pq.StringArray)
		case "amazon_url":
			p.AmazonURL = textValue(value)
		case "walmart_url":
			p.WalmartURL = textValue(value)
		case "ebay_url":
			p.EbayURL = textValue(value)
		case "out_of_stock":
			p.OutOfStock, _ = value.(bool)
		case "offer_date":
			p.OfferDate = timeValue(value)
		case "last_sent":
			p.LastSent = timeValue(value)
		case "brand":
			p.Brand = textValue(value)
		case "color":
			p.Color = textValue(value)
		case "material":
			p.Material = textValue(value)
		case "room_type":
			p.RoomType = textValue(value)
		case "style":
			p.Style = textValue(value)
		case "condition":
			p.Condition = textValue(value)
		case "width":
			p.Width = floatValue(value)
		case "depth":
			p.Depth = floatValue(value)
		case "height":
			p.Height = floatValue(value)
		case "weight":
			p.Weight = floatValue(value)
		case "warranty":
			p.Warranty = textValue(value)
		case "assembly_required":
			p.AssemblyRequired, _ = value.(bool)
		}
	}
}

func textValue(v any) string {
	s, _ := v.(string)
	return s
}

func decimalValue(v any) decimal.NullDecimal {
	if d, ok := v.(decimal.Decimal); ok {
		return decimal.NewNullDecimal(d)
	}

	return decimal.NullDecimal{}
}

func intValue(v any) *int64 {
	if n, ok := v.(int64); ok {
		return &n
	}

	return nil
}

func floatValue(v any) *float64 {
	if f, ok := v.(float64); ok {
		return &f
	}

	return nil
}

func timeValue(v any) *time.Time {
	if t, ok := v.(time.Time); ok {
		return &t
	}

	return nil
}
