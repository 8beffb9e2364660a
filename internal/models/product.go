package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const DefaultTitle = "Untitled"

// Product is a single listing in the products table. Optional numeric
// attributes are nullable so that "absent" stays distinct from zero.
type Product struct {
	ID               int64               `json:"id" db:"id"`
	Title            string              `json:"title" db:"title"`
	Category         string              `json:"category" db:"category"`
	VendorID         string              `json:"vendor_id" db:"vendor_id"`
	Vendor           string              `json:"vendor" db:"vendor"`
	Price            decimal.NullDecimal `json:"price" db:"price"`
	Cost             decimal.NullDecimal `json:"cost" db:"cost"`
	MOQ              *int64              `json:"moq" db:"moq"`
	Qty              *int64              `json:"qty" db:"qty"`
	UPC              string              `json:"upc" db:"upc"`
	ASIN             string              `json:"asin" db:"asin"`
	SKU              string              `json:"sku" db:"sku"`
	LeadTime         string              `json:"lead_time" db:"lead_time"`
	ExpDate          string              `json:"exp_date" db:"exp_date"`
	FOB              string              `json:"fob" db:"fob"`
	ImageURL         string              `json:"image_url" db:"image_url"`
	SecondaryImages  pq.StringArray      `json:"secondary_images" db:"secondary_images"`
	AmazonURL        string              `json:"amazon_url" db:"amazon_url"`
	WalmartURL       string              `json:"walmart_url" db:"walmart_url"`
	EbayURL          string              `json:"ebay_url" db:"ebay_url"`
	OutOfStock       bool                `json:"out_of_stock" db:"out_of_stock"`
	OfferDate        *time.Time          `json:"offer_date" db:"offer_date"`
	LastSent         *time.Time          `json:"last_sent" db:"last_sent"`
	Brand            string              `json:"brand" db:"brand"`
	Color            string              `json:"color" db:"color"`
	Material         string              `json:"material" db:"material"`
	RoomType         string              `json:"room_type" db:"room_type"`
	Style            string              `json:"style" db:"style"`
	Condition        string              `json:"condition" db:"condition"`
	Width            *float64            `json:"width" db:"width"`
	Depth            *float64            `json:"depth" db:"depth"`
	Height           *float64            `json:"height" db:"height"`
	Weight           *float64            `json:"weight" db:"weight"`
	Warranty         string              `json:"warranty" db:"warranty"`
	AssemblyRequired bool                `json:"assembly_required" db:"assembly_required"`
}

// Categories is the fixed list offered by the admin forms.
var Categories = []string{
	"Appliances",
	"Automotive",
	"Baby",
	"Beauty & Personal Care",
	"Cell Phones & Accessories",
	"Clothing, Shoes & Jewelry",
	"Electronics",
	"Health & Household",
	"Home & Kitchen",
	"Industrial & Industrial",
	"Kitchen & Dining",
	"Musical Instruments",
	"Patio, Lawn & Garden",
	"Pet Supplies",
	"Sports & Outdoors",
	"Tools & Home Improvement",
	"Toys & Games",
	"Office Products",
	"Grocery & Gourmet Food",
	"Video Games",
	"Arts, Crafts & Sewing",
	"Camera & Photo",
}

func IsKnownCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}

	return false
}

// IDString is the selection key used by the admin grid.
func (p *Product) IDString() string {
	return strconv.FormatInt(p.ID, 10)
}

func (p *Product) DisplayTitle() string {
	if t := strings.TrimSpace(p.Title); t != "" {
		return t
	}

	return DefaultTitle
}

func (p *Product) PriceOrZero() decimal.Decimal {
	if !p.Price.Valid {
		return decimal.Zero
	}

	return p.Price.Decimal
}

func (p *Product) MOQOrZero() int64 {
	if p.MOQ == nil {
		return 0
	}

	return *p.MOQ
}

func (p *Product) QtyOrZero() int64 {
	if p.Qty == nil {
		return 0
	}

	return *p.Qty
}

// DealCost is price × moq. It is undefined when either side is absent or zero.
func (p *Product) DealCost() (decimal.Decimal, bool) {
	price := p.PriceOrZero()
	moq := p.MOQOrZero()

	if !price.IsPositive() || moq <= 0 {
		return decimal.Zero, false
	}

	return price.Mul(decimal.NewFromInt(moq)), true
}

// Dimensions renders the present measurements, e.g. `24"W x 30"D x 29"H`.
func (p *Product) Dimensions() string {
	parts := make([]string, 0, 3)

	add := func(v *float64, suffix string) {
		if v == nil {
			return
		}
		parts = append(parts, strconv.FormatFloat(*v, 'f', -1, 64)+`"`+suffix)
	}

	add(p.Width, "W")
	add(p.Depth, "D")
	add(p.Height, "H")

	return strings.Join(parts, " x ")
}

// MarketplaceURL returns the listing URL for a marketplace key (amazon, walmart, ebay).
func (p *Product) MarketplaceURL(marketplace string) string {
	switch strings.ToLower(marketplace) {
	case "amazon":
		return p.AmazonURL
	case "walmart":
		return p.WalmartURL
	case "ebay":
		return p.EbayURL
	}

	return ""
}

// ProductRequest is the body of create and full-update calls.
type ProductRequest struct {
	Title            string              `json:"title" validate:"max=300"`
	Category         string              `json:"category,omitempty" validate:"max=100"`
	VendorID         string              `json:"vendor_id,omitempty"`
	Vendor           string              `json:"vendor,omitempty"`
	Price            decimal.NullDecimal `json:"price"`
	Cost             decimal.NullDecimal `json:"cost"`
	MOQ              *int64              `json:"moq,omitempty" validate:"omitempty,gte=0"`
	Qty              *int64              `json:"qty,omitempty" validate:"omitempty,gte=0"`
	UPC              string              `json:"upc,omitempty"`
	ASIN             string              `json:"asin,omitempty"`
	SKU              string              `json:"sku,omitempty"`
	LeadTime         string              `json:"lead_time,omitempty"`
	ExpDate          string              `json:"exp_date,omitempty"`
	FOB              string              `json:"fob,omitempty"`
	ImageURL         string              `json:"image_url,omitempty" validate:"omitempty,url"`
	SecondaryImages  []string            `json:"secondary_images,omitempty" validate:"omitempty,dive,url"`
	AmazonURL        string              `json:"amazon_url,omitempty"`
	WalmartURL       string              `json:"walmart_url,omitempty"`
	EbayURL          string              `json:"ebay_url,omitempty"`
	OutOfStock       bool                `json:"out_of_stock"`
	OfferDate        *time.Time          `json:"offer_date,omitempty"`
	LastSent         *time.Time          `json:"last_sent,omitempty"`
	Brand            string              `json:"brand,omitempty"`
	Color            string              `json:"color,omitempty"`
	Material         string              `json:"material,omitempty"`
	RoomType         string              `json:"room_type,omitempty"`
	Style            string              `json:"style,omitempty"`
	Condition        string              `json:"condition,omitempty"`
	Width            *float64            `json:"width,omitempty" validate:"omitempty,gte=0"`
	Depth            *float64            `json:"depth,omitempty" validate:"omitempty,gte=0"`
	Height           *float64            `json:"height,omitempty" validate:"omitempty,gte=0"`
	Weight           *float64            `json:"weight,omitempty" validate:"omitempty,gte=0"`
	Warranty         string              `json:"warranty,omitempty"`
	AssemblyRequired bool                `json:"assembly_required"`
}

// NegativeMoneyField returns the name of the first money field holding a
// negative value, or "" when both are acceptable.
func (r *ProductRequest) NegativeMoneyField() string {
	if r.Price.Valid && r.Price.Decimal.IsNegative() {
		return "price"
	}
	if r.Cost.Valid && r.Cost.Decimal.IsNegative() {
		return "cost"
	}

	return ""
}

func (r *ProductRequest) ToProduct() *Product {
	p := &Product{
		Title:            strings.TrimSpace(r.Title),
		Category:         r.Category,
		VendorID:         r.VendorID,
		Vendor:           r.Vendor,
		Price:            r.Price,
		Cost:             r.Cost,
		MOQ:              r.MOQ,
		Qty:              r.Qty,
		UPC:              r.UPC,
		ASIN:             r.ASIN,
		SKU:              r.SKU,
		LeadTime:         r.LeadTime,
		ExpDate:          r.ExpDate,
		FOB:              r.FOB,
		ImageURL:         r.ImageURL,
		SecondaryImages:  pq.StringArray(r.SecondaryImages),
		AmazonURL:        r.AmazonURL,
		WalmartURL:       r.WalmartURL,
		EbayURL:          r.EbayURL,
		OutOfStock:       r.OutOfStock,
		OfferDate:        r.OfferDate,
		LastSent:         r.LastSent,
		Brand:            r.Brand,
		Color:            r.Color,
		Material:         r.Material,
		RoomType:         r.RoomType,
		Style:            r.Style,
		Condition:        r.Condition,
		Width:            r.Width,
		Depth:            r.Depth,
		Height:           r.Height,
		Weight:           r.Weight,
		Warranty:         r.Warranty,
		AssemblyRequired: r.AssemblyRequired,
	}

	if p.Title == "" {
		p.Title = DefaultTitle
	}

	return p
}
