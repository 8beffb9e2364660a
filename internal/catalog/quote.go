package catalog

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/nppdeals/inventory-platform/internal/models"
	"github.com/shopspring/decimal"
)

const (
	SalesAddress     = "sales@npp-office-furniture.com"
	maxMOQMultiples  = 10
	quoteGreeting    = "Hi NPP Office Furniture Team,"
	quoteClosingLine = "Please send me a quote at your earliest convenience."
)

type QuoteLine struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Qty       int64 `json:"qty" validate:"omitempty,gte=0"`
}

type QuoteRequest struct {
	Lines []QuoteLine `json:"lines" validate:"required,min=1,dive"`
}

type Quote struct {
	Subject string          `json:"subject"`
	Body    string          `json:"body"`
	MailTo  string          `json:"mailto"`
	Total   decimal.Decimal `json:"total"`
}

// BuildQuote renders the quote request email for the requested lines. Lines
// whose product is unknown are skipped. A zero quantity defaults to the MOQ.
func BuildQuote(products map[int64]*models.Product, lines []QuoteLine) (Quote, error) {
	var (
		entries []string
		asins   []string
		total   = decimal.Zero
	)

	for _, line := range lines {
		p, ok := products[line.ProductID]
		if !ok || p == nil {
			continue
		}

		qty := line.Qty
		if qty <= 0 {
			qty = max(p.MOQOrZero(), 1)
		}

		lineTotal := p.PriceOrZero().Mul(decimal.NewFromInt(qty))
		total = total.Add(lineTotal)

		asin := p.ASIN
		if asin != "" {
			asins = append(asins, asin)
		} else {
			asin = "N/A"
		}

		entries = append(entries, fmt.Sprintf("• %s\n  ASIN: %s | Price: $%s | Qty: %d | Total: $%s",
			p.DisplayTitle(), asin, p.PriceOrZero().String(), qty, FormatMoney(lineTotal)))
	}

	if len(entries) == 0 {
		return Quote{}, fmt.Errorf("no known products in quote request")
	}

	subject := fmt.Sprintf("Invoice Request: %d Product(s)", len(entries))
	if len(asins) > 0 {
		subject += " [" + strings.Join(asins, ", ") + "]"
	}

	body := fmt.Sprintf("%s\n\nI would like to request a quote for the following %d product(s):\n\n%s\n\n%s\n\nThank you!",
		quoteGreeting, len(entries), strings.Join(entries, "\n\n"), quoteClosingLine)

	return Quote{
		Subject: subject,
		Body:    body,
		MailTo:  "mailto:" + SalesAddress + "?subject=" + encodeComponent(subject) + "&body=" + encodeComponent(body),
		Total:   total,
	}, nil
}

// MOQOptions lists the order quantities offered for a product: up to ten
// MOQ multiples, plus all remaining units when they are not a multiple.
func MOQOptions(p *models.Product) []int64 {
	moq := p.MOQOrZero()
	if moq <= 0 {
		moq = 1
	}

	available := p.QtyOrZero()
	multiples := min(available/moq, maxMOQMultiples)

	options := make([]int64, 0, multiples+1)
	for i := int64(1); i <= multiples; i++ {
		options = append(options, moq*i)
	}

	if available > 0 && available%moq > 0 {
		options = append(options, available)
	}

	if len(options) == 0 {
		return []int64{moq}
	}

	return options
}

// encodeComponent escapes spaces as %20, which mail clients expect in mailto links.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// FormatMoney renders two decimals with thousands separators, e.g. 1,234.50.
func FormatMoney(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}

	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	return b.String() + "." + frac
}
