package catalog

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/nppdeals/inventory-platform/internal/models"
)

// GroupSubject is the subject line of a multi-product deal email.
func GroupSubject(n int) string {
	return fmt.Sprintf("Group Deal: %d Products Available!", n)
}

type emailButton struct {
	Label string
	URL   string
	Color template.CSS
}

type emailProduct struct {
	Title    string
	ImageURL string
	Buttons  []emailButton
	Price    string
	MOQ      string
	Qty      string
	ASIN     string
	FOB      string
	ExpDate  string
	LeadTime string
}

var emailTemplate = template.Must(template.New("product").Parse(`<div style="padding: 20px 0;">
<div style="text-align:center; margin-bottom: 60px;">
<h2 style="font-size:18px; margin-bottom: 20px;">{{.Title}}</h2>
{{if .ImageURL}}<img src="{{.ImageURL}}" alt="{{.Title}}" style="max-width:300px; max-height:300px; width:auto; height:auto; object-fit:contain; display:block; margin:40px auto;"/>
{{end}}{{range .Buttons}}<a href="{{.URL}}" style="background-color:{{.Color}}; color:white; padding:15px 25px; text-align:center; text-decoration:none; display:inline-block; font-size:16px; margin:5px; border-radius:5px;">{{.Label}}</a>
{{end}}<p style="font-size:18px; margin-top:40px; margin-bottom: 10px;">${{.Price}} EA, MOQ {{.MOQ}}, {{.Qty}} Available.</p>
{{if .ASIN}}<p style="font-size:18px; margin-bottom: 10px;">ASIN: {{.ASIN}}</p>
{{end}}{{if .FOB}}<p style="font-size:18px; margin-bottom: 10px;">FOB: {{.FOB}}</p>
{{end}}{{if .ExpDate}}<p style="font-size:18px; margin-bottom: 10px;">Expiration Date: {{.ExpDate}}</p>
{{end}}<p style="font-size:18px; margin-bottom: 20px;">Lead Time: {{.LeadTime}}</p>
</div>
</div>`))

var strict = bluemonday.StrictPolicy()

// plain strips any markup from free text typed into product fields.
func plain(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// EmailBody renders the HTML block for one product. Marketplace buttons are
// shown only for https links.
func EmailBody(p *models.Product) (string, error) {
	data := emailProduct{
		Title:    plain(p.Title),
		Price:    p.PriceOrZero().StringFixed(2),
		MOQ:      fmt.Sprint(p.MOQOrZero()),
		Qty:      fmt.Sprint(p.QtyOrZero()),
		ASIN:     plain(p.ASIN),
		FOB:      plain(p.FOB),
		ExpDate:  plain(p.ExpDate),
		LeadTime: strings.Replace(plain(p.LeadTime), "Days", "Business Days", 1),
	}

	if isHTTPS(p.ImageURL) {
		data.ImageURL = p.ImageURL
	}

	for _, b := range []emailButton{
		{Label: "Amazon Link", URL: p.AmazonURL, Color: "#FF9900"},
		{Label: "Walmart Link", URL: p.WalmartURL, Color: "#0071CE"},
		{Label: "eBay Link", URL: p.EbayURL, Color: "#E53238"},
	} {
		if isHTTPS(b.URL) {
			data.Buttons = append(data.Buttons, b)
		}
	}

	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render email for product %d: %w", p.ID, err)
	}

	return buf.String(), nil
}

// GroupEmailBody joins the product blocks with horizontal rules.
func GroupEmailBody(products []*models.Product) (string, error) {
	parts := make([]string, 0, len(products))
	for _, p := range products {
		body, err := EmailBody(p)
		if err != nil {
			return "", err
		}
		parts = append(parts, body)
	}

	return strings.Join(parts, "<hr>"), nil
}

func isHTTPS(u string) bool {
	return strings.HasPrefix(strings.TrimSpace(u), "https://")
}
