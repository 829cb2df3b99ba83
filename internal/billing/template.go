package billing

import (
	"fmt"
	"html"
	"strings"
)

// Placeholder tokens an invoice template may carry. LineItems and Totals are
// mandatory: a template without them would render an invoice that never shows
// what is owed.
const (
	TokenLineItems     = "{{line_items}}"
	TokenTotals        = "{{totals}}"
	TokenClientName    = "{{client_name}}"
	TokenInvoiceNumber = "{{invoice_number}}"
	TokenInvoiceDate   = "{{invoice_date}}"
	TokenMonth         = "{{month}}"
	TokenTrainerName   = "{{trainer_name}}"
	TokenAddress       = "{{trainer_address}}"
	TokenIBAN          = "{{iban}}"
	TokenTaxID         = "{{tax_id}}"
	TokenDisclaimer    = "{{disclaimer}}"
)

var requiredTokens = []string{TokenLineItems, TokenTotals}

// ValidateTemplate checks that the required placeholders are present before
// any substitution happens.
func ValidateTemplate(tpl string) error {
	for _, token := range requiredTokens {
		if !strings.Contains(tpl, token) {
			return fmt.Errorf("template is missing required placeholder %s", token)
		}
	}
	return nil
}

// RenderTemplate substitutes known placeholder tokens with their values by
// exact replacement. Tokens not in values stay untouched, so templates may
// carry placeholders this layer does not know about.
func RenderTemplate(tpl string, values map[string]string) (string, error) {
	if err := ValidateTemplate(tpl); err != nil {
		return "", err
	}
	rendered := tpl
	for token, value := range values {
		rendered = strings.ReplaceAll(rendered, token, value)
	}
	return rendered, nil
}

// LineItemsHTML renders the statement's session lines as the table rows the
// {{line_items}} token expands to.
func LineItemsHTML(lines []LineItem) string {
	var b strings.Builder
	b.WriteString(`<table class="line-items"><thead><tr>` +
		`<th>Date</th><th>Description</th><th>Hours</th><th>Unit price</th><th>Amount</th>` +
		`</tr></thead><tbody>`)
	for _, line := range lines {
		hours := ""
		if line.Hours > 0 {
			hours = formatAmount(line.Hours)
		}
		fmt.Fprintf(&b, `<tr><td>%s</td><td>%s</td><td>%s</td><td>%s €</td><td>%s €</td></tr>`,
			line.Date.Format("02.01.2006"),
			html.EscapeString(line.Description),
			hours,
			formatAmount(line.UnitPrice),
			formatAmount(line.Amount),
		)
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

// TotalsHTML renders the net/VAT/gross block the {{totals}} token expands to.
// Small-business statements get the disclaimer instead of a VAT row.
func TotalsHTML(totals Totals) string {
	var b strings.Builder
	b.WriteString(`<table class="totals">`)
	fmt.Fprintf(&b, `<tr><td>Net</td><td>%s €</td></tr>`, formatAmount(totals.Net))
	if totals.Disclaimer == "" {
		fmt.Fprintf(&b, `<tr><td>VAT (%s%%)</td><td>%s €</td></tr>`, formatAmount(totals.VATRate), formatAmount(totals.VAT))
	}
	fmt.Fprintf(&b, `<tr><td>Total</td><td>%s €</td></tr>`, formatAmount(totals.Gross))
	b.WriteString(`</table>`)
	if totals.Disclaimer != "" {
		fmt.Fprintf(&b, `<p class="disclaimer">%s</p>`, html.EscapeString(totals.Disclaimer))
	}
	return b.String()
}

func formatAmount(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	return strings.Replace(s, ".", ",", 1)
}
