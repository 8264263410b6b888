// Package compute derives monetary totals from invoice line items.
package compute

import (
	"math"
	"strconv"
	"strings"

	"invoicepad/internal/domain"
)

// Breakdown holds the raw, unrounded results of a totals computation.
// Rounding is a display concern; see FormatAmount and FormatTotal.
type Breakdown struct {
	Subtotal       float64
	DiscountAmount float64
	TaxAmount      float64
	Total          float64
}

// Totals computes the breakdown for a set of line items with the given tax
// and discount percentages (entered as text).
//
// An item contributes price * floor(qty) to the subtotal only when its name,
// trimmed of whitespace, is non-empty. Tax and discount are both taken off
// the same subtotal and do not compound. Unparseable numeric text is not
// rejected: it becomes NaN and flows through to the results.
func Totals(items []domain.LineItem, taxPercent, discountPercent string) Breakdown {
	var subtotal float64
	for _, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			continue
		}
		subtotal += parseNumber(item.Price) * math.Floor(parseNumber(item.Qty))
	}

	tax := parseNumber(taxPercent) * subtotal / 100
	discount := parseNumber(discountPercent) * subtotal / 100

	return Breakdown{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxAmount:      tax,
		Total:          subtotal - discount + tax,
	}
}

// parseNumber converts user-entered numeric text. Blank text counts as zero;
// anything else that fails to parse becomes NaN rather than an error.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// FormatAmount renders subtotal, discount, and tax figures: always two
// decimal places.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatTotal renders the total: no decimals when it is exactly integral,
// two decimal places otherwise.
func FormatTotal(v float64) string {
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
