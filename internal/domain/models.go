package domain

import (
	"encoding/json"
	"math"
)

// LineItem is a single row on an invoice. Qty and Price hold the text the
// user typed; they are parsed (and qty floored) only at computation time.
type LineItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Qty   string `json:"qty"`
	Price string `json:"price"`
}

// InvoiceDraft is the single editable invoice-in-progress.
type InvoiceDraft struct {
	InvoiceNumber string     `json:"invoice_number"`
	CashierName   string     `json:"cashier_name"`
	CustomerName  string     `json:"customer_name"`
	Items         []LineItem `json:"items"`
}

// FinalizedInvoice is a snapshot created from a draft at finalize time.
// DiscountRate and TaxRate are absolute currency amounts, not percentages.
// Everything except Paid is immutable once created.
type FinalizedInvoice struct {
	ID            string     `json:"id"`
	InvoiceNumber string     `json:"invoice_number"`
	CashierName   string     `json:"cashier_name"`
	CustomerName  string     `json:"customer_name"`
	Items         []LineItem `json:"items"`
	Subtotal      float64    `json:"subtotal"`
	DiscountRate  float64    `json:"discount_rate"`
	TaxRate       float64    `json:"tax_rate"`
	Total         float64    `json:"total"`
	Date          string     `json:"date"`
	Paid          bool       `json:"paid"`
}

// MarshalJSON encodes non-finite monetary fields as null, so an invoice
// finalized from unparseable numeric input still serializes and the rest of
// the collection keeps persisting. A null loads back as zero.
func (inv FinalizedInvoice) MarshalJSON() ([]byte, error) {
	type alias FinalizedInvoice
	aux := struct {
		alias
		Subtotal     *float64 `json:"subtotal"`
		DiscountRate *float64 `json:"discount_rate"`
		TaxRate      *float64 `json:"tax_rate"`
		Total        *float64 `json:"total"`
	}{
		alias:        alias(inv),
		Subtotal:     nullableNumber(inv.Subtotal),
		DiscountRate: nullableNumber(inv.DiscountRate),
		TaxRate:      nullableNumber(inv.TaxRate),
		Total:        nullableNumber(inv.Total),
	}
	return json.Marshal(aux)
}

func nullableNumber(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// CloneItems returns an independent copy of an item slice. Items are owned
// exclusively by the draft or invoice that contains them, so every handoff
// between the two goes through a copy.
func CloneItems(items []LineItem) []LineItem {
	if items == nil {
		return nil
	}
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}
