// Package ledger owns the invoice lifecycle: the single editable draft, the
// newest-first history of finalized invoices, the customer-name directory,
// and the active view state. Every mutation runs to completion before the
// next intent is processed; persistence is a synchronous side effect after
// each state change and a failed write never rolls the in-memory state back.
package ledger

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"invoicepad/internal/compute"
	"invoicepad/internal/domain"
	"invoicepad/internal/storage"
)

const dateLayout = "1/2/2006, 3:04:05 PM"

type Ledger struct {
	store storage.Store

	draft           domain.InvoiceDraft
	taxPercent      string
	discountPercent string
	history         []domain.FinalizedInvoice
	customers       []string
	view            ViewState

	now func() time.Time
}

// Open loads the persisted collections and returns a ledger with a fresh
// draft numbered startNumber. Absent or malformed stored data silently
// falls back to empty collections.
func Open(ctx context.Context, store storage.Store, startNumber string) *Ledger {
	if startNumber == "" {
		startNumber = "1"
	}
	l := &Ledger{
		store: store,
		draft: domain.InvoiceDraft{
			InvoiceNumber: startNumber,
			Items:         []domain.LineItem{freshItem()},
		},
		now: time.Now,
	}
	l.loadHistory(ctx)
	l.loadCustomers(ctx)
	return l
}

// View is the computed state the presentation layer reads.
type View struct {
	Draft           domain.InvoiceDraft
	TaxPercent      string
	DiscountPercent string
	Totals          compute.Breakdown
	History         []domain.FinalizedInvoice
	Suggestions     []string
	ActiveInvoiceID string
	ActivePaid      bool
}

func (l *Ledger) View() View {
	draft := l.draft
	draft.Items = domain.CloneItems(l.draft.Items)

	return View{
		Draft:           draft,
		TaxPercent:      l.taxPercent,
		DiscountPercent: l.discountPercent,
		Totals:          compute.Totals(l.draft.Items, l.taxPercent, l.discountPercent),
		History:         l.History(),
		Suggestions:     l.suggestions(),
		ActiveInvoiceID: l.view.ActiveInvoiceID,
		ActivePaid:      l.view.ActivePaid,
	}
}

func (l *Ledger) loadHistory(ctx context.Context) {
	data, ok := l.loadValue(ctx, storage.KeyHistory)
	if !ok {
		return
	}
	var history []domain.FinalizedInvoice
	if err := json.Unmarshal(data, &history); err != nil {
		log.Printf("[ledger] WARN: stored %s is not valid JSON, starting empty: %v", storage.KeyHistory, err)
		return
	}
	l.history = history
}

func (l *Ledger) loadCustomers(ctx context.Context) {
	data, ok := l.loadValue(ctx, storage.KeyCustomers)
	if !ok {
		return
	}
	var customers []string
	if err := json.Unmarshal(data, &customers); err != nil {
		log.Printf("[ledger] WARN: stored %s is not valid JSON, starting empty: %v", storage.KeyCustomers, err)
		return
	}
	l.customers = customers
}

func (l *Ledger) loadValue(ctx context.Context, key string) ([]byte, bool) {
	data, ok, err := l.store.Load(ctx, key)
	if err != nil {
		log.Printf("[ledger] WARN: load %s: %v", key, err)
		return nil, false
	}
	return data, ok
}

// persist serializes and saves one collection. Failures are logged and
// swallowed; in-memory state stays authoritative for the session.
func (l *Ledger) persist(ctx context.Context, key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		log.Printf("[ledger] WARN: encode %s: %v", key, err)
		return
	}
	if err := l.store.Save(ctx, key, payload); err != nil {
		log.Printf("[ledger] WARN: persist %s: %v", key, err)
	}
}
