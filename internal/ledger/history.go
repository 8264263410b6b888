package ledger

import (
	"context"

	"invoicepad/internal/compute"
	"invoicepad/internal/domain"
	"invoicepad/internal/storage"
	"invoicepad/internal/uid"
)

// Finalize snapshots the draft and current tax/discount into a new unpaid
// history entry, prepends it, persists both collections, and resets the
// draft for the next invoice. Required-field validation happens at the
// presentation boundary, not here.
func (l *Ledger) Finalize(ctx context.Context) domain.FinalizedInvoice {
	totals := compute.Totals(l.draft.Items, l.taxPercent, l.discountPercent)

	entry := domain.FinalizedInvoice{
		ID:            uid.NewInvoiceID(),
		InvoiceNumber: l.draft.InvoiceNumber,
		CashierName:   l.draft.CashierName,
		CustomerName:  l.draft.CustomerName,
		Items:         domain.CloneItems(l.draft.Items),
		Subtotal:      totals.Subtotal,
		DiscountRate:  totals.DiscountAmount,
		TaxRate:       totals.TaxAmount,
		Total:         totals.Total,
		Date:          l.now().Format(dateLayout),
		Paid:          false,
	}

	l.history = append([]domain.FinalizedInvoice{entry}, l.history...)
	l.persist(ctx, storage.KeyHistory, l.history)
	l.addCustomer(ctx, l.draft.CustomerName)
	l.resetAfterFinalize()

	return entry
}

// RemoveHistoryEntry deletes the entry with the given id; missing ids are a
// no-op. Deleting the entry currently being viewed returns the view to the
// live draft.
func (l *Ledger) RemoveHistoryEntry(ctx context.Context, id string) {
	kept := l.history[:0]
	removed := false
	for _, entry := range l.history {
		if entry.ID == id {
			removed = true
			continue
		}
		kept = append(kept, entry)
	}
	l.history = kept
	if !removed {
		return
	}
	if l.view.ActiveInvoiceID == id {
		l.view = ViewState{}
	}
	l.persist(ctx, storage.KeyHistory, l.history)
}

// TogglePaid flips the paid flag of the entry with the given id; missing
// ids are a no-op. The active view's paid badge is kept in sync when the
// toggled entry is the one being viewed.
func (l *Ledger) TogglePaid(ctx context.Context, id string) {
	for i := range l.history {
		if l.history[i].ID != id {
			continue
		}
		l.history[i].Paid = !l.history[i].Paid
		if l.view.ActiveInvoiceID == id {
			l.view.ActivePaid = l.history[i].Paid
		}
		l.persist(ctx, storage.KeyHistory, l.history)
		return
	}
}

// ClearHistory empties the collection and persists the empty value.
func (l *Ledger) ClearHistory(ctx context.Context) {
	l.history = []domain.FinalizedInvoice{}
	l.persist(ctx, storage.KeyHistory, l.history)
}

// History returns the collection newest-first.
func (l *Ledger) History() []domain.FinalizedInvoice {
	out := make([]domain.FinalizedInvoice, len(l.history))
	copy(out, l.history)
	return out
}
