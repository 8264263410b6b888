package ledger

import (
	"invoicepad/internal/domain"
	"invoicepad/internal/seq"
	"invoicepad/internal/uid"
)

type itemField int

const (
	fieldName itemField = iota
	fieldQty
	fieldPrice
)

// ItemEdit is a closed field-update variant. Construct one with SetName,
// SetQty, or SetPrice; an unknown field cannot be expressed.
type ItemEdit struct {
	field itemField
	value string
}

func SetName(v string) ItemEdit  { return ItemEdit{field: fieldName, value: v} }
func SetQty(v string) ItemEdit   { return ItemEdit{field: fieldQty, value: v} }
func SetPrice(v string) ItemEdit { return ItemEdit{field: fieldPrice, value: v} }

func freshItem() domain.LineItem {
	return domain.LineItem{ID: uid.NewItemID(), Name: "", Qty: "1", Price: "1.00"}
}

// AddItem appends a new template row to the draft and returns it.
func (l *Ledger) AddItem() domain.LineItem {
	item := freshItem()
	l.draft.Items = append(l.draft.Items, item)
	return item
}

// RemoveItem drops the item with the given id. Removing the last item is
// allowed; the draft holds zero rows until the next add or reset.
func (l *Ledger) RemoveItem(id string) {
	items := l.draft.Items[:0]
	for _, item := range l.draft.Items {
		if item.ID != id {
			items = append(items, item)
		}
	}
	l.draft.Items = items
}

// EditItem applies one field edit to the item with the given id; a missing
// id is a no-op.
func (l *Ledger) EditItem(id string, edit ItemEdit) {
	for i := range l.draft.Items {
		if l.draft.Items[i].ID != id {
			continue
		}
		switch edit.field {
		case fieldName:
			l.draft.Items[i].Name = edit.value
		case fieldQty:
			l.draft.Items[i].Qty = edit.value
		case fieldPrice:
			l.draft.Items[i].Price = edit.value
		}
		return
	}
}

func (l *Ledger) SetInvoiceNumber(v string)   { l.draft.InvoiceNumber = v }
func (l *Ledger) SetCashierName(v string)     { l.draft.CashierName = v }
func (l *Ledger) SetCustomerName(v string)    { l.draft.CustomerName = v }
func (l *Ledger) SetTaxPercent(v string)      { l.taxPercent = v }
func (l *Ledger) SetDiscountPercent(v string) { l.discountPercent = v }

// LoadFromHistory overwrites the draft's header fields and items from a
// history entry and marks that entry as the active view. This is a one-way
// copy: no back-link is kept, so editing and finalizing afterwards creates
// a new invoice rather than updating the loaded one. Returns false when the
// id is not in the history.
func (l *Ledger) LoadFromHistory(id string) bool {
	for _, entry := range l.history {
		if entry.ID != id {
			continue
		}
		l.draft.InvoiceNumber = entry.InvoiceNumber
		l.draft.CashierName = entry.CashierName
		l.draft.CustomerName = entry.CustomerName
		l.draft.Items = domain.CloneItems(entry.Items)
		l.view = ViewState{ActiveInvoiceID: entry.ID, ActivePaid: entry.Paid}
		return true
	}
	return false
}

// resetAfterFinalize returns the draft to a single fresh template row,
// clears the names, advances the invoice number, and makes the draft the
// live unsaved invoice again.
func (l *Ledger) resetAfterFinalize() {
	l.draft.InvoiceNumber = seq.Next(l.draft.InvoiceNumber)
	l.draft.CashierName = ""
	l.draft.CustomerName = ""
	l.draft.Items = []domain.LineItem{freshItem()}
	l.view = ViewState{}
}
