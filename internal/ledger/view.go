package ledger

// ViewState tracks whether the form shows the live draft or a history entry
// loaded into the draft fields. The zero value is the fresh state.
type ViewState struct {
	ActiveInvoiceID string
	ActivePaid      bool
}

// Fresh reports whether the live draft is being edited (no history entry
// loaded).
func (v ViewState) Fresh() bool {
	return v.ActiveInvoiceID == ""
}
