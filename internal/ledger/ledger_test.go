package ledger

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"invoicepad/internal/domain"
	"invoicepad/internal/storage"
	"invoicepad/internal/storage/memory"
)

func newTestLedger() (*Ledger, *memory.Store) {
	store := memory.New()
	l := Open(context.Background(), store, "1")
	l.now = func() time.Time {
		return time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	}
	return l, store
}

func fillDraft(l *Ledger, customer string) {
	v := l.View()
	itemID := v.Draft.Items[0].ID
	l.EditItem(itemID, SetName("Book"))
	l.EditItem(itemID, SetQty("2"))
	l.EditItem(itemID, SetPrice("10.00"))
	l.SetCashierName("Dana")
	l.SetCustomerName(customer)
	l.SetTaxPercent("10")
	l.SetDiscountPercent("5")
}

func TestFinalizeComputesAndSnapshots(t *testing.T) {
	l, _ := newTestLedger()
	ctx := context.Background()

	fillDraft(l, "Alice Corp")
	entry := l.Finalize(ctx)

	if entry.Subtotal != 20.00 || entry.DiscountRate != 1.00 || entry.TaxRate != 2.00 || entry.Total != 21.00 {
		t.Fatalf("unexpected totals: %+v", entry)
	}
	if entry.Paid {
		t.Fatalf("new entries must start unpaid")
	}
	if entry.Date != "3/14/2026, 3:09:26 PM" {
		t.Fatalf("unexpected date format: %q", entry.Date)
	}
	if entry.InvoiceNumber != "1" || entry.CashierName != "Dana" || entry.CustomerName != "Alice Corp" {
		t.Fatalf("header not snapshotted: %+v", entry)
	}
	if len(entry.Items) != 1 || entry.Items[0].Name != "Book" {
		t.Fatalf("items not snapshotted: %+v", entry.Items)
	}
}

func TestFinalizeTwiceCreatesDistinctEntries(t *testing.T) {
	l, _ := newTestLedger()
	ctx := context.Background()

	fillDraft(l, "Alice Corp")
	first := l.Finalize(ctx)
	fillDraft(l, "Alice Corp")
	second := l.Finalize(ctx)

	if first.ID == second.ID {
		t.Fatalf("finalize must issue distinct ids")
	}
	if first.Total != second.Total || first.Subtotal != second.Subtotal {
		t.Fatalf("identical drafts must produce identical totals: %v vs %v", first, second)
	}
	history := l.History()
	if len(history) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(history))
	}
	if history[0].ID != second.ID {
		t.Fatalf("history must be newest-first")
	}
}

func TestFinalizeResetsDraft(t *testing.T) {
	l, _ := newTestLedger()
	ctx := context.Background()

	fillDraft(l, "Alice Corp")
	oldItemID := l.View().Draft.Items[0].ID
	l.Finalize(ctx)

	v := l.View()
	if v.Draft.InvoiceNumber != "2" {
		t.Errorf("invoice number not advanced: %q", v.Draft.InvoiceNumber)
	}
	if v.Draft.CashierName != "" || v.Draft.CustomerName != "" {
		t.Errorf("names not cleared: %+v", v.Draft)
	}
	if len(v.Draft.Items) != 1 {
		t.Fatalf("expected single template item, got %d", len(v.Draft.Items))
	}
	tpl := v.Draft.Items[0]
	if tpl.Name != "" || tpl.Qty != "1" || tpl.Price != "1.00" {
		t.Errorf("template item wrong: %+v", tpl)
	}
	if tpl.ID == oldItemID {
		t.Errorf("template item must get a fresh id")
	}
	if v.ActiveInvoiceID != "" {
		t.Errorf("view must return to the live draft")
	}
}

func TestDirectoryNeverHoldsDuplicates(t *testing.T) {
	l, _ := newTestLedger()
	ctx := context.Background()

	for _, name := range []string{"Alice Corp", "Bob Ltd", "Alice Corp", "alice corp", "Alice Corp"} {
		fillDraft(l, name)
		l.Finalize(ctx)
	}

	customers := l.Customers()
	seen := map[string]bool{}
	for _, c := range customers {
		if seen[c] {
			t.Fatalf("duplicate directory entry %q in %v", c, customers)
		}
		seen[c] = true
	}
	// Exact-match dedupe is case-sensitive: both casings stay.
	if len(customers) != 3 {
		t.Fatalf("expected 3 entries, got %v", customers)
	}
	if customers[0] != "alice corp" {
		t.Fatalf("directory must be newest-first, got %v", customers)
	}
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	l, _ := newTestLedger()
	ctx := context.Background()
	fillDraft(l, "Alice Corp")
	l.Finalize(ctx)

	for _, q := range []string{"ali", "ALI"} {
		got := l.LookupCustomers(q)
		if len(got) != 1 || got[0] != "Alice Corp" {
			t.Errorf("LookupCustomers(%q) = %v", q, got)
		}
	}
}

func TestLookupCapsAtSix(t *testing.T) {
	l, _ := newTestLedger()
	ctx := context.Background()
	for _, name := range []string{"Acme 1", "Acme 2", "Acme 3", "Acme 4", "Acme 5", "Acme 6", "Acme 7", "Acme 8"} {
		fillDraft(l, name)
		l.Finalize(ctx)
	}
	if got := l.LookupCustomers("acme"); len(got) != 6 {
		t.Fatalf("expected 6 results, got %d", len(got))
	}
}

func TestSuggestionsGating(t *testing.T) {
	l, _ := newTestLedger()
	ctx := context.Background()
	fillDraft(l, "Alice Corp")
	entry := l.Finalize(ctx)

	l.SetCustomerName("ali")
	if got := l.View().Suggestions; len(got) != 1 || got[0] != "Alice Corp" {
		t.Fatalf("expected suggestion for live draft, got %v", got)
	}

	l.SetCustomerName("   ")
	if got := l.View().Suggestions; len(got) != 0 {
		t.Fatalf("blank query must yield no suggestions, got %v", got)
	}

	// No suggestions while a history entry is being viewed.
	if !l.LoadFromHistory(entry.ID) {
		t.Fatalf("load from history failed")
	}
	if got := l.View().Suggestions; len(got) != 0 {
		t.Fatalf("viewing state must suppress suggestions, got %v", got)
	}
}

func TestTogglePaidIsItsOwnInverse(t *testing.T) {
	l, _ := newTestLedger()
	ctx := context.Background()
	fillDraft(l, "Alice Corp")
	entry := l.Finalize(ctx)

	l.TogglePaid(ctx, entry.ID)
	if !l.History()[0].Paid {
		t.Fatalf("first toggle must mark paid")
	}
	l.TogglePaid(ctx, entry.ID)
	if l.History()[0].Paid {
		t.Fatalf("second toggle must restore unpaid")
	}

	// Missing id is a no-op.
	l.TogglePaid(ctx, "no-such-id")
	if len(l.History()) != 1 || l.History()[0].Paid {
		t.Fatalf("toggle on missing id must not change anything")
	}
}

func TestTogglePaidSyncsActiveView(t *testing.T) {
	l, _ := newTestLedger()
	ctx := context.Background()
	fillDraft(l, "Alice Corp")
	entry := l.Finalize(ctx)

	l.LoadFromHistory(entry.ID)
	l.TogglePaid(ctx, entry.ID)
	if v := l.View(); !v.ActivePaid {
		t.Fatalf("active view paid badge out of sync")
	}
	l.TogglePaid(ctx, entry.ID)
	if v := l.View(); v.ActivePaid {
		t.Fatalf("active view paid badge out of sync after second toggle")
	}
}

func TestDeletingViewedEntryReturnsToFresh(t *testing.T) {
	l, _ := newTestLedger()
	ctx := context.Background()
	fillDraft(l, "Alice Corp")
	keep := l.Finalize(ctx)
	fillDraft(l, "Bob Ltd")
	viewed := l.Finalize(ctx)

	l.LoadFromHistory(viewed.ID)
	l.RemoveHistoryEntry(ctx, viewed.ID)

	v := l.View()
	if v.ActiveInvoiceID != "" {
		t.Fatalf("deleting the viewed entry must return to the live draft")
	}
	if len(v.History) != 1 || v.History[0].ID != keep.ID {
		t.Fatalf("wrong entry removed: %v", v.History)
	}

	// Deleting an entry that is not being viewed keeps the view.
	l.LoadFromHistory(keep.ID)
	l.RemoveHistoryEntry(ctx, "no-such-id")
	if v := l.View(); v.ActiveInvoiceID != keep.ID {
		t.Fatalf("remove of missing id must not touch the view")
	}
}

func TestClearHistoryPersistsEmptyCollection(t *testing.T) {
	l, store := newTestLedger()
	ctx := context.Background()
	fillDraft(l, "Alice Corp")
	l.Finalize(ctx)

	l.ClearHistory(ctx)
	if len(l.History()) != 0 {
		t.Fatalf("history not cleared")
	}

	data, ok, err := store.Load(ctx, storage.KeyHistory)
	if err != nil || !ok {
		t.Fatalf("load persisted history: ok=%v err=%v", ok, err)
	}
	var persisted []domain.FinalizedInvoice
	if err := json.Unmarshal(data, &persisted); err != nil {
		t.Fatalf("persisted history is not valid JSON: %v", err)
	}
	if len(persisted) != 0 {
		t.Fatalf("persisted history not empty: %v", persisted)
	}
}

func TestLoadFromHistoryIsOneWayCopy(t *testing.T) {
	l, _ := newTestLedger()
	ctx := context.Background()
	fillDraft(l, "Alice Corp")
	entry := l.Finalize(ctx)

	l.LoadFromHistory(entry.ID)
	v := l.View()
	l.EditItem(v.Draft.Items[0].ID, SetName("Changed"))
	refinalized := l.Finalize(ctx)

	if refinalized.ID == entry.ID {
		t.Fatalf("re-finalizing a loaded entry must create a new record")
	}
	history := l.History()
	if len(history) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(history))
	}
	// The original entry is untouched.
	if history[1].Items[0].Name != "Book" {
		t.Fatalf("loaded entry mutated: %+v", history[1].Items)
	}
}

func TestDraftItemMutations(t *testing.T) {
	l, _ := newTestLedger()

	added := l.AddItem()
	if n := len(l.View().Draft.Items); n != 2 {
		t.Fatalf("expected 2 items after add, got %d", n)
	}

	// Removing every row is allowed; the draft transiently holds none.
	for _, item := range l.View().Draft.Items {
		l.RemoveItem(item.ID)
	}
	if n := len(l.View().Draft.Items); n != 0 {
		t.Fatalf("expected 0 items, got %d", n)
	}

	// Edits against removed ids are no-ops.
	l.EditItem(added.ID, SetPrice("9.99"))
	if n := len(l.View().Draft.Items); n != 0 {
		t.Fatalf("edit on missing id must not resurrect items")
	}
}

func TestOpenRecoversFromCorruptStorage(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	_ = store.Save(ctx, storage.KeyHistory, []byte("{not json"))
	_ = store.Save(ctx, storage.KeyCustomers, []byte("also not json"))

	l := Open(ctx, store, "1")
	if len(l.History()) != 0 || len(l.Customers()) != 0 {
		t.Fatalf("corrupt storage must fall back to empty collections")
	}
	if n := len(l.View().Draft.Items); n != 1 {
		t.Fatalf("fresh draft must hold one template item, got %d", n)
	}
}

func TestHistoryStaysDurableAfterBrokenTotals(t *testing.T) {
	l, store := newTestLedger()
	ctx := context.Background()

	// An unparseable price yields NaN totals; the entry must still persist.
	v := l.View()
	l.EditItem(v.Draft.Items[0].ID, SetName("Book"))
	l.EditItem(v.Draft.Items[0].ID, SetPrice("ten bucks"))
	l.SetCashierName("Dana")
	l.SetCustomerName("Alice Corp")
	l.Finalize(ctx)

	data, ok, err := store.Load(ctx, storage.KeyHistory)
	if err != nil || !ok {
		t.Fatalf("history with broken totals not persisted: ok=%v err=%v", ok, err)
	}
	var persisted []domain.FinalizedInvoice
	if err := json.Unmarshal(data, &persisted); err != nil {
		t.Fatalf("persisted history is not valid JSON: %v", err)
	}
	if len(persisted) != 1 {
		t.Fatalf("expected 1 persisted entry, got %d", len(persisted))
	}

	// Later finalizes keep persisting alongside the broken entry.
	fillDraft(l, "Bob Ltd")
	l.Finalize(ctx)
	data, _, _ = store.Load(ctx, storage.KeyHistory)
	persisted = nil
	if err := json.Unmarshal(data, &persisted); err != nil {
		t.Fatalf("persisted history is not valid JSON after second finalize: %v", err)
	}
	if len(persisted) != 2 {
		t.Fatalf("expected 2 persisted entries, got %d", len(persisted))
	}
}

func TestOpenRestoresPersistedState(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	l := Open(ctx, store, "1")
	l.now = func() time.Time { return time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC) }
	fillDraft(l, "Alice Corp")
	entry := l.Finalize(ctx)

	reopened := Open(ctx, store, "1")
	history := reopened.History()
	if len(history) != 1 || history[0].ID != entry.ID {
		t.Fatalf("history did not survive reopen: %v", history)
	}
	if customers := reopened.Customers(); len(customers) != 1 || customers[0] != "Alice Corp" {
		t.Fatalf("directory did not survive reopen: %v", customers)
	}
}
