package ledger

import (
	"context"
	"strings"

	"invoicepad/internal/storage"
)

const maxSuggestions = 6

// addCustomer prepends a name to the directory unless it is empty or
// already present by exact, case-sensitive match. Called once per finalize.
func (l *Ledger) addCustomer(ctx context.Context, name string) {
	if name == "" {
		return
	}
	for _, existing := range l.customers {
		if existing == name {
			return
		}
	}
	l.customers = append([]string{name}, l.customers...)
	l.persist(ctx, storage.KeyCustomers, l.customers)
}

// LookupCustomers returns directory entries whose lowercase form contains
// the lowercase query, in directory order, capped to 6. Insertion dedupes
// case-sensitively while lookup matches case-insensitively; the asymmetry
// is intentional.
func (l *Ledger) LookupCustomers(query string) []string {
	q := strings.ToLower(query)
	matches := make([]string, 0, maxSuggestions)
	for _, name := range l.customers {
		if strings.Contains(strings.ToLower(name), q) {
			matches = append(matches, name)
			if len(matches) == maxSuggestions {
				break
			}
		}
	}
	return matches
}

// Customers returns the directory newest-first.
func (l *Ledger) Customers() []string {
	out := make([]string, len(l.customers))
	copy(out, l.customers)
	return out
}

// suggestions gates lookup on the current state: none while a history entry
// is being viewed, and none for a blank customer field.
func (l *Ledger) suggestions() []string {
	if !l.view.Fresh() {
		return nil
	}
	if strings.TrimSpace(l.draft.CustomerName) == "" {
		return nil
	}
	return l.LookupCustomers(l.draft.CustomerName)
}
