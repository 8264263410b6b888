// Package storage defines the durable key-value port the ledger persists
// through. Values are whole JSON-serialized collections; a save overwrites
// the previous value for its key.
package storage

import "context"

// Logical keys for the two persisted collections.
const (
	KeyHistory   = "invoices_history"
	KeyCustomers = "customers"
)

// Store is the persistence port. Load reports ok=false when the key has no
// stored value. Implementations must not interpret the payload.
type Store interface {
	Load(ctx context.Context, key string) (value []byte, ok bool, err error)
	Save(ctx context.Context, key string, value []byte) error
}
