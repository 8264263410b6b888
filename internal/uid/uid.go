package uid

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewItemID returns a short random id for line items.
func NewItemID() string {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("it-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}

// NewInvoiceID returns an id for finalized invoices. Invoice ids live in a
// separate namespace from item ids and are never reused.
func NewInvoiceID() string {
	return uuid.NewString()
}
