package domain

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TransactionTypeAdd    TransactionType = "add"
	TransactionTypeRemove TransactionType = "remove"
)

// StockTransaction is one immutable entry of a product's ledger.
// Entries are only ever appended, never edited or removed individually;
// they disappear only when the owning product is deleted.
type StockTransaction struct {
	ID              uuid.UUID       `db:"id"`
	Seq             int64           `db:"seq"` // insertion order, assigned by the store
	ProductID       uuid.UUID       `db:"product_id"`
	OccurredAt      time.Time       `db:"occurred_at"`
	Type            TransactionType `db:"type"`
	QuantityChanged int             `db:"quantity_changed"`
	NewTotal        int             `db:"new_total"`
}
