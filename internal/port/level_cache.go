package port

import (
	"context"

	"github.com/google/uuid"
)

// LevelCache holds the cached head value of each product's ledger: the
// current stock level. It is a best-effort accelerator, never the source
// of truth.
type LevelCache interface {
	// SetLevel stores the current stock level for a product
	SetLevel(ctx context.Context, productID uuid.UUID, level int) error

	// GetLevel returns the cached level; the bool reports whether the key was present
	GetLevel(ctx context.Context, productID uuid.UUID) (int, bool, error)

	// DeleteLevel drops the cached level (product deleted)
	DeleteLevel(ctx context.Context, productID uuid.UUID) error
}
