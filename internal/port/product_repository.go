package port

import (
	"context"

	"github.com/google/uuid"

	"warehouse/internal/core/domain"
)

type ProductRepository interface {
	// Create inserts a new product, returns domain.ErrSKUAlreadyExists on a duplicate SKU
	Create(ctx context.Context, product *domain.Product) error

	// GetByID returns nil without error when the product does not exist
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)

	GetAll(ctx context.Context) ([]domain.Product, error)

	// Update persists descriptive fields (name, sku, price) conditionally on the
	// product's version, returns domain.ErrConcurrentModification on a stale version
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes the product and, by cascade, its stock transactions
	Delete(ctx context.Context, id uuid.UUID) error

	// ApplyStockChange commits the new quantity and the ledger entry as a single
	// atomic unit, conditionally on the product's version. On a stale version it
	// returns domain.ErrConcurrentModification and persists nothing.
	ApplyStockChange(ctx context.Context, product *domain.Product, trx *domain.StockTransaction) error
}
