package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"warehouse/internal/core/domain"
)

type TransactionRepository interface {
	// ListByProduct returns the product's full ledger ordered by occurred_at ascending
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]domain.StockTransaction, error)

	// LatestAtOrBefore returns the single transaction with the greatest occurred_at <= at,
	// breaking timestamp ties by insertion order; nil without error when there is none
	LatestAtOrBefore(ctx context.Context, productID uuid.UUID, at time.Time) (*domain.StockTransaction, error)
}
