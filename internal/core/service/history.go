package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"warehouse/internal/core/domain"
	"warehouse/internal/port"
)

type HistoryService struct {
	transactions port.TransactionRepository
}

func NewHistoryService(transactions port.TransactionRepository) *HistoryService {
	return &HistoryService{transactions: transactions}
}

// History returns the product's full ledger, oldest first.
func (s *HistoryService) History(ctx context.Context, productID uuid.UUID) ([]domain.StockTransaction, error) {
	return s.transactions.ListByProduct(ctx, productID)
}

// StockAt reconstructs the stock level as of the given instant: the NewTotal
// of the latest transaction at or before it. Comparison happens in UTC. A
// product with no activity before the instant, including a product that does
// not exist at all, has level 0; that is a defined zero state, not an error.
func (s *HistoryService) StockAt(ctx context.Context, productID uuid.UUID, at time.Time) (int, error) {
	trx, err := s.transactions.LatestAtOrBefore(ctx, productID, at.UTC())
	if err != nil {
		return 0, fmt.Errorf("find latest transaction: %w", err)
	}
	if trx == nil {
		return 0, nil
	}
	return trx.NewTotal, nil
}
