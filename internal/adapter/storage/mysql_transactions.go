package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"warehouse/internal/core/domain"
)

func (s *MySQLStore) ListByProduct(ctx context.Context, productID uuid.UUID) ([]domain.StockTransaction, error) {
	transactions := []domain.StockTransaction{}
	err := s.db.SelectContext(ctx, &transactions, `
		SELECT id, seq, product_id, occurred_at, type, quantity_changed, new_total
		FROM stock_transactions
		WHERE product_id = ?
		ORDER BY occurred_at ASC, seq ASC`, productID,
	)
	if err != nil {
		return nil, fmt.Errorf("query stock transactions: %w", err)
	}
	return transactions, nil
}

// LatestAtOrBefore resolves a point-in-time query with a single indexed
// lookup on (product_id, occurred_at). Equal timestamps are broken by seq,
// the insertion order of the ledger.
func (s *MySQLStore) LatestAtOrBefore(ctx context.Context, productID uuid.UUID, at time.Time) (*domain.StockTransaction, error) {
	var trx domain.StockTransaction
	err := s.db.GetContext(ctx, &trx, `
		SELECT id, seq, product_id, occurred_at, type, quantity_changed, new_total
		FROM stock_transactions
		WHERE product_id = ? AND occurred_at <= ?
		ORDER BY occurred_at DESC, seq DESC
		LIMIT 1`, productID, at,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest stock transaction: %w", err)
	}
	return &trx, nil
}
