package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"warehouse/internal/core/domain"
	"warehouse/internal/port"
)

// StockService is the only writer of product quantities and the ledger.
// Every mutation is a single read-modify-write: validate, load, compute the
// new total, then commit quantity and ledger entry together in one atomic
// store call guarded by the product's version. On a lost race the whole call
// fails with domain.ErrConcurrentModification; there is no retry here, the
// caller decides whether to re-read and try again.
type StockService struct {
	products port.ProductRepository
	cache    port.LevelCache
}

func NewStockService(products port.ProductRepository, cache port.LevelCache) *StockService {
	return &StockService{products: products, cache: cache}
}

func (s *StockService) Add(ctx context.Context, productID uuid.UUID, quantity int) (*domain.StockTransaction, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	return s.apply(ctx, product, domain.TransactionTypeAdd, quantity, product.CurrentQuantity+quantity)
}

func (s *StockService) Remove(ctx context.Context, productID uuid.UUID, quantity int) (*domain.StockTransaction, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	newTotal := product.CurrentQuantity - quantity
	if newTotal < 0 {
		return nil, domain.ErrInsufficientStock
	}

	return s.apply(ctx, product, domain.TransactionTypeRemove, quantity, newTotal)
}

// Level returns the current stock level, read through the cache.
func (s *StockService) Level(ctx context.Context, productID uuid.UUID) (int, error) {
	level, ok, err := s.cache.GetLevel(ctx, productID)
	if err != nil {
		log.WithError(err).WithField("productID", productID).Warn("stock level cache read failed")
	} else if ok {
		return level, nil
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("load product: %w", err)
	}
	if product == nil {
		return 0, domain.ErrProductNotFound
	}

	s.refreshCache(ctx, productID, product.CurrentQuantity)
	return product.CurrentQuantity, nil
}

func (s *StockService) apply(ctx context.Context, product *domain.Product, trxType domain.TransactionType, quantity, newTotal int) (*domain.StockTransaction, error) {
	trx := &domain.StockTransaction{
		ID:              uuid.New(),
		ProductID:       product.ID,
		OccurredAt:      time.Now().UTC(),
		Type:            trxType,
		QuantityChanged: quantity,
		NewTotal:        newTotal,
	}

	if err := s.products.ApplyStockChange(ctx, product, trx); err != nil {
		return nil, err
	}

	s.refreshCache(ctx, product.ID, newTotal)
	return trx, nil
}

func (s *StockService) refreshCache(ctx context.Context, productID uuid.UUID, level int) {
	if err := s.cache.SetLevel(ctx, productID, level); err != nil {
		log.WithError(err).WithField("productID", productID).Warn("stock level cache write failed")
	}
}
