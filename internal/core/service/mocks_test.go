package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"warehouse/internal/core/domain"
)

// memStore is an in-memory stand-in for the MySQL store. It enforces the same
// contract: version-checked writes and an atomic quantity update + ledger append.
type memStore struct {
	mu      sync.Mutex
	prods   map[uuid.UUID]domain.Product
	ledger  []domain.StockTransaction
	nextSeq int64

	// onLoad, when set, runs after every GetByID; race tests use it as a barrier
	onLoad func()
}

func newMemStore() *memStore {
	return &memStore{prods: make(map[uuid.UUID]domain.Product)}
}

func (m *memStore) Create(_ context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.prods {
		if existing.SKU == p.SKU {
			return domain.ErrSKUAlreadyExists
		}
	}
	m.prods[p.ID] = *p
	return nil
}

func (m *memStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	m.mu.Lock()
	p, ok := m.prods[id]
	m.mu.Unlock()

	if m.onLoad != nil {
		m.onLoad()
	}
	if !ok {
		return nil, nil
	}
	cp := p
	return &cp, nil
}

func (m *memStore) GetAll(_ context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	products := make([]domain.Product, 0, len(m.prods))
	for _, p := range m.prods {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].CreatedAt.Before(products[j].CreatedAt) })
	return products, nil
}

func (m *memStore) Update(_ context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.prods[p.ID]
	if !ok || stored.Version != p.Version {
		return domain.ErrConcurrentModification
	}
	for id, existing := range m.prods {
		if id != p.ID && existing.SKU == p.SKU {
			return domain.ErrSKUAlreadyExists
		}
	}

	stored.Name = p.Name
	stored.SKU = p.SKU
	stored.Price = p.Price
	stored.UpdatedAt = p.UpdatedAt
	stored.Version++
	m.prods[p.ID] = stored
	p.Version++
	return nil
}

func (m *memStore) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.prods[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(m.prods, id)

	kept := m.ledger[:0]
	for _, trx := range m.ledger {
		if trx.ProductID != id {
			kept = append(kept, trx)
		}
	}
	m.ledger = kept
	return nil
}

func (m *memStore) ApplyStockChange(_ context.Context, p *domain.Product, trx *domain.StockTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.prods[p.ID]
	if !ok || stored.Version != p.Version {
		return domain.ErrConcurrentModification
	}

	stored.CurrentQuantity = trx.NewTotal
	stored.UpdatedAt = trx.OccurredAt
	stored.Version++
	m.prods[p.ID] = stored

	m.nextSeq++
	trx.Seq = m.nextSeq
	m.ledger = append(m.ledger, *trx)

	p.CurrentQuantity = trx.NewTotal
	p.Version++
	return nil
}

func (m *memStore) ListByProduct(_ context.Context, productID uuid.UUID) ([]domain.StockTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	transactions := []domain.StockTransaction{}
	for _, trx := range m.ledger {
		if trx.ProductID == productID {
			transactions = append(transactions, trx)
		}
	}
	sort.SliceStable(transactions, func(i, j int) bool {
		if transactions[i].OccurredAt.Equal(transactions[j].OccurredAt) {
			return transactions[i].Seq < transactions[j].Seq
		}
		return transactions[i].OccurredAt.Before(transactions[j].OccurredAt)
	})
	return transactions, nil
}

func (m *memStore) LatestAtOrBefore(_ context.Context, productID uuid.UUID, at time.Time) (*domain.StockTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var best *domain.StockTransaction
	for i := range m.ledger {
		trx := m.ledger[i]
		if trx.ProductID != productID || trx.OccurredAt.After(at) {
			continue
		}
		if best == nil || trx.OccurredAt.After(best.OccurredAt) ||
			(trx.OccurredAt.Equal(best.OccurredAt) && trx.Seq > best.Seq) {
			best = &m.ledger[i]
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

// appendEntry writes a ledger entry with an explicit timestamp, bypassing the
// mutation engine; history tests use it to build a fixed timeline.
func (m *memStore) appendEntry(productID uuid.UUID, at time.Time, trxType domain.TransactionType, quantity, newTotal int) domain.StockTransaction {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextSeq++
	trx := domain.StockTransaction{
		ID:              uuid.New(),
		Seq:             m.nextSeq,
		ProductID:       productID,
		OccurredAt:      at,
		Type:            trxType,
		QuantityChanged: quantity,
		NewTotal:        newTotal,
	}
	m.ledger = append(m.ledger, trx)
	return trx
}

type memCache struct {
	mu     sync.Mutex
	levels map[uuid.UUID]int

	setErr, getErr, delErr error
}

func newMemCache() *memCache {
	return &memCache{levels: make(map[uuid.UUID]int)}
}

func (c *memCache) SetLevel(_ context.Context, productID uuid.UUID, level int) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.levels[productID] = level
	return nil
}

func (c *memCache) GetLevel(_ context.Context, productID uuid.UUID) (int, bool, error) {
	if c.getErr != nil {
		return 0, false, c.getErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	level, ok := c.levels[productID]
	return level, ok, nil
}

func (c *memCache) DeleteLevel(_ context.Context, productID uuid.UUID) error {
	if c.delErr != nil {
		return c.delErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.levels, productID)
	return nil
}

func seedProduct(store *memStore, sku string) *domain.Product {
	now := time.Now().UTC()
	p := &domain.Product{
		ID:        uuid.New(),
		Name:      "test product " + sku,
		SKU:       sku,
		Price:     decimal.NewFromFloat(19.90),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := store.Create(context.Background(), p); err != nil {
		panic(err)
	}
	return p
}
