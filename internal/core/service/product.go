package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"warehouse/internal/core/domain"
	"warehouse/internal/port"
)

type ProductService struct {
	products port.ProductRepository
	cache    port.LevelCache
}

func NewProductService(products port.ProductRepository, cache port.LevelCache) *ProductService {
	return &ProductService{products: products, cache: cache}
}

// Create registers a new product with an empty ledger and quantity 0.
func (s *ProductService) Create(ctx context.Context, name, sku string, price decimal.Decimal) (*domain.Product, error) {
	now := time.Now().UTC()
	product := &domain.Product{
		ID:              uuid.New(),
		Name:            name,
		SKU:             sku,
		Price:           price,
		CurrentQuantity: 0,
		Version:         0,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

func (s *ProductService) GetAll(ctx context.Context) ([]domain.Product, error) {
	return s.products.GetAll(ctx)
}

// Update changes descriptive fields only. It never touches the quantity and
// never appends to the ledger.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, name, sku string, price decimal.Decimal) (*domain.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = name
	product.SKU = sku
	product.Price = price
	product.UpdatedAt = time.Now().UTC()

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes the product together with its ledger.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.cache.DeleteLevel(ctx, id); err != nil {
		log.WithError(err).WithField("productID", id).Warn("stock level cache delete failed")
	}
	return nil
}
