package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound        = errors.New("product not found")
	ErrSKUAlreadyExists       = errors.New("sku already exists")
	ErrInvalidQuantity        = errors.New("quantity must be a positive number")
	ErrInsufficientStock      = errors.New("insufficient stock")
	ErrConcurrentModification = errors.New("product was modified concurrently")
)

type Product struct {
	ID              uuid.UUID       `db:"id"`
	Name            string          `db:"name"`
	SKU             string          `db:"sku"`
	Price           decimal.Decimal `db:"price"`
	CurrentQuantity int             `db:"current_quantity"`
	Version         int64           `db:"version"` // optimistic locking
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}
