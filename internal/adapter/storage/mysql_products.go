package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"warehouse/internal/core/domain"
)

// MySQLStore backs both the product state store and the transaction ledger.
// They share one store because a stock mutation must write both tables in a
// single database transaction.
type MySQLStore struct {
	db *sqlx.DB
}

func NewMySQLStore(db *sqlx.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

func (s *MySQLStore) Create(ctx context.Context, p *domain.Product) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (id, name, sku, price, current_quantity, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.SKU, p.Price, p.CurrentQuantity, p.Version, p.CreatedAt, p.UpdatedAt,
	)
	if isDuplicateKey(err) {
		return domain.ErrSKUAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (s *MySQLStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var p domain.Product
	err := s.db.GetContext(ctx, &p, `
		SELECT id, name, sku, price, current_quantity, version, created_at, updated_at
		FROM products WHERE id = ?`, id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}
	return &p, nil
}

func (s *MySQLStore) GetAll(ctx context.Context) ([]domain.Product, error) {
	products := []domain.Product{}
	err := s.db.SelectContext(ctx, &products, `
		SELECT id, name, sku, price, current_quantity, version, created_at, updated_at
		FROM products ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	return products, nil
}

func (s *MySQLStore) Update(ctx context.Context, p *domain.Product) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET name = ?, sku = ?, price = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?`,
		p.Name, p.SKU, p.Price, p.UpdatedAt, p.ID, p.Version,
	)
	if isDuplicateKey(err) {
		return domain.ErrSKUAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrConcurrentModification
	}

	p.Version++
	return nil
}

func (s *MySQLStore) Delete(ctx context.Context, id uuid.UUID) error {
	// stock_transactions go with it via the cascading foreign key
	result, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// ApplyStockChange is the commit point of a stock mutation: the conditional
// quantity update and the ledger append either both land or neither does.
// Zero rows affected means another writer won the race since the product was
// loaded (or it was deleted), so nothing is persisted.
func (s *MySQLStore) ApplyStockChange(ctx context.Context, p *domain.Product, trx *domain.StockTransaction) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE products
		SET current_quantity = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?`,
		trx.NewTotal, trx.OccurredAt, p.ID, p.Version,
	)
	if err != nil {
		return fmt.Errorf("update product quantity: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrConcurrentModification
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO stock_transactions (id, product_id, occurred_at, type, quantity_changed, new_total)
		VALUES (?, ?, ?, ?, ?, ?)`,
		trx.ID, trx.ProductID, trx.OccurredAt, trx.Type, trx.QuantityChanged, trx.NewTotal,
	)
	if err != nil {
		return fmt.Errorf("append stock transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit stock change: %w", err)
	}

	p.CurrentQuantity = trx.NewTotal
	p.Version++
	return nil
}

func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
