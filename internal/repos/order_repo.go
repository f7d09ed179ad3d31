package repos

import (
	"context"
	"fmt"

	"foodcourt/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const orderCols = `id, owner_id, food_id, quantity, date, created_at`

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

func (r *OrderRepo) Insert(ctx context.Context, o domain.OrderRecord) (string, error) {
	return insertOrder(ctx, r.db, o)
}

func insertOrder(ctx context.Context, ex sqlx.ExtContext, o domain.OrderRecord) (string, error) {
	o.ID = uuid.NewString()
	o.CreatedAt = now()
	_, err := sqlx.NamedExecContext(ctx, ex, `
		INSERT INTO orders(`+orderCols+`)
		VALUES (:id, :owner_id, :food_id, :quantity, :date, :created_at)`, o)
	if err != nil {
		return "", err
	}
	return o.ID, nil
}

// RecordPurchase adjusts the food's stock and count and inserts the order
// in one transaction. An unknown food aborts with domain.ErrNotFound.
func (r *OrderRepo) RecordPurchase(ctx context.Context, o domain.OrderRecord) (string, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	n, err := adjustOnPurchase(ctx, tx, o.FoodID, o.Quantity)
	if err != nil {
		return "", fmt.Errorf("adjust food: %w", err)
	}
	if n == 0 {
		return "", fmt.Errorf("food %s: %w", o.FoodID, domain.ErrNotFound)
	}
	id, err := insertOrder(ctx, tx, o)
	if err != nil {
		return "", fmt.Errorf("insert order: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// ListByOwner returns the owner's orders in insertion order.
func (r *OrderRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.OrderRecord, error) {
	out := []domain.OrderRecord{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT `+orderCols+`
		FROM orders
		WHERE owner_id = ?
		ORDER BY seq ASC`, ownerID)
	return out, err
}

func (r *OrderRepo) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
