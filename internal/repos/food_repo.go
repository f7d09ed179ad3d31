package repos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"foodcourt/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const foodCols = `id, name, image, category, price, quantity, count, origin, description, owner_id, owner_name, created_at`

type FoodRepo struct{ db *sqlx.DB }

func NewFoodRepo(db *sqlx.DB) *FoodRepo { return &FoodRepo{db: db} }

// Search returns foods whose name matches pattern, case-insensitively.
// sqlite has no REGEXP, so names are matched here, newest first.
func (r *FoodRepo) Search(ctx context.Context, pattern string) ([]domain.FoodItem, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, err
	}
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.FoodItem, 0, len(all))
	for _, f := range all {
		if re.MatchString(f.Name) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *FoodRepo) Get(ctx context.Context, id string) (domain.FoodItem, error) {
	var f domain.FoodItem
	err := r.db.GetContext(ctx, &f, `SELECT `+foodCols+` FROM foods WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.FoodItem{}, fmt.Errorf("food %s: %w", id, domain.ErrNotFound)
	}
	return f, err
}

func (r *FoodRepo) ListAll(ctx context.Context) ([]domain.FoodItem, error) {
	out := []domain.FoodItem{}
	err := r.db.SelectContext(ctx, &out, `SELECT `+foodCols+` FROM foods ORDER BY seq DESC`)
	return out, err
}

// ListTopByCount orders by purchase count; ties keep insertion order.
func (r *FoodRepo) ListTopByCount(ctx context.Context, limit int) ([]domain.FoodItem, error) {
	out := []domain.FoodItem{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT `+foodCols+`
		FROM foods
		ORDER BY count DESC, seq ASC
		LIMIT ?`, limit)
	return out, err
}

func (r *FoodRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.FoodItem, error) {
	out := []domain.FoodItem{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT `+foodCols+`
		FROM foods
		WHERE owner_id = ?
		ORDER BY seq DESC`, ownerID)
	return out, err
}

// AdjustOnPurchase takes qty off the stock and bumps the purchase count.
// Stock is allowed to go negative.
func (r *FoodRepo) AdjustOnPurchase(ctx context.Context, id string, qty int) (int64, error) {
	return adjustOnPurchase(ctx, r.db, id, qty)
}

func adjustOnPurchase(ctx context.Context, ex sqlx.ExecerContext, id string, qty int) (int64, error) {
	res, err := ex.ExecContext(ctx, `
		UPDATE foods
		SET quantity = quantity - ?, count = count + 1
		WHERE id = ?`, qty, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *FoodRepo) Insert(ctx context.Context, f domain.FoodItem) (string, error) {
	f.ID = uuid.NewString()
	f.CreatedAt = now()
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO foods(`+foodCols+`)
		VALUES (:id, :name, :image, :category, :price, :quantity, :count, :origin, :description, :owner_id, :owner_name, :created_at)`, f)
	if err != nil {
		return "", err
	}
	return f.ID, nil
}

// Update replaces the fields set in p and returns the number of rows touched.
func (r *FoodRepo) Update(ctx context.Context, id string, p domain.FoodPatch) (int64, error) {
	cols, vals := p.Fields()
	if len(cols) == 0 {
		return 0, nil
	}
	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = c + " = ?"
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE foods SET `+strings.Join(sets, ", ")+` WHERE id = ?`,
		append(vals, id)...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *FoodRepo) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM foods WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
