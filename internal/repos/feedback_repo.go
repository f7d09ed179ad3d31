package repos

import (
	"context"
	"encoding/json"
	"fmt"

	"foodcourt/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// FeedbackRepo keeps each submission as a JSON document.
type FeedbackRepo struct{ db *sqlx.DB }

func NewFeedbackRepo(db *sqlx.DB) *FeedbackRepo { return &FeedbackRepo{db: db} }

func (r *FeedbackRepo) Insert(ctx context.Context, fb domain.Feedback) (string, error) {
	id := uuid.NewString()
	doc := make(domain.Feedback, len(fb))
	for k, v := range fb {
		doc[k] = v
	}
	delete(doc, "id")
	body, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO feedback(id, body, created_at) VALUES (?, ?, ?)`,
		id, string(body), now()); err != nil {
		return "", err
	}
	return id, nil
}

// List returns feedback newest first.
func (r *FeedbackRepo) List(ctx context.Context) ([]domain.Feedback, error) {
	var rows []struct {
		ID   string `db:"id"`
		Body string `db:"body"`
	}
	if err := r.db.SelectContext(ctx, &rows, `SELECT id, body FROM feedback ORDER BY seq DESC`); err != nil {
		return nil, err
	}
	out := make([]domain.Feedback, 0, len(rows))
	for _, row := range rows {
		fb := domain.Feedback{}
		if err := json.Unmarshal([]byte(row.Body), &fb); err != nil {
			return nil, fmt.Errorf("feedback %s: %w", row.ID, err)
		}
		fb["id"] = row.ID
		out = append(out, fb)
	}
	return out, nil
}
