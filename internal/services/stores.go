package services

import (
	"context"

	"foodcourt/internal/domain"
)

// CatalogStore is implemented by repos.FoodRepo and repos.MongoFoodRepo.
type CatalogStore interface {
	Search(ctx context.Context, pattern string) ([]domain.FoodItem, error)
	Get(ctx context.Context, id string) (domain.FoodItem, error)
	ListAll(ctx context.Context) ([]domain.FoodItem, error)
	ListTopByCount(ctx context.Context, limit int) ([]domain.FoodItem, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.FoodItem, error)
	Insert(ctx context.Context, f domain.FoodItem) (string, error)
	Update(ctx context.Context, id string, p domain.FoodPatch) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// OrderStore is implemented by repos.OrderRepo and repos.MongoOrderRepo.
// Purchases go through RecordPurchase only; the repos still expose
// AdjustOnPurchase and Insert as standalone methods.
type OrderStore interface {
	// RecordPurchase adjusts the food's stock and count and inserts the
	// order atomically.
	RecordPurchase(ctx context.Context, o domain.OrderRecord) (string, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.OrderRecord, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type FeedbackStore interface {
	Insert(ctx context.Context, fb domain.Feedback) (string, error)
	List(ctx context.Context) ([]domain.Feedback, error)
}

// TopCache holds /homecard results. A nil TopCache disables caching.
type TopCache interface {
	GetTop(ctx context.Context, limit int) ([]domain.FoodItem, bool, error)
	SetTop(ctx context.Context, limit int, items []domain.FoodItem) error
	Invalidate(ctx context.Context) error
}
