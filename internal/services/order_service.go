package services

import (
	"context"
	"errors"
	"log"

	"foodcourt/internal/domain"
	"foodcourt/internal/validate"
)

type OrderService struct {
	Orders OrderStore
	Foods  CatalogStore
	Top    TopCache
}

func NewOrderService(orders OrderStore, foods CatalogStore, top TopCache) *OrderService {
	return &OrderService{Orders: orders, Foods: foods, Top: top}
}

// Purchase is the query of GET /purchase.
type Purchase struct {
	FoodID   string `query:"id" validate:"required,max=64"`
	Quantity int    `query:"quantity" validate:"gte=1"`
	OwnerID  string `query:"uid" validate:"required,uid"`
	Date     string `query:"date" validate:"max=64"`
}

// Place records the order and adjusts the food's stock and purchase count
// as one atomic store operation. An unknown food is domain.ErrNotFound.
func (s *OrderService) Place(ctx context.Context, p Purchase) (string, error) {
	if err := validate.Struct(p); err != nil {
		return "", err
	}
	id, err := s.Orders.RecordPurchase(ctx, domain.OrderRecord{
		OwnerID:  p.OwnerID,
		FoodID:   p.FoodID,
		Quantity: p.Quantity,
		Date:     p.Date,
	})
	if err != nil {
		return "", err
	}
	if s.Top != nil {
		if err := s.Top.Invalidate(ctx); err != nil {
			log.Printf("[cache] homecard invalidate: %v", err)
		}
	}
	return id, nil
}

type EnrichResult struct {
	Orders  []domain.EnrichedOrder
	Skipped []domain.SkippedOrder
}

// Enrich joins the owner's orders with their foods, in order-record order.
// Orders whose food no longer exists are reported in Skipped instead of
// failing the listing.
func (s *OrderService) Enrich(ctx context.Context, ownerID string) (EnrichResult, error) {
	records, err := s.Orders.ListByOwner(ctx, ownerID)
	if err != nil {
		return EnrichResult{}, err
	}
	res := EnrichResult{Orders: make([]domain.EnrichedOrder, 0, len(records))}
	for _, o := range records {
		food, err := s.Foods.Get(ctx, o.FoodID)
		if errors.Is(err, domain.ErrNotFound) {
			res.Skipped = append(res.Skipped, domain.SkippedOrder{OrderID: o.ID, FoodID: o.FoodID, Reason: "food not found"})
			continue
		}
		if err != nil {
			return EnrichResult{}, err
		}
		res.Orders = append(res.Orders, domain.EnrichedOrder{
			FoodItem:      food,
			OrderQuantity: o.Quantity,
			Date:          o.Date,
			OrderID:       o.ID,
			TotalPayable:  TotalPayable(food.Price, o.Quantity),
		})
	}
	return res, nil
}

func (s *OrderService) Delete(ctx context.Context, orderID string) (int64, error) {
	return s.Orders.Delete(ctx, orderID)
}
