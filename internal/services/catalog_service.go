package services

import (
	"context"
	"fmt"
	"log"

	"foodcourt/internal/domain"
	"foodcourt/internal/validate"
)

type CatalogService struct {
	Foods CatalogStore
	Cache TopCache
}

func NewCatalogService(foods CatalogStore, top TopCache) *CatalogService {
	return &CatalogService{Foods: foods, Cache: top}
}

// Search matches pattern against food names, case-insensitively and
// unanchored. "" returns the whole catalog.
func (s *CatalogService) Search(ctx context.Context, pattern string) ([]domain.FoodItem, error) {
	if _, err := validate.Pattern(pattern); err != nil {
		return nil, err
	}
	return s.Foods.Search(ctx, pattern)
}

func (s *CatalogService) Get(ctx context.Context, id string) (domain.FoodItem, error) {
	return s.Foods.Get(ctx, id)
}

func (s *CatalogService) ListAll(ctx context.Context) ([]domain.FoodItem, error) {
	return s.Foods.ListAll(ctx)
}

// Top returns at most limit foods by purchase count, served from the
// cache when one is configured. Cache failures fall through to the store.
func (s *CatalogService) Top(ctx context.Context, limit int) ([]domain.FoodItem, error) {
	if s.Cache != nil {
		items, ok, err := s.Cache.GetTop(ctx, limit)
		if err != nil {
			log.Printf("[cache] homecard read: %v", err)
		} else if ok {
			return items, nil
		}
	}
	items, err := s.Foods.ListTopByCount(ctx, limit)
	if err != nil {
		return nil, err
	}
	if s.Cache != nil {
		if err := s.Cache.SetTop(ctx, limit, items); err != nil {
			log.Printf("[cache] homecard write: %v", err)
		}
	}
	return items, nil
}

func (s *CatalogService) ByOwner(ctx context.Context, ownerID string) ([]domain.FoodItem, error) {
	return s.Foods.ListByOwner(ctx, ownerID)
}

type NewFood struct {
	Name        string  `json:"name" validate:"required,max=120"`
	Image       string  `json:"image" validate:"max=2048"`
	Category    string  `json:"category" validate:"max=60"`
	Price       float64 `json:"price" validate:"gte=0"`
	Quantity    int     `json:"quantity"`
	Origin      string  `json:"origin" validate:"max=60"`
	Description string  `json:"description" validate:"max=2000"`
	OwnerID     string  `json:"ownerId" validate:"required,uid"`
	OwnerName   string  `json:"ownerName" validate:"max=120"`
}

func (s *CatalogService) Add(ctx context.Context, in NewFood) (string, error) {
	if err := validate.Struct(in); err != nil {
		return "", err
	}
	id, err := s.Foods.Insert(ctx, domain.FoodItem{
		Name: in.Name, Image: in.Image, Category: in.Category, Price: in.Price,
		Quantity: in.Quantity, Origin: in.Origin, Description: in.Description,
		OwnerID: in.OwnerID, OwnerName: in.OwnerName,
	})
	if err != nil {
		return "", err
	}
	s.invalidate(ctx)
	return id, nil
}

var ErrEmptyPatch = fmt.Errorf("%w: no fields to update", validate.ErrInvalid)

func (s *CatalogService) Update(ctx context.Context, id string, p domain.FoodPatch) (int64, error) {
	if p.Empty() {
		return 0, ErrEmptyPatch
	}
	if err := validate.Struct(p); err != nil {
		return 0, err
	}
	n, err := s.Foods.Update(ctx, id, p)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx)
	return n, nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) (int64, error) {
	n, err := s.Foods.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx)
	return n, nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx); err != nil {
		log.Printf("[cache] homecard invalidate: %v", err)
	}
}
