package handlers

import (
	"foodcourt/internal/config"
	"foodcourt/internal/services"
)

// Stores groups the storage backends picked at startup.
type Stores struct {
	Foods    services.CatalogStore
	Orders   services.OrderStore
	Feedback services.FeedbackStore
}

type Deps struct {
	Tokens          *services.TokenService
	AuthHandler     *AuthHandler
	FoodHandler     *FoodHandler
	OrderHandler    *OrderHandler
	FeedbackHandler *FeedbackHandler
}

// NewDeps wires services and handlers. top may be nil.
func NewDeps(st Stores, cfg config.Config, tokens *services.TokenService, top services.TopCache) *Deps {
	catalogSvc := services.NewCatalogService(st.Foods, top)
	orderSvc := services.NewOrderService(st.Orders, st.Foods, top)
	feedbackSvc := services.NewFeedbackService(st.Feedback)

	return &Deps{
		Tokens:          tokens,
		AuthHandler:     &AuthHandler{Tokens: tokens, Cookie: cfg.Cookie},
		FoodHandler:     &FoodHandler{Catalog: catalogSvc},
		OrderHandler:    &OrderHandler{Orders: orderSvc},
		FeedbackHandler: &FeedbackHandler{Feedback: feedbackSvc},
	}
}
