package domain

import "errors"

// ErrNotFound is returned by stores when the referenced document is absent.
var ErrNotFound = errors.New("not found")

type FoodItem struct {
	ID          string  `db:"id" bson:"_id" json:"id"`
	Name        string  `db:"name" bson:"name" json:"name"`
	Image       string  `db:"image" bson:"image" json:"image"`
	Category    string  `db:"category" bson:"category" json:"category"`
	Price       float64 `db:"price" bson:"price" json:"price"`
	Quantity    int     `db:"quantity" bson:"quantity" json:"quantity"` // may go negative, stock is not checked on purchase
	Count       int     `db:"count" bson:"count" json:"count"`
	Origin      string  `db:"origin" bson:"origin" json:"origin"`
	Description string  `db:"description" bson:"description" json:"description"`
	OwnerID     string  `db:"owner_id" bson:"owner_id" json:"ownerId"`
	OwnerName   string  `db:"owner_name" bson:"owner_name" json:"ownerName"`
	CreatedAt   string  `db:"created_at" bson:"created_at" json:"createdAt"`
}

// FoodPatch lists the replaceable fields of a FoodItem. Nil means unchanged.
type FoodPatch struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=120"`
	Image       *string  `json:"image" validate:"omitempty,max=2048"`
	Category    *string  `json:"category" validate:"omitempty,max=60"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Quantity    *int     `json:"quantity"`
	Origin      *string  `json:"origin" validate:"omitempty,max=60"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
}

func (p FoodPatch) Empty() bool {
	return p.Name == nil && p.Image == nil && p.Category == nil && p.Price == nil &&
		p.Quantity == nil && p.Origin == nil && p.Description == nil
}

// Fields returns the set columns keyed by storage name, in a fixed order.
func (p FoodPatch) Fields() ([]string, []any) {
	var cols []string
	var vals []any
	add := func(col string, v any) {
		cols = append(cols, col)
		vals = append(vals, v)
	}
	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Image != nil {
		add("image", *p.Image)
	}
	if p.Category != nil {
		add("category", *p.Category)
	}
	if p.Price != nil {
		add("price", *p.Price)
	}
	if p.Quantity != nil {
		add("quantity", *p.Quantity)
	}
	if p.Origin != nil {
		add("origin", *p.Origin)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	return cols, vals
}

type OrderRecord struct {
	ID        string `db:"id" bson:"_id" json:"id"`
	OwnerID   string `db:"owner_id" bson:"owner_id" json:"uid"`
	FoodID    string `db:"food_id" bson:"food_id" json:"foodId"`
	Quantity  int    `db:"quantity" bson:"quantity" json:"quantity"`
	Date      string `db:"date" bson:"date" json:"date"`
	CreatedAt string `db:"created_at" bson:"created_at" json:"createdAt"`
}

// EnrichedOrder is a purchased FoodItem flattened with its order details.
type EnrichedOrder struct {
	FoodItem
	OrderQuantity int    `json:"orderQuantity"`
	Date          string `json:"date"`
	OrderID       string `json:"orderId"`
	TotalPayable  string `json:"totalPayable"`
}

// SkippedOrder records an order left out of an enriched listing.
type SkippedOrder struct {
	OrderID string
	FoodID  string
	Reason  string
}

// Feedback is a client supplied document; "id" is assigned by the store.
type Feedback map[string]any
