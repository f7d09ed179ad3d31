package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"foodcourt/internal/domain"
	"foodcourt/internal/repos"
	"foodcourt/internal/services"
	"foodcourt/internal/validate"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newOrderService(t *testing.T) (*services.OrderService, *repos.FoodRepo) {
	t.Helper()
	db := memdb(t)
	foods := repos.NewFoodRepo(db)
	return services.NewOrderService(repos.NewOrderRepo(db), foods, nil), foods
}

// Token for u1, one order on a deleted food and one on a 10.00 food × 2.
func TestEnrich_SkipsDanglingReference(t *testing.T) {
	ctx := context.Background()
	tokens := services.NewTokenService("s3cret", time.Hour)
	tok, err := tokens.Issue(domain.Identity{"uid": "u1"})
	if err != nil {
		t.Fatal(err)
	}
	id, err := tokens.Verify(tok)
	if err != nil {
		t.Fatal(err)
	}
	uid, _ := id.UID()

	orders, foods := newOrderService(t)
	gone, _ := foods.Insert(ctx, domain.FoodItem{Name: "Seasonal Soup", Price: 5, Quantity: 10})
	kept, _ := foods.Insert(ctx, domain.FoodItem{Name: "Lasagna", Price: 10.00, Quantity: 10})

	goneOrder, err := orders.Place(ctx, services.Purchase{FoodID: gone, Quantity: 1, OwnerID: uid, Date: "2024-06-01"})
	if err != nil {
		t.Fatal(err)
	}
	keptOrder, err := orders.Place(ctx, services.Purchase{FoodID: kept, Quantity: 2, OwnerID: uid, Date: "2024-06-02"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := foods.Delete(ctx, gone); err != nil {
		t.Fatal(err)
	}

	res, err := orders.Enrich(ctx, uid)
	if err != nil {
		t.Fatalf("dangling reference must not fail the listing: %v", err)
	}
	if len(res.Orders) != 1 {
		t.Fatalf("want 1 enriched order, got %d", len(res.Orders))
	}
	got := res.Orders[0]
	if got.TotalPayable != "20.00" || got.OrderID != keptOrder || got.ID != kept || got.OrderQuantity != 2 || got.Date != "2024-06-02" {
		t.Fatalf("unexpected enriched order: %+v", got)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].OrderID != goneOrder || res.Skipped[0].FoodID != gone {
		t.Fatalf("skip not reported: %+v", res.Skipped)
	}
}

func TestEnrich_PreservesOrderRecordOrder(t *testing.T) {
	ctx := context.Background()
	orders, foods := newOrderService(t)
	a, _ := foods.Insert(ctx, domain.FoodItem{Name: "A", Price: 1.5})
	b, _ := foods.Insert(ctx, domain.FoodItem{Name: "B", Price: 2.25})
	for _, p := range []services.Purchase{
		{FoodID: b, Quantity: 1, OwnerID: "u9"},
		{FoodID: a, Quantity: 4, OwnerID: "u9"},
		{FoodID: b, Quantity: 3, OwnerID: "u9"},
		{FoodID: a, Quantity: 1, OwnerID: "someone-else"},
	} {
		if _, err := orders.Place(ctx, p); err != nil {
			t.Fatal(err)
		}
	}

	res, err := orders.Enrich(ctx, "u9")
	if err != nil {
		t.Fatal(err)
	}
	want := []struct{ name, total string }{{"B", "2.25"}, {"A", "6.00"}, {"B", "6.75"}}
	if len(res.Orders) != len(want) {
		t.Fatalf("want %d orders, got %d", len(want), len(res.Orders))
	}
	for i, w := range want {
		if res.Orders[i].Name != w.name || res.Orders[i].TotalPayable != w.total {
			t.Fatalf("order %d: got %s %s, want %s %s", i, res.Orders[i].Name, res.Orders[i].TotalPayable, w.name, w.total)
		}
	}

	again, _ := orders.Enrich(ctx, "u9")
	for i := range again.Orders {
		if again.Orders[i].OrderID != res.Orders[i].OrderID {
			t.Fatal("order must be stable across calls")
		}
	}
}

func TestPlace_ValidatesAndAdjustsStock(t *testing.T) {
	ctx := context.Background()
	orders, foods := newOrderService(t)
	id, _ := foods.Insert(ctx, domain.FoodItem{Name: "Tacos", Price: 3, Quantity: 5})

	bad := []services.Purchase{
		{FoodID: id, Quantity: 0, OwnerID: "u1"},
		{FoodID: id, Quantity: 1},
		{Quantity: 1, OwnerID: "u1"},
	}
	for _, p := range bad {
		if _, err := orders.Place(ctx, p); !errors.Is(err, validate.ErrInvalid) {
			t.Fatalf("%+v: want ErrInvalid, got %v", p, err)
		}
	}

	if _, err := orders.Place(ctx, services.Purchase{FoodID: "nope", Quantity: 1, OwnerID: "u1"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	if _, err := orders.Place(ctx, services.Purchase{FoodID: id, Quantity: 2, OwnerID: "u1"}); err != nil {
		t.Fatal(err)
	}
	f, _ := foods.Get(ctx, id)
	if f.Quantity != 3 || f.Count != 1 {
		t.Fatalf("want qty=3 count=1, got %+v", f)
	}
}

func TestDeleteOrder_Unknown(t *testing.T) {
	orders, _ := newOrderService(t)
	n, err := orders.Delete(context.Background(), "does-not-exist")
	if err != nil || n != 0 {
		t.Fatalf("want 0 deleted and no error, got %d %v", n, err)
	}
}
