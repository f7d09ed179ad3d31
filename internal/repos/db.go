package repos

import (
	"context"
	"log"
	"time"

	"foodcourt/internal/domain"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// tsLayout sorts lexically in insertion order.
const tsLayout = "2006-01-02T15:04:05.000000000Z07:00"

func now() string { return time.Now().UTC().Format(tsLayout) }

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// sqlite serializes writers anyway, and ":memory:" is per connection.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
-- Catalog. seq keeps insertion order for "newest first" listings.
CREATE TABLE IF NOT EXISTS foods(
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  image TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT '',
  price REAL NOT NULL DEFAULT 0,
  quantity INTEGER NOT NULL DEFAULT 0,
  count INTEGER NOT NULL DEFAULT 0,
  origin TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  owner_id TEXT NOT NULL DEFAULT '',
  owner_name TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_foods_owner ON foods(owner_id);
CREATE INDEX IF NOT EXISTS idx_foods_count ON foods(count DESC, seq);

-- Orders reference foods loosely: a food may be deleted after purchase.
CREATE TABLE IF NOT EXISTS orders(
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT NOT NULL UNIQUE,
  owner_id TEXT NOT NULL,
  food_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  date TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_owner ON orders(owner_id);

CREATE TABLE IF NOT EXISTS feedback(
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT NOT NULL UNIQUE,
  body TEXT NOT NULL,
  created_at TEXT NOT NULL
);
`
	_, err := db.Exec(schema)
	return err
}

// SeedIfEmpty inserts a demo catalog into an empty foods table.
func SeedIfEmpty(ctx context.Context, db *sqlx.DB) error {
	var n int
	if err := db.GetContext(ctx, &n, `SELECT COUNT(*) FROM foods`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo catalog")

	foods := NewFoodRepo(db)
	demo := []struct {
		name, category, origin string
		price                  float64
		qty                    int
	}{
		{"Pizza Margherita", "Italian", "Italy", 12.50, 20},
		{"Chicken Biryani", "Rice", "India", 9.99, 30},
		{"Beef Burger", "Fast Food", "USA", 8.75, 25},
		{"Pad Thai", "Noodles", "Thailand", 10.25, 15},
		{"Caesar Salad", "Salad", "Italy", 6.40, 18},
		{"Sushi Platter", "Japanese", "Japan", 18.00, 10},
	}
	for _, d := range demo {
		f := domain.FoodItem{
			Name: d.name, Category: d.category, Origin: d.origin, Price: d.price, Quantity: d.qty,
			OwnerID: "demo", OwnerName: "Foodcourt Kitchen",
		}
		if _, err := foods.Insert(ctx, f); err != nil {
			return err
		}
	}
	return nil
}
