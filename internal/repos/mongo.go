package repos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodcourt/internal/domain"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	foodsColl    = "foods"
	ordersColl   = "orders"
	feedbackColl = "feedback"

	// feedback documents are client shaped; the insert time hides under
	// a key clients are unlikely to send.
	feedbackTS = "_ts"
)

// OpenMongo connects and pings. Nested documents decode as maps so that
// free-form feedback serializes back to plain JSON objects.
func OpenMongo(ctx context.Context, uri, dbName string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client.Database(dbName), nil
}

var (
	newestFirst = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}
	oldestFirst = bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}
)

type MongoFoodRepo struct{ c *mongo.Collection }

func NewMongoFoodRepo(db *mongo.Database) *MongoFoodRepo {
	return &MongoFoodRepo{c: db.Collection(foodsColl)}
}

func (r *MongoFoodRepo) find(ctx context.Context, filter any, opts *options.FindOptions) ([]domain.FoodItem, error) {
	cur, err := r.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	out := []domain.FoodItem{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoFoodRepo) Search(ctx context.Context, pattern string) ([]domain.FoodItem, error) {
	filter := bson.M{}
	if pattern != "" {
		filter["name"] = primitive.Regex{Pattern: pattern, Options: "i"}
	}
	return r.find(ctx, filter, options.Find().SetSort(newestFirst))
}

func (r *MongoFoodRepo) Get(ctx context.Context, id string) (domain.FoodItem, error) {
	var f domain.FoodItem
	err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&f)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.FoodItem{}, fmt.Errorf("food %s: %w", id, domain.ErrNotFound)
	}
	return f, err
}

func (r *MongoFoodRepo) ListAll(ctx context.Context) ([]domain.FoodItem, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(newestFirst))
}

func (r *MongoFoodRepo) ListTopByCount(ctx context.Context, limit int) ([]domain.FoodItem, error) {
	sort := append(bson.D{{Key: "count", Value: -1}}, oldestFirst...)
	return r.find(ctx, bson.M{}, options.Find().SetSort(sort).SetLimit(int64(limit)))
}

func (r *MongoFoodRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.FoodItem, error) {
	return r.find(ctx, bson.M{"owner_id": ownerID}, options.Find().SetSort(newestFirst))
}

func (r *MongoFoodRepo) AdjustOnPurchase(ctx context.Context, id string, qty int) (int64, error) {
	res, err := r.c.UpdateByID(ctx, id, purchaseInc(qty))
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func purchaseInc(qty int) bson.M {
	return bson.M{"$inc": bson.M{"quantity": -qty, "count": 1}}
}

func (r *MongoFoodRepo) Insert(ctx context.Context, f domain.FoodItem) (string, error) {
	f.ID = uuid.NewString()
	f.CreatedAt = now()
	if _, err := r.c.InsertOne(ctx, f); err != nil {
		return "", err
	}
	return f.ID, nil
}

func (r *MongoFoodRepo) Update(ctx context.Context, id string, p domain.FoodPatch) (int64, error) {
	cols, vals := p.Fields()
	if len(cols) == 0 {
		return 0, nil
	}
	set := bson.D{}
	for i, c := range cols {
		set = append(set, bson.E{Key: c, Value: vals[i]})
	}
	res, err := r.c.UpdateByID(ctx, id, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return 0, err
	}
	// matched, not modified: an unchanged value still counts, as on sqlite
	return res.MatchedCount, nil
}

func (r *MongoFoodRepo) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

type MongoOrderRepo struct {
	db     *mongo.Database
	orders *mongo.Collection
	foods  *mongo.Collection
}

func NewMongoOrderRepo(db *mongo.Database) *MongoOrderRepo {
	return &MongoOrderRepo{db: db, orders: db.Collection(ordersColl), foods: db.Collection(foodsColl)}
}

func (r *MongoOrderRepo) Insert(ctx context.Context, o domain.OrderRecord) (string, error) {
	o.ID = uuid.NewString()
	o.CreatedAt = now()
	if _, err := r.orders.InsertOne(ctx, o); err != nil {
		return "", err
	}
	return o.ID, nil
}

// RecordPurchase runs the stock adjustment and the order insert in one
// multi-document transaction. Requires a replica set or mongos.
func (r *MongoOrderRepo) RecordPurchase(ctx context.Context, o domain.OrderRecord) (string, error) {
	sess, err := r.db.Client().StartSession()
	if err != nil {
		return "", fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	o.ID = uuid.NewString()
	o.CreatedAt = now()
	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		res, err := r.foods.UpdateByID(sc, o.FoodID, purchaseInc(o.Quantity))
		if err != nil {
			return nil, fmt.Errorf("adjust food: %w", err)
		}
		if res.MatchedCount == 0 {
			return nil, fmt.Errorf("food %s: %w", o.FoodID, domain.ErrNotFound)
		}
		if _, err := r.orders.InsertOne(sc, o); err != nil {
			return nil, fmt.Errorf("insert order: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		return "", err
	}
	return o.ID, nil
}

func (r *MongoOrderRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.OrderRecord, error) {
	cur, err := r.orders.Find(ctx, bson.M{"owner_id": ownerID}, options.Find().SetSort(oldestFirst))
	if err != nil {
		return nil, err
	}
	out := []domain.OrderRecord{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoOrderRepo) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.orders.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

type MongoFeedbackRepo struct{ c *mongo.Collection }

func NewMongoFeedbackRepo(db *mongo.Database) *MongoFeedbackRepo {
	return &MongoFeedbackRepo{c: db.Collection(feedbackColl)}
}

func (r *MongoFeedbackRepo) Insert(ctx context.Context, fb domain.Feedback) (string, error) {
	doc := bson.M{}
	for k, v := range fb {
		doc[k] = v
	}
	delete(doc, "id")
	id := uuid.NewString()
	doc["_id"] = id
	doc[feedbackTS] = now()
	if _, err := r.c.InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return id, nil
}

func (r *MongoFeedbackRepo) List(ctx context.Context) ([]domain.Feedback, error) {
	opts := options.Find().SetSort(bson.D{{Key: feedbackTS, Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]domain.Feedback, 0, len(docs))
	for _, d := range docs {
		fb := domain.Feedback(d)
		fb["id"] = d["_id"]
		delete(fb, "_id")
		delete(fb, feedbackTS)
		out = append(out, fb)
	}
	return out, nil
}
