package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pizzaUnlimitedApi/internal/modules/orders/domain"
	"pizzaUnlimitedApi/internal/platform/database"
	"pizzaUnlimitedApi/internal/shared/pagination"
)

// Mongo persists orders and resolves their menu item references.
type Mongo struct {
	orders *mongo.Collection
	items  *mongo.Collection
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{
		orders: db.Collection(database.CollOrders),
		items:  db.Collection(database.CollMenuItems),
	}
}

func (r *Mongo) Insert(ctx context.Context, order *domain.Order) error {
	result, err := r.orders.InsertOne(ctx, order)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	order.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Mongo) ByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// ByIDForUser scopes the lookup to the owning user: someone else's order is
// indistinguishable from a missing one.
func (r *Mongo) ByIDForUser(ctx context.Context, id primitive.ObjectID, userID string) (*domain.Order, error) {
	return r.findOne(ctx, bson.M{"_id": id, "userId": userID})
}

func (r *Mongo) findOne(ctx context.Context, filter bson.M) (*domain.Order, error) {
	var order domain.Order
	err := r.orders.FindOne(ctx, filter).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	return &order, nil
}

func (r *Mongo) ListByUser(ctx context.Context, userID string, q pagination.Query) ([]domain.Order, int64, error) {
	return r.list(ctx, bson.M{"userId": userID}, q)
}

// List returns orders newest first, optionally filtered by status.
func (r *Mongo) List(ctx context.Context, status string, q pagination.Query) ([]domain.Order, int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return r.list(ctx, filter, q)
}

func (r *Mongo) list(ctx context.Context, filter bson.M, q pagination.Query) ([]domain.Order, int64, error) {
	total, err := r.orders.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(q.Skip()).
		SetLimit(int64(q.Normalize().Limit))
	cursor, err := r.orders.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find orders: %w", err)
	}
	orders := []domain.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, 0, fmt.Errorf("decode orders: %w", err)
	}
	return orders, total, nil
}

// UpdateStatus performs a conditional write: the document must still hold the
// status the caller read. A zero match means a concurrent writer moved the
// order first; the caller gets a conflict instead of a silent lost update.
func (r *Mongo) UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to domain.Status) error {
	result, err := r.orders.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to}},
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrStatusConflict
	}
	return nil
}

// ResolveItems loads the referenced menu items needed to price an invoice.
func (r *Mongo) ResolveItems(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.ResolvedItem, error) {
	cursor, err := r.items.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("resolve items: %w", err)
	}
	var docs []struct {
		ID    primitive.ObjectID `bson:"_id"`
		Name  string             `bson:"name"`
		Price float64            `bson:"price"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode resolved items: %w", err)
	}
	resolved := make(map[primitive.ObjectID]domain.ResolvedItem, len(docs))
	for _, doc := range docs {
		resolved[doc.ID] = domain.ResolvedItem{Name: doc.Name, Price: doc.Price}
	}
	return resolved, nil
}
