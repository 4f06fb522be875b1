package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"pizzaUnlimitedApi/internal/modules/analytics/domain"
	"pizzaUnlimitedApi/internal/platform/database"
)

// Mongo runs the dashboard aggregations against the order and reservation
// collections.
type Mongo struct {
	orders       *mongo.Collection
	reservations *mongo.Collection
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{
		orders:       db.Collection(database.CollOrders),
		reservations: db.Collection(database.CollReservations),
	}
}

func (r *Mongo) TotalOrders(ctx context.Context) (int64, error) {
	total, err := r.orders.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return total, nil
}

// TotalRevenue sums totalAmount over Completed orders only.
func (r *Mongo) TotalRevenue(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": "Completed"}}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"revenue": bson.M{"$sum": "$totalAmount"},
		}}},
	}
	cursor, err := r.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("aggregate revenue: %w", err)
	}
	var out []struct {
		Revenue float64 `bson:"revenue"`
	}
	if err := cursor.All(ctx, &out); err != nil {
		return 0, fmt.Errorf("decode revenue: %w", err)
	}
	if len(out) == 0 {
		return 0, nil
	}
	return out[0].Revenue, nil
}

func (r *Mongo) TotalReservations(ctx context.Context) (int64, error) {
	total, err := r.reservations.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count reservations: %w", err)
	}
	return total, nil
}

// ActiveReservations counts bookings still in play, Pending or Confirmed.
func (r *Mongo) ActiveReservations(ctx context.Context) (int64, error) {
	total, err := r.reservations.CountDocuments(ctx, bson.M{
		"status": bson.M{"$in": bson.A{"Pending", "Confirmed"}},
	})
	if err != nil {
		return 0, fmt.Errorf("count active reservations: %w", err)
	}
	return total, nil
}

func (r *Mongo) OrdersByStatus(ctx context.Context) ([]domain.StatusCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
	cursor, err := r.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate orders by status: %w", err)
	}
	counts := []domain.StatusCount{}
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("decode orders by status: %w", err)
	}
	return counts, nil
}

// OrdersLastSevenDays buckets orders per calendar day since midnight seven
// days ago. Revenue only counts Completed orders.
func (r *Mongo) OrdersLastSevenDays(ctx context.Context, now time.Time) ([]domain.DailyBucket, error) {
	start := now.UTC().Truncate(24 * time.Hour).AddDate(0, 0, -6)
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"createdAt": bson.M{"$gte": start}}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": "%Y-%m-%d",
				"date":   "$createdAt",
			}},
			"orders": bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$status", "Completed"}},
				"$totalAmount",
				0,
			}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
	cursor, err := r.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate daily orders: %w", err)
	}
	buckets := []domain.DailyBucket{}
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, fmt.Errorf("decode daily orders: %w", err)
	}
	return buckets, nil
}
