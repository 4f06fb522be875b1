package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pizzaUnlimitedApi/internal/modules/reservations/domain"
	"pizzaUnlimitedApi/internal/platform/database"
	"pizzaUnlimitedApi/internal/shared/pagination"
)

// Mongo persists reservations.
type Mongo struct {
	reservations *mongo.Collection
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{reservations: db.Collection(database.CollReservations)}
}

func (r *Mongo) Insert(ctx context.Context, reservation *domain.Reservation) error {
	result, err := r.reservations.InsertOne(ctx, reservation)
	if err != nil {
		return fmt.Errorf("insert reservation: %w", err)
	}
	reservation.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Mongo) ByID(ctx context.Context, id primitive.ObjectID) (*domain.Reservation, error) {
	var reservation domain.Reservation
	err := r.reservations.FindOne(ctx, bson.M{"_id": id}).Decode(&reservation)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find reservation: %w", err)
	}
	return &reservation, nil
}

func (r *Mongo) ListByUser(ctx context.Context, userID string, q pagination.Query) ([]domain.Reservation, int64, error) {
	return r.list(ctx, bson.M{"userId": userID}, q)
}

func (r *Mongo) List(ctx context.Context, q pagination.Query) ([]domain.Reservation, int64, error) {
	return r.list(ctx, bson.M{}, q)
}

func (r *Mongo) list(ctx context.Context, filter bson.M, q pagination.Query) ([]domain.Reservation, int64, error) {
	total, err := r.reservations.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count reservations: %w", err)
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(q.Skip()).
		SetLimit(int64(q.Normalize().Limit))
	cursor, err := r.reservations.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find reservations: %w", err)
	}
	reservations := []domain.Reservation{}
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, 0, fmt.Errorf("decode reservations: %w", err)
	}
	return reservations, total, nil
}

// UpdateStatus is a conditional write on the previously read status; a zero
// match surfaces as a conflict rather than a silent lost update.
func (r *Mongo) UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to domain.Status) error {
	result, err := r.reservations.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to}, "$currentDate": bson.M{"updatedAt": true}},
	)
	if err != nil {
		return fmt.Errorf("update reservation status: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrStatusConflict
	}
	return nil
}
