package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pizzaUnlimitedApi/internal/modules/reviews/domain"
	"pizzaUnlimitedApi/internal/platform/database"
	"pizzaUnlimitedApi/internal/shared/pagination"
)

// Mongo persists reviews.
type Mongo struct {
	reviews *mongo.Collection
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{reviews: db.Collection(database.CollReviews)}
}

func (r *Mongo) Insert(ctx context.Context, review *domain.Review) error {
	result, err := r.reviews.InsertOne(ctx, review)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	review.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Mongo) List(ctx context.Context, q pagination.Query) ([]domain.Review, int64, error) {
	total, err := r.reviews.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(q.Skip()).
		SetLimit(int64(q.Normalize().Limit))
	cursor, err := r.reviews.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find reviews: %w", err)
	}
	reviews := []domain.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, 0, fmt.Errorf("decode reviews: %w", err)
	}
	return reviews, total, nil
}

func (r *Mongo) ByID(ctx context.Context, id primitive.ObjectID) (*domain.Review, error) {
	var review domain.Review
	err := r.reviews.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	return &review, nil
}

func (r *Mongo) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.reviews.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}
