package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pizzaUnlimitedApi/internal/modules/menu/domain"
	"pizzaUnlimitedApi/internal/platform/database"
	"pizzaUnlimitedApi/internal/shared/pagination"
)

// Mongo persists menu categories and items.
type Mongo struct {
	categories *mongo.Collection
	items      *mongo.Collection
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{
		categories: db.Collection(database.CollMenuCategories),
		items:      db.Collection(database.CollMenuItems),
	}
}

func (r *Mongo) Categories(ctx context.Context) ([]domain.Category, error) {
	cursor, err := r.categories.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find categories: %w", err)
	}
	categories := []domain.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return categories, nil
}

func (r *Mongo) CategoryByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error) {
	var category domain.Category
	err := r.categories.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	return &category, nil
}

func (r *Mongo) CategoryNameExists(ctx context.Context, name string) (bool, error) {
	count, err := r.categories.CountDocuments(ctx, bson.M{"name": name})
	if err != nil {
		return false, fmt.Errorf("count categories by name: %w", err)
	}
	return count > 0, nil
}

func (r *Mongo) InsertCategory(ctx context.Context, category *domain.Category) error {
	result, err := r.categories.InsertOne(ctx, category)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	category.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Mongo) UpdateCategory(ctx context.Context, id primitive.ObjectID, patch domain.CategoryPatch) (*domain.Category, error) {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.IsOrderable != nil {
		set["isOrderable"] = *patch.IsOrderable
	}

	var category domain.Category
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.categories.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return &category, nil
}

func (r *Mongo) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.categories.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// DeleteItemsByCategory removes every item of the category and returns the count.
func (r *Mongo) DeleteItemsByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error) {
	result, err := r.items.DeleteMany(ctx, bson.M{"category": categoryID})
	if err != nil {
		return 0, fmt.Errorf("delete items by category: %w", err)
	}
	return result.DeletedCount, nil
}

// SetItemsAvailability cascades the category's orderable flag onto all of its
// items as a single multi-document update. The write is not transactional with
// the category update; the caller logs partial application.
func (r *Mongo) SetItemsAvailability(ctx context.Context, categoryID primitive.ObjectID, available bool) (int64, error) {
	result, err := r.items.UpdateMany(ctx,
		bson.M{"category": categoryID},
		bson.M{"$set": bson.M{"available": available}},
	)
	if err != nil {
		return 0, fmt.Errorf("cascade availability: %w", err)
	}
	return result.ModifiedCount, nil
}

func (r *Mongo) ItemsByCategory(ctx context.Context, categoryID primitive.ObjectID, q pagination.Query) ([]domain.Item, int64, error) {
	filter := bson.M{"category": categoryID}
	total, err := r.items.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetSkip(q.Skip()).
		SetLimit(int64(q.Normalize().Limit))
	cursor, err := r.items.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find items: %w", err)
	}
	items := []domain.Item{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("decode items: %w", err)
	}
	return items, total, nil
}

func (r *Mongo) ItemByID(ctx context.Context, id primitive.ObjectID) (*domain.Item, error) {
	var item domain.Item
	err := r.items.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find item: %w", err)
	}
	return &item, nil
}

func (r *Mongo) InsertItem(ctx context.Context, item *domain.Item) error {
	result, err := r.items.InsertOne(ctx, item)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	item.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Mongo) UpdateItem(ctx context.Context, id primitive.ObjectID, patch domain.ItemPatch) (*domain.Item, error) {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}
	if patch.Available != nil {
		set["available"] = *patch.Available
	}
	if patch.CategoryID != nil {
		set["category"] = *patch.CategoryID
	}

	var item domain.Item
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.items.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return &item, nil
}

func (r *Mongo) DeleteItem(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.items.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}
