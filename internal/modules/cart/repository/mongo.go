package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pizzaUnlimitedApi/internal/modules/cart/domain"
	"pizzaUnlimitedApi/internal/platform/database"
)

// Mongo persists carts, one document per user, mutated with atomic update
// operators so concurrent requests from the same user never clobber each
// other's lines.
type Mongo struct {
	carts *mongo.Collection
	items *mongo.Collection
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{
		carts: db.Collection(database.CollCarts),
		items: db.Collection(database.CollMenuItems),
	}
}

func (r *Mongo) ByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	var cart domain.Cart
	err := r.carts.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find cart: %w", err)
	}
	return &cart, nil
}

// addItemRetries bounds the restarts of the two-step add under contention.
const addItemRetries = 3

// AddItem increments the line in place when it exists, otherwise pushes a new
// line, upserting the cart document on first use. The two-step dance keeps
// both paths single atomic writes. Two concurrent first adds of the same item
// can both miss the increment step; the unique index on userId turns the
// losing upsert into a duplicate-key error, and the whole sequence is retried
// so the loser lands on the now-existing line.
func (r *Mongo) AddItem(ctx context.Context, userID string, itemID primitive.ObjectID, quantity int) error {
	return retryOnDuplicateKey(addItemRetries, func() error {
		result, err := r.carts.UpdateOne(ctx,
			bson.M{"userId": userID, "items.item": itemID},
			bson.M{
				"$inc":         bson.M{"items.$.quantity": quantity},
				"$currentDate": bson.M{"updatedAt": true},
			},
		)
		if err != nil {
			return fmt.Errorf("increment cart line: %w", err)
		}
		if result.MatchedCount > 0 {
			return nil
		}

		_, err = r.carts.UpdateOne(ctx,
			bson.M{"userId": userID, "items.item": bson.M{"$ne": itemID}},
			bson.M{
				"$push":        bson.M{"items": domain.Line{ItemID: itemID, Quantity: quantity}},
				"$setOnInsert": bson.M{"userId": userID},
				"$currentDate": bson.M{"updatedAt": true},
			},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("push cart line: %w", err)
		}
		return nil
	})
}

// retryOnDuplicateKey reruns the write while it keeps losing the unique-index
// race; any other error aborts immediately.
func retryOnDuplicateKey(attempts int, write func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		err = write()
		if err == nil || !mongo.IsDuplicateKeyError(err) {
			return err
		}
	}
	return err
}

// SetQuantity overwrites the line's quantity; zero or less pulls the line out.
func (r *Mongo) SetQuantity(ctx context.Context, userID string, itemID primitive.ObjectID, quantity int) error {
	if quantity <= 0 {
		return r.RemoveItem(ctx, userID, itemID, true)
	}
	result, err := r.carts.UpdateOne(ctx,
		bson.M{"userId": userID, "items.item": itemID},
		bson.M{
			"$set":         bson.M{"items.$.quantity": quantity},
			"$currentDate": bson.M{"updatedAt": true},
		},
	)
	if err != nil {
		return fmt.Errorf("set cart quantity: %w", err)
	}
	if result.MatchedCount == 0 {
		return r.missReason(ctx, userID)
	}
	return nil
}

// RemoveItem pulls the line. With requireLine the absence of the line is an
// error; otherwise removal is idempotent.
func (r *Mongo) RemoveItem(ctx context.Context, userID string, itemID primitive.ObjectID, requireLine bool) error {
	result, err := r.carts.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{
			"$pull":        bson.M{"items": bson.M{"item": itemID}},
			"$currentDate": bson.M{"updatedAt": true},
		},
	)
	if err != nil {
		return fmt.Errorf("pull cart line: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrCartNotFound
	}
	if requireLine && result.ModifiedCount == 0 {
		return domain.ErrItemNotInCart
	}
	return nil
}

// missReason distinguishes "no cart document" from "cart exists but the line
// does not" after a zero-match positional update.
func (r *Mongo) missReason(ctx context.Context, userID string) error {
	count, err := r.carts.CountDocuments(ctx, bson.M{"userId": userID})
	if err != nil {
		return fmt.Errorf("count carts: %w", err)
	}
	if count == 0 {
		return domain.ErrCartNotFound
	}
	return domain.ErrItemNotInCart
}

// ResolveItems loads name, price and image for the given menu items.
func (r *Mongo) ResolveItems(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.ResolvedItem, error) {
	cursor, err := r.items.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("resolve cart items: %w", err)
	}
	var docs []struct {
		ID    primitive.ObjectID `bson:"_id"`
		Name  string             `bson:"name"`
		Price float64            `bson:"price"`
		Image string             `bson:"image"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode cart items: %w", err)
	}
	out := make(map[primitive.ObjectID]domain.ResolvedItem, len(docs))
	for _, doc := range docs {
		out[doc.ID] = domain.ResolvedItem{Name: doc.Name, Price: doc.Price, Image: doc.Image}
	}
	return out, nil
}
