package domain

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrDuplicateCategory = errors.New("category name already exists")
	ErrItemNotFound      = errors.New("menu item not found")
)

// Category groups menu items and gates their orderability: toggling IsOrderable
// cascades onto every item of the category.
type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description"`
	IsOrderable bool               `bson:"isOrderable" json:"isOrderable"`
}

// Item is a single orderable dish. Available is admin-settable per item but is
// force-overwritten whenever the owning category's IsOrderable flag changes.
type Item struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Image       string             `bson:"image,omitempty" json:"image"`
	CategoryID  primitive.ObjectID `bson:"category" json:"categoryId"`
	Available   bool               `bson:"available" json:"available"`
}

// CategoryPatch carries the optional fields of a category update. A nil field
// leaves the stored value untouched.
type CategoryPatch struct {
	Name        *string
	Description *string
	IsOrderable *bool
}

// IsEmpty reports whether the patch carries no fields to apply.
func (p CategoryPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.IsOrderable == nil
}

// ItemPatch carries the optional fields of an item update.
type ItemPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Image       *string
	Available   *bool
	CategoryID  *primitive.ObjectID
}

// IsEmpty reports whether the patch carries no fields to apply.
func (p ItemPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil &&
		p.Image == nil && p.Available == nil && p.CategoryID == nil
}
