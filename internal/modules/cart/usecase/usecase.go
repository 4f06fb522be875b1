package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"pizzaUnlimitedApi/internal/modules/cart/domain"
)

// Repository is the persistence surface the cart usecases depend on.
type Repository interface {
	ByUser(ctx context.Context, userID string) (*domain.Cart, error)
	AddItem(ctx context.Context, userID string, itemID primitive.ObjectID, quantity int) error
	SetQuantity(ctx context.Context, userID string, itemID primitive.ObjectID, quantity int) error
	RemoveItem(ctx context.Context, userID string, itemID primitive.ObjectID, requireLine bool) error
	ResolveItems(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.ResolvedItem, error)
}

type Usecase struct {
	repo Repository
}

func New(repo Repository) *Usecase {
	return &Usecase{repo: repo}
}

// ViewLine is a cart line joined with its menu item details.
type ViewLine struct {
	ItemID   primitive.ObjectID `json:"item"`
	Name     string             `json:"name"`
	Price    float64            `json:"price"`
	Image    string             `json:"image"`
	Quantity int                `json:"quantity"`
	Subtotal float64            `json:"subtotal"`
}

// View is the cart as the storefront renders it.
type View struct {
	Items []ViewLine `json:"items"`
	Total float64    `json:"total"`
}

func (u *Usecase) Add(ctx context.Context, userID string, itemID primitive.ObjectID, quantity int) error {
	return u.repo.AddItem(ctx, userID, itemID, quantity)
}

// Mine returns the resolved cart; a user without a cart document gets an
// empty view, not an error. Lines whose menu item has since been deleted are
// skipped.
func (u *Usecase) Mine(ctx context.Context, userID string) (*View, error) {
	cart, err := u.repo.ByUser(ctx, userID)
	if errors.Is(err, domain.ErrCartNotFound) {
		return &View{Items: []ViewLine{}}, nil
	}
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(cart.Items))
	for _, line := range cart.Items {
		ids = append(ids, line.ItemID)
	}
	resolved, err := u.repo.ResolveItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	view := &View{Items: []ViewLine{}}
	for _, line := range cart.Items {
		item, ok := resolved[line.ItemID]
		if !ok {
			continue
		}
		subtotal := item.Price * float64(line.Quantity)
		view.Items = append(view.Items, ViewLine{
			ItemID:   line.ItemID,
			Name:     item.Name,
			Price:    item.Price,
			Image:    item.Image,
			Quantity: line.Quantity,
			Subtotal: subtotal,
		})
		view.Total += subtotal
	}
	return view, nil
}

// Count returns the number of distinct items, not the summed quantities.
func (u *Usecase) Count(ctx context.Context, userID string) (int, error) {
	cart, err := u.repo.ByUser(ctx, userID)
	if errors.Is(err, domain.ErrCartNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return cart.DistinctCount(), nil
}

func (u *Usecase) SetQuantity(ctx context.Context, userID string, itemID primitive.ObjectID, quantity int) error {
	return u.repo.SetQuantity(ctx, userID, itemID, quantity)
}

// Remove drops the line; removing an item that is not in the cart succeeds.
func (u *Usecase) Remove(ctx context.Context, userID string, itemID primitive.ObjectID) error {
	err := u.repo.RemoveItem(ctx, userID, itemID, false)
	if errors.Is(err, domain.ErrCartNotFound) {
		return nil
	}
	return err
}
