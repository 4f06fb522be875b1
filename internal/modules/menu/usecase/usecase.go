package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"pizzaUnlimitedApi/internal/modules/menu/domain"
	"pizzaUnlimitedApi/internal/shared/pagination"
)

// Repository is the persistence surface the menu usecases depend on.
type Repository interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	CategoryByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error)
	CategoryNameExists(ctx context.Context, name string) (bool, error)
	InsertCategory(ctx context.Context, category *domain.Category) error
	UpdateCategory(ctx context.Context, id primitive.ObjectID, patch domain.CategoryPatch) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id primitive.ObjectID) error
	DeleteItemsByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error)
	SetItemsAvailability(ctx context.Context, categoryID primitive.ObjectID, available bool) (int64, error)
	ItemsByCategory(ctx context.Context, categoryID primitive.ObjectID, q pagination.Query) ([]domain.Item, int64, error)
	ItemByID(ctx context.Context, id primitive.ObjectID) (*domain.Item, error)
	InsertItem(ctx context.Context, item *domain.Item) error
	UpdateItem(ctx context.Context, id primitive.ObjectID, patch domain.ItemPatch) (*domain.Item, error)
	DeleteItem(ctx context.Context, id primitive.ObjectID) error
}

type Usecase struct {
	repo Repository
}

func New(repo Repository) *Usecase {
	return &Usecase{repo: repo}
}

func (u *Usecase) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return u.repo.Categories(ctx)
}

// CreateCategory inserts a category after rejecting duplicate names.
func (u *Usecase) CreateCategory(ctx context.Context, name, description string, isOrderable bool) (*domain.Category, error) {
	exists, err := u.repo.CategoryNameExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateCategory
	}
	category := &domain.Category{Name: name, Description: description, IsOrderable: isOrderable}
	if err := u.repo.InsertCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory applies the patch and, when IsOrderable changed, cascades the
// new flag onto every item of the category. The cascade is a one-way overwrite:
// items previously disabled by hand are reset along with the rest. A cascade
// failure after the category write is logged and reported but leaves the
// category update in place (retryable, not atomic).
func (u *Usecase) UpdateCategory(ctx context.Context, id primitive.ObjectID, patch domain.CategoryPatch) (*domain.Category, error) {
	current, err := u.repo.CategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// An empty $set is rejected by the server, so a fieldless patch short-circuits.
	if patch.IsEmpty() {
		return current, nil
	}
	category, err := u.repo.UpdateCategory(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if patch.IsOrderable != nil {
		modified, err := u.repo.SetItemsAvailability(ctx, id, *patch.IsOrderable)
		if err != nil {
			slog.Warn("availability cascade failed, category updated without items",
				slog.String("categoryId", id.Hex()),
				slog.Bool("isOrderable", *patch.IsOrderable),
				slog.Any("error", err),
			)
			return nil, fmt.Errorf("availability cascade: %w", err)
		}
		slog.Info("availability cascade applied",
			slog.String("categoryId", id.Hex()),
			slog.Bool("isOrderable", *patch.IsOrderable),
			slog.Int64("items", modified),
		)
	}
	return category, nil
}

// DeleteCategory removes the category together with all of its items and
// returns the deleted category and item count.
func (u *Usecase) DeleteCategory(ctx context.Context, id primitive.ObjectID) (*domain.Category, int64, error) {
	category, err := u.repo.CategoryByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	deleted, err := u.repo.DeleteItemsByCategory(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	if err := u.repo.DeleteCategory(ctx, id); err != nil {
		return nil, 0, err
	}
	return category, deleted, nil
}

func (u *Usecase) ListItems(ctx context.Context, categoryID primitive.ObjectID, q pagination.Query) ([]domain.Item, int64, error) {
	return u.repo.ItemsByCategory(ctx, categoryID, q)
}

func (u *Usecase) GetItem(ctx context.Context, id primitive.ObjectID) (*domain.Item, error) {
	return u.repo.ItemByID(ctx, id)
}

// CreateItem inserts an item under an existing category. New items inherit the
// category's orderable flag as their initial availability.
func (u *Usecase) CreateItem(ctx context.Context, categoryID primitive.ObjectID, name, description, image string, price float64) (*domain.Item, *domain.Category, error) {
	category, err := u.repo.CategoryByID(ctx, categoryID)
	if err != nil {
		return nil, nil, err
	}
	item := &domain.Item{
		Name:        name,
		Description: description,
		Price:       price,
		Image:       image,
		CategoryID:  categoryID,
		Available:   category.IsOrderable,
	}
	if err := u.repo.InsertItem(ctx, item); err != nil {
		return nil, nil, err
	}
	return item, category, nil
}

// UpdateItem applies the patch; when the item is being moved, the target
// category must exist.
func (u *Usecase) UpdateItem(ctx context.Context, id primitive.ObjectID, patch domain.ItemPatch) (*domain.Item, error) {
	current, err := u.repo.ItemByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return current, nil
	}
	if patch.CategoryID != nil {
		if _, err := u.repo.CategoryByID(ctx, *patch.CategoryID); err != nil {
			return nil, err
		}
	}
	return u.repo.UpdateItem(ctx, id, patch)
}

func (u *Usecase) DeleteItem(ctx context.Context, id primitive.ObjectID) (*domain.Item, error) {
	item, err := u.repo.ItemByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.repo.DeleteItem(ctx, id); err != nil {
		return nil, err
	}
	return item, nil
}
