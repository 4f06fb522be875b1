package usecase

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"pizzaUnlimitedApi/internal/modules/menu/domain"
	"pizzaUnlimitedApi/internal/shared/pagination"
)

type fakeRepo struct {
	categories map[primitive.ObjectID]*domain.Category
	items      map[primitive.ObjectID]*domain.Item
	cascadeErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		categories: map[primitive.ObjectID]*domain.Category{},
		items:      map[primitive.ObjectID]*domain.Item{},
	}
}

func (f *fakeRepo) addCategory(name string, orderable bool) primitive.ObjectID {
	id := primitive.NewObjectID()
	f.categories[id] = &domain.Category{ID: id, Name: name, IsOrderable: orderable}
	return id
}

func (f *fakeRepo) addItem(categoryID primitive.ObjectID, name string, available bool) primitive.ObjectID {
	id := primitive.NewObjectID()
	f.items[id] = &domain.Item{ID: id, Name: name, CategoryID: categoryID, Available: available, Price: 100}
	return id
}

func (f *fakeRepo) Categories(context.Context) ([]domain.Category, error) {
	out := []domain.Category{}
	for _, c := range f.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeRepo) CategoryByID(_ context.Context, id primitive.ObjectID) (*domain.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeRepo) CategoryNameExists(_ context.Context, name string) (bool, error) {
	for _, c := range f.categories {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) InsertCategory(_ context.Context, category *domain.Category) error {
	category.ID = primitive.NewObjectID()
	copied := *category
	f.categories[category.ID] = &copied
	return nil
}

func (f *fakeRepo) UpdateCategory(_ context.Context, id primitive.ObjectID, patch domain.CategoryPatch) (*domain.Category, error) {
	if patch.IsEmpty() {
		// Matches the server's rejection of an empty $set document.
		return nil, errors.New("'$set' is empty")
	}
	c, ok := f.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if patch.IsOrderable != nil {
		c.IsOrderable = *patch.IsOrderable
	}
	copied := *c
	return &copied, nil
}

func (f *fakeRepo) DeleteCategory(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(f.categories, id)
	return nil
}

func (f *fakeRepo) DeleteItemsByCategory(_ context.Context, categoryID primitive.ObjectID) (int64, error) {
	var deleted int64
	for id, item := range f.items {
		if item.CategoryID == categoryID {
			delete(f.items, id)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeRepo) SetItemsAvailability(_ context.Context, categoryID primitive.ObjectID, available bool) (int64, error) {
	if f.cascadeErr != nil {
		return 0, f.cascadeErr
	}
	var modified int64
	for _, item := range f.items {
		if item.CategoryID == categoryID {
			item.Available = available
			modified++
		}
	}
	return modified, nil
}

func (f *fakeRepo) ItemsByCategory(_ context.Context, categoryID primitive.ObjectID, _ pagination.Query) ([]domain.Item, int64, error) {
	out := []domain.Item{}
	for _, item := range f.items {
		if item.CategoryID == categoryID {
			out = append(out, *item)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) ItemByID(_ context.Context, id primitive.ObjectID) (*domain.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakeRepo) InsertItem(_ context.Context, item *domain.Item) error {
	item.ID = primitive.NewObjectID()
	copied := *item
	f.items[item.ID] = &copied
	return nil
}

func (f *fakeRepo) UpdateItem(_ context.Context, id primitive.ObjectID, patch domain.ItemPatch) (*domain.Item, error) {
	if patch.IsEmpty() {
		return nil, errors.New("'$set' is empty")
	}
	item, ok := f.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}
	if patch.Available != nil {
		item.Available = *patch.Available
	}
	if patch.CategoryID != nil {
		item.CategoryID = *patch.CategoryID
	}
	copied := *item
	return &copied, nil
}

func (f *fakeRepo) DeleteItem(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.items[id]; !ok {
		return domain.ErrItemNotFound
	}
	delete(f.items, id)
	return nil
}

func boolPtr(v bool) *bool { return &v }

func TestCreateCategoryRejectsDuplicateName(t *testing.T) {
	repo := newFakeRepo()
	repo.addCategory("Pizzas", true)
	uc := New(repo)

	if _, err := uc.CreateCategory(context.Background(), "Pizzas", "", true); !errors.Is(err, domain.ErrDuplicateCategory) {
		t.Fatalf("expected ErrDuplicateCategory, got %v", err)
	}
}

func TestUpdateCategoryCascadesAvailability(t *testing.T) {
	repo := newFakeRepo()
	pizzas := repo.addCategory("Pizzas", true)
	drinks := repo.addCategory("Drinks", true)
	a := repo.addItem(pizzas, "Margherita", true)
	b := repo.addItem(pizzas, "Pepperoni", true)
	c := repo.addItem(pizzas, "Farmhouse", false)
	other := repo.addItem(drinks, "Cola", true)
	uc := New(repo)

	if _, err := uc.UpdateCategory(context.Background(), pizzas, domain.CategoryPatch{IsOrderable: boolPtr(false)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, id := range []primitive.ObjectID{a, b, c} {
		if repo.items[id].Available {
			t.Fatalf("item %s should have been disabled by the cascade", repo.items[id].Name)
		}
	}
	if !repo.items[other].Available {
		t.Fatalf("item of another category must not be touched")
	}

	// Turning the category back on resets every item, including ones that were
	// individually disabled before.
	if _, err := uc.UpdateCategory(context.Background(), pizzas, domain.CategoryPatch{IsOrderable: boolPtr(true)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.items[c].Available {
		t.Fatalf("cascade is an unconditional overwrite, item should be available again")
	}
}

func TestUpdateCategoryWithoutToggleSkipsCascade(t *testing.T) {
	repo := newFakeRepo()
	pizzas := repo.addCategory("Pizzas", true)
	item := repo.addItem(pizzas, "Margherita", false)
	uc := New(repo)

	name := "Wood-fired pizzas"
	if _, err := uc.UpdateCategory(context.Background(), pizzas, domain.CategoryPatch{Name: &name}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.items[item].Available {
		t.Fatalf("rename must not touch item availability")
	}
}

func TestUpdateCategoryEmptyPatchReturnsCurrent(t *testing.T) {
	repo := newFakeRepo()
	pizzas := repo.addCategory("Pizzas", true)
	uc := New(repo)

	category, err := uc.UpdateCategory(context.Background(), pizzas, domain.CategoryPatch{})
	if err != nil {
		t.Fatalf("a fieldless update must succeed, got %v", err)
	}
	if category.Name != "Pizzas" || !category.IsOrderable {
		t.Fatalf("expected the stored category back, got %+v", category)
	}
}

func TestUpdateItemEmptyPatchReturnsCurrent(t *testing.T) {
	repo := newFakeRepo()
	pizzas := repo.addCategory("Pizzas", true)
	id := repo.addItem(pizzas, "Margherita", true)
	uc := New(repo)

	item, err := uc.UpdateItem(context.Background(), id, domain.ItemPatch{})
	if err != nil {
		t.Fatalf("a fieldless update must succeed, got %v", err)
	}
	if item.Name != "Margherita" || item.Price != 100 {
		t.Fatalf("expected the stored item back, got %+v", item)
	}
}

func TestUpdateCategoryCascadeFailureIsReported(t *testing.T) {
	repo := newFakeRepo()
	pizzas := repo.addCategory("Pizzas", true)
	repo.cascadeErr = errors.New("write concern error")
	uc := New(repo)

	_, err := uc.UpdateCategory(context.Background(), pizzas, domain.CategoryPatch{IsOrderable: boolPtr(false)})
	if err == nil {
		t.Fatalf("expected cascade failure to surface")
	}
	// The category write itself is kept: retryable, not rolled back.
	if repo.categories[pizzas].IsOrderable {
		t.Fatalf("category update should remain applied")
	}
}

func TestDeleteCategoryRemovesItems(t *testing.T) {
	repo := newFakeRepo()
	pizzas := repo.addCategory("Pizzas", true)
	repo.addItem(pizzas, "Margherita", true)
	repo.addItem(pizzas, "Pepperoni", true)
	uc := New(repo)

	category, deleted, err := uc.DeleteCategory(context.Background(), pizzas)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if category.Name != "Pizzas" || deleted != 2 {
		t.Fatalf("expected Pizzas with 2 deleted items, got %q with %d", category.Name, deleted)
	}
	if len(repo.items) != 0 {
		t.Fatalf("items should be gone")
	}
}

func TestCreateItemInheritsCategoryOrderability(t *testing.T) {
	repo := newFakeRepo()
	closed := repo.addCategory("Seasonal", false)
	uc := New(repo)

	item, _, err := uc.CreateItem(context.Background(), closed, "Pumpkin pizza", "", "", 250)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Available {
		t.Fatalf("item under a non-orderable category must start unavailable")
	}
}

func TestUpdateItemValidatesTargetCategory(t *testing.T) {
	repo := newFakeRepo()
	pizzas := repo.addCategory("Pizzas", true)
	item := repo.addItem(pizzas, "Margherita", true)
	uc := New(repo)

	missing := primitive.NewObjectID()
	if _, err := uc.UpdateItem(context.Background(), item, domain.ItemPatch{CategoryID: &missing}); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}
