package usecase

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"pizzaUnlimitedApi/internal/modules/orders/domain"
	"pizzaUnlimitedApi/internal/platform/events"
	"pizzaUnlimitedApi/internal/shared/pagination"
	"pizzaUnlimitedApi/internal/shared/transition"
)

type fakeRepo struct {
	orders    map[primitive.ObjectID]*domain.Order
	resolved  map[primitive.ObjectID]domain.ResolvedItem
	casLosers map[primitive.ObjectID]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		orders:    map[primitive.ObjectID]*domain.Order{},
		resolved:  map[primitive.ObjectID]domain.ResolvedItem{},
		casLosers: map[primitive.ObjectID]bool{},
	}
}

func (f *fakeRepo) add(order domain.Order) primitive.ObjectID {
	id := primitive.NewObjectID()
	order.ID = id
	f.orders[id] = &order
	return id
}

func (f *fakeRepo) Insert(_ context.Context, order *domain.Order) error {
	order.ID = primitive.NewObjectID()
	copied := *order
	f.orders[order.ID] = &copied
	return nil
}

func (f *fakeRepo) ByID(_ context.Context, id primitive.ObjectID) (*domain.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (f *fakeRepo) ByIDForUser(_ context.Context, id primitive.ObjectID, userID string) (*domain.Order, error) {
	order, ok := f.orders[id]
	if !ok || order.UserID != userID {
		return nil, domain.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (f *fakeRepo) ListByUser(_ context.Context, userID string, _ pagination.Query) ([]domain.Order, int64, error) {
	out := []domain.Order{}
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) List(_ context.Context, status string, _ pagination.Query) ([]domain.Order, int64, error) {
	out := []domain.Order{}
	for _, o := range f.orders {
		if status == "" || string(o.Status) == status {
			out = append(out, *o)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, from, to domain.Status) error {
	order, ok := f.orders[id]
	if !ok || order.Status != from || f.casLosers[id] {
		return domain.ErrStatusConflict
	}
	order.Status = to
	return nil
}

func (f *fakeRepo) ResolveItems(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.ResolvedItem, error) {
	out := map[primitive.ObjectID]domain.ResolvedItem{}
	for _, id := range ids {
		if item, ok := f.resolved[id]; ok {
			out[id] = item
		}
	}
	return out, nil
}

type recordingPublisher struct {
	published []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) {
	p.published = append(p.published, event)
}

func newUsecase(repo *fakeRepo) (*Usecase, *recordingPublisher) {
	pub := &recordingPublisher{}
	return New(repo, pub, InvoiceConfig{UPIAddress: "shop@upi", PayeeName: "PizzaUnlimited"}), pub
}

func TestPlacePublishesCreatedEvent(t *testing.T) {
	repo := newFakeRepo()
	uc, pub := newUsecase(repo)

	order, err := uc.Place(context.Background(), "u1", PlaceInput{
		Items:         []domain.LineItem{{ItemID: primitive.NewObjectID(), Quantity: 2}},
		TotalAmount:   500,
		PaymentMethod: "UPI",
		TableNumber:   "7",
		CustomerPhone: "9876543210",
		CustomerEmail: "u1@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != domain.StatusPending {
		t.Fatalf("new orders must start Pending, got %q", order.Status)
	}
	if len(pub.published) != 1 || pub.published[0].Topic() != "orders.created" {
		t.Fatalf("expected one orders.created event, got %+v", pub.published)
	}
}

func TestCancelMine(t *testing.T) {
	repo := newFakeRepo()
	pending := repo.add(domain.Order{UserID: "u1", Status: domain.StatusPending})
	ready := repo.add(domain.Order{UserID: "u1", Status: domain.StatusReady})
	foreign := repo.add(domain.Order{UserID: "u2", Status: domain.StatusPending})
	uc, pub := newUsecase(repo)

	order, err := uc.CancelMine(context.Background(), "u1", pending)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != domain.StatusCancelled {
		t.Fatalf("expected Cancelled, got %q", order.Status)
	}
	if len(pub.published) != 1 || pub.published[0].Topic() != "orders.updated" {
		t.Fatalf("expected an orders.updated event, got %+v", pub.published)
	}

	if _, err := uc.CancelMine(context.Background(), "u1", ready); !errors.Is(err, domain.ErrNotCancellable) {
		t.Fatalf("expected ErrNotCancellable for ready order, got %v", err)
	}
	if _, err := uc.CancelMine(context.Background(), "u1", foreign); !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestSetStatus(t *testing.T) {
	repo := newFakeRepo()
	ready := repo.add(domain.Order{UserID: "u1", Status: domain.StatusReady})
	uc, _ := newUsecase(repo)

	// Admin may cancel a Ready order; the customer path may not.
	order, err := uc.SetStatus(context.Background(), ready, domain.StatusCancelled)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != domain.StatusCancelled {
		t.Fatalf("expected Cancelled, got %q", order.Status)
	}

	if _, err := uc.SetStatus(context.Background(), ready, domain.StatusPreparing); !errors.Is(err, transition.ErrTerminalState) {
		t.Fatalf("expected ErrTerminalState, got %v", err)
	}
}

func TestSetStatusRejectsUnknownLiteral(t *testing.T) {
	repo := newFakeRepo()
	pending := repo.add(domain.Order{UserID: "u1", Status: domain.StatusPending})
	uc, _ := newUsecase(repo)

	if _, err := uc.SetStatus(context.Background(), pending, "Deleted"); !errors.Is(err, transition.ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget, got %v", err)
	}
}

func TestSetStatusLostRace(t *testing.T) {
	repo := newFakeRepo()
	pending := repo.add(domain.Order{UserID: "u1", Status: domain.StatusPending})
	repo.casLosers[pending] = true
	uc, pub := newUsecase(repo)

	if _, err := uc.SetStatus(context.Background(), pending, domain.StatusPreparing); !errors.Is(err, domain.ErrStatusConflict) {
		t.Fatalf("expected ErrStatusConflict, got %v", err)
	}
	if len(pub.published) != 0 {
		t.Fatalf("no event must be published on a lost race")
	}
}

func TestInvoice(t *testing.T) {
	repo := newFakeRepo()
	pizza := primitive.NewObjectID()
	repo.resolved[pizza] = domain.ResolvedItem{Name: "Margherita", Price: 250}
	id := repo.add(domain.Order{
		UserID: "u1",
		Items:  []domain.LineItem{{ItemID: pizza, Quantity: 2}},
	})
	uc, _ := newUsecase(repo)

	invoice, err := uc.Invoice(context.Background(), "u1", id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if invoice.Subtotal != 500 || invoice.Total != 610 {
		t.Fatalf("invoice math wrong: %+v", invoice)
	}

	if _, err := uc.Invoice(context.Background(), "u2", id); !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}
