package usecase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"pizzaUnlimitedApi/internal/modules/orders/domain"
	"pizzaUnlimitedApi/internal/platform/events"
	"pizzaUnlimitedApi/internal/shared/pagination"
)

// Repository is the persistence surface the order usecases depend on.
type Repository interface {
	Insert(ctx context.Context, order *domain.Order) error
	ByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
	ByIDForUser(ctx context.Context, id primitive.ObjectID, userID string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string, q pagination.Query) ([]domain.Order, int64, error)
	List(ctx context.Context, status string, q pagination.Query) ([]domain.Order, int64, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to domain.Status) error
	ResolveItems(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.ResolvedItem, error)
}

// InvoiceConfig carries the payment identity stamped on invoices.
type InvoiceConfig struct {
	UPIAddress string
	PayeeName  string
}

type Usecase struct {
	repo      Repository
	publisher events.Publisher
	invoice   InvoiceConfig
	now       func() time.Time
}

func New(repo Repository, publisher events.Publisher, invoice InvoiceConfig) *Usecase {
	return &Usecase{repo: repo, publisher: publisher, invoice: invoice, now: time.Now}
}

// PlaceInput is the validated order submission.
type PlaceInput struct {
	Items         []domain.LineItem
	TotalAmount   float64
	PaymentMethod string
	TableNumber   string
	CustomerPhone string
	CustomerEmail string
	OrderNotes    string
}

// Place persists a new Pending order and announces it.
func (u *Usecase) Place(ctx context.Context, userID string, input PlaceInput) (*domain.Order, error) {
	order := &domain.Order{
		UserID:        userID,
		Items:         input.Items,
		TotalAmount:   input.TotalAmount,
		Status:        domain.StatusPending,
		PaymentMethod: input.PaymentMethod,
		TableNumber:   input.TableNumber,
		CustomerPhone: input.CustomerPhone,
		CustomerEmail: input.CustomerEmail,
		OrderNotes:    input.OrderNotes,
		CreatedAt:     u.now().UTC(),
	}
	if err := u.repo.Insert(ctx, order); err != nil {
		return nil, err
	}
	u.publisher.Publish(ctx, events.Event{
		Entity:     events.EntityOrders,
		Action:     events.ActionCreated,
		ResourceID: order.ID.Hex(),
		Data:       order,
	})
	return order, nil
}

func (u *Usecase) ListMine(ctx context.Context, userID string, q pagination.Query) ([]domain.Order, int64, error) {
	return u.repo.ListByUser(ctx, userID, q)
}

func (u *Usecase) GetMine(ctx context.Context, userID string, id primitive.ObjectID) (*domain.Order, error) {
	return u.repo.ByIDForUser(ctx, id, userID)
}

func (u *Usecase) ListAll(ctx context.Context, status string, q pagination.Query) ([]domain.Order, int64, error) {
	return u.repo.List(ctx, status, q)
}

func (u *Usecase) Get(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	return u.repo.ByID(ctx, id)
}

// CancelMine cancels the customer's own Pending order through the shared
// transition table and the owner-only policy layered on top of it.
func (u *Usecase) CancelMine(ctx context.Context, userID string, id primitive.ObjectID) (*domain.Order, error) {
	order, err := u.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := order.CancelByCustomer(userID)
	if err != nil {
		return nil, err
	}
	if err := u.repo.UpdateStatus(ctx, id, order.Status, next); err != nil {
		return nil, err
	}
	order.Status = next
	u.publishStatusChange(ctx, order)
	return order, nil
}

// SetStatus is the admin path: any move the table allows.
func (u *Usecase) SetStatus(ctx context.Context, id primitive.ObjectID, target domain.Status) (*domain.Order, error) {
	order, err := u.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := domain.Transitions.Apply(order.Status, target)
	if err != nil {
		return nil, err
	}
	if err := u.repo.UpdateStatus(ctx, id, order.Status, next); err != nil {
		return nil, err
	}
	order.Status = next
	u.publishStatusChange(ctx, order)
	return order, nil
}

// Invoice builds the priced invoice for the owner of the order.
func (u *Usecase) Invoice(ctx context.Context, userID string, id primitive.ObjectID) (*domain.Invoice, error) {
	order, err := u.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domain.ErrNotOwner
	}
	ids := make([]primitive.ObjectID, 0, len(order.Items))
	for _, line := range order.Items {
		ids = append(ids, line.ItemID)
	}
	resolved, err := u.repo.ResolveItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	return domain.BuildInvoice(order, resolved, u.invoice.UPIAddress, u.invoice.PayeeName)
}

func (u *Usecase) publishStatusChange(ctx context.Context, order *domain.Order) {
	u.publisher.Publish(ctx, events.Event{
		Entity:     events.EntityOrders,
		Action:     events.ActionUpdated,
		ResourceID: order.ID.Hex(),
		Data:       order,
	})
}
