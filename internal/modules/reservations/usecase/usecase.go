package usecase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"pizzaUnlimitedApi/internal/modules/reservations/domain"
	"pizzaUnlimitedApi/internal/platform/events"
	"pizzaUnlimitedApi/internal/shared/pagination"
)

// Repository is the persistence surface the reservation usecases depend on.
type Repository interface {
	Insert(ctx context.Context, reservation *domain.Reservation) error
	ByID(ctx context.Context, id primitive.ObjectID) (*domain.Reservation, error)
	ListByUser(ctx context.Context, userID string, q pagination.Query) ([]domain.Reservation, int64, error)
	List(ctx context.Context, q pagination.Query) ([]domain.Reservation, int64, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to domain.Status) error
}

type Usecase struct {
	repo      Repository
	publisher events.Publisher
	now       func() time.Time
}

func New(repo Repository, publisher events.Publisher) *Usecase {
	return &Usecase{repo: repo, publisher: publisher, now: time.Now}
}

// CreateInput is the validated reservation submission.
type CreateInput struct {
	Name           string
	PeopleCount    int
	Date           time.Time
	Time           string
	SpecialRequest string
}

func (u *Usecase) Create(ctx context.Context, userID string, input CreateInput) (*domain.Reservation, error) {
	now := u.now().UTC()
	reservation := &domain.Reservation{
		UserID:         userID,
		Name:           input.Name,
		PeopleCount:    input.PeopleCount,
		Date:           input.Date,
		Time:           input.Time,
		SpecialRequest: input.SpecialRequest,
		Status:         domain.StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := u.repo.Insert(ctx, reservation); err != nil {
		return nil, err
	}
	u.publisher.Publish(ctx, events.Event{
		Entity:     events.EntityReservations,
		Action:     events.ActionCreated,
		ResourceID: reservation.ID.Hex(),
		Data:       reservation,
	})
	return reservation, nil
}

func (u *Usecase) ListMine(ctx context.Context, userID string, q pagination.Query) ([]domain.Reservation, int64, error) {
	return u.repo.ListByUser(ctx, userID, q)
}

func (u *Usecase) ListAll(ctx context.Context, q pagination.Query) ([]domain.Reservation, int64, error) {
	return u.repo.List(ctx, q)
}

func (u *Usecase) Get(ctx context.Context, id primitive.ObjectID) (*domain.Reservation, error) {
	return u.repo.ByID(ctx, id)
}

// CancelMine cancels the customer's own Pending reservation through the shared
// transition table.
func (u *Usecase) CancelMine(ctx context.Context, userID string, id primitive.ObjectID) (*domain.Reservation, error) {
	reservation, err := u.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := reservation.CancelByCustomer(userID)
	if err != nil {
		return nil, err
	}
	if err := u.repo.UpdateStatus(ctx, id, reservation.Status, next); err != nil {
		return nil, err
	}
	reservation.Status = next
	u.publishStatusChange(ctx, reservation)
	return reservation, nil
}

// SetStatus is the admin path: any move the table allows.
func (u *Usecase) SetStatus(ctx context.Context, id primitive.ObjectID, target domain.Status) (*domain.Reservation, error) {
	reservation, err := u.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := domain.Transitions.Apply(reservation.Status, target)
	if err != nil {
		return nil, err
	}
	if err := u.repo.UpdateStatus(ctx, id, reservation.Status, next); err != nil {
		return nil, err
	}
	reservation.Status = next
	u.publishStatusChange(ctx, reservation)
	return reservation, nil
}

func (u *Usecase) publishStatusChange(ctx context.Context, reservation *domain.Reservation) {
	u.publisher.Publish(ctx, events.Event{
		Entity:     events.EntityReservations,
		Action:     events.ActionUpdated,
		ResourceID: reservation.ID.Hex(),
		Data:       reservation,
	})
}
