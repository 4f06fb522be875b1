package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"pizzaUnlimitedApi/internal/modules/reservations/domain"
	"pizzaUnlimitedApi/internal/platform/events"
	"pizzaUnlimitedApi/internal/shared/pagination"
	"pizzaUnlimitedApi/internal/shared/transition"
)

type fakeRepo struct {
	reservations map[primitive.ObjectID]*domain.Reservation
	casLosers    map[primitive.ObjectID]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		reservations: map[primitive.ObjectID]*domain.Reservation{},
		casLosers:    map[primitive.ObjectID]bool{},
	}
}

func (f *fakeRepo) add(reservation domain.Reservation) primitive.ObjectID {
	id := primitive.NewObjectID()
	reservation.ID = id
	f.reservations[id] = &reservation
	return id
}

func (f *fakeRepo) Insert(_ context.Context, reservation *domain.Reservation) error {
	reservation.ID = primitive.NewObjectID()
	copied := *reservation
	f.reservations[reservation.ID] = &copied
	return nil
}

func (f *fakeRepo) ByID(_ context.Context, id primitive.ObjectID) (*domain.Reservation, error) {
	reservation, ok := f.reservations[id]
	if !ok {
		return nil, domain.ErrReservationNotFound
	}
	copied := *reservation
	return &copied, nil
}

func (f *fakeRepo) ListByUser(_ context.Context, userID string, _ pagination.Query) ([]domain.Reservation, int64, error) {
	out := []domain.Reservation{}
	for _, r := range f.reservations {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) List(_ context.Context, _ pagination.Query) ([]domain.Reservation, int64, error) {
	out := []domain.Reservation{}
	for _, r := range f.reservations {
		out = append(out, *r)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, from, to domain.Status) error {
	reservation, ok := f.reservations[id]
	if !ok || reservation.Status != from || f.casLosers[id] {
		return domain.ErrStatusConflict
	}
	reservation.Status = to
	return nil
}

type recordingPublisher struct {
	published []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) {
	p.published = append(p.published, event)
}

func TestCreateStartsPending(t *testing.T) {
	repo := newFakeRepo()
	pub := &recordingPublisher{}
	uc := New(repo, pub)

	reservation, err := uc.Create(context.Background(), "u1", CreateInput{
		Name:        "Asha",
		PeopleCount: 4,
		Date:        time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Time:        "19:30",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reservation.Status != domain.StatusPending {
		t.Fatalf("new reservations must start Pending, got %q", reservation.Status)
	}
	if len(pub.published) != 1 || pub.published[0].Topic() != "reservations.created" {
		t.Fatalf("expected one reservations.created event, got %+v", pub.published)
	}
}

func TestCancelMineReservation(t *testing.T) {
	repo := newFakeRepo()
	pending := repo.add(domain.Reservation{UserID: "u1", Status: domain.StatusPending})
	confirmed := repo.add(domain.Reservation{UserID: "u1", Status: domain.StatusConfirmed})
	foreign := repo.add(domain.Reservation{UserID: "u2", Status: domain.StatusPending})
	pub := &recordingPublisher{}
	uc := New(repo, pub)

	reservation, err := uc.CancelMine(context.Background(), "u1", pending)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reservation.Status != domain.StatusCancelled {
		t.Fatalf("expected Cancelled, got %q", reservation.Status)
	}
	if len(pub.published) != 1 || pub.published[0].Topic() != "reservations.updated" {
		t.Fatalf("expected a reservations.updated event, got %+v", pub.published)
	}

	if _, err := uc.CancelMine(context.Background(), "u1", confirmed); !errors.Is(err, domain.ErrNotCancellable) {
		t.Fatalf("expected ErrNotCancellable for confirmed reservation, got %v", err)
	}
	if _, err := uc.CancelMine(context.Background(), "u1", foreign); !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestSetStatusReservation(t *testing.T) {
	repo := newFakeRepo()
	confirmed := repo.add(domain.Reservation{UserID: "u1", Status: domain.StatusConfirmed})
	pub := &recordingPublisher{}
	uc := New(repo, pub)

	// The restaurant may cancel a Confirmed booking; the customer may not.
	reservation, err := uc.SetStatus(context.Background(), confirmed, domain.StatusCancelled)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reservation.Status != domain.StatusCancelled {
		t.Fatalf("expected Cancelled, got %q", reservation.Status)
	}

	if _, err := uc.SetStatus(context.Background(), confirmed, domain.StatusConfirmed); !errors.Is(err, transition.ErrTerminalState) {
		t.Fatalf("expected ErrTerminalState, got %v", err)
	}
}

func TestSetStatusReservationLostRace(t *testing.T) {
	repo := newFakeRepo()
	pending := repo.add(domain.Reservation{UserID: "u1", Status: domain.StatusPending})
	repo.casLosers[pending] = true
	pub := &recordingPublisher{}
	uc := New(repo, pub)

	if _, err := uc.SetStatus(context.Background(), pending, domain.StatusConfirmed); !errors.Is(err, domain.ErrStatusConflict) {
		t.Fatalf("expected ErrStatusConflict, got %v", err)
	}
	if len(pub.published) != 0 {
		t.Fatalf("no event must be published on a lost race")
	}
}
