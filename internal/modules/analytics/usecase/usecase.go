package usecase

import (
	"context"
	"time"

	"pizzaUnlimitedApi/internal/modules/analytics/domain"
)

// Repository is the aggregation surface the dashboard depends on.
type Repository interface {
	TotalOrders(ctx context.Context) (int64, error)
	TotalRevenue(ctx context.Context) (float64, error)
	TotalReservations(ctx context.Context) (int64, error)
	ActiveReservations(ctx context.Context) (int64, error)
	OrdersByStatus(ctx context.Context) ([]domain.StatusCount, error)
	OrdersLastSevenDays(ctx context.Context, now time.Time) ([]domain.DailyBucket, error)
}

type Usecase struct {
	repo Repository
	now  func() time.Time
}

func New(repo Repository) *Usecase {
	return &Usecase{repo: repo, now: time.Now}
}

// Overview assembles the dashboard snapshot. The queries run sequentially;
// the dashboard is an admin page, not a hot path.
func (u *Usecase) Overview(ctx context.Context) (*domain.Overview, error) {
	overview := &domain.Overview{}

	var err error
	if overview.TotalOrders, err = u.repo.TotalOrders(ctx); err != nil {
		return nil, err
	}
	if overview.TotalRevenue, err = u.repo.TotalRevenue(ctx); err != nil {
		return nil, err
	}
	if overview.TotalReservations, err = u.repo.TotalReservations(ctx); err != nil {
		return nil, err
	}
	if overview.ActiveReservations, err = u.repo.ActiveReservations(ctx); err != nil {
		return nil, err
	}
	if overview.OrdersByStatus, err = u.repo.OrdersByStatus(ctx); err != nil {
		return nil, err
	}

	buckets, err := u.repo.OrdersLastSevenDays(ctx, u.now())
	if err != nil {
		return nil, err
	}
	for i := range buckets {
		buckets[i].Day = domain.DayName(buckets[i].Date)
	}
	overview.LastSevenDays = buckets

	return overview, nil
}
