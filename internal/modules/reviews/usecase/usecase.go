package usecase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"pizzaUnlimitedApi/internal/modules/reviews/domain"
	"pizzaUnlimitedApi/internal/shared/pagination"
)

// Repository is the persistence surface the review usecases depend on.
type Repository interface {
	Insert(ctx context.Context, review *domain.Review) error
	List(ctx context.Context, q pagination.Query) ([]domain.Review, int64, error)
	ByID(ctx context.Context, id primitive.ObjectID) (*domain.Review, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type Usecase struct {
	repo Repository
	now  func() time.Time
}

func New(repo Repository) *Usecase {
	return &Usecase{repo: repo, now: time.Now}
}

// SubmitInput is the validated review submission.
type SubmitInput struct {
	Name    string
	Rating  int
	Comment string
}

func (u *Usecase) Submit(ctx context.Context, userID string, input SubmitInput) (*domain.Review, error) {
	review := &domain.Review{
		UserID:    userID,
		Name:      input.Name,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: u.now().UTC(),
	}
	if err := u.repo.Insert(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (u *Usecase) List(ctx context.Context, q pagination.Query) ([]domain.Review, int64, error) {
	return u.repo.List(ctx, q)
}

// Delete removes a review and returns the removed document so the caller can
// echo it back.
func (u *Usecase) Delete(ctx context.Context, id primitive.ObjectID) (*domain.Review, error) {
	review, err := u.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return review, nil
}
