package reputationmock

import (
	"context"

	domain "peerlend-backend/internal/domain/reputation"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock satisfying reputation.Repository.
type Repo struct {
	AddStarFn     func(ctx context.Context, userID string) error
	PenalizeFn    func(ctx context.Context, userID string) error
	AddReviewFn   func(ctx context.Context, userID, body string) error
	GetByUserIDFn func(ctx context.Context, userID string) (*domain.UserReputation, error)
	ListReviewsFn func(ctx context.Context, userID string) ([]domain.Review, error)
}

func (m *Repo) AddStar(ctx context.Context, userID string) error {
	if m.AddStarFn != nil {
		return m.AddStarFn(ctx, userID)
	}
	return nil
}

func (m *Repo) Penalize(ctx context.Context, userID string) error {
	if m.PenalizeFn != nil {
		return m.PenalizeFn(ctx, userID)
	}
	return nil
}

func (m *Repo) AddReview(ctx context.Context, userID, body string) error {
	if m.AddReviewFn != nil {
		return m.AddReviewFn(ctx, userID, body)
	}
	return nil
}

func (m *Repo) GetByUserID(ctx context.Context, userID string) (*domain.UserReputation, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListReviews(ctx context.Context, userID string) ([]domain.Review, error) {
	if m.ListReviewsFn != nil {
		return m.ListReviewsFn(ctx, userID)
	}
	return nil, nil
}
