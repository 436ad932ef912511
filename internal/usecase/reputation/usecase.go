package reputation

import (
	"context"
	"errors"
	"fmt"

	loanDomain "peerlend-backend/internal/domain/loan"
	domain "peerlend-backend/internal/domain/reputation"

	"gorm.io/gorm"
)

// Star changes are not reachable through this usecase: they happen only
// inside loan-lifecycle transactions (repay, due-date sweep).
type Usecase struct{ repo domain.Repository }

func NewUsecase(r domain.Repository) *Usecase { return &Usecase{repo: r} }

type AddReviewInput struct {
	UserID string
	Body   string
}

type ReputationDTO struct {
	UserID  string   `json:"user_id"`
	Stars   uint64   `json:"stars"`
	Reviews []string `json:"reviews"`
}

func (u *Usecase) AddReview(ctx context.Context, in AddReviewInput) error {
	if len(in.UserID) != 32 {
		return fmt.Errorf("%w: user id must be 32-char hex", loanDomain.ErrInvalidParameters)
	}
	if in.Body == "" {
		return fmt.Errorf("%w: review body must not be empty", loanDomain.ErrInvalidParameters)
	}
	return u.repo.AddReview(ctx, in.UserID, in.Body)
}

// Get never fails for unknown users: no reputation row reads as zero
// stars and no reviews.
func (u *Usecase) Get(ctx context.Context, userID string) (*ReputationDTO, error) {
	dto := &ReputationDTO{UserID: userID, Reviews: []string{}}

	rep, err := u.repo.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		dto.Stars = rep.Stars
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	reviews, err := u.repo.ListReviews(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, rv := range reviews {
		dto.Reviews = append(dto.Reviews, rv.Body)
	}
	return dto, nil
}
