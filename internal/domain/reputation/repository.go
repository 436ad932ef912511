package reputation

import "context"

type Repository interface {
	// AddStar increments the user's star count, creating the reputation
	// row on first use. No failure mode beyond storage errors.
	AddStar(ctx context.Context, userID string) error
	// Penalize decrements the star count, saturating at zero.
	Penalize(ctx context.Context, userID string) error
	AddReview(ctx context.Context, userID, body string) error
	// GetByUserID returns gorm.ErrRecordNotFound for users that never
	// earned or lost a star; callers treat that as zero stars.
	GetByUserID(ctx context.Context, userID string) (*UserReputation, error)
	ListReviews(ctx context.Context, userID string) ([]Review, error)
}
