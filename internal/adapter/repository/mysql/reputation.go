package mysql

import (
	"context"

	repDomain "peerlend-backend/internal/domain/reputation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReputationRepository struct{ db *gorm.DB }

func NewReputationRepository(db *gorm.DB) *ReputationRepository {
	return &ReputationRepository{db: db}
}

// ensure inserts the reputation row if this user has none yet.
func (r *ReputationRepository) ensure(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&repDomain.UserReputation{UserID: userID}).Error
}

func (r *ReputationRepository) AddStar(ctx context.Context, userID string) error {
	if err := r.ensure(ctx, userID); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&repDomain.UserReputation{}).
		Where("user_id = ?", userID).
		UpdateColumn("stars", gorm.Expr("stars + 1")).Error
}

// Penalize saturates at zero; the CASE keeps the decrement and the
// floor in one statement.
func (r *ReputationRepository) Penalize(ctx context.Context, userID string) error {
	if err := r.ensure(ctx, userID); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&repDomain.UserReputation{}).
		Where("user_id = ?", userID).
		UpdateColumn("stars", gorm.Expr("CASE WHEN stars > 0 THEN stars - 1 ELSE 0 END")).Error
}

func (r *ReputationRepository) AddReview(ctx context.Context, userID, body string) error {
	return r.db.WithContext(ctx).Create(&repDomain.Review{UserID: userID, Body: body}).Error
}

func (r *ReputationRepository) GetByUserID(ctx context.Context, userID string) (*repDomain.UserReputation, error) {
	var out repDomain.UserReputation
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out)
	return &out, res.Error
}

func (r *ReputationRepository) ListReviews(ctx context.Context, userID string) ([]repDomain.Review, error) {
	var out []repDomain.Review
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
