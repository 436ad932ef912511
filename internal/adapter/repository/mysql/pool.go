package mysql

import (
	"context"

	poolDomain "peerlend-backend/internal/domain/pool"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PoolRepository struct{ db *gorm.DB }

func NewPoolRepository(db *gorm.DB) *PoolRepository { return &PoolRepository{db: db} }

func (r *PoolRepository) ensure(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&poolDomain.Account{ID: poolDomain.AccountID}).Error
}

func (r *PoolRepository) Balance(ctx context.Context) (uint64, error) {
	if err := r.ensure(ctx); err != nil {
		return 0, err
	}
	var acc poolDomain.Account
	if err := r.db.WithContext(ctx).Where("id = ?", poolDomain.AccountID).First(&acc).Error; err != nil {
		return 0, err
	}
	return acc.Balance, nil
}

func (r *PoolRepository) Deposit(ctx context.Context, amount uint64) error {
	if err := r.ensure(ctx); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&poolDomain.Account{}).
		Where("id = ?", poolDomain.AccountID).
		UpdateColumn("balance", gorm.Expr("balance + ?", amount)).Error
}

// Withdraw locks the custody row, checks cover, then decrements. The
// guard and the decrement commit with the enclosing transaction.
func (r *PoolRepository) Withdraw(ctx context.Context, amount uint64) error {
	if err := r.ensure(ctx); err != nil {
		return err
	}
	var acc poolDomain.Account
	if err := lockForUpdate(r.db.WithContext(ctx)).
		Where("id = ?", poolDomain.AccountID).First(&acc).Error; err != nil {
		return err
	}
	if acc.Balance < amount {
		return poolDomain.ErrInsufficientBalance
	}
	return r.db.WithContext(ctx).Model(&poolDomain.Account{}).
		Where("id = ?", poolDomain.AccountID).
		UpdateColumn("balance", gorm.Expr("balance - ?", amount)).Error
}
