package reputation

import "time"

// UserReputation tracks the star count for one user. Stars move by one
// per loan-lifecycle event (timely repayment +1, detected lateness -1)
// and never drop below zero.
type UserReputation struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	UserID    string    `gorm:"size:32;uniqueIndex:ux_user_reputations_user_id" json:"user_id"`
	Stars     uint64    `gorm:"column:stars;default:0" json:"stars"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (UserReputation) TableName() string { return "user_reputations" }

// Review is append-only; the auto-increment PK preserves insertion order.
type Review struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	UserID    string    `gorm:"size:32;index:idx_reviews_user_id" json:"user_id"`
	Body      string    `gorm:"type:text" json:"body"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Review) TableName() string { return "reviews" }
