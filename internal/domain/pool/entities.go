package pool

import (
	"errors"
	"time"
)

var ErrInsufficientBalance = errors.New("pool balance below requested amount")

// Account is the pooled-funds custody row. A single row (AccountID)
// holds the aggregate principal of every taken, unrepaid loan.
type Account struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	Balance   uint64    `gorm:"column:balance;default:0" json:"balance"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Account) TableName() string { return "pool_accounts" }

// AccountID is the fixed primary key of the singleton custody row.
const AccountID uint64 = 1
