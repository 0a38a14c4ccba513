package model

import (
	"time"
)

// Transaction represents the database model for the append-only audit log
type Transaction struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	WalletID      uint64    `gorm:"not null;index"`
	Kind          string    `gorm:"column:type;not null;size:16"`
	AmountInMinor int64     `gorm:"column:amount;not null"`
	Description   string    `gorm:"type:text"`
	BalanceBefore int64     `gorm:"not null"`
	BalanceAfter  int64     `gorm:"not null"`
	ReferenceID   *uint64   `gorm:"index"`
	ReferenceType string    `gorm:"size:32"`
	CreatedAt     time.Time `gorm:"not null;index"`

	Wallet Wallet `gorm:"foreignKey:WalletID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
