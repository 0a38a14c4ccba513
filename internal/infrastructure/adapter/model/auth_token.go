package model

import (
	"time"
)

// AuthToken represents the database model for bearer tokens
type AuthToken struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	UserID     uint64    `gorm:"not null;index"`
	Token      string    `gorm:"uniqueIndex;not null;size:128"`
	ExpiresAt  time.Time `gorm:"not null;index"`
	IsActive   bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time `gorm:"not null"`
	LastUsedAt *time.Time

	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for AuthToken
func (AuthToken) TableName() string {
	return "auth_tokens"
}
