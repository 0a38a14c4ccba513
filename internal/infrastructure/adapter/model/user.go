package model

import (
	"time"
)

// User represents the database model for users
type User struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	Email        string    `gorm:"uniqueIndex;not null;size:255"`
	PhoneNumber  string    `gorm:"uniqueIndex;not null;size:32"`
	PasswordHash string    `gorm:"not null;size:255"`
	FirstName    string    `gorm:"size:100"`
	LastName     string    `gorm:"size:100"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
