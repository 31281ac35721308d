// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents an account in the Babel language-exchange network.
// Password holds the bcrypt hash only and is never serialized.
type User struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Email            string    `gorm:"uniqueIndex;not null" json:"email"`
	Password         string    `gorm:"not null" json:"-"`
	FullName         string    `gorm:"not null" json:"full_name"`
	Bio              string    `json:"bio"`
	ProfilePic       string    `json:"profile_pic"`
	NativeLanguage   string    `json:"native_language"`
	LearningLanguage string    `json:"learning_language"`
	Location         string    `json:"location"`
	IsOnboarded      bool      `gorm:"default:false" json:"is_onboarded"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// FriendEdge is one direction of an established friendship. A friendship
// between A and B is exactly the pair of rows (A,B) and (B,A); both are
// written in the same transaction as the request acceptance, so the relation
// is never observable one-sided.
type FriendEdge struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	FriendID  uint      `gorm:"primaryKey;autoIncrement:false" json:"friend_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (FriendEdge) TableName() string {
	return "user_friends"
}
