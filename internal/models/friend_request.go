package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// FriendRequestStatus represents the status of a friend request.
type FriendRequestStatus string

const (
	// FriendRequestStatusPending indicates a request awaiting the recipient's decision.
	FriendRequestStatusPending FriendRequestStatus = "pending"
	// FriendRequestStatusAccepted indicates an accepted request. Terminal.
	FriendRequestStatusAccepted FriendRequestStatus = "accepted"
)

// FriendRequest represents a friend request between two users.
type FriendRequest struct {
	ID          uint                `gorm:"primaryKey" json:"id"`
	SenderID    uint                `gorm:"not null;index" json:"sender_id"`
	RecipientID uint                `gorm:"not null;index" json:"recipient_id"`
	PairKey     string              `gorm:"size:64;not null;uniqueIndex" json:"-"`
	Status      FriendRequestStatus `gorm:"type:varchar(20);default:'pending';index:idx_friend_requests_status" json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`

	// Relationships
	Sender    User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Recipient User `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}

// TableName specifies the table name for GORM
func (FriendRequest) TableName() string {
	return "friend_requests"
}

// PairKeyFor normalizes an unordered user pair into a stable key. The unique
// index over this key is what guarantees at most one request per pair,
// regardless of direction, even under concurrent inserts.
func PairKeyFor(userID1, userID2 uint) string {
	lo, hi := userID1, userID2
	if lo > hi {
		lo, hi = hi, lo
	}
	return fmt.Sprintf("%d:%d", lo, hi)
}

// BeforeCreate fills the unordered-pair key. Sender/recipient direction is
// preserved in the row itself; direction is required to distinguish sent vs
// received pending requests.
func (fr *FriendRequest) BeforeCreate(_ *gorm.DB) error {
	fr.PairKey = PairKeyFor(fr.SenderID, fr.RecipientID)
	return nil
}
