package models

import "time"

// LikeState reports which transition a like toggle performed.
type LikeState string

// Toggle outcomes.
const (
	LikeAdded   LikeState = "added"
	LikeRemoved LikeState = "removed"
)

// Like records that a user liked a post. The (PostID, UserID) pair is unique:
// the constraint doubles as the concurrency guard for toggling, so there is
// never a separate existence check before the write.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_user" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	// User is nil when the liking account has since been deleted.
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
