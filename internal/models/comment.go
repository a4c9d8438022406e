package models

import "time"

// Comment is a user's remark on a post. AuthorID is immutable after creation.
type Comment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PostID   uint   `gorm:"not null;index" json:"post_id"`
	AuthorID uint   `gorm:"not null" json:"author_id"`
	Content  string `gorm:"type:text;not null" json:"content"`

	// Author is nil when the account has since been deleted.
	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt stays null until the comment is first edited.
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updated_at,omitempty"`
}
