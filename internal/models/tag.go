package models

import "time"

// DefaultTagColor is used when a tag is created without an explicit color.
const DefaultTagColor = "#6c757d"

// Tag is a label that can be attached to any number of posts.
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Color     string    `gorm:"not null;default:#6c757d" json:"color"`
	CreatedAt time.Time `json:"created_at"`

	Posts []Post `gorm:"many2many:post_tags" json:"posts,omitempty"`
}
