package models

import (
	"time"
)

// Importance marks how urgent a post is for the leadership view.
type Importance string

// Importance levels for leader-visible posts.
const (
	ImportanceLow    Importance = "low"
	ImportanceMedium Importance = "medium"
	ImportanceHigh   Importance = "high"
)

// Valid reports whether i is one of the known importance levels.
func (i Importance) Valid() bool {
	switch i {
	case ImportanceLow, ImportanceMedium, ImportanceHigh:
		return true
	}
	return false
}

// Post is an authored piece of content. AuthorID is immutable after creation;
// the author (or an admin) is the only one allowed to mutate the post.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"not null" json:"title"`
	Content  string `gorm:"type:text;not null" json:"content"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	// Author is nil when the account has since been deleted; readers render
	// that as "deleted user" rather than erroring.
	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	// Leader-only fields. Writes by Member callers are silently dropped.
	IsRead     bool        `gorm:"not null;default:false" json:"is_read"`
	Importance *Importance `gorm:"type:varchar(16)" json:"importance,omitempty"`

	Tags     []Tag     `gorm:"many2many:post_tags" json:"tags,omitempty"`
	Likes    []Like    `gorm:"foreignKey:PostID" json:"likes,omitempty"`
	Comments []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`

	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->;-:migration" json:"likes_count"`

	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt stays null until the post is first edited.
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updated_at,omitempty"`
}

// PostTag links a post to a tag. The (PostID, TagID) pair is the primary key.
type PostTag struct {
	PostID    uint      `gorm:"primaryKey" json:"post_id"`
	TagID     uint      `gorm:"primaryKey" json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}
