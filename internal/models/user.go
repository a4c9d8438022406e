// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is a user's authorization level. Exactly one role is held at a time.
type Role string

// Roles, ranked Admin > Leader > Member.
const (
	RoleMember Role = "member"
	RoleLeader Role = "leader"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleLeader, RoleAdmin:
		return true
	}
	return false
}

// Rank returns the role's position in the Admin > Leader > Member ordering.
// Higher rank means more rights.
func (r Role) Rank() int {
	switch r {
	case RoleAdmin:
		return 2
	case RoleLeader:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether r grants at least the rights of other.
func (r Role) AtLeast(other Role) bool {
	return r.Rank() >= other.Rank()
}

// User represents an account in the platform. The role field is the single
// source of truth for authorization; any external registry must follow it.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Role      Role           `gorm:"type:varchar(16);not null;default:member" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Posts    []Post    `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
	Likes    []Like    `gorm:"foreignKey:UserID" json:"likes,omitempty"`
	Comments []Comment `gorm:"foreignKey:AuthorID" json:"comments,omitempty"`
}

// IsAdmin reports whether the user holds the protected Admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
