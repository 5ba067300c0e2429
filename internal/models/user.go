// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered author in the Quill application.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Profile   *Profile  `gorm:"constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	Posts     []Post    `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"posts,omitempty"`
	Comments  []Comment `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

// Profile holds the optional one-to-one extension of a User. The unique
// index on UserID is what enforces the one-to-one shape at the engine level.
type Profile struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Bio     string `json:"bio,omitempty"`
	Avatar  string `json:"avatar,omitempty"`
	Website string `json:"website,omitempty"`
	UserID  uint   `gorm:"uniqueIndex;not null" json:"user_id"`
}

// UserStats is derived from an already-loaded user aggregate; it never
// triggers its own query.
type UserStats struct {
	UserID         uint `json:"user_id"`
	PostCount      int  `json:"post_count"`
	PublishedPosts int  `json:"published_posts"`
	CommentCount   int  `json:"comment_count"`
	HasProfile     bool `json:"has_profile"`
}
