// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Comment belongs to exactly one post and one author; both foreign keys are
// required, so a comment cannot outlive either parent.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Post      *Post     `gorm:"foreignKey:PostID" json:"post,omitempty"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
