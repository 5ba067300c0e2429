// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Post represents an article written by a user. Published is a plain flag;
// no transition rules are enforced on it.
type Post struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Title      string         `gorm:"not null" json:"title"`
	Content    string         `gorm:"type:text" json:"content,omitempty"`
	Published  bool           `gorm:"not null;default:false" json:"published"`
	AuthorID   uint           `gorm:"not null;index" json:"author_id"`
	Author     *User          `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Categories []PostCategory `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"categories,omitempty"`
	Comments   []Comment      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// PostCategory is one row of the many-to-many association between posts and
// categories. The composite unique index prevents duplicate tagging of the
// same category on the same post.
type PostCategory struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PostID     uint      `gorm:"not null;uniqueIndex:idx_post_category" json:"post_id"`
	CategoryID uint      `gorm:"not null;uniqueIndex:idx_post_category" json:"category_id"`
	Post       *Post     `gorm:"foreignKey:PostID" json:"post,omitempty"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// PostStats is derived from an already-loaded post aggregate.
type PostStats struct {
	PostID        uint `json:"post_id"`
	CommentCount  int  `json:"comment_count"`
	CategoryCount int  `json:"category_count"`
	Published     bool `json:"published"`
}
