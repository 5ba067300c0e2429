// Package models contains data structures for the application's domain models.
package models

// Category is a tag that posts associate with through PostCategory join rows.
type Category struct {
	ID    uint           `gorm:"primaryKey" json:"id"`
	Name  string         `gorm:"unique;not null" json:"name"`
	Slug  string         `gorm:"unique;not null" json:"slug"`
	Posts []PostCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"posts,omitempty"`
	// PostCount is not persisted; computed at query time by the popularity ranking
	PostCount int `gorm:"->;-:migration" json:"post_count,omitempty"`
}

// CategoryStats is derived from an already-loaded category aggregate.
type CategoryStats struct {
	CategoryID     uint `json:"category_id"`
	PostCount      int  `json:"post_count"`
	PublishedPosts int  `json:"published_posts"`
}
