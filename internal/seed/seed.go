package seed

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

// Options configuration for the seeder.
type Options struct {
	NumUsers      int
	NumCategories int
	NumPosts      int
	ShouldClean   bool
}

// Seed populates the database with test data: users with profiles,
// categories, posts linked to categories, and comments.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users, %d categories, %d posts...",
		opts.NumUsers, opts.NumCategories, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	f := NewFactory(db)

	users, err := f.CreateUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d users created", len(users))

	categories, err := f.CreateCategories(opts.NumCategories)
	if err != nil {
		return fmt.Errorf("failed to create categories: %w", err)
	}
	log.Printf("✓ %d categories created", len(categories))

	posts, err := f.CreatePosts(users, categories, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	numComments, err := f.CreateComments(users, posts, 4)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("✓ %d comments created", numComments)

	log.Println("Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE comments, post_categories, posts, categories, profiles, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}
