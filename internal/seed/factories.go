// Package seed provides database seeding utilities for development and
// testing.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"quill/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database. It is a
// thin helper used by Seed and by tests.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db: db,
		r:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// BuildUser constructs a user without persisting it. Roughly two thirds of
// generated users carry a profile.
func (f *Factory) BuildUser() *models.User {
	user := &models.User{
		Email: gofakeit.Email(),
		Name:  gofakeit.Name(),
	}
	if f.r.Intn(3) < 2 {
		user.Profile = &models.Profile{
			Bio:     gofakeit.Sentence(12),
			Avatar:  fmt.Sprintf("https://picsum.photos/seed/%s/200/200", gofakeit.UUID()),
			Website: gofakeit.URL(),
		}
	}
	return user
}

// CreateUsers persists n generated users, profiles included.
func (f *Factory) CreateUsers(n int) ([]models.User, error) {
	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		users = append(users, *f.BuildUser())
	}
	if err := f.db.Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CreateCategories persists categories with slugs derived from their names.
// Duplicate generated names are retried with a numeric suffix.
func (f *Factory) CreateCategories(n int) ([]models.Category, error) {
	seen := make(map[string]int)
	categories := make([]models.Category, 0, n)
	for i := 0; i < n; i++ {
		name := gofakeit.BuzzWord()
		if c := seen[name]; c > 0 {
			name = fmt.Sprintf("%s %d", name, c+1)
		}
		seen[name]++
		categories = append(categories, models.Category{
			Name: name,
			Slug: Slugify(name),
		})
	}
	if err := f.db.Create(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// BuildPost constructs a post for the given author with a realistic
// created_at spread over the past 90 days.
func (f *Factory) BuildPost(author *models.User) *models.Post {
	post := &models.Post{
		Title:     gofakeit.Sentence(5),
		Content:   gofakeit.Paragraph(1, 3, 5, "\n"),
		Published: f.r.Intn(10) < 7,
		AuthorID:  author.ID,
	}
	daysBack := f.r.Intn(90)
	hoursBack := f.r.Intn(24)
	post.CreatedAt = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)
	return post
}

// CreatePosts persists n posts spread across the given users and links each
// to up to three random categories.
func (f *Factory) CreatePosts(users []models.User, categories []models.Category, n int) ([]models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}
	posts := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[f.r.Intn(len(users))]
		post := f.BuildPost(&author)
		if len(categories) > 0 {
			for _, ci := range f.r.Perm(len(categories))[:min(f.r.Intn(4), len(categories))] {
				post.Categories = append(post.Categories, models.PostCategory{
					CategoryID: categories[ci].ID,
				})
			}
		}
		posts = append(posts, *post)
	}
	if err := f.db.Create(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// CreateComments persists roughly perPost comments per post from random
// authors.
func (f *Factory) CreateComments(users []models.User, posts []models.Post, perPost int) (int, error) {
	if len(users) == 0 || len(posts) == 0 {
		return 0, nil
	}
	var comments []models.Comment
	for _, post := range posts {
		for i := 0; i < f.r.Intn(perPost+1); i++ {
			comments = append(comments, models.Comment{
				Content:  gofakeit.Sentence(10),
				PostID:   post.ID,
				AuthorID: users[f.r.Intn(len(users))].ID,
			})
		}
	}
	if len(comments) == 0 {
		return 0, nil
	}
	if err := f.db.Create(&comments).Error; err != nil {
		return 0, err
	}
	return len(comments), nil
}

// Slugify lowercases a name and replaces runs of non-alphanumerics with a
// single hyphen.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
