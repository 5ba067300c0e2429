package repository

import (
	"context"
	"errors"

	"quill/internal/cache"
	"quill/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostFilter narrows List results. Nil/zero fields are not applied.
type PostFilter struct {
	Published        *bool
	AuthorID         uint
	IncludeRelations bool
	Limit            int
	Offset           int
}

// PostRepository defines persistence operations for posts and their
// category associations.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	Exists(ctx context.Context, id uint) error
	CreateWithCategories(ctx context.Context, post *models.Post, categoryIDs []uint) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, f PostFilter) ([]models.Post, error)
	ListByCategory(ctx context.Context, categoryID uint, limit, offset int) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	AttachCategories(ctx context.Context, postID uint, categoryIDs []uint) error
	DetachCategory(ctx context.Context, postID, categoryID uint) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// CreateWithCategories inserts the post and one join row per category id in
// a single transaction. Duplicate ids in the input are skipped through the
// (post_id, category_id) unique index; a nonexistent category id fails the
// whole write via its foreign key.
func (r *postRepository) CreateWithCategories(ctx context.Context, post *models.Post, categoryIDs []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return models.NewInternalError(err)
		}
		if len(categoryIDs) == 0 {
			return nil
		}
		links := make([]models.PostCategory, 0, len(categoryIDs))
		for _, cid := range categoryIDs {
			links = append(links, models.PostCategory{PostID: post.ID, CategoryID: cid})
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	cache.InvalidatePopularCategories(ctx)
	return nil
}

// GetByID loads the full post aggregate: author with profile, categories
// with category detail, and comments with their authors, newest first.
func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Author.Profile").
		Preload("Categories.Category").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at DESC")
		}).
		Preload("Comments.Author").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, f PostFilter) ([]models.Post, error) {
	var posts []models.Post
	q := r.db.WithContext(ctx).Limit(f.Limit).Offset(f.Offset).Order("posts.created_at DESC")
	if f.Published != nil {
		q = q.Where("published = ?", *f.Published)
	}
	if f.AuthorID != 0 {
		q = q.Where("author_id = ?", f.AuthorID)
	}
	if f.IncludeRelations {
		q = q.Preload("Author").Preload("Categories.Category").Preload("Comments")
	}
	if err := q.Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// ListByCategory returns posts having at least one join row with the given
// category id.
func (r *postRepository) ListByCategory(ctx context.Context, categoryID uint, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Joins("JOIN post_categories ON post_categories.post_id = posts.id").
		Where("post_categories.category_id = ?", categoryID).
		Preload("Author").
		Preload("Categories.Category").
		Order("posts.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Exists reports whether the post row is present without loading relations.
func (r *postRepository) Exists(ctx context.Context, id uint) error {
	var post models.Post
	if err := r.db.WithContext(ctx).Select("id").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Post", id)
		}
		return models.NewInternalError(err)
	}
	return nil
}

// AttachCategories bulk-inserts join rows for the given category ids.
// Pairs that already exist are silently skipped, so the operation is
// idempotent under (post_id, category_id).
func (r *postRepository) AttachCategories(ctx context.Context, postID uint, categoryIDs []uint) error {
	if err := r.Exists(ctx, postID); err != nil {
		return err
	}

	links := make([]models.PostCategory, 0, len(categoryIDs))
	for _, cid := range categoryIDs {
		links = append(links, models.PostCategory{PostID: postID, CategoryID: cid})
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePopularCategories(ctx)
	return nil
}

// DetachCategory deletes the single join row identified by the pair.
func (r *postRepository) DetachCategory(ctx context.Context, postID, categoryID uint) error {
	res := r.db.WithContext(ctx).
		Where("post_id = ? AND category_id = ?", postID, categoryID).
		Delete(&models.PostCategory{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post category link", categoryID)
	}
	cache.InvalidatePopularCategories(ctx)
	return nil
}

// Delete removes the post row; the engine cascades to comments and join rows.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post", id)
	}
	cache.InvalidatePopularCategories(ctx)
	return nil
}
