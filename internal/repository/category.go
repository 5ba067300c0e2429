package repository

import (
	"context"
	"errors"

	"quill/internal/cache"
	"quill/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	GetByIDWithPosts(ctx context.Context, id uint) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	List(ctx context.Context, includePosts bool, limit, offset int) ([]models.Category, error)
	Popular(ctx context.Context, limit int) ([]models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uint) error
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository returns a new CategoryRepository implementation.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewConflictError("A category with this name or slug already exists")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidatePopularCategories(ctx)
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Category", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &category, nil
}

// GetByIDWithPosts loads the category with its join rows, each carrying the
// post and its author. Stats are derived from this aggregate.
func (r *categoryRepository) GetByIDWithPosts(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Preload("Posts.Post.Author").
		First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Category", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &category, nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	key := cache.CategorySlugKey(slug)

	err := cache.Aside(ctx, key, &category, cache.CategoryTTL, func() error {
		if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Category", slug)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context, includePosts bool, limit, offset int) ([]models.Category, error) {
	var categories []models.Category
	q := r.db.WithContext(ctx).Limit(limit).Offset(offset).Order("categories.id ASC")
	if includePosts {
		q = q.Preload("Posts.Post.Author")
	}
	if err := q.Find(&categories).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return categories, nil
}

// popularCacheLimit is how many ranking rows the cache entry holds. The
// cached list must not depend on any one caller's limit, otherwise a
// small-limit request would pin a truncated ranking for everyone else
// until the TTL expires.
const popularCacheLimit = 100

// Popular ranks categories by descending count of associated posts. Ties
// break by ascending id, which is insertion order for serial keys.
func (r *categoryRepository) Popular(ctx context.Context, limit int) ([]models.Category, error) {
	var categories []models.Category

	err := cache.Aside(ctx, cache.PopularCategoriesKey, &categories, cache.PopularCategoriesTTL, func() error {
		err := r.db.WithContext(ctx).
			Model(&models.Category{}).
			Select("categories.*, COUNT(post_categories.id) AS post_count").
			Joins("LEFT JOIN post_categories ON post_categories.category_id = categories.id").
			Group("categories.id").
			Order("post_count DESC, categories.id ASC").
			Limit(popularCacheLimit).
			Find(&categories).Error
		if err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(categories) > limit {
		categories = categories[:limit]
	}
	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(category).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewConflictError("A category with this name or slug already exists")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateCategory(ctx, category.Slug)
	return nil
}

// Delete removes the category row; the engine cascades to its join rows.
func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	category, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Category{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateCategory(ctx, category.Slug)
	return nil
}
