package service

import (
	"context"
	"regexp"

	"quill/internal/models"
	"quill/internal/repository"
)

type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

type CreateCategoryInput struct {
	Name string
	Slug string
}

type UpdateCategoryInput struct {
	ID   uint
	Name string
	Slug string
}

func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

const (
	maxCategoryNameLen = 50
	maxSlugLen         = 60

	defaultPopularLimit = 10
	maxPopularLimit     = 100
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func validateSlug(slug string) error {
	if slug == "" {
		return models.NewValidationError("Slug is required")
	}
	if len(slug) > maxSlugLen {
		return models.NewValidationError("Slug too long (max 60 characters)")
	}
	if !slugPattern.MatchString(slug) {
		return models.NewValidationError("Slug must be lowercase letters, digits, and hyphens")
	}
	return nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, in CreateCategoryInput) (*models.Category, error) {
	if in.Name == "" {
		return nil, models.NewValidationError("Name is required")
	}
	if len(in.Name) > maxCategoryNameLen {
		return nil, models.NewValidationError("Name too long (max 50 characters)")
	}
	if err := validateSlug(in.Slug); err != nil {
		return nil, err
	}

	category := &models.Category{
		Name: in.Name,
		Slug: in.Slug,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) ListCategories(ctx context.Context, includePosts bool, limit, offset int) ([]models.Category, error) {
	return s.categoryRepo.List(ctx, includePosts, limit, offset)
}

func (s *CategoryService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	return s.categoryRepo.GetByIDWithPosts(ctx, id)
}

func (s *CategoryService) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	if err := validateSlug(slug); err != nil {
		return nil, err
	}
	return s.categoryRepo.GetBySlug(ctx, slug)
}

// PopularCategories returns categories ranked by descending post count, ties
// broken by ascending id. A non-positive limit falls back to the default.
func (s *CategoryService) PopularCategories(ctx context.Context, limit int) ([]models.Category, error) {
	if limit <= 0 {
		limit = defaultPopularLimit
	}
	if limit > maxPopularLimit {
		limit = maxPopularLimit
	}
	return s.categoryRepo.Popular(ctx, limit)
}

func (s *CategoryService) UpdateCategory(ctx context.Context, in UpdateCategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		if len(in.Name) > maxCategoryNameLen {
			return nil, models.NewValidationError("Name too long (max 50 characters)")
		}
		category.Name = in.Name
	}
	if in.Slug != "" {
		if err := validateSlug(in.Slug); err != nil {
			return nil, err
		}
		category.Slug = in.Slug
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id uint) error {
	return s.categoryRepo.Delete(ctx, id)
}

// GetCategoryStats derives counts from the category's join rows and the
// posts behind them.
func (s *CategoryService) GetCategoryStats(ctx context.Context, id uint) (*models.CategoryStats, error) {
	category, err := s.categoryRepo.GetByIDWithPosts(ctx, id)
	if err != nil {
		return nil, err
	}

	stats := &models.CategoryStats{
		CategoryID: category.ID,
		PostCount:  len(category.Posts),
	}
	for _, link := range category.Posts {
		if link.Post != nil && link.Post.Published {
			stats.PublishedPosts++
		}
	}
	return stats, nil
}
