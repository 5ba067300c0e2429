package service

import (
	"context"
	"testing"

	"quill/internal/models"
	"quill/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn            func(context.Context, *models.User) error
	createWithProfileFn func(context.Context, *models.User) error
	getByIDFn           func(context.Context, uint) (*models.User, error)
	getByIDFreshFn      func(context.Context, uint) (*models.User, error)
	getByIDDeepFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn        func(context.Context, string) (*models.User, error)
	listFn              func(context.Context, bool, int, int) ([]models.User, error)
	updateFn            func(context.Context, *models.User) error
	upsertProfileFn     func(context.Context, uint, *models.Profile) (*models.Profile, error)
	deleteFn            func(context.Context, uint) error
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) CreateWithProfile(ctx context.Context, user *models.User) error {
	return s.createWithProfileFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIDFresh(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFreshFn(ctx, id)
}
func (s *userRepoStub) GetByIDDeep(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDDeepFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) List(ctx context.Context, includeRelations bool, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, includeRelations, limit, offset)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) UpsertProfile(ctx context.Context, userID uint, profile *models.Profile) (*models.Profile, error) {
	return s.upsertProfileFn(ctx, userID, profile)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:            func(_ context.Context, _ *models.User) error { return nil },
		createWithProfileFn: func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn:           func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByIDFreshFn:      func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByIDDeepFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn:        func(_ context.Context, _ string) (*models.User, error) { return &models.User{ID: 1}, nil },
		listFn:              func(_ context.Context, _ bool, _, _ int) ([]models.User, error) { return nil, nil },
		updateFn:            func(_ context.Context, _ *models.User) error { return nil },
		upsertProfileFn: func(_ context.Context, userID uint, p *models.Profile) (*models.Profile, error) {
			p.UserID = userID
			return p, nil
		},
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn               func(context.Context, *models.Post) error
	existsFn               func(context.Context, uint) error
	createWithCategoriesFn func(context.Context, *models.Post, []uint) error
	getByIDFn              func(context.Context, uint) (*models.Post, error)
	listFn                 func(context.Context, repository.PostFilter) ([]models.Post, error)
	listByCategoryFn       func(context.Context, uint, int, int) ([]models.Post, error)
	updateFn               func(context.Context, *models.Post) error
	attachCategoriesFn     func(context.Context, uint, []uint) error
	detachCategoryFn       func(context.Context, uint, uint) error
	deleteFn               func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) Exists(ctx context.Context, id uint) error {
	return s.existsFn(ctx, id)
}
func (s *postRepoStub) CreateWithCategories(ctx context.Context, post *models.Post, categoryIDs []uint) error {
	return s.createWithCategoriesFn(ctx, post, categoryIDs)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, f repository.PostFilter) ([]models.Post, error) {
	return s.listFn(ctx, f)
}
func (s *postRepoStub) ListByCategory(ctx context.Context, categoryID uint, limit, offset int) ([]models.Post, error) {
	return s.listByCategoryFn(ctx, categoryID, limit, offset)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) AttachCategories(ctx context.Context, postID uint, categoryIDs []uint) error {
	return s.attachCategoriesFn(ctx, postID, categoryIDs)
}
func (s *postRepoStub) DetachCategory(ctx context.Context, postID, categoryID uint) error {
	return s.detachCategoryFn(ctx, postID, categoryID)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, _ *models.Post) error { return nil },
		existsFn: func(_ context.Context, _ uint) error { return nil },
		createWithCategoriesFn: func(_ context.Context, _ *models.Post, _ []uint) error { return nil },
		getByIDFn:              func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		listFn:                 func(_ context.Context, _ repository.PostFilter) ([]models.Post, error) { return nil, nil },
		listByCategoryFn:       func(_ context.Context, _ uint, _, _ int) ([]models.Post, error) { return nil, nil },
		updateFn:               func(_ context.Context, _ *models.Post) error { return nil },
		attachCategoriesFn:     func(_ context.Context, _ uint, _ []uint) error { return nil },
		detachCategoryFn:       func(_ context.Context, _, _ uint) error { return nil },
		deleteFn:               func(_ context.Context, _ uint) error { return nil },
	}
}

// categoryRepoStub is a stub for repository.CategoryRepository.
type categoryRepoStub struct {
	createFn           func(context.Context, *models.Category) error
	getByIDFn          func(context.Context, uint) (*models.Category, error)
	getByIDWithPostsFn func(context.Context, uint) (*models.Category, error)
	getBySlugFn        func(context.Context, string) (*models.Category, error)
	listFn             func(context.Context, bool, int, int) ([]models.Category, error)
	popularFn          func(context.Context, int) ([]models.Category, error)
	updateFn           func(context.Context, *models.Category) error
	deleteFn           func(context.Context, uint) error
}

func (s *categoryRepoStub) Create(ctx context.Context, category *models.Category) error {
	return s.createFn(ctx, category)
}
func (s *categoryRepoStub) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	return s.getByIDFn(ctx, id)
}
func (s *categoryRepoStub) GetByIDWithPosts(ctx context.Context, id uint) (*models.Category, error) {
	return s.getByIDWithPostsFn(ctx, id)
}
func (s *categoryRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *categoryRepoStub) List(ctx context.Context, includePosts bool, limit, offset int) ([]models.Category, error) {
	return s.listFn(ctx, includePosts, limit, offset)
}
func (s *categoryRepoStub) Popular(ctx context.Context, limit int) ([]models.Category, error) {
	return s.popularFn(ctx, limit)
}
func (s *categoryRepoStub) Update(ctx context.Context, category *models.Category) error {
	return s.updateFn(ctx, category)
}
func (s *categoryRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCategoryRepo() *categoryRepoStub {
	return &categoryRepoStub{
		createFn: func(_ context.Context, _ *models.Category) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Category, error) {
			return &models.Category{ID: id}, nil
		},
		getByIDWithPostsFn: func(_ context.Context, id uint) (*models.Category, error) {
			return &models.Category{ID: id}, nil
		},
		getBySlugFn: func(_ context.Context, slug string) (*models.Category, error) {
			return &models.Category{ID: 1, Slug: slug}, nil
		},
		listFn:    func(_ context.Context, _ bool, _, _ int) ([]models.Category, error) { return nil, nil },
		popularFn: func(_ context.Context, _ int) ([]models.Category, error) { return nil, nil },
		updateFn:  func(_ context.Context, _ *models.Category) error { return nil },
		deleteFn:  func(_ context.Context, _ uint) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn  func(context.Context, *models.Comment) error
	getByIDFn func(context.Context, uint) (*models.Comment, error)
	listFn    func(context.Context, repository.CommentFilter) ([]models.Comment, error)
	updateFn  func(context.Context, *models.Comment) error
	deleteFn  func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) List(ctx context.Context, f repository.CommentFilter) ([]models.Comment, error) {
	return s.listFn(ctx, f)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		listFn:   func(_ context.Context, _ repository.CommentFilter) ([]models.Comment, error) { return nil, nil },
		updateFn: func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
}
