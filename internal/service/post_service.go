package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/repository"
)

type PostService struct {
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	commentRepo repository.CommentRepository
}

type CreatePostInput struct {
	Title       string
	Content     string
	Published   bool
	AuthorID    uint
	CategoryIDs []uint
}

type UpdatePostInput struct {
	ID        uint
	Title     string
	Content   string
	Published *bool
}

type AddCommentInput struct {
	PostID   uint
	AuthorID uint
	Content  string
}

func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	commentRepo repository.CommentRepository,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		userRepo:    userRepo,
		commentRepo: commentRepo,
	}
}

const (
	maxTitleLen   = 200
	maxCommentLen = 10000
)

// CreatePost persists a new post, linking it to the given categories in the
// same transaction. Duplicate category ids in the input are harmless.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 200 characters)")
	}
	if in.AuthorID == 0 {
		return nil, models.NewValidationError("Author id is required")
	}
	if _, err := s.userRepo.GetByID(ctx, in.AuthorID); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:     in.Title,
		Content:   in.Content,
		Published: in.Published,
		AuthorID:  in.AuthorID,
	}

	if len(in.CategoryIDs) == 0 {
		if err := s.postRepo.Create(ctx, post); err != nil {
			return nil, err
		}
	} else {
		if err := s.postRepo.CreateWithCategories(ctx, post, in.CategoryIDs); err != nil {
			return nil, err
		}
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) ListPosts(ctx context.Context, f repository.PostFilter) ([]models.Post, error) {
	return s.postRepo.List(ctx, f)
}

func (s *PostService) ListPostsByCategory(ctx context.Context, categoryID uint, limit, offset int) ([]models.Post, error) {
	return s.postRepo.ListByCategory(ctx, categoryID, limit, offset)
}

// GetPost returns the full post aggregate: author with profile, categories,
// and comments newest first with their authors.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		if len(in.Title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 200 characters)")
		}
		post.Title = in.Title
	}
	if in.Content != "" {
		post.Content = in.Content
	}
	if in.Published != nil {
		post.Published = *in.Published
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// PublishPost flips the published flag on. Publishing an already published
// post is a no-op, not an error.
func (s *PostService) PublishPost(ctx context.Context, id uint) (*models.Post, error) {
	published := true
	return s.UpdatePost(ctx, UpdatePostInput{ID: id, Published: &published})
}

// AttachCategories links the post to each category id. Pairs that already
// exist are skipped, so retries are safe.
func (s *PostService) AttachCategories(ctx context.Context, postID uint, categoryIDs []uint) (*models.Post, error) {
	if len(categoryIDs) == 0 {
		return nil, models.NewValidationError("At least one category id is required")
	}
	if err := s.postRepo.AttachCategories(ctx, postID, categoryIDs); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, postID)
}

func (s *PostService) DetachCategory(ctx context.Context, postID, categoryID uint) error {
	return s.postRepo.DetachCategory(ctx, postID, categoryID)
}

// AddComment creates a comment under the post. Both the post and the author
// must exist.
func (s *PostService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}
	if err := s.postRepo.Exists(ctx, in.PostID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, in.AuthorID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content:  in.Content,
		PostID:   in.PostID,
		AuthorID: in.AuthorID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	return s.postRepo.Delete(ctx, id)
}

// GetPostStats derives counts from the deep-loaded aggregate.
func (s *PostService) GetPostStats(ctx context.Context, id uint) (*models.PostStats, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.PostStats{
		PostID:        post.ID,
		CommentCount:  len(post.Comments),
		CategoryCount: len(post.Categories),
		Published:     post.Published,
	}, nil
}
