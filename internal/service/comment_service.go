package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
}

type CreateCommentInput struct {
	Content  string
	PostID   uint
	AuthorID uint
}

type UpdateCommentInput struct {
	ID      uint
	Content string
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
	}
}

// CreateComment persists a comment after confirming both ends of its foreign
// keys exist, so a bad id surfaces as a not-found instead of a raw DB error.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
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

func (s *CommentService) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	return s.commentRepo.GetByID(ctx, id)
}

func (s *CommentService) ListComments(ctx context.Context, f repository.CommentFilter) ([]models.Comment, error) {
	return s.commentRepo.List(ctx, f)
}

// ListCommentsByPost returns the post's comments newest first. The post must
// exist; an empty comment list on a live post is not an error.
func (s *CommentService) ListCommentsByPost(ctx context.Context, postID uint, limit, offset int) ([]models.Comment, error) {
	if err := s.postRepo.Exists(ctx, postID); err != nil {
		return nil, err
	}
	return s.commentRepo.List(ctx, repository.CommentFilter{PostID: postID, Limit: limit, Offset: offset})
}

func (s *CommentService) ListCommentsByUser(ctx context.Context, authorID uint, limit, offset int) ([]models.Comment, error) {
	if _, err := s.userRepo.GetByID(ctx, authorID); err != nil {
		return nil, err
	}
	return s.commentRepo.List(ctx, repository.CommentFilter{AuthorID: authorID, Limit: limit, Offset: offset})
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	comment, err := s.commentRepo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	comment.Content = in.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) DeleteComment(ctx context.Context, id uint) error {
	return s.commentRepo.Delete(ctx, id)
}
