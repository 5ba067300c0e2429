// Package service holds the business logic between HTTP handlers and the
// repositories. Services validate input, orchestrate repository calls, and
// never touch the database directly.
package service

import (
	"context"
	"strings"

	"quill/internal/models"
	"quill/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

type CreateUserInput struct {
	Email   string
	Name    string
	Profile *ProfileInput
}

type ProfileInput struct {
	Bio     string
	Avatar  string
	Website string
}

type UpdateUserInput struct {
	ID    uint
	Email string
	Name  string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

const (
	maxNameLen    = 100
	maxBioLen     = 500
	maxWebsiteLen = 200
)

func validateEmail(email string) error {
	if email == "" {
		return models.NewValidationError("Email is required")
	}
	if !strings.Contains(email, "@") {
		return models.NewValidationError("Email is not valid")
	}
	return nil
}

func validateProfile(in *ProfileInput) error {
	if len(in.Bio) > maxBioLen {
		return models.NewValidationError("Bio too long (max 500 characters)")
	}
	if len(in.Website) > maxWebsiteLen {
		return models.NewValidationError("Website too long (max 200 characters)")
	}
	return nil
}

// CreateUser persists a new user. When the input carries a profile, the user
// and profile rows are written in one atomic operation.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if err := validateEmail(in.Email); err != nil {
		return nil, err
	}
	if len(in.Name) > maxNameLen {
		return nil, models.NewValidationError("Name too long (max 100 characters)")
	}

	user := &models.User{
		Email: in.Email,
		Name:  in.Name,
	}

	if in.Profile == nil {
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}

	if err := validateProfile(in.Profile); err != nil {
		return nil, err
	}
	user.Profile = &models.Profile{
		Bio:     in.Profile.Bio,
		Avatar:  in.Profile.Avatar,
		Website: in.Profile.Website,
	}
	if err := s.userRepo.CreateWithProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, includeRelations bool, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, includeRelations, limit, offset)
}

// GetUser returns the full user aggregate: profile, posts with categories and
// comments, and the user's own comments.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByIDDeep(ctx, id)
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	return s.userRepo.GetByEmail(ctx, email)
}

// UpdateUser applies the provided fields over the current row. The seed read
// bypasses the cache: saving a TTL-stale struct would write old values back
// into untouched columns.
func (s *UserService) UpdateUser(ctx context.Context, in UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByIDFresh(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if in.Email != "" {
		if err := validateEmail(in.Email); err != nil {
			return nil, err
		}
		user.Email = in.Email
	}
	if in.Name != "" {
		if len(in.Name) > maxNameLen {
			return nil, models.NewValidationError("Name too long (max 100 characters)")
		}
		user.Name = in.Name
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile creates the user's profile when none exists and updates it in
// place otherwise.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in ProfileInput) (*models.Profile, error) {
	if err := validateProfile(&in); err != nil {
		return nil, err
	}
	return s.userRepo.UpsertProfile(ctx, userID, &models.Profile{
		Bio:     in.Bio,
		Avatar:  in.Avatar,
		Website: in.Website,
	})
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	return s.userRepo.Delete(ctx, id)
}

// GetUserStats derives aggregate counts from a single deep load instead of
// issuing one COUNT query per relation.
func (s *UserService) GetUserStats(ctx context.Context, id uint) (*models.UserStats, error) {
	user, err := s.userRepo.GetByIDDeep(ctx, id)
	if err != nil {
		return nil, err
	}

	stats := &models.UserStats{
		UserID:       user.ID,
		PostCount:    len(user.Posts),
		CommentCount: len(user.Comments),
		HasProfile:   user.Profile != nil,
	}
	for _, p := range user.Posts {
		if p.Published {
			stats.PublishedPosts++
		}
	}
	return stats, nil
}
