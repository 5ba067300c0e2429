package repository

import (
	"context"
	"errors"

	"quill/internal/cache"
	"quill/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository defines persistence operations for users and their profiles.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	CreateWithProfile(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByIDFresh(ctx context.Context, id uint) (*models.User, error)
	GetByIDDeep(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, includeRelations bool, limit, offset int) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpsertProfile(ctx context.Context, userID uint, profile *models.Profile) (*models.Profile, error)
	Delete(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewConflictError("A user with this email already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// CreateWithProfile persists the user together with its nested profile.
// GORM wraps the two inserts in a single transaction, so the write is atomic:
// either both rows exist afterwards or neither does.
func (r *userRepository) CreateWithProfile(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewConflictError("A user with this email already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	key := cache.UserKey(id)

	err := cache.Aside(ctx, key, &user, cache.UserTTL, func() error {
		if err := r.db.WithContext(ctx).Preload("Profile").First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByIDFresh reads the user row straight from the database, bypassing the
// cache. Read-modify-write flows seed from this, so a TTL-stale cached copy
// is never written back over newer column values.
func (r *userRepository) GetByIDFresh(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// GetByIDDeep loads the full user aggregate: profile, posts with their
// categories and comments, and the user's own comments. Stats are derived
// from this object without further queries.
func (r *userRepository) GetByIDDeep(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Preload("Posts.Categories.Category").
		Preload("Posts.Comments").
		Preload("Comments").
		First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Profile").Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", email)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, includeRelations bool, limit, offset int) ([]models.User, error) {
	var users []models.User
	q := r.db.WithContext(ctx).Limit(limit).Offset(offset).Order("users.id ASC")
	if includeRelations {
		q = q.Preload("Profile").Preload("Posts").Preload("Comments")
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewConflictError("A user with this email already exists")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

// UpsertProfile updates the user's profile row in place when one exists and
// creates one otherwise. The unique index on profiles.user_id guarantees a
// user can never end up with two rows even under concurrent upserts.
func (r *userRepository) UpsertProfile(ctx context.Context, userID uint, in *models.Profile) (*models.Profile, error) {
	var out models.Profile

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Select("id").First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", userID)
			}
			return models.NewInternalError(err)
		}

		err := tx.Where("user_id = ?", userID).First(&out).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			out = models.Profile{
				Bio:     in.Bio,
				Avatar:  in.Avatar,
				Website: in.Website,
				UserID:  userID,
			}
			if err := tx.Create(&out).Error; err != nil {
				if isUniqueViolation(err) {
					return models.NewConflictError("User already has a profile")
				}
				return models.NewInternalError(err)
			}
			return nil
		case err != nil:
			return models.NewInternalError(err)
		}

		out.Bio = in.Bio
		out.Avatar = in.Avatar
		out.Website = in.Website
		if err := tx.Save(&out).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidateUser(ctx, userID)
	return &out, nil
}

// Delete removes the user row. The engine's ON DELETE CASCADE constraints
// take the profile, posts, comments, and join rows under those posts with it.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("User", id)
	}
	cache.InvalidateUser(ctx, id)
	return nil
}
