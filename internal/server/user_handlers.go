package server

import (
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

type profileRequest struct {
	Bio     string `json:"bio"`
	Avatar  string `json:"avatar"`
	Website string `json:"website"`
}

// CreateUser handles POST /users. A nested profile object makes the user and
// profile rows land atomically.
func (s *Server) CreateUser(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		Email   string          `json:"email"`
		Name    string          `json:"name"`
		Profile *profileRequest `json:"profile,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	in := service.CreateUserInput{
		Email: req.Email,
		Name:  req.Name,
	}
	if req.Profile != nil {
		in.Profile = &service.ProfileInput{
			Bio:     req.Profile.Bio,
			Avatar:  req.Profile.Avatar,
			Website: req.Profile.Website,
		}
	}

	user, err := s.userService.CreateUser(ctx, in)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// CreateUserWithProfile handles POST /users/with-profile. The profile object
// is mandatory here; the user and profile rows land in one transaction.
func (s *Server) CreateUserWithProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		Email   string          `json:"email"`
		Name    string          `json:"name"`
		Profile *profileRequest `json:"profile"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Profile == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Profile is required"))
	}

	user, err := s.userService.CreateUser(ctx, service.CreateUserInput{
		Email: req.Email,
		Name:  req.Name,
		Profile: &service.ProfileInput{
			Bio:     req.Profile.Bio,
			Avatar:  req.Profile.Avatar,
			Website: req.Profile.Website,
		},
	})
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// GetUsers handles GET /users?includeRelations=&limit=&offset=
func (s *Server) GetUsers(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := parsePagination(c, 20)
	includeRelations := parseIncludeFlag(c, "includeRelations")

	users, err := s.userService.ListUsers(ctx, includeRelations, page.Limit, page.Offset)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(users)
}

// GetUser handles GET /users/:id and returns the full aggregate.
func (s *Server) GetUser(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUser(ctx, id)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(user)
}

// GetUserByEmail handles GET /users/by-email/:email
func (s *Server) GetUserByEmail(c *fiber.Ctx) error {
	ctx := c.UserContext()
	email := c.Params("email")

	user, err := s.userService.GetUserByEmail(ctx, email)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(user)
}

// UpdateUser handles PATCH /users/:id
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateUser(ctx, service.UpdateUserInput{
		ID:    id,
		Email: req.Email,
		Name:  req.Name,
	})
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(user)
}

// UpdateUserProfile handles PATCH /users/:id/profile. Creates the profile when
// the user does not have one yet, updates it in place otherwise.
func (s *Server) UpdateUserProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.userService.UpdateProfile(ctx, id, service.ProfileInput{
		Bio:     req.Bio,
		Avatar:  req.Avatar,
		Website: req.Website,
	})
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(profile)
}

// GetUserComments handles GET /users/:id/comments
func (s *Server) GetUserComments(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	comments, err := s.commentService.ListCommentsByUser(ctx, id, page.Limit, page.Offset)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(comments)
}

// GetUserStats handles GET /users/:id/stats
func (s *Server) GetUserStats(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	stats, err := s.userService.GetUserStats(ctx, id)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(stats)
}

// DeleteUser handles DELETE /users/:id. The delete cascades to the user's
// profile, posts, and comments at the database engine level.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.userService.DeleteUser(ctx, id); err != nil {
		return handleServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
