package server

import (
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateCategory handles POST /categories
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	category, err := s.categoryService.CreateCategory(ctx, service.CreateCategoryInput{
		Name: req.Name,
		Slug: req.Slug,
	})
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// GetCategories handles GET /categories?includePosts=&limit=&offset=
func (s *Server) GetCategories(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := parsePagination(c, 20)
	includePosts := parseIncludeFlag(c, "includePosts")

	categories, err := s.categoryService.ListCategories(ctx, includePosts, page.Limit, page.Offset)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(categories)
}

// GetPopularCategories handles GET /categories/popular?limit=
func (s *Server) GetPopularCategories(c *fiber.Ctx) error {
	ctx := c.UserContext()
	limit := c.QueryInt("limit", 0)

	categories, err := s.categoryService.PopularCategories(ctx, limit)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(categories)
}

// GetCategory handles GET /categories/:id and returns the category with its
// linked posts.
func (s *Server) GetCategory(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	category, err := s.categoryService.GetCategory(ctx, id)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(category)
}

// GetCategoryBySlug handles GET /categories/slug/:slug
func (s *Server) GetCategoryBySlug(c *fiber.Ctx) error {
	ctx := c.UserContext()
	slug := c.Params("slug")

	category, err := s.categoryService.GetCategoryBySlug(ctx, slug)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(category)
}

// GetCategoryStats handles GET /categories/:id/stats
func (s *Server) GetCategoryStats(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	stats, err := s.categoryService.GetCategoryStats(ctx, id)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(stats)
}

// UpdateCategory handles PATCH /categories/:id
func (s *Server) UpdateCategory(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	category, err := s.categoryService.UpdateCategory(ctx, service.UpdateCategoryInput{
		ID:   id,
		Name: req.Name,
		Slug: req.Slug,
	})
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(category)
}

// DeleteCategory handles DELETE /categories/:id. Join rows cascade; the
// posts themselves survive.
func (s *Server) DeleteCategory(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.categoryService.DeleteCategory(ctx, id); err != nil {
		return handleServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
