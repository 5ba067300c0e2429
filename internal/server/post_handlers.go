package server

import (
	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /posts. Category ids, when present, are linked in
// the same transaction as the post insert.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		Title       string `json:"title"`
		Content     string `json:"content"`
		Published   bool   `json:"published"`
		AuthorID    uint   `json:"author_id"`
		CategoryIDs []uint `json:"category_ids,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		Title:       req.Title,
		Content:     req.Content,
		Published:   req.Published,
		AuthorID:    req.AuthorID,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// CreatePostWithCategories handles POST /posts/with-categories. The category
// id list is mandatory; the post insert and its join rows share a transaction.
func (s *Server) CreatePostWithCategories(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		Title       string `json:"title"`
		Content     string `json:"content"`
		Published   bool   `json:"published"`
		AuthorID    uint   `json:"author_id"`
		CategoryIDs []uint `json:"category_ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if len(req.CategoryIDs) == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("At least one category ID is required"))
	}

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		Title:       req.Title,
		Content:     req.Content,
		Published:   req.Published,
		AuthorID:    req.AuthorID,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts handles GET /posts?published=&author_id=&includeRelations=
func (s *Server) GetPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := parsePagination(c, 20)

	filter := repository.PostFilter{
		IncludeRelations: parseIncludeFlag(c, "includeRelations"),
		Limit:            page.Limit,
		Offset:           page.Offset,
	}
	if c.Query("published") != "" {
		published := c.QueryBool("published")
		filter.Published = &published
	}
	if authorID := c.QueryInt("author_id", 0); authorID > 0 {
		filter.AuthorID = uint(authorID)
	}

	posts, err := s.postService.ListPosts(ctx, filter)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /posts/:id and returns the full aggregate.
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(ctx, id)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(post)
}

// GetPostsByCategory handles GET /posts/by-category/:categoryId
func (s *Server) GetPostsByCategory(c *fiber.Ctx) error {
	ctx := c.UserContext()
	categoryID, err := s.parseID(c, "categoryId")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	posts, err := s.postService.ListPostsByCategory(ctx, categoryID, page.Limit, page.Offset)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(posts)
}

// UpdatePost handles PATCH /posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title     string `json:"title"`
		Content   string `json:"content"`
		Published *bool  `json:"published"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(ctx, service.UpdatePostInput{
		ID:        id,
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
	})
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(post)
}

// PublishPost handles POST /posts/:id/publish. Idempotent.
func (s *Server) PublishPost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.PublishPost(ctx, id)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(post)
}

// AttachPostCategories handles POST /posts/:id/categories. Already-linked
// categories are skipped, so retries are safe.
func (s *Server) AttachPostCategories(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		CategoryIDs []uint `json:"category_ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.AttachCategories(ctx, id, req.CategoryIDs)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(post)
}

// DetachPostCategory handles DELETE /posts/:id/categories/:categoryId
func (s *Server) DetachPostCategory(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	categoryID, err := s.parseID(c, "categoryId")
	if err != nil {
		return nil
	}

	if err := s.postService.DetachCategory(ctx, id, categoryID); err != nil {
		return handleServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetPostComments handles GET /posts/:id/comments
func (s *Server) GetPostComments(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	comments, err := s.commentService.ListCommentsByPost(ctx, id, page.Limit, page.Offset)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(comments)
}

// CreatePostComment handles POST /posts/:id/comments
func (s *Server) CreatePostComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content  string `json:"content"`
		AuthorID uint   `json:"author_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.postService.AddComment(ctx, service.AddCommentInput{
		PostID:   id,
		AuthorID: req.AuthorID,
		Content:  req.Content,
	})
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetPostStats handles GET /posts/:id/stats
func (s *Server) GetPostStats(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	stats, err := s.postService.GetPostStats(ctx, id)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(stats)
}

// DeletePost handles DELETE /posts/:id. Comments and category links go with
// the post via engine-level cascades.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(ctx, id); err != nil {
		return handleServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
