package server

import (
	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		Content  string `json:"content"`
		PostID   uint   `json:"post_id"`
		AuthorID uint   `json:"author_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateComment(ctx, service.CreateCommentInput{
		Content:  req.Content,
		PostID:   req.PostID,
		AuthorID: req.AuthorID,
	})
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComments handles GET /comments?post_id=&author_id=&limit=&offset=
func (s *Server) GetComments(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := parsePagination(c, 20)

	filter := repository.CommentFilter{
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	if postID := c.QueryInt("post_id", 0); postID > 0 {
		filter.PostID = uint(postID)
	}
	if authorID := c.QueryInt("author_id", 0); authorID > 0 {
		filter.AuthorID = uint(authorID)
	}

	comments, err := s.commentService.ListComments(ctx, filter)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(comments)
}

// GetCommentsByPost handles GET /comments/by-post/:postId
func (s *Server) GetCommentsByPost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	comments, err := s.commentService.ListCommentsByPost(ctx, postID, page.Limit, page.Offset)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(comments)
}

// GetCommentsByUser handles GET /comments/by-user/:userId
func (s *Server) GetCommentsByUser(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	comments, err := s.commentService.ListCommentsByUser(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(comments)
}

// GetComment handles GET /comments/:id
func (s *Server) GetComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comment, err := s.commentService.GetComment(ctx, id)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(comment)
}

// UpdateComment handles PATCH /comments/:id
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.UpdateComment(ctx, service.UpdateCommentInput{
		ID:      id,
		Content: req.Content,
	})
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(comment)
}

// DeleteComment handles DELETE /comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(ctx, id); err != nil {
		return handleServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
