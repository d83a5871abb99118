package server

import (
	"scribe/internal/forms"
	"scribe/internal/middleware"
	"scribe/internal/models"
	"scribe/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetGlobalFeed returns one page of the site-wide post feed, newest first.
// The page is served from the short-lived feed cache when available.
func (s *Server) GetGlobalFeed(c *fiber.Ctx) error {
	feed, err := s.feedService.Compose(c.UserContext(), service.AllScope(), parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(feed)
}

// GetPost returns a single post with author, group and its comments.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.Get(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	comments, err := s.commentService.ListForPost(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	return c.JSON(fiber.Map{
		"post":     post,
		"comments": comments,
	})
}

// CreatePost handles new post submissions from the authenticated user.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var form forms.PostForm
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.Create(c.UserContext(), currentUserID(c), &form)
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "post created",
		"post_id", post.ID)

	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost applies a full resubmission of the post form. Only the author
// may edit.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var form forms.PostForm
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.Update(c.UserContext(), currentUserID(c), id, &form)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// DeletePost removes the post and its comments. Only the author may delete.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.Delete(c.UserContext(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "post deleted",
		"post_id", id)

	return c.SendStatus(fiber.StatusNoContent)
}
