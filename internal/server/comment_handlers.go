package server

import (
	"scribe/internal/forms"
	"scribe/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetComments returns a post's comments, oldest first.
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.ListForPost(c.UserContext(), postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return c.JSON(fiber.Map{
		"comments": comments,
		"count":    len(comments),
	})
}

// CreateComment attaches a comment to the post. Any authenticated user may
// comment on any post.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var form forms.CommentForm
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.Add(c.UserContext(), currentUserID(c), postID, &form)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}
