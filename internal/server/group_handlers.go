package server

import (
	"strings"

	"scribe/internal/middleware"
	"scribe/internal/models"
	"scribe/internal/service"
	"scribe/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CreateGroupRequest is the body for creating a new group.
type CreateGroupRequest struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// GetGroups lists every group, ordered by title.
func (s *Server) GetGroups(c *fiber.Ctx) error {
	groups, err := s.groupRepo.List(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	if groups == nil {
		groups = []models.Group{}
	}
	return c.JSON(fiber.Map{
		"groups": groups,
		"count":  len(groups),
	})
}

// GetGroup returns one group by slug.
func (s *Server) GetGroup(c *fiber.Ctx) error {
	group, err := s.groupRepo.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(group)
}

// CreateGroup registers a new group. Slugs are validated against the route
// namespace so a group can never shadow an API path.
func (s *Server) CreateGroup(c *fiber.Ctx) error {
	var req CreateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Slug = strings.TrimSpace(strings.ToLower(req.Slug))

	fields := map[string][]string{}
	if req.Title == "" {
		fields["title"] = append(fields["title"], "title is required")
	}
	if err := validation.ValidateGroupSlug(req.Slug); err != nil {
		fields["slug"] = append(fields["slug"], err.Error())
	}
	if len(fields) > 0 {
		return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewFieldValidationError(fields))
	}

	if _, err := s.groupRepo.GetBySlug(c.UserContext(), req.Slug); err == nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewValidationError("A group with this slug already exists"))
	} else if !models.IsNotFound(err) {
		return respondServiceError(c, err)
	}

	group := &models.Group{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.groupRepo.Create(c.UserContext(), group); err != nil {
		return respondServiceError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "group created",
		"slug", group.Slug)

	return c.Status(fiber.StatusCreated).JSON(group)
}

// GetGroupFeed returns one page of the group's posts, newest first.
func (s *Server) GetGroupFeed(c *fiber.Ctx) error {
	feed, err := s.feedService.Compose(c.UserContext(),
		service.GroupScope(c.Params("slug")), parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(feed)
}
