package server

import (
	"scribe/internal/middleware"
	"scribe/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetFollowingFeed returns one page of posts from the authors the caller
// follows. A caller following nobody gets an empty page, not an error.
func (s *Server) GetFollowingFeed(c *fiber.Ctx) error {
	feed, err := s.feedService.Compose(c.UserContext(),
		service.FollowingScope(currentUserID(c)), parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(feed)
}

// FollowAuthor subscribes the caller to the named author. Following yourself
// or following someone twice is silently ignored.
func (s *Server) FollowAuthor(c *fiber.Ctx) error {
	username := c.Params("username")

	if err := s.followService.Follow(c.UserContext(), currentUserID(c), username); err != nil {
		return respondServiceError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "follow created",
		"author", username)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"following": true,
		"author":    username,
	})
}

// UnfollowAuthor removes the subscription; unfollowing someone the caller
// never followed is a no-op.
func (s *Server) UnfollowAuthor(c *fiber.Ctx) error {
	username := c.Params("username")

	if err := s.followService.Unfollow(c.UserContext(), currentUserID(c), username); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"following": false,
		"author":    username,
	})
}
