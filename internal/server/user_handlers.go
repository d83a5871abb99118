package server

import (
	"strconv"
	"strings"

	"scribe/internal/models"
	"scribe/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// ProfileResponse is a user's public profile with relationship counts.
type ProfileResponse struct {
	User        *models.User `json:"user"`
	PostsCount  int64        `json:"posts_count"`
	Followers   int64        `json:"followers"`
	Following   int64        `json:"following"`
	IsFollowing bool         `json:"is_following"`
}

// GetUserProfile returns an author's public profile. When the request
// carries a valid token the is_following flag reflects the caller's own
// subscription; anonymous viewers always see false.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	username := c.Params("username")

	user, err := s.userRepo.GetByUsername(c.UserContext(), username)
	if err != nil {
		return respondServiceError(c, err)
	}

	postsCount, err := s.postRepo.CountByAuthor(c.UserContext(), user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	followers, err := s.followRepo.CountFollowers(c.UserContext(), user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	following, err := s.followRepo.CountFollowing(c.UserContext(), user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}

	isFollowing := false
	if viewerID, ok := s.optionalUserID(c); ok && viewerID != user.ID {
		isFollowing, err = s.followRepo.Exists(c.UserContext(), viewerID, user.ID)
		if err != nil {
			return respondServiceError(c, err)
		}
	}

	return c.JSON(ProfileResponse{
		User:        user,
		PostsCount:  postsCount,
		Followers:   followers,
		Following:   following,
		IsFollowing: isFollowing,
	})
}

// GetAuthorFeed returns one page of the author's posts, newest first.
func (s *Server) GetAuthorFeed(c *fiber.Ctx) error {
	feed, err := s.feedService.Compose(c.UserContext(),
		service.AuthorScope(c.Params("username")), parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(feed)
}

// GetMyProfile returns the authenticated caller's own account. The route is
// registered ahead of the :username wildcard, so it validates the token
// itself instead of sitting behind AuthRequired.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID, ok := s.optionalUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization required"))
	}

	user, err := s.userRepo.GetByID(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// optionalUserID extracts the caller's user ID from a bearer token if one is
// present and valid. Public routes use it to personalize responses without
// requiring authentication.
func (s *Server) optionalUserID(c *fiber.Ctx) (uint, bool) {
	if id, ok := c.Locals("userID").(uint); ok {
		return id, true
	}

	authHeader := c.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, false
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(userID), true
}
