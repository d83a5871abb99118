package server

import (
	"strconv"
	"strings"
	"time"

	"scribe/internal/middleware"
	"scribe/internal/models"
	"scribe/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenIssuer   = "scribe-api"
	tokenAudience = "scribe-client"
	tokenLifetime = 24 * time.Hour
)

// SignupRequest represents the user registration request body
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the issued token and the account it belongs to.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Signup handles user registration
func (s *Server) Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	fields := map[string][]string{}
	if err := validation.ValidateUsername(req.Username); err != nil {
		fields["username"] = append(fields["username"], err.Error())
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		fields["email"] = append(fields["email"], err.Error())
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		fields["password"] = append(fields["password"], err.Error())
	}
	if len(fields) > 0 {
		return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewFieldValidationError(fields))
	}

	if existing, err := s.userRepo.GetByEmail(c.UserContext(), req.Email); err != nil {
		return respondServiceError(c, err)
	} else if existing != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewValidationError("An account with this email already exists"))
	}

	if _, err := s.userRepo.GetByUsername(c.UserContext(), req.Username); err == nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewValidationError("Username is already taken"))
	} else if !models.IsNotFound(err) {
		return respondServiceError(c, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return respondServiceError(c, err)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
	}
	if err := s.userRepo.Create(c.UserContext(), user); err != nil {
		return respondServiceError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "user signed up",
		"username", user.Username)

	token, err := s.generateToken(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(AuthResponse{
		Token: token,
		User:  user,
	})
}

// Login handles user authentication
func (s *Server) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	user, err := s.userRepo.GetByEmail(c.UserContext(), req.Email)
	if err != nil {
		return respondServiceError(c, err)
	}
	if user == nil {
		// Same response as a wrong password so the endpoint does not leak
		// which emails have accounts.
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid email or password"))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid email or password"))
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "user logged in",
		"username", user.Username)

	return c.JSON(AuthResponse{
		Token: token,
		User:  user,
	})
}

// generateToken issues a signed JWT for the user.
func (s *Server) generateToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"iat": now.Unix(),
		"exp": now.Add(tokenLifetime).Unix(),
		"jti": uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
