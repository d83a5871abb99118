package service

import (
	"context"

	"scribe/internal/models"
	"scribe/internal/repository"
)

// FollowService manages directed follow edges between users.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService creates a new follow service
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow subscribes userID to the author's posts. Following yourself is
// silently ignored, and following someone twice leaves a single edge.
func (s *FollowService) Follow(ctx context.Context, userID uint, username string) error {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	if author.ID == userID {
		return nil
	}

	return s.followRepo.Create(ctx, &models.Follow{
		UserID:   userID,
		AuthorID: author.ID,
	})
}

// Unfollow removes the edge; unfollowing someone you never followed is a
// no-op.
func (s *FollowService) Unfollow(ctx context.Context, userID uint, username string) error {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.followRepo.Delete(ctx, userID, author.ID)
}

// IsFollowing reports whether userID follows the named author.
func (s *FollowService) IsFollowing(ctx context.Context, userID uint, username string) (bool, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return s.followRepo.Exists(ctx, userID, author.ID)
}
