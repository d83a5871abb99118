package service

import (
	"context"

	"scribe/internal/forms"
	"scribe/internal/models"
	"scribe/internal/repository"
)

// CommentService validates comment submissions and attaches them to posts.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// NewCommentService creates a new comment service
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// Add validates the form and attaches the comment to the post. Any
// authenticated user may comment on any post; there is no author-match
// requirement. A missing post aborts the request with NOT_FOUND before
// anything is written.
func (s *CommentService) Add(ctx context.Context, authorID, postID uint, form *forms.CommentForm) (*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	if err := form.Validate(); err != nil {
		return nil, err
	}

	comment := form.Comment()
	comment.AuthorID = &authorID
	comment.PostID = postID

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListForPost returns the post's comments, oldest first.
func (s *CommentService) ListForPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID)
}
