package service

import (
	"context"

	"scribe/internal/forms"
	"scribe/internal/models"
	"scribe/internal/repository"
)

// PostService validates post submissions and enforces authorship rules
// before touching the entity store.
type PostService struct {
	postRepo  repository.PostRepository
	groupRepo repository.GroupRepository
}

// NewPostService creates a new post service
func NewPostService(postRepo repository.PostRepository, groupRepo repository.GroupRepository) *PostService {
	return &PostService{
		postRepo:  postRepo,
		groupRepo: groupRepo,
	}
}

// Create validates the form, stamps the author and persists the post.
// The author always comes from the authenticated caller, never from the
// submission. On validation failure nothing is persisted and the error
// carries per-field messages.
func (s *PostService) Create(ctx context.Context, authorID uint, form *forms.PostForm) (*models.Post, error) {
	if err := s.validateForm(ctx, form); err != nil {
		return nil, err
	}

	post := form.Post()
	post.AuthorID = authorID

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	// Reload with author/group preloaded for the response.
	return s.postRepo.GetByID(ctx, post.ID)
}

// Get returns one post by ID.
func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// Update applies a full resubmission of the post form. Only the post's
// author may edit; anyone else gets a FORBIDDEN error and the entity is
// left untouched.
func (s *PostService) Update(ctx context.Context, editorID, postID uint, form *forms.PostForm) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != editorID {
		return nil, models.NewForbiddenError("You can only edit your own posts")
	}

	if err := s.validateForm(ctx, form); err != nil {
		return nil, err
	}

	post.Text = form.Text
	post.GroupID = form.GroupID
	post.ImageURL = form.ImageURL

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, postID)
}

// Delete removes the post and its comments. Only the post's author may
// delete; anyone else gets a FORBIDDEN error and the entity is left
// untouched.
func (s *PostService) Delete(ctx context.Context, editorID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.AuthorID != editorID {
		return models.NewForbiddenError("You can only delete your own posts")
	}

	return s.postRepo.Delete(ctx, postID)
}

// validateForm runs field validation and checks that a referenced group
// exists. A dangling group reference is a field error, so the caller can
// re-render the form with the problem attached to group_id.
func (s *PostService) validateForm(ctx context.Context, form *forms.PostForm) error {
	if err := form.Validate(); err != nil {
		return err
	}

	if form.GroupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *form.GroupID); err != nil {
			if models.IsNotFound(err) {
				fieldErrs := forms.FieldErrors{}
				fieldErrs.Add("group_id", "group does not exist")
				return fieldErrs
			}
			return err
		}
	}
	return nil
}
