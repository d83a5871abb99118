// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"scribe/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, limit, offset int) ([]*models.Post, error)
	ListByGroup(ctx context.Context, groupID uint, limit, offset int) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error)
	ListByAuthors(ctx context.Context, authorIDs []uint, limit, offset int) ([]*models.Post, error)
	Count(ctx context.Context) (int64, error)
	CountByGroup(ctx context.Context, groupID uint) (int64, error)
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
	CountByAuthors(ctx context.Context, authorIDs []uint) (int64, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx)).
		Preload("Author").
		Preload("Group").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes the post and, in the same transaction, the comments that
// hang off it. The global feed cache is left alone: it expires on its own.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return r.listWhere(ctx, limit, offset, nil)
}

func (r *postRepository) ListByGroup(ctx context.Context, groupID uint, limit, offset int) ([]*models.Post, error) {
	return r.listWhere(ctx, limit, offset, func(db *gorm.DB) *gorm.DB {
		return db.Where("group_id = ?", groupID)
	})
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error) {
	return r.listWhere(ctx, limit, offset, func(db *gorm.DB) *gorm.DB {
		return db.Where("author_id = ?", authorID)
	})
}

func (r *postRepository) ListByAuthors(ctx context.Context, authorIDs []uint, limit, offset int) ([]*models.Post, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	return r.listWhere(ctx, limit, offset, func(db *gorm.DB) *gorm.DB {
		return db.Where("author_id IN ?", authorIDs)
	})
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	return r.countWhere(ctx, nil)
}

func (r *postRepository) CountByGroup(ctx context.Context, groupID uint) (int64, error) {
	return r.countWhere(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("group_id = ?", groupID)
	})
}

func (r *postRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	return r.countWhere(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("author_id = ?", authorID)
	})
}

func (r *postRepository) CountByAuthors(ctx context.Context, authorIDs []uint) (int64, error) {
	if len(authorIDs) == 0 {
		return 0, nil
	}
	return r.countWhere(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("author_id IN ?", authorIDs)
	})
}

func (r *postRepository) listWhere(ctx context.Context, limit, offset int, scope func(*gorm.DB) *gorm.DB) ([]*models.Post, error) {
	var posts []*models.Post
	db := r.applyPostDetails(r.db.WithContext(ctx)).
		Preload("Author").
		Preload("Group")
	if scope != nil {
		db = scope(db)
	}
	// created_at DESC with id DESC as tiebreak gives a stable total order
	// even when two posts share a timestamp.
	err := db.Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) countWhere(ctx context.Context, scope func(*gorm.DB) *gorm.DB) (int64, error) {
	var count int64
	db := r.db.WithContext(ctx).Model(&models.Post{})
	if scope != nil {
		db = scope(db)
	}
	if err := db.Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// applyPostDetails adds the comment count subquery so list and detail reads
// resolve in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) as comments_count")
}
