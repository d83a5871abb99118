package service

import (
	"context"
	"time"

	"scribe/internal/cache"
	"scribe/internal/middleware"
	"scribe/internal/models"
	"scribe/internal/repository"
)

// FeedScopeKind selects which viewing context a feed is composed for.
type FeedScopeKind int

const (
	// ScopeAll is the global feed of every post.
	ScopeAll FeedScopeKind = iota
	// ScopeGroup restricts the feed to one group, addressed by slug.
	ScopeGroup
	// ScopeAuthor restricts the feed to one author, addressed by username.
	ScopeAuthor
	// ScopeFollowing restricts the feed to authors the viewer follows.
	ScopeFollowing
)

// FeedScope identifies a feed context. Construct it with one of the
// scope helpers below.
type FeedScope struct {
	Kind     FeedScopeKind
	Slug     string
	Username string
	UserID   uint
}

// AllScope is the global feed.
func AllScope() FeedScope { return FeedScope{Kind: ScopeAll} }

// GroupScope is the feed of a single group.
func GroupScope(slug string) FeedScope { return FeedScope{Kind: ScopeGroup, Slug: slug} }

// AuthorScope is the feed of a single author.
func AuthorScope(username string) FeedScope {
	return FeedScope{Kind: ScopeAuthor, Username: username}
}

// FollowingScope is the feed of the authors userID follows.
func FollowingScope(userID uint) FeedScope {
	return FeedScope{Kind: ScopeFollowing, UserID: userID}
}

// Feed is one page of posts for a viewing context.
type Feed struct {
	Posts       []*models.Post `json:"posts"`
	Page        int            `json:"page"`
	PageCount   int            `json:"page_count"`
	Total       int64          `json:"total"`
	HasNext     bool           `json:"has_next"`
	HasPrevious bool           `json:"has_previous"`
}

// FeedService composes ordered, paginated post feeds.
type FeedService struct {
	postRepo   repository.PostRepository
	groupRepo  repository.GroupRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	pageSize   int
	cacheTTL   time.Duration
}

// NewFeedService creates a new feed service. pageSize is the fixed number of
// posts per page; cacheTTL bounds staleness of the cached global feed.
func NewFeedService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	pageSize int,
	cacheTTL time.Duration,
) *FeedService {
	if pageSize <= 0 {
		pageSize = 10
	}
	if cacheTTL <= 0 {
		cacheTTL = cache.FeedTTL
	}
	return &FeedService{
		postRepo:   postRepo,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
		pageSize:   pageSize,
		cacheTTL:   cacheTTL,
	}
}

// PageSize returns the fixed page size the service paginates with.
func (s *FeedService) PageSize() int { return s.pageSize }

// Compose builds one page of the feed for the given scope. Page numbers
// outside the valid range clamp to the nearest valid page. A missing group
// slug or author username is a NOT_FOUND error; a viewer with an empty
// follow set gets an empty feed.
func (s *FeedService) Compose(ctx context.Context, scope FeedScope, page int) (*Feed, error) {
	switch scope.Kind {
	case ScopeAll:
		return s.composeGlobal(ctx, page)

	case ScopeGroup:
		group, err := s.groupRepo.GetBySlug(ctx, scope.Slug)
		if err != nil {
			return nil, err
		}
		return s.paginate(ctx, page,
			func() (int64, error) { return s.postRepo.CountByGroup(ctx, group.ID) },
			func(limit, offset int) ([]*models.Post, error) {
				return s.postRepo.ListByGroup(ctx, group.ID, limit, offset)
			})

	case ScopeAuthor:
		author, err := s.userRepo.GetByUsername(ctx, scope.Username)
		if err != nil {
			return nil, err
		}
		return s.paginate(ctx, page,
			func() (int64, error) { return s.postRepo.CountByAuthor(ctx, author.ID) },
			func(limit, offset int) ([]*models.Post, error) {
				return s.postRepo.ListByAuthor(ctx, author.ID, limit, offset)
			})

	case ScopeFollowing:
		authorIDs, err := s.followRepo.AuthorIDs(ctx, scope.UserID)
		if err != nil {
			return nil, err
		}
		return s.paginate(ctx, page,
			func() (int64, error) { return s.postRepo.CountByAuthors(ctx, authorIDs) },
			func(limit, offset int) ([]*models.Post, error) {
				return s.postRepo.ListByAuthors(ctx, authorIDs, limit, offset)
			})
	}

	return nil, models.NewValidationError("Unknown feed scope")
}

// composeGlobal serves the global feed through the cache. Pages are cached
// under a per-page key with a short TTL and expire on their own; post writes
// never purge them, so a fresh post can lag behind by up to the TTL.
func (s *FeedService) composeGlobal(ctx context.Context, page int) (*Feed, error) {
	if page < 1 {
		page = 1
	}

	var feed Feed
	if found, err := cache.GetJSON(ctx, cache.FeedPageKey(page), &feed); err == nil && found {
		middleware.FeedCacheHits.WithLabelValues("hit").Inc()
		return &feed, nil
	}
	middleware.FeedCacheHits.WithLabelValues("miss").Inc()

	composed, err := s.paginate(ctx, page,
		func() (int64, error) { return s.postRepo.Count(ctx) },
		func(limit, offset int) ([]*models.Post, error) {
			return s.postRepo.List(ctx, limit, offset)
		})
	if err != nil {
		return nil, err
	}

	// Store under the clamped page so an out-of-range request never caches
	// a duplicate of the last page under its own key.
	_ = cache.SetJSON(ctx, cache.FeedPageKey(composed.Page), composed, s.cacheTTL)
	return composed, nil
}

func (s *FeedService) paginate(
	ctx context.Context,
	page int,
	count func() (int64, error),
	list func(limit, offset int) ([]*models.Post, error),
) (*Feed, error) {
	total, err := count()
	if err != nil {
		return nil, err
	}

	pageCount := int((total + int64(s.pageSize) - 1) / int64(s.pageSize))
	if pageCount < 1 {
		pageCount = 1
	}

	// Clamp to the nearest valid page instead of failing.
	if page < 1 {
		page = 1
	}
	if page > pageCount {
		page = pageCount
	}

	posts, err := list(s.pageSize, (page-1)*s.pageSize)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []*models.Post{}
	}

	return &Feed{
		Posts:       posts,
		Page:        page,
		PageCount:   pageCount,
		Total:       total,
		HasNext:     page < pageCount,
		HasPrevious: page > 1,
	}, nil
}
