package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix     = "user:%s"
	GroupKeyPrefix    = "group:%s"
	FeedPageKeyPrefix = "feed:index:p%d"
)

const (
	UserTTL  = 5 * time.Minute
	GroupTTL = 10 * time.Minute

	// FeedTTL bounds staleness of the cached global feed. Entries expire on
	// their own; writes never purge them, so a fresh post can take up to this
	// long to show in the global feed. That window is the intended tradeoff.
	FeedTTL = 20 * time.Second
)

func UserKey(username string) string {
	return fmt.Sprintf(UserKeyPrefix, username)
}

func GroupKey(slug string) string {
	return fmt.Sprintf(GroupKeyPrefix, slug)
}

// FeedPageKey is the cache key for one page of the global feed.
func FeedPageKey(page int) string {
	return fmt.Sprintf(FeedPageKeyPrefix, page)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, username string) {
	Invalidate(ctx, UserKey(username))
}

func InvalidateGroup(ctx context.Context, slug string) {
	Invalidate(ctx, GroupKey(slug))
}
