package cache

import (
	"context"
	"fmt"
	"time"
)

// TTLs per entity. Posts churn fast because of counter writes, circles and
// user profiles are comparatively stable.
const (
	PostTTL    = 2 * time.Minute
	FeedTTL    = 30 * time.Second
	CircleTTL  = 5 * time.Minute
	UserTTL    = 5 * time.Minute
	SummaryTTL = 1 * time.Minute
)

func PostKey(id uint) string {
	return fmt.Sprintf("post:%d", id)
}

func CircleKey(id uint) string {
	return fmt.Sprintf("circle:%d", id)
}

func UserKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func FeedKey(page, limit int) string {
	return fmt.Sprintf("feed:%d:%d", page, limit)
}

func CircleFeedKey(circleID uint, page, limit int) string {
	return fmt.Sprintf("circle:%d:feed:%d:%d", circleID, page, limit)
}

func NutritionSummaryKey(userID uint, date string) string {
	return fmt.Sprintf("nutrition:%d:%s", userID, date)
}

// Invalidate removes the given keys. A nil client or a Redis error is
// ignored; the cache repopulates on the next read.
func Invalidate(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// InvalidatePostsList drops every cached feed page.
func InvalidatePostsList(ctx context.Context) {
	InvalidatePattern(ctx, "feed:*")
}

// InvalidateCircleFeed drops cached feed pages for one circle.
func InvalidateCircleFeed(ctx context.Context, circleID uint) {
	InvalidatePattern(ctx, fmt.Sprintf("circle:%d:feed:*", circleID))
}

// InvalidatePattern removes all keys matching a glob pattern. Used for feed
// pages where the exact key set is unknown.
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}
