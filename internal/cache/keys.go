package cache

import (
	"context"
	"fmt"
	"time"

	"inkwell/internal/middleware"
)

const (
	PostKeyPrefix     = "post:%d"
	PostNamespaceGlob = "post:*"
)

const (
	PostTTL = 30 * time.Minute
)

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

// Invalidate removes a single key. Best-effort: failures are logged, never
// returned.
func Invalidate(ctx context.Context, key string) {
	if client == nil {
		return
	}
	if err := client.Del(ctx, key).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "cache invalidation failed",
			"key", key, "error", err.Error())
	}
}

// InvalidatePost drops the cached detail view of one post.
func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

// InvalidatePostNamespace scans and deletes every key in the post cache
// namespace. Called when a post is deleted; best-effort, so a failing scan
// is logged and swallowed rather than surfaced to the caller.
func InvalidatePostNamespace(ctx context.Context) {
	if client == nil {
		return
	}

	iter := client.Scan(ctx, 0, PostNamespaceGlob, 0).Iterator()
	for iter.Next(ctx) {
		if err := client.Del(ctx, iter.Val()).Err(); err != nil {
			middleware.Logger.WarnContext(ctx, "cache invalidation failed",
				"key", iter.Val(), "error", err.Error())
		}
	}
	if err := iter.Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "cache namespace scan failed",
			"pattern", PostNamespaceGlob, "error", err.Error())
	}
}
