package cache

import (
	"context"
	"fmt"
	"time"

	"plume/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

const feedPagePrefix = "feed:page:"

// cachedPage is the stored form of a rendered feed response. Body is kept
// verbatim so repeated hits within the TTL are byte-identical.
type cachedPage struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// FeedPageKey derives the cache key from the request path and query string.
func FeedPageKey(originalURL string) string {
	return feedPagePrefix + originalURL
}

// PageCache returns a middleware that serves GET responses from Redis for
// ttl after they are first rendered. Expiry is purely time based: a write
// becomes visible only once the interval elapses. When Redis is down the
// middleware is a pass-through.
func PageCache(ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if client == nil || c.Method() != fiber.MethodGet {
			return c.Next()
		}

		ctx := c.UserContext()
		key := FeedPageKey(c.OriginalURL())

		var page cachedPage
		found, err := GetJSON(ctx, key, &page)
		if err != nil {
			middleware.Logger.WarnContext(ctx, "feed page cache read failed",
				"key", key, "error", err)
		}
		if found {
			middleware.FeedCacheHits.Inc()
			c.Set(fiber.HeaderContentType, page.ContentType)
			return c.Status(page.Status).Send(page.Body)
		}
		middleware.FeedCacheMisses.Inc()

		if err := c.Next(); err != nil {
			return err
		}

		status := c.Response().StatusCode()
		if status != fiber.StatusOK {
			return nil
		}

		stored := cachedPage{
			Status:      status,
			ContentType: string(c.Response().Header.ContentType()),
			// Copy: fasthttp reuses the response buffer after the handler returns.
			Body: append([]byte(nil), c.Response().Body()...),
		}
		if err := SetJSON(ctx, key, stored, ttl); err != nil {
			middleware.Logger.WarnContext(ctx, "feed page cache write failed",
				"key", key, "error", err)
		}
		return nil
	}
}

// InvalidateFeedPages drops every cached feed page. The observed contract
// never calls this on write (staleness inside the TTL is accepted); it is
// the extension point for callers that want read-your-writes feeds.
func InvalidateFeedPages(ctx context.Context) error {
	if client == nil {
		return nil
	}

	iter := client.Scan(ctx, 0, feedPagePrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("delete feed page %q: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}
