package serverutils

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"study-assistant-be/internal/apperror"
)

// RateLimitMiddleware caps LLM-backed requests per user per window using a
// Redis counter. Fails open when Redis is unavailable so an infra outage
// never blocks the product.
func RateLimitMiddleware(rdb *redis.Client, limit int, window time.Duration) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if rdb == nil {
			return ctx.Next()
		}

		userIdx := UserIdx(ctx)
		key := fmt.Sprintf("ratelimit:%d:%d", userIdx, time.Now().Unix()/int64(window.Seconds()))

		count, err := rdb.Incr(ctx.Context(), key).Result()
		if err != nil {
			return ctx.Next()
		}
		if count == 1 {
			rdb.Expire(ctx.Context(), key, window)
		}
		if count > int64(limit) {
			return apperror.RateLimited("too many requests, slow down")
		}

		return ctx.Next()
	}
}
