package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/swachhjanta/backend/internal/dto"
	"github.com/swachhjanta/backend/internal/identity"
)

const reportLimitKeyPrefix = "report_limit:"

// ReportRateLimiter caps report creations per user per day with a Redis
// counter (INCR + 24h TTL on first increment). A nil client disables the
// limit.
func ReportRateLimiter(client *redis.Client, limit int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if client == nil || limit <= 0 {
			return c.Next()
		}

		userID, err := identity.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		ctx := c.Context()
		key := reportLimitKeyPrefix + userID.String()

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Rate limit check failed",
			})
		}
		if count == 1 {
			if err := client.Expire(ctx, key, 24*time.Hour).Err(); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
					Error: true, Message: "Rate limit check failed",
				})
			}
		}

		if count > int64(limit) {
			retryAfter, _ := client.TTL(ctx, key).Result()
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       true,
				"message":     "Daily report limit reached",
				"retry_after": retryAfter.Seconds(),
			})
		}

		return c.Next()
	}
}
