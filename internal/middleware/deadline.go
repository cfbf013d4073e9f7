package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Deadline gives every request a user context that is cancelled after
// timeout or once the handler chain returns. Handlers pass c.UserContext()
// to outbound calls, so slow upstreams are abandoned at the deadline.
// A non-positive timeout only cancels on return.
func Deadline(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			ctx    context.Context
			cancel context.CancelFunc
		)
		if timeout > 0 {
			ctx, cancel = context.WithTimeout(c.UserContext(), timeout)
		} else {
			ctx, cancel = context.WithCancel(c.UserContext())
		}
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}
