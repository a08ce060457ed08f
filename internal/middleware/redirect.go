package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// RedirectMiddleware answers requests that end in 404 with a permanent
// redirect when the path belongs to the previous website.
func (m *middleware) RedirectMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
		if status != fiber.StatusNotFound {
			return err
		}

		target, found, rerr := m.redirectService.Resolve(c.UserContext(), c.Path())
		if rerr != nil {
			log.Errorf("redirect lookup for %s failed: %v", c.Path(), rerr)
			return err
		}
		if !found {
			return err
		}

		if query := string(c.Request().URI().QueryString()); query != "" {
			sep := "?"
			if strings.Contains(target, "?") {
				sep = "&"
			}
			target += sep + query
		}
		c.Response().ResetBody()
		return c.Redirect(target, fiber.StatusMovedPermanently)
	}
}
