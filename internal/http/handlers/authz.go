package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	applog "pristine/internal/log"
	"pristine/internal/services"
)

// RequireUser gates the customer portal. Anonymous visitors go to the
// login form and bounce back to the page they asked for.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := auth.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
				return c.Next()
			}
		}
		next := c.Path()
		if c.Method() != fiber.MethodGet {
			// form posts can't replay after login; land on the dashboard
			next = "/dashboard"
		}
		return c.Redirect("/login?next=" + url.QueryEscape(next))
	}
}

// RequireAdmin gates the staff area. A logged-in non-admin gets a flat
// 403 and a security log line rather than a hint that the area exists.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil || u.Role != "ADMIN" {
			applog.Security(c, "access.denied.admin", map[string]any{"sid": sid, "path": c.Path()})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Access denied"})
		}
		c.Locals("user", u)
		return c.Next()
	}
}
