package middleware

import (
	"todoweb/sessions"

	"github.com/gofiber/fiber/v2"
)

// RequireLogin guards the page routes. A request without a logged-in
// session is bounced to /login with a warning notice and no side effect.
func RequireLogin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := sessions.User(c)
		if !ok {
			sessions.Flash(c, "warning", "You need to login first")
			return c.Redirect("/login", fiber.StatusSeeOther)
		}

		// Handlers read the identity from Locals.
		c.Locals("x-user", user)

		return c.Next()
	}
}

// PageUser returns the identity stored by RequireLogin.
func PageUser(c *fiber.Ctx) sessions.CurrentUser {
	user, _ := c.Locals("x-user").(sessions.CurrentUser)
	return user
}
