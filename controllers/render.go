package controllers

import (
	"todoweb/sessions"

	"github.com/gofiber/fiber/v2"
)

// render attaches the queued flash notices to every page.
func render(c *fiber.Ctx, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Notices"] = sessions.PopNotices(c)
	return c.Render(name, data)
}
