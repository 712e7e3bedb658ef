package main

import (
	"github.com/gofiber/fiber/v2"
)

func getDashboardHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		data := map[string]any{
			"uid":       app.uid,
			"version":   gitRevision,
			"users":     app.db.UserQuery().Count(),
			"campaigns": app.db.CampaignQuery().Count(),
			"messages":  app.db.MessageQuery().Count(),
		}

		return ctx.Render("templates/index", data)
	}
}
