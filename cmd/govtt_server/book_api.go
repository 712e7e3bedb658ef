package main

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mvoronin/govtt/internal/apperr"
	"github.com/mvoronin/govtt/internal/auth"
	"github.com/mvoronin/govtt/internal/books"
)

func getBooksHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		c, err := loadCampaign(app, ctx, auth.UserID(ctx))
		if err != nil {
			return apiError(ctx, err)
		}

		return ctx.JSON(app.books.List(c.ID))
	}
}

func getBookAddHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userID := auth.UserID(ctx)

		c, err := loadCampaign(app, ctx, userID)
		if err != nil {
			return apiError(ctx, err)
		}

		req := new(struct {
			Title string `json:"title"`
			URL   string `json:"url"`
		})

		if err := ctx.BodyParser(req); err != nil {
			return apiError(ctx, apperr.Wrap(apperr.CodeValidation, "bad request body", err))
		}

		b, err := app.books.Add(c, userID, req.Title, req.URL)
		if err != nil {
			return apiError(ctx, err)
		}

		return ctx.Status(fiber.StatusCreated).JSON(b.DTO(books.ThumbnailURL(b.URL)))
	}
}

func getBookDeleteHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userID := auth.UserID(ctx)

		c, err := loadCampaign(app, ctx, userID)
		if err != nil {
			return apiError(ctx, err)
		}

		if err := app.books.Delete(c, userID, paramUint(ctx, "bid")); err != nil {
			return apiError(ctx, err)
		}

		return ctx.SendStatus(fiber.StatusNoContent)
	}
}
