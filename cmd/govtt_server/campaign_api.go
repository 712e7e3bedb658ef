package main

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mvoronin/govtt/internal/apperr"
	"github.com/mvoronin/govtt/internal/auth"
	"github.com/mvoronin/govtt/internal/model"
)

type CampaignRequest struct {
	Name     string `json:"name" validate:"required"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
}

func getCampaignsHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userID := auth.UserID(ctx)

		list := app.campaigns.ListForUser(userID)

		res := make([]*model.CampaignDTO, 0, len(list))
		for _, c := range list {
			res = append(res, c.DTO(c.IsOwner(userID)))
		}

		return ctx.JSON(res)
	}
}

func getCampaignCreateHandler(app *App, srv *HttpServer) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		req := new(CampaignRequest)

		if err := ctx.BodyParser(req); err != nil {
			return apiError(ctx, apperr.Wrap(apperr.CodeValidation, "bad request body", err))
		}

		if err := srv.check.Struct(req); err != nil {
			return apiError(ctx, apperr.Wrap(apperr.CodeValidation, "invalid campaign data", err))
		}

		c, err := app.campaigns.Create(auth.UserID(ctx), auth.Nickname(ctx), req.Name, req.ImageURL)
		if err != nil {
			return apiError(ctx, err)
		}

		return ctx.Status(fiber.StatusCreated).JSON(c.DTO(true))
	}
}

func getCampaignHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userID := auth.UserID(ctx)

		c, err := loadCampaign(app, ctx, userID)
		if err != nil {
			return apiError(ctx, err)
		}

		return ctx.JSON(fiber.Map{
			"campaign": c.DTO(c.IsOwner(userID)),
			"role":     app.campaigns.Role(c, userID),
		})
	}
}

func getCampaignUpdateHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		req := new(CampaignRequest)

		if err := ctx.BodyParser(req); err != nil {
			return apiError(ctx, apperr.Wrap(apperr.CodeValidation, "bad request body", err))
		}

		c, err := app.campaigns.Update(paramUint(ctx, "id"), auth.UserID(ctx), req.Name, req.ImageURL)
		if err != nil {
			return apiError(ctx, err)
		}

		return ctx.JSON(c.DTO(true))
	}
}

func getCampaignDeleteHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if err := app.campaigns.Delete(paramUint(ctx, "id"), auth.UserID(ctx)); err != nil {
			return apiError(ctx, err)
		}

		return ctx.SendStatus(fiber.StatusNoContent)
	}
}

func getRedeemHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		req := new(struct {
			Code string `json:"code"`
		})

		if err := ctx.BodyParser(req); err != nil {
			return apiError(ctx, apperr.Wrap(apperr.CodeValidation, "bad request body", err))
		}

		c, err := app.campaigns.Redeem(req.Code)
		if err != nil {
			return apiError(ctx, err)
		}

		return ctx.JSON(c.DTO(false))
	}
}

func getJoinHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		req := new(struct {
			CharacterID *uint `json:"character_id"`
		})

		if err := ctx.BodyParser(req); err != nil {
			return apiError(ctx, apperr.Wrap(apperr.CodeValidation, "bad request body", err))
		}

		member, err := app.campaigns.Join(paramUint(ctx, "id"), auth.UserID(ctx), auth.Nickname(ctx), req.CharacterID)
		if err != nil {
			return apiError(ctx, err)
		}

		return ctx.Status(fiber.StatusCreated).JSON(member.DTO())
	}
}

func getLeaveHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if err := app.campaigns.Leave(paramUint(ctx, "id"), auth.UserID(ctx)); err != nil {
			return apiError(ctx, err)
		}

		return ctx.SendStatus(fiber.StatusNoContent)
	}
}

func getSelectCharacterHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		req := new(struct {
			CharacterID uint `json:"character_id"`
		})

		if err := ctx.BodyParser(req); err != nil {
			return apiError(ctx, apperr.Wrap(apperr.CodeValidation, "bad request body", err))
		}

		if err := app.campaigns.SelectCharacter(paramUint(ctx, "id"), auth.UserID(ctx), req.CharacterID); err != nil {
			return apiError(ctx, err)
		}

		return ctx.SendStatus(fiber.StatusNoContent)
	}
}

func getMembersHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		c, err := loadCampaign(app, ctx, auth.UserID(ctx))
		if err != nil {
			return apiError(ctx, err)
		}

		res := make([]*model.MemberDTO, 0, len(c.Members))
		for _, m := range c.Members {
			res = append(res, m.DTO())
		}

		return ctx.JSON(res)
	}
}
