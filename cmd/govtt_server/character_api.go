package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"

	"github.com/mvoronin/govtt/internal/apperr"
	"github.com/mvoronin/govtt/internal/auth"
	"github.com/mvoronin/govtt/internal/character"
	"github.com/mvoronin/govtt/internal/model"
)

type CharacterRequest struct {
	Name          string               `json:"name" validate:"required"`
	Class         string               `json:"class"`
	Race          string               `json:"race"`
	Level         int                  `json:"level" validate:"min=1,max=20"`
	Scores        map[string]int       `json:"scores" validate:"dive,min=1,max=30"`
	Proficiencies []string             `json:"proficiencies"`
	Inventory     []model.InventoryRow `json:"inventory"`
	Abilities     []string             `json:"abilities"`
	HitPoints     int                  `json:"hit_points"`
	MaxHitPoints  int                  `json:"max_hit_points"`
}

func (req *CharacterRequest) check(app *App) error {
	for key := range req.Scores {
		if !lo.Contains(character.Abilities, key) {
			return apperr.Newf(apperr.CodeValidation, "unknown ability %q", key)
		}
	}

	if req.Race != "" && app.tables.Race(req.Race) == nil {
		return apperr.Newf(apperr.CodeValidation, "unknown race %q", req.Race)
	}

	return nil
}

func (req *CharacterRequest) apply(c *model.Character) {
	c.Name = req.Name
	c.Class = req.Class
	c.Race = req.Race
	c.Level = req.Level
	c.Scores = req.Scores
	c.Proficiencies = req.Proficiencies
	c.Inventory = req.Inventory
	c.Abilities = req.Abilities
	c.HitPoints = req.HitPoints
	c.MaxHitPoints = req.MaxHitPoints
}

func getCharactersHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		list := app.db.CharacterQuery().Owner(auth.UserID(ctx)).Get()

		res := make([]*model.CharacterDTO, 0, len(list))
		for _, c := range list {
			res = append(res, c.DTO())
		}

		return ctx.JSON(res)
	}
}

func getCharacterCreateHandler(app *App, srv *HttpServer) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		req := new(CharacterRequest)

		if err := ctx.BodyParser(req); err != nil {
			return apiError(ctx, apperr.Wrap(apperr.CodeValidation, "bad request body", err))
		}

		if req.Level == 0 {
			req.Level = 1
		}

		if err := srv.check.Struct(req); err != nil {
			return apiError(ctx, apperr.Wrap(apperr.CodeValidation, "invalid character data", err))
		}

		if err := req.check(app); err != nil {
			return apiError(ctx, err)
		}

		c := &model.Character{OwnerID: auth.UserID(ctx)}
		req.apply(c)

		if err := app.db.Create(c); err != nil {
			return apiError(ctx, err)
		}

		return ctx.Status(fiber.StatusCreated).JSON(c.DTO())
	}
}

func loadCharacter(app *App, ctx *fiber.Ctx) (*model.Character, error) {
	c := app.db.CharacterQuery().Id(paramUint(ctx, "id")).One()
	if c == nil {
		return nil, apperr.New(apperr.CodeNotFound, "character not found")
	}

	if c.OwnerID != auth.UserID(ctx) {
		return nil, apperr.New(apperr.CodeAuthorization, "not your character")
	}

	return c, nil
}

func getCharacterHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		c, err := loadCharacter(app, ctx)
		if err != nil {
			return apiError(ctx, err)
		}

		return ctx.JSON(c.DTO())
	}
}

func getCharacterUpdateHandler(app *App, srv *HttpServer) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		c, err := loadCharacter(app, ctx)
		if err != nil {
			return apiError(ctx, err)
		}

		req := new(CharacterRequest)

		if err := ctx.BodyParser(req); err != nil {
			return apiError(ctx, apperr.Wrap(apperr.CodeValidation, "bad request body", err))
		}

		if err := srv.check.Struct(req); err != nil {
			return apiError(ctx, apperr.Wrap(apperr.CodeValidation, "invalid character data", err))
		}

		if err := req.check(app); err != nil {
			return apiError(ctx, err)
		}

		req.apply(c)

		if err := app.db.Save(c); err != nil {
			return apiError(ctx, err)
		}

		return ctx.JSON(c.DTO())
	}
}

func getCharacterDeleteHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		c, err := loadCharacter(app, ctx)
		if err != nil {
			return apiError(ctx, err)
		}

		if err := app.db.CharacterQuery().Id(c.ID).Delete(); err != nil {
			return apiError(ctx, err)
		}

		return ctx.SendStatus(fiber.StatusNoContent)
	}
}

func getSheetHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		c, err := loadCharacter(app, ctx)
		if err != nil {
			return apiError(ctx, err)
		}

		return ctx.JSON(app.tables.SheetFor(c))
	}
}
