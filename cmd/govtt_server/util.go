package main

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/mvoronin/govtt/internal/apperr"
	"github.com/mvoronin/govtt/internal/model"
)

func statusOf(code apperr.Code) int {
	switch code {
	case apperr.CodeValidation:
		return fiber.StatusBadRequest
	case apperr.CodeAuthorization:
		return fiber.StatusForbidden
	case apperr.CodeNotFound:
		return fiber.StatusNotFound
	case apperr.CodeConflict:
		return fiber.StatusConflict
	case apperr.CodePrecondition:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func apiError(ctx *fiber.Ctx, err error) error {
	code := apperr.CodeOf(err)

	msg := err.Error()
	if code == apperr.CodeTransport {
		// do not leak store internals
		msg = "operation failed"
	}

	return ctx.Status(statusOf(code)).JSON(fiber.Map{
		"code":  code,
		"error": msg,
	})
}

func paramUint(ctx *fiber.Ctx, name string) uint {
	n, err := strconv.ParseUint(ctx.Params(name), 10, 32)
	if err != nil {
		return 0
	}

	return uint(n)
}

// loadCampaign resolves the :id param to a campaign the user can see.
func loadCampaign(app *App, ctx *fiber.Ctx, userID uint) (*model.Campaign, error) {
	c, err := app.campaigns.Get(paramUint(ctx, "id"))
	if err != nil {
		return nil, err
	}

	if !c.IsOwner(userID) && c.GetMember(userID) == nil {
		return nil, apperr.New(apperr.CodeAuthorization, "not a member of this campaign")
	}

	return c, nil
}
