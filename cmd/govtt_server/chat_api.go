package main

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mvoronin/govtt/internal/apperr"
	"github.com/mvoronin/govtt/internal/auth"
	"github.com/mvoronin/govtt/internal/chat"
	"github.com/mvoronin/govtt/internal/model"
	"github.com/mvoronin/govtt/internal/wshandler"
)

func historyLimit(app *App, ctx *fiber.Ctx) int {
	if n, err := strconv.Atoi(ctx.Query("limit")); err == nil && n > 0 {
		return n
	}

	return app.config.ChatHistoryLimit()
}

// historyAfter parses the optional incremental-sync cursor.
func historyAfter(ctx *fiber.Ctx) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, ctx.Query("after")); err == nil {
		return t
	}

	return time.Time{}
}

func getMessagesHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userID := auth.UserID(ctx)

		c, err := loadCampaign(app, ctx, userID)
		if err != nil {
			return apiError(ctx, err)
		}

		tab := ctx.Query("channel", model.ChannelCampaign)
		viewer := chat.Viewer{UserID: userID, Owner: c.IsOwner(userID)}

		msgs, err := app.chat.History(c.ID, tab, viewer, historyAfter(ctx), historyLimit(app, ctx))
		if err != nil {
			return apiError(ctx, err)
		}

		return ctx.JSON(msgs)
	}
}

func getSendHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userID := auth.UserID(ctx)

		c, err := loadCampaign(app, ctx, userID)
		if err != nil {
			return apiError(ctx, err)
		}

		in := new(chat.SendInput)

		if err := ctx.BodyParser(in); err != nil {
			return apiError(ctx, apperr.Wrap(apperr.CodeValidation, "bad request body", err))
		}

		msg, err := app.chat.Send(c, userID, auth.Nickname(ctx), *in)
		if err != nil {
			return apiError(ctx, err)
		}

		viewer := chat.Viewer{UserID: userID, Owner: c.IsOwner(userID)}

		return ctx.Status(fiber.StatusCreated).JSON(msg.DTO(chat.RenderFor(msg, viewer)))
	}
}

// The general channel is server-wide and needs no campaign.
func getGeneralMessagesHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		viewer := chat.Viewer{UserID: auth.UserID(ctx)}

		msgs, err := app.chat.History(0, model.ChannelGeneral, viewer, historyAfter(ctx), historyLimit(app, ctx))
		if err != nil {
			return apiError(ctx, err)
		}

		return ctx.JSON(msgs)
	}
}

func getGeneralSendHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		in := new(chat.SendInput)

		if err := ctx.BodyParser(in); err != nil {
			return apiError(ctx, apperr.Wrap(apperr.CodeValidation, "bad request body", err))
		}

		in.Channel = model.ChannelGeneral
		in.Secret = false
		in.RecipientID = nil

		msg, err := app.chat.Send(nil, auth.UserID(ctx), auth.Nickname(ctx), *in)
		if err != nil {
			return apiError(ctx, err)
		}

		return ctx.Status(fiber.StatusCreated).JSON(msg.DTO(msg.Text))
	}
}

func getWsHandler(app *App) func(*websocket.Conn) {
	return func(ws *websocket.Conn) {
		defer ws.Close()

		claims, err := app.tokens.Validate(ws.Query("token"))
		if err != nil {
			app.logger.Debug("ws auth failed", slog.Any("error", err))

			return
		}

		campaignID, err := strconv.ParseUint(ws.Params("id"), 10, 32)
		if err != nil {
			return
		}

		c, err := app.campaigns.Get(uint(campaignID))
		if err != nil {
			return
		}

		if !c.IsOwner(claims.UserID) && c.GetMember(claims.UserID) == nil {
			return
		}

		viewer := chat.Viewer{UserID: claims.UserID, Owner: c.IsOwner(claims.UserID)}
		name := claims.Nickname + "_" + uuid.NewString()

		h := wshandler.NewHandler(app.logger, name, viewer, c.ID, ws)

		app.logger.Info("ws listener connected", slog.String("user", claims.Nickname))
		wsConnectionsMetric.Inc()

		h.SendInfo(app.config.WelcomeMsg())
		app.feed.Subscribe(name, h.NewChatMessage)
		h.Listen()
		app.feed.Unsubscribe(name)

		wsConnectionsMetric.Dec()
		app.logger.Info("ws listener disconnected", slog.String("user", claims.Nickname))
	}
}
