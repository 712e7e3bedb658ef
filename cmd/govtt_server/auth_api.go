package main

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mvoronin/govtt/internal/apperr"
	"github.com/mvoronin/govtt/internal/auth"
	"github.com/mvoronin/govtt/internal/database"
	"github.com/mvoronin/govtt/internal/model"
)

type SignUpRequest struct {
	Login    string `json:"login" validate:"required,min=3,max=64,alphanum"`
	Nickname string `json:"nickname" validate:"required,min=2,max=64"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

type SignInRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func getStatusHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"status":  "ok",
			"uid":     app.uid,
			"version": gitRevision,
		})
	}
}

func getSignUpHandler(app *App, srv *HttpServer) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		req := new(SignUpRequest)

		if err := ctx.BodyParser(req); err != nil {
			return apiError(ctx, apperr.Wrap(apperr.CodeValidation, "bad request body", err))
		}

		req.Login = strings.TrimSpace(strings.ToLower(req.Login))
		req.Nickname = strings.TrimSpace(req.Nickname)

		if err := srv.check.Struct(req); err != nil {
			return apiError(ctx, apperr.Wrap(apperr.CodeValidation, "invalid signup data", err))
		}

		user := &model.User{
			Login:    req.Login,
			Nickname: req.Nickname,
		}

		if err := user.SetPassword(req.Password); err != nil {
			return apiError(ctx, err)
		}

		if err := app.db.Create(user); err != nil {
			if database.IsUniqueViolation(err) {
				return apiError(ctx, apperr.New(apperr.CodeConflict, "login or nickname already taken"))
			}

			return apiError(ctx, err)
		}

		app.logger.Info("user registered", slog.String("login", user.Login))

		return signInResponse(ctx, app, user)
	}
}

func getSignInHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		req := new(SignInRequest)

		if err := ctx.BodyParser(req); err != nil {
			return apiError(ctx, apperr.Wrap(apperr.CodeValidation, "bad request body", err))
		}

		user := app.db.UserQuery().Login(strings.TrimSpace(strings.ToLower(req.Login))).One()

		if user == nil || user.Disabled || !user.CheckPassword(req.Password) {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":  apperr.CodeAuthorization,
				"error": "bad login or password",
			})
		}

		now := time.Now()
		_ = app.db.UserQuery().Id(user.ID).Update(map[string]any{"last_auth": &now})

		return signInResponse(ctx, app, user)
	}
}

func signInResponse(ctx *fiber.Ctx, app *App, user *model.User) error {
	token, err := app.tokens.Generate(user.ID, user.Nickname, user.Admin)
	if err != nil {
		return apiError(ctx, err)
	}

	return ctx.JSON(fiber.Map{
		"token": token,
		"user":  user.DTO(),
	})
}

// Tokens are stateless, sign-out is an acknowledgement for the client.
func getSignOutHandler() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusNoContent)
	}
}

func getProfileHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := app.db.UserQuery().Id(auth.UserID(ctx)).One()
		if user == nil {
			return apiError(ctx, apperr.New(apperr.CodeNotFound, "user not found"))
		}

		return ctx.JSON(user.DTO())
	}
}

func getChangePasswordHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		req := new(struct {
			Old string `json:"old_password"`
			New string `json:"new_password"`
		})

		if err := ctx.BodyParser(req); err != nil {
			return apiError(ctx, apperr.Wrap(apperr.CodeValidation, "bad request body", err))
		}

		if len(req.New) < 6 {
			return apiError(ctx, apperr.New(apperr.CodeValidation, "new password is too short"))
		}

		user := app.db.UserQuery().Id(auth.UserID(ctx)).One()
		if user == nil || !user.CheckPassword(req.Old) {
			return apiError(ctx, apperr.New(apperr.CodeAuthorization, "bad password"))
		}

		if err := user.SetPassword(req.New); err != nil {
			return apiError(ctx, err)
		}

		if err := app.db.Save(user); err != nil {
			return apiError(ctx, err)
		}

		return ctx.SendStatus(fiber.StatusNoContent)
	}
}

func getUsersHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		users := app.db.UserQuery().Get()

		res := make([]*model.UserDTO, 0, len(users))
		for _, u := range users {
			res = append(res, u.DTO())
		}

		return ctx.JSON(res)
	}
}
