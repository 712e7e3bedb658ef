package main

import (
	"embed"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/template/html/v2"

	"github.com/mvoronin/govtt/internal/auth"
	"github.com/mvoronin/govtt/pkg/log"
	"github.com/mvoronin/govtt/staticfiles"
)

//go:embed templates
var templates embed.FS

type HttpServer struct {
	f     *fiber.App
	check *validator.Validate
}

func NewHttp(app *App) *HttpServer {
	srv := &HttpServer{
		check: validator.New(),
	}

	engine := html.NewFileSystem(http.FS(templates), ".html")
	engine.Delims("[[", "]]")

	srv.f = fiber.New(fiber.Config{
		EnablePrintRoutes:     false,
		DisableStartupMessage: true,
		AppName:               "govtt",
		Views:                 engine,
	})

	staticfiles.Embed(srv.f)

	srv.f.Use(log.NewFiberLogger(&log.LoggerConfig{
		Name:          "api",
		DoMetrics:     true,
		LogErrorsOnly: true,
		UserGetter:    auth.Nickname,
	}))

	srv.f.Get("/api/v1/status", getStatusHandler(app))

	srv.f.Post("/api/v1/auth/signup", getSignUpHandler(app, srv))
	srv.f.Post("/api/v1/auth/signin", getSignInHandler(app))

	api := srv.f.Group("/api/v1", auth.Middleware(app.tokens))

	api.Get("/auth/me", getProfileHandler(app))
	api.Post("/auth/signout", getSignOutHandler())
	api.Put("/auth/password", getChangePasswordHandler(app))

	api.Get("/campaigns", getCampaignsHandler(app))
	api.Post("/campaigns", getCampaignCreateHandler(app, srv))
	api.Post("/campaigns/redeem", getRedeemHandler(app))
	api.Get("/campaigns/:id", getCampaignHandler(app))
	api.Patch("/campaigns/:id", getCampaignUpdateHandler(app))
	api.Delete("/campaigns/:id", getCampaignDeleteHandler(app))
	api.Post("/campaigns/:id/join", getJoinHandler(app))
	api.Post("/campaigns/:id/leave", getLeaveHandler(app))
	api.Put("/campaigns/:id/character", getSelectCharacterHandler(app))
	api.Get("/campaigns/:id/members", getMembersHandler(app))

	api.Get("/characters", getCharactersHandler(app))
	api.Post("/characters", getCharacterCreateHandler(app, srv))
	api.Get("/characters/:id", getCharacterHandler(app))
	api.Put("/characters/:id", getCharacterUpdateHandler(app, srv))
	api.Delete("/characters/:id", getCharacterDeleteHandler(app))
	api.Get("/characters/:id/sheet", getSheetHandler(app))

	api.Get("/campaigns/:id/books", getBooksHandler(app))
	api.Post("/campaigns/:id/books", getBookAddHandler(app))
	api.Delete("/campaigns/:id/books/:bid", getBookDeleteHandler(app))

	api.Get("/messages", getGeneralMessagesHandler(app))
	api.Post("/messages", getGeneralSendHandler(app))
	api.Get("/campaigns/:id/messages", getMessagesHandler(app))
	api.Post("/campaigns/:id/messages", getSendHandler(app))

	srv.f.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}

		return fiber.ErrUpgradeRequired
	})
	srv.f.Get("/ws/:id", websocket.New(getWsHandler(app)))

	admin := srv.f.Group("/admin", basicauth.New(basicauth.Config{
		Realm: "govtt",
		Authorizer: func(login, password string) bool {
			return app.admins.CheckAuth(login, password)
		},
	}))

	admin.Get("/", getDashboardHandler(app))
	admin.Get("/metrics", getMetricsHandler())
	admin.Get("/stack", getStackHandler())
	admin.Get("/users", getUsersHandler(app))

	return srv
}

func (srv *HttpServer) Listen(addr string) error {
	return srv.f.Listen(addr)
}

func (srv *HttpServer) Shutdown() error {
	return srv.f.Shutdown()
}
