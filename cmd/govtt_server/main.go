package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mvoronin/govtt/internal/auth"
	"github.com/mvoronin/govtt/internal/books"
	"github.com/mvoronin/govtt/internal/callbacks"
	"github.com/mvoronin/govtt/internal/campaigns"
	"github.com/mvoronin/govtt/internal/character"
	"github.com/mvoronin/govtt/internal/chat"
	"github.com/mvoronin/govtt/internal/config"
	"github.com/mvoronin/govtt/internal/database"
	"github.com/mvoronin/govtt/internal/model"
	"github.com/mvoronin/govtt/internal/repository"
)

var (
	gitRevision = "unknown"
	gitBranch   = "unknown"
)

type App struct {
	logger *slog.Logger
	config *config.AppConfig
	uid    string

	db     *database.DatabaseManager
	tokens *auth.Tokens
	admins repository.AdminRepository
	tables *character.Tables

	campaigns *campaigns.Manager
	books     *books.Manager
	chat      *chat.Router
	feed      *callbacks.Callback[*model.Message]

	api *HttpServer
}

func NewApp(cfg *config.AppConfig, db *gorm.DB) *App {
	dbm := database.New(db)
	feed := callbacks.New[*model.Message]()

	app := &App{
		logger:    slog.Default(),
		config:    cfg,
		uid:       uuid.NewString(),
		db:        dbm,
		tokens:    auth.NewTokens(cfg.TokenSecret(), cfg.TokenTTL()),
		admins:    repository.NewFileAdminRepo(cfg.AdminsFile()),
		campaigns: campaigns.NewManager(dbm),
		books:     books.NewManager(dbm),
		feed:      feed,
		chat:      chat.NewRouter(dbm, feed, nil),
	}

	return app
}

func (app *App) Run() {
	if err := app.db.Migrate(); err != nil {
		app.logger.Error("migration error", slog.Any("error", err))
		os.Exit(1)
	}

	var err error

	app.tables, err = character.LoadTables()
	if err != nil {
		app.logger.Error("error loading rule tables", slog.Any("error", err))
		os.Exit(1)
	}

	if err := app.admins.Start(); err != nil {
		app.logger.Error("error watching admins file", slog.Any("error", err))
	}

	app.feed.Subscribe("metrics", countMessage)

	app.api = NewHttp(app)

	go func() {
		addr := app.config.ApiAddr()
		app.logger.Info("listening on " + addr)

		if err := app.api.Listen(addr); err != nil {
			app.logger.Error("listen error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	<-c

	app.logger.Info("exiting...")
	app.admins.Stop()
	_ = app.api.Shutdown()
}

func main() {
	configName := flag.String("config", "govtt_server.yml", "name of config file")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Parse()

	cfg := config.NewAppConfig()
	cfg.Load(*configName)

	if err := cfg.LoadEnv("GOVTT_"); err != nil {
		slog.Error("error loading env config", slog.Any("error", err))
	}

	setupLogging(*debug || cfg.Bool("debug"))

	slog.Info("starting govtt server", slog.String("version", gitRevision+":"+gitBranch))

	db, err := gorm.Open(sqlite.Open(cfg.DB()), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		slog.Error("error opening database", slog.Any("error", err))
		os.Exit(1)
	}

	NewApp(cfg, db).Run()
}

func setupLogging(debug bool) {
	level := slog.LevelInfo

	if debug {
		level = slog.LevelDebug
	}

	h := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})

	slog.SetDefault(slog.New(h))
}
