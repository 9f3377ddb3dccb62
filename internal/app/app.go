// Package app assembles the file organizer bot: configuration, logging,
// the optional upload journal and the Telegram route table.
package app

import (
	"context"
	"fmt"

	"log/slog"

	"github.com/jmoiron/sqlx"
	tele "gopkg.in/telebot.v4"

	corecmd "github.com/dricdias/telegram-bot/core/cmd"
	"github.com/dricdias/telegram-bot/core/database"
	"github.com/dricdias/telegram-bot/core/logger"
	coretelegram "github.com/dricdias/telegram-bot/core/telegram"
	tghelpers "github.com/dricdias/telegram-bot/core/telegram/helpers"
	"github.com/dricdias/telegram-bot/core/telegram/router"
	"github.com/dricdias/telegram-bot/internal/actions"
	"github.com/dricdias/telegram-bot/internal/handlers"
	"github.com/dricdias/telegram-bot/internal/journal"
	"github.com/dricdias/telegram-bot/internal/report"
	"github.com/dricdias/telegram-bot/internal/session"
	"github.com/dricdias/telegram-bot/internal/storage"
)

// App holds the wired services and exposes them to the core runner.
type App struct {
	cfg      *Config
	db       *sqlx.DB
	registry *coretelegram.Registry
	manager  *session.Manager
	handlers *handlers.Handlers
}

// Bootstrap initializes the logger, the optional Postgres journal and
// every service the bot needs, then registers all handlers.
func Bootstrap(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
	cfg, ok := carrier.(*Config)
	if !ok {
		return nil, fmt.Errorf("app: unexpected config type %T", carrier)
	}

	if err := logger.InitLogger(cfg.CoreConfig()); err != nil {
		return nil, fmt.Errorf("app: logger init failed: %w", err)
	}

	var db *sqlx.DB
	if cfg.Database.Enabled() {
		if err := database.RunMigrations(cfg.Database); err != nil {
			return nil, fmt.Errorf("app: migrations failed: %w", err)
		}
		var err error
		db, err = database.Connect(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("app: database initialization failed: %w", err)
		}
	} else {
		logger.L.With("component", "app").Info("upload journal disabled",
			slog.String("event", "journal.disabled"),
		)
	}

	jrnl := journal.New(db)

	store := storage.NewStore(storage.Options{
		BaseDir:  cfg.Storage.BaseDir,
		Recorder: jrnl,
	})

	sessions := session.NewStore()
	manager := session.NewManager(sessions)
	reporter := report.New(store, jrnl)

	h := handlers.New(handlers.Options{
		Sessions: sessions,
		Storage:  store,
		Reporter: reporter,
		TmpDir:   cfg.Storage.TmpDir,
	})

	reg := coretelegram.NewRegistry()
	h.Register(reg, manager)

	logger.L.With("component", "app").Info("services wired",
		slog.String("event", "bootstrap"),
		slog.String("base_dir", store.BaseDir()),
		slog.Bool("journal", jrnl.Enabled()),
	)

	return &App{
		cfg:      cfg,
		db:       db,
		registry: reg,
		manager:  manager,
		handlers: h,
	}, nil
}

// TelegramRunOptions builds the full route table: callbacks through the
// registry, text through the conversation manager, every media endpoint
// into the upload staging flow, and the registered slash commands.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	routes := []coretelegram.Route{
		router.CallbackRoute(a.registry, router.CallbackOptions{Parse: actions.Key}),
		router.TextRoute(a.manager, a.registry, router.TextOptions{}),
	}
	routes = append(routes, router.MediaRoutes(
		router.MediaRoute{Endpoint: tele.OnDocument, Name: "upload.document", Handler: a.handlers.OnDocument},
		router.MediaRoute{Endpoint: tele.OnPhoto, Name: "upload.photo", Handler: a.handlers.OnPhoto},
		router.MediaRoute{Endpoint: tele.OnVideo, Name: "upload.video", Handler: a.handlers.OnVideo},
		router.MediaRoute{Endpoint: tele.OnAudio, Name: "upload.audio", Handler: a.handlers.OnAudio},
		router.MediaRoute{Endpoint: tele.OnVoice, Name: "upload.voice", Handler: a.handlers.OnVoice},
	)...)
	routes = append(routes, router.CommandRoutes(a.registry)...)

	return coretelegram.RunOptions{
		Config:      a.cfg.CoreConfig(),
		Registry:    a.registry,
		Middlewares: coretelegram.DefaultMiddlewares(a.cfg.CoreConfig(), rateLimited),
		Routes:      routes,
		OnStop: func(ctx context.Context, rt coretelegram.Runtime) error {
			if a.db != nil {
				return a.db.Close()
			}
			return nil
		},
	}, nil
}

func rateLimited(c tele.Context) error {
	return tghelpers.SendText(c, "⏳ Muitas mensagens em sequência. Aguarde um instante e tente novamente.")
}
