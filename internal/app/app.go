package app

import (
	"context"
	"log/slog"
	"time"

	"social-media-server/internal/config"
	httpapi "social-media-server/internal/http"
	"social-media-server/internal/services/account"
	"social-media-server/internal/services/message"
	"social-media-server/internal/storage"
	"social-media-server/internal/storage/postgres"

	httpapp "social-media-server/internal/app/http"
)

type App struct {
	HTTPSrv *httpapp.App
	Storage storage.Storage
}

func New(log *slog.Logger, cfg *config.Config) *App {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pgStorage, err := postgres.New(ctx, cfg.Postgres, log)
	if err != nil {
		panic("failed to init storage: " + err.Error())
	}

	accountService := account.New(log, pgStorage, cfg.Account.MinPasswordLen)
	messageService := message.New(log, pgStorage, cfg.Message.MaxTextLen, cfg.Message.FailOpenReads)

	router := httpapi.NewRouter(log, accountService, messageService)
	httpApp := httpapp.New(log, cfg.HTTP, router)

	return &App{
		HTTPSrv: httpApp,
		Storage: pgStorage,
	}
}

func (a *App) Stop() {
	a.HTTPSrv.Stop()
	a.Storage.Close()
}
