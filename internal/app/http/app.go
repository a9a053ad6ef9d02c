package httpapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"social-media-server/internal/config"
)

// App owns the HTTP server lifecycle.
type App struct {
	log             *slog.Logger
	server          *http.Server
	port            int
	shutdownTimeout time.Duration
}

func New(log *slog.Logger, cfg config.HTTPServer, handler *gin.Engine) *App {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &App{
		log:             log,
		server:          server,
		port:            cfg.Port,
		shutdownTimeout: cfg.ShutdownTimeout,
	}
}

func (a *App) MustRun() {
	if err := a.Run(); err != nil {
		panic(err)
	}
}

func (a *App) Run() error {
	const op = "app.http.Run"

	a.log.Info("HTTP server started", slog.Int("port", a.port))

	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (a *App) Stop() {
	const op = "app.http.Stop"

	a.log.Info("stopping HTTP server", slog.String("op", op))

	ctx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.log.Error("graceful shutdown failed", slog.Any("err", err))
	}
}
