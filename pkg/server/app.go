package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	domrepo "PawMatch/internal/domain/repository"
	"PawMatch/internal/handler/api"
	"PawMatch/pkg/cache"
	"PawMatch/pkg/config"
	xhttp "PawMatch/pkg/http"
	applogger "PawMatch/pkg/logger"
)

// App owns the process lifecycle: HTTP serving, signal handling and the
// ordered teardown of the backing clients.
type App struct {
	cfg        *config.Config
	handler    *api.Handler
	store      domrepo.DataStore
	history    domrepo.BookingHistory
	notifier   domrepo.Notifier
	cache      cache.Cache
	logger     *applogger.Logger
	httpServer *xhttp.Server
}

// New creates the application with all dependencies injected.
func New(
	cfg *config.Config,
	handler *api.Handler,
	store domrepo.DataStore,
	history domrepo.BookingHistory,
	notifier domrepo.Notifier,
	c cache.Cache,
	l *applogger.Logger,
) *App {
	return &App{
		cfg:      cfg,
		handler:  handler,
		store:    store,
		history:  history,
		notifier: notifier,
		cache:    c,
		logger:   l.With("app"),
	}
}

// Run starts the HTTP server and blocks until interrupted.
func (a *App) Run() error {
	opts := []xhttp.ServerOption{
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	}
	if a.cfg.Metrics.Enabled && a.cfg.Metrics.Path != "" {
		opts = append(opts, xhttp.WithMetricsPath(a.cfg.Metrics.Path))
	}
	a.httpServer = xhttp.NewServer(a.handler, opts...)

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("listening", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown drains HTTP first so in-flight requests finish before their
// backing clients close.
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}
	a.handler.Shutdown()

	if err := a.notifier.Close(); err != nil {
		a.logger.Warn("notifier close error", applogger.Error(err))
	}
	if err := a.history.Close(); err != nil {
		a.logger.Warn("history close error", applogger.Error(err))
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Warn("cache close error", applogger.Error(err))
	}
	if err := a.store.Close(); err != nil {
		a.logger.Warn("store close error", applogger.Error(err))
	}

	a.logger.Info("shutdown complete")
	return nil
}
