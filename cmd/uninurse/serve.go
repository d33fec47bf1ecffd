package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/uninurse/uninurse/internal/domain/session"
	"github.com/uninurse/uninurse/internal/platform/middleware"
)

func newServer(a *app) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(a.logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(a.logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.BodyLimit(a.cfg.BodyLimit))
	e.Use(middleware.RequestTimeout(a.cfg.RequestTimeout))
	e.Use(a.metrics.Middleware())
	e.Use(middleware.Audit(a.logger))

	session.NewHandler(a.svc).RegisterRoutes(e)
	e.GET("/metrics", a.metrics.Handler())
	return e
}

func runServer(a *app) error {
	e := newServer(a)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info().Str("addr", a.cfg.ViewAddr).Msg("starting view server")
		if err := e.Start(a.cfg.ViewAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		a.logger.Error().Err(err).Msg("server error")
		return err
	case <-quit:
	}

	a.logger.Info().Msg("shutting down view server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		a.logger.Error().Err(err).Msg("server shutdown failed")
		return err
	}
	a.logger.Info().Msg("view server stopped")
	return nil
}
