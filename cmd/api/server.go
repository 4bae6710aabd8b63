package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"kutuphanem/proj/internal/lib/logger"

	"golang.org/x/sync/errgroup"
)

func (app *Application) newServer() *http.Server {
	return &http.Server{
		Addr:         net.JoinHostPort(app.cfg.Server.Host, app.cfg.Server.Port),
		Handler:      app.routes(),
		ReadTimeout:  app.cfg.Server.ReadTimeout,
		WriteTimeout: app.cfg.Server.WriteTimeout,
		IdleTimeout:  app.cfg.Server.IdleTimeout,
		ErrorLog:     logger.LogAdapter(app.log),
	}
}

// serve runs the API on ln until ctx is cancelled, then drains in-flight
// requests for at most Server.ShutdownTimeout.
func (app *Application) serve(ctx context.Context, ln net.Listener) error {
	server := app.newServer()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		app.log.Info("starting server", "url", fmt.Sprintf("http://%s", ln.Addr()))
		if err := server.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		app.log.Info("shutting down the server gracefully", "cause", context.Cause(gctx).Error())
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), app.cfg.Server.ShutdownTimeout)
		defer cancel()
		err := server.Shutdown(shutdownCtx)
		if errors.Is(err, context.DeadlineExceeded) {
			app.log.Error("graceful shutdown timed out, forcing exit", "timeout", app.cfg.Server.ShutdownTimeout)
			server.Close()
			return fmt.Errorf("graceful shutdown timed out: %w", err)
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	app.log.Info("server stopped")
	return nil
}
