package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"motorheat/internal/config"
	"motorheat/internal/handlers"
	"motorheat/internal/logger"
	"motorheat/internal/render"
	"motorheat/internal/repository"
	"motorheat/internal/repository/db"
	"motorheat/internal/server"
	"motorheat/internal/service"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// init logger
	log := logger.New(cfg.LogLevel, cfg.LogEncoding)
	defer func() { _ = log.Sync() }()

	renderer, err := render.New(cfg.Render.Formats)
	if err != nil {
		return err
	}

	// open DB
	conn, err := openDB(cfg.DB.Path, log)
	if err != nil {
		log.Errorw("failed to init sqlite", "err", err)
		return err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(repos, renderer, cfg, log)
	apiHandler := handlers.NewHandler(services, log)

	srv := server.New(server.Options{
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
	})
	errCh := runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	return waitForShutdown(ctx, srv, cfg.HTTP, errCh, log)
}

// openDB initializes the SQLite database.
func openDB(path string, log *logger.Logger) (*sql.DB, error) {
	if path == "" {
		log.Infow("db.path not set in config; using default file", "default", "motorheat.db")
		path = "motorheat.db"
	}
	return db.InitDB(path)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Infow("server_started", "port", port)
		errCh <- srv.Run(port, handler.InitRoutes())
	}()
	return errCh
}

// waitForShutdown blocks until a termination signal or a server failure and
// then stops the server gracefully.
func waitForShutdown(ctx context.Context, srv *server.Server, httpCfg config.HTTPConfig, errCh <-chan error, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil {
			log.Errorw("error starting server", "err", err)
		}
		return err
	case <-ctx.Done():
	}

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
		return err
	}
	return nil
}
