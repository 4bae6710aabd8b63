package main

import (
	"context"
	"flag"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kutuphanem/proj/internal/config"
	"kutuphanem/proj/internal/lib/logger"
	"kutuphanem/proj/internal/storage/postgres"
)

const version = "1.0.0"

func main() {
	cfgPath := flag.String("config", "config/local.yml", "path to config file")
	migrate := flag.Bool("migrate", false, "apply the database schema before serving")

	flag.Parse()
	cfg := config.MustLoad(*cfgPath)
	log := logger.SetupLogger(os.Stdout, cfg.Debug)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	storage, err := postgres.New(ctx, cfg.DB.Dsn, cfg.DB.MaxConns, cfg.DB.MaxConnIdleTime)
	if err != nil {
		log.Error("connecting to database", "err", err.Error())
		os.Exit(1)
	}
	defer storage.Close()
	log.Info("database connection established")
	if *migrate {
		if err := storage.Migrate(ctx); err != nil {
			log.Error("applying schema", "err", err.Error())
			os.Exit(1)
		}
		log.Info("schema applied")
	}
	if err := os.MkdirAll(cfg.UploadsDir, 0o755); err != nil {
		log.Error("creating uploads dir", "dir", cfg.UploadsDir, "err", err.Error())
		os.Exit(1)
	}
	app := NewApplication(cfg, log, storage)
	ln, err := net.Listen("tcp", net.JoinHostPort(cfg.Server.Host, cfg.Server.Port))
	if err != nil {
		log.Error("listening", "err", err.Error())
		os.Exit(1)
	}
	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := app.serve(sigCtx, ln); err != nil {
		log.Error("server stopped", "err", err.Error())
		os.Exit(1)
	}
}
