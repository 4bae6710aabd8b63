package main

import (
	"log/slog"

	"kutuphanem/proj/internal/config"
	"kutuphanem/proj/internal/lib/validator"
	"kutuphanem/proj/internal/services"
	"kutuphanem/proj/internal/storage/postgres"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

type Application struct {
	cfg          *config.Config
	log          *slog.Logger
	Http         *Http
	services     *services.Services
	validator    *govalidator.Validate
	queryDecoder *schema.Decoder
}

func NewApplication(cfg *config.Config, log *slog.Logger, storage *postgres.Storage) *Application {
	return newApplication(cfg, log, services.New(log, cfg, storage))
}

func newApplication(cfg *config.Config, log *slog.Logger, svc *services.Services) *Application {
	queryDecoder := schema.NewDecoder()
	queryDecoder.IgnoreUnknownKeys(true)
	return &Application{
		cfg:          cfg,
		log:          log,
		services:     svc,
		validator:    validator.New(),
		queryDecoder: queryDecoder,
		Http: &Http{
			log: log,
			cfg: cfg,
		},
	}
}
