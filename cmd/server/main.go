package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/flockr/messaging-system/internal/api"
	"github.com/flockr/messaging-system/internal/core/ports"
	"github.com/flockr/messaging-system/internal/infrastructure/config"
	"github.com/flockr/messaging-system/internal/infrastructure/mail"
	"github.com/flockr/messaging-system/internal/infrastructure/scheduler"
	"github.com/flockr/messaging-system/internal/infrastructure/store"
	"github.com/flockr/messaging-system/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	st := store.New()
	sched := scheduler.New(log)

	var mailer ports.ResetMailer
	if cfg.SMTP.Host != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From, cfg.SMTP.Password)
	} else {
		mailer = mail.NewLogMailer(log)
		log.Info().Msg("no SMTP host configured, reset codes will be logged")
	}

	e := api.NewRouter(cfg, st, sched, mailer, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
