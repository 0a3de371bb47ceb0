package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Emma-Lee-123/Mylist-Functions/internal/config"
	"github.com/Emma-Lee-123/Mylist-Functions/internal/handler"
	"github.com/Emma-Lee-123/Mylist-Functions/internal/logger"
	"github.com/Emma-Lee-123/Mylist-Functions/internal/repository"
	"github.com/Emma-Lee-123/Mylist-Functions/internal/router"
	"github.com/Emma-Lee-123/Mylist-Functions/internal/server"
	"github.com/Emma-Lee-123/Mylist-Functions/internal/service"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		bootstrap := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		bootstrap.Fatal().Err(err).Msg("failed to load config")
	}

	loggerService := logger.NewLoggerService(cfg.Observability)

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)
	log.Info().Stringer("config", cfg).Msg("configuration loaded")

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos := repository.NewRepositories(srv.DB.Pool)
	services := service.NewServices(repos)
	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers)

	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	log.Info().Msg("server exited properly")
}
