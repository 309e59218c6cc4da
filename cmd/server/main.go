package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/avoron/planpoker/internal/adapters/http"
	ws "github.com/avoron/planpoker/internal/adapters/signal"
	"github.com/avoron/planpoker/internal/app"
	"github.com/avoron/planpoker/internal/config"
	"github.com/avoron/planpoker/internal/core"
	"github.com/avoron/planpoker/internal/snapshot"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// Human-friendly output for terminal; in production you may want JSON only.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	rooms := core.NewRoomStore()
	registry := app.NewRegistry()

	orch := app.NewOrchestrator(registry, rooms, core.UUIDGenerator{})
	orch.Votes = app.VotePolicy{AllowScrumMaster: cfg.AllowScrumMasterVote}
	orch.EmitErrors = cfg.EmitErrors

	if cfg.SnapshotPath != "" {
		writer := snapshot.NewWriter(cfg.SnapshotPath)
		orch.Snapshots = writer
		go writer.Run(ctx)
	}

	go orch.Run(ctx)

	ctl := ws.NewController(orch, cfg.ReadLimit)
	r := router.SetupRouter(ctx, cfg, ctl)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("estimation server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
