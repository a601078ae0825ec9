package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/goldpawn/pawn-engine/internal/config"
	"github.com/goldpawn/pawn-engine/internal/rates"
	"github.com/goldpawn/pawn-engine/internal/repository"
	"github.com/goldpawn/pawn-engine/internal/service"
)

func main() {
	_ = godotenv.Load()

	log.Info().Msg("Starting pawn scheduler...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	schemeRepo := repository.NewSchemeRepository(db)
	rateRepo := repository.NewRateRepository(db)
	loanRepo := repository.NewLoanRepository(db)
	closureRepo := repository.NewClosureRepository(db)
	registry := rates.NewRegistry(rateRepo)

	pawnService := service.NewPawnService(schemeRepo, rateRepo, loanRepo, closureRepo, registry, nil, cfg)

	loc, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Scheduler.Timezone).Msg("Invalid scheduler timezone")
	}

	// Initialize cron scheduler
	c := cron.New(cron.WithSeconds(), cron.WithLocation(loc))

	// Daily job to flag loans past their validity period
	_, err = c.AddFunc(cfg.Scheduler.OverdueSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		marked, err := pawnService.MarkOverdueLoans(ctx, time.Now().In(loc))
		if err != nil {
			log.Error().Err(err).Msg("Overdue sweep failed")
			return
		}
		log.Info().Int("marked", marked).Msg("Overdue sweep completed")
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule overdue sweep")
	}

	// Start the scheduler
	c.Start()
	log.Info().Msg("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down scheduler...")
	c.Stop()
	log.Info().Msg("Scheduler stopped")
}
