package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/goldpawn/pawn-engine/internal/config"
	"github.com/goldpawn/pawn-engine/internal/handler"
	"github.com/goldpawn/pawn-engine/internal/rates"
	"github.com/goldpawn/pawn-engine/internal/repository"
	"github.com/goldpawn/pawn-engine/internal/service"
	"github.com/goldpawn/pawn-engine/pkg/response"
)

func main() {
	// .env is optional; viper also reads the environment directly
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogging(cfg)

	// Initialize database
	db, err := initDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// Initialize Redis
	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Initialize repositories
	schemeRepo := repository.NewSchemeRepository(db)
	rateRepo := repository.NewRateRepository(db)
	loanRepo := repository.NewLoanRepository(db)
	closureRepo := repository.NewClosureRepository(db)

	// Initialize rate registry and service
	registry := rates.NewRegistry(rateRepo)
	pawnService := service.NewPawnService(schemeRepo, rateRepo, loanRepo, closureRepo, registry, redisClient, cfg)

	pawnHandler := handler.NewPawnHandler(pawnService)
	healthHandler := handler.NewHealthHandler(db, redisClient, cfg.Health.Timeout)

	// Setup routes
	limiter := response.NewRateLimiter(cfg.Business.RateLimitPerMinute, cfg.Business.RateLimitBurst)
	defer limiter.Stop()

	router := setupRoutes(pawnHandler, healthHandler, limiter)

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", server.Addr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func setupLogging(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if !cfg.IsProduction() && cfg.Logging.Format != "json" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(pawnHandler *handler.PawnHandler, healthHandler *handler.HealthHandler, limiter *response.RateLimiter) *mux.Router {
	router := mux.NewRouter()

	router.Use(response.LoggingMiddleware)
	router.Use(response.CORSMiddleware)

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(response.RateLimitMiddleware(limiter))

	api.HandleFunc("/schemes", pawnHandler.CreateScheme).Methods("POST")
	api.HandleFunc("/schemes/{schemeId}", pawnHandler.GetScheme).Methods("GET")
	api.HandleFunc("/rates", pawnHandler.CreateRate).Methods("POST")
	api.HandleFunc("/loans", pawnHandler.CreateLoan).Methods("POST")
	api.HandleFunc("/loans/{loanNo}/closure/preview", pawnHandler.PreviewClosure).Methods("GET")
	api.HandleFunc("/loans/{loanNo}/closure", pawnHandler.CloseLoan).Methods("POST")

	return router
}
