package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/jackc/pgx/v5/stdlib"

	"tour-planning-service/internal/adapters/cache"
	"tour-planning-service/internal/adapters/repositories"
	"tour-planning-service/internal/adapters/solver"
	"tour-planning-service/internal/adapters/telemetry"
	"tour-planning-service/internal/api"
	"tour-planning-service/internal/config"
	"tour-planning-service/internal/platform/db"
	"tour-planning-service/internal/ports"
	"tour-planning-service/internal/services"
)

// main is the application composition root. It wires concrete adapters
// (Postgres, Redis, the solver and telemetry HTTP clients) behind ports and
// starts the HTTP server.
func main() {
	setupLogging()

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found (using environment variables)")
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx := context.Background()

	pool, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not connect to Postgres")
	}
	defer pool.Close()

	if err := repositories.InitSchema(pool); err != nil {
		log.Fatal().Err(err).Msg("Could not initialize schema")
	}

	solverClient, err := solver.NewClient(cfg.SolverBaseURL, cfg.SolverAPIKey, cfg.SolverTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not create solver client")
	}

	telemetryClient, err := telemetry.NewClient(cfg.TelemetryBaseURL, cfg.TelemetryToken, cfg.TelemetryTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not create telemetry client")
	}

	// Track caching is optional; without Redis every history request goes to
	// the telemetry provider.
	var tracks ports.TrackCache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()
		tracks = cache.NewRedisTrackCache(client, 0)
		log.Info().Str("addr", cfg.RedisAddr).Msg("Track cache enabled")
	}

	durations := services.NewDurationEstimator(cfg.Durations)
	costs := services.NewCostEstimator(cfg.Costs)
	formulator := services.NewProblemFormulator(durations, cfg.Truck, cfg.Hours)
	reconciler := services.NewReconciler(costs)
	planner := services.NewTourPlanner(solverClient, telemetryClient, tracks, formulator, reconciler)

	repo := repositories.NewPostgresJobRepository(pool)
	router := api.NewRouter(planner, repo, cfg.Depot, cfg.DefaultVehicleCount)

	// The write timeout leaves room for slow solver runs on large fleets.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info().Str("port", cfg.Port).Msg("Server listening")
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

func setupLogging() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if os.Getenv("DEBUG") == "true" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if os.Getenv("LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
