package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"tour-planning-service/internal/domain"
	"tour-planning-service/internal/services"
)

// Config holds everything the composition root needs to wire the service.
// All tuning knobs come from the environment so a deployment can adjust fleet
// parameters without a rebuild.
type Config struct {
	Port        string
	DatabaseURL string
	RedisAddr   string // empty disables track caching

	SolverBaseURL    string
	SolverAPIKey     string
	SolverTimeout    time.Duration
	TelemetryBaseURL string
	TelemetryToken   string
	TelemetryTimeout time.Duration

	Depot               domain.Coordinates
	DefaultVehicleCount int

	Truck     services.TruckSpec
	Hours     services.WorkingHours
	Durations services.DurationConfig
	Costs     services.CostConfig
}

// FromEnv reads the configuration, falling back to defaults for everything
// except the two external API credentials.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/tour_planning?sslmode=disable"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),

		SolverBaseURL:    getEnv("SOLVER_BASE_URL", "https://graphhopper.com/api/1"),
		SolverAPIKey:     os.Getenv("SOLVER_API_KEY"),
		SolverTimeout:    getDuration("SOLVER_TIMEOUT", 30*time.Second),
		TelemetryBaseURL: getEnv("TELEMETRY_BASE_URL", "http://localhost:8082"),
		TelemetryToken:   os.Getenv("TELEMETRY_TOKEN"),
		TelemetryTimeout: getDuration("TELEMETRY_TIMEOUT", 15*time.Second),

		Depot: domain.Coordinates{
			Lat: getFloat("DEPOT_LAT", 52.52),
			Lon: getFloat("DEPOT_LNG", 13.405),
		},
		DefaultVehicleCount: getInt("VEHICLE_COUNT", 3),

		Truck:     services.DefaultTruckSpec(),
		Hours:     services.DefaultWorkingHours(),
		Durations: services.DefaultDurationConfig(),
		Costs:     services.DefaultCostConfig(),
	}

	if strings.TrimSpace(cfg.SolverAPIKey) == "" {
		return nil, errors.New("config: SOLVER_API_KEY is required")
	}
	if strings.TrimSpace(cfg.TelemetryToken) == "" {
		return nil, errors.New("config: TELEMETRY_TOKEN is required")
	}

	cfg.Truck.CapacityUnits = getInt("TRUCK_CAPACITY_UNITS", cfg.Truck.CapacityUnits)
	cfg.Truck.MaxDailyDistanceM = getInt("TRUCK_MAX_DAILY_DISTANCE_M", cfg.Truck.MaxDailyDistanceM)
	cfg.Hours.StartHour = getInt("WORKING_HOURS_START", cfg.Hours.StartHour)
	cfg.Hours.EndHour = getInt("WORKING_HOURS_END", cfg.Hours.EndHour)
	cfg.Costs.LitersPer100Km = getFloat("FUEL_LITERS_PER_100KM", cfg.Costs.LitersPer100Km)
	cfg.Costs.FuelPricePerLiter = getFloat("FUEL_PRICE_PER_LITER", cfg.Costs.FuelPricePerLiter)

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
