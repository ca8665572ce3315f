package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tour-planning-service/internal/api/handlers"
	"tour-planning-service/internal/domain"
	"tour-planning-service/internal/ports"
	"tour-planning-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root; handlers stay unaware of
// concrete adapters.
func NewRouter(planner *services.TourPlanner, repo ports.JobRepository, depot domain.Coordinates, vehicleCount int) http.Handler {
	jobHandler := &handlers.JobHandler{Repo: repo}
	tourHandler := &handlers.TourHandler{
		Planner:             planner,
		Repo:                repo,
		DefaultDepot:        depot,
		DefaultVehicleCount: vehicleCount,
	}
	truckHandler := &handlers.TruckHandler{Planner: planner}
	integrationHandler := &handlers.IntegrationHandler{Planner: planner, Depot: depot}

	r := chi.NewRouter()
	r.Use(requestLogger)

	r.Get("/health", handlers.Health)

	r.Route("/jobs", func(r chi.Router) {
		r.Get("/", jobHandler.List)
		r.Post("/", jobHandler.Create)
	})

	r.Route("/tours", func(r chi.Router) {
		r.Post("/optimize", tourHandler.Optimize)
		r.Post("/route", tourHandler.CalculateRoute)
		r.Post("/routes", tourHandler.CalculateRoutes)
		r.Post("/point-to-point", tourHandler.PointToPoint)
	})

	r.Route("/trucks", func(r chi.Router) {
		r.Get("/", truckHandler.Status)
		r.Get("/{deviceID}/history", truckHandler.History)
	})

	r.Get("/integrations/test", integrationHandler.Test)

	return r
}
