package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter mounts every endpoint under /api/v1 behind a CORS layer that
// admits allowedOrigins.
func NewRouter(h *Handler, allowedOrigins []string) http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	// Plans
	api.HandleFunc("/plans", h.ListPlans).Methods(http.MethodGet)
	api.HandleFunc("/plans", h.CreatePlan).Methods(http.MethodPost)
	api.HandleFunc("/plans/{id}", h.GetPlan).Methods(http.MethodGet)
	api.HandleFunc("/plans/{id}", h.DeletePlan).Methods(http.MethodDelete)
	api.HandleFunc("/plans/{id}/status", h.PlanStatus).Methods(http.MethodGet)
	api.HandleFunc("/plans/{id}/today", h.PlanToday).Methods(http.MethodGet)
	api.HandleFunc("/plans/{id}/days/{dayID}/tasks/{taskID}/toggle", h.ToggleTask).Methods(http.MethodPost)

	// Simulations
	api.HandleFunc("/simulations", h.ListSimulations).Methods(http.MethodGet)
	api.HandleFunc("/simulations", h.CreateSimulation).Methods(http.MethodPost)
	api.HandleFunc("/simulations/{id}", h.GetSimulation).Methods(http.MethodGet)
	api.HandleFunc("/simulations/{id}", h.DeleteSimulation).Methods(http.MethodDelete)
	api.HandleFunc("/simulations/{id}/score", h.ScoreSimulation).Methods(http.MethodPost)

	// Profiles
	api.HandleFunc("/profiles", h.ListProfiles).Methods(http.MethodGet)
	api.HandleFunc("/profiles/{name}", h.GetProfile).Methods(http.MethodGet)
	api.HandleFunc("/profiles/{name}", h.PutProfile).Methods(http.MethodPut)
	api.HandleFunc("/profiles/{name}", h.DeleteProfile).Methods(http.MethodDelete)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(r)
}
