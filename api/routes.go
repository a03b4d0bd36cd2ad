package api

import (
	"github.com/gorilla/mux"

	"github.com/garnizeh/ideabridge/internal/config"
	"github.com/garnizeh/ideabridge/pkg/repository"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, profiles repository.Profiles) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Create handlers
	systemHandler := &SystemHandler{Profiles: profiles}
	marketHandler := NewMarketplaceHandler(profiles)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")

	// API v1, scoped to the caller's storage profile
	apiV1 := r.PathPrefix("/v1").Subrouter()
	apiV1.Use(ProfileMiddleware(NewProfileTokens(cfg.JWTSecret, cfg.TokenDuration)))

	// Session endpoints
	session := apiV1.PathPrefix("/session").Subrouter()
	session.HandleFunc("/login", marketHandler.Login).Methods("POST")
	session.HandleFunc("/register", marketHandler.Register).Methods("POST")
	apiV1.HandleFunc("/session", marketHandler.Logout).Methods("DELETE")

	apiV1.HandleFunc("/profile", marketHandler.GetProfile).Methods("GET")
	apiV1.HandleFunc("/profile", marketHandler.UpdateProfile).Methods("PUT")
	apiV1.HandleFunc("/locale", marketHandler.GetLocale).Methods("GET")
	apiV1.HandleFunc("/locale", marketHandler.SetLocale).Methods("PUT")
	apiV1.HandleFunc("/storage", marketHandler.ClearStorage).Methods("DELETE")

	// Problems endpoints
	apiV1.HandleFunc("/problems", marketHandler.ListProblems).Methods("GET")
	apiV1.HandleFunc("/problems", marketHandler.CreateProblem).Methods("POST")
	apiV1.HandleFunc("/problems/{id}", marketHandler.GetProblem).Methods("GET")
	apiV1.HandleFunc("/problems/{id}/solutions", marketHandler.SubmitSolution).Methods("POST")
	apiV1.HandleFunc("/dashboard", marketHandler.Dashboard).Methods("GET")

	return r
}
