package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/garnizeh/ideabridge/pkg/repository"
)

// healthProfile is a namespace no profile token can name (tokens carry uuids).
const healthProfile = "_health"

type SystemHandler struct {
	// Profiles, when set, is probed by HealthHandler.
	Profiles repository.Profiles
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Storage string `json:"storage,omitempty"`
}

func (h *SystemHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Service: "ideabridge"}
	if h.Profiles != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if _, _, err := h.Profiles.Profile(healthProfile).Get(ctx, "ping"); err != nil {
			logger.Warn("storage health probe failed", slog.Any("err", err))
			resp.Status, resp.Storage = "degraded", "unreachable"
			writeJSON(w, resp, http.StatusServiceUnavailable)
			return
		}
		resp.Storage = "ok"
	}
	writeJSON(w, resp, http.StatusOK)
}

func (h *SystemHandler) VersionHandler(version, buildTime string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"version": version, "buildTime": buildTime}, http.StatusOK)
	}
}
