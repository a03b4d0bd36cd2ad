package api

import (
	"log/slog"
	"net/http"

	"github.com/garnizeh/ideabridge/internal/i18n"
	"github.com/garnizeh/ideabridge/internal/marketplace"
	"github.com/garnizeh/ideabridge/pkg/repository"
)

func (h *MarketplaceHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	svc := h.service(r.Context())
	loc := h.locale(r, svc)

	u, err := svc.CurrentUser(r.Context())
	if err != nil {
		writeServiceError(w, loc, err)
		return
	}
	writeJSON(w, sessionResponse{User: newUserView(loc, u)}, http.StatusOK)
}

func (h *MarketplaceHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req marketplace.ProfileInput
	if !decode(w, r, &req) {
		return
	}

	svc := h.service(r.Context())
	loc := h.locale(r, svc)

	u, err := svc.UpdateProfile(r.Context(), req)
	if err != nil {
		writeServiceError(w, loc, err)
		return
	}
	writeJSON(w, sessionResponse{User: newUserView(loc, u)}, http.StatusOK)
}

type localeResponse struct {
	Locale    i18n.Locale   `json:"locale"`
	Supported []i18n.Locale `json:"supported"`
}

func (h *MarketplaceHandler) GetLocale(w http.ResponseWriter, r *http.Request) {
	svc := h.service(r.Context())
	writeJSON(w, localeResponse{Locale: h.locale(r, svc), Supported: i18n.Supported}, http.StatusOK)
}

type localeRequest struct {
	Locale string `json:"locale"`
}

func (h *MarketplaceHandler) SetLocale(w http.ResponseWriter, r *http.Request) {
	var req localeRequest
	if !decode(w, r, &req) {
		return
	}
	loc, ok := i18n.Parse(req.Locale)
	if !ok {
		writeError(w, http.StatusBadRequest, "unsupported locale")
		return
	}

	svc := h.service(r.Context())
	if err := svc.Store().SetLocale(r.Context(), string(loc)); err != nil {
		writeServiceError(w, loc, err)
		return
	}
	writeJSON(w, localeResponse{Locale: loc, Supported: i18n.Supported}, http.StatusOK)
}

type clearStorageResponse struct {
	Deleted int `json:"deleted"`
}

// ClearStorage erases everything stored for the caller's profile, the server
// side of clearing site data. The profile token stays valid.
func (h *MarketplaceHandler) ClearStorage(w http.ResponseWriter, r *http.Request) {
	dropper, ok := h.profiles.(repository.Dropper)
	if !ok {
		writeError(w, http.StatusNotImplemented, "storage backend cannot clear profiles")
		return
	}

	id, _ := ProfileID(r.Context())
	mu := h.locks.forProfile(id)
	mu.Lock()
	defer mu.Unlock()

	n, err := dropper.DropProfile(r.Context(), id)
	if err != nil {
		logger.Error("failed to clear profile storage", slog.String("profile", id), slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, clearStorageResponse{Deleted: n}, http.StatusOK)
}
